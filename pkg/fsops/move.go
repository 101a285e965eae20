package fsops

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mamaar/mcpfs/pkg/types"
)

// MoveFile relocates a file or directory inside root. The adapter is tried
// first when root is a repository and the source is tracked (directories
// under a repository also try the adapter and rely on the fallback);
// adapter failure falls back to a plain filesystem move rather than
// surfacing tooling errors. Destination parent directories are created
// unconditionally. An existing destination is refused, never overwritten.
func MoveFile(ctx context.Context, root types.Root, srcRel, destRel string, adapter VersionControlAdapter) (*types.MoveRecord, error) {
	src, err := Resolve(root, srcRel)
	if err != nil {
		return nil, err
	}
	dest, err := Resolve(root, destRel)
	if err != nil {
		return nil, err
	}

	srcInfo, err := os.Lstat(src.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.SourceNotFound, src.Rel, "source %q does not exist", srcRel)
		}
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, src.Rel, err, "cannot access source %q", srcRel)
		}
		return nil, types.WrapError(types.OperationFailed, src.Rel, err, "cannot stat source %q", srcRel)
	}

	// On case-insensitive filesystems Foo.txt and foo.txt resolve to the
	// same file; that is a rename, not a collision.
	caseOnly := false
	if destInfo, err := os.Lstat(dest.Abs); err == nil {
		if os.SameFile(srcInfo, destInfo) && src.Abs != dest.Abs && strings.EqualFold(src.Abs, dest.Abs) {
			caseOnly = true
		} else {
			return nil, types.NewError(types.DestinationExists, dest.Rel, "destination %q already exists", destRel)
		}
	}

	// Unconditional: failing a move over a missing parent helps nobody.
	if err := os.MkdirAll(filepath.Dir(dest.Abs), 0o755); err != nil {
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, dest.Rel, err, "cannot create parent directories for %q", destRel)
		}
		return nil, types.WrapError(types.OperationFailed, dest.Rel, err, "cannot create parent directories for %q", destRel)
	}

	useGit := adapter.IsRepository(root) &&
		(srcInfo.IsDir() || adapter.IsTracked(ctx, root, src.Rel))

	if useGit && !caseOnly {
		if err := adapter.Move(ctx, root, src.Rel, dest.Rel); err == nil {
			return &types.MoveRecord{
				Source:      src.Rel,
				Destination: dest.Rel,
				Method:      types.MoveVersionControlled,
				MethodName:  types.MoveVersionControlled.String(),
				Message:     "moved using git mv (preserving history)",
			}, nil
		}
		// Adapter failure is incidental tooling trouble; the move still
		// has to succeed or fail on filesystem feasibility.
	}

	if err := filesystemMove(src.Abs, dest.Abs, caseOnly); err != nil {
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, src.Rel, err, "cannot move %q to %q", srcRel, destRel)
		}
		return nil, types.WrapError(types.OperationFailed, src.Rel, err, "cannot move %q to %q", srcRel, destRel)
	}

	msg := "moved using filesystem operations"
	if useGit {
		msg += " (fallback from git)"
	}
	return &types.MoveRecord{
		Source:      src.Rel,
		Destination: dest.Rel,
		Method:      types.MoveFilesystem,
		MethodName:  types.MoveFilesystem.String(),
		Message:     msg,
	}, nil
}

// filesystemMove performs the COMMIT step on the filesystem path. Case-only
// renames go through a temporary name because a direct rename is a no-op on
// case-insensitive filesystems; a failure on the second hop rolls the
// source back before propagating.
func filesystemMove(srcAbs, destAbs string, caseOnly bool) error {
	if caseOnly {
		tmp := filepath.Join(filepath.Dir(srcAbs),
			fmt.Sprintf(".mcpfs-move-%d", time.Now().UnixNano()))
		if err := os.Rename(srcAbs, tmp); err != nil {
			return err
		}
		if err := os.Rename(tmp, destAbs); err != nil {
			if rbErr := os.Rename(tmp, srcAbs); rbErr != nil {
				return fmt.Errorf("%w (rollback to %s also failed: %v)", err, srcAbs, rbErr)
			}
			return err
		}
		return nil
	}

	if err := os.Rename(srcAbs, destAbs); err == nil {
		return nil
	}
	// Rename across filesystems fails with EXDEV; fall back to a copy of
	// the whole tree followed by removal of the source. The source is
	// only deleted after the copy fully succeeds.
	if err := copyTree(srcAbs, destAbs); err != nil {
		os.RemoveAll(destAbs) // drop the partial copy, source is untouched
		return err
	}
	return os.RemoveAll(srcAbs)
}

// copyTree recursively copies a file or directory, preserving permissions.
func copyTree(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dest)
	case info.IsDir():
		if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	default:
		return copyFile(src, dest, info.Mode().Perm())
	}
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
