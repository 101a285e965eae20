package fsops

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/mamaar/mcpfs/pkg/types"
)

// ReadFile returns the UTF-8 text content of relFile.
func ReadFile(root types.Root, relFile string) (string, error) {
	rp, err := Resolve(root, relFile)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", types.NewError(types.NotFound, rp.Rel, "file %q does not exist", relFile)
		}
		if os.IsPermission(err) {
			return "", types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot access file %q", relFile)
		}
		return "", types.WrapError(types.OperationFailed, rp.Rel, err, "cannot stat file %q", relFile)
	}
	if info.IsDir() {
		return "", types.NewError(types.NotAFile, rp.Rel, "path %q is not a file", relFile)
	}

	data, err := os.ReadFile(rp.Abs)
	if err != nil {
		if os.IsPermission(err) {
			return "", types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot read file %q", relFile)
		}
		return "", types.WrapError(types.OperationFailed, rp.Rel, err, "cannot read file %q", relFile)
	}
	if !utf8.Valid(data) {
		return "", types.NewError(types.OperationFailed, rp.Rel,
			"file %q contains invalid UTF-8; only text files can be read", relFile)
	}
	return string(data), nil
}

// SaveFile writes content to relFile atomically, creating parent
// directories as needed.
func SaveFile(root types.Root, relFile, content string) error {
	rp, err := Resolve(root, relFile)
	if err != nil {
		return err
	}
	if info, err := os.Stat(rp.Abs); err == nil && info.IsDir() {
		return types.NewError(types.NotAFile, rp.Rel, "path %q is a directory", relFile)
	}
	return writeFileAtomic(rp, content)
}

// AppendFile appends content to an existing file. Read plus atomic rewrite;
// the file must already exist.
func AppendFile(root types.Root, relFile, content string) error {
	existing, err := ReadFile(root, relFile)
	if err != nil {
		return err
	}
	return SaveFile(root, relFile, existing+content)
}

// DeleteFile removes a single file. Directories are refused.
func DeleteFile(root types.Root, relFile string) error {
	rp, err := Resolve(root, relFile)
	if err != nil {
		return err
	}
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewError(types.NotFound, rp.Rel, "file %q does not exist", relFile)
		}
		if os.IsPermission(err) {
			return types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot access file %q", relFile)
		}
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot stat file %q", relFile)
	}
	if info.IsDir() {
		return types.NewError(types.NotAFile, rp.Rel, "path %q is a directory, not a file", relFile)
	}
	if err := os.Remove(rp.Abs); err != nil {
		if os.IsPermission(err) {
			return types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot delete file %q", relFile)
		}
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot delete file %q", relFile)
	}
	return nil
}

// writeFileAtomic replaces the file at rp with content via a temp file and
// rename in the same directory, so a crash mid-write never leaves a
// half-written file.
func writeFileAtomic(rp types.ResolvedPath, content string) error {
	dir := filepath.Dir(rp.Abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if os.IsPermission(err) {
			return types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot create directory %q", dir)
		}
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot create directory %q", dir)
	}

	tmp, err := os.CreateTemp(dir, ".mcpfs-write-*")
	if err != nil {
		if os.IsPermission(err) {
			return types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot create temporary file in %q", dir)
		}
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot create temporary file in %q", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot write file %q", rp.Rel)
	}
	if err := tmp.Close(); err != nil {
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot write file %q", rp.Rel)
	}
	if err := os.Rename(tmpName, rp.Abs); err != nil {
		return types.WrapError(types.OperationFailed, rp.Rel, err, "cannot replace file %q", rp.Rel)
	}
	return nil
}
