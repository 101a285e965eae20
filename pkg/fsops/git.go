package fsops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mamaar/mcpfs/pkg/types"
)

// VersionControlAdapter is the capability interface MoveOperation consults.
// A real implementation preserves history on moves; the null implementation
// reports no repository so moves go straight to the filesystem.
type VersionControlAdapter interface {
	// IsRepository reports whether root is under version control.
	IsRepository(root types.Root) bool
	// IsTracked reports whether the root-relative path is tracked.
	IsTracked(ctx context.Context, root types.Root, rel string) bool
	// Move relocates a tracked path, preserving history.
	Move(ctx context.Context, root types.Root, srcRel, destRel string) error
}

const gitTimeout = 10 * time.Second

// GitAdapter drives the git binary directly.
type GitAdapter struct{}

// NewGitAdapter returns a GitAdapter, or nil if no git binary is on PATH.
// Callers should fall back to NullAdapter on nil.
func NewGitAdapter() *GitAdapter {
	if _, err := exec.LookPath("git"); err != nil {
		return nil
	}
	return &GitAdapter{}
}

func (g *GitAdapter) IsRepository(root types.Root) bool {
	info, err := os.Stat(filepath.Join(root.Path, ".git"))
	return err == nil && info.IsDir()
}

func (g *GitAdapter) IsTracked(ctx context.Context, root types.Root, rel string) bool {
	if !g.IsRepository(root) {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--error-unmatch", "--", filepath.ToSlash(rel))
	cmd.Dir = root.Path
	return cmd.Run() == nil
}

func (g *GitAdapter) Move(ctx context.Context, root types.Root, srcRel, destRel string) error {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "mv", "--", filepath.ToSlash(srcRel), filepath.ToSlash(destRel))
	cmd.Dir = root.Path
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git mv %s %s: %w: %s", srcRel, destRel, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// NullAdapter is the no-op implementation used when version control is
// unavailable.
type NullAdapter struct{}

func (NullAdapter) IsRepository(types.Root) bool { return false }

func (NullAdapter) IsTracked(context.Context, types.Root, string) bool { return false }

func (NullAdapter) Move(context.Context, types.Root, string, string) error {
	return fmt.Errorf("version control is not available")
}

// SelectAdapter picks the git adapter when a git binary exists, otherwise
// the null adapter. Called once at startup.
func SelectAdapter() VersionControlAdapter {
	if g := NewGitAdapter(); g != nil {
		return g
	}
	return NullAdapter{}
}
