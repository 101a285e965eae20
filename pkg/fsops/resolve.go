// Package fsops implements the sandboxed file operations behind the MCP
// tool surface: path containment, ignore-aware listing, exact-match edits,
// and version-control-aware moves. Every function takes an explicit root;
// nothing in this package holds state across calls.
package fsops

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mamaar/mcpfs/pkg/types"
)

// Resolve normalizes candidate against root and proves containment.
// Both relative and absolute candidates are accepted; the result is an
// absolute path guaranteed to be a descendant of (or equal to) root after
// `..` elimination and symlink resolution. Escapes are rejected with
// PathOutsideRoot, never clamped back inside.
func Resolve(root types.Root, candidate string) (types.ResolvedPath, error) {
	if candidate == "" {
		return types.ResolvedPath{}, types.NewError(types.InvalidPath, "", "path must be a non-empty string")
	}
	if strings.ContainsRune(candidate, 0) {
		return types.ResolvedPath{}, types.NewError(types.InvalidPath, "", "path contains a NUL byte")
	}

	var abs string
	if filepath.IsAbs(candidate) {
		abs = filepath.Clean(candidate)
	} else {
		abs = filepath.Join(root.Path, candidate)
	}

	// Resolve symlinks before the containment check. Checking the raw
	// string is the classic bypass: a link inside the root can point
	// anywhere.
	resolved, err := canonicalize(abs)
	if err != nil {
		if os.IsPermission(err) {
			return types.ResolvedPath{}, types.WrapError(types.PermissionDenied, candidate, err, "cannot resolve path")
		}
		return types.ResolvedPath{}, types.WrapError(types.InvalidPath, candidate, err, "cannot resolve path")
	}

	if !contains(root.Path, resolved) {
		return types.ResolvedPath{}, types.NewError(types.PathOutsideRoot, candidate,
			"path %q resolves outside the project directory %q; all file operations must stay within the project directory",
			candidate, root.Path)
	}

	rel, err := filepath.Rel(root.Path, resolved)
	if err != nil {
		rel = candidate
	}
	return types.ResolvedPath{Abs: resolved, Rel: rel}, nil
}

// canonicalize resolves symlinks in path. When the full path does not exist
// yet (a save or move destination), the deepest existing ancestor is
// resolved and the non-existent tail re-joined, so a link in any parent
// still counts.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	dir := filepath.Dir(path)
	if dir == path {
		// Filesystem root; nothing left to resolve.
		return path, nil
	}
	parent, err := canonicalize(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(path)), nil
}

// contains reports whether child equals root or lives underneath it.
// Both arguments must already be absolute and symlink-resolved.
func contains(root, child string) bool {
	if child == root {
		return true
	}
	return strings.HasPrefix(child, root+string(filepath.Separator))
}
