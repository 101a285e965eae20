package fsops

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mamaar/mcpfs/pkg/types"
)

// ListDirectory enumerates the direct children of relDir, filtered through
// the root's ignore rules. It returns names only, in filesystem enumeration
// order; callers needing a stable order must sort.
func ListDirectory(root types.Root, relDir string) ([]string, error) {
	rp, err := Resolve(root, relDir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.NotFound, rp.Rel, "directory %q does not exist", relDir)
		}
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot access directory %q", relDir)
		}
		return nil, types.WrapError(types.OperationFailed, rp.Rel, err, "cannot stat directory %q", relDir)
	}
	if !info.IsDir() {
		return nil, types.NewError(types.NotADirectory, rp.Rel, "path %q is not a directory", relDir)
	}

	entries, err := os.ReadDir(rp.Abs)
	if err != nil {
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot read directory %q", relDir)
		}
		return nil, types.WrapError(types.OperationFailed, rp.Rel, err, "cannot read directory %q", relDir)
	}

	rules, err := BuildRuleSet(root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		rel, err := filepath.Rel(root.Path, filepath.Join(rp.Abs, entry.Name()))
		if err != nil {
			continue
		}
		if rules.IsIgnored(rel, entry.IsDir()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ListFiles enumerates every file under relDir recursively, returning
// root-relative slash paths. With useGitignore the root's ignore rules
// apply; VCS metadata directories are excluded either way.
func ListFiles(root types.Root, relDir string, useGitignore bool) ([]string, error) {
	rp, err := Resolve(root, relDir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(rp.Abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.NotFound, rp.Rel, "directory %q does not exist", relDir)
		}
		if os.IsPermission(err) {
			return nil, types.WrapError(types.PermissionDenied, rp.Rel, err, "cannot access directory %q", relDir)
		}
		return nil, types.WrapError(types.OperationFailed, rp.Rel, err, "cannot stat directory %q", relDir)
	}
	if !info.IsDir() {
		return nil, types.NewError(types.NotADirectory, rp.Rel, "path %q is not a directory", relDir)
	}

	var rules *RuleSet
	if useGitignore {
		rules, err = BuildRuleSet(root)
		if err != nil {
			return nil, err
		}
	}

	var files []string
	walkErr := filepath.WalkDir(rp.Abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, err := filepath.Rel(root.Path, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == rp.Abs {
				return nil
			}
			if _, skip := vcsDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if rules != nil && rules.IsIgnored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if rules != nil && rules.IsIgnored(rel, false) {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, types.WrapError(types.OperationFailed, rp.Rel, walkErr, "listing files in %q failed", relDir)
	}
	return files, nil
}
