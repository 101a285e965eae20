package fsops

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/mamaar/mcpfs/pkg/types"
)

// vcsDirs are excluded from every listing regardless of ignore-file content.
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// RuleSet holds the compiled .gitignore files of one root, ordered shallow
// to deep. It is rebuilt for every enumeration call; staleness is cheaper
// to avoid than a cache is to keep correct.
type RuleSet struct {
	files []ignoreFile
}

type ignoreFile struct {
	dir     string // directory containing the .gitignore, relative to root ("." for the root itself)
	matcher *ignore.GitIgnore
}

// BuildRuleSet discovers and compiles every .gitignore under root. Absence
// of any ignore file yields a RuleSet matching nothing; only the
// unconditional VCS-metadata exclusion applies then.
func BuildRuleSet(root types.Root) (*RuleSet, error) {
	rs := &RuleSet{}

	err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: treat as having no ignore file
		}
		if d.IsDir() {
			if _, skip := vcsDirs[d.Name()]; skip && path != root.Path {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ".gitignore" {
			return nil
		}
		matcher, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			// A malformed or vanished ignore file must not break listing.
			return nil
		}
		rel, err := filepath.Rel(root.Path, filepath.Dir(path))
		if err != nil {
			return nil
		}
		rs.files = append(rs.files, ignoreFile{dir: rel, matcher: matcher})
		return nil
	})
	if err != nil {
		return nil, types.WrapError(types.OperationFailed, "", err, "scanning ignore files failed")
	}

	// Shallow to deep, so reversed iteration asks the most specific file first.
	sort.Slice(rs.files, func(i, j int) bool {
		return depth(rs.files[i].dir) < depth(rs.files[j].dir)
	})
	return rs, nil
}

// IsIgnored classifies a root-relative path. The deepest .gitignore whose
// patterns match decides, which gives nested files the conventional
// override over shallower ones; negation inside a file is handled by the
// matcher itself.
func (rs *RuleSet) IsIgnored(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	for _, seg := range strings.Split(rel, "/") {
		if _, skip := vcsDirs[seg]; skip {
			return true
		}
	}

	for i := len(rs.files) - 1; i >= 0; i-- {
		f := rs.files[i]
		sub, ok := underDir(f.dir, rel)
		if !ok {
			continue
		}
		probe := sub
		if isDir {
			probe += "/"
		}
		matched, how := f.matcher.MatchesPathHow(probe)
		if how != nil {
			return matched
		}
	}
	return false
}

// underDir rewrites a root-relative path to be relative to dir, reporting
// whether the path is inside dir at all.
func underDir(dir, rel string) (string, bool) {
	if dir == "." {
		return rel, true
	}
	prefix := filepath.ToSlash(dir) + "/"
	if !strings.HasPrefix(rel, prefix) {
		return "", false
	}
	return rel[len(prefix):], true
}

func depth(dir string) int {
	if dir == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(dir), "/") + 1
}
