package fsops

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mamaar/mcpfs/pkg/types"
)

const patternExcerptLen = 50

// ApplyEdits applies an ordered sequence of exact-match substitutions to
// relFile. Matching is case- and whitespace-sensitive substring search;
// only the first occurrence is replaced. Operations run strictly in order
// over one in-memory buffer, so operation i+1 sees the output of
// operation i. An operation whose pattern is gone but whose intended end
// state is already present is a no-op success; a pattern that is simply
// absent fails the whole call with EditPatternNotFound and the file is
// left untouched.
//
// With dryRun the buffer is never written but the returned diff still
// reflects the would-be change. With preserveIndentation the replacement
// text is re-indented to the leading whitespace of the matched span's
// first line, letting callers supply de-indented snippets.
func ApplyEdits(root types.Root, relFile string, edits []types.EditOperation, dryRun, preserveIndentation bool) (*types.EditResult, error) {
	rp, err := Resolve(root, relFile)
	if err != nil {
		return nil, err
	}
	original, err := ReadFile(root, relFile)
	if err != nil {
		return nil, err
	}

	buffer := original
	results := make([]types.MatchResult, 0, len(edits))

	for i, edit := range edits {
		if edit.OldText == edit.NewText {
			results = append(results, skippedResult(i, "no change needed, text already matches desired state"))
			continue
		}

		idx := strings.Index(buffer, edit.OldText)
		if idx < 0 {
			if editAlreadyApplied(buffer, edit, preserveIndentation) {
				results = append(results, skippedResult(i, "edit already applied, content already in desired state"))
				continue
			}
			return nil, types.NewError(types.EditPatternNotFound, rp.Rel,
				"pattern not found at operation %d: %q", i, excerpt(edit.OldText))
		}

		replacement := edit.NewText
		if preserveIndentation {
			replacement = reindent(edit.OldText, edit.NewText)
		}
		line := strings.Count(buffer[:idx], "\n")
		buffer = buffer[:idx] + replacement + buffer[idx+len(edit.OldText):]
		results = append(results, types.MatchResult{
			Index:     i,
			Kind:      types.MatchExact,
			MatchType: types.MatchExact.String(),
			Line:      line,
		})
	}

	changed := buffer != original

	diff := ""
	if changed {
		diff, err = unifiedDiff(original, buffer, rp.Rel)
		if err != nil {
			return nil, types.WrapError(types.OperationFailed, rp.Rel, err, "cannot compute diff for %q", relFile)
		}
	}

	if changed && !dryRun {
		if err := writeFileAtomic(rp, buffer); err != nil {
			return nil, err
		}
	}

	result := &types.EditResult{
		FilePath:     rp.Rel,
		Diff:         diff,
		MatchResults: results,
		DryRun:       dryRun,
		ChangesMade:  changed,
		NewContent:   buffer,
	}
	if !changed {
		result.Message = "no changes needed, content already in desired state"
	}
	return result, nil
}

// editAlreadyApplied reports whether the buffer already reflects the
// intended end state of edit. With indentation preservation both the
// re-indented and the verbatim replacement count.
func editAlreadyApplied(buffer string, edit types.EditOperation, preserveIndentation bool) bool {
	if strings.Contains(buffer, edit.NewText) {
		return true
	}
	if preserveIndentation {
		return strings.Contains(buffer, reindent(edit.OldText, edit.NewText))
	}
	return false
}

// reindent applies the leading whitespace of oldText's first line to every
// non-empty line of newText, but only when newText starts at column zero
// and oldText does not. Anything else is returned unchanged; re-indenting
// already indented text is how double indentation happens.
func reindent(oldText, newText string) string {
	oldIndent := leadingWhitespace(oldText)
	if oldIndent == "" || leadingWhitespace(newText) != "" {
		return newText
	}
	lines := strings.Split(newText, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = oldIndent + line
		} else {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(text string) string {
	firstLine, _, _ := strings.Cut(text, "\n")
	for i, r := range firstLine {
		if r != ' ' && r != '\t' {
			return firstLine[:i]
		}
	}
	return firstLine
}

// unifiedDiff renders a whole-file unified diff with git-style a/ b/
// headers and three lines of context.
func unifiedDiff(original, modified, relPath string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + relPath,
		ToFile:   "b/" + relPath,
		Context:  3,
	})
}

func skippedResult(index int, details string) types.MatchResult {
	return types.MatchResult{
		Index:     index,
		Kind:      types.MatchSkipped,
		MatchType: types.MatchSkipped.String(),
		Details:   details,
	}
}

// excerpt truncates a pattern for error messages.
func excerpt(text string) string {
	if len(text) <= patternExcerptLen {
		return text
	}
	return text[:patternExcerptLen-3] + "..."
}
