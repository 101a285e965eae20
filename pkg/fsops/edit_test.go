package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/mcpfs/pkg/types"
)

func edit(old, new string) types.EditOperation {
	return types.EditOperation{OldText: old, NewText: new}
}

func TestApplyEdits_SingleReplacement(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "cfg.py", "DEBUG = False\n")

	result, err := ApplyEdits(root, "cfg.py", []types.EditOperation{
		edit("DEBUG = False", "DEBUG = True"),
	}, false, false)
	require.NoError(t, err)

	assert.True(t, result.ChangesMade)
	assert.Equal(t, "DEBUG = True\n", result.NewContent)
	assert.Contains(t, result.Diff, "-DEBUG = False")
	assert.Contains(t, result.Diff, "+DEBUG = True")

	onDisk, err := ReadFile(root, "cfg.py")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG = True\n", onDisk)
}

func TestApplyEdits_SequentialOrdering(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "A")

	// The second operation matches the output of the first, not the
	// original content.
	result, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("A", "B"),
		edit("B", "C"),
	}, false, false)
	require.NoError(t, err)

	assert.Equal(t, "C", result.NewContent)
	require.Len(t, result.MatchResults, 2)
	assert.Equal(t, types.MatchExact, result.MatchResults[0].Kind)
	assert.Equal(t, types.MatchExact, result.MatchResults[1].Kind)
}

func TestApplyEdits_FirstOccurrenceOnly(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "x x x")

	result, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("x", "y"),
	}, false, false)
	require.NoError(t, err)
	assert.Equal(t, "y x x", result.NewContent)
}

func TestApplyEdits_Idempotence(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "cfg.py", "DEBUG = False\n")
	edits := []types.EditOperation{edit("DEBUG = False", "DEBUG = True")}

	first, err := ApplyEdits(root, "cfg.py", edits, false, false)
	require.NoError(t, err)
	assert.True(t, first.ChangesMade)

	// Second run finds the end state already present: a no-op success,
	// not an error.
	second, err := ApplyEdits(root, "cfg.py", edits, false, false)
	require.NoError(t, err)
	assert.False(t, second.ChangesMade)
	assert.Empty(t, second.Diff)
	require.Len(t, second.MatchResults, 1)
	assert.Equal(t, types.MatchSkipped, second.MatchResults[0].Kind)
	assert.NotEmpty(t, second.Message)
}

func TestApplyEdits_PatternNotFound(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "unrelated content\n")

	_, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("first match", "first replacement"),
	}, false, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &types.FileOpError{Kind: types.EditPatternNotFound}))
	assert.Contains(t, err.Error(), "operation 0")
	assert.Contains(t, err.Error(), "first match")
}

func TestApplyEdits_PatternNotFoundLeavesFileUntouched(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "alpha\nbeta\n")

	_, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("alpha", "ALPHA"),
		edit("gamma", "GAMMA"),
	}, false, false)
	require.Error(t, err)

	onDisk, readErr := ReadFile(root, "f.txt")
	require.NoError(t, readErr)
	assert.Equal(t, "alpha\nbeta\n", onDisk, "a failing edit sequence must not write partial results")
}

func TestApplyEdits_LongPatternTruncatedInError(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "short\n")

	long := strings.Repeat("z", 200)
	_, err := ApplyEdits(root, "f.txt", []types.EditOperation{edit(long, "y")}, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 200)
}

func TestApplyEdits_DryRunPurity(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "cfg.py", "DEBUG = False\n")

	result, err := ApplyEdits(root, "cfg.py", []types.EditOperation{
		edit("DEBUG = False", "DEBUG = True"),
	}, true, false)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.True(t, result.ChangesMade)
	assert.Contains(t, result.Diff, "+DEBUG = True")

	onDisk, err := ReadFile(root, "cfg.py")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG = False\n", onDisk, "dry run must never touch the file")
}

func TestApplyEdits_EmptyEditsIsNoOp(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "content\n")

	result, err := ApplyEdits(root, "f.txt", nil, false, false)
	require.NoError(t, err)
	assert.False(t, result.ChangesMade)
	assert.Empty(t, result.Diff)
	assert.Empty(t, result.MatchResults)
}

func TestApplyEdits_IdenticalOldNewSkipped(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "same\n")

	result, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("same", "same"),
	}, false, false)
	require.NoError(t, err)
	require.Len(t, result.MatchResults, 1)
	assert.Equal(t, types.MatchSkipped, result.MatchResults[0].Kind)
	assert.False(t, result.ChangesMade)
}

func TestApplyEdits_PreserveIndentation(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.py", "def f():\n    return 1\n")

	// Replacement supplied de-indented; the matched span's leading
	// whitespace is applied to it.
	result, err := ApplyEdits(root, "f.py", []types.EditOperation{
		edit("    return 1", "return 2"),
	}, false, true)
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    return 2\n", result.NewContent)
}

func TestApplyEdits_PreserveIndentationMultiline(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.py", "def f():\n    return 1\n")

	result, err := ApplyEdits(root, "f.py", []types.EditOperation{
		edit("    return 1", "x = 2\nreturn x"),
	}, false, true)
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    x = 2\n    return x\n", result.NewContent)
}

func TestApplyEdits_PreserveIndentationLeavesIndentedInputAlone(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.py", "def f():\n    return 1\n")

	// Already-indented replacements pass through untouched; re-indenting
	// them would double the indent.
	result, err := ApplyEdits(root, "f.py", []types.EditOperation{
		edit("    return 1", "    return 2"),
	}, false, true)
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    return 2\n", result.NewContent)
}

func TestApplyEdits_AlreadyAppliedWithIndentation(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.py", "def f():\n    return 2\n")

	result, err := ApplyEdits(root, "f.py", []types.EditOperation{
		edit("    return 1", "return 2"),
	}, false, true)
	require.NoError(t, err)
	require.Len(t, result.MatchResults, 1)
	assert.Equal(t, types.MatchSkipped, result.MatchResults[0].Kind)
	assert.False(t, result.ChangesMade)
}

func TestApplyEdits_DiffCoversWholeFileOnce(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "f.txt", "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight\nnine\nten\n")

	result, err := ApplyEdits(root, "f.txt", []types.EditOperation{
		edit("two", "TWO"),
		edit("nine", "NINE"),
	}, false, false)
	require.NoError(t, err)

	// One diff over the final buffer: both hunks, a/ b/ headers.
	assert.Contains(t, result.Diff, "--- a/f.txt")
	assert.Contains(t, result.Diff, "+++ b/f.txt")
	assert.Contains(t, result.Diff, "+TWO")
	assert.Contains(t, result.Diff, "+NINE")
}

func TestApplyEdits_TargetErrors(t *testing.T) {
	root := testRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root.Path, "adir"), 0o755))

	_, err := ApplyEdits(root, "missing.txt", []types.EditOperation{edit("a", "b")}, false, false)
	assert.True(t, errors.Is(err, &types.FileOpError{Kind: types.NotFound}))

	_, err = ApplyEdits(root, "adir", []types.EditOperation{edit("a", "b")}, false, false)
	assert.True(t, errors.Is(err, &types.FileOpError{Kind: types.NotAFile}))

	_, err = ApplyEdits(root, "../out.txt", []types.EditOperation{edit("a", "b")}, false, false)
	assert.True(t, errors.Is(err, &types.FileOpError{Kind: types.PathOutsideRoot}))
}
