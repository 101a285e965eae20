package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestFileOpError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *FileOpError
		expected string
	}{
		{
			name: "With path",
			err: &FileOpError{
				Kind:    NotFound,
				Message: "file does not exist",
				Path:    "docs/readme.md",
			},
			expected: "docs/readme.md: file does not exist",
		},
		{
			name: "Without path",
			err: &FileOpError{
				Kind:    InvalidPath,
				Message: "path must be a non-empty string",
			},
			expected: "path must be a non-empty string",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("Error() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestFileOpError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(OperationFailed, "a.txt", cause, "write failed")

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause through Unwrap")
	}

	noCause := NewError(NotFound, "a.txt", "gone")
	if noCause.Unwrap() != nil {
		t.Errorf("expected nil cause, got %v", noCause.Unwrap())
	}
}

func TestFileOpError_IsMatchesOnKind(t *testing.T) {
	err := NewError(PathOutsideRoot, "../../etc/passwd", "escape attempt")

	if !errors.Is(err, &FileOpError{Kind: PathOutsideRoot}) {
		t.Errorf("expected errors.Is to match on PathOutsideRoot kind")
	}
	if errors.Is(err, &FileOpError{Kind: NotFound}) {
		t.Errorf("did not expect a match against a different kind")
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := []ErrorKind{
		InvalidPath, PathOutsideRoot, NotFound, NotADirectory, NotAFile,
		PermissionDenied, EditPatternNotFound, DestinationExists,
		SourceNotFound, OperationFailed,
	}
	for _, k := range kinds {
		if k.String() == "unknown error" {
			t.Errorf("kind %d has no String() case", k)
		}
	}
	if ErrorKind(99).String() != "unknown error" {
		t.Errorf("out-of-range kind should stringify as unknown")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NewError(NotAFile, "x", "msg")); got != NotAFile {
		t.Errorf("KindOf = %v, want NotAFile", got)
	}
	if got := KindOf(fmt.Errorf("plain")); got != OperationFailed {
		t.Errorf("KindOf on plain error = %v, want OperationFailed", got)
	}
}
