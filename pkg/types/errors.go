package types

import "fmt"

// FileOpError represents errors in sandboxed file operations.
type FileOpError struct {
	Kind    ErrorKind
	Message string
	Path    string // caller-supplied relative path, when known
	Cause   error
}

func (e *FileOpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *FileOpError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is match on the error kind, so callers can test against
// a sentinel like &FileOpError{Kind: PathOutsideRoot}.
func (e *FileOpError) Is(target error) bool {
	t, ok := target.(*FileOpError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

type ErrorKind int

const (
	InvalidPath ErrorKind = iota
	PathOutsideRoot
	NotFound
	NotADirectory
	NotAFile
	PermissionDenied
	EditPatternNotFound
	DestinationExists
	SourceNotFound
	OperationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidPath:
		return "invalid path"
	case PathOutsideRoot:
		return "path outside project root"
	case NotFound:
		return "not found"
	case NotADirectory:
		return "not a directory"
	case NotAFile:
		return "not a file"
	case PermissionDenied:
		return "permission denied"
	case EditPatternNotFound:
		return "edit pattern not found"
	case DestinationExists:
		return "destination already exists"
	case SourceNotFound:
		return "source not found"
	case OperationFailed:
		return "operation failed"
	}
	return "unknown error"
}

// NewError builds a FileOpError with a formatted message.
func NewError(kind ErrorKind, path string, format string, args ...any) *FileOpError {
	return &FileOpError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	}
}

// WrapError attaches a cause so errors.Is/As keep working through the chain.
func WrapError(kind ErrorKind, path string, cause error, format string, args ...any) *FileOpError {
	return &FileOpError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Cause:   cause,
	}
}

// KindOf returns the error kind of err, or OperationFailed when err is not
// a FileOpError.
func KindOf(err error) ErrorKind {
	if fe, ok := err.(*FileOpError); ok {
		return fe.Kind
	}
	return OperationFailed
}
