package types

// ResolvedPath is the output of path resolution: an absolute path proven to
// live under its root, plus the caller-supplied form for messages.
type ResolvedPath struct {
	Abs string // canonical absolute path
	Rel string // path as the caller supplied it, relative to the root
}

// EditOperation is one exact-match substitution. Operations are applied in
// sequence; operation i+1 sees the buffer as mutated by operation i.
type EditOperation struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

// MatchKind classifies the outcome of a single edit operation.
type MatchKind int

const (
	MatchExact   MatchKind = iota // pattern found, replacement applied
	MatchSkipped                  // no-op: identical texts or edit already applied
	MatchFailed                   // pattern not found and end state absent
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSkipped:
		return "skipped"
	case MatchFailed:
		return "failed"
	}
	return "unknown"
}

// MatchResult reports what happened to the edit operation at Index.
type MatchResult struct {
	Index     int       `json:"edit_index"`
	Kind      MatchKind `json:"-"`
	MatchType string    `json:"match_type"`
	Line      int       `json:"line_index,omitempty"` // 0-based line of the match
	Details   string    `json:"details,omitempty"`
}

// EditResult is the outcome of applying an edit sequence to one file.
type EditResult struct {
	FilePath     string        `json:"file_path"`
	Diff         string        `json:"diff"`
	MatchResults []MatchResult `json:"match_results"`
	DryRun       bool          `json:"dry_run"`
	ChangesMade  bool          `json:"changes_made"`
	Message      string        `json:"message,omitempty"`
	// NewContent is the final buffer. On a dry run it is what would have
	// been written; otherwise it is what was written.
	NewContent string `json:"-"`
}

// MoveMethod records how a move was ultimately performed.
type MoveMethod int

const (
	MoveVersionControlled MoveMethod = iota
	MoveFilesystem
)

func (m MoveMethod) String() string {
	switch m {
	case MoveVersionControlled:
		return "git"
	case MoveFilesystem:
		return "filesystem"
	}
	return "unknown"
}

// MoveRecord describes one completed move. Created per call, never persisted.
type MoveRecord struct {
	Source      string     `json:"source"`
	Destination string     `json:"destination"`
	Method      MoveMethod `json:"-"`
	MethodName  string     `json:"method"`
	Message     string     `json:"message,omitempty"`
}
