package domain

// SourceFile is a parsed import file: its header row and data rows.
type SourceFile struct {
	// Path is where the file was read from.
	Path string

	// Columns are the header names in file order.
	Columns []string

	// Rows are the data rows keyed by header name.
	Rows []RawRow
}

// ChangeType represents the type of file change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is a change event from a watched import directory.
type FileChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}

// ImportResult summarises one import run.
type ImportResult struct {
	// File is the imported file path.
	File string `json:"file"`

	// Kind is the record kind the rows were mapped to.
	Kind RecordKind `json:"kind"`

	// Mapping is the column mapping that was applied.
	Mapping ColumnMapping `json:"mapping"`

	// StateIDs are the IDs of the stored states, in row order.
	StateIDs []string `json:"state_ids"`

	// Merged counts rows merged into an existing state.
	Merged int `json:"merged"`
}

// MatchResult is the best existing match found for a state.
type MatchResult struct {
	// StateID is the state that was matched.
	StateID string `json:"state_id"`

	// MatchID is the best candidate, empty when nothing matched.
	MatchID string `json:"match_id,omitempty"`

	// Confidence is the candidate's score in [0, 1].
	Confidence float64 `json:"confidence"`

	// Candidates is how many records passed the search filter.
	Candidates int `json:"candidates"`
}
