package diff

// UnknownPath is the sentinel file path used when diff text carries no
// recognizable --- / +++ headers.
const UnknownPath = "unknown"

// Hunk captures one contiguous change region within a file.
//
// OldCount and NewCount are advisory for hunks parsed from external text: the
// applier trusts the actual line slices, never the declared counts. Hunks
// produced by Generate always keep counts equal to the slice lengths.
type Hunk struct {
	ID       string
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	// OldLines are the exact lines being removed, without the leading "-".
	OldLines []string
	// NewLines are the exact lines being inserted, without the leading "+".
	NewLines []string

	// ContextBefore and ContextAfter carry unchanged surrounding lines for
	// rendering and loose-matching heuristics; they are not authoritative.
	ContextBefore []string
	ContextAfter  []string
}

// UnifiedDiff is one file's complete patch: an ordered sequence of hunks
// applied strictly in order.
type UnifiedDiff struct {
	FilePath string
	Hunks    []Hunk

	// OldContent and NewContent are full snapshots, populated only when the
	// diff was generated in-process. Diffs parsed from bare text leave them
	// empty and the applier works off caller-supplied content instead.
	OldContent string
	NewContent string

	// Language is a rendering hint derived from the file extension. It has no
	// effect on matching semantics.
	Language string
}
