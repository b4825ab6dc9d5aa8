// Package edits tracks file edits through their pending/applied lifecycle.
//
// A Manager owns the queue of pending edits and the archive of applied ones.
// It performs no I/O: callers supply current file content through a content
// source and persist the patched text themselves once Apply reports success.
// The Manager is driven by a single logical actor at a time and is not
// internally synchronized; concurrent hosts must serialize access to it.
package edits

import (
	"time"

	"github.com/sprintloop/patchkit/pkg/diff"
)

// Status describes where a FileEdit sits in its lifecycle.
type Status string

const (
	// StatusPending marks an edit waiting in the queue.
	StatusPending Status = "pending"
	// StatusApplying marks an edit whose hunks are currently being applied.
	StatusApplying Status = "applying"
	// StatusApplied marks an edit whose diff was applied in full.
	StatusApplied Status = "applied"
	// StatusFailed marks an edit aborted by an unlocatable hunk.
	StatusFailed Status = "failed"
	// StatusRejected marks an edit dismissed without touching content.
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status permits no further transitions.
// Re-attempting a failed edit requires submitting a new one.
func (s Status) Terminal() bool {
	return s == StatusApplied || s == StatusFailed || s == StatusRejected
}

// FileEdit is a diff in flight through the lifecycle.
type FileEdit struct {
	ID        string
	FilePath  string
	Diff      *diff.UnifiedDiff
	Status    Status
	Error     string
	Timestamp time.Time

	// Result holds the patched text once the edit reaches StatusApplied.
	Result string
}
