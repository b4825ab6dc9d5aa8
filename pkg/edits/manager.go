package edits

import (
	"time"

	"github.com/google/uuid"

	"github.com/sprintloop/patchkit/pkg/diff"
)

// ContentSource supplies the current text of a file at apply time. The
// Manager never reads the filesystem itself.
type ContentSource func(path string) (string, error)

// Option configures a Manager.
type Option func(*Manager)

// WithContentSource installs the callback used to fetch current file content
// when an edit is applied. Without one, edits fall back to the full old
// snapshot recorded on their diff.
func WithContentSource(source ContentSource) Option {
	return func(m *Manager) {
		m.source = source
	}
}

// WithLogger routes lifecycle transitions through the given logger.
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager owns the queue of pending edits and the archive of applied ones.
// The queue preserves submission order; the index map gives O(1) lookup by id
// alongside ordered iteration.
type Manager struct {
	queue   []*FileEdit
	byID    map[string]*FileEdit
	applied []*FileEdit
	source  ContentSource
	logger  Logger
	now     func() time.Time
}

// NewManager constructs an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		byID:   make(map[string]*FileEdit),
		logger: &NoOpLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Submit registers a diff as a pending edit and returns its id.
func (m *Manager) Submit(filePath string, d *diff.UnifiedDiff) string {
	edit := &FileEdit{
		ID:        uuid.NewString(),
		FilePath:  filePath,
		Diff:      d,
		Status:    StatusPending,
		Timestamp: m.now(),
	}
	m.queue = append(m.queue, edit)
	m.byID[edit.ID] = edit
	m.logger.Info("edit submitted", Field("edit_id", edit.ID), Field("path", filePath), Field("hunks", len(d.Hunks)))
	return edit.ID
}

// Apply runs the edit's hunks sequentially against an accumulating buffer and
// returns the patched text on success. The buffer is seeded from the content
// source when one is configured, otherwise from the diff's old snapshot. Any
// hunk failure aborts the whole edit: the edit transitions to StatusFailed
// with the error recorded, previously applied hunks are discarded, and no
// partial text escapes. Unknown ids and non-pending edits are a no-op.
func (m *Manager) Apply(id string) (string, bool) {
	edit, ok := m.byID[id]
	if !ok || edit.Status != StatusPending {
		return "", false
	}

	edit.Status = StatusApplying

	content := edit.Diff.OldContent
	if m.source != nil {
		current, err := m.source(edit.FilePath)
		if err != nil {
			edit.Status = StatusFailed
			edit.Error = err.Error()
			m.logger.Error("content source failed", err, Field("edit_id", edit.ID), Field("path", edit.FilePath))
			return "", false
		}
		content = current
	}

	patched, err := diff.ApplyDiff(content, edit.Diff)
	if err != nil {
		edit.Status = StatusFailed
		edit.Error = err.Error()
		m.logger.Warn("edit failed", Field("edit_id", edit.ID), Field("path", edit.FilePath), Field("reason", err.Error()))
		return "", false
	}

	edit.Status = StatusApplied
	edit.Result = patched
	m.moveToApplied(edit)
	m.logger.Info("edit applied", Field("edit_id", edit.ID), Field("path", edit.FilePath))
	return patched, true
}

// ApplyAll applies every currently pending edit in submission order. Failures
// are independent: one edit failing does not block the rest.
func (m *Manager) ApplyAll() (applied, failed int) {
	pending := make([]string, 0, len(m.queue))
	for _, edit := range m.queue {
		if edit.Status == StatusPending {
			pending = append(pending, edit.ID)
		}
	}
	for _, id := range pending {
		if _, ok := m.Apply(id); ok {
			applied++
		} else {
			failed++
		}
	}
	return applied, failed
}

// Reject dismisses a pending edit without touching any content. Rejecting a
// non-pending edit, or one already rejected, is a no-op.
func (m *Manager) Reject(id string) bool {
	edit, ok := m.byID[id]
	if !ok || edit.Status != StatusPending {
		return false
	}
	edit.Status = StatusRejected
	m.logger.Info("edit rejected", Field("edit_id", edit.ID), Field("path", edit.FilePath))
	return true
}

// Clear drops all pending and applied edits. Already-applied content changes
// are not undone.
func (m *Manager) Clear() {
	m.queue = nil
	m.applied = nil
	m.byID = make(map[string]*FileEdit)
	m.logger.Debug("edit queues cleared")
}

// Get returns the edit with the given id, pending or archived.
func (m *Manager) Get(id string) (*FileEdit, bool) {
	edit, ok := m.byID[id]
	return edit, ok
}

// Pending returns the edits still in the queue, in submission order. Failed
// and rejected edits remain visible here for inspection.
func (m *Manager) Pending() []*FileEdit {
	return append([]*FileEdit(nil), m.queue...)
}

// Applied returns the archive of applied edits in application order.
func (m *Manager) Applied() []*FileEdit {
	return append([]*FileEdit(nil), m.applied...)
}

// moveToApplied moves the edit from the pending queue into the archive. The
// edit is moved, not copied: the same *FileEdit stays reachable by id.
func (m *Manager) moveToApplied(edit *FileEdit) {
	for i, queued := range m.queue {
		if queued.ID == edit.ID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			break
		}
	}
	m.applied = append(m.applied, edit)
}
