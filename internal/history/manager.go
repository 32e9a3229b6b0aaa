// Package history implements a bounded linear undo/redo log of pixel
// buffer snapshots.
package history

import "github.com/jwulff/artstudio-go/internal/domain"

// DefaultLimit is the default maximum number of snapshots kept.
const DefaultLimit = 30

// Manager keeps snapshots of a single surface. While non-empty,
// 0 <= current < len(snapshots) <= limit, and the snapshot at current
// matches what is painted on the tracked surface.
type Manager struct {
	snapshots []*domain.PixelBuffer
	current   int
	limit     int
}

// NewManager creates an empty history holding at most limit snapshots.
// A limit below 1 falls back to DefaultLimit.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit, current: -1}
}

// Limit returns the snapshot cap.
func (m *Manager) Limit() int { return m.limit }

// Len returns the number of stored snapshots.
func (m *Manager) Len() int { return len(m.snapshots) }

// Index returns the current position, or -1 when empty.
func (m *Manager) Index() int { return m.current }

// Snapshot discards every entry after the current one, appends a copy of
// buf and makes it current. When the cap is exceeded the oldest entry is
// evicted and the current index shifts with it.
func (m *Manager) Snapshot(buf *domain.PixelBuffer) {
	clear(m.snapshots[m.current+1:])
	m.snapshots = append(m.snapshots[:m.current+1], buf.Clone())
	m.current = len(m.snapshots) - 1

	if over := len(m.snapshots) - m.limit; over > 0 {
		clear(m.snapshots[:over])
		m.snapshots = m.snapshots[over:]
		m.current -= over
	}
}

// Reset drops every snapshot and seeds the log with buf.
func (m *Manager) Reset(buf *domain.PixelBuffer) {
	clear(m.snapshots)
	m.snapshots = m.snapshots[:0]
	m.current = -1
	m.Snapshot(buf)
}

// CanUndo reports whether Undo would move.
func (m *Manager) CanUndo() bool { return m.current > 0 }

// CanRedo reports whether Redo would move.
func (m *Manager) CanRedo() bool { return m.current >= 0 && m.current < len(m.snapshots)-1 }

// Undo steps back and returns a copy of the snapshot to restore. It
// returns false when already at the oldest entry.
func (m *Manager) Undo() (*domain.PixelBuffer, bool) {
	if !m.CanUndo() {
		return nil, false
	}
	m.current--
	return m.snapshots[m.current].Clone(), true
}

// Redo steps forward and returns a copy of the snapshot to restore. It
// returns false when already at the newest entry.
func (m *Manager) Redo() (*domain.PixelBuffer, bool) {
	if !m.CanRedo() {
		return nil, false
	}
	m.current++
	return m.snapshots[m.current].Clone(), true
}

// Current returns a copy of the current snapshot.
func (m *Manager) Current() (*domain.PixelBuffer, bool) {
	if m.current < 0 {
		return nil, false
	}
	return m.snapshots[m.current].Clone(), true
}
