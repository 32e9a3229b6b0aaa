// Package selection holds the rectangular selection and the clipboard.
package selection

import "github.com/jwulff/artstudio-go/internal/domain"

// Model is the current selection rectangle (or none) plus clipboard pixels.
// The clipboard outlives the selection; it is replaced only by another copy
// or cut, or dropped by ClearClipboard.
type Model struct {
	rect      *domain.Rect
	anchor    domain.Point
	dragging  bool
	clipboard *domain.PixelBuffer
}

// NewModel creates a model with no selection and an empty clipboard.
func NewModel() *Model {
	return &Model{}
}

// BeginDrag starts a selection drag at p, replacing any selection.
func (m *Model) BeginDrag(p domain.Point) {
	m.anchor = p
	m.dragging = true
	r := domain.NormalizeRect(p, p)
	m.rect = &r
}

// UpdateDrag normalizes the rectangle between the drag anchor and p.
func (m *Model) UpdateDrag(p domain.Point) {
	if !m.dragging {
		return
	}
	r := domain.NormalizeRect(m.anchor, p)
	m.rect = &r
}

// EndDrag finishes the drag; the rectangle stays selected.
func (m *Model) EndDrag() {
	m.dragging = false
}

// Dragging reports whether a selection drag is in progress.
func (m *Model) Dragging() bool { return m.dragging }

// Set replaces the selection with r.
func (m *Model) Set(r domain.Rect) {
	m.dragging = false
	m.rect = &r
}

// Clear drops the selection. The clipboard is kept.
func (m *Model) Clear() {
	m.rect = nil
	m.dragging = false
}

// Rect returns the selection rectangle, if any.
func (m *Model) Rect() (domain.Rect, bool) {
	if m.rect == nil {
		return domain.Rect{}, false
	}
	return *m.rect, true
}

// Effective returns the selection clipped to bounds. The boolean is false
// when there is no selection or the clipped area is zero.
func (m *Model) Effective(bounds domain.Rect) (domain.Rect, bool) {
	if m.rect == nil {
		return domain.Rect{}, false
	}
	r := bounds.Intersect(*m.rect)
	if r.Empty() {
		return domain.Rect{}, false
	}
	return r, true
}

// Clipboard returns the clipboard buffer, or nil. Callers must not mutate it.
func (m *Model) Clipboard() *domain.PixelBuffer { return m.clipboard }

// ClearClipboard drops the clipboard contents.
func (m *Model) ClearClipboard() { m.clipboard = nil }

// Copy reads the pixels under the selection into the clipboard.
func (m *Model) Copy(surface *domain.PixelBuffer) error {
	r, ok := m.Effective(surface.Bounds())
	if !ok {
		return domain.ErrEmptySelection
	}
	region, err := surface.Region(r)
	if err != nil {
		return err
	}
	m.clipboard = region
	return nil
}

// Cut copies the selection to the clipboard, clears it on the surface and
// drops the selection.
func (m *Model) Cut(surface *domain.PixelBuffer) error {
	r, ok := m.Effective(surface.Bounds())
	if !ok {
		return domain.ErrEmptySelection
	}
	region, err := surface.Region(r)
	if err != nil {
		return err
	}
	if err := surface.ClearRegion(r, domain.Transparent); err != nil {
		return err
	}
	m.clipboard = region
	m.Clear()
	return nil
}

// Delete clears the selected pixels without copying and drops the selection.
func (m *Model) Delete(surface *domain.PixelBuffer) error {
	r, ok := m.Effective(surface.Bounds())
	if !ok {
		return domain.ErrEmptySelection
	}
	if err := surface.ClearRegion(r, domain.Transparent); err != nil {
		return err
	}
	m.Clear()
	return nil
}

// Paste writes the clipboard at the selection's top-left corner and drops
// the selection. A clipboard that would not fit entirely is rejected.
func (m *Model) Paste(surface *domain.PixelBuffer) error {
	if m.clipboard == nil || m.rect == nil || m.rect.Empty() {
		return domain.ErrEmptySelection
	}
	if err := surface.PutRegion(m.clipboard, m.rect.X, m.rect.Y); err != nil {
		return err
	}
	m.Clear()
	return nil
}
