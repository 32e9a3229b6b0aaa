package session

import (
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

// Tool returns the active tool.
func (s *Session) Tool() stroke.Tool { return s.tool }

// SetTool changes the active tool. Leaving the selection tool drops the
// selection rectangle; the clipboard is kept.
func (s *Session) SetTool(t stroke.Tool) error {
	if t == nil {
		return nil
	}
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	t = stroke.Normalize(t)
	if s.tool.Kind() == stroke.KindSelection && t.Kind() != stroke.KindSelection {
		s.selection.Clear()
	}
	s.tool = t
	s.log.WithField("tool", t.Kind()).Debug("Tool selected")
	return nil
}

// Viewport returns the current client-to-canvas mapping.
func (s *Session) Viewport() stroke.Viewport { return s.viewport }

// SetZoom sets the zoom percentage, clamped to the supported range.
func (s *Session) SetZoom(zoom float64) {
	s.viewport = s.viewport.WithZoom(zoom)
}

// SetViewportOrigin sets the client-space position of the canvas top-left.
func (s *Session) SetViewportOrigin(x, y float64) {
	s.viewport.OriginX = x
	s.viewport.OriginY = y
}

// PointerDown starts a gesture at client coordinates. With the selection
// tool it anchors a selection drag; otherwise it starts a stroke on the
// active layer. Without an active layer it does nothing.
func (s *Session) PointerDown(clientX, clientY float64) {
	if s.engine.Stroking() || s.selection.Dragging() {
		return
	}
	l, err := s.activeLayer()
	if err != nil {
		_ = s.silent("pointer down", err)
		return
	}
	p := s.viewport.ToCanvas(clientX, clientY)

	if s.tool.Kind() == stroke.KindSelection {
		s.selection.BeginDrag(p)
		return
	}
	if s.engine.Begin(l.Surface(), s.tool, p) {
		s.strokeLayer = l.ID()
		s.strokeMoved = false
		s.log.WithFields(logrus.Fields{"tool": s.tool.Kind(), "layer": l.ID()}).Debug("Stroke started")
	}
}

// PointerMove applies a sample in arrival order. Stroke samples are
// painted immediately and the output is recomposited.
func (s *Session) PointerMove(clientX, clientY float64) {
	p := s.viewport.ToCanvas(clientX, clientY)
	switch {
	case s.selection.Dragging():
		s.selection.UpdateDrag(p)
	case s.engine.Stroking():
		s.engine.Move(p)
		s.strokeMoved = true
		s.recomposite()
	}
}

// PointerUp ends the gesture. A stroke that painted at least one segment
// is committed to the layer's history.
func (s *Session) PointerUp() {
	switch {
	case s.selection.Dragging():
		s.selection.EndDrag()
	case s.engine.Stroking():
		s.endStroke()
	}
}

// PointerLeave behaves like PointerUp: an in-progress stroke is finalized
// and committed, never discarded.
func (s *Session) PointerLeave() {
	s.PointerUp()
}

func (s *Session) endStroke() {
	s.engine.End()
	id, moved := s.strokeLayer, s.strokeMoved
	s.strokeLayer, s.strokeMoved = "", false
	if !moved {
		return
	}
	l, err := s.stack.Get(id)
	if err != nil {
		return
	}
	s.commit(l)
	s.recomposite()
	s.log.WithField("layer", id).Debug("Stroke committed")
}

// Stroking reports whether a stroke is in progress.
func (s *Session) Stroking() bool { return s.engine.Stroking() }
