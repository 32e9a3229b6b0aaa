package session

import (
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Undo restores the previous snapshot of the active layer. It does nothing
// at the oldest snapshot and is rejected while a stroke is in progress.
func (s *Session) Undo() error {
	return s.step("undo", false)
}

// Redo reapplies the next snapshot of the active layer.
func (s *Session) Redo() error {
	return s.step("redo", true)
}

func (s *Session) step(op string, forward bool) error {
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	l, err := s.activeLayer()
	if err != nil {
		return s.silent(op, err)
	}
	h, ok := s.histories[l.ID()]
	if !ok {
		return nil
	}
	move := h.Undo
	if forward {
		move = h.Redo
	}
	buf, ok := move()
	if !ok {
		return nil
	}
	if err := l.Restore(buf); err != nil {
		return err
	}
	s.recomposite()
	s.log.WithFields(logrus.Fields{"op": op, "layer": l.ID(), "index": h.Index()}).Debug("History moved")
	return nil
}

// SelectRect replaces the selection with r.
func (s *Session) SelectRect(r domain.Rect) {
	s.selection.Set(r)
}

// ClearSelection drops the selection rectangle. The clipboard is kept.
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// Selection returns the selection rectangle, if any.
func (s *Session) Selection() (domain.Rect, bool) {
	return s.selection.Rect()
}

// Clipboard returns the clipboard buffer, or nil.
func (s *Session) Clipboard() *domain.PixelBuffer {
	return s.selection.Clipboard()
}

// Copy reads the selected pixels of the active layer into the clipboard.
func (s *Session) Copy() error {
	l, err := s.activeLayer()
	if err != nil {
		return s.silent("copy", err)
	}
	if err := s.selection.Copy(l.Surface()); err != nil {
		return s.silent("copy", err)
	}
	s.recomposite()
	return nil
}

// Cut copies the selection to the clipboard, clears it and commits one snapshot.
func (s *Session) Cut() error {
	return s.mutate("cut", s.selection.Cut)
}

// Delete clears the selection without copying and commits one snapshot.
func (s *Session) Delete() error {
	return s.mutate("delete", s.selection.Delete)
}

// Paste writes the clipboard at the selection's top-left corner and
// commits one snapshot. A paste that would not fit is rejected with
// domain.ErrOutOfBounds and changes nothing.
func (s *Session) Paste() error {
	return s.mutate("paste", s.selection.Paste)
}

func (s *Session) mutate(op string, apply func(*domain.PixelBuffer) error) error {
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	l, err := s.activeLayer()
	if err != nil {
		return s.silent(op, err)
	}
	if err := apply(l.Surface()); err != nil {
		return s.silent(op, err)
	}
	s.commit(l)
	s.recomposite()
	s.log.WithFields(logrus.Fields{"op": op, "layer": l.ID()}).Debug("Edit committed")
	return nil
}
