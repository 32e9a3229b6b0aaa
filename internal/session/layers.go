package session

import (
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/history"
	"github.com/jwulff/artstudio-go/internal/layer"
)

func (s *Session) addLayer(name string, fill domain.RGBA) *layer.Layer {
	l := s.stack.AddLayer(name, fill)
	h := history.NewManager(s.historyLimit)
	h.Reset(l.Surface())
	s.histories[l.ID()] = h
	s.recomposite()
	return l
}

// AddLayer appends a transparent layer on top and makes it active. An
// empty name gets a generated one.
func (s *Session) AddLayer(name string) (LayerState, error) {
	return s.AddLayerWithFill(name, domain.Transparent)
}

// AddLayerWithFill appends a layer filled with fill on top and makes it active.
func (s *Session) AddLayerWithFill(name string, fill domain.RGBA) (LayerState, error) {
	if err := s.requireCanvas(); err != nil {
		return LayerState{}, err
	}
	if s.engine.Stroking() {
		return LayerState{}, domain.ErrStrokeInProgress
	}
	l := s.addLayer(name, fill)
	s.log.WithFields(logrus.Fields{"layer": l.ID(), "name": l.Name()}).Debug("Layer added")
	return s.layerState(l), nil
}

// DeleteLayer removes a layer and its history. The last remaining layer
// is protected.
func (s *Session) DeleteLayer(id string) error {
	if err := s.requireCanvas(); err != nil {
		return err
	}
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	if err := s.stack.DeleteLayer(id); err != nil {
		return err
	}
	delete(s.histories, id)
	s.recomposite()
	s.log.WithFields(logrus.Fields{"layer": id, "active": s.stack.ActiveID()}).Debug("Layer deleted")
	return nil
}

// SelectLayer makes a layer the target of strokes and edits.
func (s *Session) SelectLayer(id string) error {
	if err := s.requireCanvas(); err != nil {
		return err
	}
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	return s.stack.Select(id)
}

// ToggleVisibility flips a layer's visibility and returns the new state.
func (s *Session) ToggleVisibility(id string) (bool, error) {
	if err := s.requireCanvas(); err != nil {
		return false, err
	}
	visible, err := s.stack.ToggleVisibility(id)
	if err != nil {
		return false, err
	}
	s.recomposite()
	return visible, nil
}

// SetOpacity sets a layer's opacity, clamped to [0,1].
func (s *Session) SetOpacity(id string, opacity float64) error {
	if err := s.requireCanvas(); err != nil {
		return err
	}
	if err := s.stack.SetOpacity(id, opacity); err != nil {
		return err
	}
	s.recomposite()
	return nil
}

// MoveLayer moves a layer to a paint-order index (0 is the bottom).
func (s *Session) MoveLayer(id string, index int) error {
	if err := s.requireCanvas(); err != nil {
		return err
	}
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	if err := s.stack.MoveLayer(id, index); err != nil {
		return err
	}
	s.recomposite()
	return nil
}

// RenameLayer changes a layer's display name.
func (s *Session) RenameLayer(id, name string) error {
	if err := s.requireCanvas(); err != nil {
		return err
	}
	return s.stack.Rename(id, name)
}

// LayerSurface returns a copy of a layer's pixels.
func (s *Session) LayerSurface(id string) (*domain.PixelBuffer, error) {
	if err := s.requireCanvas(); err != nil {
		return nil, err
	}
	l, err := s.stack.Get(id)
	if err != nil {
		return nil, err
	}
	return l.Snapshot(), nil
}
