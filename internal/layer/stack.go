package layer

import (
	"fmt"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Stack is an ordered collection of layers, bottom to top, plus the active
// layer. The active id is empty only while the stack has no layers.
type Stack struct {
	width   int
	height  int
	layers  []*Layer
	active  string
	counter int
}

// NewStack creates an empty stack whose layers will be width x height.
func NewStack(width, height int) *Stack {
	return &Stack{width: width, height: height}
}

// Width returns the layer width.
func (s *Stack) Width() int { return s.width }

// Height returns the layer height.
func (s *Stack) Height() int { return s.height }

// Len returns the number of layers.
func (s *Stack) Len() int { return len(s.layers) }

// Layers returns the layers in paint order. The slice is a copy.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Get returns the layer with the given id.
func (s *Stack) Get(id string) (*Layer, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrLayerNotFound, id)
	}
	return s.layers[i], nil
}

// Index returns the paint-order position of a layer, or -1.
func (s *Stack) Index(id string) int { return s.indexOf(id) }

// Active returns the active layer, or nil for an empty stack.
func (s *Stack) Active() *Layer {
	i := s.indexOf(s.active)
	if i < 0 {
		return nil
	}
	return s.layers[i]
}

// ActiveID returns the active layer id, empty for an empty stack.
func (s *Stack) ActiveID() string { return s.active }

// AddLayer appends a new layer filled with fill on top of the order and
// makes it active. An empty name gets a generated "Layer N" name.
func (s *Stack) AddLayer(name string, fill domain.RGBA) *Layer {
	s.counter++
	if name == "" {
		name = fmt.Sprintf("Layer %d", s.counter)
	}
	l := New(name, s.width, s.height, fill)
	s.layers = append(s.layers, l)
	s.active = l.id
	return l
}

// DeleteLayer removes a layer. The only remaining layer cannot be deleted.
// When the active layer is removed, the layer immediately below becomes
// active, or the new bottom layer if there is none below.
func (s *Stack) DeleteLayer(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrLayerNotFound, id)
	}
	if len(s.layers) <= 1 {
		return domain.ErrLastLayerProtected
	}

	s.layers = append(s.layers[:i], s.layers[i+1:]...)

	if s.active == id {
		next := i - 1
		if next < 0 {
			next = 0
		}
		s.active = s.layers[next].id
	}
	return nil
}

// Select makes the layer with the given id active.
func (s *Stack) Select(id string) error {
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrLayerNotFound, id)
	}
	s.active = id
	return nil
}

// ToggleVisibility flips the visibility of a layer and returns the new state.
func (s *Stack) ToggleVisibility(id string) (bool, error) {
	l, err := s.Get(id)
	if err != nil {
		return false, err
	}
	l.SetVisible(!l.Visible())
	return l.Visible(), nil
}

// SetOpacity sets a layer's opacity, clamped to [0,1].
func (s *Stack) SetOpacity(id string, opacity float64) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	l.SetOpacity(opacity)
	return nil
}

// Rename changes a layer's display name.
func (s *Stack) Rename(id, name string) error {
	l, err := s.Get(id)
	if err != nil {
		return err
	}
	l.SetName(name)
	return nil
}

// MoveLayer moves a layer to a new paint-order position. The index is
// clamped into range. The active layer does not change.
func (s *Stack) MoveLayer(id string, index int) error {
	from := s.indexOf(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", domain.ErrLayerNotFound, id)
	}
	index = max(0, min(index, len(s.layers)-1))
	if index == from {
		return nil
	}

	l := s.layers[from]
	s.layers = append(s.layers[:from], s.layers[from+1:]...)
	s.layers = append(s.layers[:index], append([]*Layer{l}, s.layers[index:]...)...)
	return nil
}

// Composite flattens the visible layers into a new buffer.
func (s *Stack) Composite() *domain.PixelBuffer {
	out := domain.NewPixelBuffer(s.width, s.height)
	CompositeInto(out, s.layers)
	return out
}

func (s *Stack) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, l := range s.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}
