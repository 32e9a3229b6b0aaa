// Package layer implements drawing layers and the ordered layer stack that
// composites them into the visible output.
package layer

import (
	"math"

	"github.com/oklog/ulid/v2"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Layer is a named drawing surface with a visibility flag and a scalar opacity.
type Layer struct {
	id      string
	name    string
	surface *domain.PixelBuffer
	visible bool
	opacity float64
}

// New creates a visible, fully opaque layer whose surface is filled with fill.
func New(name string, width, height int, fill domain.RGBA) *Layer {
	return &Layer{
		id:      ulid.Make().String(),
		name:    name,
		surface: domain.NewPixelBufferWithColor(width, height, fill),
		visible: true,
		opacity: 1,
	}
}

// ID returns the layer id. It is stable for the lifetime of the layer.
func (l *Layer) ID() string { return l.id }

// Name returns the display name.
func (l *Layer) Name() string { return l.name }

// SetName changes the display name.
func (l *Layer) SetName(name string) { l.name = name }

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool { return l.visible }

// SetVisible shows or hides the layer.
func (l *Layer) SetVisible(visible bool) { l.visible = visible }

// Opacity returns the layer opacity in [0,1].
func (l *Layer) Opacity() float64 { return l.opacity }

// SetOpacity sets the opacity, clamped to [0,1].
func (l *Layer) SetOpacity(opacity float64) {
	l.opacity = clampUnit(opacity)
}

// Surface returns the mutable pixel surface.
func (l *Layer) Surface() *domain.PixelBuffer { return l.surface }

// Snapshot returns a deep copy of the surface.
func (l *Layer) Snapshot() *domain.PixelBuffer { return l.surface.Clone() }

// Restore overwrites the surface with a snapshot of the same size.
func (l *Layer) Restore(snapshot *domain.PixelBuffer) error {
	return l.surface.CopyFrom(snapshot)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
