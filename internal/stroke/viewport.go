package stroke

import (
	"math"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Zoom limits in percent.
const (
	MinZoom     = 10
	MaxZoom     = 800
	DefaultZoom = 100
)

// Viewport maps client coordinates to canvas pixels. Origin is the top-left
// of the canvas bounding box in client space; Zoom is a percentage.
type Viewport struct {
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Zoom    float64 `json:"zoom"`
}

// DefaultViewport returns an unzoomed viewport at the client origin.
func DefaultViewport() Viewport {
	return Viewport{Zoom: DefaultZoom}
}

// WithZoom returns the viewport with its zoom clamped into range.
func (v Viewport) WithZoom(zoom float64) Viewport {
	v.Zoom = ClampZoom(zoom)
	return v
}

// ToCanvas converts a client-space pointer position to canvas pixels.
func (v Viewport) ToCanvas(clientX, clientY float64) domain.Point {
	scale := ClampZoom(v.Zoom) / 100
	return domain.Point{
		X: (clientX - v.OriginX) / scale,
		Y: (clientY - v.OriginY) / scale,
	}
}

// ClampZoom clamps a zoom percentage into [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}
