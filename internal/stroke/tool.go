// Package stroke turns pointer samples into pixel mutations on a layer
// surface: brush and eraser path stroking and smudge sampling.
package stroke

import (
	"fmt"
	"math"
	"strings"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Kind names a tool.
type Kind string

const (
	KindBrush     Kind = "brush"
	KindEraser    Kind = "eraser"
	KindSelection Kind = "selection"
	KindSmudge    Kind = "smudge"
)

// Size and default limits shared by the drawing tools.
const (
	MinSize = 1
	MaxSize = 500

	DefaultSize           = 50
	DefaultOpacity        = 0.8
	DefaultSmudgeStrength = 0.5
)

// DefaultColor is the initial brush color (indigo, #4B0082).
var DefaultColor = domain.Opaque(0x4B, 0x00, 0x82)

// ParseKind parses a tool name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBrush, KindEraser, KindSelection, KindSmudge:
		return k, nil
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Tool is one of Brush, Eraser, Smudge or Selection.
type Tool interface {
	Kind() Kind
	normalize() Tool
}

// Brush paints round-capped strokes over existing pixels.
type Brush struct {
	Size    float64
	Opacity float64
	Color   domain.RGBA
}

// Eraser clears pixels along round-capped strokes.
type Eraser struct {
	Size    float64
	Opacity float64
}

// Smudge drags pixels from behind the pointer along the direction of travel.
type Smudge struct {
	Size     float64
	Strength float64
}

// Selection drags out a selection rectangle; it never paints.
type Selection struct{}

func (Brush) Kind() Kind     { return KindBrush }
func (Eraser) Kind() Kind    { return KindEraser }
func (Smudge) Kind() Kind    { return KindSmudge }
func (Selection) Kind() Kind { return KindSelection }

func (b Brush) normalize() Tool {
	b.Size = clampSize(b.Size)
	b.Opacity = clampUnit(b.Opacity)
	return b
}

func (e Eraser) normalize() Tool {
	e.Size = clampSize(e.Size)
	e.Opacity = clampUnit(e.Opacity)
	return e
}

func (s Smudge) normalize() Tool {
	s.Size = clampSize(s.Size)
	s.Strength = clampUnit(s.Strength)
	return s
}

func (s Selection) normalize() Tool { return s }

// Normalize clamps a tool's parameters into their valid ranges.
func Normalize(t Tool) Tool {
	if t == nil {
		return nil
	}
	return t.normalize()
}

// DefaultBrush returns the brush the application starts with.
func DefaultBrush() Brush {
	return Brush{Size: DefaultSize, Opacity: DefaultOpacity, Color: DefaultColor}
}

// DefaultTool returns the default parameters for a tool kind.
func DefaultTool(k Kind) Tool {
	switch k {
	case KindEraser:
		return Eraser{Size: DefaultSize, Opacity: 1}
	case KindSmudge:
		return Smudge{Size: DefaultSize, Strength: DefaultSmudgeStrength}
	case KindSelection:
		return Selection{}
	default:
		return DefaultBrush()
	}
}

func clampSize(v float64) float64 {
	if math.IsNaN(v) || v < MinSize {
		return MinSize
	}
	if v > MaxSize {
		return MaxSize
	}
	return v
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
