// Package domain contains the core pixel and canvas types for the drawing engine.
package domain

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGBA represents a non-premultiplied color with 8-bit channels.
type RGBA struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = RGBA{}
	Black       = RGBA{A: 255}
	White       = RGBA{R: 255, G: 255, B: 255, A: 255}
)

// NewRGBA creates a new color.
func NewRGBA(r, g, b, a uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Opaque creates a fully opaque color.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Equals checks if two colors are equal.
func (c RGBA) Equals(other RGBA) bool {
	return c == other
}

// WithAlpha returns the color with its alpha channel replaced.
func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// Hex returns the color as #RRGGBB, ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA (the # is optional).
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// String returns a string representation of the color.
func (c RGBA) String() string {
	return fmt.Sprintf("RGBA(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Over blends src onto dst with straight (non-premultiplied) source-over,
// where alpha is the effective source coverage in [0,1]. For opaque pixels
// this reduces to dst*(1-alpha) + src*alpha per channel.
func Over(dst, src RGBA, alpha float64) RGBA {
	if alpha <= 0 {
		return dst
	}
	if alpha > 1 {
		alpha = 1
	}
	da := float64(dst.A) / 255
	outA := alpha + da*(1-alpha)
	if outA <= 0 {
		return Transparent
	}
	mix := func(s, d uint8) uint8 {
		v := (float64(s)*alpha + float64(d)*da*(1-alpha)) / outA
		return clampByte(v)
	}
	return RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: clampByte(outA * 255),
	}
}

// NRGBA converts the color to the standard library's non-premultiplied color.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func colorNRGBA(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
