package render

import "github.com/jwulff/artstudio-go/internal/domain"

// Swatches offered by the color panel.
var (
	// ClassicPalette is the general-purpose swatch row.
	ClassicPalette = []domain.RGBA{
		domain.Opaque(0xC2, 0x27, 0x2D), // red
		domain.Opaque(0xF8, 0x93, 0x1F), // orange
		domain.Opaque(0xFF, 0xFF, 0x01), // yellow
		domain.Opaque(0x00, 0x92, 0x45), // green
		domain.Opaque(0x01, 0x93, 0xD9), // sky
		domain.Opaque(0x0C, 0x04, 0xED), // blue
		domain.Opaque(0x61, 0x2F, 0x90), // purple
		domain.Opaque(0xF0, 0x6E, 0xAA), // pink
		domain.Opaque(0xF2, 0x6D, 0x7D), // salmon
		domain.Opaque(0x99, 0x99, 0x99), // gray
	}

	// HarmonyPalette is built around the default indigo brush color.
	HarmonyPalette = []domain.RGBA{
		domain.Opaque(0x5B, 0x2A, 0x86),
		domain.Opaque(0x8A, 0x2B, 0xE2),
		domain.Opaque(0xE6, 0xE6, 0xFA),
		domain.Opaque(0x4B, 0x00, 0x82),
		domain.Opaque(0x3D, 0x00, 0x6A),
	}
)

// LerpColor linearly interpolates between two colors, alpha included.
func LerpColor(a, b domain.RGBA, t float64) domain.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + t*float64(int(y)-int(x)))
	}
	return domain.NewRGBA(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A))
}

// Brightness returns the mean of the color channels weighted by alpha, 0-255.
func Brightness(c domain.RGBA) int {
	return (int(c.R) + int(c.G) + int(c.B)) * int(c.A) / (3 * 255)
}
