package layer

import "github.com/jwulff/artstudio-go/internal/domain"

// CompositeInto clears dst and paints every visible layer onto it, bottom
// to top. Each pixel is blended with the layer opacity scaled by the pixel's
// own alpha, so an opaque pixel gives out = out*(1-opacity) + src*opacity.
func CompositeInto(dst *domain.PixelBuffer, layers []*Layer) {
	dst.Clear()
	out := dst.Pix()

	for _, l := range layers {
		if !l.visible || l.opacity <= 0 {
			continue
		}
		src := l.surface.Pix()
		if len(src) != len(out) {
			continue
		}
		for i := 0; i < len(out); i += domain.BytesPerPixel {
			sa := src[i+3]
			if sa == 0 {
				continue
			}
			alpha := l.opacity * float64(sa) / 255
			d := domain.RGBA{R: out[i], G: out[i+1], B: out[i+2], A: out[i+3]}
			s := domain.RGBA{R: src[i], G: src[i+1], B: src[i+2], A: 255}
			c := domain.Over(d, s, alpha)
			out[i], out[i+1], out[i+2], out[i+3] = c.R, c.G, c.B, c.A
		}
	}
}
