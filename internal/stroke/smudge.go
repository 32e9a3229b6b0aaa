package stroke

import (
	"math"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Smudge tunables.
const (
	// SmudgeStep is the distance in pixels between patch samples along a segment.
	SmudgeStep = 2.0
	// SmudgeBlend is the blend alpha at full strength.
	SmudgeBlend = 0.2
)

// smudgeSegment walks a->b in SmudgeStep increments. At each step a patch
// centered half a patch behind the step (along the direction of travel) is
// blended over the patch centered on the step. Steps whose source or
// destination patch leaves the surface are skipped.
//
// carry is the distance already travelled since the last step of the
// gesture; the first step lands SmudgeStep past that step. The returned
// value is the carry for the next segment, so samples closer together
// than SmudgeStep still accumulate into steps.
func smudgeSegment(surface *domain.PixelBuffer, a, b domain.Point, s Smudge, carry float64) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return carry
	}
	start := SmudgeStep - carry
	if start > d+1e-9 {
		return carry + d
	}
	angle := math.Atan2(dy, dx)
	cos, sin := math.Cos(angle), math.Sin(angle)

	size := max(1, int(math.Round(s.Size)))
	half := float64(size) / 2
	alpha := SmudgeBlend * s.Strength
	bounds := surface.Bounds()

	last := 0.0
	for t := start; t <= d+1e-9; t += SmudgeStep {
		last = t
		if alpha <= 0 {
			continue
		}
		px, py := a.X+cos*t, a.Y+sin*t
		dst := patchAt(px, py, size)
		src := patchAt(px-cos*half, py-sin*half, size)
		if !bounds.Contains(dst) || !bounds.Contains(src) {
			continue
		}
		sample, err := surface.Region(src)
		if err != nil {
			continue
		}
		blendPatch(surface, sample, dst, alpha)
	}
	return max(0, d-last)
}

func patchAt(cx, cy float64, size int) domain.Rect {
	return domain.NewRect(int(math.Floor(cx-float64(size)/2)), int(math.Floor(cy-float64(size)/2)), size, size)
}

// blendPatch composites sample over the dst rectangle of surface. The
// sample's own alpha scales the blend so transparent pixels drag nothing.
func blendPatch(surface, sample *domain.PixelBuffer, dst domain.Rect, alpha float64) {
	pix := surface.Pix()
	spix := sample.Pix()
	w := surface.Width()
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			si := (y*dst.Width + x) * domain.BytesPerPixel
			sa := spix[si+3]
			if sa == 0 {
				continue
			}
			di := ((dst.Y+y)*w + dst.X + x) * domain.BytesPerPixel
			d := domain.RGBA{R: pix[di], G: pix[di+1], B: pix[di+2], A: pix[di+3]}
			src := domain.RGBA{R: spix[si], G: spix[si+1], B: spix[si+2], A: 255}
			c := domain.Over(d, src, alpha*float64(sa)/255)
			pix[di], pix[di+1], pix[di+2], pix[di+3] = c.R, c.G, c.B, c.A
		}
	}
}
