package stroke

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// segmentPainter rasterizes round-capped line segments into a coverage
// mask and applies them to a surface. The rasterizer and mask are reused
// across samples of a stroke.
type segmentPainter struct {
	rast *vector.Rasterizer
	mask *image.Alpha
}

// capsule computes coverage for the segment a->b with the given line width
// clipped to bounds. It returns the covered box in surface coordinates and
// a mask of the same size, or false when nothing is covered.
func (p *segmentPainter) capsule(a, b domain.Point, width float64, bounds domain.Rect) (domain.Rect, *image.Alpha, bool) {
	r := width / 2
	box := domain.Rect{
		X: int(math.Floor(math.Min(a.X, b.X)-r)) - 1,
		Y: int(math.Floor(math.Min(a.Y, b.Y)-r)) - 1,
	}
	box.Width = int(math.Ceil(math.Max(a.X, b.X)+r)) + 1 - box.X
	box.Height = int(math.Ceil(math.Max(a.Y, b.Y)+r)) + 1 - box.Y
	box = bounds.Intersect(box)
	if box.Empty() {
		return box, nil, false
	}

	if p.rast == nil {
		p.rast = vector.NewRasterizer(box.Width, box.Height)
	} else {
		p.rast.Reset(box.Width, box.Height)
	}
	if p.mask == nil || p.mask.Rect.Dx() < box.Width || p.mask.Rect.Dy() < box.Height {
		p.mask = image.NewAlpha(image.Rect(0, 0, box.Width, box.Height))
	}
	mask := p.mask.SubImage(image.Rect(0, 0, box.Width, box.Height)).(*image.Alpha)
	for y := 0; y < box.Height; y++ {
		clear(mask.Pix[y*mask.Stride : y*mask.Stride+box.Width])
	}

	ox, oy := float64(box.X), float64(box.Y)
	addCapsule(p.rast, a.X-ox, a.Y-oy, b.X-ox, b.Y-oy, r)
	p.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return box, mask, true
}

// addCapsule appends the outline of a stroked segment with round caps:
// two parallel edges joined by a half circle at each end.
func addCapsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	angle := 0.0
	if length > 0 {
		angle = math.Atan2(dy, dx)
	}
	steps := arcSteps(r)

	// Half circle around b from +normal through the direction of travel to -normal,
	// then around a from -normal back to +normal.
	start := angle - math.Pi/2
	z.MoveTo(float32(bx+r*math.Cos(start)), float32(by+r*math.Sin(start)))
	for i := 1; i <= steps; i++ {
		t := start + math.Pi*float64(i)/float64(steps)
		z.LineTo(float32(bx+r*math.Cos(t)), float32(by+r*math.Sin(t)))
	}
	start = angle + math.Pi/2
	z.LineTo(float32(ax+r*math.Cos(start)), float32(ay+r*math.Sin(start)))
	for i := 1; i <= steps; i++ {
		t := start + math.Pi*float64(i)/float64(steps)
		z.LineTo(float32(ax+r*math.Cos(t)), float32(ay+r*math.Sin(t)))
	}
	z.ClosePath()
}

func arcSteps(r float64) int {
	return max(8, min(64, int(math.Ceil(r*2))))
}

// paintSegment blends color along the segment with the brush opacity.
func (p *segmentPainter) paintSegment(surface *domain.PixelBuffer, a, b domain.Point, brush Brush) {
	box, mask, ok := p.capsule(a, b, brush.Size, surface.Bounds())
	if !ok {
		return
	}
	pix := surface.Pix()
	src := brush.Color.WithAlpha(255)
	colorAlpha := brush.Opacity * float64(brush.Color.A) / 255
	w := surface.Width()

	for y := 0; y < box.Height; y++ {
		for x := 0; x < box.Width; x++ {
			cov := mask.Pix[y*mask.Stride+x]
			if cov == 0 {
				continue
			}
			i := ((box.Y+y)*w + box.X + x) * domain.BytesPerPixel
			dst := domain.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
			c := domain.Over(dst, src, colorAlpha*float64(cov)/255)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// eraseSegment removes alpha along the segment; fully cleared pixels
// become transparent black.
func (p *segmentPainter) eraseSegment(surface *domain.PixelBuffer, a, b domain.Point, eraser Eraser) {
	box, mask, ok := p.capsule(a, b, eraser.Size, surface.Bounds())
	if !ok {
		return
	}
	pix := surface.Pix()
	w := surface.Width()

	for y := 0; y < box.Height; y++ {
		for x := 0; x < box.Width; x++ {
			cov := mask.Pix[y*mask.Stride+x]
			if cov == 0 {
				continue
			}
			i := ((box.Y+y)*w + box.X + x) * domain.BytesPerPixel
			keep := 1 - eraser.Opacity*float64(cov)/255
			alpha := math.Round(float64(pix[i+3]) * keep)
			if alpha <= 0 {
				pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0
				continue
			}
			pix[i+3] = uint8(alpha)
		}
	}
}
