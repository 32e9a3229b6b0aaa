package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// ThumbnailSize is the edge of the layers panel preview box.
const ThumbnailSize = 40

// Thumbnail scales buf to fit a size x size box, preserving aspect ratio,
// and centers it on a transparent background.
func Thumbnail(buf *domain.PixelBuffer, size int) *domain.PixelBuffer {
	if size < 1 {
		size = ThumbnailSize
	}
	w, h := fit(buf.Width(), buf.Height(), size, size)
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	x0, y0 := (size-w)/2, (size-h)/2

	src := buf.ToImage()
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, src.Bounds(), xdraw.Src, nil)
	return domain.FromImage(dst)
}

// Scale resizes buf to exactly width x height.
func Scale(buf *domain.PixelBuffer, width, height int) *domain.PixelBuffer {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	src := buf.ToImage()
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return domain.FromImage(dst)
}

// fit returns the largest size with the aspect ratio of w x h that fits
// in maxW x maxH. Both results are at least 1.
func fit(w, h, maxW, maxH int) (int, int) {
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	fw := max(1, int(math.Round(float64(w)*scale)))
	fh := max(1, int(math.Round(float64(h)*scale)))
	return min(fw, maxW), min(fh, maxH)
}
