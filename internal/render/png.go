// Package render turns pixel buffers into things people look at: PNG
// exports, layer thumbnails and terminal previews.
package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // example artwork may be JPEG
	"image/png"
	"io"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// EncodePNG writes buf as a PNG.
func EncodePNG(w io.Writer, buf *domain.PixelBuffer) error {
	if err := png.Encode(w, buf.ToImage()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// PNGBytes returns buf encoded as PNG.
func PNGBytes(buf *domain.PixelBuffer) ([]byte, error) {
	var b bytes.Buffer
	if err := EncodePNG(&b, buf); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// DecodeImage reads a PNG or JPEG into a pixel buffer.
func DecodeImage(r io.Reader) (*domain.PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return domain.FromImage(img), nil
}
