package domain

import (
	"bytes"
	"fmt"
	"image"
	"math"
)

// BytesPerPixel is the number of bytes per pixel (RGBA).
const BytesPerPixel = 4

// PixelBuffer is a fixed-size rectangular RGBA pixel buffer. The pixel
// slice always holds exactly width*height*4 bytes; a buffer is never
// resized in place.
type PixelBuffer struct {
	width  int
	height int
	// pix is a flat array of RGBA values: [r0,g0,b0,a0, r1,g1,b1,a1, ...]
	pix []byte
}

// pixLen returns the byte length of a width x height buffer, or false when
// a side is not positive or the length does not fit in an int.
func pixLen(width, height int) (int, bool) {
	if width < 1 || height < 1 || width > math.MaxInt/BytesPerPixel/height {
		return 0, false
	}
	return width * height * BytesPerPixel, true
}

// NewPixelBuffer creates a new transparent buffer. Width and height must be
// positive and their byte length must fit in an int.
func NewPixelBuffer(width, height int) *PixelBuffer {
	n, ok := pixLen(width, height)
	if !ok {
		panic(fmt.Sprintf("domain: invalid pixel buffer size %dx%d", width, height))
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]byte, n),
	}
}

// NewPixelBufferWithColor creates a new buffer filled with the specified color.
func NewPixelBufferWithColor(width, height int, color RGBA) *PixelBuffer {
	b := NewPixelBuffer(width, height)
	b.Fill(color)
	return b
}

// PixelBufferFromBytes wraps raw RGBA bytes. The slice is copied.
func PixelBufferFromBytes(width, height int, pix []byte) (*PixelBuffer, error) {
	expected, ok := pixLen(width, height)
	if !ok {
		return nil, fmt.Errorf("invalid pixel buffer size %dx%d", width, height)
	}
	if len(pix) != expected {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", expected, len(pix))
	}
	b := NewPixelBuffer(width, height)
	copy(b.pix, pix)
	return b, nil
}

// Width returns the width of the buffer.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the height of the buffer.
func (b *PixelBuffer) Height() int { return b.height }

// Bounds returns the buffer extents as a rectangle at the origin.
func (b *PixelBuffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Pix returns the raw pixel data. Writes through the slice mutate the buffer.
func (b *PixelBuffer) Pix() []byte { return b.pix }

// Set sets a single pixel. Out of bounds coordinates are silently ignored.
func (b *PixelBuffer) Set(x, y int, color RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	offset := (y*b.width + x) * BytesPerPixel
	b.pix[offset] = color.R
	b.pix[offset+1] = color.G
	b.pix[offset+2] = color.B
	b.pix[offset+3] = color.A
}

// At returns the color at the specified coordinates. The boolean is false
// when the coordinates are out of bounds.
func (b *PixelBuffer) At(x, y int) (RGBA, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent, false
	}
	offset := (y*b.width + x) * BytesPerPixel
	return RGBA{
		R: b.pix[offset],
		G: b.pix[offset+1],
		B: b.pix[offset+2],
		A: b.pix[offset+3],
	}, true
}

// Fill fills the entire buffer with the specified color.
func (b *PixelBuffer) Fill(color RGBA) {
	for offset := 0; offset < len(b.pix); offset += BytesPerPixel {
		b.pix[offset] = color.R
		b.pix[offset+1] = color.G
		b.pix[offset+2] = color.B
		b.pix[offset+3] = color.A
	}
}

// Clear makes the whole buffer transparent.
func (b *PixelBuffer) Clear() {
	clear(b.pix)
}

// Clone creates a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	clone := &PixelBuffer{
		width:  b.width,
		height: b.height,
		pix:    make([]byte, len(b.pix)),
	}
	copy(clone.pix, b.pix)
	return clone
}

// CopyFrom overwrites every pixel with the contents of src, which must have
// the same dimensions.
func (b *PixelBuffer) CopyFrom(src *PixelBuffer) error {
	if src.width != b.width || src.height != b.height {
		return fmt.Errorf("%w: %dx%d onto %dx%d", ErrSizeMismatch, src.width, src.height, b.width, b.height)
	}
	copy(b.pix, src.pix)
	return nil
}

// Equal reports whether both buffers have the same size and pixels.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if other == nil {
		return false
	}
	return b.width == other.width && b.height == other.height && bytes.Equal(b.pix, other.pix)
}

// Region copies the pixels under r into a new buffer. The rectangle must be
// non-empty and fully contained in the buffer.
func (b *PixelBuffer) Region(r Rect) (*PixelBuffer, error) {
	if r.Empty() || !b.Bounds().Contains(r) {
		return nil, ErrOutOfBounds{Rect: r, Bounds: b.Bounds()}
	}
	out := NewPixelBuffer(r.Width, r.Height)
	rowBytes := r.Width * BytesPerPixel
	for row := 0; row < r.Height; row++ {
		src := ((r.Y+row)*b.width + r.X) * BytesPerPixel
		copy(out.pix[row*rowBytes:(row+1)*rowBytes], b.pix[src:src+rowBytes])
	}
	return out, nil
}

// PutRegion writes src with its top-left corner at (x, y). Nothing is
// written unless src fits entirely inside the buffer.
func (b *PixelBuffer) PutRegion(src *PixelBuffer, x, y int) error {
	r := Rect{X: x, Y: y, Width: src.width, Height: src.height}
	if !b.Bounds().Contains(r) {
		return ErrOutOfBounds{Rect: r, Bounds: b.Bounds()}
	}
	rowBytes := src.width * BytesPerPixel
	for row := 0; row < src.height; row++ {
		dst := ((y+row)*b.width + x) * BytesPerPixel
		copy(b.pix[dst:dst+rowBytes], src.pix[row*rowBytes:(row+1)*rowBytes])
	}
	return nil
}

// ClearRegion fills r with the given color. The rectangle must be
// non-empty and fully contained in the buffer.
func (b *PixelBuffer) ClearRegion(r Rect, fill RGBA) error {
	if r.Empty() || !b.Bounds().Contains(r) {
		return ErrOutOfBounds{Rect: r, Bounds: b.Bounds()}
	}
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			offset := (y*b.width + x) * BytesPerPixel
			b.pix[offset] = fill.R
			b.pix[offset+1] = fill.G
			b.pix[offset+2] = fill.B
			b.pix[offset+3] = fill.A
		}
	}
	return nil
}

// Resized returns a new buffer of the given size with the old content
// blitted at the origin. Content beyond the new extents is dropped; new
// area is transparent.
func (b *PixelBuffer) Resized(width, height int) *PixelBuffer {
	out := NewPixelBuffer(width, height)
	overlap := b.Bounds().Intersect(out.Bounds())
	if overlap.Empty() {
		return out
	}
	region, _ := b.Region(overlap)
	_ = out.PutRegion(region, 0, 0)
	return out
}

// ToImage converts the buffer to an image.NRGBA.
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// FromImage creates a buffer from any image.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	b := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == b.width*BytesPerPixel && nrgba.Rect.Min == (image.Point{}) {
		copy(b.pix, nrgba.Pix)
		return b
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := colorNRGBA(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			b.Set(x, y, c)
		}
	}
	return b
}
