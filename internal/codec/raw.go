// Package codec serializes pixel buffers.
//
// Raw format (all integers big-endian):
//   - 4 bytes magic "ASPB"
//   - 1 byte version (1)
//   - 4 bytes width, 4 bytes height
//   - width * height * 4 bytes of straight RGBA, row-major
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Magic identifies a raw pixel-buffer stream.
const Magic = "ASPB"

// Version is the raw format version written by EncodeRaw.
const Version = 1

// HeaderSize is the length of the raw header in bytes.
const HeaderSize = len(Magic) + 1 + 4 + 4

// MaxDimension bounds the width and height accepted by DecodeRaw.
const MaxDimension = domain.MaxCanvasDimension

// ErrBadMagic is returned when a stream does not start with Magic.
var ErrBadMagic = errors.New("not a raw pixel buffer")

// EncodeRaw writes buf in the raw format.
func EncodeRaw(w io.Writer, buf *domain.PixelBuffer) error {
	header := make([]byte, HeaderSize)
	copy(header, Magic)
	header[4] = Version
	binary.BigEndian.PutUint32(header[5:], uint32(buf.Width()))
	binary.BigEndian.PutUint32(header[9:], uint32(buf.Height()))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(buf.Pix()); err != nil {
		return fmt.Errorf("failed to write pixels: %w", err)
	}
	return nil
}

// DecodeRaw reads a buffer written by EncodeRaw.
func DecodeRaw(r io.Reader) (*domain.PixelBuffer, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header[:4]) != Magic {
		return nil, ErrBadMagic
	}
	if header[4] != Version {
		return nil, fmt.Errorf("unsupported raw version %d", header[4])
	}

	width := binary.BigEndian.Uint32(header[5:])
	height := binary.BigEndian.Uint32(header[9:])
	if width == 0 || height == 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}

	pix := make([]byte, int(width)*int(height)*domain.BytesPerPixel)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, fmt.Errorf("failed to read pixels: %w", err)
	}
	return domain.PixelBufferFromBytes(int(width), int(height), pix)
}

// MarshalRaw returns buf in the raw format.
func MarshalRaw(buf *domain.PixelBuffer) []byte {
	var b bytes.Buffer
	b.Grow(HeaderSize + len(buf.Pix()))
	_ = EncodeRaw(&b, buf)
	return b.Bytes()
}

// EncodeBase64 encodes buf in the raw format as standard base64.
func EncodeBase64(buf *domain.PixelBuffer) string {
	return base64.StdEncoding.EncodeToString(MarshalRaw(buf))
}

// DecodeBase64 decodes a buffer produced by EncodeBase64.
func DecodeBase64(encoded string) (*domain.PixelBuffer, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return DecodeRaw(bytes.NewReader(data))
}
