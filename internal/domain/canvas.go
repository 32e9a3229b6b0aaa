package domain

import (
	"fmt"
	"strings"
)

// ColorProfile tags the canvas color space. It is carried as metadata only
// and never applied to pixel math.
type ColorProfile string

const (
	ProfileSRGB      ColorProfile = "sRGB"
	ProfileDisplayP3 ColorProfile = "display-p3"
	ProfileCMYK      ColorProfile = "cmyk"
)

// MinResolution is the lowest accepted canvas resolution in DPI.
const MinResolution = 72

// MaxCanvasDimension bounds canvas width and height in pixels.
const MaxCanvasDimension = 1 << 14

// Canvas defaults used by the new canvas command.
const (
	DefaultCanvasWidth      = 1920
	DefaultCanvasHeight     = 1080
	DefaultCanvasResolution = 300
)

// ParseColorProfile parses a profile tag case-insensitively.
func ParseColorProfile(s string) (ColorProfile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "srgb", "":
		return ProfileSRGB, nil
	case "display-p3", "p3":
		return ProfileDisplayP3, nil
	case "cmyk":
		return ProfileCMYK, nil
	}
	return "", fmt.Errorf("%w: unknown color profile %q", ErrInvalidCanvas, s)
}

// CanvasSettings holds the immutable settings of a drawing session.
type CanvasSettings struct {
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Resolution   int          `json:"resolution"`
	ColorProfile ColorProfile `json:"colorProfile"`
}

// DefaultCanvasSettings returns the settings offered by the new canvas dialog.
func DefaultCanvasSettings() CanvasSettings {
	return CanvasSettings{
		Width:        DefaultCanvasWidth,
		Height:       DefaultCanvasHeight,
		Resolution:   DefaultCanvasResolution,
		ColorProfile: ProfileSRGB,
	}
}

// Validate checks dimensions, resolution and profile.
func (s CanvasSettings) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidCanvas, s.Width, s.Height)
	}
	if s.Width > MaxCanvasDimension || s.Height > MaxCanvasDimension {
		return fmt.Errorf("%w: size %dx%d exceeds %d pixels per side", ErrInvalidCanvas, s.Width, s.Height, MaxCanvasDimension)
	}
	if s.Resolution < MinResolution {
		return fmt.Errorf("%w: resolution %d below %d dpi", ErrInvalidCanvas, s.Resolution, MinResolution)
	}
	switch s.ColorProfile {
	case ProfileSRGB, ProfileDisplayP3, ProfileCMYK:
	default:
		return fmt.Errorf("%w: unknown color profile %q", ErrInvalidCanvas, s.ColorProfile)
	}
	return nil
}

// Bounds returns the canvas extents.
func (s CanvasSettings) Bounds() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}
