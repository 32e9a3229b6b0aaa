package stroke

import (
	"fmt"

	"github.com/jwulff/artstudio-go/internal/domain"
)

// Settings is the flat wire form of a tool. Fields that do not apply to
// the tool kind are ignored. A zero Size or empty Color falls back to the
// kind's default; Opacity and Strength fall back only when nil, so an
// explicit 0 is kept.
type Settings struct {
	Kind     Kind     `json:"kind"`
	Size     float64  `json:"size,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Strength *float64 `json:"strength,omitempty"`
	Color    string   `json:"color,omitempty"`
}

// Amount returns a pointer to v for the optional Settings fields.
func Amount(v float64) *float64 {
	return &v
}

// SettingsOf flattens a tool.
func SettingsOf(t Tool) Settings {
	switch t := t.(type) {
	case Brush:
		return Settings{Kind: KindBrush, Size: t.Size, Opacity: Amount(t.Opacity), Color: t.Color.Hex()}
	case Eraser:
		return Settings{Kind: KindEraser, Size: t.Size, Opacity: Amount(t.Opacity)}
	case Smudge:
		return Settings{Kind: KindSmudge, Size: t.Size, Strength: Amount(t.Strength)}
	case Selection:
		return Settings{Kind: KindSelection}
	}
	return Settings{}
}

// Tool builds the normalized tool described by s.
func (s Settings) Tool() (Tool, error) {
	kind, err := ParseKind(string(s.Kind))
	if err != nil {
		return nil, err
	}
	t := DefaultTool(kind)
	switch t := t.(type) {
	case Brush:
		if s.Size != 0 {
			t.Size = s.Size
		}
		if s.Opacity != nil {
			t.Opacity = *s.Opacity
		}
		if s.Color != "" {
			c, err := domain.ParseHex(s.Color)
			if err != nil {
				return nil, fmt.Errorf("brush color: %w", err)
			}
			t.Color = c
		}
		return Normalize(t), nil
	case Eraser:
		if s.Size != 0 {
			t.Size = s.Size
		}
		if s.Opacity != nil {
			t.Opacity = *s.Opacity
		}
		return Normalize(t), nil
	case Smudge:
		if s.Size != 0 {
			t.Size = s.Size
		}
		if s.Strength != nil {
			t.Strength = *s.Strength
		}
		return Normalize(t), nil
	}
	return t, nil
}
