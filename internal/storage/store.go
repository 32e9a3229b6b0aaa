// Package storage provides storage abstractions for the drawing studio:
// the brush preset library, key/value settings and the suggestion log.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jwulff/artstudio-go/internal/stroke"
)

// Store is the interface for persistent storage.
type Store interface {
	// Brush presets
	SavePreset(ctx context.Context, preset *Preset) error
	GetPreset(ctx context.Context, name string) (*Preset, error)
	GetPresets(ctx context.Context) ([]*Preset, error)
	DeletePreset(ctx context.Context, name string) error

	// Suggestion log
	SaveSuggestion(ctx context.Context, record *SuggestionRecord) error
	GetSuggestion(ctx context.Context, id string) (*SuggestionRecord, error)
	GetSuggestions(ctx context.Context, limit int) ([]*SuggestionRecord, error)

	// Configuration
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error

	// Lifecycle
	Close() error
}

// Config keys.
const (
	ConfigKeyTool     = "tool"
	ConfigKeyViewport = "viewport"
)

// Brush families used by the preset library.
const (
	FamilyInking      = "Inking"
	FamilySketching   = "Sketching"
	FamilyPainting    = "Painting"
	FamilyAirbrushing = "Airbrushing"
)

// Preset is a named tool configuration in the brush library.
type Preset struct {
	Name     string
	Family   string
	Position int
	Settings stroke.Settings
}

// Tool returns the normalized tool the preset describes.
func (p *Preset) Tool() (stroke.Tool, error) {
	return p.Settings.Tool()
}

// DefaultPresets is the brush library a new store is seeded with.
func DefaultPresets() []*Preset {
	brush := func(size, opacity float64) stroke.Settings {
		return stroke.Settings{Kind: stroke.KindBrush, Size: size, Opacity: stroke.Amount(opacity)}
	}
	return []*Preset{
		{Name: "Technical Pen", Family: FamilyInking, Settings: brush(3, 1)},
		{Name: "6B Pencil", Family: FamilySketching, Settings: brush(6, 0.55)},
		{Name: "Round Brush", Family: FamilyPainting, Settings: brush(30, 0.8)},
		{Name: "Studio Pen", Family: FamilyInking, Settings: brush(8, 1)},
		{Name: "Narinder Pencil", Family: FamilySketching, Settings: brush(2, 0.4)},
		{Name: "Oil Paint", Family: FamilyPainting, Settings: stroke.Settings{Kind: stroke.KindSmudge, Size: 40, Strength: stroke.Amount(0.7)}},
		{Name: "Airbrush", Family: FamilyAirbrushing, Settings: brush(120, 0.1)},
	}
}

// SuggestionRecord is one stored suggestion.
type SuggestionRecord struct {
	ID          string
	Description string
	HasArtwork  bool
	Result      json.RawMessage
	CreatedAt   time.Time
}

// NewSuggestionRecord creates a record with a fresh id for a result.
func NewSuggestionRecord(description string, hasArtwork bool, result any) (*SuggestionRecord, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return &SuggestionRecord{
		ID:          ulid.Make().String(),
		Description: description,
		HasArtwork:  hasArtwork,
		Result:      data,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
