// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/stroke"

	_ "modernc.org/sqlite"
)

// DefaultSuggestionLimit caps GetSuggestions when limit is not positive.
const DefaultSuggestionLimit = 50

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

// Open creates a file store for a non-empty path and a memory store otherwise.
func Open(path string) (*Store, error) {
	if path == "" {
		return NewMemoryStore()
	}
	return NewFileStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	if err := store.seed(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed presets: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// seed installs the default brush library into an empty presets table.
func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM presets").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, p := range storage.DefaultPresets() {
		p.Position = i
		if err := s.SavePreset(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Preset methods

func (s *Store) SavePreset(ctx context.Context, p *storage.Preset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO presets (name, family, position, kind, size, opacity, strength, color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Family, p.Position, string(p.Settings.Kind), p.Settings.Size, p.Settings.Opacity, p.Settings.Strength, p.Settings.Color)
	return err
}

const presetColumns = "name, family, position, kind, size, opacity, strength, color"

func scanPreset(row interface{ Scan(...any) error }) (*storage.Preset, error) {
	var p storage.Preset
	var kind string
	if err := row.Scan(&p.Name, &p.Family, &p.Position, &kind, &p.Settings.Size, &p.Settings.Opacity, &p.Settings.Strength, &p.Settings.Color); err != nil {
		return nil, err
	}
	p.Settings.Kind = stroke.Kind(kind)
	return &p, nil
}

func (s *Store) GetPreset(ctx context.Context, name string) (*storage.Preset, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+presetColumns+" FROM presets WHERE name = ?", name)
	p, err := scanPreset(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "preset", ID: name}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) GetPresets(ctx context.Context) ([]*storage.Preset, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+presetColumns+" FROM presets ORDER BY position, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*storage.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

func (s *Store) DeletePreset(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM presets WHERE name = ?", name)
	return err
}

// Suggestion methods

func (s *Store) SaveSuggestion(ctx context.Context, rec *storage.SuggestionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO suggestions (id, description, has_artwork, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Description, rec.HasArtwork, string(rec.Result), rec.CreatedAt)
	return err
}

const suggestionColumns = "id, description, has_artwork, result, created_at"

func scanSuggestion(row interface{ Scan(...any) error }) (*storage.SuggestionRecord, error) {
	var rec storage.SuggestionRecord
	var result string
	if err := row.Scan(&rec.ID, &rec.Description, &rec.HasArtwork, &result, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Result = []byte(result)
	return &rec, nil
}

func (s *Store) GetSuggestion(ctx context.Context, id string) (*storage.SuggestionRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+suggestionColumns+" FROM suggestions WHERE id = ?", id)
	rec, err := scanSuggestion(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound{Resource: "suggestion", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetSuggestions returns the newest records first.
func (s *Store) GetSuggestions(ctx context.Context, limit int) ([]*storage.SuggestionRecord, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+suggestionColumns+" FROM suggestions ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*storage.SuggestionRecord
	for rows.Next() {
		rec, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Config methods

func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound{Resource: "config", ID: key}
	}
	return value, err
}

func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO config (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, value, time.Now())
	return err
}

func (s *Store) DeleteConfig(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM config WHERE key = ?", key)
	return err
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)
