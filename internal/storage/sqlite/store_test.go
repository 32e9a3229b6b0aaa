package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(tmpDir + "/test.db")
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

func TestOpenEmptyPathIsMemory(t *testing.T) {
	store, err := Open("")
	require.NoError(t, err)
	defer store.Close()

	presets, err := store.GetPresets(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, presets)
}

// Preset tests

func TestSeededPresets(t *testing.T) {
	store := newTestStore(t)

	presets, err := store.GetPresets(context.Background())
	require.NoError(t, err)
	require.Len(t, presets, len(storage.DefaultPresets()))

	assert.Equal(t, "Technical Pen", presets[0].Name)
	assert.Equal(t, storage.FamilyInking, presets[0].Family)
	assert.Equal(t, "Airbrush", presets[len(presets)-1].Name)
}

func TestSeedRunsOnce(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/studio.db"

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.DeletePreset(ctx, "Airbrush"))
	require.NoError(t, store.Close())

	store, err = NewFileStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetPreset(ctx, "Airbrush")
	assert.True(t, storage.IsNotFound(err), "a non-empty library is not reseeded")
}

func TestSaveAndGetPreset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	preset := &storage.Preset{
		Name:     "Quill",
		Family:   storage.FamilyInking,
		Position: 10,
		Settings: stroke.Settings{Kind: stroke.KindBrush, Size: 2, Opacity: stroke.Amount(0.9), Color: "#112233"},
	}
	require.NoError(t, store.SavePreset(ctx, preset))

	retrieved, err := store.GetPreset(ctx, "Quill")
	require.NoError(t, err)
	assert.Equal(t, preset, retrieved)

	tool, err := retrieved.Tool()
	require.NoError(t, err)
	assert.Equal(t, "#112233", tool.(stroke.Brush).Color.Hex())
}

func TestPresetKeepsUnsetAndZeroAmounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	preset := &storage.Preset{
		Name:     "Dry Finger",
		Family:   storage.FamilyPainting,
		Settings: stroke.Settings{Kind: stroke.KindSmudge, Size: 10, Strength: stroke.Amount(0)},
	}
	require.NoError(t, store.SavePreset(ctx, preset))

	retrieved, err := store.GetPreset(ctx, "Dry Finger")
	require.NoError(t, err)
	assert.Nil(t, retrieved.Settings.Opacity)
	require.NotNil(t, retrieved.Settings.Strength)
	assert.Equal(t, 0.0, *retrieved.Settings.Strength)
}

func TestGetPresetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPreset(context.Background(), "nonexistent")
	assert.True(t, storage.IsNotFound(err))
}

func TestUpdatePreset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.GetPreset(ctx, "Round Brush")
	require.NoError(t, err)
	p.Settings.Size = 99
	require.NoError(t, store.SavePreset(ctx, p))

	p, err = store.GetPreset(ctx, "Round Brush")
	require.NoError(t, err)
	assert.Equal(t, 99.0, p.Settings.Size)
}

// Suggestion tests

func TestSaveAndGetSuggestion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := storage.NewSuggestionRecord("watercolor", false, map[string]any{"styleAnalysis": "soft"})
	require.NoError(t, err)
	require.NoError(t, store.SaveSuggestion(ctx, rec))

	retrieved, err := store.GetSuggestion(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, retrieved.ID)
	assert.Equal(t, "watercolor", retrieved.Description)
	assert.False(t, retrieved.HasArtwork)
	assert.JSONEq(t, `{"styleAnalysis":"soft"}`, string(retrieved.Result))
	assert.WithinDuration(t, rec.CreatedAt, retrieved.CreatedAt, time.Second)
}

func TestGetSuggestionNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetSuggestion(context.Background(), "nonexistent")
	assert.True(t, storage.IsNotFound(err))
}

func TestGetSuggestionsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, desc := range []string{"first", "second", "third"} {
		rec, err := storage.NewSuggestionRecord(desc, i == 1, map[string]int{"n": i})
		require.NoError(t, err)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.SaveSuggestion(ctx, rec))
	}

	recs, err := store.GetSuggestions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "third", recs[0].Description)
	assert.Equal(t, "first", recs[2].Description)
	assert.True(t, recs[1].HasArtwork)

	recs, err = store.GetSuggestions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// Config tests

func TestSetAndGetConfig(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SetConfig(ctx, storage.ConfigKeyTool, `{"kind":"eraser"}`)
	require.NoError(t, err)

	value, err := store.GetConfig(ctx, storage.ConfigKeyTool)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"eraser"}`, value)
}

func TestGetConfigNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetConfig(context.Background(), "nonexistent")
	assert.True(t, storage.IsNotFound(err))
}

func TestDeleteConfig(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.SetConfig(ctx, "key", "value")
	require.NoError(t, store.DeleteConfig(ctx, "key"))

	_, err := store.GetConfig(ctx, "key")
	assert.True(t, storage.IsNotFound(err))
}

func TestUpdateConfig(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.SetConfig(ctx, "key", "value1")
	_ = store.SetConfig(ctx, "key", "value2")

	value, err := store.GetConfig(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value2", value)
}
