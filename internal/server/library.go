package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/assistant"
	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

// presetResponse is the wire form of a library entry.
type presetResponse struct {
	Name     string          `json:"name"`
	Family   string          `json:"family"`
	Settings stroke.Settings `json:"settings"`
}

type suggestionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	HasArtwork  bool            `json:"hasArtwork"`
	Result      json.RawMessage `json:"result"`
	CreatedAt   string          `json:"createdAt"`
}

var errNoStore = badRequest("no preset library configured")

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		render.JSON(w, r, []presetResponse{})
		return
	}
	presets, err := s.store.GetPresets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, presetResponse{Name: p.Name, Family: p.Family, Settings: p.Settings})
	}
	render.JSON(w, r, resp)
}

// handleApplyPreset selects a preset's tool. A brush preset without a
// color keeps the color of the current brush.
func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errNoStore)
		return
	}
	name := chi.URLParam(r, "name")
	p, err := s.store.GetPreset(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	settings := p.Settings
	if settings.Kind == stroke.KindBrush && settings.Color == "" {
		s.mu.Lock()
		if b, ok := s.session.Tool().(stroke.Brush); ok {
			settings.Color = b.Color.Hex()
		}
		s.mu.Unlock()
	}
	t, err := settings.Tool()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.WithFields(logrus.Fields{"preset": p.Name, "tool": t.Kind()}).Info("Preset applied")
	s.applyTool(w, r, t)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req assistant.Request
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.suggester == nil {
		s.writeError(w, r, &assistant.ServiceError{Message: "suggestion service is not configured"})
		return
	}

	suggestion, err := s.suggester.Suggest(r.Context(), req)
	if err != nil {
		s.log.WithError(err).Warn("Suggestion failed")
		s.writeError(w, r, err)
		return
	}

	if s.store != nil {
		rec, err := storage.NewSuggestionRecord(req.DrawingStyleDescription, req.ExampleArtworkDataURI != "", suggestion)
		if err == nil {
			err = s.store.SaveSuggestion(r.Context(), rec)
		}
		if err != nil {
			s.log.WithError(err).Error("Failed to log suggestion")
		}
	}
	render.JSON(w, r, suggestion)
}

func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		render.JSON(w, r, []suggestionResponse{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, badRequest("invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.store.GetSuggestions(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := make([]suggestionResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, suggestionResponse{
			ID:          rec.ID,
			Description: rec.Description,
			HasArtwork:  rec.HasArtwork,
			Result:      rec.Result,
			CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	render.JSON(w, r, resp)
}
