// Package server exposes a drawing session over JSON/HTTP for the browser
// front end. One session is served; commands are applied one at a time.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/assistant"
	"github.com/jwulff/artstudio-go/internal/session"
	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

// Options configures a Server.
type Options struct {
	Session   *session.Session
	Store     storage.Store
	Suggester assistant.Suggester
	Logger    logrus.FieldLogger
}

// Server holds the session and its collaborators.
type Server struct {
	mu        sync.Mutex
	session   *session.Session
	store     storage.Store
	suggester assistant.Suggester
	log       logrus.FieldLogger
}

// New creates a server and restores the persisted tool and viewport into
// the session.
func New(ctx context.Context, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		session:   opts.Session,
		store:     opts.Store,
		suggester: opts.Suggester,
		log:       log,
	}
	if s.session == nil {
		s.session = session.New(session.Options{Logger: log})
	}
	s.restore(ctx)
	return s
}

// restore applies saved preferences. Missing or unreadable values are skipped.
func (s *Server) restore(ctx context.Context) {
	if s.store == nil {
		return
	}
	if raw, err := s.store.GetConfig(ctx, storage.ConfigKeyTool); err == nil {
		var settings stroke.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			s.log.WithError(err).Warn("Failed to decode saved tool")
		} else if t, err := settings.Tool(); err != nil {
			s.log.WithError(err).Warn("Saved tool is invalid")
		} else {
			_ = s.session.SetTool(t)
			s.log.WithField("tool", t.Kind()).Info("Restored tool")
		}
	}
	if raw, err := s.store.GetConfig(ctx, storage.ConfigKeyViewport); err == nil {
		var vp stroke.Viewport
		if err := json.Unmarshal([]byte(raw), &vp); err != nil {
			s.log.WithError(err).Warn("Failed to decode saved viewport")
		} else {
			s.session.SetViewportOrigin(vp.OriginX, vp.OriginY)
			s.session.SetZoom(vp.Zoom)
		}
	}
}

// saveConfig stores a preference as JSON. Failures are logged only.
func (s *Server) saveConfig(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to encode config")
		return
	}
	if err := s.store.SetConfig(ctx, key, string(data)); err != nil {
		s.log.WithError(err).WithField("key", key).Error("Failed to save config")
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Origin", "X-Requested-With"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/canvas", s.handleNewCanvas)
		r.Get("/state", s.handleState)
		r.Put("/tool", s.handleSetTool)
		r.Put("/viewport", s.handleSetViewport)

		r.Route("/pointer", func(r chi.Router) {
			r.Post("/begin", s.handlePointerBegin)
			r.Post("/move", s.handlePointerMove)
			r.Post("/end", s.handlePointerEnd)
		})

		r.Post("/edit/{op}", s.handleEdit)

		r.Post("/selection", s.handleSelect)
		r.Delete("/selection", s.handleClearSelection)

		r.Route("/layers", func(r chi.Router) {
			r.Get("/", s.handleListLayers)
			r.Post("/", s.handleAddLayer)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", s.handleDeleteLayer)
				r.Put("/active", s.handleSelectLayer)
				r.Post("/visibility", s.handleToggleVisibility)
				r.Put("/opacity", s.handleSetOpacity)
				r.Put("/position", s.handleMoveLayer)
				r.Put("/name", s.handleRenameLayer)
				r.Get("/thumbnail.png", s.handleThumbnail)
			})
		})

		r.Get("/composite.png", s.handleCompositePNG)
		r.Get("/composite.raw", s.handleCompositeRaw)

		r.Get("/presets", s.handleListPresets)
		r.Post("/presets/{name}/apply", s.handleApplyPreset)

		r.Post("/suggestions", s.handleSuggest)
		r.Get("/suggestions", s.handleListSuggestions)
	})

	return r
}

// withSession runs fn while holding the session lock.
func (s *Server) withSession(fn func(*session.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.session)
}

// snapshot returns the session state under the lock.
func (s *Server) snapshot() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.State()
}

// ListenAndServe serves the router until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	s.log.WithField("addr", addr).Info("Starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
