package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jwulff/artstudio-go/internal/codec"
	"github.com/jwulff/artstudio-go/internal/domain"
	imgrender "github.com/jwulff/artstudio-go/internal/render"
	"github.com/jwulff/artstudio-go/internal/session"
)

type addLayerRequest struct {
	Name string `json:"name"`
	// Fill is an optional #RRGGBB[AA] color; the layer is transparent otherwise.
	Fill string `json:"fill,omitempty"`
}

type opacityRequest struct {
	Opacity *float64 `json:"opacity"`
}

type positionRequest struct {
	Index *int `json:"index"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListLayers(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.snapshot().Layers)
}

func (s *Server) handleAddLayer(w http.ResponseWriter, r *http.Request) {
	var req addLayerRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	fill := domain.Transparent
	if req.Fill != "" {
		c, err := domain.ParseHex(req.Fill)
		if err != nil {
			s.writeError(w, r, badRequest("fill: %v", err))
			return
		}
		fill = c
	}

	var ls session.LayerState
	err := s.withSession(func(sess *session.Session) error {
		var err error
		ls, err = sess.AddLayerWithFill(req.Name, fill)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, ls)
}

func (s *Server) handleDeleteLayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		return sess.DeleteLayer(id)
	})
}

func (s *Server) handleSelectLayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		return sess.SelectLayer(id)
	})
}

func (s *Server) handleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		_, err := sess.ToggleVisibility(id)
		return err
	})
}

func (s *Server) handleSetOpacity(w http.ResponseWriter, r *http.Request) {
	var req opacityRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Opacity == nil {
		s.writeError(w, r, badRequest("opacity is required"))
		return
	}
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		return sess.SetOpacity(id, *req.Opacity)
	})
}

func (s *Server) handleMoveLayer(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Index == nil {
		s.writeError(w, r, badRequest("index is required"))
		return
	}
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		return sess.MoveLayer(id, *req.Index)
	})
}

func (s *Server) handleRenameLayer(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, r, badRequest("name is required"))
		return
	}
	id := chi.URLParam(r, "id")
	s.respond(w, r, func(sess *session.Session) error {
		return sess.RenameLayer(id, req.Name)
	})
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var surface *domain.PixelBuffer
	err := s.withSession(func(sess *session.Session) error {
		var err error
		surface, err = sess.LayerSurface(id)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := imgrender.PNGBytes(imgrender.Thumbnail(surface, imgrender.ThumbnailSize))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", codec.MIMEPNG)
	_, _ = w.Write(data)
}
