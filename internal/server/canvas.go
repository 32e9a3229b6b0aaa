package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/jwulff/artstudio-go/internal/codec"
	"github.com/jwulff/artstudio-go/internal/domain"
	imgrender "github.com/jwulff/artstudio-go/internal/render"
	"github.com/jwulff/artstudio-go/internal/session"
	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type endRequest struct {
	// Leave ends the gesture because the pointer left the canvas.
	Leave bool `json:"leave"`
}

type rectRequest struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// respond runs a session command and renders the resulting state.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	var st session.State
	err := s.withSession(func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		st = sess.State()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, st)
}

func (s *Server) handleNewCanvas(w http.ResponseWriter, r *http.Request) {
	settings := domain.DefaultCanvasSettings()
	if r.ContentLength != 0 {
		if err := decode(r, &settings); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if settings.ColorProfile != "" {
		profile, err := domain.ParseColorProfile(string(settings.ColorProfile))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		settings.ColorProfile = profile
	}
	s.respond(w, r, func(sess *session.Session) error {
		return sess.NewCanvas(settings)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.snapshot())
}

func (s *Server) handleSetTool(w http.ResponseWriter, r *http.Request) {
	var req stroke.Settings
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := req.Tool()
	if err != nil {
		s.writeError(w, r, badRequest("%v", err))
		return
	}
	s.applyTool(w, r, t)
}

// applyTool selects t, persists it and renders the state.
func (s *Server) applyTool(w http.ResponseWriter, r *http.Request, t stroke.Tool) {
	var st session.State
	err := s.withSession(func(sess *session.Session) error {
		if err := sess.SetTool(t); err != nil {
			return err
		}
		st = sess.State()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.saveConfig(r.Context(), storage.ConfigKeyTool, st.Tool)
	render.JSON(w, r, st)
}

func (s *Server) handleSetViewport(w http.ResponseWriter, r *http.Request) {
	vp := s.snapshot().Viewport
	if err := decode(r, &vp); err != nil {
		s.writeError(w, r, err)
		return
	}

	var st session.State
	_ = s.withSession(func(sess *session.Session) error {
		sess.SetViewportOrigin(vp.OriginX, vp.OriginY)
		sess.SetZoom(vp.Zoom)
		st = sess.State()
		return nil
	})
	s.saveConfig(r.Context(), storage.ConfigKeyViewport, st.Viewport)
	render.JSON(w, r, st)
}

func (s *Server) handlePointerBegin(w http.ResponseWriter, r *http.Request) {
	var p pointRequest
	if err := decode(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, func(sess *session.Session) error {
		sess.PointerDown(p.X, p.Y)
		return nil
	})
}

func (s *Server) handlePointerMove(w http.ResponseWriter, r *http.Request) {
	var p pointRequest
	if err := decode(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, func(sess *session.Session) error {
		sess.PointerMove(p.X, p.Y)
		return nil
	})
}

func (s *Server) handlePointerEnd(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.respond(w, r, func(sess *session.Session) error {
		if req.Leave {
			sess.PointerLeave()
		} else {
			sess.PointerUp()
		}
		return nil
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var fn func(*session.Session) error
	switch op := chi.URLParam(r, "op"); op {
	case "undo":
		fn = (*session.Session).Undo
	case "redo":
		fn = (*session.Session).Redo
	case "copy":
		fn = (*session.Session).Copy
	case "cut":
		fn = (*session.Session).Cut
	case "delete":
		fn = (*session.Session).Delete
	case "paste":
		fn = (*session.Session).Paste
	default:
		s.writeError(w, r, badRequest("unknown edit %q", op))
		return
	}
	s.respond(w, r, fn)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req rectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, func(sess *session.Session) error {
		sess.SelectRect(domain.NewRect(req.X, req.Y, req.Width, req.Height))
		return nil
	})
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, func(sess *session.Session) error {
		sess.ClearSelection()
		return nil
	})
}

func (s *Server) handleCompositePNG(w http.ResponseWriter, r *http.Request) {
	buf, err := s.composite()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := imgrender.PNGBytes(buf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", codec.MIMEPNG)
	_, _ = w.Write(data)
}

func (s *Server) handleCompositeRaw(w http.ResponseWriter, r *http.Request) {
	buf, err := s.composite()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(codec.MarshalRaw(buf))
}

// composite returns a private copy of the composited canvas.
func (s *Server) composite() (*domain.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.HasCanvas() {
		return nil, domain.ErrNoCanvas
	}
	return s.session.Composite().Clone(), nil
}
