// Package session is the drawing session controller. It owns the layer
// stack, per-layer history, selection, stroke engine and viewport, and
// keeps the composited output current after every mutation.
//
// A Session is not safe for concurrent use; callers serialize access.
package session

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/history"
	"github.com/jwulff/artstudio-go/internal/layer"
	"github.com/jwulff/artstudio-go/internal/selection"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

// BackgroundName is the name of the initial layer of a new canvas.
const BackgroundName = "Background"

// Options configures a Session.
type Options struct {
	// HistoryLimit caps the snapshots kept per layer. Values below 1 use
	// history.DefaultLimit.
	HistoryLimit int
	// Logger receives session events. Defaults to the standard logrus logger.
	Logger logrus.FieldLogger
}

// Session is one canvas being drawn on.
type Session struct {
	log          logrus.FieldLogger
	historyLimit int

	settings  domain.CanvasSettings
	stack     *layer.Stack
	histories map[string]*history.Manager
	selection *selection.Model
	engine    *stroke.Engine
	tool      stroke.Tool
	viewport  stroke.Viewport
	output    *domain.PixelBuffer

	strokeLayer string
	strokeMoved bool
}

// New creates a session with no canvas. Drawing and edit commands are
// inert until NewCanvas is called.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	limit := opts.HistoryLimit
	if limit < 1 {
		limit = history.DefaultLimit
	}
	return &Session{
		log:          log,
		historyLimit: limit,
		selection:    selection.NewModel(),
		engine:       stroke.NewEngine(),
		tool:         stroke.DefaultBrush(),
		viewport:     stroke.DefaultViewport(),
	}
}

// NewCanvas replaces the current canvas with a fresh one: a single white
// background layer, history seeded with one snapshot, no selection and an
// empty clipboard. The tool and viewport are kept.
func (s *Session) NewCanvas(settings domain.CanvasSettings) error {
	if s.engine.Stroking() {
		return domain.ErrStrokeInProgress
	}
	if settings.ColorProfile == "" {
		settings.ColorProfile = domain.ProfileSRGB
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.settings = settings
	s.stack = layer.NewStack(settings.Width, settings.Height)
	s.histories = make(map[string]*history.Manager)
	s.selection = selection.NewModel()
	s.engine = stroke.NewEngine()
	s.addLayer(BackgroundName, domain.White)

	s.log.WithFields(logrus.Fields{
		"width":      settings.Width,
		"height":     settings.Height,
		"resolution": settings.Resolution,
		"profile":    settings.ColorProfile,
	}).Info("Canvas created")
	return nil
}

// HasCanvas reports whether NewCanvas has been called.
func (s *Session) HasCanvas() bool { return s.stack != nil }

// Settings returns the canvas settings. The zero value is returned before
// a canvas exists.
func (s *Session) Settings() domain.CanvasSettings { return s.settings }

// Output returns the composited canvas, or nil before a canvas exists.
// The buffer is owned by the session and replaced on every mutation;
// callers must not modify it.
func (s *Session) Output() *domain.PixelBuffer { return s.output }

// Composite recomputes and returns the composited canvas.
func (s *Session) Composite() *domain.PixelBuffer {
	s.recomposite()
	return s.output
}

func (s *Session) recomposite() {
	if s.stack == nil {
		s.output = nil
		return
	}
	if s.output == nil || s.output.Width() != s.stack.Width() || s.output.Height() != s.stack.Height() {
		s.output = domain.NewPixelBuffer(s.stack.Width(), s.stack.Height())
	}
	layer.CompositeInto(s.output, s.stack.Layers())
}

// activeLayer returns the active layer or ErrNoActiveLayer.
func (s *Session) activeLayer() (*layer.Layer, error) {
	if s.stack == nil {
		return nil, domain.ErrNoActiveLayer
	}
	l := s.stack.Active()
	if l == nil {
		return nil, domain.ErrNoActiveLayer
	}
	return l, nil
}

// commit pushes the layer's surface onto its history.
func (s *Session) commit(l *layer.Layer) {
	h, ok := s.histories[l.ID()]
	if !ok {
		h = history.NewManager(s.historyLimit)
		s.histories[l.ID()] = h
	}
	h.Snapshot(l.Surface())
}

// silent maps the errors that make a command a no-op to nil.
func (s *Session) silent(op string, err error) error {
	if errors.Is(err, domain.ErrNoActiveLayer) || errors.Is(err, domain.ErrEmptySelection) {
		s.log.WithField("op", op).WithError(err).Debug("Ignored")
		return nil
	}
	return err
}

func (s *Session) requireCanvas() error {
	if s.stack == nil {
		return domain.ErrNoCanvas
	}
	return nil
}
