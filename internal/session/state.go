package session

import (
	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/layer"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

// LayerState describes one layer.
type LayerState struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Active  bool    `json:"active"`
	CanUndo bool    `json:"canUndo"`
	CanRedo bool    `json:"canRedo"`
	History int     `json:"historyLength"`
}

// State is a read-only view of the session.
type State struct {
	Canvas       *domain.CanvasSettings `json:"canvas,omitempty"`
	Tool         stroke.Settings        `json:"tool"`
	Viewport     stroke.Viewport        `json:"viewport"`
	Layers       []LayerState           `json:"layers"`
	ActiveLayer  string                 `json:"activeLayerId,omitempty"`
	Selection    *domain.Rect           `json:"selection,omitempty"`
	HasClipboard bool                   `json:"hasClipboard"`
	Stroking     bool                   `json:"stroking"`
	CanUndo      bool                   `json:"canUndo"`
	CanRedo      bool                   `json:"canRedo"`
}

// State returns a snapshot of the session for display. Layers are listed
// bottom to top.
func (s *Session) State() State {
	st := State{
		Tool:         stroke.SettingsOf(s.tool),
		Viewport:     s.viewport,
		Layers:       []LayerState{},
		HasClipboard: s.selection.Clipboard() != nil,
		Stroking:     s.engine.Stroking(),
	}
	if r, ok := s.selection.Rect(); ok {
		st.Selection = &r
	}
	if s.stack == nil {
		return st
	}

	settings := s.settings
	st.Canvas = &settings
	st.ActiveLayer = s.stack.ActiveID()
	for _, l := range s.stack.Layers() {
		ls := s.layerState(l)
		st.Layers = append(st.Layers, ls)
		if ls.Active {
			st.CanUndo, st.CanRedo = ls.CanUndo, ls.CanRedo
		}
	}
	return st
}

func (s *Session) layerState(l *layer.Layer) LayerState {
	ls := LayerState{
		ID:      l.ID(),
		Name:    l.Name(),
		Visible: l.Visible(),
		Opacity: l.Opacity(),
		Active:  l.ID() == s.stack.ActiveID(),
	}
	if h, ok := s.histories[l.ID()]; ok {
		ls.CanUndo = h.CanUndo()
		ls.CanRedo = h.CanRedo()
		ls.History = h.Len()
	}
	return ls
}
