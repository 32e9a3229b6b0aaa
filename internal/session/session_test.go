package session

import (
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

var red = domain.Opaque(255, 0, 0)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newCanvas(t *testing.T, w, h int) *Session {
	t.Helper()
	s := New(Options{Logger: quietLogger()})
	require.NoError(t, s.NewCanvas(domain.CanvasSettings{
		Width: w, Height: h, Resolution: 300, ColorProfile: domain.ProfileSRGB,
	}))
	return s
}

func drawLine(s *Session, x0, y0, x1, y1 float64) {
	s.PointerDown(x0, y0)
	s.PointerMove(x1, y1)
	s.PointerUp()
}

func activeHistory(t *testing.T, s *Session) LayerState {
	t.Helper()
	for _, l := range s.State().Layers {
		if l.Active {
			return l
		}
	}
	t.Fatal("no active layer")
	return LayerState{}
}

func TestNewCanvasInitialState(t *testing.T) {
	s := newCanvas(t, 40, 30)
	st := s.State()

	require.Len(t, st.Layers, 1)
	assert.Equal(t, BackgroundName, st.Layers[0].Name)
	assert.True(t, st.Layers[0].Active)
	assert.Equal(t, 1, st.Layers[0].History)
	assert.False(t, st.CanUndo)
	assert.False(t, st.HasClipboard)
	assert.Nil(t, st.Selection)

	require.NotNil(t, s.Output())
	assert.True(t, s.Output().Equal(domain.NewPixelBufferWithColor(40, 30, domain.White)))
}

func TestNewCanvasRejectsInvalidSettings(t *testing.T) {
	s := New(Options{Logger: quietLogger()})

	err := s.NewCanvas(domain.CanvasSettings{Width: 0, Height: 10, Resolution: 300})
	assert.ErrorIs(t, err, domain.ErrInvalidCanvas)
	err = s.NewCanvas(domain.CanvasSettings{Width: 10, Height: 10, Resolution: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidCanvas)
	err = s.NewCanvas(domain.CanvasSettings{Width: math.MaxInt / 2, Height: 3, Resolution: 300})
	assert.ErrorIs(t, err, domain.ErrInvalidCanvas)
	err = s.NewCanvas(domain.CanvasSettings{Width: 100000, Height: 100000, Resolution: 300})
	assert.ErrorIs(t, err, domain.ErrInvalidCanvas)
	assert.False(t, s.HasCanvas())

	assert.NotPanics(t, func() {
		s.PointerDown(1, 1)
		s.PointerMove(5, 5)
		s.PointerUp()
	})
}

func TestNewCanvasDefaultsProfile(t *testing.T) {
	s := New(Options{Logger: quietLogger()})
	require.NoError(t, s.NewCanvas(domain.CanvasSettings{Width: 4, Height: 4, Resolution: 72}))
	assert.Equal(t, domain.ProfileSRGB, s.Settings().ColorProfile)
}

func TestCommandsBeforeCanvasAreInert(t *testing.T) {
	s := New(Options{Logger: quietLogger()})

	assert.NotPanics(t, func() {
		s.PointerDown(1, 1)
		s.PointerMove(5, 5)
		s.PointerUp()
		s.PointerLeave()
	})
	assert.NoError(t, s.Undo())
	assert.NoError(t, s.Redo())
	assert.NoError(t, s.Copy())
	assert.NoError(t, s.Cut())
	assert.NoError(t, s.Paste())
	assert.Nil(t, s.Output())

	_, err := s.AddLayer("")
	assert.ErrorIs(t, err, domain.ErrNoCanvas)
	assert.ErrorIs(t, s.DeleteLayer("x"), domain.ErrNoCanvas)
}

func TestBrushStrokeProducesBand(t *testing.T) {
	s := newCanvas(t, 100, 100)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 5, Opacity: 1, Color: domain.Black}))

	drawLine(s, 10, 10, 90, 10)

	out := s.Output()
	for _, x := range []int{12, 50, 88} {
		c, _ := out.At(x, 10)
		assert.Equal(t, domain.Black, c, "x=%d", x)
	}
	c, _ := out.At(50, 20)
	assert.Equal(t, domain.White, c)
	c, _ = out.At(50, 3)
	assert.Equal(t, domain.White, c)
}

func TestStrokeAppliesEachMoveImmediately(t *testing.T) {
	s := newCanvas(t, 50, 50)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 4, Opacity: 1, Color: red}))

	s.PointerDown(5, 25)
	s.PointerMove(25, 25)
	c, _ := s.Output().At(15, 25)
	assert.Equal(t, red, c, "output reflects the sample before the stroke ends")
	assert.True(t, s.Stroking())
	s.PointerUp()
	assert.False(t, s.Stroking())
}

func TestHistoryRoundTrip(t *testing.T) {
	s := newCanvas(t, 40, 40)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 3, Opacity: 1, Color: red}))
	initial := s.Output().Clone()

	const n = 6
	for i := 0; i < n; i++ {
		y := float64(5 + i*5)
		drawLine(s, 2, y, 38, y)
	}
	final := s.Output().Clone()

	for i := 0; i < n; i++ {
		require.NoError(t, s.Undo())
	}
	assert.True(t, s.Output().Equal(initial))
	assert.False(t, s.State().CanUndo)

	for i := 0; i < n; i++ {
		require.NoError(t, s.Redo())
	}
	assert.True(t, s.Output().Equal(final))
	assert.False(t, s.State().CanRedo)
}

func TestHistoryCap(t *testing.T) {
	s := New(Options{Logger: quietLogger(), HistoryLimit: 30})
	require.NoError(t, s.NewCanvas(domain.CanvasSettings{Width: 20, Height: 20, Resolution: 72}))
	require.NoError(t, s.SetTool(stroke.Brush{Size: 1, Opacity: 1, Color: red}))

	for i := 0; i < 35; i++ {
		drawLine(s, 1, float64(i%20), 10, float64(i%20))
	}
	assert.Equal(t, 30, activeHistory(t, s).History)

	undos := 0
	for s.State().CanUndo {
		require.NoError(t, s.Undo())
		undos++
	}
	assert.Equal(t, 29, undos)
}

func TestUndoAtOldestIsNoOp(t *testing.T) {
	s := newCanvas(t, 10, 10)
	before := s.Output().Clone()

	require.NoError(t, s.Undo())
	require.NoError(t, s.Redo())
	assert.True(t, s.Output().Equal(before))
}

func TestNewStrokeDiscardsRedo(t *testing.T) {
	s := newCanvas(t, 30, 30)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 2, Opacity: 1, Color: red}))

	drawLine(s, 2, 5, 28, 5)
	require.NoError(t, s.Undo())
	assert.True(t, s.State().CanRedo)

	drawLine(s, 2, 20, 28, 20)
	assert.False(t, s.State().CanRedo)
	assert.Equal(t, 2, activeHistory(t, s).History)
}

func TestHistoryRejectedMidStroke(t *testing.T) {
	s := newCanvas(t, 30, 30)

	s.PointerDown(5, 5)
	s.PointerMove(20, 20)
	assert.ErrorIs(t, s.Undo(), domain.ErrStrokeInProgress)
	assert.ErrorIs(t, s.Redo(), domain.ErrStrokeInProgress)
	assert.ErrorIs(t, s.Cut(), domain.ErrStrokeInProgress)

	s.PointerLeave()
	assert.False(t, s.Stroking())
	assert.Equal(t, 2, activeHistory(t, s).History, "pointer leave commits the stroke")
}

func TestPressWithoutMoveCommitsNothing(t *testing.T) {
	s := newCanvas(t, 10, 10)
	s.PointerDown(5, 5)
	s.PointerUp()

	assert.Equal(t, 1, activeHistory(t, s).History)
}

func TestPointerUsesViewport(t *testing.T) {
	s := newCanvas(t, 100, 100)
	require.NoError(t, s.SetTool(stroke.Selection{}))
	s.SetViewportOrigin(10, 10)
	s.SetZoom(200)

	s.PointerDown(30, 30)
	s.PointerMove(70, 50)
	s.PointerUp()

	r, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, domain.NewRect(10, 10, 20, 10), r)
}

func TestSetZoomClamps(t *testing.T) {
	s := New(Options{Logger: quietLogger()})
	s.SetZoom(2)
	assert.Equal(t, float64(stroke.MinZoom), s.Viewport().Zoom)
	s.SetZoom(9000)
	assert.Equal(t, float64(stroke.MaxZoom), s.Viewport().Zoom)
}

func TestLeavingSelectionToolKeepsClipboard(t *testing.T) {
	s := newCanvas(t, 20, 20)
	require.NoError(t, s.SetTool(stroke.Selection{}))
	s.SelectRect(domain.NewRect(0, 0, 5, 5))
	require.NoError(t, s.Copy())

	require.NoError(t, s.SetTool(stroke.DefaultBrush()))

	_, ok := s.Selection()
	assert.False(t, ok)
	assert.NotNil(t, s.Clipboard())
}

func TestSetToolRejectedMidStroke(t *testing.T) {
	s := newCanvas(t, 20, 20)
	s.PointerDown(1, 1)
	assert.ErrorIs(t, s.SetTool(stroke.Selection{}), domain.ErrStrokeInProgress)
	s.PointerUp()
}

func TestCutThenPasteElsewhere(t *testing.T) {
	s := newCanvas(t, 100, 100)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 10, Opacity: 1, Color: red}))
	drawLine(s, 10, 10, 40, 40)

	id := s.State().ActiveLayer
	surface, err := s.LayerSurface(id)
	require.NoError(t, err)
	original, err := surface.Region(domain.NewRect(0, 0, 50, 50))
	require.NoError(t, err)

	s.SelectRect(domain.NewRect(0, 0, 50, 50))
	require.NoError(t, s.Cut())

	surface, _ = s.LayerSurface(id)
	cleared, _ := surface.Region(domain.NewRect(0, 0, 50, 50))
	assert.True(t, cleared.Equal(domain.NewPixelBuffer(50, 50)), "cut clears the region")
	_, ok := s.Selection()
	assert.False(t, ok)

	s.SelectRect(domain.NewRect(50, 50, 50, 50))
	require.NoError(t, s.Paste())

	surface, _ = s.LayerSurface(id)
	pasted, _ := surface.Region(domain.NewRect(50, 50, 50, 50))
	assert.True(t, pasted.Equal(original))
	cleared, _ = surface.Region(domain.NewRect(0, 0, 50, 50))
	assert.True(t, cleared.Equal(domain.NewPixelBuffer(50, 50)))

	assert.Equal(t, 4, activeHistory(t, s).History, "seed, stroke, cut and paste")
}

func TestCopyPasteInPlaceRoundTrip(t *testing.T) {
	s := newCanvas(t, 40, 40)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 6, Opacity: 0.7, Color: red}))
	drawLine(s, 0, 0, 40, 40)
	before := s.Output().Clone()

	s.SelectRect(domain.NewRect(5, 5, 20, 20))
	require.NoError(t, s.Copy())
	require.NoError(t, s.Paste())

	assert.True(t, s.Output().Equal(before))
}

func TestEditsPushExactlyOneSnapshot(t *testing.T) {
	s := newCanvas(t, 20, 20)

	s.SelectRect(domain.NewRect(0, 0, 20, 20))
	require.NoError(t, s.Copy())
	assert.Equal(t, 1, activeHistory(t, s).History, "copy does not mutate")

	require.NoError(t, s.Delete())
	assert.Equal(t, 2, activeHistory(t, s).History)

	s.SelectRect(domain.NewRect(0, 0, 1, 1))
	require.NoError(t, s.Paste())
	assert.Equal(t, 3, activeHistory(t, s).History)
}

func TestEmptySelectionEditsAreSilent(t *testing.T) {
	s := newCanvas(t, 20, 20)
	before := s.Output().Clone()

	assert.NoError(t, s.Copy())
	assert.NoError(t, s.Cut())
	assert.NoError(t, s.Delete())
	assert.NoError(t, s.Paste())

	assert.True(t, s.Output().Equal(before))
	assert.Equal(t, 1, activeHistory(t, s).History)
}

func TestPasteOutOfBoundsChangesNothing(t *testing.T) {
	s := newCanvas(t, 20, 20)
	s.SelectRect(domain.NewRect(0, 0, 10, 10))
	require.NoError(t, s.Copy())
	before := s.Output().Clone()

	s.SelectRect(domain.NewRect(15, 15, 10, 10))
	err := s.Paste()

	assert.True(t, domain.IsOutOfBounds(err))
	assert.True(t, s.Output().Equal(before))
	assert.Equal(t, 1, activeHistory(t, s).History)
	_, ok := s.Selection()
	assert.True(t, ok)
}

func TestHalfOpacityLayerOverWhite(t *testing.T) {
	s := newCanvas(t, 100, 100)
	l, err := s.AddLayer("")
	require.NoError(t, err)
	require.NoError(t, s.SetOpacity(l.ID, 0.5))
	require.NoError(t, s.SetTool(stroke.Brush{Size: 500, Opacity: 1, Color: red}))

	drawLine(s, 0, 50, 100, 50)

	for _, p := range [][2]int{{0, 0}, {50, 50}, {99, 99}} {
		c, _ := s.Output().At(p[0], p[1])
		assert.Equal(t, uint8(255), c.R)
		assert.InDelta(t, 128, int(c.G), 1)
		assert.InDelta(t, 128, int(c.B), 1)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestLayerHistoryIsPerLayer(t *testing.T) {
	s := newCanvas(t, 30, 30)
	bg := s.State().ActiveLayer
	top, err := s.AddLayer("Ink")
	require.NoError(t, err)
	require.NoError(t, s.SetTool(stroke.Brush{Size: 3, Opacity: 1, Color: red}))

	drawLine(s, 2, 15, 28, 15)
	stroked := s.Output().Clone()

	require.NoError(t, s.SelectLayer(bg))
	require.NoError(t, s.Undo())
	assert.True(t, s.Output().Equal(stroked), "background has nothing to undo")

	require.NoError(t, s.SelectLayer(top.ID))
	require.NoError(t, s.Undo())
	assert.True(t, s.Output().Equal(domain.NewPixelBufferWithColor(30, 30, domain.White)))
}

func TestDeleteLastLayerRejected(t *testing.T) {
	s := newCanvas(t, 10, 10)
	id := s.State().ActiveLayer

	assert.ErrorIs(t, s.DeleteLayer(id), domain.ErrLastLayerProtected)
	assert.Len(t, s.State().Layers, 1)
}

func TestDeleteLayerSelectsBelow(t *testing.T) {
	s := newCanvas(t, 10, 10)
	bg := s.State().ActiveLayer
	mid, _ := s.AddLayer("")
	top, _ := s.AddLayer("")

	require.NoError(t, s.SelectLayer(mid.ID))
	require.NoError(t, s.DeleteLayer(mid.ID))
	assert.Equal(t, bg, s.State().ActiveLayer)
	assert.Len(t, s.State().Layers, 2)

	assert.ErrorIs(t, s.DeleteLayer("missing"), domain.ErrLayerNotFound)
	_, err := s.LayerSurface(top.ID)
	assert.NoError(t, err)
}

func TestLayerNames(t *testing.T) {
	s := newCanvas(t, 10, 10)
	l, _ := s.AddLayer("")
	assert.Equal(t, "Layer 2", l.Name)

	require.NoError(t, s.RenameLayer(l.ID, "Inks"))
	assert.Equal(t, "Inks", s.State().Layers[1].Name)
}

func TestVisibilityAndOrderRecomposite(t *testing.T) {
	s := newCanvas(t, 10, 10)
	bg := s.State().ActiveLayer
	top, err := s.AddLayerWithFill("Red", red)
	require.NoError(t, err)

	c, _ := s.Output().At(5, 5)
	assert.Equal(t, red, c)

	visible, err := s.ToggleVisibility(top.ID)
	require.NoError(t, err)
	assert.False(t, visible)
	c, _ = s.Output().At(5, 5)
	assert.Equal(t, domain.White, c)

	_, _ = s.ToggleVisibility(top.ID)
	require.NoError(t, s.MoveLayer(top.ID, 0))
	c, _ = s.Output().At(5, 5)
	assert.Equal(t, domain.White, c, "white background now paints over red")
	assert.Equal(t, bg, s.State().Layers[1].ID)
}

func TestNewCanvasResetsClipboard(t *testing.T) {
	s := newCanvas(t, 10, 10)
	s.SelectRect(domain.NewRect(0, 0, 2, 2))
	require.NoError(t, s.Copy())

	require.NoError(t, s.NewCanvas(domain.DefaultCanvasSettings()))
	assert.Nil(t, s.Clipboard())
	assert.Len(t, s.State().Layers, 1)
	assert.Equal(t, 1920, s.Output().Width())
}
