package stroke

import "github.com/jwulff/artstudio-go/internal/domain"

// State is the engine's gesture state.
type State int

const (
	Idle State = iota
	Stroking
)

func (s State) String() string {
	if s == Stroking {
		return "stroking"
	}
	return "idle"
}

// Engine applies one gesture at a time to a target surface. Each Move is
// applied immediately; there is no batching.
type Engine struct {
	state  State
	tool   Tool
	target *domain.PixelBuffer
	last   domain.Point
	paint  segmentPainter

	// carry is the smudge distance travelled since the last patch step.
	carry float64
}

// NewEngine returns an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// State reports whether a gesture is in progress.
func (e *Engine) State() State { return e.state }

// Stroking is shorthand for State() == Stroking.
func (e *Engine) Stroking() bool { return e.state == Stroking }

// Tool returns the tool of the gesture in progress, or nil when idle.
func (e *Engine) Tool() Tool { return e.tool }

// Begin starts a gesture at p. It does nothing and returns false for the
// selection tool, a nil tool, a nil target, or while already stroking.
// Starting a gesture paints nothing; the first segment is drawn on Move.
func (e *Engine) Begin(target *domain.PixelBuffer, tool Tool, p domain.Point) bool {
	if e.state == Stroking || target == nil || tool == nil || tool.Kind() == KindSelection {
		return false
	}
	e.state = Stroking
	e.tool = Normalize(tool)
	e.target = target
	e.last = p
	e.carry = 0
	return true
}

// Move applies the segment from the previous sample to p. It returns
// false when no gesture is in progress.
func (e *Engine) Move(p domain.Point) bool {
	if e.state != Stroking {
		return false
	}
	switch t := e.tool.(type) {
	case Brush:
		e.paint.paintSegment(e.target, e.last, p, t)
	case Eraser:
		e.paint.eraseSegment(e.target, e.last, p, t)
	case Smudge:
		e.carry = smudgeSegment(e.target, e.last, p, t, e.carry)
	}
	e.last = p
	return true
}

// End finishes the gesture. It returns false if none was in progress.
func (e *Engine) End() bool {
	if e.state != Stroking {
		return false
	}
	e.state = Idle
	e.tool = nil
	e.target = nil
	return true
}
