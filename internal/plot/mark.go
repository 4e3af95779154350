package plot

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/painter"
)

// DefaultMarkRadius is the mark radius in host pixels.
const DefaultMarkRadius = 6

// Constraint maps the pointer's grid position to the position a dragged mark
// should take. ok false vetoes the move for this tick.
type Constraint func(x, y float64) (nx, ny float64, ok bool)

// ClosestOf returns a Constraint that keeps a mark on a multi-valued curve:
// for the pointer's x it takes the candidate y closest to the pointer's y.
// NaN candidates are ignored and the move is vetoed when none remain.
func ClosestOf(fn func(x float64) []float64) Constraint {
	return func(x, y float64) (float64, float64, bool) {
		best := math.NaN()
		minDist := math.Inf(1)
		for _, c := range fn(x) {
			if math.IsNaN(c) {
				continue
			}
			if d := math.Abs(c - y); d < minDist {
				best, minDist = c, d
			}
		}
		if math.IsNaN(best) {
			return 0, 0, false
		}
		return x, best, true
	}
}

// OnCurve returns a Constraint that keeps a mark on y = fn(x).
func OnCurve(fn func(x float64) float64) Constraint {
	return ClosestOf(func(x float64) []float64 { return []float64{fn(x)} })
}

// MarkConfig configures a Mark.
type MarkConfig struct {
	ID string
	// Label is drawn right of the mark when non-empty.
	Label string
	// Radius in host pixels. Zero means DefaultMarkRadius.
	Radius  float64
	Movable bool
	// OnMove is called with the new grid position after every drag tick
	// that moved the mark.
	OnMove     func(x, y float64)
	Constraint Constraint
}

// Mark is a point that can be dragged. Its grid position is the source of
// truth; the screen position is derived from it before each draw.
type Mark struct {
	id  string
	cfg MarkConfig

	gridX, gridY     float64
	screenX, screenY float64
	dragging         bool

	ctx engine.Context
}

// NewMark returns a mark at grid (x, y).
func NewMark(x, y float64, cfg MarkConfig) *Mark {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultMarkRadius
	}
	return &Mark{id: newID(cfg.ID), cfg: cfg, gridX: x, gridY: y}
}

// ID returns the key the mark registers under.
func (m *Mark) ID() string { return "mark-" + m.id }

// Label returns the mark's label.
func (m *Mark) Label() string { return m.cfg.Label }

// Pos returns the grid position.
func (m *Mark) Pos() (float64, float64) { return m.gridX, m.gridY }

// ScreenPos returns the device-pixel position of the latest draw.
func (m *Mark) ScreenPos() (float64, float64) { return m.screenX, m.screenY }

// Dragging reports whether a drag of this mark is in progress.
func (m *Mark) Dragging() bool { return m.dragging }

// Move places the mark at grid (x, y) and requests a render.
func (m *Mark) Move(x, y float64) {
	m.setGrid(x, y)
	if m.ctx != nil {
		m.ctx.RequestRender()
	}
}

func (m *Mark) setGrid(x, y float64) {
	m.gridX, m.gridY = x, y
	if m.ctx != nil && m.ctx.State() != nil {
		m.screenX, m.screenY = m.ctx.State().GridToScreen(x, y)
	}
}

func (m *Mark) setScreen(x, y float64) {
	m.screenX, m.screenY = x, y
	if m.ctx != nil && m.ctx.State() != nil {
		m.gridX, m.gridY = m.ctx.State().ScreenToGrid(x, y)
	}
}

// hit is the Manhattan-distance test against the drawn position.
func (m *Mark) hit(x, y, ratio float64) bool {
	return math.Abs(x-m.screenX)+math.Abs(y-m.screenY) <= m.cfg.Radius*ratio
}

// Attach implements engine.Element.
func (m *Mark) Attach(ctx engine.Context) {
	m.ctx = ctx
	m.dragging = false
	m.setGrid(m.gridX, m.gridY)

	key := m.ID()
	ctx.RegisterRender(key, ZMark, m.factory)
	if !m.cfg.Movable {
		return
	}
	ctx.RegisterEventHandlerPriority(events.PointerMove, key+"-hover", markPriority, m.onHover)
	ctx.RegisterEventHandlerPriority(events.PointerDown, key+"-down", markPriority, m.onDown)
	ctx.RegisterEventHandlerPriority(events.Drag, key+"-drag", markPriority, m.onDrag)
	ctx.RegisterEventHandlerPriority(events.DragEnd, key+"-enddrag", markPriority, m.onDragEnd)
}

func (m *Mark) onHover(ev *engine.Event) events.Result {
	p := ev.State.Pointer
	if m.hit(p.DeviceX, p.DeviceY, ev.State.DevicePixelRatio) {
		m.ctx.SetCursor(engine.CursorGrab)
	}
	return events.NothingDone
}

// onDown grabs the mark when the press lands on it. Only the first mark hit
// takes the drag.
func (m *Mark) onDown(ev *engine.Event) events.Result {
	p := ev.State.Pointer
	m.dragging = m.hit(p.DeviceX, p.DeviceY, ev.State.DevicePixelRatio)
	if m.dragging {
		m.ctx.SetCursor(engine.CursorGrabbing)
		return events.Claim
	}
	return events.NothingDone
}

func (m *Mark) onDrag(ev *engine.Event) events.Result {
	if !m.dragging {
		return events.NothingDone
	}
	p := ev.State.Pointer
	if m.cfg.Constraint != nil {
		if x, y, ok := m.cfg.Constraint(p.GridX, p.GridY); ok {
			m.setGrid(x, y)
			m.moved()
		}
	} else {
		m.setScreen(p.DeviceX, p.DeviceY)
		m.moved()
	}
	return events.Claim
}

func (m *Mark) moved() {
	if m.cfg.OnMove != nil {
		m.cfg.OnMove(m.gridX, m.gridY)
	}
}

func (m *Mark) onDragEnd(*engine.Event) events.Result {
	if m.dragging {
		m.dragging = false
		m.ctx.SetCursor(engine.CursorDefault)
	}
	return events.NothingDone
}

func (m *Mark) factory(f *engine.Frame) painter.DrawFunc {
	return func() {
		m.setGrid(m.gridX, m.gridY)
		drawDot(f, m.screenX, m.screenY, m.cfg.Radius)
		if m.cfg.Label != "" {
			drawLabel(f, m.cfg.Label, m.screenX+px(f, m.cfg.Radius+16), m.screenY)
		}
	}
}
