package plot

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/points"
	"github.com/opd-ai/go-easyplot/internal/surface"
)

// guidePrecision is the number of decimals in cursor tooltips.
const guidePrecision = 2

// Cursor is a vertical guide that follows the pointer and marks the nearest
// sample of every curve.
type Cursor struct {
	id string
}

// NewCursor returns a vertical cursor. An empty id gets a generated one.
func NewCursor(id string) *Cursor { return &Cursor{id: newID(id)} }

// ID returns the render key.
func (c *Cursor) ID() string { return "cursor-" + c.id }

// Attach implements engine.Element.
func (c *Cursor) Attach(ctx engine.Context) {
	ctx.RegisterRender(c.ID(), ZCursor, c.factory)
}

func (c *Cursor) factory(f *engine.Frame) painter.DrawFunc {
	guide := make([]float64, 4)
	return func() {
		s := f.State
		if s.MoveSeq == 0 {
			return
		}
		p := s.Pointer
		guide[0], guide[1], guide[2], guide[3] = p.ClipX, -1, p.ClipX, 1
		f.Raster.DrawLines(guide, surface.Style{Color: f.Theme.Guide, Width: px(f, 1), Dashed: true})

		f.EachPoints(func(_ string, pts []float64) {
			x, y, ok := nearestSample(pts, p.GridX)
			if !ok {
				return
			}
			sx, sy := s.GridToScreen(x, y)
			drawDot(f, sx, sy, hoverDotRadius)
			drawTooltip(f, formatPoint(x, y, guidePrecision), sx, sy)
		})
	}
}

// Crosshair is a pair of guides through the pointer. For every curve it
// shows the nearest sample, projected onto the vertical guide.
type Crosshair struct {
	id string
}

// NewCrosshair returns a crosshair. An empty id gets a generated one.
func NewCrosshair(id string) *Crosshair { return &Crosshair{id: newID(id)} }

// ID returns the render key.
func (c *Crosshair) ID() string { return "crosshair-" + c.id }

// Attach implements engine.Element.
func (c *Crosshair) Attach(ctx engine.Context) {
	ctx.RegisterRender(c.ID(), ZCursor, c.factory)
}

func (c *Crosshair) factory(f *engine.Frame) painter.DrawFunc {
	guides := make([]float64, 8)
	return func() {
		s := f.State
		if s.MoveSeq == 0 {
			return
		}
		p := s.Pointer
		copy(guides, []float64{p.ClipX, -1, p.ClipX, 1, -1, p.ClipY, 1, p.ClipY})
		f.Raster.DrawLines(guides, surface.Style{Color: f.Theme.Guide, Width: px(f, 1), Dashed: true})

		f.EachPoints(func(_ string, pts []float64) {
			x, y, ok := nearestSample(pts, p.GridX)
			if !ok {
				return
			}
			_, sy := s.GridToScreen(x, y)
			drawTooltip(f, formatPoint(x, y, guidePrecision), p.DeviceX, sy)
		})
	}
}

// nearestSample returns the sample closest in x, skipping gaps.
func nearestSample(pts []float64, x float64) (float64, float64, bool) {
	idx, ok := points.Nearest(pts, x)
	if !ok {
		return 0, 0, false
	}
	sx, sy, ok := points.At(pts, idx)
	if !ok || math.IsNaN(sy) {
		return 0, 0, false
	}
	return sx, sy, true
}
