package plot

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/points"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

// PointsFunc supplies a polyline's vertices in grid units, as a flat
// x0 y0 x1 y1 ... buffer, for the current view.
type PointsFunc func(s *viewport.State) []float64

// Polyline draws the vertices its source returns and nothing else. A NaN
// vertex breaks the line.
type Polyline struct {
	id     string
	kind   string
	cfg    Config
	source PointsFunc
	last   []float64
	hover  hoverState
	clip   []float64
}

// NewPolyline returns a polyline over a caller-owned buffer.
func NewPolyline(source PointsFunc, cfg Config) *Polyline {
	return newPolyline("polyline", source, cfg)
}

func newPolyline(kind string, source PointsFunc, cfg Config) *Polyline {
	return &Polyline{id: newID(cfg.ID), kind: kind, cfg: cfg, source: source}
}

// Segment joins two positions. Either end may be a Mark, in which case the
// segment follows it.
func Segment(from, to Positioner, cfg Config) *Polyline {
	buf := make([]float64, 4)
	return newPolyline("segment", func(*viewport.State) []float64 {
		buf[0], buf[1] = from.Pos()
		buf[2], buf[3] = to.Pos()
		return buf
	}, cfg)
}

// Ray draws from + t*dir for t >= 0.
func Ray(from Positioner, dir [2]float64, cfg Config) *Polyline {
	buf := make([]float64, 4)
	return newPolyline("ray", func(s *viewport.State) []float64 {
		x, y := from.Pos()
		fx, fy := farPoint(s, x, y, dir)
		buf[0], buf[1], buf[2], buf[3] = x, y, fx, fy
		return buf
	}, cfg)
}

// Line draws from + t*dir for every t.
func Line(from Positioner, dir [2]float64, cfg Config) *Polyline {
	buf := make([]float64, 4)
	back := [2]float64{-dir[0], -dir[1]}
	return newPolyline("line", func(s *viewport.State) []float64 {
		x, y := from.Pos()
		buf[0], buf[1] = farPoint(s, x, y, back)
		buf[2], buf[3] = farPoint(s, x, y, dir)
		return buf
	}, cfg)
}

// farPoint moves from (x, y) along dir until it is past every edge of the
// visible range. A zero direction stays put.
func farPoint(s *viewport.State, x, y float64, dir [2]float64) (float64, float64) {
	n := math.Hypot(dir[0], dir[1])
	if n == 0 || math.IsNaN(n) {
		return x, y
	}
	r := s.Range
	cx := (r.XMin + r.XMax) / 2
	cy := (r.YMin + r.YMax) / 2
	reach := math.Hypot(x-cx, y-cy) + math.Hypot(r.Width(), r.Height())
	return x + dir[0]/n*reach, y + dir[1]/n*reach
}

// ID returns the key the polyline registers under.
func (p *Polyline) ID() string { return p.kind + "-" + p.id }

// Vertices returns the buffer of the latest draw.
func (p *Polyline) Vertices() []float64 { return p.last }

// Attach implements engine.Element.
func (p *Polyline) Attach(ctx engine.Context) {
	p.hover = hoverState{}
	ctx.RegisterRender(p.ID(), ZCurve, p.factory)
	if p.cfg.Hover {
		ctx.RegisterEventHandler(events.PointerMove, p.ID()+"-hover", func(ev *engine.Event) events.Result {
			s := ev.State
			pts := p.source(s)
			m, ok := points.NearestLinear(pts, s.Pointer.GridX, s.Pointer.GridY, hoverRadius(ctx.Theme(), s))
			return p.hover.claim(s, m, ok)
		})
	}
}

func (p *Polyline) factory(f *engine.Frame) painter.DrawFunc {
	return func() {
		if p.source == nil {
			return
		}
		p.last = p.source(f.State)
		p.clip = toClip(f, p.clip, p.last)
		f.Raster.DrawLineStrip(p.clip, strokeStyle(f, p.cfg))
		p.hover.draw(f)
	}
}
