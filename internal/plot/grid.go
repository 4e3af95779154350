package plot

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/coords"
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/surface"
)

// DefaultGridSpacing is the minimum distance between grid lines in host
// pixels.
const DefaultGridSpacing = 60

// maxGridLines bounds the lines per axis if the range is degenerate.
const maxGridLines = 2000

// GridConfig configures a Grid.
type GridConfig struct {
	HideLabels bool
	// Spacing is the minimum line distance in host pixels.
	Spacing float64
}

// Grid draws the axes, grid lines on a 1-2-5 progression and tick labels.
type Grid struct {
	cfg   GridConfig
	lines []float64
	axes  []float64
}

// NewGrid returns a grid.
func NewGrid(cfg GridConfig) *Grid {
	if cfg.Spacing <= 0 {
		cfg.Spacing = DefaultGridSpacing
	}
	return &Grid{cfg: cfg}
}

// Attach implements engine.Element.
func (g *Grid) Attach(ctx engine.Context) {
	ctx.RegisterRender("grid", ZGrid, g.factory)
}

// GridStep returns the smallest step of the form {1, 2, 5} x 10^k grid units
// spanning at least minPixels, and the k of that step.
func GridStep(pixelsPerUnit, minPixels float64) (step float64, exponent int) {
	if !(pixelsPerUnit > 0) || !(minPixels > 0) || math.IsInf(pixelsPerUnit, 0) {
		return 1, 0
	}
	target := minPixels / pixelsPerUnit
	e := coords.ToExponential(target, 10)
	base := math.Pow10(e.Exponent)
	for _, m := range []float64{1, 2, 5} {
		if m*base >= target {
			return m * base, e.Exponent
		}
	}
	return 10 * base, e.Exponent + 1
}

func (g *Grid) factory(f *engine.Frame) painter.DrawFunc {
	return func() {
		s := f.State
		r := s.Range
		step, exp := GridStep(s.PixelsPerUnit(), px(f, g.cfg.Spacing))
		precision := 0
		if exp < 0 {
			precision = -exp
		}

		first := math.Ceil(r.XMin / step)
		last := math.Floor(r.XMax / step)
		firstY := math.Ceil(r.YMin / step)
		lastY := math.Floor(r.YMax / step)
		if last-first > maxGridLines || lastY-firstY > maxGridLines {
			return
		}

		g.lines = g.lines[:0]
		for k := first; k <= last; k++ {
			if k == 0 {
				continue
			}
			cx, _ := s.GridToClip(k*step, 0)
			g.lines = append(g.lines, cx, -1, cx, 1)
		}
		for k := firstY; k <= lastY; k++ {
			if k == 0 {
				continue
			}
			_, cy := s.GridToClip(0, k*step)
			g.lines = append(g.lines, -1, cy, 1, cy)
		}
		f.Raster.DrawLines(g.lines, surface.Style{Color: f.Theme.GridLine, Width: px(f, 1)})

		ox, oy := s.GridToClip(0, 0)
		g.axes = g.axes[:0]
		if oy >= -1 && oy <= 1 {
			g.axes = append(g.axes, -1, oy, 1, oy)
		}
		if ox >= -1 && ox <= 1 {
			g.axes = append(g.axes, ox, -1, ox, 1)
		}
		f.Raster.DrawLines(g.axes, surface.Style{Color: f.Theme.Axis, Width: px(f, 2)})

		if !g.cfg.HideLabels {
			g.drawLabels(f, step, precision, first, last, firstY, lastY)
		}
	}
}

// drawLabels writes tick values along the axes. Labels stick to the nearest
// edge when an axis is off screen.
func (g *Grid) drawLabels(f *engine.Frame, step float64, precision int, first, last, firstY, lastY float64) {
	s := f.State
	size := fontSize(f)
	pad := px(f, 2)
	_, th := f.Vector.MeasureText("0", size)
	sx0, sy0 := s.GridToScreen(0, 0)

	ay := clamp(sy0, 0, s.Height-th-2*pad)
	for k := first; k <= last; k++ {
		if k == 0 {
			continue
		}
		text := formatCoord(k*step, precision)
		sx, _ := s.GridToScreen(k*step, 0)
		f.Vector.DrawText(text, sx+pad, ay+pad, size, f.Theme.Label)
	}
	for k := firstY; k <= lastY; k++ {
		if k == 0 {
			continue
		}
		text := formatCoord(k*step, precision)
		tw, _ := f.Vector.MeasureText(text, size)
		ax := clamp(sx0, 0, s.Width-tw-2*pad)
		_, sy := s.GridToScreen(0, k*step)
		f.Vector.DrawText(text, ax+pad, sy+pad, size, f.Theme.Label)
	}
	if s.Range.Contains(0, 0) {
		f.Vector.DrawText("0", sx0+pad, sy0+pad, size, f.Theme.Label)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
