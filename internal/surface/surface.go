// Package surface declares the two draw surfaces a plot is composited from.
//
// A Raster takes clip-space geometry (curves, grid lines, guides). A Vector
// takes device-pixel primitives (text, circles, tooltip boxes) and is drawn
// on top of the raster. The interactive host backs both with one ebiten
// image; snapshots back them with a software rasterizer.
package surface

import (
	"image/color"
	"math"
)

// Style is the stroke program for raster geometry.
type Style struct {
	Color color.RGBA
	// Width is the stroke width in device pixels. Zero means 1.
	Width float64
	// Dashed strokes alternate DashOn/DashOff device pixels.
	Dashed bool
}

// Dash pattern in device pixels.
const (
	DashOn  = 6.0
	DashOff = 4.0
)

// StrokeWidth returns the effective stroke width.
func (s Style) StrokeWidth() float64 {
	if s.Width <= 0 {
		return 1
	}
	return s.Width
}

// Raster draws clip-space geometry.
type Raster interface {
	// Clear fills the whole surface.
	Clear(bg color.RGBA)
	// DrawLineStrip connects consecutive vertices x0 y0 x1 y1 .... A vertex
	// with a NaN component lifts the pen.
	DrawLineStrip(vertices []float64, style Style)
	// DrawLines draws independent segments, two vertices each.
	DrawLines(vertices []float64, style Style)
}

// Vector draws device-pixel primitives.
type Vector interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	StrokeCircle(cx, cy, r, width float64, c color.RGBA)
	// DrawText draws s with its top left corner at (x, y).
	DrawText(s string, x, y, size float64, c color.RGBA)
	MeasureText(s string, size float64) (w, h float64)
}

// Runs splits a line strip into the runs between NaN vertices. Runs with a
// single vertex are dropped since they draw nothing.
func Runs(vertices []float64) [][]float64 {
	var runs [][]float64
	start := -1
	n := len(vertices) &^ 1
	for i := 0; i < n; i += 2 {
		broken := math.IsNaN(vertices[i]) || math.IsNaN(vertices[i+1])
		switch {
		case broken && start >= 0:
			if i-start >= 4 {
				runs = append(runs, vertices[start:i])
			}
			start = -1
		case !broken && start < 0:
			start = i
		}
	}
	if start >= 0 && n-start >= 4 {
		runs = append(runs, vertices[start:n])
	}
	return runs
}

// Dashes cuts the pixel-space segment (x0, y0)-(x1, y1) into dash pieces,
// returned as x0 y0 x1 y1 quadruples. phase is the distance already consumed
// by previous segments of the same polyline and is updated so dashes continue
// across joints.
func Dashes(x0, y0, x1, y1 float64, phase *float64) []float64 {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil
	}
	period := DashOn + DashOff
	var out []float64
	t := 0.0
	p := math.Mod(*phase, period)
	for t < length {
		var span float64
		if p < DashOn {
			span = math.Min(DashOn-p, length-t)
			a, b := t/length, (t+span)/length
			out = append(out, x0+dx*a, y0+dy*a, x0+dx*b, y0+dy*b)
		} else {
			span = math.Min(period-p, length-t)
		}
		t += span
		p = math.Mod(p+span, period)
	}
	*phase += length
	return out
}
