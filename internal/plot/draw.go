package plot

import (
	"math"
	"strconv"

	"github.com/opd-ai/go-easyplot/internal/coords"
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/surface"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

// Tooltip geometry in host pixels.
const (
	tooltipPadding = 4
	tooltipOffset  = 8
	hoverDotRadius = 4
)

// px converts host pixels to device pixels.
func px(f *engine.Frame, v float64) float64 {
	return v * f.State.DevicePixelRatio
}

func fontSize(f *engine.Frame) float64 {
	return px(f, f.Theme.FontSize)
}

// hoverRadius is the hover tolerance in grid units.
func hoverRadius(theme engine.Theme, s *viewport.State) float64 {
	return theme.HoverRadius * s.DevicePixelRatio / s.PixelsPerUnit()
}

// drawDot draws a hollow mark at device pixel (x, y).
func drawDot(f *engine.Frame, x, y, radius float64) {
	r := px(f, radius)
	f.Vector.FillCircle(x, y, r, f.Theme.MarkFill)
	f.Vector.StrokeCircle(x, y, r, px(f, 1), f.Theme.MarkStroke)
}

// drawTooltip draws text in a translucent box whose top left corner is at
// device pixel (x, y). The box flips left and up to stay on the surface.
func drawTooltip(f *engine.Frame, text string, x, y float64) {
	size := fontSize(f)
	pad := px(f, tooltipPadding)
	off := px(f, tooltipOffset)
	tw, th := f.Vector.MeasureText(text, size)
	w := tw + 2*pad
	h := th + 2*pad

	bx, by := tooltipOrigin(x, y, w, h, pad, f.State.Width, f.State.Height)
	f.Vector.FillRect(bx+off, by+off, w, h, f.Theme.TooltipFill)
	f.Vector.DrawText(text, bx+pad+off, by+pad+off, size, f.Theme.TooltipText)
}

func tooltipOrigin(x, y, w, h, pad, width, height float64) (float64, float64) {
	right := x+w > width
	bottom := y+h > height
	switch {
	case right && bottom:
		return x - w, y - h
	case right:
		return x - w - pad, y
	case bottom:
		return x, y - h - pad
	}
	return x, y
}

// drawLabel draws text left aligned and vertically centered on y.
func drawLabel(f *engine.Frame, text string, x, y float64) {
	size := fontSize(f)
	_, th := f.Vector.MeasureText(text, size)
	f.Vector.DrawText(text, x, y-th/2, size, f.Theme.Label)
}

// hoverPrecision is the number of decimals shown for a hovered point.
func hoverPrecision(scale float64) int {
	e := coords.ToExponential(scale, 10).Exponent
	if e < 0 {
		e = -e
	}
	return e + 2
}

func formatPoint(x, y float64, precision int) string {
	return "(" + formatCoord(x, precision) + ", " + formatCoord(y, precision) + ")"
}

func formatCoord(v float64, precision int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func strokeStyle(f *engine.Frame, cfg Config) surface.Style {
	c := cfg.Color
	if c.A == 0 {
		c = DefaultColors[0]
	}
	width := cfg.Width
	if width <= 0 {
		width = 1
	}
	return surface.Style{Color: c, Width: px(f, width), Dashed: cfg.Dashed}
}

// toClip converts a grid buffer to clip space, reusing dst.
func toClip(f *engine.Frame, dst, pts []float64) []float64 {
	dst = dst[:0]
	for i := 0; i+1 < len(pts); i += 2 {
		cx, cy := f.State.GridToClip(pts[i], pts[i+1])
		dst = append(dst, cx, cy)
	}
	return dst
}
