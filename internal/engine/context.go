package engine

import (
	"image/color"
	"log/slog"
	"sort"

	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/surface"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

// Cursor is a pointer shape, named after the CSS cursor values.
type Cursor string

// Cursor shapes the hosts know how to show.
const (
	CursorDefault   Cursor = "default"
	CursorGrab      Cursor = "grab"
	CursorGrabbing  Cursor = "grabbing"
	CursorCrosshair Cursor = "crosshair"
	CursorPointer   Cursor = "pointer"
)

// Theme holds the shared look of the primitives.
type Theme struct {
	Background color.RGBA
	// FontSize is in host pixels; primitives multiply it by the pixel ratio.
	FontSize float64
	// HoverRadius is the hover and hit-test tolerance in host pixels.
	HoverRadius float64

	Axis        color.RGBA
	GridLine    color.RGBA
	Label       color.RGBA
	Guide       color.RGBA
	TooltipFill color.RGBA
	TooltipText color.RGBA
	MarkFill    color.RGBA
	MarkStroke  color.RGBA
}

// DefaultTheme returns a light theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		FontSize:    14,
		HoverRadius: 12,
		Axis:        color.RGBA{A: 255},
		GridLine:    color.RGBA{R: 128, G: 128, B: 128, A: 255},
		Label:       color.RGBA{R: 64, G: 64, B: 64, A: 255},
		Guide:       color.RGBA{R: 26, G: 26, B: 26, A: 128},
		TooltipFill: color.RGBA{A: 51},
		TooltipText: color.RGBA{A: 255},
		MarkFill:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		MarkStroke:  color.RGBA{A: 255},
	}
}

// Frame is what render factories receive. One Frame lives for the whole
// mount, so draw functions may keep the pointer.
type Frame struct {
	State  *viewport.State
	Raster surface.Raster
	Vector surface.Vector
	Theme  Theme

	points map[string][]float64
}

// EachPoints calls fn for every published point buffer in key order.
func (f *Frame) EachPoints(fn func(key string, points []float64)) {
	keys := make([]string, 0, len(f.points))
	for k := range f.points {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, f.points[k])
	}
}

// Event is the argument of every event handler.
type Event struct {
	State *viewport.State
	// ScreenX and ScreenY are the pointer position in host pixels.
	ScreenX, ScreenY float64
	// DX and DY are the device-pixel movement since the previous pointer
	// event. Only set for drags and moves.
	DX, DY float64
	// WheelDelta is positive away from the user. Only set for wheel events.
	WheelDelta float64
}

// Context is what primitives attach to.
type Context interface {
	RegisterRender(key string, zIndex int, factory painter.Factory[*Frame])
	UnregisterRender(key string)
	RegisterEventHandler(kind events.Kind, key string, h events.Handler[*Event])
	// RegisterEventHandlerPriority registers h ahead of every handler of a
	// lower priority. RegisterEventHandler uses priority 0.
	RegisterEventHandlerPriority(kind events.Kind, key string, priority int, h events.Handler[*Event])
	UnregisterEventHandler(kind events.Kind, key string)
	SetCursor(c Cursor)
	// State returns the live viewport state. Primitives must treat it as
	// read-only.
	State() *viewport.State
	// PublishPoints exposes a point buffer to cursors and crosshairs.
	PublishPoints(key string, points []float64)
	// RequestRender asks for a render pass after a primitive changed its own
	// state outside of an event handler.
	RequestRender()
	Theme() Theme
	Logger() *slog.Logger
}

// Element is a primitive that can attach itself to a mounted engine. Attach
// runs again on every mount and resize, after the registries are cleared.
type Element interface {
	Attach(ctx Context)
}

// ElementFunc adapts a function to Element.
type ElementFunc func(ctx Context)

// Attach calls f.
func (f ElementFunc) Attach(ctx Context) { f(ctx) }
