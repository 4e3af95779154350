// Package plot implements the interactive primitives of a plot: curves,
// polylines, marks, the grid and pointer guides.
//
// Every primitive is an engine.Element. Attach registers its draw factory and
// event handlers under keys derived from the primitive's id, so attaching the
// same primitive again (after a resize or remount) replaces rather than
// duplicates it.
package plot

import (
	"image/color"

	"github.com/google/uuid"
)

// Paint order of the primitive families. Lower values paint first.
const (
	ZGrid   = -100
	ZCurve  = 100
	ZMark   = 200
	ZCursor = 300
)

// markPriority puts mark handlers ahead of curve hover, which stops
// propagation once it shows a tooltip.
const markPriority = 1

// Config is the styling shared by curves and polylines.
type Config struct {
	// ID keys the primitive's registrations. Empty generates a random one.
	ID string
	// Color of the stroke. A zero alpha selects the next palette color when
	// the primitive is created through a Scene.
	Color color.RGBA
	// Width is the stroke width in host pixels. Zero means 1.
	Width  float64
	Dashed bool
	// Hover shows a tooltip for the point nearest to the pointer.
	Hover bool
}

// DefaultColors is the palette curves rotate through.
var DefaultColors = []color.RGBA{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, A: 255},
	{G: 255, B: 255, A: 255},
	{R: 255, B: 255, A: 255},
	{A: 255},
}

// Palette hands out DefaultColors in order, wrapping around.
type Palette struct {
	next int
}

// Next returns the next color.
func (p *Palette) Next() color.RGBA {
	c := DefaultColors[p.next%len(DefaultColors)]
	p.next++
	return c
}

// Positioner reports a position in grid units.
type Positioner interface {
	Pos() (x, y float64)
}

// Point is a fixed Positioner.
type Point struct {
	X, Y float64
}

// Pos implements Positioner.
func (p Point) Pos() (float64, float64) { return p.X, p.Y }

// At returns a fixed Positioner.
func At(x, y float64) Point { return Point{X: x, Y: y} }

// PositionFunc adapts a function to Positioner.
type PositionFunc func() (x, y float64)

// Pos calls f.
func (f PositionFunc) Pos() (float64, float64) { return f() }

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
