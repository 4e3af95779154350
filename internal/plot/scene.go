package plot

import (
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/sampler"
)

// Scene collects the primitives of one plot in insertion order and hands
// out palette colors to curves and polylines that do not choose one.
type Scene struct {
	palette  Palette
	elements []engine.Element
	marks    map[string]*Mark
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{marks: make(map[string]*Mark)}
}

func (s *Scene) color(cfg Config) Config {
	if cfg.Color.A == 0 {
		cfg.Color = s.palette.Next()
	}
	return cfg
}

// Add appends an arbitrary element.
func (s *Scene) Add(el engine.Element) {
	s.elements = append(s.elements, el)
}

// Grid adds a grid.
func (s *Scene) Grid(cfg GridConfig) *Grid {
	g := NewGrid(cfg)
	s.Add(g)
	return g
}

// Curve adds y = fn(x).
func (s *Scene) Curve(fn sampler.Func, steps int, cfg Config) *Curve {
	c := NewCurve(fn, steps, s.color(cfg))
	s.Add(c)
	return c
}

// Polyline adds a polyline over source.
func (s *Scene) Polyline(source PointsFunc, cfg Config) *Polyline {
	p := NewPolyline(source, s.color(cfg))
	s.Add(p)
	return p
}

// Segment adds a segment between two positions.
func (s *Scene) Segment(from, to Positioner, cfg Config) *Polyline {
	p := Segment(from, to, s.color(cfg))
	s.Add(p)
	return p
}

// Ray adds a ray.
func (s *Scene) Ray(from Positioner, dir [2]float64, cfg Config) *Polyline {
	p := Ray(from, dir, s.color(cfg))
	s.Add(p)
	return p
}

// Line adds an infinite line.
func (s *Scene) Line(from Positioner, dir [2]float64, cfg Config) *Polyline {
	p := Line(from, dir, s.color(cfg))
	s.Add(p)
	return p
}

// Mark adds a mark. Marks with an explicit ID can be found with MarkByID.
func (s *Scene) Mark(x, y float64, cfg MarkConfig) *Mark {
	m := NewMark(x, y, cfg)
	if cfg.ID != "" {
		s.marks[cfg.ID] = m
	}
	s.Add(m)
	return m
}

// MarkByID returns the mark created with id.
func (s *Scene) MarkByID(id string) (*Mark, bool) {
	m, ok := s.marks[id]
	return m, ok
}

// Cursor adds a vertical cursor.
func (s *Scene) Cursor(id string) *Cursor {
	c := NewCursor(id)
	s.Add(c)
	return c
}

// Crosshair adds a crosshair.
func (s *Scene) Crosshair(id string) *Crosshair {
	c := NewCrosshair(id)
	s.Add(c)
	return c
}

// Elements returns the primitives in insertion order.
func (s *Scene) Elements() []engine.Element {
	return append([]engine.Element(nil), s.elements...)
}

// Len returns the number of primitives.
func (s *Scene) Len() int { return len(s.elements) }
