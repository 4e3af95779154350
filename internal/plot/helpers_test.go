package plot

import (
	"math"
	"testing"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/surface"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// mount attaches elements to an 800x600 surface at scale 1, where one grid
// unit spans 300 device pixels and the origin is at (400, 300).
func mount(t *testing.T, elements ...engine.Element) (*engine.Engine, *surface.Recorder) {
	t.Helper()
	e := engine.New(engine.Options{Scale: 1})
	e.Add(elements...)
	rec := surface.NewRecorder()
	if err := e.Mount(rec, rec, 800, 600, 1); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return e, rec
}

func drag(e *engine.Engine, x0, y0, x1, y1 float64) {
	e.PointerDown(x0, y0)
	e.PointerMove(x1, y1)
	e.PointerUp(x1, y1)
}
