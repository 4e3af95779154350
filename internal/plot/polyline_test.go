package plot

import (
	"image/color"
	"math"
	"testing"

	"github.com/opd-ai/go-easyplot/internal/surface"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

func TestSegmentFollowsMark(t *testing.T) {
	m := NewMark(0, 0, MarkConfig{Movable: true})
	seg := Segment(m, At(1, 1), Config{Dashed: true, Width: 2})
	e, rec := mount(t, seg, m)

	if v := seg.Vertices(); len(v) != 4 || v[0] != 0 || v[2] != 1 {
		t.Fatalf("vertices = %v", v)
	}

	drag(e, 400, 300, 370, 330)
	v := seg.Vertices()
	if !near(v[0], -0.1) || !near(v[1], -0.1) {
		t.Errorf("segment start = (%v, %v), want (-0.1, -0.1)", v[0], v[1])
	}

	op := rec.Filter(surface.OpLineStrip)[0]
	if !op.Style.Dashed || op.Style.Width != 2 {
		t.Errorf("style = %+v", op.Style)
	}
}

func TestRayLeavesVisibleRange(t *testing.T) {
	s := viewport.New(800, 600, 1)
	r := Ray(At(0.5, 0.5), [2]float64{1, 2}, Config{})

	v := r.source(s)
	if v[0] != 0.5 || v[1] != 0.5 {
		t.Errorf("ray starts at (%v, %v)", v[0], v[1])
	}
	if s.Range.Contains(v[2], v[3]) {
		t.Errorf("ray end (%v, %v) is inside %+v", v[2], v[3], s.Range)
	}
	// direction is preserved
	if !near((v[3]-v[1])/(v[2]-v[0]), 2) {
		t.Errorf("ray slope = %v, want 2", (v[3]-v[1])/(v[2]-v[0]))
	}
}

func TestLineExtendsBothWays(t *testing.T) {
	s := viewport.New(800, 600, 1)
	s.SetScale(0.05)
	l := Line(At(0, 0), [2]float64{1, 0}, Config{})

	v := l.source(s)
	if !(v[0] < s.Range.XMin) || !(v[2] > s.Range.XMax) {
		t.Errorf("line x span [%v, %v] does not cover [%v, %v]", v[0], v[2], s.Range.XMin, s.Range.XMax)
	}
	if v[1] != 0 || v[3] != 0 {
		t.Errorf("horizontal line has y %v, %v", v[1], v[3])
	}
}

func TestFarPointZeroDirection(t *testing.T) {
	s := viewport.New(100, 100, 1)
	if x, y := farPoint(s, 3, 4, [2]float64{0, 0}); x != 3 || y != 4 {
		t.Errorf("farPoint with zero direction = (%v, %v)", x, y)
	}
	if x, y := farPoint(s, 3, 4, [2]float64{math.NaN(), 0}); x != 3 || y != 4 {
		t.Errorf("farPoint with NaN direction = (%v, %v)", x, y)
	}
}

func TestPolylineHover(t *testing.T) {
	square := []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0}
	p := NewPolyline(func(*viewport.State) []float64 { return square }, Config{Hover: true, Color: color.RGBA{B: 255, A: 255}})
	e, rec := mount(t, p)

	// grid (1, 1) is at device (700, 0)
	e.PointerMove(698, 3)
	if texts := rec.Texts(); len(texts) != 1 || texts[0] != "(1.00, 1.00)" {
		t.Errorf("texts = %v, want the (1, 1) corner", texts)
	}
	if got := rec.Filter(surface.OpLineStrip)[0].Style.Color; got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("color = %v", got)
	}
}

func TestPolylineNilSource(t *testing.T) {
	p := NewPolyline(nil, Config{})
	_, rec := mount(t, p)
	if n := len(rec.Filter(surface.OpLineStrip)); n != 0 {
		t.Errorf("nil source drew %d strips", n)
	}
}
