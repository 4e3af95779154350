package plot

import (
	"image/color"
	"math"
	"testing"

	"github.com/opd-ai/go-easyplot/internal/surface"
)

func TestScenePalette(t *testing.T) {
	s := NewScene()
	own := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	a := s.Curve(math.Sin, 0, Config{ID: "a"})
	b := s.Curve(math.Cos, 0, Config{ID: "b", Color: own})
	c := s.Segment(At(0, 0), At(1, 1), Config{ID: "c"})

	if a.cfg.Color != DefaultColors[0] {
		t.Errorf("first curve color = %v", a.cfg.Color)
	}
	if b.cfg.Color != own {
		t.Errorf("explicit color replaced by %v", b.cfg.Color)
	}
	if c.cfg.Color != DefaultColors[1] {
		t.Errorf("segment color = %v, want the second palette color", c.cfg.Color)
	}
}

func TestPaletteWraps(t *testing.T) {
	var p Palette
	for range DefaultColors {
		p.Next()
	}
	if got := p.Next(); got != DefaultColors[0] {
		t.Errorf("palette did not wrap: %v", got)
	}
}

func TestSceneElementsMount(t *testing.T) {
	s := NewScene()
	s.Grid(GridConfig{})
	s.Curve(math.Sin, 0, Config{})
	m := s.Mark(0, 0, MarkConfig{ID: "p", Movable: true})
	s.Line(m, [2]float64{1, 1}, Config{})
	s.Cursor("")

	if s.Len() != 5 {
		t.Fatalf("Len = %d, want 5", s.Len())
	}
	if got, ok := s.MarkByID("p"); !ok || got != m {
		t.Error("MarkByID did not find the mark")
	}
	if _, ok := s.MarkByID("missing"); ok {
		t.Error("MarkByID found a missing mark")
	}

	els := s.Elements()
	els[0] = nil
	if s.Elements()[0] == nil {
		t.Error("Elements returned the internal slice")
	}

	e, rec := mount(t, s.Elements()...)
	if n := len(e.Keys()); n != 5 {
		t.Errorf("registered renders = %v", e.Keys())
	}
	if n := len(rec.Filter(surface.OpLineStrip)); n != 2 {
		t.Errorf("line strips = %d, want the curve and the line", n)
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a := NewCurve(math.Sin, 0, Config{})
	b := NewCurve(math.Sin, 0, Config{})
	if a.ID() == b.ID() {
		t.Errorf("two curves share id %q", a.ID())
	}
}
