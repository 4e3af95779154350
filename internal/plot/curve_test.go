package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/surface"
)

func TestCurveDrawsClipSpaceStrip(t *testing.T) {
	c := NewCurve(func(x float64) float64 { return x / 2 }, 50, Config{ID: "half"})
	_, rec := mount(t, c)

	strips := rec.Filter(surface.OpLineStrip)
	if len(strips) != 1 {
		t.Fatalf("line strips = %d, want 1", len(strips))
	}
	v := strips[0].Vertices
	if len(v) != len(c.Samples()) {
		t.Fatalf("clip buffer has %d values, samples have %d", len(v), len(c.Samples()))
	}
	if !near(v[0], -1) || !near(v[len(v)-2], 1) {
		t.Errorf("strip spans clip x [%v, %v], want [-1, 1]", v[0], v[len(v)-2])
	}
	for i := 1; i < len(v); i += 2 {
		if v[i] < -1 || v[i] > 1 {
			t.Fatalf("clip y %v outside [-1, 1]", v[i])
		}
	}
	if strips[0].Style.Color != DefaultColors[0] || strips[0].Style.Width != 1 {
		t.Errorf("style = %+v", strips[0].Style)
	}
	if c.ID() != "curve-half" {
		t.Errorf("ID = %q", c.ID())
	}
}

func TestCurveSamplesOnlyOnRangeChange(t *testing.T) {
	c := NewCurve(math.Sin, 0, Config{})
	e, _ := mount(t, c)
	if c.Runs() != 1 {
		t.Fatalf("Runs after mount = %d, want 1", c.Runs())
	}

	for i := 0; i < 5; i++ {
		e.PointerMove(float64(10*i), 10)
	}
	if c.Runs() != 1 {
		t.Errorf("pointer moves resampled: Runs = %d", c.Runs())
	}

	drag(e, 0, 0, 20, 0)
	if c.Runs() != 2 {
		t.Errorf("Runs after pan = %d, want 2", c.Runs())
	}
	e.Wheel(1)
	if c.Runs() != 3 {
		t.Errorf("Runs after zoom = %d, want 3", c.Runs())
	}
}

func TestCurveGapsBreakStrip(t *testing.T) {
	c := NewCurve(func(x float64) float64 { return 1 / x }, 100, Config{})
	_, rec := mount(t, c)

	v := rec.Filter(surface.OpLineStrip)[0].Vertices
	if runs := surface.Runs(v); len(runs) < 2 {
		t.Errorf("1/x drew %d runs, want the pole to split the strip", len(runs))
	}
}

func TestCurvePublishesSamples(t *testing.T) {
	c := NewCurve(math.Cos, 20, Config{ID: "cos"})
	var published []float64
	reader := engine.ElementFunc(func(ctx engine.Context) {
		ctx.RegisterRender("reader", ZCursor, func(f *engine.Frame) painter.DrawFunc {
			return func() {
				f.EachPoints(func(key string, pts []float64) {
					if key == c.ID() {
						published = pts
					}
				})
			}
		})
	})
	mount(t, c, reader)

	if len(published) == 0 || len(published) != len(c.Samples()) {
		t.Errorf("published %d values, samples %d", len(published), len(c.Samples()))
	}
}

func TestCurveHoverTooltip(t *testing.T) {
	c := NewCurve(func(float64) float64 { return 0 }, 0, Config{Hover: true})
	e, rec := mount(t, c)

	e.PointerMove(400, 302)
	texts := rec.Texts()
	if len(texts) != 1 || !strings.HasPrefix(texts[0], "(") {
		t.Fatalf("texts = %v, want one tooltip", texts)
	}
	// scale 1 shows two decimals
	if !strings.HasSuffix(texts[0], ", 0.00)") {
		t.Errorf("tooltip = %q", texts[0])
	}

	e.PointerMove(400, 100)
	if texts := rec.Texts(); len(texts) != 0 {
		t.Errorf("tooltip %v shown far from the curve", texts)
	}
}

func TestOneTooltipPerMove(t *testing.T) {
	zero := func(float64) float64 { return 0 }
	a := NewCurve(zero, 0, Config{ID: "a", Hover: true})
	b := NewCurve(zero, 0, Config{ID: "b", Hover: true})
	e, rec := mount(t, a, b)

	e.PointerMove(400, 300)
	if texts := rec.Texts(); len(texts) != 1 {
		t.Errorf("texts = %v, want exactly one tooltip", texts)
	}
}

func TestHoverHiddenAfterViewChange(t *testing.T) {
	c := NewCurve(func(float64) float64 { return 0 }, 0, Config{Hover: true})
	e, rec := mount(t, c)

	e.PointerMove(400, 300)
	if len(rec.Texts()) != 1 {
		t.Fatal("no tooltip on hover")
	}
	e.Wheel(1)
	if texts := rec.Texts(); len(texts) != 0 {
		t.Errorf("stale tooltip %v after zoom", texts)
	}
	drag(e, 400, 300, 450, 300)
	if texts := rec.Texts(); len(texts) != 0 {
		t.Errorf("tooltip %v shown after a drag", texts)
	}
}

func TestCurveSetFunc(t *testing.T) {
	c := NewCurve(func(float64) float64 { return 0 }, 10, Config{})
	e, _ := mount(t, c)
	renders := e.Stats().Renders

	c.SetFunc(func(float64) float64 { return 0.5 })

	if e.Stats().Renders != renders+1 {
		t.Error("SetFunc did not render")
	}
	if y := c.Samples()[1]; y != 0.5 {
		t.Errorf("first sample y = %v, want 0.5", y)
	}
}
