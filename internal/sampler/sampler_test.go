package sampler

import (
	"math"
	"testing"

	"github.com/opd-ai/go-easyplot/internal/coords"
)

var unit = coords.Range{XMin: -1, XMax: 1, YMin: -1, YMax: 1}

func checkMonotonic(t *testing.T, points []float64) {
	t.Helper()
	if len(points)%2 != 0 {
		t.Fatalf("odd buffer length %d", len(points))
	}
	for i := 2; i < len(points); i += 2 {
		if !(points[i] > points[i-2]) {
			t.Fatalf("x not strictly increasing at pair %d: %v then %v", i/2, points[i-2], points[i])
		}
	}
}

func TestSampleCoversRange(t *testing.T) {
	tests := []struct {
		name string
		fn   Func
	}{
		{"constant", func(float64) float64 { return 0.5 }},
		{"linear", func(x float64) float64 { return x }},
		{"sine", math.Sin},
		{"tangent", math.Tan},
		{"reciprocal", func(x float64) float64 { return 1 / x }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Sample(tt.fn, unit, 50)
			checkMonotonic(t, points)
			if points[0] != unit.XMin {
				t.Errorf("first x = %v, want %v", points[0], unit.XMin)
			}
			if last := points[len(points)-2]; last != unit.XMax {
				t.Errorf("last x = %v, want %v", last, unit.XMax)
			}
		})
	}
}

func TestFlatFunctionUsesDefaultStep(t *testing.T) {
	steps := 100
	points := Sample(func(float64) float64 { return 0 }, unit, steps)
	pairs := len(points) / 2
	if pairs < steps+1 || pairs > steps+2 {
		t.Errorf("flat function produced %d pairs, want %d or %d", pairs, steps+1, steps+2)
	}
}

func TestStepBelowFloatSpacing(t *testing.T) {
	// floats near 1e15 are 0.125 apart, far coarser than the 0.01 step
	r := coords.Range{XMin: 1e15, XMax: 1e15 + 1, YMin: -1, YMax: 1}
	points := Sample(func(float64) float64 { return 0 }, r, 100)

	checkMonotonic(t, points)
	if pairs := len(points) / 2; pairs != 9 {
		t.Errorf("pairs = %d, want 9", pairs)
	}
	if last := points[len(points)-2]; last != r.XMax {
		t.Errorf("last x = %v, want %v", last, r.XMax)
	}
}

func TestSteepRegionsAreRefined(t *testing.T) {
	steps := 100
	r := coords.Range{XMin: -1, XMax: 1, YMin: -10, YMax: 10}
	flat := len(Sample(func(float64) float64 { return 0 }, r, steps)) / 2
	steep := len(Sample(func(x float64) float64 { return 5 * x }, r, steps)) / 2

	// slope 5 shrinks every step after the first by a factor of five
	if steep < 4*flat || steep > 6*flat {
		t.Errorf("slope-5 function produced %d pairs, flat produced %d", steep, flat)
	}
}

func TestGradientIsClamped(t *testing.T) {
	steps := 10
	r := coords.Range{XMin: 0, XMax: 1, YMin: -1e12, YMax: 1e12}
	points := Sample(func(x float64) float64 { return 1e9 * x }, r, steps)
	pairs := len(points) / 2
	if max := steps*int(MaxGradient) + 2; pairs > max {
		t.Errorf("got %d pairs, want at most %d", pairs, max)
	}
	// the first step is taken at the default size, the rest at 1/MaxGradient of it
	if pairs < (steps-1)*int(MaxGradient) {
		t.Errorf("got %d pairs, expected the clamped gradient to refine to about %d", pairs, (steps-1)*int(MaxGradient))
	}
}

func TestOutOfRangeBecomesGap(t *testing.T) {
	step := func(x float64) float64 {
		if x > 0 {
			return 5
		}
		return 0
	}
	points := Sample(step, unit, 20)
	for i := 0; i < len(points); i += 2 {
		x, y := points[i], points[i+1]
		if x > 0 && !math.IsNaN(y) {
			t.Errorf("y at x=%v is %v, want NaN gap", x, y)
		}
		if x <= 0 && y != 0 {
			t.Errorf("y at x=%v is %v, want 0", x, y)
		}
	}
}

func TestNaNFunction(t *testing.T) {
	points := Sample(func(float64) float64 { return math.NaN() }, unit, 10)
	checkMonotonic(t, points)
	for i := 1; i < len(points); i += 2 {
		if !math.IsNaN(points[i]) {
			t.Fatalf("y[%d] = %v, want NaN", i/2, points[i])
		}
	}
}

func TestDegenerateRange(t *testing.T) {
	ranges := []coords.Range{
		{XMin: 1, XMax: 1, YMin: -1, YMax: 1},
		{XMin: 2, XMax: 1, YMin: -1, YMax: 1},
		{XMin: math.NaN(), XMax: 1, YMin: -1, YMax: 1},
		{XMin: math.Inf(-1), XMax: 1, YMin: -1, YMax: 1},
	}
	for _, r := range ranges {
		if got := Sample(math.Sin, r, 10); got != nil {
			t.Errorf("Sample over %+v returned %d values, want nil", r, len(got))
		}
	}
	if got := Sample(nil, unit, 10); got != nil {
		t.Errorf("Sample(nil) returned %d values, want nil", len(got))
	}
}

func TestCacheMemoizesByRange(t *testing.T) {
	evals := 0
	c := NewCache(func(x float64) float64 {
		evals++
		return x * x
	}, 20)

	first := c.Points(unit)
	afterFirst := evals
	second := c.Points(unit)

	if evals != afterFirst {
		t.Errorf("function evaluated %d more times for an unchanged range", evals-afterFirst)
	}
	if &first[0] != &second[0] {
		t.Error("cached buffer was not reused")
	}
	if c.Runs() != 1 {
		t.Errorf("Runs = %d, want 1", c.Runs())
	}

	moved := unit
	moved.XMin -= 0.5
	c.Points(moved)
	if c.Runs() != 2 {
		t.Errorf("Runs = %d after range change, want 2", c.Runs())
	}

	// the y bounds are part of the key
	taller := moved
	taller.YMax = 4
	c.Points(taller)
	if c.Runs() != 3 {
		t.Errorf("Runs = %d after y range change, want 3", c.Runs())
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(math.Sin, 0)
	if c.Steps() != DefaultSteps {
		t.Errorf("Steps = %d, want %d", c.Steps(), DefaultSteps)
	}
	c.Points(unit)
	c.Invalidate()
	c.Points(unit)
	if c.Runs() != 2 {
		t.Errorf("Runs = %d after Invalidate, want 2", c.Runs())
	}

	c.SetFunc(math.Cos)
	pts := c.Points(unit)
	if c.Runs() != 3 {
		t.Errorf("Runs = %d after SetFunc, want 3", c.Runs())
	}
	if pts[1] != math.Cos(unit.XMin) {
		t.Errorf("first y = %v, want cos(%v)", pts[1], unit.XMin)
	}
	if len(c.Cached()) != len(pts) {
		t.Error("Cached does not return the last buffer")
	}
}

func TestGradient(t *testing.T) {
	tests := []struct {
		prev, y, step, want float64
	}{
		{math.NaN(), 1, 0.1, MinGradient},
		{0, 0, 0.1, MinGradient},
		{0, 0.5, 0.1, 5},
		{0, 1e6, 0.1, MaxGradient},
		{math.Inf(1), 0, 0.1, MaxGradient},
		{math.Inf(1), math.Inf(1), 0.1, MinGradient},
	}
	for _, tt := range tests {
		if got := gradient(tt.prev, tt.y, tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("gradient(%v, %v, %v) = %v, want %v", tt.prev, tt.y, tt.step, got, tt.want)
		}
	}
}
