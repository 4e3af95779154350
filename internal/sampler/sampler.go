// Package sampler discretizes a continuous function over the visible range.
//
// Sampling starts at the left edge with a default step of width/steps. After
// every evaluation the local slope |Δy|/step is clamped to
// [MinGradient, MaxGradient] and the next step becomes default/slope, so steep
// regions are refined and flat regions never get coarser than the default.
// A y outside the visible vertical range is emitted as NaN, which renderers
// treat as a break in the line strip.
package sampler

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/coords"
)

// Func is the function being plotted.
type Func func(x float64) float64

// Sampling limits.
const (
	DefaultSteps = 200
	MinGradient  = 1.0
	MaxGradient  = 1000.0
)

// Sample evaluates f across r and returns a flat x0 y0 x1 y1 ... buffer with
// strictly increasing x. The last pair is always at r.XMax. A range with no
// positive width yields nil. Non-positive steps use DefaultSteps.
func Sample(f Func, r coords.Range, steps int) []float64 {
	width := r.Width()
	if f == nil || !(width > 0) || math.IsInf(width, 0) {
		return nil
	}
	if steps <= 0 {
		steps = DefaultSteps
	}

	defaultStep := width / float64(steps)
	points := make([]float64, 0, 2*(steps+2))

	x := r.XMin
	step := defaultStep
	prev := math.NaN()
	last := math.Inf(-1)

	for x <= r.XMax {
		y := f(x)
		points = append(points, x, visible(y, r))
		last = x

		g := gradient(prev, y, step)
		step = defaultStep / g
		prev = y

		next := x + step
		if next <= x {
			// step is below the float spacing at x
			next = math.Nextafter(x, math.Inf(1))
		}
		x = next
	}

	if last < r.XMax {
		y := f(r.XMax)
		points = append(points, r.XMax, visible(y, r))
	}
	return points
}

func visible(y float64, r coords.Range) float64 {
	if math.IsNaN(y) || y < r.YMin || y > r.YMax {
		return math.NaN()
	}
	return y
}

// gradient returns the clamped slope between two consecutive evaluations. An
// undefined slope (the first sample or a NaN neighbor) counts as flat and an
// infinite one as maximally steep.
func gradient(prev, y, step float64) float64 {
	g := math.Abs(prev-y) / step
	switch {
	case math.IsNaN(g):
		return MinGradient
	case g < MinGradient:
		return MinGradient
	case g > MaxGradient:
		return MaxGradient
	}
	return g
}

// Cache memoizes Sample for one function, keyed by the exact visible range.
type Cache struct {
	fn    Func
	steps int

	key    coords.Range
	valid  bool
	points []float64
	runs   int
}

// NewCache returns a Cache for fn. Non-positive steps use DefaultSteps.
func NewCache(fn Func, steps int) *Cache {
	if steps <= 0 {
		steps = DefaultSteps
	}
	return &Cache{fn: fn, steps: steps}
}

// Points returns the sample buffer for r, recomputing it only when r differs
// from the range of the previous call. The returned slice must not be
// modified.
func (c *Cache) Points(r coords.Range) []float64 {
	if c.valid && c.key == r {
		return c.points
	}
	c.points = Sample(c.fn, r, c.steps)
	c.key = r
	c.valid = true
	c.runs++
	return c.points
}

// Cached returns the last computed buffer without sampling.
func (c *Cache) Cached() []float64 {
	return c.points
}

// Runs returns how many times the function has been sampled.
func (c *Cache) Runs() int {
	return c.runs
}

// Steps returns the nominal resolution.
func (c *Cache) Steps() int {
	return c.steps
}

// Invalidate forces the next Points call to sample again.
func (c *Cache) Invalidate() {
	c.valid = false
}

// SetFunc replaces the function and invalidates the cache.
func (c *Cache) SetFunc(fn Func) {
	c.fn = fn
	c.valid = false
}
