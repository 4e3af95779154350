// Package points queries flat x0 y0 x1 y1 ... buffers whose x values are
// non-decreasing, as produced by the sampler.
package points

import (
	"math"

	"github.com/opd-ai/go-easyplot/internal/coords"
)

// BinSearchX returns the array index of the x component of the pair whose x
// is closest to x. The y component is at index+1. The buffer must be
// non-empty and x-sorted; a query left of the first pair returns 0 and a
// query right of the last pair returns the last pair.
func BinSearchX(points []float64, x float64) int {
	top := len(points)/2 - 1
	bot := 0

	for bot <= top {
		mid := (top + bot) / 2
		elem := points[mid*2]
		switch {
		case elem < x:
			bot = mid + 1
		case elem > x:
			top = mid - 1
		default:
			return mid * 2
		}
	}

	// top now points at the pair left of x, or -1 when x precedes every pair
	if top < 0 {
		return 0
	}
	idx := top * 2
	if idx == len(points)-2 {
		return idx
	}
	if x-points[idx] < points[idx+2]-x {
		return idx
	}
	return idx + 2
}

// Nearest is BinSearchX with a guard for empty or malformed buffers and
// NaN queries.
func Nearest(points []float64, x float64) (int, bool) {
	if len(points) < 2 || math.IsNaN(x) {
		return 0, false
	}
	return BinSearchX(points[:len(points)&^1], x), true
}

// Match is a point found by a hover query.
type Match struct {
	Index int
	X, Y  float64
	// DistSq is the squared grid-unit distance to the query point.
	DistSq float64
}

// NearestInWindow scans the pairs with x in [gx-radius, gx+radius] and
// returns the one closest to (gx, gy) whose squared distance is below
// radius². NaN pairs are skipped.
func NearestInWindow(points []float64, gx, gy, radius float64) (Match, bool) {
	start, ok := Nearest(points, gx-radius)
	if !ok || !(radius > 0) {
		return Match{}, false
	}
	limit := radius * radius
	best := Match{DistSq: math.Inf(1)}
	found := false
	end := len(points) &^ 1
	for i := start; i < end && points[i] <= gx+radius; i += 2 {
		x, y := points[i], points[i+1]
		if math.IsNaN(y) || x < gx-radius {
			continue
		}
		d := coords.DistanceSquared(x, y, gx, gy)
		if d < limit && d < best.DistSq {
			best = Match{Index: i, X: x, Y: y, DistSq: d}
			found = true
		}
	}
	return best, found
}

// NearestLinear is NearestInWindow for buffers that are not x-sorted, such
// as polylines. It scans every pair.
func NearestLinear(points []float64, gx, gy, radius float64) (Match, bool) {
	if !(radius > 0) {
		return Match{}, false
	}
	limit := radius * radius
	best := Match{DistSq: math.Inf(1)}
	found := false
	for i := 0; i+1 < len(points); i += 2 {
		x, y := points[i], points[i+1]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		d := coords.DistanceSquared(x, y, gx, gy)
		if d < limit && d < best.DistSq {
			best = Match{Index: i, X: x, Y: y, DistSq: d}
			found = true
		}
	}
	return best, found
}

// At returns the pair at index, or false when index is out of bounds.
func At(points []float64, index int) (x, y float64, ok bool) {
	if index < 0 || index+1 >= len(points) || index%2 != 0 {
		return 0, 0, false
	}
	return points[index], points[index+1], true
}
