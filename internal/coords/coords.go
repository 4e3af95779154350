// Package coords converts between the four coordinate spaces used by the
// plotting engine.
//
//   - Grid units: the mathematical x/y a function is plotted in.
//   - Clip space: [-1, 1] x [-1, 1], (-1, -1) at the bottom left.
//   - Screen space: pixels of the draw surface, origin at the top left,
//     y increasing downward.
//   - Device space: screen space multiplied by the display density.
//
// All functions are pure. Callers must pass a non-degenerate Range; a zero
// width or height produces Inf/NaN instead of an error.
package coords

// Range is the rectangle of grid units currently visible.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns the horizontal extent of the range in grid units.
func (r Range) Width() float64 { return r.XMax - r.XMin }

// Height returns the vertical extent of the range in grid units.
func (r Range) Height() float64 { return r.YMax - r.YMin }

// Contains reports whether (x, y) lies inside the range, edges included.
func (r Range) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

// Size is the pixel size of a draw surface.
type Size struct {
	Width, Height float64
}

// GridToClip maps grid units into clip space.
func GridToClip(r Range, x, y float64) (cx, cy float64) {
	cx = 2*(x-r.XMin)/(r.XMax-r.XMin) - 1
	cy = 2*(y-r.YMin)/(r.YMax-r.YMin) - 1
	return cx, cy
}

// ClipToGrid is the inverse of GridToClip.
func ClipToGrid(r Range, cx, cy float64) (x, y float64) {
	x = (cx+1)/2*(r.XMax-r.XMin) + r.XMin
	y = (cy+1)/2*(r.YMax-r.YMin) + r.YMin
	return x, y
}

// ClipToScreen maps clip space to pixels. The y axis is flipped.
func ClipToScreen(s Size, cx, cy float64) (sx, sy float64) {
	sx = (cx + 1) / 2 * s.Width
	sy = (1 - cy) / 2 * s.Height
	return sx, sy
}

// ScreenToClip is the inverse of ClipToScreen.
func ScreenToClip(s Size, sx, sy float64) (cx, cy float64) {
	cx = sx/s.Width*2 - 1
	cy = 1 - sy/s.Height*2
	return cx, cy
}

// GridToScreen composes GridToClip and ClipToScreen.
func GridToScreen(r Range, s Size, x, y float64) (sx, sy float64) {
	cx, cy := GridToClip(r, x, y)
	return ClipToScreen(s, cx, cy)
}

// ScreenToGrid composes ScreenToClip and ClipToGrid.
func ScreenToGrid(r Range, s Size, sx, sy float64) (x, y float64) {
	cx, cy := ScreenToClip(s, sx, sy)
	return ClipToGrid(r, cx, cy)
}

// ScreenToDevice scales screen pixels by the device pixel ratio.
func ScreenToDevice(ratio, sx, sy float64) (dx, dy float64) {
	return sx * ratio, sy * ratio
}

// DeviceToScreen is the inverse of ScreenToDevice.
func DeviceToScreen(ratio, dx, dy float64) (sx, sy float64) {
	return dx / ratio, dy / ratio
}

// DistanceSquared returns the squared Euclidean distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
