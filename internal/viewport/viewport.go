// Package viewport holds the mutable pan/zoom model of a mounted plot.
//
// A State is created once per mounted surface and shared by reference with
// every renderer and event handler. The visible range is derived from the
// translation, the scale and the surface size; every method that changes one
// of those recomputes the range before returning, so a reader never observes
// a stale range.
package viewport

import (
	"github.com/opd-ai/go-easyplot/internal/coords"
)

// Scale limits and the default per-notch zoom factor.
const (
	MinScale          = 0.01
	MaxScale          = 100.0
	DefaultScale      = 0.4
	DefaultZoomFactor = 1.03
)

// Pointer is the last known pointer position in every coordinate space.
type Pointer struct {
	// ClipX and ClipY run from (-1, -1) at the bottom left to (1, 1) at the
	// top right of the surface.
	ClipX, ClipY float64
	// GridX and GridY are in grid units.
	GridX, GridY float64
	// ScreenX and ScreenY are host pixels relative to the surface origin.
	ScreenX, ScreenY float64
	// DeviceX and DeviceY are ScreenX and ScreenY times the pixel ratio.
	DeviceX, DeviceY float64
}

// State is the viewport model. Fields are exported for renderers to read;
// they must be mutated only through the methods below or by the engine.
type State struct {
	// Translation is the origin offset in device pixels at scale 1.
	Translation [2]float64
	// Scale sets the zoom: one grid unit spans Height/2*Scale device pixels,
	// so a larger scale shows a smaller range.
	Scale float64
	// DevicePixelRatio is the display density of the host.
	DevicePixelRatio float64
	// ZoomFactor is applied once per wheel notch.
	ZoomFactor float64

	// Width and Height are the surface size in device pixels.
	Width, Height float64

	Pointer Pointer
	Range   coords.Range

	// Dragging is true between pointer-down and pointer-up.
	Dragging bool
	// LastPointer is the previous pointer position in host pixels.
	LastPointer [2]float64

	// MoveSeq increases once per dispatched pointer-move or drag. Primitives
	// stamp their hover results with it to tell current results from stale
	// ones.
	MoveSeq uint64
}

// New creates a State for a surface of width x height device pixels.
func New(width, height, ratio float64) *State {
	if ratio <= 0 {
		ratio = 1
	}
	s := &State{
		Scale:            DefaultScale,
		DevicePixelRatio: ratio,
		ZoomFactor:       DefaultZoomFactor,
		Width:            width,
		Height:           height,
	}
	s.UpdateRange()
	return s
}

// Size returns the surface size for coordinate conversions.
func (s *State) Size() coords.Size {
	return coords.Size{Width: s.Width, Height: s.Height}
}

// PixelsPerUnit returns how many device pixels one grid unit spans.
func (s *State) PixelsPerUnit() float64 {
	return s.Height / 2 * s.Scale
}

// UpdateRange recomputes the visible range from translation, scale and size.
func (s *State) UpdateRange() {
	halfW := s.Width / 2
	halfH := s.Height / 2
	ppu := halfH * s.Scale
	tx := s.Translation[0] / halfH
	ty := s.Translation[1] / halfH

	s.Range = coords.Range{
		XMin: -halfW/ppu - tx,
		XMax: halfW/ppu - tx,
		YMin: -halfH/ppu - ty,
		YMax: halfH/ppu - ty,
	}
}

// Resize changes the surface size and recomputes the range.
func (s *State) Resize(width, height float64) {
	s.Width = width
	s.Height = height
	s.UpdateRange()
	s.updatePointerSpaces()
}

// SetPointer records a pointer position in host pixels and derives the
// other spaces from the current range.
func (s *State) SetPointer(screenX, screenY float64) {
	s.LastPointer = [2]float64{screenX, screenY}
	s.Pointer.ScreenX = screenX
	s.Pointer.ScreenY = screenY
	s.updatePointerSpaces()
}

// PointerDelta returns the device-pixel movement from the last recorded
// pointer position to (screenX, screenY).
func (s *State) PointerDelta(screenX, screenY float64) (dx, dy float64) {
	dx = (screenX - s.LastPointer[0]) * s.DevicePixelRatio
	dy = (screenY - s.LastPointer[1]) * s.DevicePixelRatio
	return dx, dy
}

func (s *State) updatePointerSpaces() {
	p := &s.Pointer
	p.DeviceX, p.DeviceY = coords.ScreenToDevice(s.DevicePixelRatio, p.ScreenX, p.ScreenY)
	p.ClipX, p.ClipY = coords.ScreenToClip(s.Size(), p.DeviceX, p.DeviceY)
	p.GridX, p.GridY = coords.ClipToGrid(s.Range, p.ClipX, p.ClipY)
}

// Pan shifts the view by a device-pixel delta. The delta is divided by the
// scale so content tracks the pointer at every zoom level.
func (s *State) Pan(dx, dy float64) {
	s.Translation[0] += dx / s.Scale
	s.Translation[1] -= dy / s.Scale
	s.UpdateRange()
	s.updatePointerSpaces()
}

// Zoom applies one wheel step. A positive delta zooms in, a negative delta
// zooms out, zero does nothing. The scale stays within [MinScale, MaxScale].
func (s *State) Zoom(delta float64) {
	factor := s.ZoomFactor
	if factor <= 1 {
		factor = DefaultZoomFactor
	}
	switch {
	case delta > 0:
		s.Scale *= factor
	case delta < 0:
		s.Scale /= factor
	default:
		return
	}
	s.Scale = ClampScale(s.Scale)
	s.UpdateRange()
	s.updatePointerSpaces()
}

// SetScale sets the scale directly, clamped to the valid interval.
func (s *State) SetScale(scale float64) {
	s.Scale = ClampScale(scale)
	s.UpdateRange()
	s.updatePointerSpaces()
}

// SetCenter pans so grid point (x, y) is at the middle of the surface.
func (s *State) SetCenter(x, y float64) {
	halfH := s.Height / 2
	s.Translation = [2]float64{-x * halfH, -y * halfH}
	s.UpdateRange()
	s.updatePointerSpaces()
}

// Center returns the grid point at the middle of the surface.
func (s *State) Center() (x, y float64) {
	return (s.Range.XMin + s.Range.XMax) / 2, (s.Range.YMin + s.Range.YMax) / 2
}

// ClampScale limits scale to [MinScale, MaxScale].
func ClampScale(scale float64) float64 {
	if scale != scale || scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}

// GridToScreen converts grid units to device pixels of the surface.
func (s *State) GridToScreen(x, y float64) (float64, float64) {
	return coords.GridToScreen(s.Range, s.Size(), x, y)
}

// ScreenToGrid converts device pixels of the surface to grid units.
func (s *State) ScreenToGrid(x, y float64) (float64, float64) {
	return coords.ScreenToGrid(s.Range, s.Size(), x, y)
}

// GridToClip converts grid units to clip space.
func (s *State) GridToClip(x, y float64) (float64, float64) {
	return coords.GridToClip(s.Range, x, y)
}
