// Package snapshot renders plots into memory images without a window.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/opd-ai/go-easyplot/internal/surface"
)

// circleSegments is the polygon resolution of circles.
const circleSegments = 48

// ErrInvalidSize is returned for images without area.
var ErrInvalidSize = errors.New("invalid image size")

var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

func parseFont() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// Image is a software surface. It implements both surface.Raster and
// surface.Vector on one RGBA image; everything is antialiased.
type Image struct {
	rgba  *image.RGBA
	z     *vector.Rasterizer
	font  *opentype.Font
	faces map[float64]font.Face
}

var (
	_ surface.Raster = (*Image)(nil)
	_ surface.Vector = (*Image)(nil)
)

// New returns a width x height transparent image.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot size %dx%d: %w", width, height, ErrInvalidSize)
	}
	f, err := parseFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Image{
		rgba:  image.NewRGBA(image.Rect(0, 0, width, height)),
		z:     vector.NewRasterizer(width, height),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// RGBA returns the backing image.
func (im *Image) RGBA() *image.RGBA { return im.rgba }

// Size returns the image size in pixels.
func (im *Image) Size() (width, height int) {
	b := im.rgba.Bounds()
	return b.Dx(), b.Dy()
}

func (im *Image) face(size float64) font.Face {
	if f, ok := im.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(im.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// NewFace only fails for invalid options; text is skipped then
		f = nil
	}
	im.faces[size] = f
	return f
}

// project maps clip space (-1..1, y up) to pixels (y down).
func (im *Image) project(x, y float64) (float32, float32) {
	w, h := im.Size()
	return float32((x + 1) / 2 * float64(w)), float32((1 - y) / 2 * float64(h))
}

// fill rasterizes the path built by the caller into the image.
func (im *Image) fill(c color.RGBA) {
	im.z.DrawOp = draw.Over
	im.z.Draw(im.rgba, im.rgba.Bounds(), image.NewUniform(color.NRGBA(c)), image.Point{})
}

func (im *Image) reset() {
	w, h := im.Size()
	im.z.Reset(w, h)
}

// quad adds the rectangle covering the pixel segment (x0, y0)-(x1, y1) at
// width w. All quads wind the same way so overlaps do not cancel.
func (im *Image) quad(x0, y0, x1, y1, w float32) {
	iw, ih := im.Size()
	pad := float64(w) + 1
	cx0, cy0, cx1, cy1, ok := clipSegment(float64(x0), float64(y0), float64(x1), float64(y1),
		-pad, -pad, float64(iw)+pad, float64(ih)+pad)
	if !ok {
		return
	}
	x0, y0, x1, y1 = float32(cx0), float32(cy0), float32(cx1), float32(cy1)

	dx, dy := x1-x0, y1-y0
	hyp := math.Hypot(float64(dx), float64(dy))
	if hyp == 0 || math.IsNaN(hyp) || math.IsInf(hyp, 0) {
		return
	}
	l := float32(hyp)
	nx, ny := -dy/l*w/2, dx/l*w/2
	im.z.MoveTo(x0+nx, y0+ny)
	im.z.LineTo(x1+nx, y1+ny)
	im.z.LineTo(x1-nx, y1-ny)
	im.z.LineTo(x0-nx, y0-ny)
	im.z.ClosePath()
}

// clipSegment clips a segment to the rectangle [minX, maxX] x [minY, maxY]
// (Liang-Barsky). ok is false when nothing is left.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	for _, e := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// circle adds a circle polygon. reverse flips its winding.
func (im *Image) circle(cx, cy, r float32, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			a = -a
		}
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			im.z.MoveTo(x, y)
		} else {
			im.z.LineTo(x, y)
		}
	}
	im.z.ClosePath()
}

// Clear implements surface.Raster.
func (im *Image) Clear(bg color.RGBA) {
	draw.Draw(im.rgba, im.rgba.Bounds(), image.NewUniform(color.NRGBA(bg)), image.Point{}, draw.Src)
}

// DrawLineStrip implements surface.Raster.
func (im *Image) DrawLineStrip(vertices []float64, style surface.Style) {
	w := float32(style.StrokeWidth())
	im.reset()
	for _, run := range surface.Runs(vertices) {
		phase := 0.0
		x0, y0 := im.project(run[0], run[1])
		for i := 2; i+1 < len(run); i += 2 {
			x1, y1 := im.project(run[i], run[i+1])
			im.segment(x0, y0, x1, y1, w, style.Dashed, &phase)
			x0, y0 = x1, y1
		}
	}
	im.fill(style.Color)
}

// DrawLines implements surface.Raster.
func (im *Image) DrawLines(vertices []float64, style surface.Style) {
	w := float32(style.StrokeWidth())
	im.reset()
	for i := 0; i+3 < len(vertices); i += 4 {
		if math.IsNaN(vertices[i] + vertices[i+1] + vertices[i+2] + vertices[i+3]) {
			continue
		}
		phase := 0.0
		x0, y0 := im.project(vertices[i], vertices[i+1])
		x1, y1 := im.project(vertices[i+2], vertices[i+3])
		im.segment(x0, y0, x1, y1, w, style.Dashed, &phase)
	}
	im.fill(style.Color)
}

func (im *Image) segment(x0, y0, x1, y1, w float32, dashed bool, phase *float64) {
	if !dashed {
		im.quad(x0, y0, x1, y1, w)
		return
	}
	d := surface.Dashes(float64(x0), float64(y0), float64(x1), float64(y1), phase)
	for j := 0; j+3 < len(d); j += 4 {
		im.quad(float32(d[j]), float32(d[j+1]), float32(d[j+2]), float32(d[j+3]), w)
	}
}

// FillRect implements surface.Vector.
func (im *Image) FillRect(x, y, w, h float64, c color.RGBA) {
	if !(w > 0) || !(h > 0) {
		return
	}
	im.reset()
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	im.z.MoveTo(x0, y0)
	im.z.LineTo(x1, y0)
	im.z.LineTo(x1, y1)
	im.z.LineTo(x0, y1)
	im.z.ClosePath()
	im.fill(c)
}

// FillCircle implements surface.Vector.
func (im *Image) FillCircle(cx, cy, r float64, c color.RGBA) {
	if !(r > 0) {
		return
	}
	im.reset()
	im.circle(float32(cx), float32(cy), float32(r), false)
	im.fill(c)
}

// StrokeCircle implements surface.Vector. The ring is centered on r.
func (im *Image) StrokeCircle(cx, cy, r, width float64, c color.RGBA) {
	if !(r > 0) || !(width > 0) {
		return
	}
	im.reset()
	im.circle(float32(cx), float32(cy), float32(r+width/2), false)
	if inner := r - width/2; inner > 0 {
		im.circle(float32(cx), float32(cy), float32(inner), true)
	}
	im.fill(c)
}

// DrawText implements surface.Vector.
func (im *Image) DrawText(s string, x, y, size float64, c color.RGBA) {
	face := im.face(size)
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  im.rgba,
		Src:  image.NewUniform(color.NRGBA(c)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y*64) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// MeasureText implements surface.Vector.
func (im *Image) MeasureText(s string, size float64) (w, h float64) {
	face := im.face(size)
	if face == nil {
		return 0, 0
	}
	m := face.Metrics()
	return float64(font.MeasureString(face, s)) / 64, float64(m.Ascent+m.Descent) / 64
}
