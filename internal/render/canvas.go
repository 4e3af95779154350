package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-easyplot/internal/surface"
)

// emptySubImage is a 1x1 white image used for filling shapes.
var emptySubImage = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// Canvas backs both plot surfaces with one offscreen image. Raster calls
// receive clip space and are projected onto the image; vector calls are
// already in device pixels.
type Canvas struct {
	image     *ebiten.Image
	text      *TextRenderer
	antiAlias bool
}

var (
	_ surface.Raster = (*Canvas)(nil)
	_ surface.Vector = (*Canvas)(nil)
)

// NewCanvas creates a width x height device-pixel canvas.
func NewCanvas(width, height int, tr *TextRenderer, antiAlias bool) *Canvas {
	if tr == nil {
		tr = NewTextRenderer()
	}
	return &Canvas{
		image:     ebiten.NewImage(width, height),
		text:      tr,
		antiAlias: antiAlias,
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image { return c.image }

// Size returns the canvas size in device pixels.
func (c *Canvas) Size() (width, height int) {
	b := c.image.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image. Its content is lost.
func (c *Canvas) Resize(width, height int) {
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.image.Deallocate()
	c.image = ebiten.NewImage(width, height)
}

// clipToDevice maps clip space (-1..1, y up) to device pixels (y down).
func clipToDevice(width, height, x, y float64) (float32, float32) {
	return float32((x + 1) / 2 * width), float32((1 - y) / 2 * height)
}

func (c *Canvas) project(x, y float64) (float32, float32) {
	w, h := c.Size()
	return clipToDevice(float64(w), float64(h), x, y)
}

// Clear implements surface.Raster.
func (c *Canvas) Clear(bg color.RGBA) {
	c.image.Fill(straight(bg))
}

// DrawLineStrip implements surface.Raster.
func (c *Canvas) DrawLineStrip(vertices []float64, style surface.Style) {
	for _, run := range surface.Runs(vertices) {
		if style.Dashed {
			c.dashRun(run, style)
			continue
		}
		var path vector.Path
		x, y := c.project(run[0], run[1])
		path.MoveTo(x, y)
		for i := 2; i+1 < len(run); i += 2 {
			x, y = c.project(run[i], run[i+1])
			path.LineTo(x, y)
		}
		c.stroke(&path, style)
	}
}

// DrawLines implements surface.Raster.
func (c *Canvas) DrawLines(vertices []float64, style surface.Style) {
	for i := 0; i+3 < len(vertices); i += 4 {
		run := vertices[i : i+4]
		if style.Dashed {
			c.dashRun(run, style)
			continue
		}
		x0, y0 := c.project(run[0], run[1])
		x1, y1 := c.project(run[2], run[3])
		vector.StrokeLine(c.image, x0, y0, x1, y1, float32(style.StrokeWidth()), straight(style.Color), c.antiAlias)
	}
}

// dashRun strokes a run as dashes. The dash phase carries across joints.
func (c *Canvas) dashRun(run []float64, style surface.Style) {
	phase := 0.0
	width := float32(style.StrokeWidth())
	x0, y0 := c.project(run[0], run[1])
	for i := 2; i+1 < len(run); i += 2 {
		x1, y1 := c.project(run[i], run[i+1])
		d := surface.Dashes(float64(x0), float64(y0), float64(x1), float64(y1), &phase)
		for j := 0; j+3 < len(d); j += 4 {
			vector.StrokeLine(c.image, float32(d[j]), float32(d[j+1]), float32(d[j+2]), float32(d[j+3]), width, straight(style.Color), c.antiAlias)
		}
		x0, y0 = x1, y1
	}
}

func (c *Canvas) stroke(path *vector.Path, style surface.Style) {
	opts := &vector.StrokeOptions{
		Width:    float32(style.StrokeWidth()),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	setVertexColors(vertices, style.Color)
	c.image.DrawTriangles(vertices, indices, emptySubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: c.antiAlias,
	})
}

// straight reinterprets a plot color, which carries straight alpha, for
// APIs taking a color.Color.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA(c)
}

// setVertexColors sets clr on all vertices, premultiplied.
func setVertexColors(vertices []ebiten.Vertex, clr color.RGBA) {
	a := float32(clr.A) / 255
	r := float32(clr.R) / 255 * a
	g := float32(clr.G) / 255 * a
	b := float32(clr.B) / 255 * a
	for i := range vertices {
		vertices[i].ColorR = r
		vertices[i].ColorG = g
		vertices[i].ColorB = b
		vertices[i].ColorA = a
	}
}

// FillRect implements surface.Vector.
func (c *Canvas) FillRect(x, y, w, h float64, clr color.RGBA) {
	vector.DrawFilledRect(c.image, float32(x), float32(y), float32(w), float32(h), straight(clr), c.antiAlias)
}

// FillCircle implements surface.Vector.
func (c *Canvas) FillCircle(cx, cy, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(c.image, float32(cx), float32(cy), float32(r), straight(clr), c.antiAlias)
}

// StrokeCircle implements surface.Vector.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, clr color.RGBA) {
	vector.StrokeCircle(c.image, float32(cx), float32(cy), float32(r), float32(width), straight(clr), c.antiAlias)
}

// DrawText implements surface.Vector.
func (c *Canvas) DrawText(s string, x, y, size float64, clr color.RGBA) {
	c.text.Draw(c.image, s, x, y, size, clr)
}

// MeasureText implements surface.Vector.
func (c *Canvas) MeasureText(s string, size float64) (w, h float64) {
	return c.text.Measure(s, size)
}
