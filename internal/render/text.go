package render

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// lineSpacing is the line height relative to the font size.
const lineSpacing = 1.2

// TextRenderer draws labels and tooltips with the Go Regular face. Faces
// are cached per size.
type TextRenderer struct {
	fontSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace
	mu         sync.Mutex
}

// NewTextRenderer creates a TextRenderer with the embedded Go Regular font.
func NewTextRenderer() *TextRenderer {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		// This should never fail with the embedded font
		panic("failed to load embedded font: " + err.Error())
	}
	return &TextRenderer{
		fontSource: fontSource,
		faces:      make(map[float64]*text.GoTextFace),
	}
}

func (tr *TextRenderer) face(size float64) *text.GoTextFace {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	f, ok := tr.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: tr.fontSource, Size: size}
		tr.faces[size] = f
	}
	return f
}

// Draw renders s with its top left corner at (x, y).
func (tr *TextRenderer) Draw(dst *ebiten.Image, s string, x, y, size float64, clr color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.NRGBA(clr))
	op.LineSpacing = size * lineSpacing
	text.Draw(dst, s, tr.face(size), op)
}

// Measure returns the width and height of s at size.
func (tr *TextRenderer) Measure(s string, size float64) (width, height float64) {
	return text.Measure(s, tr.face(size), size*lineSpacing)
}
