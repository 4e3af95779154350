package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/opd-ai/go-easyplot/internal/engine"
)

// Options sizes a snapshot.
type Options struct {
	// Width and Height are in host pixels.
	Width, Height int
	// Ratio is the device pixel ratio. Zero means 1.
	Ratio float64
}

// Render mounts elements on a fresh engine, renders once and returns the
// image. The image is Width*Ratio x Height*Ratio pixels.
func Render(elements []engine.Element, engineOpts engine.Options, opts Options) (*image.RGBA, error) {
	ratio := opts.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	w := int(float64(opts.Width) * ratio)
	h := int(float64(opts.Height) * ratio)

	img, err := New(w, h)
	if err != nil {
		return nil, err
	}

	e := engine.New(engineOpts)
	e.Add(elements...)
	if err := e.Mount(img, img, float64(w), float64(h), ratio); err != nil {
		return nil, err
	}
	defer e.Unmount()
	return img.RGBA(), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG writes img to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return EncodePNG(f, img)
}
