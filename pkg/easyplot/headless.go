package easyplot

import (
	"context"
	"image"
	"sync"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/scene"
	"github.com/opd-ai/go-easyplot/internal/snapshot"
)

// headlessHost keeps the engine mounted on a software image. The engine is
// only touched with mu held.
type headlessHost struct {
	mu     sync.Mutex
	engine *engine.Engine
	image  *snapshot.Image
}

func newHeadlessHost(e *engine.Engine, sc *scene.Scene) (*headlessHost, error) {
	w, h := sc.Config.Window.Width, sc.Config.Window.Height
	img, err := snapshot.New(w, h)
	if err != nil {
		return nil, err
	}
	e.Add(sc.Elements()...)
	if err := e.Mount(img, img, float64(w), float64(h), 1); err != nil {
		return nil, err
	}
	return &headlessHost{engine: e, image: img}, nil
}

func (h *headlessHost) run(ctx context.Context) error {
	<-ctx.Done()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.Unmount()
	return nil
}

func (h *headlessHost) show(sc *scene.Scene, view *engine.View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.SetTheme(sc.Theme())
	h.engine.SetElements(sc.Elements()...)
	if view != nil {
		h.engine.SetInitialView(*view)
		h.engine.ResetView()
	}
}

// do runs fn with the engine.
func (h *headlessHost) do(fn func(e *engine.Engine)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.engine)
}

// frame returns a copy of the last rendered image.
func (h *headlessHost) frame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	src := h.image.RGBA()
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
