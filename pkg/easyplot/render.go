//go:build !noebiten

package easyplot

import (
	"context"

	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/render"
	"github.com/opd-ai/go-easyplot/internal/scene"
)

// windowHost runs the plot in an Ebiten window. Scenes are handed to the
// game loop, which owns the engine.
type windowHost struct {
	game *render.Game
}

func (p *plotImpl) newWindowHost(sc *scene.Scene) (host, error) {
	cfg := render.Config{
		Width:      sc.Config.Window.Width,
		Height:     sc.Config.Window.Height,
		Title:      sc.Config.Window.Title,
		Resizable:  sc.Config.Window.Resizable,
		AntiAlias:  sc.Config.Theme.AntiAlias,
		Background: sc.Config.Theme.Background,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := engine.New(p.engineOptions(sc))
	e.Add(sc.Elements()...)

	game := render.NewGame(cfg, e)
	game.SetErrorHandler(func(err error) {
		p.report(err, ErrorCategoryRender, SeverityError)
	})
	return &windowHost{game: game}, nil
}

func (h *windowHost) run(ctx context.Context) error {
	h.game.SetContext(ctx)
	return h.game.Run()
}

func (h *windowHost) show(sc *scene.Scene, view *engine.View) {
	theme := sc.Theme()
	h.game.SetScene(sc.Elements(), &theme, view)
}
