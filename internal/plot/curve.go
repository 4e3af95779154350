package plot

import (
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/points"
	"github.com/opd-ai/go-easyplot/internal/sampler"
)

// Curve plots y = fn(x) over the visible range with adaptive sampling.
// Samples are recomputed only when the visible range changes.
type Curve struct {
	id    string
	cfg   Config
	cache *sampler.Cache
	hover hoverState
	clip  []float64
	ctx   engine.Context
}

// NewCurve returns a curve for fn. Non-positive steps use
// sampler.DefaultSteps.
func NewCurve(fn sampler.Func, steps int, cfg Config) *Curve {
	return &Curve{
		id:    newID(cfg.ID),
		cfg:   cfg,
		cache: sampler.NewCache(fn, steps),
	}
}

// ID returns the key the curve registers under.
func (c *Curve) ID() string { return "curve-" + c.id }

// Samples returns the most recent sample buffer.
func (c *Curve) Samples() []float64 { return c.cache.Cached() }

// Runs returns how many times the function has been sampled.
func (c *Curve) Runs() int { return c.cache.Runs() }

// SetFunc replaces the plotted function.
func (c *Curve) SetFunc(fn sampler.Func) {
	c.cache.SetFunc(fn)
	if c.ctx != nil {
		c.ctx.RequestRender()
	}
}

// Attach implements engine.Element.
func (c *Curve) Attach(ctx engine.Context) {
	c.ctx = ctx
	c.hover = hoverState{}
	ctx.RegisterRender(c.ID(), ZCurve, c.factory)
	if c.cfg.Hover {
		ctx.RegisterEventHandler(events.PointerMove, c.ID()+"-hover", func(ev *engine.Event) events.Result {
			s := ev.State
			pts := c.cache.Points(s.Range)
			p := s.Pointer
			m, ok := points.NearestInWindow(pts, p.GridX, p.GridY, hoverRadius(ctx.Theme(), s))
			return c.hover.claim(s, m, ok)
		})
	}
}

func (c *Curve) factory(f *engine.Frame) painter.DrawFunc {
	return func() {
		pts := c.cache.Points(f.State.Range)
		c.ctx.PublishPoints(c.ID(), pts)
		c.clip = toClip(f, c.clip, pts)
		f.Raster.DrawLineStrip(c.clip, strokeStyle(f, c.cfg))
		c.hover.draw(f)
	}
}
