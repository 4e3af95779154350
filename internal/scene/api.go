package scene

import (
	"fmt"

	rt "github.com/arnodel/golua/runtime"
	"github.com/google/uuid"

	"github.com/opd-ai/go-easyplot/internal/config"
	"github.com/opd-ai/go-easyplot/internal/lua"
	"github.com/opd-ai/go-easyplot/internal/plot"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

// step adds one primitive to the scene once the configuration is known.
type step func(s *plot.Scene, cfg config.Config) error

// position resolves to a fixed point or a mark once the marks exist.
type position func(s *plot.Scene) (plot.Positioner, error)

// builder records the plot.* calls of a running script.
type builder struct {
	runtime *lua.Runtime
	steps   []step
	sealed  bool
}

func newBuilder(r *lua.Runtime) *builder {
	return &builder{runtime: r}
}

// table returns the plot table installed as a global.
func (b *builder) table() *rt.Table {
	t := rt.NewTable()
	t.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))

	for name, parse := range map[string]func(fields) (step, error){
		"curve":     b.curve,
		"points":    b.points,
		"mark":      b.mark,
		"segment":   b.segment,
		"ray":       b.ray,
		"line":      b.line,
		"grid":      b.grid,
		"cursor":    b.cursor,
		"crosshair": b.crosshair,
	} {
		t.Set(rt.StringValue(name), b.define(name, parse))
	}
	return t
}

// define wraps parse as plot.<name>. The function takes one option table
// and returns the primitive's id.
func (b *builder) define(name string, parse func(fields) (step, error)) rt.Value {
	return lua.NewGoFunction("plot."+name, func(t *rt.Thread, c *rt.GoCont) (rt.Cont, error) {
		if b.sealed {
			return nil, fmt.Errorf("plot.%s: %w", name, ErrSealed)
		}

		f := fields{fn: name}
		if c.NArgs() > 0 {
			arg := c.Args()[0]
			if arg != rt.NilValue {
				table, ok := arg.TryTable()
				if !ok {
					return nil, fmt.Errorf("plot.%s: want an option table, got %v", name, arg.Type())
				}
				f.table = table
			}
		}

		id, err := f.string("id", "")
		if err != nil {
			return nil, err
		}
		if id == "" {
			id = uuid.NewString()
			if f.table == nil {
				f.table = rt.NewTable()
			}
			f.table.Set(rt.StringValue("id"), rt.StringValue(id))
		}

		s, err := parse(f)
		if err != nil {
			return nil, err
		}
		b.steps = append(b.steps, s)
		return c.PushingNext1(t.Runtime, rt.StringValue(id)), nil
	}, 1, false)
}

// build runs the recorded steps in call order and seals the builder.
func (b *builder) build(cfg config.Config) (*plot.Scene, error) {
	b.sealed = true
	s := plot.NewScene()
	for _, st := range b.steps {
		if err := st(s, cfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// style reads the keys shared by curves and polylines.
func style(f fields) (plot.Config, error) {
	var (
		cfg plot.Config
		err error
	)
	if cfg.ID, err = f.string("id", ""); err != nil {
		return cfg, err
	}
	if cfg.Color, err = f.color("color"); err != nil {
		return cfg, err
	}
	if cfg.Width, err = f.float("width", 0); err != nil {
		return cfg, err
	}
	if cfg.Dashed, err = f.bool("dashed", false); err != nil {
		return cfg, err
	}
	if cfg.Hover, err = f.bool("hover", false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (b *builder) curve(f fields) (step, error) {
	cfg, err := style(f)
	if err != nil {
		return nil, err
	}
	v, err := f.function("fn")
	if err != nil {
		return nil, err
	}
	if v == rt.NilValue {
		return nil, f.errorf("fn", "required")
	}
	fn, err := b.runtime.Func(v)
	if err != nil {
		return nil, err
	}
	steps, err := f.int("steps", 0)
	if err != nil {
		return nil, err
	}

	return func(s *plot.Scene, sc config.Config) error {
		if steps <= 0 {
			steps = sc.View.Steps
		}
		s.Curve(fn, steps, cfg)
		return nil
	}, nil
}

// points accepts either a function of the visible range or a fixed flat
// {x0, y0, x1, y1, ...} table.
func (b *builder) points(f fields) (step, error) {
	cfg, err := style(f)
	if err != nil {
		return nil, err
	}

	var source plot.PointsFunc
	v := f.get("data")
	switch {
	case v.Type() == rt.FunctionType:
		fn, err := b.runtime.BufferFunc(v)
		if err != nil {
			return nil, err
		}
		source = func(st *viewport.State) []float64 {
			r := st.Range
			return fn(r.XMin, r.XMax, r.YMin, r.YMax)
		}
	case v != rt.NilValue:
		t, ok := v.TryTable()
		if !ok {
			return nil, f.errorf("data", "want a function or a table, got %v", v.Type())
		}
		data := lua.Floats(t)
		source = func(*viewport.State) []float64 { return data }
	default:
		return nil, f.errorf("data", "required")
	}

	return func(s *plot.Scene, _ config.Config) error {
		s.Polyline(source, cfg)
		return nil
	}, nil
}

func (b *builder) mark(f fields) (step, error) {
	var (
		cfg plot.MarkConfig
		err error
	)
	if cfg.ID, err = f.string("id", ""); err != nil {
		return nil, err
	}
	if cfg.Label, err = f.string("label", ""); err != nil {
		return nil, err
	}
	if cfg.Radius, err = f.float("radius", 0); err != nil {
		return nil, err
	}
	if cfg.Movable, err = f.bool("movable", false); err != nil {
		return nil, err
	}
	x, err := f.float("x", 0)
	if err != nil {
		return nil, err
	}
	y, err := f.float("y", 0)
	if err != nil {
		return nil, err
	}

	if v, err := f.function("on_move"); err != nil {
		return nil, err
	} else if v != rt.NilValue {
		if cfg.OnMove, err = b.runtime.Callback(v); err != nil {
			return nil, err
		}
	}
	if cfg.Constraint, err = b.constraint(f); err != nil {
		return nil, err
	}

	return func(s *plot.Scene, _ config.Config) error {
		s.Mark(x, y, cfg)
		return nil
	}, nil
}

// constraint reads at most one of constraint, on_curve and closest.
func (b *builder) constraint(f fields) (plot.Constraint, error) {
	var (
		out  plot.Constraint
		seen []string
	)
	for _, key := range []string{"constraint", "on_curve", "closest"} {
		v, err := f.function(key)
		if err != nil {
			return nil, err
		}
		if v == rt.NilValue {
			continue
		}
		seen = append(seen, key)

		switch key {
		case "constraint":
			fn, err := b.runtime.PairFunc(v)
			if err != nil {
				return nil, err
			}
			out = plot.Constraint(fn)
		case "on_curve":
			fn, err := b.runtime.Func(v)
			if err != nil {
				return nil, err
			}
			out = plot.OnCurve(fn)
		case "closest":
			fn, err := b.runtime.MultiFunc(v)
			if err != nil {
				return nil, err
			}
			out = plot.ClosestOf(fn)
		}
	}
	if len(seen) > 1 {
		return nil, f.errorf(seen[1], "conflicts with %s", seen[0])
	}
	return out, nil
}

// position reads key as a mark id or a {x, y} table.
func (b *builder) position(f fields, key string) (position, error) {
	v := f.get(key)
	if id, ok := v.TryString(); ok {
		return func(s *plot.Scene) (plot.Positioner, error) {
			m, ok := s.MarkByID(id)
			if !ok {
				return nil, fmt.Errorf("plot.%s: %s: %w %q", f.fn, key, ErrUnknownMark, id)
			}
			return m, nil
		}, nil
	}
	p, ok, err := f.pair(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, f.errorf(key, "required")
	}
	return func(*plot.Scene) (plot.Positioner, error) {
		return plot.At(p[0], p[1]), nil
	}, nil
}

func (b *builder) segment(f fields) (step, error) {
	cfg, err := style(f)
	if err != nil {
		return nil, err
	}
	from, err := b.position(f, "from")
	if err != nil {
		return nil, err
	}
	to, err := b.position(f, "to")
	if err != nil {
		return nil, err
	}

	return func(s *plot.Scene, _ config.Config) error {
		a, err := from(s)
		if err != nil {
			return err
		}
		z, err := to(s)
		if err != nil {
			return err
		}
		s.Segment(a, z, cfg)
		return nil
	}, nil
}

func (b *builder) ray(f fields) (step, error) {
	return b.directed(f, (*plot.Scene).Ray)
}

func (b *builder) line(f fields) (step, error) {
	return b.directed(f, (*plot.Scene).Line)
}

// directed reads the from/dir pair of rays and lines.
func (b *builder) directed(f fields, add func(*plot.Scene, plot.Positioner, [2]float64, plot.Config) *plot.Polyline) (step, error) {
	cfg, err := style(f)
	if err != nil {
		return nil, err
	}
	from, err := b.position(f, "from")
	if err != nil {
		return nil, err
	}
	dir, ok, err := f.pair("dir")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, f.errorf("dir", "required")
	}

	return func(s *plot.Scene, _ config.Config) error {
		p, err := from(s)
		if err != nil {
			return err
		}
		add(s, p, dir, cfg)
		return nil
	}, nil
}

func (b *builder) grid(f fields) (step, error) {
	labels, err := f.bool("labels", true)
	if err != nil {
		return nil, err
	}
	spacing, err := f.float("spacing", 0)
	if err != nil {
		return nil, err
	}
	cfg := plot.GridConfig{HideLabels: !labels, Spacing: spacing}

	return func(s *plot.Scene, _ config.Config) error {
		s.Grid(cfg)
		return nil
	}, nil
}

func (b *builder) cursor(f fields) (step, error) {
	id, err := f.string("id", "")
	if err != nil {
		return nil, err
	}
	return func(s *plot.Scene, _ config.Config) error {
		s.Cursor(id)
		return nil
	}, nil
}

func (b *builder) crosshair(f fields) (step, error) {
	id, err := f.string("id", "")
	if err != nil {
		return nil, err
	}
	return func(s *plot.Scene, _ config.Config) error {
		s.Crosshair(id)
		return nil
	}, nil
}
