// Package engine drives one interactive plot: it owns the viewport state, the
// render registry and the event router, turns host input into routed events
// and runs a render pass after every mutation.
//
// The engine is single-threaded. Hosts must call every method from the same
// goroutine; handlers and draw functions run to completion before the next
// input is processed.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/painter"
	"github.com/opd-ai/go-easyplot/internal/surface"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

var (
	// ErrSurfaceUnsupported is returned by Mount when a draw surface is
	// missing or unusable. It is not retried.
	ErrSurfaceUnsupported = errors.New("draw surface unsupported")
	// ErrNotMounted is returned by input and render calls before Mount.
	ErrNotMounted = errors.New("engine not mounted")
)

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Logger *slog.Logger
	Theme  *Theme
	// Scale is the initial zoom of every mount.
	Scale float64
	// ZoomFactor is applied once per wheel notch.
	ZoomFactor float64
	// Center is the grid point initially shown at the middle of the surface.
	Center [2]float64
	// OnCursor is called whenever the requested cursor changes.
	OnCursor func(Cursor)
	// OnRender is called after every render pass.
	OnRender func()
}

// Stats counts engine activity.
type Stats struct {
	Mounts     uint64
	Renders    uint64
	Dispatches uint64
}

// Engine is the plot controller. The zero value is not usable; call New.
type Engine struct {
	logger  *slog.Logger
	opts    Options
	theme   Theme
	painter *painter.Painter[*Frame]
	router  *events.Router[*Event]

	elements []Element

	state   *viewport.State
	frame   *Frame
	mounted bool
	cursor  Cursor

	// attaching and dispatching coalesce render requests into one pass.
	attaching   bool
	dispatching bool
	rendering   bool

	stats Stats
}

// New creates an unmounted Engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	e := &Engine{
		logger:  logger,
		opts:    opts,
		theme:   theme,
		painter: painter.New[*Frame](logger),
		router:  events.NewRouter[*Event](),
		cursor:  CursorDefault,
	}
	e.installDefaults()
	return e
}

func (e *Engine) installDefaults() {
	e.router.RegisterDefault(events.Drag, func(ev *Event) events.Result {
		ev.State.Pan(ev.DX, ev.DY)
		return 0
	})
	e.router.RegisterDefault(events.Wheel, func(ev *Event) events.Result {
		ev.State.Zoom(ev.WheelDelta)
		return 0
	})
	// Hover handlers set the cursor they need; everything else gets the
	// default shape back.
	e.router.SetObserver(func(kind events.Kind, _ *Event) {
		if kind == events.PointerMove {
			e.SetCursor(CursorDefault)
		}
	})
}

// Mount creates fresh viewport state for a width x height device-pixel
// surface, clears both registries and attaches every element.
func (e *Engine) Mount(raster surface.Raster, vector surface.Vector, width, height, ratio float64) error {
	if raster == nil || vector == nil {
		e.logger.Error("mount failed", "error", ErrSurfaceUnsupported)
		return fmt.Errorf("mount: %w", ErrSurfaceUnsupported)
	}
	if !(width > 0) || !(height > 0) {
		e.logger.Error("mount failed", "width", width, "height", height)
		return fmt.Errorf("mount %vx%v surface: %w", width, height, ErrSurfaceUnsupported)
	}

	state := viewport.New(width, height, ratio)
	if e.opts.ZoomFactor > 1 {
		state.ZoomFactor = e.opts.ZoomFactor
	}
	e.applyView(state)

	e.state = state
	e.frame = &Frame{
		State:  state,
		Raster: raster,
		Vector: vector,
		Theme:  e.theme,
		points: make(map[string][]float64),
	}
	e.mounted = true
	e.stats.Mounts++
	e.logger.Debug("mounted", "width", width, "height", height, "ratio", state.DevicePixelRatio)

	e.reattach()
	return nil
}

func (e *Engine) applyView(state *viewport.State) {
	scale := viewport.DefaultScale
	if e.opts.Scale > 0 {
		scale = e.opts.Scale
	}
	state.SetScale(scale)
	state.SetCenter(e.opts.Center[0], e.opts.Center[1])
}

// View is an initial scale and center.
type View struct {
	Scale  float64
	Center [2]float64
}

// InitialView returns the view every mount starts from.
func (e *Engine) InitialView() View {
	return View{Scale: e.opts.Scale, Center: e.opts.Center}
}

// SetInitialView replaces the view that Mount and ResetView restore. The
// current view is left alone.
func (e *Engine) SetInitialView(v View) {
	e.opts.Scale = v.Scale
	e.opts.Center = v.Center
}

// ResetView restores the initial scale and center.
func (e *Engine) ResetView() error {
	if !e.mounted {
		return ErrNotMounted
	}
	e.applyView(e.state)
	e.render()
	return nil
}

// Unmount drops the state and every registration. Elements are kept for the
// next Mount.
func (e *Engine) Unmount() {
	if !e.mounted {
		return
	}
	e.painter.Clear()
	e.router.Clear()
	e.state = nil
	e.frame = nil
	e.mounted = false
	e.logger.Debug("unmounted")
}

// Mounted reports whether a surface is attached.
func (e *Engine) Mounted() bool { return e.mounted }

// Resize adapts to a new surface size. The view keeps its translation and
// scale; registrations are rebuilt since the surface was recreated.
func (e *Engine) Resize(width, height float64) error {
	if !e.mounted {
		return ErrNotMounted
	}
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("resize to %vx%v: %w", width, height, ErrSurfaceUnsupported)
	}
	if width == e.state.Width && height == e.state.Height {
		return nil
	}
	e.state.Resize(width, height)
	e.reattach()
	return nil
}

// SetTheme replaces the theme and rebuilds every draw function.
func (e *Engine) SetTheme(theme Theme) {
	e.theme = theme
	if e.mounted {
		e.frame.Theme = theme
		e.reattach()
	}
}

// Add appends elements and attaches them when mounted.
func (e *Engine) Add(elements ...Element) {
	e.elements = append(e.elements, elements...)
	if !e.mounted {
		return
	}
	e.attaching = true
	for _, el := range elements {
		el.Attach(e)
	}
	e.attaching = false
	e.render()
}

// SetElements replaces every element.
func (e *Engine) SetElements(elements ...Element) {
	e.elements = append([]Element(nil), elements...)
	if e.mounted {
		e.reattach()
	}
}

// Elements returns the attached elements in attach order.
func (e *Engine) Elements() []Element {
	return append([]Element(nil), e.elements...)
}

func (e *Engine) reattach() {
	e.painter.Clear()
	e.router.Clear()
	for k := range e.frame.points {
		delete(e.frame.points, k)
	}
	e.attaching = true
	for _, el := range e.elements {
		el.Attach(e)
	}
	e.attaching = false
	e.render()
}

// PointerDown starts a drag at (screenX, screenY) host pixels.
func (e *Engine) PointerDown(screenX, screenY float64) error {
	if !e.mounted {
		return ErrNotMounted
	}
	e.state.SetPointer(screenX, screenY)
	e.state.Dragging = true
	e.dispatch(events.PointerDown, &Event{State: e.state, ScreenX: screenX, ScreenY: screenY})
	return nil
}

// PointerMove updates the pointer and dispatches exactly one of Drag or
// PointerMove. The delta is computed once, before any handler runs.
func (e *Engine) PointerMove(screenX, screenY float64) error {
	if !e.mounted {
		return ErrNotMounted
	}
	dx, dy := e.state.PointerDelta(screenX, screenY)
	e.state.SetPointer(screenX, screenY)
	e.state.MoveSeq++

	ev := &Event{State: e.state, ScreenX: screenX, ScreenY: screenY, DX: dx, DY: dy}
	if e.state.Dragging {
		e.dispatch(events.Drag, ev)
	} else {
		e.dispatch(events.PointerMove, ev)
	}
	return nil
}

// PointerUp ends a drag.
func (e *Engine) PointerUp(screenX, screenY float64) error {
	if !e.mounted {
		return ErrNotMounted
	}
	e.state.SetPointer(screenX, screenY)
	e.state.Dragging = false
	e.dispatch(events.DragEnd, &Event{State: e.state, ScreenX: screenX, ScreenY: screenY})
	return nil
}

// Wheel dispatches one wheel step. A positive delta zooms in by default.
func (e *Engine) Wheel(delta float64) error {
	if !e.mounted {
		return ErrNotMounted
	}
	p := e.state.Pointer
	e.dispatch(events.Wheel, &Event{State: e.state, ScreenX: p.ScreenX, ScreenY: p.ScreenY, WheelDelta: delta})
	return nil
}

// Render runs a render pass.
func (e *Engine) Render() error {
	if !e.mounted {
		return ErrNotMounted
	}
	e.render()
	return nil
}

func (e *Engine) dispatch(kind events.Kind, ev *Event) {
	e.dispatching = true
	e.router.Trigger(kind, ev)
	e.dispatching = false
	e.stats.Dispatches++
	e.render()
}

func (e *Engine) render() {
	if !e.mounted || e.rendering {
		return
	}
	e.rendering = true
	e.frame.Raster.Clear(e.theme.Background)
	e.painter.Render(e.frame)
	e.rendering = false
	e.stats.Renders++
	if e.opts.OnRender != nil {
		e.opts.OnRender()
	}
}

// Stats returns activity counters.
func (e *Engine) Stats() Stats { return e.stats }

// Cursor returns the cursor requested by the last handler.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Theme returns the active theme.
func (e *Engine) Theme() Theme { return e.theme }

// Keys returns the registered render keys in paint order.
func (e *Engine) Keys() []string { return e.painter.Keys() }

// Handlers returns the number of named handlers for kind.
func (e *Engine) Handlers(kind events.Kind) int { return e.router.Handlers(kind) }

// RegisterRender implements Context.
func (e *Engine) RegisterRender(key string, zIndex int, factory painter.Factory[*Frame]) {
	e.painter.Register(key, zIndex, factory)
}

// UnregisterRender implements Context.
func (e *Engine) UnregisterRender(key string) {
	e.painter.Unregister(key)
	if e.frame != nil {
		delete(e.frame.points, key)
	}
}

// RegisterEventHandler implements Context.
func (e *Engine) RegisterEventHandler(kind events.Kind, key string, h events.Handler[*Event]) {
	e.router.Register(kind, key, h)
}

// RegisterEventHandlerPriority implements Context.
func (e *Engine) RegisterEventHandlerPriority(kind events.Kind, key string, priority int, h events.Handler[*Event]) {
	e.router.RegisterPriority(kind, key, priority, h)
}

// UnregisterEventHandler implements Context.
func (e *Engine) UnregisterEventHandler(kind events.Kind, key string) {
	e.router.Unregister(kind, key)
}

// SetCursor implements Context.
func (e *Engine) SetCursor(c Cursor) {
	if c == "" {
		c = CursorDefault
	}
	if c == e.cursor {
		return
	}
	e.cursor = c
	if e.opts.OnCursor != nil {
		e.opts.OnCursor(c)
	}
}

// State implements Context. It is nil while unmounted.
func (e *Engine) State() *viewport.State { return e.state }

// PublishPoints implements Context.
func (e *Engine) PublishPoints(key string, points []float64) {
	if e.frame == nil {
		return
	}
	if points == nil {
		delete(e.frame.points, key)
		return
	}
	e.frame.points[key] = points
}

// RequestRender implements Context. Requests made while attaching or
// dispatching are folded into the pass that follows; requests made from a
// draw function are ignored.
func (e *Engine) RequestRender() {
	if e.attaching || e.dispatching || e.rendering {
		return
	}
	e.render()
}

// Logger implements Context.
func (e *Engine) Logger() *slog.Logger { return e.logger }

var _ Context = (*Engine)(nil)
