package easyplot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-easyplot/internal/config"
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/lua"
	"github.com/opd-ai/go-easyplot/internal/scene"
	"github.com/opd-ai/go-easyplot/internal/snapshot"
)

// host shows a scene: a window, or an offscreen image in headless mode.
type host interface {
	// run blocks until ctx ends or the user closes the window.
	run(ctx context.Context) error
	// show swaps in sc. A non-nil view replaces the user's view.
	show(sc *scene.Scene, view *engine.View)
}

// plotImpl is the private implementation of the Plot interface.
type plotImpl struct {
	opts      Options
	logger    *slog.Logger
	source    string
	watchPath string
	load      func() (*scene.Scene, error)

	metrics *Metrics
	tracker *ErrorTracker

	// current is read from the render loop after every pass.
	current atomic.Pointer[scene.Scene]
	// idle is the scene loaded by the constructor, shown by the first Start.
	idle    *scene.Scene
	host    host
	watcher *sceneWatcher

	running   atomic.Bool
	startTime time.Time
	reloads   atomic.Uint64
	lastError atomic.Value

	errorHandler ErrorHandler
	eventHandler EventHandler

	mu sync.RWMutex
	// startMu serializes Start calls.
	startMu sync.Mutex
	// reloadMu serializes scene swaps with each other and with shutdown.
	reloadMu sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
}

var _ Plot = (*plotImpl)(nil)

func (p *plotImpl) loader() *scene.Loader {
	l := scene.NewLoader(p.logger)
	if p.opts.LuaCPULimit > 0 {
		l.Runtime.CPULimit = p.opts.LuaCPULimit
	}
	if p.opts.LuaCallLimit > 0 {
		l.Runtime.CallCPULimit = p.opts.LuaCallLimit
	}
	if p.opts.LuaMemoryLimit > 0 {
		l.Runtime.MemoryLimit = p.opts.LuaMemoryLimit
	}
	return l
}

// loadScene runs the script and applies the option overrides.
func (p *plotImpl) loadScene() (*scene.Scene, error) {
	sc, err := p.load()
	if err != nil {
		return nil, classify(err)
	}
	if p.opts.Width > 0 {
		sc.Config.Window.Width = p.opts.Width
	}
	if p.opts.Height > 0 {
		sc.Config.Window.Height = p.opts.Height
	}
	if p.opts.Scale > 0 {
		sc.Config.View.Scale = p.opts.Scale
	}
	if p.opts.WindowTitle != "" {
		sc.Config.Window.Title = p.opts.WindowTitle
	}
	return sc, nil
}

// classify maps a load error onto its category.
func classify(err error) *CategorizedError {
	var (
		pathErr  *fs.PathError
		validErr config.ValidationError
	)
	switch {
	case errors.As(err, &pathErr):
		return NewCategorizedError(err, ErrorCategoryIO, SeverityError)
	case errors.As(err, &validErr), errors.Is(err, scene.ErrUnknownMark):
		return NewCategorizedError(err, ErrorCategoryConfig, SeverityError)
	default:
		return NewCategorizedError(err, ErrorCategoryLua, SeverityError)
	}
}

func (p *plotImpl) engineOptions(sc *scene.Scene) engine.Options {
	opts := sc.EngineOptions(p.logger)
	opts.OnRender = p.afterRender
	return opts
}

// afterRender reports the function evaluations that failed during the pass
// and runs the draw hook.
func (p *plotImpl) afterRender() {
	p.metrics.IncrementRenders()
	sc := p.current.Load()
	if sc == nil {
		return
	}
	if n, err := sc.Runtime().TakeFailures(); n > 0 {
		p.metrics.AddLuaFailures(n)
		p.report(fmt.Errorf("%d function evaluations failed: %w", n, err), ErrorCategoryLua, SeverityWarning)
	}
	if err := sc.Hooks.Call(lua.HookDraw); err != nil {
		p.report(err, ErrorCategoryLua, SeverityError)
	}
}

func (p *plotImpl) newHost(sc *scene.Scene) (host, error) {
	if p.opts.Headless {
		return newHeadlessHost(engine.New(p.engineOptions(sc)), sc)
	}
	return p.newWindowHost(sc)
}

// Start opens the plot. The host is created without holding mu since a
// headless mount renders, and render reports take mu.
func (p *plotImpl) Start() error {
	p.startMu.Lock()
	defer p.startMu.Unlock()

	if p.running.Load() {
		return ErrRunning
	}

	p.mu.Lock()
	sc := p.idle
	p.idle = nil
	p.mu.Unlock()
	if sc == nil {
		var err error
		if sc, err = p.loadScene(); err != nil {
			p.report(err, ErrorCategoryLua, SeverityError)
			return fmt.Errorf("failed to start: %w", err)
		}
	}

	p.current.Store(sc)
	h, err := p.newHost(sc)
	if err != nil {
		p.current.Store(nil)
		sc.Close()
		p.report(err, ErrorCategoryRender, SeverityCritical)
		return fmt.Errorf("failed to start: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.host = h
	p.done = done
	p.startTime = time.Now()
	p.mu.Unlock()

	p.running.Store(true)
	p.metrics.IncrementStarts()
	p.metrics.SetRunning(true)
	p.metrics.SetPrimitives(len(sc.Elements()))

	if p.opts.WatchScene && p.watchPath != "" {
		w, err := newSceneWatcher(p.watchPath, p.opts.WatchDebounce, p.Reload, func(err error) {
			p.report(err, ErrorCategoryIO, SeverityWarning)
		})
		if err != nil {
			p.logger.Warn("scene watcher unavailable", "scene", p.watchPath, "error", err)
		} else {
			p.mu.Lock()
			p.watcher = w
			p.mu.Unlock()
			w.Start()
		}
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := h.run(ctx); err != nil {
			p.report(fmt.Errorf("render loop error: %w", err), ErrorCategoryRender, SeverityCritical)
		}
		cancel()
		p.shutdown()
		close(done)
		p.emitEvent(EventStopped, "Instance stopped")
	}()

	p.logger.Info("plot started", "scene", p.source, "headless", p.opts.Headless)
	p.emitEvent(EventStarted, "Instance started")
	return nil
}

// shutdown stops the watcher and closes the current scene once the host
// has returned.
func (p *plotImpl) shutdown() {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.mu.Unlock()
	if w != nil {
		w.Stop()
	}

	p.reloadMu.Lock()
	sc := p.current.Swap(nil)
	p.running.Store(false)
	p.reloadMu.Unlock()

	if sc != nil {
		if err := sc.Close(); err != nil {
			p.report(err, ErrorCategoryLua, SeverityWarning)
		}
	}
	p.metrics.SetRunning(false)
	p.metrics.SetPrimitives(0)
}

// Stop closes the plot and waits for the render loop.
func (p *plotImpl) Stop() error {
	if !p.running.Load() {
		return nil
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	done := p.done
	p.mu.Unlock()

	timeout := p.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		p.metrics.IncrementStops()
		p.logger.Info("plot stopped", "scene", p.source)
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("shutdown timeout after %v: render loop did not stop", timeout)
		p.notifyError(NewCategorizedError(err, ErrorCategoryRender, SeverityCritical))
		return err
	}
}

// Reload swaps in a freshly loaded scene.
func (p *plotImpl) Reload() error {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	if !p.running.Load() {
		return ErrNotRunning
	}

	sc, err := p.loadScene()
	if err != nil {
		p.metrics.IncrementReloadFailures()
		p.report(err, ErrorCategoryLua, SeverityError)
		return fmt.Errorf("scene reload failed: %w", err)
	}

	old := p.current.Swap(sc)
	p.mu.RLock()
	h := p.host
	p.mu.RUnlock()
	h.show(sc, changedView(old, sc))

	if old != nil {
		if err := old.Close(); err != nil {
			p.report(err, ErrorCategoryLua, SeverityWarning)
		}
	}

	p.reloads.Add(1)
	p.metrics.IncrementReloads()
	p.metrics.SetPrimitives(len(sc.Elements()))
	p.logger.Info("scene reloaded", "scene", p.source, "primitives", len(sc.Elements()))
	p.emitEvent(EventSceneReloaded, "Scene reloaded")
	return nil
}

// changedView returns the new scene's view when its scale or center
// differs from the old scene's. Otherwise the user's view is kept.
func changedView(old, sc *scene.Scene) *engine.View {
	if old != nil && old.Config.View.Scale == sc.Config.View.Scale && old.Config.View.Center == sc.Config.View.Center {
		return nil
	}
	return &engine.View{Scale: sc.Config.View.Scale, Center: sc.Config.View.Center}
}

// Done is closed when the plot stops.
func (p *plotImpl) Done() <-chan struct{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.done
}

// IsRunning returns true if the plot is currently running.
func (p *plotImpl) IsRunning() bool {
	return p.running.Load()
}

// Status returns detailed status information about the instance.
func (p *plotImpl) Status() Status {
	p.mu.RLock()
	startTime := p.startTime
	p.mu.RUnlock()

	primitives := 0
	if sc := p.current.Load(); sc != nil {
		primitives = len(sc.Elements())
	}

	return Status{
		Running:     p.running.Load(),
		StartTime:   startTime,
		Reloads:     p.reloads.Load(),
		Primitives:  primitives,
		LastError:   p.getError(),
		SceneSource: p.source,
	}
}

// Snapshot renders a freshly loaded copy of the scene to w as PNG.
func (p *plotImpl) Snapshot(w io.Writer, opts SnapshotOptions) error {
	start := time.Now()

	sc, err := p.loadScene()
	if err != nil {
		p.report(err, ErrorCategoryLua, SeverityError)
		return fmt.Errorf("snapshot: %w", err)
	}
	defer sc.Close()

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = sc.Config.Window.Width
	}
	if height <= 0 {
		height = sc.Config.Window.Height
	}

	img, err := snapshot.Render(sc.Elements(), sc.EngineOptions(p.logger), snapshot.Options{
		Width:  width,
		Height: height,
		Ratio:  opts.Ratio,
	})
	if err != nil {
		p.report(err, ErrorCategoryRender, SeverityError)
		return fmt.Errorf("snapshot: %w", err)
	}
	if n, ferr := sc.Runtime().TakeFailures(); n > 0 {
		p.metrics.AddLuaFailures(n)
		p.report(fmt.Errorf("%d function evaluations failed: %w", n, ferr), ErrorCategoryLua, SeverityWarning)
	}
	if err := snapshot.EncodePNG(w, img); err != nil {
		p.report(err, ErrorCategoryIO, SeverityError)
		return fmt.Errorf("snapshot: %w", err)
	}

	p.metrics.RecordSnapshot(time.Since(start))
	p.logger.Debug("snapshot written", "scene", p.source, "width", width, "height", height)
	return nil
}

// SetErrorHandler registers a callback for runtime errors.
func (p *plotImpl) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (p *plotImpl) SetEventHandler(handler EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventHandler = handler
}

// Metrics returns the metrics collector for this instance.
func (p *plotImpl) Metrics() *Metrics {
	return p.metrics
}

// Errors returns the error tracker for this instance.
func (p *plotImpl) Errors() *ErrorTracker {
	return p.tracker
}

func (p *plotImpl) getError() error {
	if v := p.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// report categorizes err and notifies about it.
func (p *plotImpl) report(err error, category ErrorCategory, severity ErrorSeverity) {
	if err == nil {
		return
	}
	p.notifyError(categorize(err, category, severity))
}

// notifyError records err and invokes the error handler asynchronously.
func (p *plotImpl) notifyError(err *CategorizedError) {
	p.lastError.Store(error(err))
	p.tracker.Record(err)
	p.metrics.IncrementErrors()

	p.mu.RLock()
	handler := p.errorHandler
	p.mu.RUnlock()

	if err.Severity >= SeverityError {
		p.logger.Error("plot error", "category", err.Category, "error", err.Err)
	} else {
		p.logger.Warn("plot warning", "category", err.Category, "error", err.Err)
	}

	if handler != nil {
		go func() {
			defer func() {
				// Recover from panics in error handler to prevent crashing
				if r := recover(); r != nil {
					p.logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	p.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (p *plotImpl) emitEvent(eventType EventType, message string) {
	p.metrics.IncrementEventsEmitted()

	p.mu.RLock()
	handler := p.eventHandler
	p.mu.RUnlock()

	if handler == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("event handler panicked", "panic", r, "event", eventType.String())
			}
		}()
		handler(Event{
			Type:      eventType,
			Timestamp: time.Now(),
			Message:   message,
		})
	}()
}
