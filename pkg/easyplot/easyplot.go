package easyplot

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/opd-ai/go-easyplot/internal/scene"
)

// Plot is an interactive plot driven by a Lua scene script.
// It is safe for concurrent use from multiple goroutines.
type Plot interface {
	// Start opens the window, or the offscreen surface in headless mode,
	// and returns at once; the plot runs in background goroutines.
	// Returns ErrRunning if already running.
	Start() error

	// Stop closes the window and releases the scene. It waits for the
	// background goroutines up to the shutdown timeout.
	// Safe to call multiple times; subsequent calls are no-ops.
	Stop() error

	// Reload runs the scene script again and swaps the new primitives in
	// without closing the window. If the script fails the previous scene
	// stays on screen and the error is returned.
	Reload() error

	// Done is closed when the plot stops, including when the user closes
	// the window.
	Done() <-chan struct{}

	// IsRunning returns true if the plot is currently running.
	IsRunning() bool

	// Status returns detailed status information about the instance.
	Status() Status

	// Snapshot loads the scene afresh and writes it as a PNG image.
	// It does not need a running instance or a display.
	Snapshot(w io.Writer, opts SnapshotOptions) error

	// SetErrorHandler registers a callback for runtime errors. Panics in
	// the handler are recovered.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle events.
	SetEventHandler(handler EventHandler)

	// Metrics returns the metrics collector for this instance.
	Metrics() *Metrics

	// Errors returns the error tracker for this instance.
	Errors() *ErrorTracker
}

// SnapshotOptions sizes a snapshot. Zero values use the scene's window
// size and a pixel ratio of 1.
type SnapshotOptions struct {
	Width, Height int
	Ratio         float64
}

// New creates a Plot from a scene script on disk. The script is run once
// here so errors surface early; call Start to show it.
//
// Example:
//
//	p, err := easyplot.New("parabola.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := p.Start(); err != nil {
//		log.Fatal(err)
//	}
//	<-p.Done()
func New(scenePath string, opts *Options) (Plot, error) {
	p := newPlot(opts, scenePath)
	p.watchPath = scenePath
	p.load = func() (*scene.Scene, error) {
		return p.loader().LoadFile(scenePath)
	}
	return p.init()
}

// NewFromFS creates a Plot from a scene script inside fsys, such as an
// embed.FS bundled with the application.
func NewFromFS(fsys fs.FS, scenePath string, opts *Options) (Plot, error) {
	p := newPlot(opts, "embedded:"+scenePath)
	p.load = func() (*scene.Scene, error) {
		return p.loader().LoadFS(fsys, scenePath)
	}
	return p.init()
}

// NewFromReader creates a Plot from script content. The content is read
// once and kept for reloads and snapshots.
//
// Example:
//
//	src := strings.NewReader(`
//		plot.grid{}
//		plot.curve{ fn = math.sin }
//	`)
//	p, err := easyplot.NewFromReader(src, nil)
func NewFromReader(r io.Reader, opts *Options) (Plot, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	p := newPlot(opts, "reader")
	p.load = func() (*scene.Scene, error) {
		return p.loader().Load("reader", content)
	}
	return p.init()
}

func newPlot(opts *Options, source string) *plotImpl {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}
	p := &plotImpl{
		opts:    *opts,
		logger:  slogLogger(opts.Logger),
		source:  source,
		metrics: opts.Metrics,
		tracker: opts.ErrorTracker,
		done:    make(chan struct{}),
	}
	if p.metrics == nil {
		p.metrics = DefaultMetrics()
	}
	if p.tracker == nil {
		p.tracker = DefaultErrorTracker()
	}
	close(p.done)
	return p
}

func (p *plotImpl) init() (Plot, error) {
	sc, err := p.loadScene()
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	p.idle = sc
	return p, nil
}
