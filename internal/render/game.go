package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-easyplot/internal/engine"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// Game implements ebiten.Game around a plot engine. The engine is only
// touched from the game loop; other goroutines hand over new scenes with
// SetScene.
type Game struct {
	config       Config
	engine       *engine.Engine
	input        Input
	text         *TextRenderer
	canvas       *Canvas
	errorHandler ErrorHandler

	// scaleFactor and setCursor are replaced in tests.
	scaleFactor func() float64
	setCursor   func(ebiten.CursorShapeType)

	width, height int
	ratio         float64
	lastX, lastY  int
	pressed       bool
	cursor        engine.Cursor

	mu       sync.Mutex
	pending  *sceneUpdate
	running  bool
	ctx      context.Context
	frameNum uint64
}

type sceneUpdate struct {
	elements []engine.Element
	theme    *engine.Theme
	view     *engine.View
}

// NewGame creates a Game hosting e.
func NewGame(config Config, e *engine.Engine) *Game {
	return &Game{
		config:       config,
		engine:       e,
		input:        ebitenInput{},
		text:         NewTextRenderer(),
		errorHandler: DefaultErrorHandler,
		scaleFactor:  monitorScale,
		setCursor:    ebiten.SetCursorShape,
		ratio:        1,
		lastX:        -1,
		lastY:        -1,
		cursor:       engine.CursorDefault,
	}
}

func monitorScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetScene replaces the plotted elements and theme on the next tick. A nil
// theme keeps the current one. A non-nil view becomes the initial view and
// is shown at once; nil keeps the user's pan and zoom.
func (g *Game) SetScene(elements []engine.Element, theme *engine.Theme, view *engine.View) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &sceneUpdate{
		elements: append([]engine.Element(nil), elements...),
		theme:    theme,
		view:     view,
	}
}

// Engine returns the hosted engine.
func (g *Game) Engine() *engine.Engine { return g.engine }

// Frames returns the number of frames drawn.
func (g *Game) Frames() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frameNum
}

func (g *Game) report(err error) {
	if err == nil {
		return
	}
	g.mu.Lock()
	handler := g.errorHandler
	g.mu.Unlock()
	if handler != nil {
		handler(err)
	}
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	ctx := g.ctx
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	// Check for context cancellation (used for programmatic shutdown)
	if ctx != nil {
		select {
		case <-ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if g.width <= 0 || g.height <= 0 {
		return nil
	}
	if err := g.ensureMounted(); err != nil {
		return err
	}
	if pending != nil {
		g.applyScene(pending)
	}

	g.handleInput()
	g.syncCursor()
	return nil
}

// ensureMounted mounts on the first tick with a known size and follows
// later size changes.
func (g *Game) ensureMounted() error {
	if g.canvas == nil {
		g.canvas = NewCanvas(g.width, g.height, g.text, g.config.AntiAlias)
		g.canvas.Clear(g.config.Background)
		if err := g.engine.Mount(g.canvas, g.canvas, float64(g.width), float64(g.height), g.ratio); err != nil {
			return fmt.Errorf("mount plot: %w", err)
		}
		return nil
	}
	if w, h := g.canvas.Size(); w != g.width || h != g.height {
		g.canvas.Resize(g.width, g.height)
		g.report(g.engine.Resize(float64(g.width), float64(g.height)))
	}
	return nil
}

func (g *Game) applyScene(u *sceneUpdate) {
	if u.theme != nil {
		g.engine.SetTheme(*u.theme)
	}
	g.engine.SetElements(u.elements...)
	if u.view != nil {
		g.engine.SetInitialView(*u.view)
		g.report(g.engine.ResetView())
	}
}

// handleInput forwards this tick's pointer edges, motion and wheel. Ebiten
// reports positions in device pixels; the engine takes host pixels.
func (g *Game) handleInput() {
	x, y := g.input.CursorPosition()
	hx, hy := float64(x)/g.ratio, float64(y)/g.ratio

	if g.input.Pressed() && !g.pressed {
		g.pressed = true
		g.report(g.engine.PointerDown(hx, hy))
	}
	if x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.report(g.engine.PointerMove(hx, hy))
	}
	if g.input.Released() && g.pressed {
		g.pressed = false
		g.report(g.engine.PointerUp(hx, hy))
	}
	if d := g.input.Wheel(); d != 0 {
		g.report(g.engine.Wheel(d))
	}
	if g.input.Reset() {
		g.report(g.engine.ResetView())
	}
}

func (g *Game) syncCursor() {
	c := g.engine.Cursor()
	if c == g.cursor {
		return
	}
	g.cursor = c
	g.setCursor(cursorShape(c))
}

// cursorShape maps an engine cursor onto the closest Ebiten shape.
func cursorShape(c engine.Cursor) ebiten.CursorShapeType {
	switch c {
	case engine.CursorGrab, engine.CursorGrabbing:
		return ebiten.CursorShapeMove
	case engine.CursorPointer:
		return ebiten.CursorShapePointer
	case engine.CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	default:
		return ebiten.CursorShapeDefault
	}
}

// Draw implements ebiten.Game.Draw.
// It is called every frame to show the last rendered plot.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	g.frameNum++
	g.mu.Unlock()

	if g.canvas == nil {
		screen.Fill(g.config.Background)
		return
	}
	screen.DrawImage(g.canvas.Image(), nil)
}

// Layout implements ebiten.Game.Layout.
// The screen has device-pixel resolution so plots stay sharp on dense
// displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ratio = g.scaleFactor()
	g.width = int(float64(outsideWidth) * g.ratio)
	g.height = int(float64(outsideHeight) * g.ratio)
	return g.width, g.height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.config
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed or the context ends.
func (g *Game) Run() error {
	if err := g.config.Validate(); err != nil {
		return err
	}
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	if g.config.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	if errors.Is(err, ErrGameTerminated) {
		return nil
	}
	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}
