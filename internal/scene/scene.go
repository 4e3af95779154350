// Package scene builds a plot scene from a Lua script.
//
// A script describes the plot through the global plot table:
//
//	plot.config = { title = "parabola", scale = 0.5 }
//	plot.grid{}
//	local p = plot.mark{ x = 1, y = 1, movable = true, on_curve = function(x) return x * x end }
//	plot.curve{ fn = function(x) return x * x end, hover = true }
//	plot.segment{ from = p, to = { 0, 0 }, dashed = true }
//
// Primitives are collected while the script runs and built once it has
// finished, so plot.config may appear anywhere in the file.
package scene

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-easyplot/internal/config"
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/lua"
	"github.com/opd-ai/go-easyplot/internal/plot"
)

var (
	// ErrSealed is returned when a script adds primitives after loading,
	// for example from an on_move callback.
	ErrSealed = errors.New("scene is already built")

	// ErrUnknownMark is returned when a position names a mark that was not
	// created before it.
	ErrUnknownMark = errors.New("unknown mark")
)

// Scene is a loaded script: its configuration, its primitives and the Lua
// runtime their functions live in.
type Scene struct {
	Name   string
	Config config.Config
	Plot   *plot.Scene
	Hooks  *lua.HookManager

	runtime *lua.Runtime
}

// Elements returns the primitives in script order.
func (s *Scene) Elements() []engine.Element { return s.Plot.Elements() }

// Runtime returns the scene's Lua runtime.
func (s *Scene) Runtime() *lua.Runtime { return s.runtime }

// Theme returns the engine theme for the scene's configuration.
func (s *Scene) Theme() engine.Theme {
	return Theme(s.Config.Theme)
}

// EngineOptions returns engine options carrying the scene's view settings.
func (s *Scene) EngineOptions(logger *slog.Logger) engine.Options {
	theme := s.Theme()
	return engine.Options{
		Logger:     logger,
		Theme:      &theme,
		Scale:      s.Config.View.Scale,
		ZoomFactor: s.Config.View.ZoomFactor,
		Center:     s.Config.View.Center,
	}
}

// Close runs the shutdown hook and releases the runtime.
func (s *Scene) Close() error {
	var hookErr error
	if s.Hooks != nil {
		hookErr = s.Hooks.Call(lua.HookShutdown)
		s.Hooks.Clear()
	}
	return errors.Join(hookErr, s.runtime.Close())
}

// Theme maps a theme configuration onto the engine's default theme.
func Theme(tc config.ThemeConfig) engine.Theme {
	theme := engine.DefaultTheme()
	theme.Background = tc.Background
	theme.Axis = tc.Axis
	theme.GridLine = tc.GridLine
	theme.Label = tc.Label
	theme.FontSize = tc.FontSize
	theme.HoverRadius = tc.HoverRadius
	return theme
}

// Loader loads scene scripts.
type Loader struct {
	Runtime lua.RuntimeConfig
	Logger  *slog.Logger
}

// NewLoader returns a loader with the default runtime limits.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{Runtime: lua.DefaultConfig(), Logger: logger}
}

// LoadFile loads the script at path.
func (l *Loader) LoadFile(path string) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return l.Load(path, src)
}

// LoadFS loads the script at path within fsys.
func (l *Loader) LoadFS(fsys fs.FS, path string) (*Scene, error) {
	src, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return l.Load(path, src)
}

// LoadReader loads a script from r.
func (l *Loader) LoadReader(name string, r io.Reader) (*Scene, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", name, err)
	}
	return l.Load(name, src)
}

// Load runs src in a fresh runtime and builds its scene. The runtime is
// closed again when anything fails.
func (l *Loader) Load(name string, src []byte) (sc *Scene, err error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	runtime, err := lua.New(l.Runtime)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			runtime.Close()
		}
	}()

	b := newBuilder(runtime)
	runtime.SetGlobal("plot", rt.TableValue(b.table()))

	closure, err := runtime.LoadString(name, string(src))
	if err != nil {
		return nil, err
	}
	if _, err := runtime.Execute(closure); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if plotTable, ok := runtime.GetGlobal("plot").TryTable(); ok {
		if t, ok := plotTable.Get(rt.StringValue("config")).TryTable(); ok {
			if err := config.ApplyTable(&cfg, t); err != nil {
				return nil, fmt.Errorf("plot.config: %w", err)
			}
		}
	}
	config.ExpandEnvConfig(&cfg)

	result := config.NewValidator().Validate(&cfg)
	for _, w := range result.Warnings {
		logger.Warn("scene configuration", "scene", name, "field", w.Field, "message", w.Message)
	}
	if err := result.Error(); err != nil {
		return nil, err
	}

	ps, err := b.build(cfg)
	if err != nil {
		return nil, err
	}

	hooks, err := lua.NewHookManager(runtime)
	if err != nil {
		return nil, err
	}
	registered := hooks.AutoRegisterHooks()
	if err := hooks.Call(lua.HookStartup); err != nil {
		return nil, err
	}

	logger.Info("scene loaded", "scene", name, "primitives", ps.Len(), "hooks", len(registered))
	return &Scene{Name: name, Config: cfg, Plot: ps, Hooks: hooks, runtime: runtime}, nil
}
