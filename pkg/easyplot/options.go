package easyplot

import (
	"time"
)

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
// This can be overridden via Options.ShutdownTimeout.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures the Plot instance behavior.
type Options struct {
	// Width and Height override the scene's window size in host pixels.
	// Zero means use the scene's value.
	Width, Height int

	// Scale overrides the scene's initial zoom. Zero means use the scene's
	// value.
	Scale float64

	// WindowTitle overrides the window title.
	// Empty string means use the scene's value.
	WindowTitle string

	// Headless renders into an offscreen image instead of a window.
	// Useful for testing and for producing snapshots on a server.
	Headless bool

	// LuaCPULimit overrides the instruction limit for running the scene
	// script. Zero means use the default (10 million instructions).
	LuaCPULimit uint64

	// LuaCallLimit overrides the instruction limit for one call of a plotted
	// function. Zero means use the default (1 million instructions).
	LuaCallLimit uint64

	// LuaMemoryLimit overrides the Lua memory limit in bytes.
	// Zero means use the default (50 MB).
	LuaMemoryLimit uint64

	// ShutdownTimeout sets the maximum time to wait for graceful shutdown.
	// Zero means use DefaultShutdownTimeout (5 seconds).
	ShutdownTimeout time.Duration

	// Logger sets a custom logger for debug/info messages.
	// If nil, no logging is performed.
	Logger Logger

	// Metrics sets a custom metrics collector.
	// If nil, DefaultMetrics() is used.
	Metrics *Metrics

	// ErrorTracker collects categorized errors. If nil, DefaultErrorTracker()
	// is used.
	ErrorTracker *ErrorTracker

	// WatchScene reloads the scene whenever its file changes on disk. It has
	// no effect for scenes read from an io.Reader or an fs.FS.
	WatchScene bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use the default (500ms).
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Headless:        false,
		ShutdownTimeout: 0, // Use DefaultShutdownTimeout
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
