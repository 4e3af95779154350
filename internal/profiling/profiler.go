// Package profiling records CPU, heap and execution-trace profiles of a plot
// session for the -cpuprofile, -memprofile and -trace flags.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
)

var (
	// ErrRunning is returned by Start on a running profiler.
	ErrRunning = errors.New("profiler is already running")
	// ErrNotRunning is returned by Stop on a stopped profiler.
	ErrNotRunning = errors.New("profiler is not running")
)

// Config names the profile outputs. An empty path disables that profile.
type Config struct {
	CPUProfilePath string
	// MemProfilePath receives a heap profile when the session stops.
	MemProfilePath string
	TracePath      string
}

// Enabled reports whether any profile is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != "" || c.TracePath != ""
}

// Profiler runs one profiling session at a time.
type Profiler struct {
	config    Config
	cpuFile   *os.File
	traceFile *os.File
	running   bool
	mu        sync.Mutex
}

// New creates a Profiler. Call Start to begin the session.
func New(config Config) *Profiler {
	return &Profiler{config: config}
}

// Config returns the profile outputs.
func (p *Profiler) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// Start begins CPU profiling and tracing as configured. Nothing is left
// running when it fails.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}

	if path := p.config.CPUProfilePath; path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		p.cpuFile = f
	}

	if path := p.config.TracePath; path != "" {
		f, err := os.Create(path)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				f.Close()
			}
		}
		if err != nil {
			p.stopCPU()
			return fmt.Errorf("failed to start trace: %w", err)
		}
		p.traceFile = f
	}

	p.running = true
	return nil
}

func (p *Profiler) stopCPU() error {
	if p.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := p.cpuFile.Close()
	p.cpuFile = nil
	if err != nil {
		return fmt.Errorf("failed to close CPU profile file: %w", err)
	}
	return nil
}

// Stop ends the session and writes the heap profile if configured.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrNotRunning
	}

	var errs []error
	if err := p.stopCPU(); err != nil {
		errs = append(errs, err)
	}
	if p.traceFile != nil {
		trace.Stop()
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close trace file: %w", err))
		}
		p.traceFile = nil
	}
	if path := p.config.MemProfilePath; path != "" {
		if err := WriteHeapProfile(path); err != nil {
			errs = append(errs, err)
		}
	}

	p.running = false
	return errors.Join(errs...)
}

// IsRunning returns true if the profiler is currently running.
func (p *Profiler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WriteHeapProfile writes a heap profile to path after a collection, so the
// profile shows live objects only.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
