// Package lua wraps the Golua runtime for scene scripts. Scripts run under
// CPU and memory limits, and Lua functions are handed to the plotting code
// as plain Go callables.
package lua

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for running a script.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes that Lua can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// CallCPULimit bounds a single call of a plotted function.
	// 0 means unlimited.
	CallCPULimit uint64
	// Stdout is the writer for Lua print output.
	// If nil, output is only captured.
	Stdout io.Writer
}

// DefaultConfig returns a RuntimeConfig with sensible default values.
// CPU limit: 10,000,000 instructions per script, 1,000,000 per call
// Memory limit: 50 MB
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:     10_000_000,
		MemoryLimit:  50 * 1024 * 1024,
		CallCPULimit: 1_000_000,
		Stdout:       os.Stdout,
	}
}

// Runtime wraps a Golua runtime. All access is serialized.
type Runtime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.RWMutex

	// failures counts callable errors since the last TakeFailures.
	failures  int
	lastError error
}

// New creates a new Runtime with the specified configuration.
// The runtime is initialized with Lua standard libraries.
func New(config RuntimeConfig) (*Runtime, error) {
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &Runtime{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

// LoadString compiles a Lua chunk. The returned Closure can be executed
// using Execute.
func (r *Runtime) LoadString(name, code string) (*rt.Closure, error) {
	return r.load(name, []byte(code))
}

// LoadFile reads and compiles a Lua file from disk.
func (r *Runtime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file %s: %w", path, err)
	}
	return r.load(path, content)
}

// LoadFileFromFS reads and compiles a Lua file from fsys.
func (r *Runtime) LoadFileFromFS(fsys fs.FS, path string) (*rt.Closure, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Lua file from FS %s: %w", path, err)
	}
	return r.load(path, content)
}

func (r *Runtime) load(name string, content []byte) (*rt.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closure, err := r.runtime.CompileAndLoadLuaChunk(
		name,
		content,
		rt.TableValue(r.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Lua code %s: %w", name, err)
	}
	return closure, nil
}

// Execute runs a compiled closure within the script limits.
func (r *Runtime) Execute(closure *rt.Closure) (rt.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.call(r.config.CPULimit, rt.FunctionValue(closure))
	if err != nil {
		return rt.NilValue, fmt.Errorf("Lua execution error: %w", err)
	}
	return result, nil
}

// call runs fn under fresh hard limits. Golua panics when a limit is hit;
// the panic is turned into ErrLimitExceeded. The caller holds mu.
func (r *Runtime) call(cpu uint64, fn rt.Value, args ...rt.Value) (result rt.Value, err error) {
	r.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    cpu,
			Memory: r.config.MemoryLimit,
		},
	})
	defer r.runtime.PopContext()
	defer func() {
		if p := recover(); p != nil {
			result, err = rt.NilValue, fmt.Errorf("%w: %v", ErrLimitExceeded, p)
		}
	}()

	return rt.Call1(r.runtime.MainThread(), fn, args...)
}

// ExecuteString compiles and executes a Lua code string.
func (r *Runtime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := r.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// ExecuteFile loads and executes a Lua file.
func (r *Runtime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := r.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// GetGlobal retrieves a global variable from the Lua environment.
func (r *Runtime) GetGlobal(name string) rt.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// SetGlobal sets a global variable in the Lua environment.
func (r *Runtime) SetGlobal(name string, value rt.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// NewGoFunction wraps fn as a Lua function value declared safe under the
// resource limits.
func NewGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) rt.Value {
	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	return rt.FunctionValue(goFunc)
}

// SetGoFunction registers a Go function in the Lua global environment.
func (r *Runtime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	r.SetGlobal(name, NewGoFunction(name, fn, nArgs, hasVarArgs))
}

// CallFunction calls a global Lua function by name within the script limits.
func (r *Runtime) CallFunction(name string, args ...rt.Value) (rt.Value, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn := r.runtime.GlobalEnv().Get(rt.StringValue(name))
	if fn == rt.NilValue {
		return rt.NilValue, fmt.Errorf("function %s not found", name)
	}

	result, err := r.call(r.config.CPULimit, fn, args...)
	if err != nil {
		return rt.NilValue, fmt.Errorf("failed to call function %s: %w", name, err)
	}
	return result, nil
}

// Call calls a function value within the per-call limit.
func (r *Runtime) Call(fn rt.Value, args ...rt.Value) (rt.Value, error) {
	if fn.Type() != rt.FunctionType {
		return rt.NilValue, ErrNotCallable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.call(r.config.CallCPULimit, fn, args...)
}

// fail records a callable error for TakeFailures.
func (r *Runtime) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
	if r.lastError == nil {
		r.lastError = err
	}
}

// TakeFailures returns the number of callable errors and the first of them
// since the previous call, and resets both.
func (r *Runtime) TakeFailures() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, err := r.failures, r.lastError
	r.failures, r.lastError = 0, nil
	return n, err
}

// Output returns the captured output from Lua print statements.
func (r *Runtime) Output() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.output.String()
}

// ClearOutput clears the captured output buffer.
func (r *Runtime) ClearOutput() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.output.Reset()
}

// Config returns the current runtime configuration.
func (r *Runtime) Config() RuntimeConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// Close releases resources associated with the runtime.
// The runtime should not be used after calling Close.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	return nil
}
