package lua

import (
	"fmt"
	"sync"

	rt "github.com/arnodel/golua/runtime"
)

// HookType represents the lifecycle points a scene script can hook into.
type HookType int

const (
	// HookInvalid represents an invalid or unknown hook type.
	// This is returned by ParseHookType when parsing fails.
	HookInvalid HookType = iota

	// HookStartup is called once after the scene is mounted.
	HookStartup

	// HookShutdown is called once before the scene is dropped, on exit or
	// reload.
	HookShutdown

	// HookDraw is called after every render pass.
	HookDraw
)

// String returns the string representation of a HookType.
func (h HookType) String() string {
	switch h {
	case HookStartup:
		return "startup"
	case HookShutdown:
		return "shutdown"
	case HookDraw:
		return "draw"
	case HookInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// LuaFunctionName returns the global Lua function name for a hook type.
func (h HookType) LuaFunctionName() string {
	return "plot_" + h.String()
}

// ParseHookType parses a string into a HookType.
func ParseHookType(s string) (HookType, error) {
	switch s {
	case "startup":
		return HookStartup, nil
	case "shutdown":
		return HookShutdown, nil
	case "draw":
		return HookDraw, nil
	default:
		return HookInvalid, fmt.Errorf("unknown hook type: %s", s)
	}
}

// HookManager tracks which hooks a script defines and invokes them.
type HookManager struct {
	runtime *Runtime
	hooks   map[HookType]bool
	mu      sync.RWMutex
}

// NewHookManager creates a new HookManager for the given runtime.
func NewHookManager(runtime *Runtime) (*HookManager, error) {
	if runtime == nil {
		return nil, ErrNilRuntime
	}
	return &HookManager{
		runtime: runtime,
		hooks:   make(map[HookType]bool),
	}, nil
}

// AutoRegisterHooks scans the Lua environment for plot_startup,
// plot_shutdown and plot_draw and registers the ones that are functions.
func (hm *HookManager) AutoRegisterHooks() []HookType {
	found := make([]HookType, 0, 3)
	for _, h := range []HookType{HookStartup, HookShutdown, HookDraw} {
		fn := hm.runtime.GetGlobal(h.LuaFunctionName())
		if fn.Type() == rt.FunctionType {
			found = append(found, h)
		}
	}

	hm.mu.Lock()
	for _, h := range found {
		hm.hooks[h] = true
	}
	hm.mu.Unlock()
	return found
}

// IsRegistered returns true if a hook is registered for the given type.
func (hm *HookManager) IsRegistered(hookType HookType) bool {
	hm.mu.RLock()
	defer hm.mu.RUnlock()
	return hm.hooks[hookType]
}

// Call invokes the hook. It is a no-op for unregistered hooks.
func (hm *HookManager) Call(hookType HookType, args ...rt.Value) error {
	if !hm.IsRegistered(hookType) {
		return nil
	}
	if _, err := hm.runtime.CallFunction(hookType.LuaFunctionName(), args...); err != nil {
		return fmt.Errorf("hook %s execution failed: %w", hookType, err)
	}
	return nil
}

// Clear removes all hook registrations.
func (hm *HookManager) Clear() {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.hooks = make(map[HookType]bool)
}
