// Package events routes input events to named handlers with cooperative
// propagation control.
//
// Handlers for one event kind run from the highest priority to the lowest,
// in registration order within a priority. Each may return a
// Result that stops the remaining named handlers, suppresses the default
// handler, or both. This lets several interactive elements share a single
// pointer stream: the first element that claims an event stops it, and the
// default handler (pan or zoom) only runs when nobody prevented it.
package events

import "fmt"

// Kind identifies an input event.
type Kind int

const (
	// PointerDown fires when the primary button is pressed.
	PointerDown Kind = iota
	// Drag fires on pointer movement while the button is held.
	Drag
	// DragEnd fires when the button is released.
	DragEnd
	// Wheel fires on scroll wheel movement.
	Wheel
	// PointerMove fires on pointer movement while no button is held.
	PointerMove
)

// String returns the name of the event kind.
func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case Drag:
		return "drag"
	case DragEnd:
		return "drag-end"
	case Wheel:
		return "wheel"
	case PointerMove:
		return "pointer-move"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the control signal a handler returns. The zero value means the
// handler did not act on the event.
type Result uint8

const (
	// NothingDone marks the event as unhandled; iteration continues.
	NothingDone Result = 1 << iota
	// PreventDefault suppresses the default handler for this trigger.
	PreventDefault
	// StopPropagation skips the remaining named handlers. The default
	// handler still runs unless PreventDefault is also set.
	StopPropagation
)

// Has reports whether every flag in f is set in r.
func (r Result) Has(f Result) bool {
	return r&f == f
}

// Claim is the result of a handler that takes the event for itself.
const Claim = PreventDefault | StopPropagation

// Handler reacts to one event.
type Handler[T any] func(arg T) Result

// Observer is called once per trigger, before the named handlers, when any
// named handler is registered for the kind.
type Observer[T any] func(kind Kind, arg T)

type handlerSet[T any] struct {
	keys       []string
	handlers   map[string]Handler[T]
	priorities map[string]int
}

// insert places key after every key of priority >= p.
func (s *handlerSet[T]) insert(key string, p int) {
	i := len(s.keys)
	for i > 0 && s.priorities[s.keys[i-1]] < p {
		i--
	}
	s.keys = append(s.keys, "")
	copy(s.keys[i+1:], s.keys[i:])
	s.keys[i] = key
	s.priorities[key] = p
}

func (s *handlerSet[T]) remove(key string) {
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	delete(s.priorities, key)
}

// Router dispatches events by kind. It is not safe for concurrent use.
type Router[T any] struct {
	sets     map[Kind]*handlerSet[T]
	defaults map[Kind]Handler[T]
	observer Observer[T]
}

// NewRouter returns an empty Router.
func NewRouter[T any]() *Router[T] {
	return &Router[T]{
		sets:     make(map[Kind]*handlerSet[T]),
		defaults: make(map[Kind]Handler[T]),
	}
}

// Register adds a named handler for kind at priority 0. Registering an
// existing key replaces its handler and keeps its position.
func (r *Router[T]) Register(kind Kind, key string, h Handler[T]) {
	r.RegisterPriority(kind, key, 0, h)
}

// RegisterPriority adds a named handler that runs before every handler of
// a lower priority. Re-registering a key at the same priority keeps its
// position; a new priority moves it behind the keys already there.
func (r *Router[T]) RegisterPriority(kind Kind, key string, priority int, h Handler[T]) {
	set, ok := r.sets[kind]
	if !ok {
		set = &handlerSet[T]{
			handlers:   make(map[string]Handler[T]),
			priorities: make(map[string]int),
		}
		r.sets[kind] = set
	}
	if _, exists := set.handlers[key]; exists && set.priorities[key] != priority {
		set.remove(key)
		set.insert(key, priority)
	} else if !exists {
		set.insert(key, priority)
	}
	set.handlers[key] = h
}

// RegisterDefault sets the fallback handler for kind. Its result is ignored.
func (r *Router[T]) RegisterDefault(kind Kind, h Handler[T]) {
	r.defaults[kind] = h
}

// SetObserver installs fn as the observer. Pass nil to remove it.
func (r *Router[T]) SetObserver(fn Observer[T]) {
	r.observer = fn
}

// Unregister deletes a named handler and reports whether it existed.
func (r *Router[T]) Unregister(kind Kind, key string) bool {
	set, ok := r.sets[kind]
	if !ok {
		return false
	}
	if _, exists := set.handlers[key]; !exists {
		return false
	}
	delete(set.handlers, key)
	set.remove(key)
	return true
}

// Clear removes every named handler. Default handlers and the observer are
// kept.
func (r *Router[T]) Clear() {
	r.sets = make(map[Kind]*handlerSet[T])
}

// Handlers returns the number of named handlers for kind.
func (r *Router[T]) Handlers(kind Kind) int {
	if set, ok := r.sets[kind]; ok {
		return len(set.keys)
	}
	return 0
}

// Trigger dispatches arg to the handlers of kind in priority order and
// returns the combined flags of the named handlers that ran.
func (r *Router[T]) Trigger(kind Kind, arg T) Result {
	var combined Result

	if set, ok := r.sets[kind]; ok && len(set.keys) > 0 {
		if r.observer != nil {
			r.observer(kind, arg)
		}
		// Handlers may register or unregister while we iterate.
		keys := append([]string(nil), set.keys...)
		for _, key := range keys {
			h, ok := set.handlers[key]
			if !ok || h == nil {
				continue
			}
			res := h(arg)
			combined |= res
			if res.Has(StopPropagation) {
				break
			}
		}
	}

	if !combined.Has(PreventDefault) {
		if h := r.defaults[kind]; h != nil {
			h(arg)
		}
	}
	return combined
}
