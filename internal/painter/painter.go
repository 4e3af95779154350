// Package painter implements the painter's algorithm over registered draw
// callbacks.
//
// Elements register a factory under a stable key and a z-index. On the first
// render pass after registration the factory is called once with the
// painter's argument and the resulting draw function is memoized; every pass
// then calls the draw functions from the lowest z-index to the highest.
// Entries with equal z-index keep their registration order.
package painter

import (
	"log/slog"
	"sort"
)

// DrawFunc draws one element for the current frame.
type DrawFunc func()

// Factory builds the DrawFunc of an element. It receives the argument passed
// to Render on the pass that first needs the element.
type Factory[T any] func(arg T) DrawFunc

type entry struct {
	key    string
	zIndex int
	seq    uint64
}

// Painter is a z-ordered registry of draw factories. It is not safe for
// concurrent use; the engine drives it from a single thread.
type Painter[T any] struct {
	factories map[string]Factory[T]
	draws     map[string]DrawFunc
	order     []entry
	seq       uint64
	sorted    bool
	logger    *slog.Logger
}

// New returns an empty Painter. A nil logger discards messages.
func New[T any](logger *slog.Logger) *Painter[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Painter[T]{
		factories: make(map[string]Factory[T]),
		draws:     make(map[string]DrawFunc),
		sorted:    true,
		logger:    logger,
	}
}

// Register inserts an element or replaces the z-index and factory of an
// existing key. The memoized draw function of an existing key is kept; use
// Invalidate to force the new factory to run.
func (p *Painter[T]) Register(key string, zIndex int, factory Factory[T]) {
	p.factories[key] = factory
	for i := range p.order {
		if p.order[i].key == key {
			if p.order[i].zIndex != zIndex {
				p.order[i].zIndex = zIndex
				p.sorted = false
			}
			return
		}
	}
	p.seq++
	p.order = append(p.order, entry{key: key, zIndex: zIndex, seq: p.seq})
	p.sorted = false
}

// Unregister removes an element. It reports whether the key was present.
func (p *Painter[T]) Unregister(key string) bool {
	for i := range p.order {
		if p.order[i].key == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			delete(p.factories, key)
			delete(p.draws, key)
			return true
		}
	}
	return false
}

// Invalidate drops the memoized draw function of key so the next pass calls
// its factory again.
func (p *Painter[T]) Invalidate(key string) {
	delete(p.draws, key)
}

// Render calls every draw function in z-order. Draw functions are created
// from their factories on first use. A key with a nil factory is logged and
// skipped for this pass.
func (p *Painter[T]) Render(arg T) {
	if !p.sorted {
		sortEntries(p.order)
		p.sorted = true
	}

	for _, e := range p.order {
		draw, ok := p.draws[e.key]
		if !ok {
			factory := p.factories[e.key]
			if factory == nil {
				p.logger.Warn("missing render factory", "key", e.key)
				continue
			}
			draw = factory(arg)
			if draw == nil {
				p.logger.Warn("render factory returned no draw function", "key", e.key)
				continue
			}
			p.draws[e.key] = draw
		}
		draw()
	}
}

// Keys returns the registered keys in paint order.
func (p *Painter[T]) Keys() []string {
	keys := make([]string, 0, len(p.order))
	ordered := make([]entry, len(p.order))
	copy(ordered, p.order)
	sortEntries(ordered)
	for _, e := range ordered {
		keys = append(keys, e.key)
	}
	return keys
}

func sortEntries(es []entry) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].zIndex != es[j].zIndex {
			return es[i].zIndex < es[j].zIndex
		}
		return es[i].seq < es[j].seq
	})
}

// Len returns the number of registered elements.
func (p *Painter[T]) Len() int {
	return len(p.order)
}

// Clear drops every entry and memoized draw function. Call it whenever the
// draw surface is recreated.
func (p *Painter[T]) Clear() {
	p.factories = make(map[string]Factory[T])
	p.draws = make(map[string]DrawFunc)
	p.order = nil
	p.sorted = true
}
