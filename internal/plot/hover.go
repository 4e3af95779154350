package plot

import (
	"github.com/opd-ai/go-easyplot/internal/coords"
	"github.com/opd-ai/go-easyplot/internal/engine"
	"github.com/opd-ai/go-easyplot/internal/events"
	"github.com/opd-ai/go-easyplot/internal/points"
	"github.com/opd-ai/go-easyplot/internal/viewport"
)

// hoverState is the result of the latest hover query of one primitive. It is
// shown only while it belongs to the current pointer move and view.
type hoverState struct {
	seq   uint64
	rng   coords.Range
	match points.Match
	ok    bool
}

// claim stores a query result. A hit stops propagation so no later
// primitive shows a second tooltip for the same move.
func (h *hoverState) claim(s *viewport.State, m points.Match, ok bool) events.Result {
	h.seq = s.MoveSeq
	h.rng = s.Range
	h.match = m
	h.ok = ok
	if ok {
		return events.StopPropagation
	}
	return events.NothingDone
}

func (h *hoverState) visible(s *viewport.State) bool {
	return h.ok && h.seq == s.MoveSeq && h.rng == s.Range
}

func (h *hoverState) draw(f *engine.Frame) {
	if !h.visible(f.State) {
		return
	}
	m := h.match
	sx, sy := f.State.GridToScreen(m.X, m.Y)
	drawDot(f, sx, sy, hoverDotRadius)
	drawTooltip(f, formatPoint(m.X, m.Y, hoverPrecision(f.State.Scale)), sx, sy)
}
