package surface

import "image/color"

// OpKind names a recorded draw call.
type OpKind string

// Recorded operations.
const (
	OpClear        OpKind = "clear"
	OpLineStrip    OpKind = "line-strip"
	OpLines        OpKind = "lines"
	OpFillRect     OpKind = "fill-rect"
	OpFillCircle   OpKind = "fill-circle"
	OpStrokeCircle OpKind = "stroke-circle"
	OpText         OpKind = "text"
)

// Op is one recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind     OpKind
	Vertices []float64
	Style    Style
	X, Y     float64
	W, H     float64
	R        float64
	Text     string
	Color    color.RGBA
}

// Recorder implements Raster and Vector by recording every call. Text is
// measured with a fixed advance so layout is deterministic.
type Recorder struct {
	ops []Op
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear records a clear and drops every earlier op, like a real surface.
func (r *Recorder) Clear(bg color.RGBA) {
	r.ops = append(r.ops[:0], Op{Kind: OpClear, Color: bg})
}

func (r *Recorder) DrawLineStrip(vertices []float64, style Style) {
	r.ops = append(r.ops, Op{Kind: OpLineStrip, Vertices: append([]float64(nil), vertices...), Style: style})
}

func (r *Recorder) DrawLines(vertices []float64, style Style) {
	r.ops = append(r.ops, Op{Kind: OpLines, Vertices: append([]float64(nil), vertices...), Style: style})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, X: cx, Y: cy, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpStrokeCircle, X: cx, Y: cy, R: radius, W: width, Color: c})
}

func (r *Recorder) DrawText(s string, x, y, size float64, c color.RGBA) {
	r.ops = append(r.ops, Op{Kind: OpText, Text: s, X: x, Y: y, H: size, Color: c})
}

// MeasureText returns 0.6 em per rune and 1.25 em of height.
func (r *Recorder) MeasureText(s string, size float64) (w, h float64) {
	return float64(len([]rune(s))) * size * 0.6, size * 1.25
}

// Ops returns the operations recorded since the last Clear.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Filter returns the recorded operations of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings of every recorded text op.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Reset drops all recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
