package lua

import (
	"fmt"
	"math"

	rt "github.com/arnodel/golua/runtime"
)

// Func adapts a Lua function of one number to a Go function. A failing call
// or a non-numeric result yields NaN and is recorded for TakeFailures.
func (r *Runtime) Func(fn rt.Value) (func(float64) float64, error) {
	if fn.Type() != rt.FunctionType {
		return nil, fmt.Errorf("curve function: %w", ErrNotCallable)
	}
	return func(x float64) float64 {
		v, err := r.Call(fn, rt.FloatValue(x))
		if err != nil {
			r.fail(err)
			return math.NaN()
		}
		if v == rt.NilValue {
			return math.NaN()
		}
		y, ok := ToFloat(v)
		if !ok {
			r.fail(fmt.Errorf("%w: want a number, got %v", ErrBadResult, v.Type()))
			return math.NaN()
		}
		return y
	}, nil
}

// MultiFunc adapts a Lua function returning a number or an array of numbers.
// Failures yield no values.
func (r *Runtime) MultiFunc(fn rt.Value) (func(float64) []float64, error) {
	if fn.Type() != rt.FunctionType {
		return nil, fmt.Errorf("candidate function: %w", ErrNotCallable)
	}
	return func(x float64) []float64 {
		v, err := r.Call(fn, rt.FloatValue(x))
		if err != nil {
			r.fail(err)
			return nil
		}
		if y, ok := ToFloat(v); ok {
			return []float64{y}
		}
		if t, ok := v.TryTable(); ok {
			return Floats(t)
		}
		return nil
	}, nil
}

// PairFunc adapts a Lua function of two numbers returning a {x, y} table.
// ok is false when the function returns nil, fails or returns anything else.
func (r *Runtime) PairFunc(fn rt.Value) (func(x, y float64) (float64, float64, bool), error) {
	if fn.Type() != rt.FunctionType {
		return nil, fmt.Errorf("constraint function: %w", ErrNotCallable)
	}
	return func(x, y float64) (float64, float64, bool) {
		v, err := r.Call(fn, rt.FloatValue(x), rt.FloatValue(y))
		if err != nil {
			r.fail(err)
			return 0, 0, false
		}
		t, ok := v.TryTable()
		if !ok {
			return 0, 0, false
		}
		p := Floats(t)
		if len(p) < 2 {
			return 0, 0, false
		}
		return p[0], p[1], true
	}, nil
}

// BufferFunc adapts a Lua function that receives the visible range
// (xmin, xmax, ymin, ymax) and returns a flat {x0, y0, x1, y1, ...} table.
func (r *Runtime) BufferFunc(fn rt.Value) (func(xmin, xmax, ymin, ymax float64) []float64, error) {
	if fn.Type() != rt.FunctionType {
		return nil, fmt.Errorf("points function: %w", ErrNotCallable)
	}
	return func(xmin, xmax, ymin, ymax float64) []float64 {
		v, err := r.Call(fn, rt.FloatValue(xmin), rt.FloatValue(xmax), rt.FloatValue(ymin), rt.FloatValue(ymax))
		if err != nil {
			r.fail(err)
			return nil
		}
		t, ok := v.TryTable()
		if !ok {
			return nil
		}
		return Floats(t)
	}, nil
}

// Callback adapts a Lua function of two numbers whose result is ignored.
func (r *Runtime) Callback(fn rt.Value) (func(x, y float64), error) {
	if fn.Type() != rt.FunctionType {
		return nil, fmt.Errorf("callback: %w", ErrNotCallable)
	}
	return func(x, y float64) {
		if _, err := r.Call(fn, rt.FloatValue(x), rt.FloatValue(y)); err != nil {
			r.fail(err)
		}
	}, nil
}

// ToFloat converts a Lua integer or float.
func ToFloat(v rt.Value) (float64, bool) {
	if f, ok := v.TryFloat(); ok {
		return f, true
	}
	if i, ok := v.TryInt(); ok {
		return float64(i), true
	}
	return 0, false
}

// Floats reads the array part of t, stopping at the first nil. Entries that
// are not numbers become NaN.
func Floats(t *rt.Table) []float64 {
	var out []float64
	for i := int64(1); ; i++ {
		v := t.Get(rt.IntValue(i))
		if v == rt.NilValue {
			break
		}
		f, ok := ToFloat(v)
		if !ok {
			f = math.NaN()
		}
		out = append(out, f)
	}
	return out
}
