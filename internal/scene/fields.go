package scene

import (
	"fmt"
	"image/color"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-easyplot/internal/config"
	"github.com/opd-ai/go-easyplot/internal/lua"
)

// fields reads the option table passed to a plot.* function. A nil table
// behaves as an empty one.
type fields struct {
	fn    string
	table *rt.Table
}

func (f fields) get(key string) rt.Value {
	if f.table == nil {
		return rt.NilValue
	}
	return f.table.Get(rt.StringValue(key))
}

func (f fields) has(key string) bool {
	return f.get(key) != rt.NilValue
}

func (f fields) errorf(key, format string, args ...any) error {
	return fmt.Errorf("plot.%s: %s: %s", f.fn, key, fmt.Sprintf(format, args...))
}

func (f fields) float(key string, def float64) (float64, error) {
	v := f.get(key)
	if v == rt.NilValue {
		return def, nil
	}
	n, ok := lua.ToFloat(v)
	if !ok {
		return 0, f.errorf(key, "want a number, got %v", v.Type())
	}
	return n, nil
}

func (f fields) int(key string, def int) (int, error) {
	n, err := f.float(key, float64(def))
	return int(n), err
}

func (f fields) bool(key string, def bool) (bool, error) {
	v := f.get(key)
	if v == rt.NilValue {
		return def, nil
	}
	b, ok := v.TryBool()
	if !ok {
		return false, f.errorf(key, "want a boolean, got %v", v.Type())
	}
	return b, nil
}

func (f fields) string(key, def string) (string, error) {
	v := f.get(key)
	if v == rt.NilValue {
		return def, nil
	}
	s, ok := v.TryString()
	if !ok {
		return "", f.errorf(key, "want a string, got %v", v.Type())
	}
	return s, nil
}

func (f fields) color(key string) (color.RGBA, error) {
	s, err := f.string(key, "")
	if err != nil || s == "" {
		return color.RGBA{}, err
	}
	c, err := config.ParseColor(s)
	if err != nil {
		return color.RGBA{}, f.errorf(key, "%v", err)
	}
	return c, nil
}

// function returns the function stored at key, or NilValue. Anything else
// stored there is an error.
func (f fields) function(key string) (rt.Value, error) {
	v := f.get(key)
	if v == rt.NilValue || v.Type() == rt.FunctionType {
		return v, nil
	}
	return rt.NilValue, f.errorf(key, "want a function, got %v", v.Type())
}

// pair reads a {a, b} table.
func (f fields) pair(key string) ([2]float64, bool, error) {
	v := f.get(key)
	if v == rt.NilValue {
		return [2]float64{}, false, nil
	}
	t, ok := v.TryTable()
	if !ok {
		return [2]float64{}, false, f.errorf(key, "want a {x, y} table, got %v", v.Type())
	}
	p := lua.Floats(t)
	if len(p) < 2 {
		return [2]float64{}, false, f.errorf(key, "want two numbers")
	}
	return [2]float64{p[0], p[1]}, true, nil
}
