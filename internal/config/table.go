package config

import (
	"fmt"
	"image/color"

	rt "github.com/arnodel/golua/runtime"
)

// ApplyTable overlays the entries of a Lua plot.config table on cfg. Keys the
// table leaves out keep their current value; unknown keys are ignored.
func ApplyTable(cfg *Config, table *rt.Table) error {
	if cfg == nil || table == nil {
		return nil
	}

	if val := getTableInt(table, "width"); val != nil {
		cfg.Window.Width = *val
	}
	if val := getTableInt(table, "height"); val != nil {
		cfg.Window.Height = *val
	}
	if val := getTableString(table, "title"); val != nil {
		cfg.Window.Title = *val
	}
	if val := getTableBool(table, "resizable"); val != nil {
		cfg.Window.Resizable = *val
	}

	if val := getTableFloat(table, "scale"); val != nil {
		cfg.View.Scale = *val
	}
	if val := getTableFloat(table, "zoom_factor"); val != nil {
		cfg.View.ZoomFactor = *val
	}
	if val := getTableInt(table, "steps"); val != nil {
		cfg.View.Steps = *val
	}
	if val := table.Get(rt.StringValue("center")); val != rt.NilValue {
		t, ok := val.TryTable()
		if !ok {
			return fmt.Errorf("invalid center: want a {x, y} table, got %v", val.Type())
		}
		x, y := getIndexFloat(t, 1), getIndexFloat(t, 2)
		if x == nil || y == nil {
			return fmt.Errorf("invalid center: want two numbers")
		}
		cfg.View.Center = [2]float64{*x, *y}
	}

	if val := getTableFloat(table, "font_size"); val != nil {
		cfg.Theme.FontSize = *val
	}
	if val := getTableFloat(table, "hover_radius"); val != nil {
		cfg.Theme.HoverRadius = *val
	}
	if val := getTableBool(table, "antialias"); val != nil {
		cfg.Theme.AntiAlias = *val
	}

	return applyColors(cfg, table)
}

func applyColors(cfg *Config, table *rt.Table) error {
	colorFields := []struct {
		key    string
		target *color.RGBA
	}{
		{"background", &cfg.Theme.Background},
		{"axis_color", &cfg.Theme.Axis},
		{"grid_color", &cfg.Theme.GridLine},
		{"label_color", &cfg.Theme.Label},
	}

	for _, cf := range colorFields {
		if val := getTableString(table, cf.key); val != nil {
			c, err := ParseColor(*val)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", cf.key, err)
			}
			*cf.target = c
		}
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if b, ok := val.TryBool(); ok {
		return &b
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if s, ok := val.TryString(); ok {
		return &s
	}
	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableFloat(table *rt.Table, key string) *float64 {
	return toFloat(table.Get(rt.StringValue(key)))
}

func getIndexFloat(table *rt.Table, i int64) *float64 {
	return toFloat(table.Get(rt.IntValue(i)))
}

func toFloat(val rt.Value) *float64 {
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}
	if n, ok := val.TryFloat(); ok {
		return &n
	}
	return nil
}

// getTableInt retrieves an int value from a Lua table, truncating floats.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}
