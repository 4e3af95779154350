package config

import (
	"image/color"
	"testing"

	rt "github.com/arnodel/golua/runtime"
)

func luaTable(entries map[string]rt.Value) *rt.Table {
	t := rt.NewTable()
	for k, v := range entries {
		t.Set(rt.StringValue(k), v)
	}
	return t
}

func luaArray(values ...rt.Value) rt.Value {
	t := rt.NewTable()
	for i, v := range values {
		t.Set(rt.IntValue(int64(i+1)), v)
	}
	return rt.TableValue(t)
}

func TestApplyTable(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyTable(&cfg, luaTable(map[string]rt.Value{
		"width":        rt.IntValue(1024),
		"height":       rt.FloatValue(768.9),
		"title":        rt.StringValue("circle"),
		"resizable":    rt.BoolValue(false),
		"scale":        rt.IntValue(2),
		"zoom_factor":  rt.FloatValue(1.1),
		"steps":        rt.IntValue(500),
		"center":       luaArray(rt.IntValue(1), rt.FloatValue(-0.5)),
		"font_size":    rt.IntValue(18),
		"hover_radius": rt.FloatValue(6.5),
		"antialias":    rt.BoolValue(false),
		"background":   rt.StringValue("#000"),
		"axis_color":   rt.StringValue("white"),
		"grid_color":   rt.StringValue("rgb(50, 50, 50)"),
		"label_color":  rt.StringValue("rgba(200, 200, 200, 0.5)"),
		"unknown_key":  rt.StringValue("ignored"),
	}))
	if err != nil {
		t.Fatalf("ApplyTable: %v", err)
	}

	want := Config{
		Window: WindowConfig{Width: 1024, Height: 768, Title: "circle", Resizable: false},
		View:   ViewConfig{Scale: 2, ZoomFactor: 1.1, Steps: 500, Center: [2]float64{1, -0.5}},
		Theme: ThemeConfig{
			Background:  color.RGBA{A: 255},
			Axis:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
			GridLine:    color.RGBA{R: 50, G: 50, B: 50, A: 255},
			Label:       color.RGBA{R: 200, G: 200, B: 200, A: 128},
			FontSize:    18,
			HoverRadius: 6.5,
			AntiAlias:   false,
		},
	}
	if cfg != want {
		t.Errorf("ApplyTable result:\n got %+v\nwant %+v", cfg, want)
	}
}

func TestApplyTableKeepsMissingKeys(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyTable(&cfg, luaTable(map[string]rt.Value{"title": rt.StringValue("only title")})); err != nil {
		t.Fatalf("ApplyTable: %v", err)
	}
	want := DefaultConfig()
	want.Window.Title = "only title"
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}

	// wrong types are skipped, not errors
	if err := ApplyTable(&cfg, luaTable(map[string]rt.Value{"width": rt.StringValue("wide")})); err != nil {
		t.Errorf("ApplyTable: %v", err)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("Width = %d", cfg.Window.Width)
	}

	if err := ApplyTable(nil, nil); err != nil {
		t.Errorf("ApplyTable(nil, nil) = %v", err)
	}
}

func TestApplyTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]rt.Value
	}{
		{"center not a table", map[string]rt.Value{"center": rt.IntValue(1)}},
		{"center too short", map[string]rt.Value{"center": luaArray(rt.IntValue(1))}},
		{"bad background", map[string]rt.Value{"background": rt.StringValue("#12")}},
		{"bad axis color", map[string]rt.Value{"axis_color": rt.StringValue("nope")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := ApplyTable(&cfg, luaTable(tt.entries)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
