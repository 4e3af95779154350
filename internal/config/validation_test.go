package config

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	result := NewValidator().Validate(&cfg)
	if !result.IsValid() {
		t.Fatalf("default config invalid: %v", result.Error())
	}
	if len(result.Warnings) != 0 {
		t.Errorf("default config warnings: %v", result.Warnings)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidatorErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window.width"},
		{"huge height", func(c *Config) { c.Window.Height = 20000 }, "window.height"},
		{"scale too small", func(c *Config) { c.View.Scale = 0.001 }, "view.scale"},
		{"scale NaN", func(c *Config) { c.View.Scale = math.NaN() }, "view.scale"},
		{"zoom factor one", func(c *Config) { c.View.ZoomFactor = 1 }, "view.zoom_factor"},
		{"zoom factor infinite", func(c *Config) { c.View.ZoomFactor = math.Inf(1) }, "view.zoom_factor"},
		{"too few steps", func(c *Config) { c.View.Steps = 1 }, "view.steps"},
		{"center NaN", func(c *Config) { c.View.Center[1] = math.NaN() }, "view.center[1]"},
		{"font size zero", func(c *Config) { c.Theme.FontSize = 0 }, "theme.font_size"},
		{"negative hover radius", func(c *Config) { c.Theme.HoverRadius = -1 }, "theme.hover_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			result := NewValidator().Validate(&cfg)
			if result.IsValid() {
				t.Fatal("expected validation errors")
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", result.Errors[0].Field, tt.field)
			}
			if err := result.Error(); err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Error() = %v, want it to name %s", err, tt.field)
			}
		})
	}
}

func TestValidatorWarnings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty title", func(c *Config) { c.Window.Title = " " }, "window.title"},
		{"fast zoom", func(c *Config) { c.View.ZoomFactor = 3 }, "view.zoom_factor"},
		{"no hover", func(c *Config) { c.Theme.HoverRadius = 0 }, "theme.hover_radius"},
		{"transparent background", func(c *Config) { c.Theme.Background = color.RGBA{} }, "theme.background"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			result := NewValidator().Validate(&cfg)
			if !result.IsValid() {
				t.Fatalf("unexpected errors: %v", result.Error())
			}
			if len(result.Warnings) != 1 || result.Warnings[0].Field != tt.field {
				t.Errorf("warnings = %v, want one for %s", result.Warnings, tt.field)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	result := NewValidator().Validate(nil)
	if result.IsValid() {
		t.Error("nil config should be invalid")
	}
}

func TestValidationResultMerge(t *testing.T) {
	a := &ValidationResult{}
	a.AddError("a", "bad")
	b := &ValidationResult{}
	b.AddError("b", "worse")
	b.AddWarning("c", "odd")

	a.Merge(b)
	a.Merge(nil)

	if len(a.Errors) != 2 || len(a.Warnings) != 1 {
		t.Errorf("merged = %+v", a)
	}
	err := a.Error()
	if got := err.Error(); got != "validation failed: a: bad; b: worse" {
		t.Errorf("Error() = %q", got)
	}
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "a" {
		t.Errorf("errors.As found %+v", ve)
	}
}
