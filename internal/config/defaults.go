package config

import (
	"image/color"
)

// Default values for configuration options.
const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultTitle       = "easyplot"
	DefaultScale       = 0.4
	DefaultZoomFactor  = 1.03
	DefaultSteps       = 200
	DefaultFontSize    = 14.0
	DefaultHoverRadius = 12.0
)

// Limits enforced by the Validator.
const (
	MinScale = 0.01
	MaxScale = 100.0
	MinSteps = 2
	MaxSteps = 100000
)

// Default colors.
var (
	DefaultBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultAxis       = color.RGBA{A: 255}
	DefaultGridLine   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	DefaultLabel      = color.RGBA{R: 64, G: 64, B: 64, A: 255}
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Title:     DefaultTitle,
			Resizable: true,
		},
		View: ViewConfig{
			Scale:      DefaultScale,
			ZoomFactor: DefaultZoomFactor,
			Steps:      DefaultSteps,
		},
		Theme: ThemeConfig{
			Background:  DefaultBackground,
			Axis:        DefaultAxis,
			GridLine:    DefaultGridLine,
			Label:       DefaultLabel,
			FontSize:    DefaultFontSize,
			HoverRadius: DefaultHoverRadius,
			AntiAlias:   true,
		},
	}
}
