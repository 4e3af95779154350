// Package config holds the window, view and theme settings of a plot scene.
//
// A scene script fills these through its plot.config table; everything it
// leaves out keeps the value from DefaultConfig.
package config

import (
	"image/color"
)

// Config is the complete scene configuration.
type Config struct {
	Window WindowConfig
	View   ViewConfig
	Theme  ThemeConfig
}

// WindowConfig controls the host window.
type WindowConfig struct {
	// Width is the window width in host pixels.
	Width int
	// Height is the window height in host pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable lets the user resize the window.
	Resizable bool
}

// ViewConfig controls the initial viewport and sampling.
type ViewConfig struct {
	// Scale is the initial zoom. One grid unit spans Height/2*Scale pixels.
	Scale float64
	// ZoomFactor is applied once per wheel notch.
	ZoomFactor float64
	// Steps is the base number of samples per curve.
	Steps int
	// Center is the grid point shown at the middle of the surface.
	Center [2]float64
}

// ThemeConfig controls colors and text.
type ThemeConfig struct {
	Background color.RGBA
	Axis       color.RGBA
	GridLine   color.RGBA
	Label      color.RGBA
	// FontSize is in host pixels.
	FontSize float64
	// HoverRadius is the hover tolerance in host pixels.
	HoverRadius float64
	// AntiAlias smooths strokes on the window surface.
	AntiAlias bool
}

// Validate checks cfg with a default Validator.
func (c *Config) Validate() error {
	return NewValidator().Validate(c).Error()
}
