// Package render hosts a plot engine in an Ebiten window.
package render

import (
	"fmt"
	"image/color"
)

// Config holds the window options.
type Config struct {
	// Width is the window width in host pixels.
	Width int
	// Height is the window height in host pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable lets the user resize the window. The view keeps its center
	// and scale across resizes.
	Resizable bool
	// AntiAlias smooths strokes and circles.
	AntiAlias bool
	// Background fills the window before the first render.
	Background color.RGBA
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Title:      "easyplot",
		Resizable:  true,
		AntiAlias:  true,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width or Height are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return nil
}
