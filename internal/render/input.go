package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the per-tick pointer state the game consumes. Positions are in
// device pixels.
type Input interface {
	CursorPosition() (x, y int)
	// Pressed and Released report edges of the primary button this tick.
	Pressed() bool
	Released() bool
	// Wheel returns the vertical wheel movement of this tick.
	Wheel() float64
	// Reset reports that the user asked for the initial view.
	Reset() bool
}

// ebitenInput reads Ebiten's input state.
type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) Pressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) Released() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (ebitenInput) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

func (ebitenInput) Reset() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyHome) || inpututil.IsKeyJustPressed(ebiten.Key0)
}
