package plot

import (
	"math"
	"testing"
)

func TestTooltipOrigin(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"fits", 100, 100, 100, 100},
		{"right edge", 790, 100, 736, 100},
		{"bottom edge", 100, 590, 100, 566},
		{"corner", 790, 590, 740, 570},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tooltipOrigin(tt.x, tt.y, 50, 20, 4, 800, 600)
			if x != tt.wx || y != tt.wy {
				t.Errorf("tooltipOrigin = (%v, %v), want (%v, %v)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestHoverPrecision(t *testing.T) {
	tests := []struct {
		scale float64
		want  int
	}{
		{1, 2},
		{0.4, 3},
		{0.01, 4},
		{100, 4},
	}
	for _, tt := range tests {
		if got := hoverPrecision(tt.scale); got != tt.want {
			t.Errorf("hoverPrecision(%v) = %d, want %d", tt.scale, got, tt.want)
		}
	}
}

func TestFormatPoint(t *testing.T) {
	if got := formatPoint(1.234, -0.5, 2); got != "(1.23, -0.50)" {
		t.Errorf("formatPoint = %q", got)
	}
	if got := formatPoint(math.NaN(), 1, 1); got != "(-, 1.0)" {
		t.Errorf("formatPoint with NaN = %q", got)
	}
}
