package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// NamedColors maps CSS color names to their RGBA values.
var NamedColors = map[string]color.RGBA{
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 128, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},

	"gray":      {R: 128, G: 128, B: 128, A: 255},
	"grey":      {R: 128, G: 128, B: 128, A: 255},
	"silver":    {R: 192, G: 192, B: 192, A: 255},
	"maroon":    {R: 128, G: 0, B: 0, A: 255},
	"olive":     {R: 128, G: 128, B: 0, A: 255},
	"lime":      {R: 0, G: 255, B: 0, A: 255},
	"teal":      {R: 0, G: 128, B: 128, A: 255},
	"navy":      {R: 0, G: 0, B: 128, A: 255},
	"purple":    {R: 128, G: 0, B: 128, A: 255},
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"pink":      {R: 255, G: 192, B: 203, A: 255},
	"brown":     {R: 165, G: 42, B: 42, A: 255},
	"gold":      {R: 255, G: 215, B: 0, A: 255},
	"indigo":    {R: 75, G: 0, B: 130, A: 255},
	"crimson":   {R: 220, G: 20, B: 60, A: 255},
	"darkblue":  {R: 0, G: 0, B: 139, A: 255},
	"darkgreen": {R: 0, G: 100, B: 0, A: 255},
	"darkred":   {R: 139, G: 0, B: 0, A: 255},
	"lightblue": {R: 173, G: 216, B: 230, A: 255},
	"lightgray": {R: 211, G: 211, B: 211, A: 255},
	"lightgrey": {R: 211, G: 211, B: 211, A: 255},
	"darkgray":  {R: 169, G: 169, B: 169, A: 255},
	"darkgrey":  {R: 169, G: 169, B: 169, A: 255},

	"transparent": {R: 0, G: 0, B: 0, A: 0},
}

// ParseColor parses a color string and returns an RGBA color.
// Supported formats:
//   - Named colors: "red", "blue", "green", etc.
//   - Hex formats: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA"
//   - RGB function: "rgb(255, 0, 0)"
//   - RGBA function: "rgba(255, 0, 0, 0.5)" or "rgba(255, 0, 0, 128)"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	lower := strings.ToLower(s)
	if clr, ok := NamedColors[lower]; ok {
		return clr, nil
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[5:len(s)-1], 4)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[4:len(s)-1], 3)
	}
	return color.RGBA{}, fmt.Errorf("unrecognized color format: %q", s)
}

// parseHexColor parses the digits of a hex color, widening the short forms.
func parseHexColor(s string) (color.RGBA, error) {
	switch len(s) {
	case 3, 4:
		var wide strings.Builder
		for _, c := range s {
			wide.WriteRune(c)
			wide.WriteRune(c)
		}
		s = wide.String()
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length: %d", len(s))
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex component %q: %w", s[2*i:2*i+2], err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// parseFunc parses the comma separated arguments of rgb() or rgba().
func parseFunc(content string, n int) (color.RGBA, error) {
	parts := strings.Split(content, ",")
	if len(parts) != n {
		return color.RGBA{}, fmt.Errorf("expected %d values, got %d", n, len(parts))
	}

	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		p = strings.TrimSpace(p)
		var err error
		if i == 3 {
			ch[i], err = parseAlphaComponent(p)
		} else {
			var v uint64
			v, err = strconv.ParseUint(p, 10, 8)
			ch[i] = uint8(v)
		}
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// parseAlphaComponent accepts both 0-255 integer and 0.0-1.0 float formats.
func parseAlphaComponent(s string) (uint8, error) {
	if strings.Contains(s, ".") {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		val = max(0, min(val, 1))
		return uint8(val*255 + 0.5), nil
	}
	val, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(val), nil
}

// ToHex converts a color to a hex string with # prefix.
// Format: #RRGGBB or #RRGGBBAA if alpha is not 255.
func ToHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
