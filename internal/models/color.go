package models

import (
	"fmt"
	"strconv"
	"strings"
)

// RGBA is an 8-bit-per-channel colour.
type RGBA struct {
	R, G, B, A uint8
}

// FallbackColor is used wherever a stored hex string cannot be parsed.
var FallbackColor = RGBA{R: 0x8E, G: 0x8E, B: 0x93, A: 0xFF}

// ParseHex parses "RRGGBB" or "RRGGBBAA". Surrounding whitespace and '#'
// characters are ignored.
func ParseHex(s string) (RGBA, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "#", "")

	if len(s) != 6 && len(s) != 8 {
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, false
	}

	if len(s) == 6 {
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// ColorOrFallback is ParseHex with FallbackColor for invalid input.
func ColorOrFallback(s string) RGBA {
	if c, ok := ParseHex(s); ok {
		return c
	}
	return FallbackColor
}

// Hex formats the colour as #RRGGBB, or #RRGGBBAA when not fully opaque.
func (c RGBA) Hex() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
