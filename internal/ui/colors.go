package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// parseHex converts "#RRGGBB" (the leading # is optional) into a tcell color.
func parseHex(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", hex)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// Palette caches parsed data colors. Bad values fall back to a default so a typo
// in a data file never stops rendering.
type Palette struct {
	fallback tcell.Color
	colors   map[string]tcell.Color
}

// NewPalette creates a palette that maps unparseable colors to fallback.
func NewPalette(fallback tcell.Color) *Palette {
	return &Palette{fallback: fallback, colors: make(map[string]tcell.Color)}
}

// Color returns the tcell color for hex.
func (p *Palette) Color(hex string) tcell.Color {
	if c, ok := p.colors[hex]; ok {
		return c
	}
	c, err := parseHex(hex)
	if err != nil {
		c = p.fallback
	}
	p.colors[hex] = c
	return c
}
