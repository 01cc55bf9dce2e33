package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA value as written in filter scripts. Equality is exact on
// all four channels.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Opaque reports whether the alpha channel is fully opaque.
func (c Color) Opaque() bool {
	return c.A == 255
}

// Hex renders the color as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseHexColor parses #rrggbb or #rrggbbaa; the leading '#' is optional.
func ParseHexColor(value string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("color %q must have 6 or 8 hex digits", value)
	}

	channels := make([]uint8, 0, 4)
	for i := 0; i < len(raw); i += 2 {
		n, err := strconv.ParseUint(raw[i:i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: invalid hex digits %q", value, raw[i:i+2])
		}
		channels = append(channels, uint8(n))
	}

	if len(channels) == 3 {
		return RGB(channels[0], channels[1], channels[2]), nil
	}
	return RGBA(channels[0], channels[1], channels[2], channels[3]), nil
}
