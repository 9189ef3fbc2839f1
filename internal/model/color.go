package model

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned when a color string matches neither the
// hex grammar (#RRGGBB or #RRGGBBAA) nor the decimal grammar (R,G,B or R,G,B,A).
// This error is surfaced at argument-parsing time, before any file is touched.
var ErrInvalidColorFormat = errors.New("invalid color format: use #RRGGBB[AA] or R,G,B[,A]")

// Color is a watermark color with 8-bit red, green, blue, and alpha channels.
// Alpha follows the straight (non-premultiplied) convention so it can be
// handed to image/color.NRGBA directly.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// ParseColor converts a user-supplied color string into a Color.
// Two grammars are accepted:
//   - Hex: "#RRGGBB" (alpha defaults to 255) or "#RRGGBBAA"
//   - Decimal: "R,G,B" (alpha defaults to 255) or "R,G,B,A", channels in [0,255]
//
// Any other shape, wrong channel count, or non-numeric component returns
// ErrInvalidColorFormat wrapped with the offending input.
func ParseColor(s string) (Color, error) {
	text := strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(text, "#"):
		return parseHexColor(text[1:], s)
	case strings.Contains(text, ","):
		return parseDecimalColor(text, s)
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
}

// parseHexColor parses the hex digits after the leading '#'.
func parseHexColor(hex, original string) (Color, error) {
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, original)
	}

	channels := make([]uint8, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, original)
		}
		channels = append(channels, uint8(v))
	}

	c := Color{R: channels[0], G: channels[1], B: channels[2], A: 255}
	if len(channels) == 4 {
		c.A = channels[3]
	}
	return c, nil
}

// parseDecimalColor parses the comma-separated decimal grammar.
func parseDecimalColor(text, original string) (Color, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, original)
	}

	channels := make([]uint8, 0, 4)
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, original)
		}
		channels = append(channels, uint8(v))
	}

	c := Color{R: channels[0], G: channels[1], B: channels[2], A: 255}
	if len(channels) == 4 {
		c.A = channels[3]
	}
	return c, nil
}

// NRGBA converts the Color to the standard library representation used by
// the text drawer.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// String returns the canonical hex form "#RRGGBBAA".
// This is used for the run banner and report output.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
