package color

import (
	"fmt"
	"strings"
)

// Format selects the textual notation produced by Render.
type Format int

const (
	FormatHex Format = iota
	FormatRGB
	FormatRGBA
	FormatHSL
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatHex, FormatRGB, FormatRGBA, FormatHSL}

// String returns the config/flag name of the format.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	case FormatHSL:
		return "hsl"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name (hex, rgb, rgba, hsl) to a Format.
// Matching is case-insensitive; the empty string selects FormatHex.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hex":
		return FormatHex, nil
	case "rgb":
		return FormatRGB, nil
	case "rgba":
		return FormatRGBA, nil
	case "hsl":
		return FormatHSL, nil
	default:
		return FormatHex, fmt.Errorf("unknown color format %q (want hex, rgb, rgba or hsl)", name)
	}
}

// Render formats c using f.
func Render(c RGB, f Format) string {
	switch f {
	case FormatRGB:
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	case FormatRGBA:
		// Screen pixels carry no transparency; alpha is always opaque.
		return fmt.Sprintf("rgba(%d, %d, %d, 1.0)", c.R, c.G, c.B)
	case FormatHSL:
		h, s, l := ToHSL(c)
		return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s, l)
	default:
		return c.String()
	}
}

// All renders c in every supported format, keyed by format name.
func All(c RGB) map[string]string {
	out := make(map[string]string, len(Formats))
	for _, f := range Formats {
		out[f.String()] = Render(c, f)
	}
	return out
}
