package color

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestDecodePackedPixel(t *testing.T) {
	got := Decode(0x00123456)
	want := RGB{R: 18, G: 52, B: 86}
	if got != want {
		t.Fatalf("Decode(0x00123456) = %+v, want %+v", got, want)
	}
}

func TestDecodeIgnoresHighBits(t *testing.T) {
	got := Decode(0xFF123456)
	if got != (RGB{R: 0x12, G: 0x34, B: 0x56}) {
		t.Fatalf("Decode(0xFF123456) = %+v, want high byte ignored", got)
	}
	if got.Packed() != 0x123456 {
		t.Fatalf("Packed() = %#x, want %#x", got.Packed(), 0x123456)
	}
}

func TestRenderHexMatchesBitPattern(t *testing.T) {
	// Sweep a coarse grid plus the channel extremes.
	values := []uint8{0, 1, 9, 10, 15, 16, 127, 128, 170, 200, 254, 255}
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := RGB{R: r, G: g, B: b}
				want := fmt.Sprintf("#%06X", c.Packed())
				if got := Render(c, FormatHex); got != want {
					t.Fatalf("Render(%+v, hex) = %q, want %q", c, got, want)
				}
			}
		}
	}
}

func TestRenderFormats(t *testing.T) {
	c := RGB{R: 18, G: 52, B: 86}
	tests := []struct {
		format Format
		want   string
	}{
		{FormatHex, "#123456"},
		{FormatRGB, "rgb(18, 52, 86)"},
		{FormatRGBA, "rgba(18, 52, 86, 1.0)"},
		{FormatHSL, "hsl(210, 65%, 20%)"},
	}
	for _, tt := range tests {
		if got := Render(c, tt.format); got != tt.want {
			t.Errorf("Render(%+v, %s) = %q, want %q", c, tt.format, got, tt.want)
		}
	}
}

func TestRenderRGBAAlwaysOpaque(t *testing.T) {
	for v := 0; v < 256; v += 5 {
		c := RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		if got := Render(c, FormatRGBA); !strings.HasSuffix(got, ", 1.0)") {
			t.Fatalf("Render(%+v, rgba) = %q, want suffix \", 1.0)\"", c, got)
		}
	}
}

func TestRenderHSLBoundaries(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{0, 0, 0}, "hsl(0, 0%, 0%)"},
		{RGB{255, 255, 255}, "hsl(0, 0%, 100%)"},
		{RGB{255, 0, 0}, "hsl(0, 100%, 50%)"},
		{RGB{0, 255, 0}, "hsl(120, 100%, 50%)"},
		{RGB{0, 0, 255}, "hsl(240, 100%, 50%)"},
		{RGB{255, 255, 0}, "hsl(60, 100%, 50%)"},
		{RGB{0, 255, 255}, "hsl(180, 100%, 50%)"},
		{RGB{255, 0, 255}, "hsl(300, 100%, 50%)"},
	}
	for _, tt := range tests {
		if got := Render(tt.c, FormatHSL); got != tt.want {
			t.Errorf("Render(%+v, hsl) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestToHSLAchromaticHasNoHueOrSaturation(t *testing.T) {
	for v := 0; v < 256; v++ {
		h, s, _ := ToHSL(RGB{R: uint8(v), G: uint8(v), B: uint8(v)})
		if h != 0 || s != 0 {
			t.Fatalf("ToHSL(gray %d) = h=%v s=%v, want 0 and 0", v, h, s)
		}
	}
}

func TestToHSLRedWrapsWhenGreenBelowBlue(t *testing.T) {
	// Red is max and green < blue: hue lands in (300, 360).
	h, _, _ := ToHSL(RGB{R: 255, G: 0, B: 128})
	if h <= 300 || h >= 360 {
		t.Fatalf("hue = %v, want in (300, 360)", h)
	}
}

func TestToHSLAgreesWithColorful(t *testing.T) {
	values := []uint8{0, 3, 40, 99, 128, 180, 222, 255}
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := RGB{R: r, G: g, B: b}
				h, s, l := ToHSL(c)
				wh, ws, wl := c.Colorful().Hsl()
				if math.Abs(l-wl*100) > 0.01 {
					t.Fatalf("%+v lightness = %v, colorful = %v", c, l, wl*100)
				}
				if math.Abs(s-ws*100) > 0.01 {
					t.Fatalf("%+v saturation = %v, colorful = %v", c, s, ws*100)
				}
				if s == 0 {
					continue
				}
				dh := math.Abs(h - wh)
				if dh > 180 {
					dh = 360 - dh
				}
				if dh > 0.01 {
					t.Fatalf("%+v hue = %v, colorful = %v", c, h, wh)
				}
			}
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHex, false},
		{"hex", FormatHex, false},
		{"RGB", FormatRGB, false},
		{" rgba ", FormatRGBA, false},
		{"hsl", FormatHSL, false},
		{"cmyk", FormatHex, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatStringRoundTrip(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(f.String())
		if err != nil || got != f {
			t.Fatalf("ParseFormat(%q) = %v, %v; want %v", f.String(), got, err, f)
		}
	}
}

func TestAllRendersEveryFormat(t *testing.T) {
	all := All(RGB{R: 18, G: 52, B: 86})
	if len(all) != len(Formats) {
		t.Fatalf("All() returned %d entries, want %d", len(all), len(Formats))
	}
	if all["hsl"] != "hsl(210, 65%, 20%)" {
		t.Fatalf("All()[hsl] = %q", all["hsl"])
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#123456", RGB{18, 52, 86}, false},
		{"123456", RGB{18, 52, 86}, false},
		{"#ABCDEF", RGB{0xAB, 0xCD, 0xEF}, false},
		{"#fff", RGB{255, 255, 255}, false},
		{"18,52,86", RGB{18, 52, 86}, false},
		{"rgb(18, 52, 86)", RGB{18, 52, 86}, false},
		{"1,2", RGB{}, true},
		{"256,0,0", RGB{}, true},
		{"", RGB{}, true},
		{"#zzzzzz", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSwatch(t *testing.T) {
	got := Swatch(RGB{R: 18, G: 52, B: 86}, SwatchWidth)
	want := "\x1b[48;2;18;52;86m    \x1b[0m"
	if got != want {
		t.Fatalf("Swatch() = %q, want %q", got, want)
	}
	if Swatch(RGB{}, 0) != Swatch(RGB{}, SwatchWidth) {
		t.Fatal("Swatch() with non-positive width should fall back to SwatchWidth")
	}
}
