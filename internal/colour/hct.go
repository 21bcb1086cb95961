// Package colour provides the perceptual colour primitives every themed value
// is derived from: an immutable hue/chroma/tone value type, conversion to and
// from packed ARGB pixels, and the lighten/darken/grayscale/mix/harmonize
// operations used by palette synthesis.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"cogentcore.org/core/colors/cam/hct"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/ferret/internal/security"
)

// Color is a colour expressed as hue (degrees), chroma and tone (0-100).
// Values are immutable; every operation returns a new Color. The stored
// coordinates are the requested ones; gamut mapping only happens when the
// colour is converted to ARGB.
type Color struct {
	Hue    float64 `json:"hue"`
	Chroma float64 `json:"chroma"`
	Tone   float64 `json:"tone"`
}

// New returns a Color with the hue normalised to [0,360), chroma clamped
// at zero and tone clamped to [0,100].
func New(hue, chroma, tone float64) Color {
	return Color{
		Hue:    SanitizeDegrees(hue),
		Chroma: math.Max(chroma, 0),
		Tone:   math.Min(math.Max(tone, 0), 100),
	}
}

// FromARGB converts a packed 0xAARRGGBB pixel to a Color. Alpha is ignored.
func FromARGB(argb uint32) Color {
	h := hct.FromColor(color.RGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: 255,
	})
	return New(float64(h.Hue), float64(h.Chroma), float64(h.Tone))
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return FromARGB(0xFF000000 | (r>>8)<<16 | (g>>8)<<8 | b>>8)
}

// ARGB solves the colour into sRGB and packs it as 0xFFRRGGBB.
func (c Color) ARGB() uint32 {
	rgba := hct.New(float32(c.Hue), float32(c.Chroma), float32(c.Tone)).AsRGBA()
	return 0xFF000000 | uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
}

// Fit returns the colour c actually displays as: its gamut-mapped sRGB value
// read back as HCT. Chroma drops when the requested one is unreachable.
func (c Color) Fit() Color {
	return FromARGB(c.ARGB())
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toColorful().RGBA()
}

// Hex returns the colour as six upper-case hex digits without a leading #.
func (c Color) Hex() string {
	return fmt.Sprintf("%06X", c.ARGB()&0xFFFFFF)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("hct(%.2f, %.2f, %.2f) #%s", c.Hue, c.Chroma, c.Tone, c.Hex())
}

// ParseHex parses a six digit hex colour, with or without a leading #.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !IsHex6(s) {
		return Color{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	cf, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return FromColor(cf), nil
}

// MustParseHex is ParseHex for literal tables; it panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsHex6 reports whether s is exactly six hex digits.
func IsHex6(s string) bool {
	return security.IsHex6(s)
}

func (c Color) toColorful() colorful.Color {
	argb := c.ARGB()
	return colorful.Color{
		R: float64(uint8(argb>>16)) / 255.0,
		G: float64(uint8(argb>>8)) / 255.0,
		B: float64(uint8(argb)) / 255.0,
	}
}
