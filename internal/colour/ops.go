package colour

import (
	"math"

	"cogentcore.org/core/colors/cam/cam16"
)

const (
	// maxHarmonizeRotation caps how far Harmonize may turn a hue.
	maxHarmonizeRotation = 100.0
	// harmonizeFactor scales the hue gap into the applied rotation.
	harmonizeFactor = 0.8
)

// Lighten moves the tone towards 100 by the given fraction of the remaining
// distance, adding a fifth of that shift to chroma.
func Lighten(c Color, amount float64) Color {
	diff := (100 - c.Tone) * amount
	return New(c.Hue, c.Chroma+diff/5, c.Tone+diff)
}

// Darken moves the tone towards 0 by the given fraction of the current tone,
// adding a fifth of that shift to chroma.
func Darken(c Color, amount float64) Color {
	diff := c.Tone * amount
	return New(c.Hue, c.Chroma+diff/5, c.Tone-diff)
}

// Grayscale removes all chroma. Light palettes darken the colour first and
// dark palettes lighten it, so the grey keeps contrast against its background.
func Grayscale(c Color, isLight bool) Color {
	if isLight {
		c = Darken(c, 0.35)
	} else {
		c = Lighten(c, 0.65)
	}
	return New(c.Hue, 0, c.Tone)
}

// Mix blends a towards b in CAM16-UCS. A weight of 0 returns a, 1 returns b.
func Mix(a, b Color, weight float64) Color {
	if weight <= 0 || a == b {
		return a
	}
	if weight >= 1 {
		return b
	}
	// Blend takes the percentage of its first colour.
	return FromColor(cam16.Blend(float32((1-weight)*100), a, b))
}

// Harmonize rotates from's hue towards to's hue by 0.8x their angular gap,
// never more than 100 degrees, and scales its tone by (1 + toneBoost).
// Chroma is left untouched.
func Harmonize(from, to Color, toneBoost float64) Color {
	rotation := math.Min(DifferenceDegrees(from.Hue, to.Hue)*harmonizeFactor, maxHarmonizeRotation)
	hue := SanitizeDegrees(from.Hue + rotation*RotationDirection(from.Hue, to.Hue))
	return New(hue, from.Chroma, from.Tone*(1+toneBoost))
}

// WithChroma returns c with its chroma replaced.
func (c Color) WithChroma(chroma float64) Color {
	return New(c.Hue, chroma, c.Tone)
}

// WithTone returns c with its tone replaced.
func (c Color) WithTone(tone float64) Color {
	return New(c.Hue, c.Chroma, tone)
}
