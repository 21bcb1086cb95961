package colour

import "math"

// IsDisliked reports whether c falls in the band of dark, muddy yellow-greens
// that most people find unpleasant as an accent colour.
func IsDisliked(c Color) bool {
	hue := math.Round(c.Hue)
	huePasses := hue >= 90 && hue <= 111
	chromaPasses := math.Round(c.Chroma) > 16
	tonePasses := math.Round(c.Tone) < 65

	return huePasses && chromaPasses && tonePasses
}

// FixIfDisliked lifts a disliked colour to tone 70, which reads as a clean
// yellow-green. Other colours are returned unchanged.
func FixIfDisliked(c Color) Color {
	if IsDisliked(c) {
		return New(c.Hue, c.Chroma, 70)
	}
	return c
}
