// Package quantize reduces an image to a bounded set of representative
// colours with population counts.
package quantize

import (
	"image"
)

// MaxColors is the palette size seed extraction asks for.
const MaxColors = 128

// Quantizer reduces an image to at most maxColors representative colours.
// The result maps packed 0xFFRRGGBB pixels to their population.
type Quantizer interface {
	Quantize(img image.Image, maxColors int) (map[uint32]int, error)
}

// Func adapts an ordinary function to the Quantizer interface.
type Func func(img image.Image, maxColors int) (map[uint32]int, error)

// Quantize calls f(img, maxColors).
func (f Func) Quantize(img image.Image, maxColors int) (map[uint32]int, error) {
	return f(img, maxColors)
}

// packRGB packs 8-bit channels into an opaque ARGB pixel.
func packRGB(r, g, b uint8) uint32 {
	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
