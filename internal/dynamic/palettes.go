package dynamic

import (
	"math"

	"github.com/jmylchreest/ferret/internal/colour"
)

// TonalPalette is a fixed hue and chroma from which any tone can be taken.
type TonalPalette struct {
	Hue    float64
	Chroma float64
}

// Tone returns the palette colour at the given tone.
func (p TonalPalette) Tone(tone float64) colour.Color {
	return colour.New(p.Hue, p.Chroma, tone)
}

func palette(hue, chroma float64) TonalPalette {
	return TonalPalette{Hue: colour.SanitizeDegrees(hue), Chroma: math.Max(chroma, 0)}
}

// Palettes holds the six tonal palettes a scheme is built from.
type Palettes struct {
	Primary        TonalPalette
	Secondary      TonalPalette
	Tertiary       TonalPalette
	Neutral        TonalPalette
	NeutralVariant TonalPalette
	Error          TonalPalette
}

// errorPalette is shared by every variant.
var errorPalette = TonalPalette{Hue: 25, Chroma: 84}

// Hue rotation tables used by the vibrant and expressive variants. A seed
// hue in [rotationHues[i], rotationHues[i+1]) is rotated by the i-th entry.
var (
	rotationHues = []float64{0, 41, 61, 101, 131, 181, 251, 301, 360}

	vibrantSecondaryRotations    = []float64{18, 15, 10, 12, 15, 18, 15, 12, 12}
	vibrantTertiaryRotations     = []float64{35, 30, 20, 25, 30, 35, 30, 25, 25}
	expressiveSecondaryRotations = []float64{45, 95, 45, 20, 45, 90, 45, 45, 45}
	expressiveTertiaryRotations  = []float64{120, 120, 20, 45, 20, 15, 20, 120, 120}
)

// rotatedHue looks up the rotation for hue in the given table.
func rotatedHue(hue float64, rotations []float64) float64 {
	for i := 0; i < len(rotationHues)-1; i++ {
		if hue >= rotationHues[i] && hue < rotationHues[i+1] {
			return colour.SanitizeDegrees(hue + rotations[i])
		}
	}
	return hue
}

// PalettesFor derives the tonal palettes of variant v from seed.
func PalettesFor(seed colour.Color, v Variant) Palettes {
	h, c := seed.Hue, seed.Chroma

	p := Palettes{Error: errorPalette}
	switch v {
	case Content, Fidelity:
		p.Primary = palette(h, c)
		p.Secondary = palette(h, math.Max(c-32, c*0.5))
		if v == Content {
			p.Tertiary = palette(h+60, c)
		} else {
			p.Tertiary = palette(h+180, c)
		}
		p.Neutral = palette(h, c/8)
		p.NeutralVariant = palette(h, c/8+4)
	case Expressive:
		p.Primary = palette(h+240, 40)
		p.Secondary = palette(rotatedHue(h, expressiveSecondaryRotations), 24)
		p.Tertiary = palette(rotatedHue(h, expressiveTertiaryRotations), 32)
		p.Neutral = palette(h+15, 8)
		p.NeutralVariant = palette(h+15, 12)
	case FruitSalad:
		p.Primary = palette(h-50, 48)
		p.Secondary = palette(h-50, 36)
		p.Tertiary = palette(h, 36)
		p.Neutral = palette(h, 10)
		p.NeutralVariant = palette(h, 16)
	case Monochrome:
		p.Primary = palette(h, 0)
		p.Secondary = palette(h, 0)
		p.Tertiary = palette(h, 0)
		p.Neutral = palette(h, 0)
		p.NeutralVariant = palette(h, 0)
	case Neutral:
		p.Primary = palette(h, 12)
		p.Secondary = palette(h, 8)
		p.Tertiary = palette(h, 16)
		p.Neutral = palette(h, 2)
		p.NeutralVariant = palette(h, 2)
	case Rainbow:
		p.Primary = palette(h, 48)
		p.Secondary = palette(h, 16)
		p.Tertiary = palette(h+60, 24)
		p.Neutral = palette(h, 0)
		p.NeutralVariant = palette(h, 0)
	case TonalSpot:
		p.Primary = palette(h, 36)
		p.Secondary = palette(h, 16)
		p.Tertiary = palette(h+60, 24)
		p.Neutral = palette(h, 6)
		p.NeutralVariant = palette(h, 8)
	default:
		p.Primary = palette(h, 200)
		p.Secondary = palette(rotatedHue(h, vibrantSecondaryRotations), 24)
		p.Tertiary = palette(rotatedHue(h, vibrantTertiaryRotations), 32)
		p.Neutral = palette(h, 10)
		p.NeutralVariant = palette(h, 12)
	}
	return p
}
