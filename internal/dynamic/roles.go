package dynamic

import (
	"maps"
	"math"

	"github.com/jmylchreest/ferret/internal/colour"
)

// RoleSet maps tonal role names to colours.
type RoleSet map[string]colour.Color

// Clone returns an independent copy of r.
func (r RoleSet) Clone() RoleSet {
	return maps.Clone(r)
}

// Generator produces the role set for a seed. It must be pure: the same
// inputs always yield the same roles.
type Generator interface {
	Roles(seed colour.Color, isDark bool, v Variant, contrast float64) RoleSet
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(seed colour.Color, isDark bool, v Variant, contrast float64) RoleSet

// Roles calls f.
func (f GeneratorFunc) Roles(seed colour.Color, isDark bool, v Variant, contrast float64) RoleSet {
	return f(seed, isDark, v, contrast)
}

// DefaultGenerator is the built-in tonal role generator.
var DefaultGenerator Generator = GeneratorFunc(Roles)

type paletteKey uint8

const (
	primaryPalette paletteKey = iota
	secondaryPalette
	tertiaryPalette
	neutralPalette
	neutralVariantPalette
	errorPalettes
)

// role describes one slot: which palette it draws from, its tone in light
// and dark schemes, and the role it is drawn on top of (if any), which
// contrast adjustment pushes it away from.
type role struct {
	name       string
	palette    paletteKey
	light      float64
	dark       float64
	background string
}

// roleTable lists every role. Backgrounds appear before the roles drawn on
// them.
var roleTable = []role{
	{name: "background", palette: neutralPalette, light: 98, dark: 6},
	{name: "onBackground", palette: neutralPalette, light: 10, dark: 90, background: "background"},
	{name: "surface", palette: neutralPalette, light: 98, dark: 6},
	{name: "onSurface", palette: neutralPalette, light: 10, dark: 90, background: "surface"},
	{name: "surfaceVariant", palette: neutralVariantPalette, light: 90, dark: 30},
	{name: "onSurfaceVariant", palette: neutralVariantPalette, light: 30, dark: 80, background: "surfaceVariant"},
	{name: "outline", palette: neutralVariantPalette, light: 50, dark: 60, background: "surface"},
	{name: "outlineVariant", palette: neutralVariantPalette, light: 80, dark: 30, background: "surface"},
	{name: "shadow", palette: neutralPalette, light: 0, dark: 0},
	{name: "scrim", palette: neutralPalette, light: 0, dark: 0},
	{name: "inverseSurface", palette: neutralPalette, light: 20, dark: 90},
	{name: "inverseOnSurface", palette: neutralPalette, light: 95, dark: 20, background: "inverseSurface"},
	{name: "inversePrimary", palette: primaryPalette, light: 80, dark: 40, background: "inverseSurface"},
	{name: "surfaceDim", palette: neutralPalette, light: 87, dark: 6},
	{name: "surfaceBright", palette: neutralPalette, light: 98, dark: 24},
	{name: "surfaceContainerLowest", palette: neutralPalette, light: 100, dark: 4},
	{name: "surfaceContainerLow", palette: neutralPalette, light: 96, dark: 10},
	{name: "surfaceContainer", palette: neutralPalette, light: 94, dark: 12},
	{name: "surfaceContainerHigh", palette: neutralPalette, light: 92, dark: 17},
	{name: "surfaceContainerHighest", palette: neutralPalette, light: 90, dark: 22},

	{name: "primary", palette: primaryPalette, light: 40, dark: 80, background: "surface"},
	{name: "onPrimary", palette: primaryPalette, light: 100, dark: 20, background: "primary"},
	{name: "primaryContainer", palette: primaryPalette, light: 90, dark: 30},
	{name: "onPrimaryContainer", palette: primaryPalette, light: 10, dark: 90, background: "primaryContainer"},
	{name: "secondary", palette: secondaryPalette, light: 40, dark: 80, background: "surface"},
	{name: "onSecondary", palette: secondaryPalette, light: 100, dark: 20, background: "secondary"},
	{name: "secondaryContainer", palette: secondaryPalette, light: 90, dark: 30},
	{name: "onSecondaryContainer", palette: secondaryPalette, light: 10, dark: 90, background: "secondaryContainer"},
	{name: "tertiary", palette: tertiaryPalette, light: 40, dark: 80, background: "surface"},
	{name: "onTertiary", palette: tertiaryPalette, light: 100, dark: 20, background: "tertiary"},
	{name: "tertiaryContainer", palette: tertiaryPalette, light: 90, dark: 30},
	{name: "onTertiaryContainer", palette: tertiaryPalette, light: 10, dark: 90, background: "tertiaryContainer"},
	{name: "error", palette: errorPalettes, light: 40, dark: 80, background: "surface"},
	{name: "onError", palette: errorPalettes, light: 100, dark: 20, background: "error"},
	{name: "errorContainer", palette: errorPalettes, light: 90, dark: 30},
	{name: "onErrorContainer", palette: errorPalettes, light: 10, dark: 90, background: "errorContainer"},

	{name: "surfaceTint", palette: primaryPalette, light: 40, dark: 80},
	{name: "primaryFixed", palette: primaryPalette, light: 90, dark: 90},
	{name: "primaryFixedDim", palette: primaryPalette, light: 80, dark: 80},
	{name: "onPrimaryFixed", palette: primaryPalette, light: 10, dark: 10, background: "primaryFixed"},
	{name: "onPrimaryFixedVariant", palette: primaryPalette, light: 30, dark: 30, background: "primaryFixed"},
}

// monochromeTones replaces the primary tones for the monochrome variant,
// which has no hue to carry contrast and uses black and white instead.
var monochromeTones = map[string][2]float64{
	"primary":            {0, 100},
	"onPrimary":          {90, 10},
	"primaryContainer":   {25, 85},
	"onPrimaryContainer": {100, 0},
	"surfaceTint":        {0, 100},
}

// RoleNames returns every role name Roles produces, in table order.
func RoleNames() []string {
	names := make([]string, len(roleTable))
	for i, r := range roleTable {
		names[i] = r.name
	}
	return names
}

// Roles generates the role set for seed. Contrast is clamped to [-1,1]:
// positive values push foreground roles away from their backgrounds,
// negative values pull them closer and 0 leaves the standard tones.
func Roles(seed colour.Color, isDark bool, v Variant, contrast float64) RoleSet {
	contrast = math.Max(-1, math.Min(1, contrast))
	p := PalettesFor(seed, v)

	byKey := [...]TonalPalette{
		primaryPalette:        p.Primary,
		secondaryPalette:      p.Secondary,
		tertiaryPalette:       p.Tertiary,
		neutralPalette:        p.Neutral,
		neutralVariantPalette: p.NeutralVariant,
		errorPalettes:         p.Error,
	}

	tones := make(map[string]float64, len(roleTable))
	roles := make(RoleSet, len(roleTable))
	for _, r := range roleTable {
		tone := baseTone(r, seed, isDark, v)
		if r.background != "" {
			if bg, ok := tones[r.background]; ok {
				tone = adjustForContrast(tone, bg, contrast)
			}
		}
		tones[r.name] = tone
		roles[r.name] = byKey[r.palette].Tone(tone)
	}
	return roles
}

func baseTone(r role, seed colour.Color, isDark bool, v Variant) float64 {
	pick := func(t [2]float64) float64 {
		if isDark {
			return t[1]
		}
		return t[0]
	}

	if v == Monochrome {
		if t, ok := monochromeTones[r.name]; ok {
			return pick(t)
		}
	}

	// Content and fidelity keep the seed's own tone for the primary
	// container so the source colour appears in the scheme.
	if v == Content || v == Fidelity {
		switch r.name {
		case "primaryContainer":
			return seed.Tone
		case "onPrimaryContainer":
			if seed.Tone >= 50 {
				return 10
			}
			return 90
		}
	}

	return pick([2]float64{r.light, r.dark})
}

// adjustForContrast moves tone away from (contrast > 0) or towards
// (contrast < 0) the background tone bg, by at most half the available
// distance.
func adjustForContrast(tone, bg, contrast float64) float64 {
	if contrast == 0 {
		return tone
	}
	if contrast < 0 {
		return tone + (bg-tone)*(-contrast)*0.5
	}

	lighter := tone > bg || (tone == bg && bg < 50)
	if lighter {
		return tone + (100-tone)*contrast*0.5
	}
	return tone - tone*contrast*0.5
}
