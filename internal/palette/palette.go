// Package palette synthesizes a complete named colour palette from a seed:
// the dynamic tonal roles plus terminal, accent and semantic colours
// harmonized toward the seed, a surface ramp and fixed success literals.
package palette

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/dynamic"
)

// neutralChromaReduction is subtracted from every derived colour's chroma by
// the neutral variant.
const neutralChromaReduction = 15.0

// KeyColorName is the entry holding the seed itself.
const KeyColorName = "paletteKeyColor"

// Harmonized maps colour names to six upper-case hex digits.
type Harmonized map[string]string

// Names returns the palette's names in sorted order.
func (h Harmonized) Names() []string {
	return slices.Sorted(maps.Keys(h))
}

// Clone returns an independent copy of h.
func (h Harmonized) Clone() Harmonized {
	return maps.Clone(h)
}

// Synthesizer turns a seed into a Harmonized palette.
type Synthesizer struct {
	generator dynamic.Generator
	logger    hclog.Logger
}

// NewSynthesizer creates a Synthesizer using gen for the tonal roles. A nil
// generator selects the built-in one.
func NewSynthesizer(gen dynamic.Generator) *Synthesizer {
	if gen == nil {
		gen = dynamic.DefaultGenerator
	}
	return &Synthesizer{generator: gen, logger: hclog.NewNullLogger()}
}

// WithLogger sets the logger.
func (s *Synthesizer) WithLogger(logger hclog.Logger) *Synthesizer {
	if logger != nil {
		s.logger = logger.Named("palette")
	}
	return s
}

// Synthesize returns the palette for seed as hex strings, including the
// success literals.
func (s *Synthesizer) Synthesize(v dynamic.Variant, seed colour.Color, isDark bool) Harmonized {
	colors := s.Colors(v, seed, isDark)

	out := make(Harmonized, len(colors)+4)
	for name, c := range colors {
		out[name] = c.Hex()
	}
	maps.Copy(out, successFor(!isDark))

	s.logger.Debug("synthesized palette", "variant", v, "seed", seed.Hex(), "dark", isDark, "entries", len(out))
	return out
}

// Colors returns every derived colour before hex conversion. The success
// literals are not included.
func (s *Synthesizer) Colors(v dynamic.Variant, seed colour.Color, isDark bool) map[string]colour.Color {
	roles := s.generator.Roles(seed, isDark, v, 0)
	colors := derive(roles, v, seed, isDark)
	if v == dynamic.Neutral {
		reduceChroma(colors, neutralChromaReduction)
	}
	addSurfaces(colors)
	return colors
}

// derive copies the roles and adds the seed, terminal, accent and k-colour
// entries.
func derive(roles dynamic.RoleSet, v dynamic.Variant, seed colour.Color, isDark bool) map[string]colour.Color {
	isLight := !isDark
	mono := v == dynamic.Monochrome

	colors := make(map[string]colour.Color, len(roles)+48)
	maps.Copy(colors, roles)
	colors[KeyColorName] = seed

	sign := 1.0
	if isLight {
		sign = -1
	}
	for i, c := range terminalFamily(isLight) {
		name := fmt.Sprintf("term%d", i)
		if mono {
			colors[name] = colour.Grayscale(c, isLight)
			continue
		}
		boost := 0.2
		if i < 8 {
			boost = 0.35
		}
		colors[name] = colour.Harmonize(c, seed, boost*sign)
	}

	accentBoost := 0.05
	if isLight {
		accentBoost = -0.2
	}
	for i, c := range accentFamily(isLight) {
		if mono {
			colors[AccentNames[i]] = colour.Grayscale(c, isLight)
			continue
		}
		colors[AccentNames[i]] = colour.Harmonize(c, seed, accentBoost)
	}

	primary := roles["primary"]
	fixedVariant := roles["onPrimaryFixedVariant"]
	for _, k := range kColors {
		c := colour.MustParseHex(k.hex)
		base := colour.Harmonize(c, primary, 0.1)
		selection := colour.Harmonize(c, fixedVariant, 0.1)
		if mono {
			base = colour.Grayscale(base, isLight)
			selection = colour.Grayscale(selection, isLight)
		}
		colors[k.name] = base
		colors[k.name+"Selection"] = selection
	}

	return colors
}

// reduceChroma lowers the displayed chroma, not the requested one: a
// harmonized colour often asks for more chroma than its hue and tone allow.
func reduceChroma(colors map[string]colour.Color, amount float64) {
	for name, c := range colors {
		fitted := c.Fit()
		colors[name] = fitted.WithChroma(fitted.Chroma - amount)
	}
}

// addSurfaces derives the text roles, the surface ramp and base/mantle/crust
// from the (possibly reduced) roles.
func addSurfaces(colors map[string]colour.Color) {
	surface := colors["surface"]
	outline := colors["outline"]

	colors["text"] = colors["onBackground"]
	colors["subtext1"] = colors["onSurfaceVariant"]
	colors["subtext0"] = outline

	for _, step := range surfaceRamp {
		colors[step.name] = colour.Mix(surface, outline, step.weight)
	}

	colors["base"] = surface
	colors["mantle"] = colour.Darken(surface, 0.03)
	colors["crust"] = colour.Darken(surface, 0.05)
}

// Synthesize builds the palette with the built-in role generator.
func Synthesize(v dynamic.Variant, seed colour.Color, isDark bool) Harmonized {
	return NewSynthesizer(nil).Synthesize(v, seed, isDark)
}

// SynthesizeColors is Synthesize without hex conversion or literals.
func SynthesizeColors(v dynamic.Variant, seed colour.Color, isDark bool) map[string]colour.Color {
	return NewSynthesizer(nil).Colors(v, seed, isDark)
}
