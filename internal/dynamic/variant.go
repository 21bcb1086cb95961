// Package dynamic generates the tonal role set of a dynamic colour scheme:
// primary, onPrimary, surface, outline and friends, derived from a single
// seed colour by one of nine variant algorithms.
package dynamic

import "strings"

// Variant selects how the tonal palettes are derived from the seed.
type Variant uint8

// Supported variants.
const (
	Content Variant = iota
	Expressive
	Fidelity
	FruitSalad
	Monochrome
	Neutral
	Rainbow
	TonalSpot
	Vibrant
)

var variantNames = [...]string{
	Content:    "content",
	Expressive: "expressive",
	Fidelity:   "fidelity",
	FruitSalad: "fruitsalad",
	Monochrome: "monochrome",
	Neutral:    "neutral",
	Rainbow:    "rainbow",
	TonalSpot:  "tonalspot",
	Vibrant:    "vibrant",
}

// String returns the lower-case token for v.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return variantNames[Vibrant]
}

// ParseVariant maps a variant token to a Variant. Matching ignores case and
// surrounding space; anything unrecognised is Vibrant.
func ParseVariant(s string) Variant {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == s {
			return Variant(v)
		}
	}
	return Vibrant
}

// Variants returns every supported variant in token order.
func Variants() []Variant {
	out := make([]Variant, len(variantNames))
	for i := range variantNames {
		out[i] = Variant(i)
	}
	return out
}
