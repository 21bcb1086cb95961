// Package score picks the seed colour of an image: the colour that best
// represents it as a source for a dynamic palette.
package score

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/quantize"
)

const (
	targetChroma            = 48.0
	weightProportion        = 0.7
	weightChromaAbove       = 0.3
	weightChromaBelow       = 0.1
	cutoffChroma            = 5.0
	cutoffExcitedProportion = 0.01

	// excitedWindowBelow and excitedWindowAbove bound the hues that share a
	// bucket's proportion.
	excitedWindowBelow = 14
	excitedWindowAbove = 16

	maxCutoff = 20
)

// FallbackSeed is used when no candidate in the image qualifies.
const FallbackSeed uint32 = 0xFF4285F4

// Candidate is a quantized colour with its score.
type Candidate struct {
	Color             colour.Color
	ARGB              uint32
	Population        int
	ExcitedProportion float64
	Score             float64
}

// Seed quantizes img and returns its seed colour. Quantizer failures, such
// as an image with no opaque pixels, are returned to the caller.
func Seed(img image.Image, q quantize.Quantizer) (colour.Color, error) {
	seed, _, err := Extract(img, q)
	return seed, err
}

// Extract is Seed that also returns the filtered, ranked candidates the seed
// was chosen from.
func Extract(img image.Image, q quantize.Quantizer) (colour.Color, []Candidate, error) {
	if q == nil {
		q = quantize.NewKMeans()
	}
	population, err := q.Quantize(img, quantize.MaxColors)
	if err != nil {
		return colour.Color{}, nil, fmt.Errorf("failed to quantize image: %w", err)
	}
	return FromPopulation(population), Rank(population, true), nil
}

// FromPopulation selects a seed from a colour histogram. Candidates are
// scored, then scanned at chroma cutoffs from 20 down to 0 so the most vivid
// well-represented colour wins. If nothing passes the filtered pass, one
// unfiltered pass runs before falling back to FallbackSeed.
func FromPopulation(population map[uint32]int) colour.Color {
	for _, filter := range []bool{true, false} {
		if c, ok := pick(Rank(population, filter)); ok {
			return colour.FixIfDisliked(c)
		}
	}
	return colour.FromARGB(FallbackSeed)
}

// pick returns the first candidate whose chroma and tone clear the highest
// possible cutoff.
func pick(ranked []Candidate) (colour.Color, bool) {
	for cutoff := maxCutoff; cutoff >= 0; cutoff-- {
		limit := float64(cutoff)
		for _, cand := range ranked {
			if cand.Color.Chroma > limit && cand.Color.Tone > limit*3 {
				return cand.Color, true
			}
		}
	}
	return colour.Color{}, false
}

// Rank scores every colour in the histogram and returns them best first.
// With filter set, colours below the chroma cutoff or whose hue
// neighbourhood holds too little of the image are dropped.
func Rank(population map[uint32]int, filter bool) []Candidate {
	argbs := make([]uint32, 0, len(population))
	for argb := range population {
		argbs = append(argbs, argb)
	}
	// Map order is random; sort so equal scores always rank the same way.
	sort.Slice(argbs, func(i, j int) bool { return argbs[i] < argbs[j] })

	var huePopulationTotal [360]int
	var total int
	colours := make([]colour.Color, len(argbs))
	for i, argb := range argbs {
		c := colour.FromARGB(argb)
		colours[i] = c
		huePopulationTotal[hueBucket(c.Hue)] += population[argb]
		total += population[argb]
	}
	if total == 0 {
		return nil
	}

	var excited [360]float64
	for hue := 0; hue < 360; hue++ {
		proportion := float64(huePopulationTotal[hue]) / float64(total)
		if proportion == 0 {
			continue
		}
		for i := hue - excitedWindowBelow; i <= hue+excitedWindowAbove; i++ {
			excited[colour.SanitizeDegreesInt(i)] += proportion
		}
	}

	ranked := make([]Candidate, 0, len(argbs))
	for i, argb := range argbs {
		c := colours[i]
		proportion := excited[hueBucket(c.Hue)]
		if filter && (c.Chroma < cutoffChroma || proportion <= cutoffExcitedProportion) {
			continue
		}

		chromaWeight := weightChromaAbove
		if c.Chroma < targetChroma {
			chromaWeight = weightChromaBelow
		}
		ranked = append(ranked, Candidate{
			Color:             c,
			ARGB:              argb,
			Population:        population[argb],
			ExcitedProportion: proportion,
			Score:             proportion*100*weightProportion + (c.Chroma-targetChroma)*chromaWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

func hueBucket(hue float64) int {
	return colour.SanitizeDegreesInt(int(math.Round(hue)))
}
