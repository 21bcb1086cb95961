package score

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/quantize"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSeedUniformRed(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{R: 255, A: 255})

	seed, err := Seed(img, quantize.NewKMeans())
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	red := colour.FromARGB(0xFFFF0000)
	if math.Abs(seed.Hue-red.Hue) > 0.5 {
		t.Errorf("seed hue = %v, want red hue %v", seed.Hue, red.Hue)
	}

	ranked := Rank(map[uint32]int{0xFFFF0000: 100}, true)
	if len(ranked) != 1 {
		t.Fatalf("Rank() returned %d candidates, want 1", len(ranked))
	}
	if math.Abs(ranked[0].ExcitedProportion-1) > 1e-9 {
		t.Errorf("excited proportion = %v, want 1", ranked[0].ExcitedProportion)
	}
}

func TestExtractReturnsCandidates(t *testing.T) {
	img := solidImage(10, 10, color.RGBA{R: 255, A: 255})

	seed, candidates, err := Extract(img, nil)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Extract() returned %d candidates, want 1", len(candidates))
	}
	if math.Abs(candidates[0].Color.Hue-seed.Hue) > 0.5 {
		t.Errorf("top candidate hue = %v, seed hue = %v", candidates[0].Color.Hue, seed.Hue)
	}
}

func TestSeedPrefersDominantVividHue(t *testing.T) {
	population := map[uint32]int{
		0xFF1E88E5: 700, // blue
		0xFFE53935: 200, // red
		0xFF808080: 100, // grey
	}

	seed := FromPopulation(population)
	blue := colour.FromARGB(0xFF1E88E5)
	if math.Abs(seed.Hue-blue.Hue) > 0.5 {
		t.Errorf("seed hue = %v, want blue hue %v", seed.Hue, blue.Hue)
	}
}

func TestRankFiltersGreysAndRareHues(t *testing.T) {
	population := map[uint32]int{
		0xFF808080: 500,   // grey, chroma below cutoff
		0xFF00C853: 10000, // green
		0xFFFF00FF: 1,     // magenta, too rare
	}

	filtered := Rank(population, true)
	if len(filtered) != 1 || filtered[0].ARGB != 0xFF00C853 {
		t.Errorf("filtered ranking = %+v, want only green", filtered)
	}

	unfiltered := Rank(population, false)
	if len(unfiltered) != 3 {
		t.Errorf("unfiltered ranking has %d entries, want 3", len(unfiltered))
	}
	for i := 1; i < len(unfiltered); i++ {
		if unfiltered[i].Score > unfiltered[i-1].Score {
			t.Errorf("ranking not sorted at %d", i)
		}
	}
}

func TestSeedEmptyHistogramFallsBack(t *testing.T) {
	for _, population := range []map[uint32]int{nil, {}, {0xFFFF0000: 0}} {
		seed := FromPopulation(population)
		if want := colour.FromARGB(FallbackSeed); seed != want {
			t.Errorf("FromPopulation(%v) = %v, want fallback %v", population, seed, want)
		}
	}
}

func TestSeedLowChromaUsesUnfilteredPass(t *testing.T) {
	// Chroma roughly 3: too dull for the filter, but still picked on retry.
	population := map[uint32]int{0xFF8A8680: 100}
	c := colour.FromARGB(0xFF8A8680)
	if c.Chroma >= cutoffChroma || c.Chroma <= 0 {
		t.Skipf("test colour chroma %v outside expected range", c.Chroma)
	}

	seed := FromPopulation(population)
	if math.Abs(seed.Hue-c.Hue) > 1e-9 {
		t.Errorf("seed hue = %v, want %v", seed.Hue, c.Hue)
	}
}

func TestSeedDeterministic(t *testing.T) {
	population := map[uint32]int{}
	for i := 0; i < 64; i++ {
		population[0xFF000000|uint32(i*4)<<16|uint32(255-i*3)<<8|uint32(i*2)] = i + 1
	}

	first := FromPopulation(population)
	for i := 0; i < 5; i++ {
		if got := FromPopulation(population); got != first {
			t.Fatalf("run %d: seed = %v, want %v", i, got, first)
		}
	}
}

func TestSeedFixesDislikedColour(t *testing.T) {
	// Dark olive sits in the disliked yellow-green band.
	olive := uint32(0xFF5A5F1A)
	c := colour.FromARGB(olive)
	if !colour.IsDisliked(c) {
		t.Skipf("olive %v not disliked by the heuristic", c)
	}

	seed := FromPopulation(map[uint32]int{olive: 100})
	if colour.IsDisliked(seed) {
		t.Errorf("seed %v is still disliked", seed)
	}
	if seed.Tone != 70 {
		t.Errorf("seed tone = %v, want 70", seed.Tone)
	}
}

func TestSeedPropagatesQuantizerError(t *testing.T) {
	failing := quantize.Func(func(image.Image, int) (map[uint32]int, error) {
		return nil, errors.New("boom")
	})
	if _, err := Seed(solidImage(2, 2, color.RGBA{A: 255}), failing); err == nil {
		t.Error("Seed() expected error from quantizer")
	}
}
