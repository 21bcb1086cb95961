package palette

import (
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/jmylchreest/ferret/internal/colour"
	"github.com/jmylchreest/ferret/internal/dynamic"
)

var testSeeds = []colour.Color{
	colour.FromARGB(0xFF6750A4),
	colour.FromARGB(0xFFFF0000),
	colour.New(140, 40, 60),
}

func TestSynthesizeDeterministic(t *testing.T) {
	for _, seed := range testSeeds {
		for _, v := range dynamic.Variants() {
			for _, dark := range []bool{false, true} {
				a := Synthesize(v, seed, dark)
				b := Synthesize(v, seed, dark)
				if len(a) != len(b) {
					t.Fatalf("%v dark=%v: sizes %d and %d differ", v, dark, len(a), len(b))
				}
				for name, hex := range a {
					if b[name] != hex {
						t.Errorf("%v dark=%v: %s = %s then %s", v, dark, name, hex, b[name])
					}
				}
			}
		}
	}
}

func TestSynthesizeKeys(t *testing.T) {
	got := Synthesize(dynamic.TonalSpot, testSeeds[0], true)

	want := []string{
		KeyColorName, "primary", "onPrimary", "surface", "outline", "onPrimaryFixedVariant",
		"text", "subtext1", "subtext0",
		"overlay2", "overlay1", "overlay0", "surface2", "surface1", "surface0",
		"base", "mantle", "crust",
		"success", "onSuccess", "successContainer", "onSuccessContainer",
	}
	for i := 0; i < 16; i++ {
		want = append(want, fmt.Sprintf("term%d", i))
	}
	want = append(want, AccentNames[:]...)
	for _, k := range kColors {
		want = append(want, k.name, k.name+"Selection")
	}

	for _, name := range want {
		hex, ok := got[name]
		if !ok {
			t.Errorf("missing entry %q", name)
			continue
		}
		if !colour.IsHex6(hex) {
			t.Errorf("%s = %q, want six hex digits", name, hex)
		}
	}
	if len(got) < 70 {
		t.Errorf("palette has %d entries, want at least 70", len(got))
	}
}

func TestSuccessLiterals(t *testing.T) {
	light := Synthesize(dynamic.Monochrome, testSeeds[1], false)
	dark := Synthesize(dynamic.Neutral, testSeeds[1], true)

	for name, want := range map[string]string{
		"success": "4F6354", "onSuccess": "FFFFFF", "successContainer": "D1E8D5", "onSuccessContainer": "0C1F13",
	} {
		if light[name] != want {
			t.Errorf("light %s = %s, want %s", name, light[name], want)
		}
	}
	for name, want := range map[string]string{
		"success": "B5CCBA", "onSuccess": "213528", "successContainer": "374B3E", "onSuccessContainer": "D1E9D6",
	} {
		if dark[name] != want {
			t.Errorf("dark %s = %s, want %s", name, dark[name], want)
		}
	}
}

func TestMonochromeDerivedEntriesAreGrey(t *testing.T) {
	for _, dark := range []bool{false, true} {
		colors := SynthesizeColors(dynamic.Monochrome, testSeeds[0], dark)

		var names []string
		for i := 0; i < 16; i++ {
			names = append(names, fmt.Sprintf("term%d", i))
		}
		names = append(names, AccentNames[:]...)
		for _, k := range kColors {
			names = append(names, k.name, k.name+"Selection")
		}

		for _, name := range names {
			if c := colors[name]; c.Chroma != 0 {
				t.Errorf("dark=%v: %s chroma = %v, want 0", dark, name, c.Chroma)
			}
		}
	}
}

func TestNeutralReducesChroma(t *testing.T) {
	// Terminal and accent colours depend only on the seed, so the tonal
	// spot palette is their unreduced reference. K-colours follow the roles.
	var seedOnly []string
	for i := 0; i < 16; i++ {
		seedOnly = append(seedOnly, fmt.Sprintf("term%d", i))
	}
	seedOnly = append(seedOnly, AccentNames[:]...)

	chroma := func(hex string) float64 { return colour.MustParseHex(hex).Chroma }

	for _, seed := range testSeeds {
		for _, dark := range []bool{false, true} {
			neutral := Synthesize(dynamic.Neutral, seed, dark)

			want := make(map[string]float64)
			reference := Synthesize(dynamic.TonalSpot, seed, dark)
			for _, name := range seedOnly {
				want[name] = chroma(reference[name])
			}
			unreduced := derive(dynamic.Roles(seed, dark, dynamic.Neutral, 0), dynamic.Neutral, seed, dark)
			for _, k := range kColors {
				want[k.name] = chroma(unreduced[k.name].Hex())
				want[k.name+"Selection"] = chroma(unreduced[k.name+"Selection"].Hex())
			}

			for name, ref := range want {
				expected := math.Max(ref-neutralChromaReduction, 0)
				if got := chroma(neutral[name]); math.Abs(got-expected) > 2.5 {
					t.Errorf("seed %s dark=%v: %s chroma = %.1f, want %.1f (reference %.1f)",
						seed.Hex(), dark, name, got, expected, ref)
				}
			}
		}
	}
}

func TestSurfaceRampBlendsInCAM16UCS(t *testing.T) {
	seed := colour.FromARGB(0xFF6750A4)
	tests := []struct {
		dark bool
		want string
	}{
		{dark: true, want: "4A474F"},
		{dark: false, want: "BFB9C2"},
	}

	for _, tt := range tests {
		got := Synthesize(dynamic.TonalSpot, seed, tt.dark)["surface2"]
		if !hexClose(got, tt.want, 2) {
			t.Errorf("dark=%v: surface2 = %s, want %s", tt.dark, got, tt.want)
		}
	}
}

func hexClose(a, b string, tol int) bool {
	ca, err := strconv.ParseUint(a, 16, 32)
	if err != nil {
		return false
	}
	cb, err := strconv.ParseUint(b, 16, 32)
	if err != nil {
		return false
	}
	for shift := 0; shift <= 16; shift += 8 {
		d := int(uint8(ca>>shift)) - int(uint8(cb>>shift))
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}

func TestHarmonizedTowardSeed(t *testing.T) {
	seed := colour.New(200, 40, 50)
	colors := SynthesizeColors(dynamic.Vibrant, seed, true)
	terms := family(darkTerminal)

	for i, ref := range terms {
		name := fmt.Sprintf("term%d", i)
		got := colors[name]
		if got.Chroma != ref.Chroma {
			t.Errorf("%s chroma = %v, want reference chroma %v", name, got.Chroma, ref.Chroma)
		}
		if colour.DifferenceDegrees(got.Hue, seed.Hue) > colour.DifferenceDegrees(ref.Hue, seed.Hue)+1e-9 {
			t.Errorf("%s moved away from the seed hue", name)
		}
	}
}

func TestSurfaceRamp(t *testing.T) {
	colors := SynthesizeColors(dynamic.TonalSpot, testSeeds[0], true)

	if colors["base"] != colors["surface"] {
		t.Error("base should equal surface")
	}
	if colors["text"] != colors["onBackground"] || colors["subtext0"] != colors["outline"] {
		t.Error("text roles not copied from the role set")
	}
	if colors["mantle"].Tone >= colors["base"].Tone || colors["crust"].Tone >= colors["mantle"].Tone {
		t.Errorf("want crust < mantle < base tones, got %v %v %v",
			colors["crust"].Tone, colors["mantle"].Tone, colors["base"].Tone)
	}

	// In a dark scheme the outline is lighter than the surface, so the
	// ramp gets darker from overlay2 down to surface0.
	prev := math.Inf(1)
	for _, step := range surfaceRamp {
		tone := colors[step.name].Tone
		if tone > prev+0.5 {
			t.Errorf("%s tone %v above previous step %v", step.name, tone, prev)
		}
		prev = tone
	}
}

func TestSynthesizerUsesGenerator(t *testing.T) {
	calls := 0
	gen := dynamic.GeneratorFunc(func(seed colour.Color, isDark bool, v dynamic.Variant, contrast float64) dynamic.RoleSet {
		calls++
		return dynamic.Roles(seed, isDark, v, contrast)
	})

	NewSynthesizer(gen).Synthesize(dynamic.Expressive, testSeeds[2], false)
	if calls != 1 {
		t.Errorf("generator called %d times, want 1", calls)
	}
}

func TestHarmonizedNamesSorted(t *testing.T) {
	h := Harmonized{"b": "000000", "a": "111111", "c": "222222"}
	names := h.Names()
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("Names() = %v", names)
	}
}
