package colour

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSanitizeDegrees(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "above range", in: 370, want: 10},
		{name: "negative", in: -10, want: 350},
		{name: "zero", in: 0, want: 0},
		{name: "full turn", in: 360, want: 0},
		{name: "many turns", in: 1085.5, want: 5.5},
		{name: "many negative turns", in: -725, want: 355},
		{name: "tiny negative", in: -1e-15, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDegrees(tt.in)
			if !almostEqual(got, tt.want, epsilon) {
				t.Errorf("SanitizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("SanitizeDegrees(%v) = %v, outside [0,360)", tt.in, got)
			}
		})
	}
}

func TestSanitizeDegreesIdempotent(t *testing.T) {
	for _, d := range []float64{0, 0.5, 90, 179.99, 180, 359.999} {
		if got := SanitizeDegrees(d); got != d {
			t.Errorf("SanitizeDegrees(%v) = %v, want unchanged", d, got)
		}
	}
}

func TestSanitizeDegreesInt(t *testing.T) {
	tests := map[int]int{-14: 346, 0: 0, 359: 359, 360: 0, 376: 16, -721: 359}
	for in, want := range tests {
		if got := SanitizeDegreesInt(in); got != want {
			t.Errorf("SanitizeDegreesInt(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDifferenceDegrees(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{a: 10, b: 50, want: 40},
		{a: 350, b: 10, want: 20},
		{a: 0, b: 180, want: 180},
		{a: 90, b: 90, want: 0},
		{a: 300, b: 30, want: 90},
	}

	for _, tt := range tests {
		if got := DifferenceDegrees(tt.a, tt.b); !almostEqual(got, tt.want, epsilon) {
			t.Errorf("DifferenceDegrees(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRotationDirection(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{name: "clockwise", from: 10, to: 50, want: 1},
		{name: "counter clockwise", from: 50, to: 10, want: -1},
		{name: "wraps forward", from: 350, to: 10, want: 1},
		{name: "wraps backward", from: 10, to: 350, want: -1},
		{name: "same hue", from: 120, to: 120, want: 1},
		{name: "opposite tie picks first candidate", from: 0, to: 180, want: 1},
		{name: "opposite tie from above", from: 180, to: 0, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotationDirection(tt.from, tt.to); got != tt.want {
				t.Errorf("RotationDirection(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestHarmonize(t *testing.T) {
	tests := []struct {
		name     string
		from, to Color
		boost    float64
		wantHue  float64
		wantTone float64
	}{
		{
			name:     "small gap rotates by 0.8x",
			from:     New(10, 40, 50),
			to:       New(50, 30, 60),
			wantHue:  42,
			wantTone: 50,
		},
		{
			name:     "large gap capped at 100 degrees",
			from:     New(0, 40, 50),
			to:       New(170, 30, 60),
			wantHue:  100,
			wantTone: 50,
		},
		{
			name:     "wraps across zero",
			from:     New(350, 20, 40),
			to:       New(20, 30, 60),
			wantHue:  14,
			wantTone: 40,
		},
		{
			name:     "positive boost scales tone",
			from:     New(200, 20, 40),
			to:       New(200, 30, 60),
			boost:    0.35,
			wantHue:  200,
			wantTone: 54,
		},
		{
			name:     "negative boost scales tone down",
			from:     New(200, 20, 40),
			to:       New(180, 30, 60),
			boost:    -0.2,
			wantHue:  184,
			wantTone: 32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Harmonize(tt.from, tt.to, tt.boost)
			if !almostEqual(got.Hue, tt.wantHue, 1e-6) {
				t.Errorf("hue = %v, want %v", got.Hue, tt.wantHue)
			}
			if got.Chroma != tt.from.Chroma {
				t.Errorf("chroma = %v, want unchanged %v", got.Chroma, tt.from.Chroma)
			}
			if !almostEqual(got.Tone, tt.wantTone, 1e-6) {
				t.Errorf("tone = %v, want %v", got.Tone, tt.wantTone)
			}
		})
	}
}

func TestHarmonizeRotationAmount(t *testing.T) {
	for from := 0.0; from < 360; from += 37 {
		for to := 0.0; to < 360; to += 53 {
			a, b := New(from, 30, 50), New(to, 30, 50)
			got := Harmonize(a, b, 0)
			want := math.Min(0.8*DifferenceDegrees(from, to), 100)
			if moved := DifferenceDegrees(a.Hue, got.Hue); !almostEqual(moved, want, 1e-6) {
				t.Errorf("Harmonize(%v -> %v) rotated %v, want %v", from, to, moved, want)
			}
		}
	}
}

func TestLightenDarken(t *testing.T) {
	c := New(120, 20, 40)

	l := Lighten(c, 0.5)
	if !almostEqual(l.Tone, 70, epsilon) || !almostEqual(l.Chroma, 26, epsilon) || l.Hue != c.Hue {
		t.Errorf("Lighten = %+v, want tone 70 chroma 26 hue 120", l)
	}

	d := Darken(c, 0.25)
	if !almostEqual(d.Tone, 30, epsilon) || !almostEqual(d.Chroma, 22, epsilon) || d.Hue != c.Hue {
		t.Errorf("Darken = %+v, want tone 30 chroma 22 hue 120", d)
	}
}

func TestGrayscale(t *testing.T) {
	inputs := []Color{New(0, 80, 50), New(250, 10, 90), New(100, 120, 10), New(33, 0, 0)}
	for _, c := range inputs {
		for _, light := range []bool{true, false} {
			g := Grayscale(c, light)
			if g.Chroma != 0 {
				t.Errorf("Grayscale(%v, %v).Chroma = %v, want 0", c, light, g.Chroma)
			}
		}
	}

	light := Grayscale(New(0, 80, 50), true)
	if !almostEqual(light.Tone, 32.5, epsilon) {
		t.Errorf("light grayscale tone = %v, want 32.5", light.Tone)
	}
	dark := Grayscale(New(0, 80, 50), false)
	if !almostEqual(dark.Tone, 82.5, epsilon) {
		t.Errorf("dark grayscale tone = %v, want 82.5", dark.Tone)
	}
}

func TestMixContract(t *testing.T) {
	a := MustParseHex("1E1E2E")
	b := MustParseHex("CBA6F7")

	if got := Mix(a, a, 0.37); got != a {
		t.Errorf("Mix(a, a, w) = %v, want a", got)
	}
	if got := Mix(a, b, 0); got != a {
		t.Errorf("Mix(a, b, 0) = %v, want a", got)
	}
	if got := Mix(a, b, 1); got != b {
		t.Errorf("Mix(a, b, 1) = %v, want b", got)
	}

	mid := Mix(a, b, 0.5)
	if mid.Tone <= a.Tone || mid.Tone >= b.Tone {
		t.Errorf("Mix(a, b, 0.5).Tone = %v, want between %v and %v", mid.Tone, a.Tone, b.Tone)
	}
}

func TestMixSymmetric(t *testing.T) {
	a := MustParseHex("1E1E2E")
	b := MustParseHex("CBA6F7")
	for _, w := range []float64{0.14, 0.43, 0.86} {
		ab, ba := Mix(a, b, w), Mix(b, a, 1-w)
		if !channelsClose(ab.ARGB(), ba.ARGB(), 1) {
			t.Errorf("Mix(a, b, %v) = %s, Mix(b, a, %v) = %s", w, ab.Hex(), 1-w, ba.Hex())
		}
	}
}

func TestFit(t *testing.T) {
	// Pure sRGB green has chroma near 108; a request far beyond it is
	// clipped to what the hue and tone can display.
	over := New(142, 200, 88)
	fitted := over.Fit()
	if fitted.Chroma >= 150 {
		t.Errorf("Fit().Chroma = %v, want it clipped below 150", fitted.Chroma)
	}
	if !almostEqual(fitted.Tone, over.Tone, 1) {
		t.Errorf("Fit().Tone = %v, want about %v", fitted.Tone, over.Tone)
	}
	if !channelsClose(fitted.ARGB(), over.ARGB(), 1) {
		t.Errorf("Fit() displays as %s, want %s", fitted.Hex(), over.Hex())
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"FF0000", "00FF00", "0000FF", "1E1E2E", "F5E0DC", "808080"} {
		c, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", hex, err)
		}
		want, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			t.Fatal(err)
		}
		if got := c.ARGB(); !channelsClose(got, uint32(want), 2) {
			t.Errorf("round trip of %s gave %06X", hex, got&0xFFFFFF)
		}
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "FFF", "GG0000", "FF00000", "#12345"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q) expected error", s)
		}
	}
	if _, err := ParseHex("#abcdef"); err != nil {
		t.Errorf("ParseHex with # prefix: %v", err)
	}
}

func TestHexFormat(t *testing.T) {
	hex := MustParseHex("ffffff").Hex()
	if len(hex) != 6 || !IsHex6(hex) {
		t.Fatalf("Hex() = %q, want six hex digits", hex)
	}
	if hex != strings.ToUpper(hex) {
		t.Errorf("Hex() = %q, want upper case", hex)
	}
}

func TestDislike(t *testing.T) {
	muddy := New(100, 30, 40)
	if !IsDisliked(muddy) {
		t.Fatalf("expected %v to be disliked", muddy)
	}
	fixed := FixIfDisliked(muddy)
	if fixed.Tone != 70 || fixed.Hue != muddy.Hue || fixed.Chroma != muddy.Chroma {
		t.Errorf("FixIfDisliked = %+v, want tone 70 with hue and chroma kept", fixed)
	}
	if IsDisliked(fixed) {
		t.Error("fixed colour still disliked")
	}

	for _, c := range []Color{New(27, 113, 53), New(100, 10, 40), New(100, 30, 80), New(200, 40, 30)} {
		if IsDisliked(c) {
			t.Errorf("%v unexpectedly disliked", c)
		}
		if FixIfDisliked(c) != c {
			t.Errorf("FixIfDisliked changed %v", c)
		}
	}
}

func channelsClose(a, b uint32, tol int) bool {
	for shift := 0; shift <= 16; shift += 8 {
		ca := int(uint8(a >> shift))
		cb := int(uint8(b >> shift))
		if ca-cb > tol || cb-ca > tol {
			return false
		}
	}
	return true
}
