package palette

import "github.com/jmylchreest/ferret/internal/colour"

// Reference families. These are constant inputs to synthesis and must not
// change: persisted palettes are only reproducible against these values.
var (
	lightTerminal = []string{
		"FDF9F3", "FF6188", "A9DC76", "FC9867", "FFD866", "F47FD4", "78DCE8", "333034",
		"121212", "FF6188", "A9DC76", "FC9867", "FFD866", "F47FD4", "78DCE8", "333034",
	}
	darkTerminal = []string{
		"282828", "CC241D", "98971A", "D79921", "458588", "B16286", "689D6A", "A89984",
		"928374", "FB4934", "B8BB26", "FABD2F", "83A598", "D3869B", "8EC07C", "EBDBB2",
	}

	lightAccents = []string{
		"dc8a78", "dd7878", "ea76cb", "8839ef", "d20f39", "e64553", "fe640b",
		"df8e1d", "40a02b", "179299", "04a5e5", "209fb5", "1e66f5", "7287fd",
	}
	darkAccents = []string{
		"f5e0dc", "f2cdcd", "f5c2e7", "cba6f7", "f38ba8", "eba0ac", "fab387",
		"f9e2af", "a6e3a1", "94e2d5", "89dceb", "74c7ec", "89b4fa", "b4befe",
	}
)

// AccentNames names the accent family entries, in table order.
var AccentNames = [...]string{
	"rosewater", "flamingo", "pink", "mauve", "red", "maroon", "peach",
	"yellow", "green", "teal", "sky", "sapphire", "blue", "lavender",
}

// kColor is a fixed semantic accent harmonized toward the primary role.
type kColor struct {
	name string
	hex  string
}

var kColors = []kColor{
	{name: "klink", hex: "2980b9"},
	{name: "kvisited", hex: "9b59b6"},
	{name: "knegative", hex: "da4453"},
	{name: "kneutral", hex: "f67400"},
	{name: "kpositive", hex: "27ae60"},
}

// successLiterals are overlaid as-is; they never pass through the seed.
var (
	lightSuccess = map[string]string{
		"success":            "4F6354",
		"onSuccess":          "FFFFFF",
		"successContainer":   "D1E8D5",
		"onSuccessContainer": "0C1F13",
	}
	darkSuccess = map[string]string{
		"success":            "B5CCBA",
		"onSuccess":          "213528",
		"successContainer":   "374B3E",
		"onSuccessContainer": "D1E9D6",
	}
)

// surfaceRamp mixes surface toward outline, highest weight first.
var surfaceRamp = []struct {
	name   string
	weight float64
}{
	{name: "overlay2", weight: 0.86},
	{name: "overlay1", weight: 0.71},
	{name: "overlay0", weight: 0.57},
	{name: "surface2", weight: 0.43},
	{name: "surface1", weight: 0.29},
	{name: "surface0", weight: 0.14},
}

// family parses a hex table once per call. Tables are literals, so a parse
// failure is a programming error.
func family(hexes []string) []colour.Color {
	out := make([]colour.Color, len(hexes))
	for i, h := range hexes {
		out[i] = colour.MustParseHex(h)
	}
	return out
}

func terminalFamily(isLight bool) []colour.Color {
	if isLight {
		return family(lightTerminal)
	}
	return family(darkTerminal)
}

func accentFamily(isLight bool) []colour.Color {
	if isLight {
		return family(lightAccents)
	}
	return family(darkAccents)
}

func successFor(isLight bool) map[string]string {
	if isLight {
		return lightSuccess
	}
	return darkSuccess
}
