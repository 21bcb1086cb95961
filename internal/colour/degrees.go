package colour

import "math"

// SanitizeDegrees normalises any angle to [0,360).
func SanitizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	// Tiny negative inputs round up to exactly 360.
	if degrees >= 360 {
		degrees = 0
	}
	return degrees
}

// SanitizeDegreesInt normalises an integer angle to [0,360).
func SanitizeDegreesInt(degrees int) int {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// DifferenceDegrees returns the smallest angle between two hues, in [0,180].
func DifferenceDegrees(a, b float64) float64 {
	return 180 - math.Abs(math.Abs(a-b)-180)
}

// RotationDirection returns +1 or -1: the sign of the shortest rotation
// taking from to to. On an exact tie the first candidate (to-from) wins.
func RotationDirection(from, to float64) float64 {
	candidates := [3]float64{to - from, to - from + 360, to - from - 360}

	best := candidates[0]
	for _, d := range candidates[1:] {
		if math.Abs(d) < math.Abs(best) {
			best = d
		}
	}

	if best >= 0 {
		return 1
	}
	return -1
}
