// Package precision implements the PrecisionProbe (C3): for a scalar,
// the minimal (integer-magnitude, decimal-scale) digit counts needed to
// represent it exactly, capped to bound worst-case width.
package precision

import "math"

// MaxSignificantDigits caps magnitude+scale to bound worst-case encoded
// width and to stop floating-point noise from being read as precision.
const MaxSignificantDigits = 14

// Probe returns (magnitude, scale) for x: magnitude is the digit count
// of floor(|x|) (1 if zero), and scale is the minimum k such that
// round(|x| * 10^k) is an integer, capped so magnitude+scale <= 14.
// Once magnitude alone reaches 14, scale is 0 and magnitude is returned
// uncapped.
//
// This is the "grow 10^k until the fractional part stabilizes"
// heuristic: it is sensitive to floating-point noise (e.g. 0.1+0.2 can
// over-estimate scale) but is consistent between encode and decode
// since both apply the same rule, and the final Precision is always
// serialized in the wire frame rather than re-derived at decode time.
func Probe(x float64) (magnitude, scale int) {
	ax := math.Abs(x)
	intPart := math.Floor(ax)

	if intPart == 0 {
		magnitude = 1
	} else {
		magnitude = int(math.Log10(intPart)) + 1
	}

	if magnitude >= MaxSignificantDigits {
		return magnitude, 0
	}

	fracPart := ax - intPart
	multiplier := math.Pow(10, float64(MaxSignificantDigits-magnitude))
	fracDigits := multiplier + math.Floor(multiplier*fracPart+0.5)

	for fracDigits >= 10 && math.Mod(fracDigits, 10) == 0 {
		fracDigits /= 10
	}

	scale = int(math.Log10(fracDigits))
	if magnitude+scale > MaxSignificantDigits {
		scale = MaxSignificantDigits - magnitude
	}

	return magnitude, scale
}

// Scale is a convenience that returns only the decimal-scale half of Probe.
func Scale(x float64) int {
	_, scale := Probe(x)
	return scale
}
