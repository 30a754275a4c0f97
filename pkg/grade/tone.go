package grade

import "math"

// MaxIntensity is the largest legal channel value.
const MaxIntensity = 255

// ClampIntensity truncates v toward zero and clamps the result into
// [0, MaxIntensity]. NaN maps to 0 and infinities saturate. The clamp runs
// in floating point so that out-of-range values never reach a float to
// integer conversion.
func ClampIntensity(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= MaxIntensity:
		return MaxIntensity
	}
	return uint8(v)
}

// GammaCorrect returns 255*(v/255)^g. g == 1 is the identity.
//
// Non-positive exponents are not rejected here. The lift/gamma/gain gamma
// is validated by Settings, and the tonal-range curve may legitimately
// produce them; in that case the result saturates (0^-x is +Inf).
func GammaCorrect(v uint8, g float64) uint8 {
	return ClampIntensity(math.Pow(float64(v)/MaxIntensity, g) * MaxIntensity)
}

// AdjustBrightness adds offset to v.
func AdjustBrightness(v uint8, offset int) uint8 {
	return ClampIntensity(float64(int(v) + offset))
}

// contrastFactor is finite for c in (-259, 259).
func contrastFactor(c int) float64 {
	return (259.0 * (float64(c) + 255.0)) / (255.0 * (259.0 - float64(c)))
}

// AdjustContrast stretches v away from (or toward) the pivot 128.
func AdjustContrast(v uint8, c int) uint8 {
	// The explicit conversion keeps the compiler from fusing the
	// multiply-add, which would change rounding on some architectures.
	return ClampIntensity(float64(contrastFactor(c)*float64(int(v)-128)) + 128)
}

// AdjustExposure scales v by 2^e.
func AdjustExposure(v uint8, e float64) uint8 {
	return ClampIntensity(float64(v) * math.Pow(2, e))
}

// LiftGammaGain computes lift + gain*GammaCorrect(v, g).
func LiftGammaGain(v uint8, lift int, g, gain float64) uint8 {
	return ClampIntensity(float64(lift) + float64(gain*float64(GammaCorrect(v, g))))
}
