package grade

import "math"

// ToneLUT maps an estimated luminance to the gamma exponent encoding the
// combined shadows/midtones/highlights correction at that luminance.
type ToneLUT [256]float64

// BuildToneLUT evaluates the tonal-range curve for every luminance level.
// With all three weights at zero every entry is exactly 1.
func BuildToneLUT(shadows, midtones, highlights float64) *ToneLUT {
	var t ToneLUT
	for l := 0; l < len(t); l++ {
		t[l] = toneCorrection(l, shadows, midtones, highlights)
	}
	return &t
}

func toneCorrection(l int, shadows, midtones, highlights float64) float64 {
	lf := float64(l)
	hi := highlights * 3.0 * math.Pow(255.0, lf/255.0)
	// -l/2 is integer division toward zero.
	sh := shadows * 2.0 * math.Pow(255.0, (float64(-l/2)+255.0)/(255.0*1.22))
	md := midtones * 1.5 * midtoneBell(l)
	return 1.0 - (sh+md+hi)/255.0
}

// midtoneBell is -255/4*cos(1/(255/(2*pi*l))) + 255/4. At l == 0 the
// inner division is by zero; the one-sided limit is used instead, which
// is 0 since the cosine argument tends to 0.
func midtoneBell(l int) float64 {
	if l == 0 {
		return 0
	}
	return -255.0/4.0*math.Cos(1.0/(255.0/(2.0*math.Pi*float64(l)))) + 255.0/4.0
}
