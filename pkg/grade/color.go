package grade

// Channel indexes a Pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the color channels in index order.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// Pixel is an RGB triple. Functions in this package take and return
// pixels by value.
type Pixel [3]uint8

// Luminance weights of the estimate used by saturation and tonal range.
const (
	RedLuminance   = 0.299
	GreenLuminance = 0.587
	BlueLuminance  = 0.114
)

// ApplyHue offsets each channel independently.
func ApplyHue(p Pixel, rOff, gOff, bOff int) Pixel {
	return Pixel{
		Red:   AdjustBrightness(p[Red], rOff),
		Green: AdjustBrightness(p[Green], gOff),
		Blue:  AdjustBrightness(p[Blue], bOff),
	}
}

// ApplyColorTemperature warms (t > 0) or cools (t < 0) a pixel by moving
// red and blue in opposite directions.
func ApplyColorTemperature(p Pixel, t int) Pixel {
	return ApplyHue(p, t, 0, -t)
}

// EstimateLuminance returns the truncated weighted sum of the channels.
// The sum is evaluated red, green, blue, each product rounded on its own,
// so the estimate is bit-for-bit the same on every platform.
func EstimateLuminance(p Pixel) uint8 {
	r := float64(float64(p[Red]) * RedLuminance)
	g := float64(float64(p[Green]) * GreenLuminance)
	b := float64(float64(p[Blue]) * BlueLuminance)
	return ClampIntensity(r + g + b)
}

// ApplySaturation blends every channel away from lum by factor s.
// s == 1 is the identity and s == 0 yields a gray of value lum.
func ApplySaturation(p Pixel, s float64, lum uint8) Pixel {
	l := int(lum)
	var out Pixel
	for _, c := range Channels {
		out[c] = ClampIntensity(float64(l) + float64(s*float64(int(p[c])-l)))
	}
	return out
}

// ApplyTonalRange gamma-corrects every channel with the exponent the tonal
// curve holds for lum.
func ApplyTonalRange(p Pixel, t *ToneLUT, lum uint8) Pixel {
	g := t[lum]
	return Pixel{
		Red:   GammaCorrect(p[Red], g),
		Green: GammaCorrect(p[Green], g),
		Blue:  GammaCorrect(p[Blue], g),
	}
}
