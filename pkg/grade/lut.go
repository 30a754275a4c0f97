package grade

// ChannelLUT folds every per-channel adjustment into one table addressed
// by (input intensity, channel).
//
// A single 256-row table is enough because contrast, brightness,
// exposure, lift/gamma/gain, temperature and hue each compute a channel
// from that channel's own value and global parameters only. The result
// for value v in channel c is therefore table[v][c] regardless of the
// pixel's other two channels.
type ChannelLUT [256][3]uint8

// IdentityLUT returns the table that maps every value to itself.
func IdentityLUT() *ChannelLUT {
	var t ChannelLUT
	for i := range t {
		v := uint8(i)
		t[i] = [3]uint8{v, v, v}
	}
	return &t
}

// BuildChannelLUT evaluates the separable adjustments of s for every
// intensity. Per channel the order is contrast, brightness, exposure,
// lift/gamma/gain; temperature and then hue run on the resulting triple.
// Adjustments at their neutral value are skipped.
func BuildChannelLUT(s Settings) *ChannelLUT {
	var t ChannelLUT
	for i := range t {
		v := uint8(i)
		if s.hasContrast() {
			v = AdjustContrast(v, s.Contrast)
		}
		if s.hasBrightness() {
			v = AdjustBrightness(v, s.Brightness)
		}
		if s.hasExposure() {
			v = AdjustExposure(v, s.Exposure)
		}
		if s.hasLiftGammaGain() {
			v = LiftGammaGain(v, s.Lift, s.Gamma, s.Gain)
		}
		p := Pixel{v, v, v}
		if s.hasTemperature() {
			p = ApplyColorTemperature(p, s.ColorTemperature)
		}
		if s.hasHue() {
			p = ApplyHue(p, s.Hue[Red], s.Hue[Green], s.Hue[Blue])
		}
		t[i] = p
	}
	return &t
}

// At returns the adjusted value of v in channel c.
func (t *ChannelLUT) At(v uint8, c Channel) uint8 {
	return t[v][c]
}

// Apply maps every channel of p through the table.
func (t *ChannelLUT) Apply(p Pixel) Pixel {
	return Pixel{
		Red:   t[p[Red]][Red],
		Green: t[p[Green]][Green],
		Blue:  t[p[Blue]][Blue],
	}
}
