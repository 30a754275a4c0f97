package grade

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildChannelLUTNeutralIsIdentity(t *testing.T) {
	got := BuildChannelLUT(Defaults())
	if diff := cmp.Diff(IdentityLUT(), got); diff != "" {
		t.Fatalf("neutral table mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildChannelLUTBrightness(t *testing.T) {
	s := Defaults()
	s.Brightness = 50
	lut := BuildChannelLUT(s)
	for _, c := range Channels {
		assert.Equal(t, uint8(80), lut.At(30, c))
		assert.Equal(t, uint8(255), lut.At(250, c))
	}
	assert.Equal(t, Pixel{80, 70, 60}, lut.Apply(Pixel{30, 20, 10}))
}

func TestBuildChannelLUTOrder(t *testing.T) {
	// contrast runs before brightness: 140 -> 145 -> 155
	s := Defaults()
	s.Contrast = 50
	s.Brightness = 10
	lut := BuildChannelLUT(s)
	assert.Equal(t, uint8(155), lut.At(140, Green))

	// temperature and hue both land on top of the tone stages
	s = Defaults()
	s.Exposure = 1
	s.ColorTemperature = 20
	s.Hue = [3]int{5, 7, 0}
	lut = BuildChannelLUT(s)
	assert.Equal(t, Pixel{225, 207, 180}, lut.Apply(Pixel{100, 100, 100}))
}

// Every table entry matches running the per-channel functions directly.
func TestBuildChannelLUTMatchesDirect(t *testing.T) {
	s := Defaults()
	s.Contrast = -40
	s.Brightness = 12
	s.Exposure = 0.3
	s.ColorTemperature = -9
	s.Hue = [3]int{3, -4, 11}
	s.Lift = 6
	s.Gamma = 1.4
	s.Gain = 0.9
	lut := BuildChannelLUT(s)
	for i := 0; i <= MaxIntensity; i++ {
		v := AdjustContrast(uint8(i), s.Contrast)
		v = AdjustBrightness(v, s.Brightness)
		v = AdjustExposure(v, s.Exposure)
		v = LiftGammaGain(v, s.Lift, s.Gamma, s.Gain)
		want := ApplyHue(ApplyColorTemperature(Pixel{v, v, v}, s.ColorTemperature), s.Hue[0], s.Hue[1], s.Hue[2])
		assert.Equal(t, [3]uint8(want), lut[i], "v=%d", i)
	}
}
