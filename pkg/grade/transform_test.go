package grade

import (
	"bytes"
	"image"
	"image/color"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func noise(w, h int, seed int64) *image.NRGBA {
	r := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	r.Read(img.Pix)
	return img
}

func gradeOne(t *testing.T, s Settings, p Pixel) Pixel {
	t.Helper()
	out, err := Grade(solid(1, 1, color.NRGBA{p[0], p[1], p[2], 255}), s)
	require.NoError(t, err)
	c := out.NRGBAAt(0, 0)
	return Pixel{c.R, c.G, c.B}
}

func TestGradeScenarios(t *testing.T) {
	s := Defaults()
	assert.Equal(t, Pixel{30, 20, 10}, gradeOne(t, s, Pixel{30, 20, 10}), "neutral")

	s = Defaults()
	s.Brightness = 50
	assert.Equal(t, Pixel{80, 70, 60}, gradeOne(t, s, Pixel{30, 20, 10}), "brightness")
	assert.Equal(t, Pixel{255, 255, 255}, gradeOne(t, s, Pixel{250, 250, 250}), "brightness clamps")

	s = Defaults()
	s.Saturation = 0
	assert.Equal(t, Pixel{76, 76, 76}, gradeOne(t, s, Pixel{255, 0, 0}), "desaturate")
}

func TestGradeTonalRange(t *testing.T) {
	s := Defaults()
	s.Midtones = 0.5
	assert.Equal(t, Pixel{136, 136, 136}, gradeOne(t, s, Pixel{100, 100, 100}))
	assert.Equal(t, Pixel{219, 141, 92}, gradeOne(t, s, Pixel{200, 100, 50}))

	s.Saturation = 0
	assert.Equal(t, Pixel{162, 162, 162}, gradeOne(t, s, Pixel{200, 100, 50}))
}

// Saturation and tonal range both use the luminance of the incoming pixel,
// not of the already saturated one.
func TestGradeLuminanceTakenBeforeSaturation(t *testing.T) {
	s := Defaults()
	s.Saturation = 2
	s.Midtones = 0.5
	assert.Equal(t, Pixel{68, 253, 0}, gradeOne(t, s, Pixel{90, 200, 30}))
}

func TestGradeSaturationThenChannelTable(t *testing.T) {
	s := Defaults()
	s.Saturation = 0.5
	s.Brightness = 10
	assert.Equal(t, Pixel{172, 122, 97}, gradeOne(t, s, Pixel{200, 100, 50}))
}

func TestGradeNeutralIsIdentity(t *testing.T) {
	src := noise(37, 23, 1)
	out, err := Grade(src, Defaults())
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix)
}

func TestGradeDoesNotMutateSource(t *testing.T) {
	src := noise(16, 16, 2)
	orig := append([]uint8(nil), src.Pix...)
	s := Defaults()
	s.Contrast = 80
	s.Midtones = -0.4
	s.Saturation = 1.7
	out, err := Grade(src, s)
	require.NoError(t, err)
	assert.Equal(t, orig, src.Pix)
	assert.NotSame(t, &src.Pix[0], &out.Pix[0])

	// the untouched source can be graded back to itself
	again, err := Grade(src, Defaults())
	require.NoError(t, err)
	assert.Equal(t, orig, again.Pix)
}

func TestGradeDeterministic(t *testing.T) {
	src := noise(40, 30, 3)
	s := Defaults()
	s.Exposure = -0.7
	s.Hue = [3]int{-12, 4, 30}
	s.Shadows = 0.3
	s.Highlights = -0.2
	a, err := Grade(src, s)
	require.NoError(t, err)
	b, err := Grade(src, s)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestGradeParallelMatchesSerial(t *testing.T) {
	src := noise(211, 97, 4)
	s := Defaults()
	s.Contrast = 35
	s.Saturation = 1.3
	s.Midtones = 0.25
	s.Gamma = 0.8
	serial, err := Grade(src, s)
	require.NoError(t, err)
	par, err := Grade(src, s, WithParallel(true))
	require.NoError(t, err)
	assert.Equal(t, serial.Pix, par.Pix)
}

// Running every stage pixel by pixel without the channel table gives the
// same image as the table-driven pass.
func TestGradeMatchesDirectEvaluation(t *testing.T) {
	src := noise(64, 48, 5)
	s := Settings{
		Contrast: 25, Brightness: -8, Exposure: 0.4, Saturation: 1.6,
		ColorTemperature: 14, Hue: [3]int{-3, 9, 2},
		Lift: 5, Gamma: 1.2, Gain: 0.95,
		Shadows: 0.2, Midtones: -0.3, Highlights: 0.1,
	}
	out, err := Grade(src, s)
	require.NoError(t, err)
	tones := BuildToneLUT(s.Shadows, s.Midtones, s.Highlights)

	for i := 0; i < len(src.Pix); i += 4 {
		p := Pixel{src.Pix[i], src.Pix[i+1], src.Pix[i+2]}
		lum := EstimateLuminance(p)
		p = ApplySaturation(p, s.Saturation, lum)
		p = ApplyTonalRange(p, tones, lum)
		for _, c := range Channels {
			v := AdjustContrast(p[c], s.Contrast)
			v = AdjustBrightness(v, s.Brightness)
			v = AdjustExposure(v, s.Exposure)
			p[c] = LiftGammaGain(v, s.Lift, s.Gamma, s.Gain)
		}
		p = ApplyColorTemperature(p, s.ColorTemperature)
		p = ApplyHue(p, s.Hue[Red], s.Hue[Green], s.Hue[Blue])
		require.Equal(t, p, Pixel{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}, "offset %d", i)
		require.Equal(t, src.Pix[i+3], out.Pix[i+3], "alpha at offset %d", i)
	}
}

func TestGradeRejectsInvalidSettings(t *testing.T) {
	s := Defaults()
	s.Gamma = 0
	out, err := Grade(solid(2, 2, color.NRGBA{1, 2, 3, 255}), s)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewPlan(s)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGradeNilSource(t *testing.T) {
	_, err := Grade(nil, Defaults())
	assert.Error(t, err)
}

func TestGradeNonNRGBASource(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 6, 7))
	for y := 3; y < 7; y++ {
		for x := 2; x < 6; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 30), uint8(y * 20), 7, 255})
		}
	}
	s := Defaults()
	s.Brightness = 5
	out, err := Grade(src, s)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, color.NRGBA{65, 85, 12, 255}, out.NRGBAAt(2, 4))
}

func TestGradeOffsetSubImage(t *testing.T) {
	full := noise(20, 20, 6)
	sub := full.SubImage(image.Rect(5, 7, 15, 12)).(*image.NRGBA)
	s := Defaults()
	s.Contrast = -30
	out, err := Grade(sub, s)
	require.NoError(t, err)
	require.Equal(t, sub.Bounds(), out.Bounds())
	for y := 7; y < 12; y++ {
		for x := 5; x < 15; x++ {
			in := sub.NRGBAAt(x, y)
			got := out.NRGBAAt(x, y)
			assert.Equal(t, AdjustContrast(in.R, -30), got.R)
			assert.Equal(t, in.A, got.A)
		}
	}
}

func TestPlanAccessors(t *testing.T) {
	s := Defaults()
	p, err := NewPlan(s)
	require.NoError(t, err)
	_, ok := p.ToneLUT()
	assert.False(t, ok)
	assert.Equal(t, *IdentityLUT(), p.ChannelLUT())
	assert.Equal(t, s, p.Settings())

	s.Highlights = 0.5
	p, err = NewPlan(s)
	require.NoError(t, err)
	tones, ok := p.ToneLUT()
	require.True(t, ok)
	assert.InDelta(t, -0.5, tones[255], 1e-12)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := Grade(solid(3, 2, color.NRGBA{9, 9, 9, 255}), Defaults())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "grade: tables built")
	assert.Contains(t, buf.String(), "grade: rendered")
	assert.Contains(t, buf.String(), "width=3")

	SetLogger(nil)
	buf.Reset()
	_, err = Grade(solid(1, 1, color.NRGBA{}), Defaults())
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func BenchmarkGrade(b *testing.B) {
	src := noise(1024, 768, 7)
	s := Defaults()
	s.Contrast = 20
	s.Saturation = 1.2
	s.Midtones = 0.3
	p, err := NewPlan(s, WithParallel(true))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Apply(src)
	}
}
