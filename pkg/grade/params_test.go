package grade

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchParamNeutrals(t *testing.T) {
	d := Defaults()
	require.True(t, d.IsNeutral())
	require.NoError(t, d.Validate())
	for _, p := range Params {
		assert.Equal(t, p.Neutral, p.Value(d), p.Name)
	}
}

func TestParamsUnique(t *testing.T) {
	names := map[string]bool{}
	flags := map[string]bool{}
	for _, p := range Params {
		assert.False(t, names[p.Name], "duplicate name %s", p.Name)
		assert.False(t, flags[p.Flag], "duplicate flag %s", p.Flag)
		names[p.Name] = true
		flags[p.Flag] = true
	}
	assert.Len(t, Params, 14)
}

func TestLookupParam(t *testing.T) {
	for _, key := range []string{"brightness", "Brightness", "b", "-b", " b "} {
		p, ok := LookupParam(key)
		require.True(t, ok, key)
		assert.Equal(t, "brightness", p.Name)
	}
	p, ok := LookupParam("-gn")
	require.True(t, ok)
	assert.Equal(t, "gain", p.Name)

	_, ok = LookupParam("sharpen")
	assert.False(t, ok)
}

func TestParamWithAndValue(t *testing.T) {
	d := Defaults()
	for _, p := range Params {
		s := p.With(d, p.Max)
		assert.Equal(t, p.Max, p.Value(s), p.Name)
		assert.Equal(t, p.Neutral, p.Value(d), "With must not modify its argument")
	}
	hb, _ := LookupParam("hb")
	assert.Equal(t, [3]int{0, 0, -7}, hb.With(d, -7).Hue)
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Settings)
	}{
		{"brightness", func(s *Settings) { s.Brightness = 256 }},
		{"contrast", func(s *Settings) { s.Contrast = -256 }},
		{"exposure", func(s *Settings) { s.Exposure = 4.5 }},
		{"saturation", func(s *Settings) { s.Saturation = -0.1 }},
		{"temperature", func(s *Settings) { s.ColorTemperature = 300 }},
		{"hueGreen", func(s *Settings) { s.Hue[Green] = -1000 }},
		{"lift", func(s *Settings) { s.Lift = 256 }},
		{"gamma", func(s *Settings) { s.Gamma = 0 }},
		{"gamma", func(s *Settings) { s.Gamma = math.NaN() }},
		{"gain", func(s *Settings) { s.Gain = 2.5 }},
		{"shadows", func(s *Settings) { s.Shadows = 1.01 }},
		{"midtones", func(s *Settings) { s.Midtones = math.NaN() }},
		{"highlights", func(s *Settings) { s.Highlights = -2 }},
	}
	for _, c := range cases {
		s := Defaults()
		c.mod(&s)
		err := s.Validate()
		require.Error(t, err, c.name)
		assert.True(t, errors.Is(err, ErrInvalidParameter), c.name)
		var pe *ParamError
		require.True(t, errors.As(err, &pe), c.name)
		assert.Equal(t, c.name, pe.Name)
	}
}

func TestValidateAcceptsBounds(t *testing.T) {
	d := Defaults()
	for _, p := range Params {
		assert.NoError(t, p.With(d, p.Max).Validate(), "%s max", p.Name)
		if !p.MinOpen {
			assert.NoError(t, p.With(d, p.Min).Validate(), "%s min", p.Name)
		}
	}
}

func TestParamCheck(t *testing.T) {
	b, _ := LookupParam("brightness")
	assert.NoError(t, b.Check(-255))
	assert.Error(t, b.Check(1.5))
	assert.Error(t, b.Check(math.Inf(1)))

	g, _ := LookupParam("gamma")
	assert.Error(t, g.Check(0))
	assert.NoError(t, g.Check(0.01))
	assert.NoError(t, g.Check(4))
}

func TestParamParse(t *testing.T) {
	b, _ := LookupParam("b")
	v, err := b.Parse(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)

	_, err = b.Parse("4.2")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = b.Parse("256")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	e, _ := LookupParam("exposure")
	v, err = e.Parse("-1.25")
	require.NoError(t, err)
	assert.Equal(t, -1.25, v)
	_, err = e.Parse("bright")
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = e.Parse("NaN")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParamFormatAndRange(t *testing.T) {
	b, _ := LookupParam("b")
	assert.Equal(t, "-12", b.Format(-12))
	assert.Equal(t, "[-255, 255]", b.Range())

	g, _ := LookupParam("g")
	assert.Equal(t, "1.5", g.Format(1.5))
	assert.Equal(t, "(0, 4]", g.Range())
}

func TestParamErrorMessage(t *testing.T) {
	err := (&ParamError{Name: "lift", Value: 300, Min: -255, Max: 255}).Error()
	assert.Equal(t, "invalid parameter lift: 300 not in [-255, 255]", err)
}
