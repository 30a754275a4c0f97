package grade

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParamKind tells callers how a parameter is entered and printed.
type ParamKind string

const (
	ParamInt   ParamKind = "int"
	ParamFloat ParamKind = "float"
)

// ParamSpec describes one adjustable field of Settings. Params is the
// single source of truth for names, flags, ranges and neutral values;
// validation, the CLI flags and preset handling all read from it.
type ParamSpec struct {
	Name        string // canonical name, e.g. "brightness"
	Flag        string // short command-line flag without the dash
	Kind        ParamKind
	Min         float64
	Max         float64
	MinOpen     bool // Min itself is excluded
	Neutral     float64
	Description string

	get func(Settings) float64
	set func(*Settings, float64)
}

// Params lists every field of Settings in display order.
var Params = []ParamSpec{
	intParam("brightness", "b", -255, 255, "additive offset on every channel",
		func(s Settings) int { return s.Brightness }, func(s *Settings, v int) { s.Brightness = v }),
	intParam("contrast", "c", -255, 255, "linear contrast pivoting around 128",
		func(s Settings) int { return s.Contrast }, func(s *Settings, v int) { s.Contrast = v }),
	floatParam("exposure", "e", -4, 4, false, 0, "exposure in stops (multiplies by 2^e)",
		func(s Settings) float64 { return s.Exposure }, func(s *Settings, v float64) { s.Exposure = v }),
	floatParam("saturation", "s", 0, 4, false, 1, "blend factor away from luminance (0 = gray)",
		func(s Settings) float64 { return s.Saturation }, func(s *Settings, v float64) { s.Saturation = v }),
	intParam("temperature", "t", -255, 255, "warm (+) raises red and lowers blue, cool (-) the reverse",
		func(s Settings) int { return s.ColorTemperature }, func(s *Settings, v int) { s.ColorTemperature = v }),
	intParam("hueRed", "hr", -255, 255, "red channel offset",
		func(s Settings) int { return s.Hue[Red] }, func(s *Settings, v int) { s.Hue[Red] = v }),
	intParam("hueGreen", "hg", -255, 255, "green channel offset",
		func(s Settings) int { return s.Hue[Green] }, func(s *Settings, v int) { s.Hue[Green] = v }),
	intParam("hueBlue", "hb", -255, 255, "blue channel offset",
		func(s Settings) int { return s.Hue[Blue] }, func(s *Settings, v int) { s.Hue[Blue] = v }),
	intParam("lift", "l", -255, 255, "lift: additive shift of the blacks",
		func(s Settings) int { return s.Lift }, func(s *Settings, v int) { s.Lift = v }),
	floatParam("gamma", "g", 0, 4, true, 1, "gamma: midtone exponent of lift/gamma/gain",
		func(s Settings) float64 { return s.Gamma }, func(s *Settings, v float64) { s.Gamma = v }),
	floatParam("gain", "gn", 0, 2, false, 1, "gain: multiplier of lift/gamma/gain",
		func(s Settings) float64 { return s.Gain }, func(s *Settings, v float64) { s.Gain = v }),
	floatParam("shadows", "sh", -1, 1, false, 0, "shadows weight of the tonal-range curve",
		func(s Settings) float64 { return s.Shadows }, func(s *Settings, v float64) { s.Shadows = v }),
	floatParam("midtones", "md", -1, 1, false, 0, "midtones weight of the tonal-range curve",
		func(s Settings) float64 { return s.Midtones }, func(s *Settings, v float64) { s.Midtones = v }),
	floatParam("highlights", "hl", -1, 1, false, 0, "highlights weight of the tonal-range curve",
		func(s Settings) float64 { return s.Highlights }, func(s *Settings, v float64) { s.Highlights = v }),
}

func intParam(name, flag string, lo, hi float64, desc string, get func(Settings) int, set func(*Settings, int)) ParamSpec {
	return ParamSpec{
		Name: name, Flag: flag, Kind: ParamInt, Min: lo, Max: hi, Description: desc,
		get: func(s Settings) float64 { return float64(get(s)) },
		set: func(s *Settings, v float64) { set(s, int(v)) },
	}
}

func floatParam(name, flag string, lo, hi float64, minOpen bool, neutral float64, desc string, get func(Settings) float64, set func(*Settings, float64)) ParamSpec {
	return ParamSpec{
		Name: name, Flag: flag, Kind: ParamFloat, Min: lo, Max: hi, MinOpen: minOpen,
		Neutral: neutral, Description: desc, get: get, set: set,
	}
}

// LookupParam finds a parameter by canonical name (case-insensitive) or flag.
func LookupParam(key string) (ParamSpec, bool) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "-")
	for _, p := range Params {
		if strings.EqualFold(p.Name, key) || p.Flag == key {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Value reads the parameter from s.
func (p ParamSpec) Value(s Settings) float64 { return p.get(s) }

// With returns a copy of s with the parameter set to v. It does not validate.
func (p ParamSpec) With(s Settings, v float64) Settings {
	p.set(&s, v)
	return s
}

// Check reports whether v is a legal value for the parameter.
func (p ParamSpec) Check(v float64) error {
	bad := math.IsNaN(v) || v > p.Max || v < p.Min || (p.MinOpen && v == p.Min)
	if p.Kind == ParamInt && v != math.Trunc(v) {
		bad = true
	}
	if bad {
		return &ParamError{Name: p.Name, Value: v, Min: p.Min, Max: p.Max}
	}
	return nil
}

// Parse converts textual input into a checked value for the parameter.
func (p ParamSpec) Parse(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	var v float64
	switch p.Kind {
	case ParamInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: expected integer, got %q: %w", p.Name, raw, ErrInvalidParameter)
		}
		v = float64(n)
	default:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %s: expected float, got %q: %w", p.Name, raw, ErrInvalidParameter)
		}
		v = f
	}
	if err := p.Check(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Format renders v the way Parse accepts it.
func (p ParamSpec) Format(v float64) string {
	if p.Kind == ParamInt {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Range returns a human-readable interval, e.g. "[-255, 255]" or "(0, 4]".
func (p ParamSpec) Range() string {
	open := "["
	if p.MinOpen {
		open = "("
	}
	return open + p.Format(p.Min) + ", " + p.Format(p.Max) + "]"
}
