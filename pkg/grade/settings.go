// Package grade is the color-grading engine: per-channel tone functions,
// the channel and tonal-range lookup tables built from a Settings value,
// and the image pass that combines them.
//
// Nothing in this package reads or writes files. Callers hand in an
// image and a Settings snapshot and get a freshly allocated image back;
// the source is never modified, so re-grading from the same source with
// different settings (or with Defaults) is always possible.
package grade

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports a single settings field outside its legal range.
type ParamError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v not in [%v, %v]", e.Name, e.Value, e.Min, e.Max)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// Settings is an immutable snapshot of every adjustment. It is passed by
// value; the UI side owns its own mutable copy and hands a fresh one to
// the engine for each render.
type Settings struct {
	Contrast         int     `toml:"contrast"`
	Brightness       int     `toml:"brightness"`
	Exposure         float64 `toml:"exposure"`
	Saturation       float64 `toml:"saturation"`
	ColorTemperature int     `toml:"temperature"`
	// Hue holds per-channel offsets indexed by Red, Green, Blue.
	Hue        [3]int  `toml:"hue"`
	Lift       int     `toml:"lift"`
	Gamma      float64 `toml:"gamma"`
	Gain       float64 `toml:"gain"`
	Shadows    float64 `toml:"shadows"`
	Midtones   float64 `toml:"midtones"`
	Highlights float64 `toml:"highlights"`
}

// Defaults returns the neutral settings: grading with them is the identity.
func Defaults() Settings {
	return Settings{
		Saturation: 1.0,
		Gamma:      1.0,
		Gain:       1.0,
	}
}

// Validate checks every field against its range in Params.
func (s Settings) Validate() error {
	for _, p := range Params {
		if err := p.Check(p.Value(s)); err != nil {
			return err
		}
	}
	return nil
}

// IsNeutral reports whether s grades to the identity.
func (s Settings) IsNeutral() bool {
	return s == Defaults()
}

func (s Settings) hasContrast() bool    { return s.Contrast != 0 }
func (s Settings) hasBrightness() bool  { return s.Brightness != 0 }
func (s Settings) hasExposure() bool    { return s.Exposure != 0 }
func (s Settings) hasSaturation() bool  { return s.Saturation != 1 }
func (s Settings) hasTemperature() bool { return s.ColorTemperature != 0 }
func (s Settings) hasHue() bool         { return s.Hue != [3]int{} }

func (s Settings) hasLiftGammaGain() bool {
	return s.Lift != 0 || s.Gamma != 1 || s.Gain != 1
}

func (s Settings) hasTonalRange() bool {
	return s.Shadows != 0 || s.Midtones != 0 || s.Highlights != 0
}
