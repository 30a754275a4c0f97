package grade

import (
	"fmt"
	"image"
	"time"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/Fepozopo/grade/pkg/stdimg"
)

// Option configures a Plan.
type Option func(*Plan)

// WithParallel splits the image pass across goroutines by row ranges.
// Output is byte-identical to the serial pass.
func WithParallel(on bool) Option {
	return func(p *Plan) { p.parallel = on }
}

// Plan holds the validated settings and the lookup tables built from
// them. A Plan is read-only after NewPlan and may be applied to any
// number of images, concurrently.
type Plan struct {
	settings Settings
	channels *ChannelLUT
	tones    *ToneLUT // nil when shadows, midtones and highlights are neutral
	parallel bool
}

// NewPlan validates s and builds its tables. Out-of-range settings are
// rejected here, before any table work.
func NewPlan(s Settings, opts ...Option) (*Plan, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p := &Plan{settings: s, channels: BuildChannelLUT(s)}
	if s.hasTonalRange() {
		p.tones = BuildToneLUT(s.Shadows, s.Midtones, s.Highlights)
	}
	for _, o := range opts {
		o(p)
	}
	Logger().Debug("grade: tables built",
		"tonalRange", p.tones != nil,
		"saturation", s.hasSaturation(),
		"parallel", p.parallel)
	return p, nil
}

// Settings returns the settings the plan was built from.
func (p *Plan) Settings() Settings { return p.settings }

// ChannelLUT returns a copy of the channel table.
func (p *Plan) ChannelLUT() ChannelLUT { return *p.channels }

// ToneLUT returns a copy of the tonal-range table; ok is false when the
// tonal range is neutral and no table was built.
func (p *Plan) ToneLUT() (t ToneLUT, ok bool) {
	if p.tones == nil {
		return t, false
	}
	return *p.tones, true
}

// ApplyPixel grades a single pixel. The luminance estimate is taken once
// from the incoming value and shared by saturation and tonal range; the
// channel table is applied last, to the already adjusted values.
func (p *Plan) ApplyPixel(px Pixel) Pixel {
	lum := EstimateLuminance(px)
	if p.settings.hasSaturation() {
		px = ApplySaturation(px, p.settings.Saturation, lum)
	}
	if p.tones != nil {
		px = ApplyTonalRange(px, p.tones, lum)
	}
	return p.channels.Apply(px)
}

// Apply grades src into a newly allocated image with the same bounds.
// src is only read. Alpha is copied through unchanged.
func (p *Plan) Apply(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	in, ok := src.(*image.NRGBA)
	if !ok {
		in = stdimg.ToNRGBA(src)
	}
	b := in.Bounds()
	out := image.NewNRGBA(b)
	w := b.Dx()
	rows := func(start, end int) {
		for y := b.Min.Y + start; y < b.Min.Y+end; y++ {
			i := in.PixOffset(b.Min.X, y)
			j := out.PixOffset(b.Min.X, y)
			for x := 0; x < w; x++ {
				px := p.ApplyPixel(Pixel{in.Pix[i+0], in.Pix[i+1], in.Pix[i+2]})
				out.Pix[j+0] = px[Red]
				out.Pix[j+1] = px[Green]
				out.Pix[j+2] = px[Blue]
				out.Pix[j+3] = in.Pix[i+3]
				i += 4
				j += 4
			}
		}
	}
	if p.parallel {
		parallel.Line(b.Dy(), rows)
	} else {
		rows(0, b.Dy())
	}
	return out
}

// Grade validates s, builds its tables and applies them to src.
func Grade(src image.Image, s Settings, opts ...Option) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	start := time.Now()
	p, err := NewPlan(s, opts...)
	if err != nil {
		return nil, err
	}
	out := p.Apply(src)
	Logger().Info("grade: rendered",
		"width", out.Bounds().Dx(),
		"height", out.Bounds().Dy(),
		"elapsed", time.Since(start))
	return out, nil
}
