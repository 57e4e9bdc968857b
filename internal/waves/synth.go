package waves

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
)

type Params struct {
	Bands         int     `yaml:"bands"`
	Step          float64 `yaml:"step"`
	TimeStep      float64 `yaml:"time_step"`
	BaseFrequency float64 `yaml:"base_frequency"`
	Chaos         float64 `yaml:"chaos"`
	ParallaxScale float64 `yaml:"parallax_scale"`
	HeightDivisor float64 `yaml:"height_divisor"`
	Drift         float64 `yaml:"drift"`
}

func DefaultParams() Params {
	return Params{
		Bands:         7,
		Step:          5,
		TimeStep:      0.01,
		BaseFrequency: 0.003,
		Chaos:         10,
		ParallaxScale: 0.1,
		HeightDivisor: 5,
		Drift:         0.05,
	}
}

func (p Params) Validate() error {
	switch {
	case p.Bands < 0:
		return fmt.Errorf("bands must not be negative, got %d", p.Bands)
	case p.Step <= 0:
		return fmt.Errorf("step must be positive, got %g", p.Step)
	case p.TimeStep <= 0:
		return fmt.Errorf("time_step must be positive, got %g", p.TimeStep)
	case p.HeightDivisor <= 0:
		return fmt.Errorf("height_divisor must be positive, got %g", p.HeightDivisor)
	}
	return nil
}

// Band holds the index-derived parameters of one layer. The per-tick
// values are these bases perturbed by functions of global time.
type Band struct {
	Index     int
	Amplitude float64
	Frequency float64
	Speed     float64
	Parallax  float64
	Offset    float64 // fraction of drawable height
	Fill      palette.Swatch
}

// Path is the closed fill region of one band: the sampled profile followed
// by the bottom-right and bottom-left corners of the extent.
type Path struct {
	Band   int
	Points []geom.Point
	Fill   palette.Swatch

	// Vertical gradient span: Fill at GradientTop fading to transparent at
	// GradientBottom.
	GradientTop    float64
	GradientBottom float64
}

type Synth struct {
	params Params
	bands  []Band
	extent geom.Extent
}

func NewSynth(p Params) *Synth {
	if p.Step <= 0 {
		p.Step = DefaultParams().Step
	}
	if p.HeightDivisor <= 0 {
		p.HeightDivisor = DefaultParams().HeightDivisor
	}
	return &Synth{params: p}
}

func (s *Synth) Params() Params { return s.params }
func (s *Synth) Bands() []Band  { return s.bands }

func (s *Synth) Resize(e geom.Extent) { s.extent = e.Normalize() }

// Configure replaces the bands. Base offsets spread the bands evenly down
// the drawable height; colours cycle through the palette.
func (s *Synth) Configure(n int, pal palette.Palette) {
	if n < 0 {
		n = 0
	}
	s.bands = make([]Band, n)
	for i := range s.bands {
		u := float64(i) / float64(n)
		s.bands[i] = Band{
			Index:     i,
			Amplitude: 0.4 + u*0.6,
			Frequency: s.params.BaseFrequency,
			Speed:     0.15 + u*0.4,
			Parallax:  0.05 + u*0.5,
			Offset:    float64(i) / (float64(n) - 0.5),
			Fill:      pal.Wave(i),
		}
	}
}

// Recolor swaps band colours without touching their geometry.
func (s *Synth) Recolor(pal palette.Palette) {
	for i := range s.bands {
		s.bands[i].Fill = pal.Wave(i)
	}
}

type shape struct {
	base, waveH, amp, freq, phase, shift float64
}

func (s *Synth) shapeAt(b Band, t, scroll, height float64) shape {
	i := float64(b.Index)
	amp := b.Amplitude + math.Sin(t*0.1+i)*0.2
	freq := (b.Frequency + math.Sin(t*0.05+i*2)*0.001) * (1 + math.Sin(t*0.1+i)*0.3)
	speed := b.Speed + math.Cos(t*0.1)*0.05
	return shape{
		base:  b.Offset*height + math.Sin(t*0.2+i*3)*height*s.params.Drift,
		waveH: height / s.params.HeightDivisor,
		amp:   amp,
		freq:  freq,
		phase: t * speed,
		shift: scroll * b.Parallax * s.params.ParallaxScale,
	}
}

func (s *Synth) height(sh shape, x float64) float64 {
	a := sh.waveH * sh.amp
	y := sh.base +
		math.Sin(x*sh.freq+sh.phase)*a +
		math.Sin(x*sh.freq*1.5+sh.phase*1.3)*a*0.3 +
		math.Sin(x*sh.freq*0.5+sh.phase*0.7)*a*0.2 +
		math.Sin(x*0.01+sh.phase*2)*s.params.Chaos
	return y - sh.shift
}

// SampleHeight returns the band's vertical offset at x within extent. It
// is a pure function of its arguments and the configuration.
func (s *Synth) SampleHeight(band int, extent geom.Extent, x, t, scroll float64) float64 {
	if band < 0 || band >= len(s.bands) {
		return 0
	}
	return s.height(s.shapeAt(s.bands[band], t, scroll, extent.Normalize().Height), x)
}

// SampleCount is the number of profile samples across width.
func (s *Synth) SampleCount(width float64) int {
	if width <= 0 {
		return 1
	}
	return int(math.Ceil(width/s.params.Step)) + 1
}

// PathFor samples the band every Step units across [0, extent.Width] and
// closes the region through the bottom corners.
func (s *Synth) PathFor(band int, extent geom.Extent, t, scroll float64) Path {
	return s.pathInto(nil, band, extent, t, scroll)
}

// pathInto is PathFor appending into pts[:0].
func (s *Synth) pathInto(pts []geom.Point, band int, extent geom.Extent, t, scroll float64) Path {
	extent = extent.Normalize()
	if band < 0 || band >= len(s.bands) {
		return Path{Band: band}
	}
	b := s.bands[band]
	sh := s.shapeAt(b, t, scroll, extent.Height)
	n := s.SampleCount(extent.Width)
	pts = slices.Grow(pts[:0], n+2)
	for k := 0; k < n; k++ {
		x := math.Min(float64(k)*s.params.Step, extent.Width)
		pts = append(pts, geom.Pt(x, s.height(sh, x)))
	}
	pts = append(pts, geom.Pt(extent.Width, extent.Height), geom.Pt(0, extent.Height))
	return Path{
		Band:           band,
		Points:         pts,
		Fill:           b.Fill,
		GradientTop:    sh.base - sh.waveH,
		GradientBottom: sh.base + sh.waveH*2,
	}
}

// Paths fills dst with every band's path, back to front. The point
// buffers already held by dst, up to its capacity, are reused.
func (s *Synth) Paths(dst []Path, t, scroll float64) []Path {
	n := len(s.bands)
	if cap(dst) < n {
		grown := make([]Path, n)
		copy(grown, dst[:cap(dst)])
		dst = grown
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = s.pathInto(dst[i].Points, i, s.extent, t, scroll)
	}
	return dst
}
