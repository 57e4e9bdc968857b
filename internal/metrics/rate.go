package metrics

import "time"

// TickRate estimates executed ticks per second over a sliding window.
type TickRate struct {
	name   string
	window time.Duration
	stamps []time.Time
}

func NewTickRate(window time.Duration) *TickRate {
	if window <= 0 {
		window = time.Second
	}
	return &TickRate{name: "tick_rate", window: window}
}

func (r *TickRate) Name() string { return r.name }

func (r *TickRate) Observe(s FrameStats) {
	r.stamps = append(r.stamps, s.At)
	cut := 0
	for cut < len(r.stamps) && s.At.Sub(r.stamps[cut]) > r.window {
		cut++
	}
	r.stamps = r.stamps[cut:]
}

func (r *TickRate) Value() float64 {
	if len(r.stamps) < 2 {
		return 0
	}
	span := r.stamps[len(r.stamps)-1].Sub(r.stamps[0])
	if span <= 0 {
		return 0
	}
	return float64(len(r.stamps)-1) / span.Seconds()
}

func (r *TickRate) Reset() { r.stamps = r.stamps[:0] }

// Visibility is the fraction of executed ticks that found the region
// visible.
type Visibility struct {
	name             string
	visible, samples int
}

func NewVisibility() *Visibility { return &Visibility{name: "visibility"} }

func (v *Visibility) Name() string { return v.name }

func (v *Visibility) Observe(s FrameStats) {
	v.samples++
	if s.Visible {
		v.visible++
	}
}

func (v *Visibility) Value() float64 {
	if v.samples == 0 {
		return 1.0
	}
	return float64(v.visible) / float64(v.samples)
}

func (v *Visibility) Reset() {
	v.visible = 0
	v.samples = 0
}
