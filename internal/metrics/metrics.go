// Package metrics aggregates per-frame statistics reported by the engine.
package metrics

import "time"

// FrameStats describes one executed tick.
type FrameStats struct {
	At        time.Time
	Time      float64
	Particles int
	Active    int
	Edges     int
	Bands     int
	Visible   bool
	Drawn     bool
}

type Metric interface {
	Name() string
	Observe(s FrameStats)
	Value() float64
	Reset()
}

// Set evaluates a group of metrics together.
type Set []Metric

func (s Set) Observe(st FrameStats) {
	for _, m := range s {
		m.Observe(st)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Default returns the metrics every host shows.
func Default() Set {
	return Set{NewPopulation(), NewEdgeLoad(), NewActiveRatio(), NewTickRate(time.Second), NewVisibility()}
}
