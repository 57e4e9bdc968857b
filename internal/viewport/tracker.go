// Package viewport tracks the drawable extent, the host scroll offset and
// whether the animated region is currently on screen.
package viewport

import (
	"math"

	"github.com/san-kum/ambient/internal/geom"
)

// State is the tracker's view of the host, read by both engines each tick.
type State struct {
	Extent     geom.Extent
	Scroll     float64
	PrevScroll float64
	Visible    bool
}

// ScrollDelta is the change between the last two scroll offsets.
func (s State) ScrollDelta() float64 { return s.Scroll - s.PrevScroll }

// Probe measures the animated region's rectangle relative to the viewport,
// and the viewport size. ok=false means the host could not measure this
// time; the previous visibility is kept.
type Probe interface {
	Measure() (region geom.Rect, viewport geom.Extent, ok bool)
}

type ProbeFunc func() (geom.Rect, geom.Extent, bool)

func (f ProbeFunc) Measure() (geom.Rect, geom.Extent, bool) { return f() }

type Tracker struct {
	state State
	probe Probe
}

// NewTracker returns a tracker that starts visible. With a nil probe the
// region is assumed to always be on screen.
func NewTracker(probe Probe) *Tracker {
	return &Tracker{probe: probe, state: State{Visible: true}}
}

func (t *Tracker) State() State { return t.state }

func (t *Tracker) Resize(e geom.Extent) { t.state.Extent = e.Normalize() }

// Scroll records a new vertical offset. Negative and non-finite offsets
// clamp to 0.
func (t *Tracker) Scroll(offset float64) {
	if offset < 0 || math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	t.state.PrevScroll = t.state.Scroll
	t.state.Scroll = offset
}

// Update re-measures the region and reports whether visibility flipped.
func (t *Tracker) Update() (State, bool) {
	prev := t.state.Visible
	if t.probe == nil {
		t.state.Visible = true
	} else if region, vp, ok := t.probe.Measure(); ok {
		vp = vp.Normalize()
		t.state.Visible = region.Intersects(geom.Rect{W: vp.Width, H: vp.Height})
	}
	return t.state, t.state.Visible != prev
}
