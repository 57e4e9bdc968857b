package viewport

import (
	"testing"

	"github.com/san-kum/ambient/internal/geom"
)

type fakeProbe struct {
	region geom.Rect
	vp     geom.Extent
	ok     bool
	calls  int
}

func (f *fakeProbe) Measure() (geom.Rect, geom.Extent, bool) {
	f.calls++
	return f.region, f.vp, f.ok
}

func TestTrackerWithoutProbeIsVisible(t *testing.T) {
	tr := NewTracker(nil)
	st, changed := tr.Update()
	if !st.Visible || changed {
		t.Errorf("expected visible and unchanged, got %+v changed=%v", st, changed)
	}
}

func TestTrackerVisibilityTransitions(t *testing.T) {
	p := &fakeProbe{region: geom.Rect{Y: 0, W: 800, H: 600}, vp: geom.Ext(800, 600), ok: true}
	tr := NewTracker(p)

	if st, changed := tr.Update(); !st.Visible || changed {
		t.Fatalf("initial update: %+v changed=%v", st, changed)
	}

	p.region.Y = -900
	st, changed := tr.Update()
	if st.Visible || !changed {
		t.Fatalf("scrolled out: %+v changed=%v", st, changed)
	}

	if _, changed := tr.Update(); changed {
		t.Error("repeated update should not report a transition")
	}

	p.region.Y = -300
	st, changed = tr.Update()
	if !st.Visible || !changed {
		t.Fatalf("scrolled back: %+v changed=%v", st, changed)
	}
	if p.calls != 4 {
		t.Errorf("probe called %d times, want 4", p.calls)
	}
}

func TestTrackerKeepsVisibilityWhenMeasureFails(t *testing.T) {
	p := &fakeProbe{region: geom.Rect{Y: 5000, W: 10, H: 10}, vp: geom.Ext(800, 600), ok: true}
	tr := NewTracker(p)
	tr.Update()
	if tr.State().Visible {
		t.Fatal("region below the fold should be invisible")
	}
	p.ok = false
	p.region.Y = 0
	if st, changed := tr.Update(); st.Visible || changed {
		t.Errorf("failed measurement must keep previous state: %+v", st)
	}
}

func TestTrackerScroll(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		scroll float64
		prev   float64
	}{
		{"single", []float64{120}, 120, 0},
		{"sequence", []float64{10, 40}, 40, 10},
		{"negative clamps", []float64{50, -20}, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(nil)
			for _, v := range tt.in {
				tr.Scroll(v)
			}
			st := tr.State()
			if st.Scroll != tt.scroll || st.PrevScroll != tt.prev {
				t.Errorf("scroll=%v prev=%v, want %v %v", st.Scroll, st.PrevScroll, tt.scroll, tt.prev)
			}
			if st.ScrollDelta() != tt.scroll-tt.prev {
				t.Errorf("ScrollDelta = %v", st.ScrollDelta())
			}
		})
	}
}

func TestTrackerResize(t *testing.T) {
	tr := NewTracker(nil)
	tr.Resize(geom.Extent{Width: -5, Height: 300})
	if st := tr.State(); st.Extent.Width != 0 || st.Extent.Height != 300 {
		t.Errorf("Extent = %+v", st.Extent)
	}
}
