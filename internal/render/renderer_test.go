package render

import (
	"testing"

	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/particles"
	"github.com/san-kum/ambient/internal/waves"
)

func testFrame() Frame {
	pal := palette.For(palette.Dark)
	tri := []geom.Point{{X: 0, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 0, Y: 50}}
	return Frame{
		Extent:  geom.Ext(50, 50),
		Palette: pal,
		Waves: []waves.Path{
			{Band: 2, Points: tri, Fill: pal.Wave(2)},
			{Band: 0, Points: tri, Fill: pal.Wave(0)},
			{Band: 1, Points: tri, Fill: pal.Wave(1)},
		},
		Edges: []particles.Edge{
			{A: geom.Pt(1, 1), B: geom.Pt(9, 9), Opacity: 0.4, Width: 0.5, Color: pal.Particles[0]},
			{A: geom.Pt(1, 1), B: geom.Pt(2, 2), Opacity: 0, Width: 0.5, Color: pal.Particles[0]},
		},
		Particles: []particles.Particle{
			{Pos: geom.Pt(25, 25), Radius: 4, Opacity: 0.9, Color: pal.Particles[1]},
			{Pos: geom.Pt(5, 5), Radius: 2, Opacity: 0.8, Color: pal.Particles[2]},
		},
	}
}

func TestDrawOrder(t *testing.T) {
	rec := NewRecorder(50, 50)
	f := testFrame()
	if !DrawFrame(rec, f) {
		t.Fatal("draw on a ready surface should succeed")
	}

	want := []OpKind{OpClear, OpFill, OpFill, OpFill, OpLine, OpCircle, OpCircle}
	if len(rec.Ops) != len(want) {
		t.Fatalf("got %d ops, want %d", len(rec.Ops), len(want))
	}
	for i, k := range want {
		if rec.Ops[i].Kind != k {
			t.Errorf("op %d = %v, want %v", i, rec.Ops[i].Kind, k)
		}
	}

	for i, band := range []int{0, 1, 2} {
		if rec.Ops[1+i].Alpha != f.Palette.Wave(band).Alpha {
			t.Errorf("fill %d not band %d (alpha %v)", i, band, rec.Ops[1+i].Alpha)
		}
	}
	if rec.Ops[5].Alpha != 0.9 {
		t.Errorf("particle alpha = %v, want opacity 0.9", rec.Ops[5].Alpha)
	}
}

func TestDrawSkipsUnavailableSurface(t *testing.T) {
	rec := NewRecorder(50, 50)
	rec.Down = true
	if DrawFrame(rec, testFrame()) {
		t.Error("draw should report false on an unavailable surface")
	}
	if len(rec.Ops) != 0 {
		t.Errorf("unavailable surface received %d ops", len(rec.Ops))
	}

	if DrawFrame(nil, testFrame()) {
		t.Error("draw on nil surface should report false")
	}

	empty := NewRecorder(0, 40)
	if DrawFrame(empty, testFrame()) || len(empty.Ops) != 0 {
		t.Error("zero-area surface should not be drawn")
	}
}

func TestDrawSkipsDegeneratePaths(t *testing.T) {
	rec := NewRecorder(10, 10)
	f := testFrame()
	f.Waves = []waves.Path{{Band: 0, Points: []geom.Point{{X: 0, Y: 0}}}}
	f.Edges, f.Particles = nil, nil
	DrawFrame(rec, f)
	if rec.Count(OpFill) != 0 {
		t.Error("paths with fewer than 3 points should be skipped")
	}
	if rec.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", rec.Frames())
	}
}
