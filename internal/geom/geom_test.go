package geom

import (
	"math"
	"testing"
)

func TestExtentNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    Extent
		empty bool
	}{
		{"regular", Extent{800, 600}, false},
		{"zero width", Extent{0, 600}, true},
		{"negative", Extent{-10, 20}, true},
		{"nan", Extent{math.NaN(), 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.in.Normalize()
			if e.Empty() != tt.empty {
				t.Errorf("Empty() = %v, want %v", e.Empty(), tt.empty)
			}
			if e.Width < 0 || e.Height < 0 {
				t.Errorf("negative dimension after Normalize: %+v", e)
			}
		})
	}
}

func TestExtentClamp(t *testing.T) {
	e := Ext(100, 50)
	got := e.Clamp(Pt(-3, 75))
	if got != Pt(0, 50) {
		t.Errorf("Clamp = %+v, want (0,50)", got)
	}
	if !e.Contains(got) {
		t.Error("clamped point should be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	view := Rect{0, 0, 800, 600}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{10, 10, 50, 50}, true},
		{"partially above", Rect{0, -100, 800, 150}, true},
		{"fully above", Rect{0, -700, 800, 600}, false},
		{"touching edge", Rect{0, 600, 800, 100}, false},
		{"empty", Rect{10, 10, 0, 0}, false},
	}

	for _, tt := range tests {
		if got := view.Intersects(tt.r); got != tt.want {
			t.Errorf("%s: Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	if p.Len() != 5 {
		t.Errorf("Len = %v, want 5", p.Len())
	}
	if d := p.Dist(Pt(0, 0)); d != 5 {
		t.Errorf("Dist = %v, want 5", d)
	}
	if s := p.Scale(2).Sub(Pt(1, 1)); s != Pt(5, 7) {
		t.Errorf("Scale/Sub = %+v", s)
	}
}
