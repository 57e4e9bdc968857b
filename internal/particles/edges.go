package particles

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
)

// Edge is a connective line between particles I and J (I < J).
type Edge struct {
	I, J    int
	A, B    geom.Point
	Opacity float64
	Width   float64
	Color   colorful.Color
}

// Edges appends one Edge per unordered pair closer than the connection
// threshold. The threshold widens to ActiveEdgeDistance when either end is
// active. Opacity falls linearly with distance and is scaled by
// ActiveEdgeBoost for active pairs. Colour is the active end's colour when
// exactly one end is active, a palette blend when both are, otherwise the
// first particle's colour.
//
// The pass is O(n²) in the population, which MaxParticles bounds.
func (f *Field) Edges(dst []Edge) []Edge {
	dst = dst[:0]
	pr := f.params
	for i := 0; i < len(f.parts); i++ {
		a := &f.parts[i]
		for j := i + 1; j < len(f.parts); j++ {
			b := &f.parts[j]
			threshold, factor := pr.EdgeDistance, 1.0
			if a.Active || b.Active {
				threshold, factor = pr.ActiveEdgeDistance, pr.ActiveEdgeBoost
			}
			dist := a.Pos.Dist(b.Pos)
			if dist >= threshold {
				continue
			}
			dst = append(dst, Edge{
				I:       i,
				J:       j,
				A:       a.Pos,
				B:       b.Pos,
				Opacity: geom.Clamp((1-dist/threshold)*factor, 0, 1),
				Width:   pr.EdgeWidth,
				Color:   f.edgeColor(a, b),
			})
		}
	}
	return dst
}

func (f *Field) edgeColor(a, b *Particle) colorful.Color {
	switch {
	case a.Active && b.Active:
		return f.pal.Blend(a.Color, b.Color)
	case b.Active:
		return b.Color
	default:
		return a.Color
	}
}
