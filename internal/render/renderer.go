package render

import (
	"slices"

	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/particles"
	"github.com/san-kum/ambient/internal/waves"
)

// Frame is everything one draw pass needs. The engine keeps the last one
// for exporters.
type Frame struct {
	Extent    geom.Extent
	Time      float64
	Scroll    float64
	Palette   palette.Palette
	Waves     []waves.Path
	Edges     []particles.Edge
	Particles []particles.Particle
}

// DrawFrame draws f onto s.
func DrawFrame(s Surface, f Frame) bool {
	return Draw(s, f.Particles, f.Edges, f.Waves, f.Palette)
}

// Draw clears s and paints the wave paths, edges and particles. It reports
// false without touching s when the surface is unavailable or empty.
func Draw(s Surface, parts []particles.Particle, edges []particles.Edge, paths []waves.Path, pal palette.Palette) bool {
	if !Available(s) || s.Size().Empty() {
		return false
	}
	s.Clear(pal.Background)

	order := make([]int, len(paths))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return paths[a].Band - paths[b].Band })
	for _, i := range order {
		p := paths[i]
		if len(p.Points) < 3 {
			continue
		}
		s.FillPath(p.Points, Fill{
			Color:          p.Fill.Color,
			Alpha:          p.Fill.Alpha,
			GradientTop:    p.GradientTop,
			GradientBottom: p.GradientBottom,
		})
	}

	for _, e := range edges {
		if e.Opacity <= 0 {
			continue
		}
		s.Line(e.A, e.B, e.Width, e.Color, e.Opacity)
	}

	for _, p := range parts {
		s.Circle(p.Pos, p.Radius, p.Color, p.Opacity)
	}
	return true
}
