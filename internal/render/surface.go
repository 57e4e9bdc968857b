// Package render paints one frame of the background onto a Surface.
//
// Drawing order is fixed: clear, wave bands back to front by index, edges,
// then particles. The renderer holds no state between frames.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
)

// Surface is the drawing target supplied by the host.
type Surface interface {
	Size() geom.Extent
	Resize(w, h int)
	Clear(bg colorful.Color)
	FillPath(pts []geom.Point, fill Fill)
	Line(a, b geom.Point, width float64, c colorful.Color, alpha float64)
	Circle(center geom.Point, r float64, c colorful.Color, alpha float64)
}

// Readier is implemented by surfaces that can be momentarily unavailable.
type Readier interface {
	Ready() bool
}

// Fill paints a region with Color at Alpha. When GradientTop <
// GradientBottom the alpha fades linearly to zero between the two rows.
type Fill struct {
	Color          colorful.Color
	Alpha          float64
	GradientTop    float64
	GradientBottom float64
}

func (f Fill) Gradient() bool { return f.GradientTop < f.GradientBottom }

// Available reports whether s can be drawn on now.
func Available(s Surface) bool {
	if s == nil {
		return false
	}
	if r, ok := s.(Readier); ok {
		return r.Ready()
	}
	return true
}
