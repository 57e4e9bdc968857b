package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
)

// Raster is an in-memory RGBA surface backed by a gg drawing context.
type Raster struct {
	dc   *gg.Context
	w, h int
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

func (r *Raster) Size() geom.Extent { return geom.Ext(float64(r.w), float64(r.h)) }

// Resize replaces the backing image; previous pixels are discarded.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.w, r.h = w, h
	r.dc = gg.NewContext(max(w, 1), max(h, 1))
}

func (r *Raster) Clear(bg colorful.Color) {
	r.dc.SetColor(nrgba(bg, 1))
	r.dc.Clear()
}

func (r *Raster) FillPath(pts []geom.Point, fill Fill) {
	if len(pts) == 0 {
		return
	}
	r.dc.NewSubPath()
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.ClosePath()

	if fill.Gradient() {
		g := gg.NewLinearGradient(0, fill.GradientTop, 0, fill.GradientBottom)
		g.AddColorStop(0, nrgba(fill.Color, fill.Alpha))
		g.AddColorStop(1, nrgba(fill.Color, 0))
		r.dc.SetFillStyle(g)
	} else {
		r.dc.SetColor(nrgba(fill.Color, fill.Alpha))
	}
	r.dc.Fill()
}

func (r *Raster) Line(a, b geom.Point, width float64, c colorful.Color, alpha float64) {
	r.dc.SetLineWidth(width)
	r.dc.SetColor(nrgba(c, alpha))
	r.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	r.dc.Stroke()
}

func (r *Raster) Circle(center geom.Point, radius float64, c colorful.Color, alpha float64) {
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.dc.SetColor(nrgba(c, alpha))
	r.dc.Fill()
}

func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) SavePNG(path string) error { return r.dc.SavePNG(path) }

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	cr, cg, cb := c.Clamped().RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(geom.Clamp(alpha, 0, 1)*255 + 0.5)}
}
