// Package export writes frames out of the engine: a deterministic SVG of
// one frame, and animated GIFs of rendered raster frames.
package export

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/waves"
)

func hex(c colorful.Color) string { return c.Clamped().Hex() }

// FrameSVG renders f as a standalone SVG document. The output depends only
// on f, so equal frames give byte-identical documents.
func FrameSVG(f render.Frame) string {
	w, h := f.Extent.Width, f.Extent.Height

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, hex(f.Palette.Background))

	paths := slices.Clone(f.Waves)
	slices.SortStableFunc(paths, func(a, b waves.Path) int { return a.Band - b.Band })

	// Gradients are in user space so each band fades at its own rows.
	sb.WriteString("<defs>\n")
	for _, p := range paths {
		if p.GradientTop >= p.GradientBottom {
			continue
		}
		fmt.Fprintf(&sb, `<linearGradient id="band%d" gradientUnits="userSpaceOnUse" x1="0" y1="%.2f" x2="0" y2="%.2f">`+
			`<stop offset="0" stop-color="%s" stop-opacity="%.3f"/><stop offset="1" stop-color="%s" stop-opacity="0"/></linearGradient>`+"\n",
			p.Band, p.GradientTop, p.GradientBottom, hex(p.Fill.Color), p.Fill.Alpha, hex(p.Fill.Color))
	}
	sb.WriteString("</defs>\n<g id=\"waves\">\n")

	for _, p := range paths {
		if len(p.Points) < 3 {
			continue
		}
		fill := fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex(p.Fill.Color), p.Fill.Alpha)
		if p.GradientTop < p.GradientBottom {
			fill = fmt.Sprintf(`fill="url(#band%d)"`, p.Band)
		}
		fmt.Fprintf(&sb, `<path %s d="%s"/>`+"\n", fill, pathData(p.Points))
	}
	sb.WriteString("</g>\n<g id=\"edges\" stroke-linecap=\"round\">\n")

	for _, e := range f.Edges {
		if e.Opacity <= 0 {
			continue
		}
		fmt.Fprintf(&sb, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
			e.A.X, e.A.Y, e.B.X, e.B.Y, hex(e.Color), e.Opacity, e.Width)
	}
	sb.WriteString("</g>\n<g id=\"particles\">\n")

	for _, p := range f.Particles {
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
			p.Pos.X, p.Pos.Y, p.Radius, hex(p.Color), p.Opacity)
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func pathData(pts []geom.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&sb, "M%.2f,%.2f", p.X, p.Y)
		} else {
			fmt.Fprintf(&sb, " L%.2f,%.2f", p.X, p.Y)
		}
	}
	sb.WriteString(" Z")
	return sb.String()
}

func SaveSVG(path string, f render.Frame) error {
	return os.WriteFile(path, []byte(FrameSVG(f)), 0644)
}
