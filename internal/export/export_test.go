package export

import (
	"bytes"
	"image/gif"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/particles"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/waves"
	"github.com/stretchr/testify/require"
)

func sampleFrame(t float64) render.Frame {
	pal := palette.For(palette.Light)
	ext := geom.Ext(120, 80)
	synth := waves.NewSynth(waves.DefaultParams())
	synth.Resize(ext)
	synth.Configure(3, pal)

	return render.Frame{
		Extent:  ext,
		Time:    t,
		Palette: pal,
		Waves:   synth.Paths(nil, t, 0),
		Edges: []particles.Edge{
			{A: geom.Pt(10, 10), B: geom.Pt(60, 10), Opacity: 0.5, Width: 0.5, Color: pal.Particles[0]},
			{A: geom.Pt(0, 0), B: geom.Pt(1, 1), Opacity: 0, Width: 0.5, Color: pal.Particles[0]},
		},
		Particles: []particles.Particle{
			{Pos: geom.Pt(10, 10), Radius: 3, Opacity: 0.8, Color: pal.Particles[1]},
			{Pos: geom.Pt(60, 10), Radius: 2, Opacity: 1, Color: pal.Particles[2]},
		},
	}
}

func TestFrameSVGStructure(t *testing.T) {
	svg := FrameSVG(sampleFrame(1.5))

	require.True(t, strings.HasPrefix(svg, "<?xml"))
	require.Contains(t, svg, `width="120" height="80"`)
	require.Contains(t, svg, palette.For(palette.Light).Background.Hex())
	require.Equal(t, 3, strings.Count(svg, "<path "))
	require.Equal(t, 3, strings.Count(svg, "<linearGradient"))
	require.Equal(t, 1, strings.Count(svg, "<line "), "zero-opacity edges are not exported")
	require.Equal(t, 2, strings.Count(svg, "<circle "))
	require.Contains(t, svg, `fill="url(#band0)"`)
	require.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestFrameSVGDeterministic(t *testing.T) {
	require.Equal(t, FrameSVG(sampleFrame(2)), FrameSVG(sampleFrame(2)))
	require.NotEqual(t, FrameSVG(sampleFrame(2)), FrameSVG(sampleFrame(3)))
}

func TestFrameSVGBandOrder(t *testing.T) {
	f := sampleFrame(0)
	f.Waves[0], f.Waves[2] = f.Waves[2], f.Waves[0]
	svg := FrameSVG(f)

	i0 := strings.Index(svg, "url(#band0)")
	i2 := strings.Index(svg, "url(#band2)")
	require.Positive(t, i0)
	require.Greater(t, i2, i0, "bands are painted back to front")
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	require.NoError(t, SaveSVG(path, sampleFrame(1)))
}

func TestGIFRecorder(t *testing.T) {
	g := NewGIFRecorder(25, 2)
	require.Equal(t, 4, g.Delay())

	var buf bytes.Buffer
	require.ErrorIs(t, g.Encode(&buf), ErrNoFrames)

	r := render.NewRaster(40, 30)
	require.True(t, render.DrawFrame(r, sampleFrame(1)))
	require.True(t, g.Add(r.Image()))
	require.True(t, g.Add(r.Image()))
	require.False(t, g.Add(r.Image()), "recorder is full")
	require.Equal(t, 2, g.Len())

	require.NoError(t, g.Encode(&buf))
	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 2)
	require.Equal(t, []int{4, 4}, anim.Delay)
	require.Equal(t, 40, anim.Image[0].Bounds().Dx())
}

func TestGIFRecorderSave(t *testing.T) {
	g := NewGIFRecorder(0, 0)
	require.Equal(t, 4, g.Delay())
	require.ErrorIs(t, g.Save(filepath.Join(t.TempDir(), "x.gif")), ErrNoFrames)

	g.Add(render.NewRaster(8, 8).Image())
	require.NoError(t, g.Save(filepath.Join(t.TempDir(), "x.gif")))
}
