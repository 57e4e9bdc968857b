package export

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects raster frames for an animated GIF. Frames are
// quantised to the Plan 9 palette with Floyd-Steinberg dithering.
type GIFRecorder struct {
	delay     int
	maxFrames int
	frames    []*image.Paletted
}

// NewGIFRecorder records at fps frames per second, keeping at most
// maxFrames (0 for no limit). Once full, further frames are dropped.
func NewGIFRecorder(fps float64, maxFrames int) *GIFRecorder {
	delay := 4
	if fps > 0 {
		delay = max(1, int(math.Round(100/fps)))
	}
	return &GIFRecorder{delay: delay, maxFrames: maxFrames}
}

func (g *GIFRecorder) Len() int   { return len(g.frames) }
func (g *GIFRecorder) Delay() int { return g.delay }

// Add quantises img and appends it. It reports false once the recorder is
// full.
func (g *GIFRecorder) Add(img image.Image) bool {
	if g.maxFrames > 0 && len(g.frames) >= g.maxFrames {
		return false
	}
	b := img.Bounds()
	pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(pm, pm.Bounds(), img, b.Min)
	g.frames = append(g.frames, pm)
	return true
}

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
