package viz

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ambient/internal/palette"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// maxStyles bounds the style cache. Cell colours are averages over
// animated gradients, so new pairs keep appearing while the host runs.
const maxStyles = 4096

// inkDistance is the Lab distance from a cell's mean colour above which
// a sub-pixel is drawn as a dot.
const inkDistance = 0.1

// Canvas is a grid of Braille cells, each with a dot colour and a
// background colour. Its sub-pixel size is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]colorful.Color
	Paper         [][]colorful.Color

	styles map[[2]string]lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]colorful.Color, h),
		Paper:  make([][]colorful.Color, h),
		styles: make(map[[2]string]lipgloss.Style),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]colorful.Color, w)
		c.Paper[i] = make([]colorful.Color, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Clear empties every cell and paints it bg.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Paper[i][j] = bg
			c.Ink[i][j] = bg
		}
	}
}

// FromImage resamples img onto the canvas. Each cell's background is the
// mean colour of its eight sub-pixels. Sub-pixels that differ from that
// mean, and sit further from bg than the mean does, become dots drawn in
// their average colour. Transparent pixels read as bg.
func (c *Canvas) FromImage(img image.Image, bg colorful.Color) {
	b := img.Bounds()
	sw, sh := c.Width*2, c.Height*4
	if sw == 0 || sh == 0 || b.Empty() {
		c.Clear(bg)
		return
	}

	var px [8]colorful.Color
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			var mean colorful.Color
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x := b.Min.X + (col*2+dx)*b.Dx()/sw
					y := b.Min.Y + (row*4+dy)*b.Dy()/sh
					p, ok := colorful.MakeColor(img.At(x, y))
					if !ok {
						p = bg
					}
					px[dy*2+dx] = p
					mean.R += p.R / 8
					mean.G += p.G / 8
					mean.B += p.B / 8
				}
			}

			cell := rune(0x2800)
			var ink colorful.Color
			n := 0.0
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					p := px[dy*2+dx]
					if p.DistanceLab(mean) <= inkDistance || p.DistanceLab(bg) <= mean.DistanceLab(bg) {
						continue
					}
					cell |= rune(pixelMap[dy][dx])
					ink.R += p.R
					ink.G += p.G
					ink.B += p.B
					n++
				}
			}
			if n > 0 {
				ink = colorful.Color{R: ink.R / n, G: ink.G / n, B: ink.B / n}
			} else {
				ink = mean
			}
			c.Grid[row][col] = cell
			c.Ink[row][col] = ink
			c.Paper[row][col] = mean
		}
	}
}

// Dots counts set sub-pixels.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - 0x2800; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

// String returns the bare Braille text.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with terminal colours, one style run per
// stretch of equally coloured cells.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.key(row, col) == c.key(row, start) {
				continue
			}
			b.WriteString(c.style(row, start).Render(string(c.Grid[row][start:col])))
			start = col
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) key(row, col int) [2]string {
	return [2]string{c.Ink[row][col].Clamped().Hex(), c.Paper[row][col].Clamped().Hex()}
}

func (c *Canvas) style(row, col int) lipgloss.Style {
	k := c.key(row, col)
	if s, ok := c.styles[k]; ok {
		return s
	}
	if len(c.styles) >= maxStyles {
		clear(c.styles)
	}
	s := lipgloss.NewStyle().
		Foreground(palette.Lipgloss(c.Ink[row][col])).
		Background(palette.Lipgloss(c.Paper[row][col]))
	c.styles[k] = s
	return s
}
