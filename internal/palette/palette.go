// Package palette maps the host's theme mode to the ordered colour lists
// used by the wave bands and the particle field.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownMode = errors.New("palette: unknown theme mode")

// Mode is the two-valued theme supplied by the host.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) String() string { return string(m) }

// Swatch is a colour with its straight (non-premultiplied) alpha.
type Swatch struct {
	Color colorful.Color
	Alpha float64
}

func (s Swatch) Lipgloss() lipgloss.Color { return Lipgloss(s.Color) }

// Lipgloss converts a colour to the terminal colour used by the TUI host.
func Lipgloss(c colorful.Color) lipgloss.Color { return lipgloss.Color(c.Clamped().Hex()) }

type Palette struct {
	Mode       Mode
	Background colorful.Color
	Highlight  colorful.Color
	Waves      []Swatch
	Particles  []colorful.Color
}

// Wave returns the swatch for band i, cycling through the list.
func (p Palette) Wave(i int) Swatch {
	if len(p.Waves) == 0 {
		return Swatch{Color: p.Highlight, Alpha: 0.2}
	}
	if i < 0 {
		i = -i
	}
	return p.Waves[i%len(p.Waves)]
}

// Blend mixes two particle colours and lifts the result towards the
// highlight colour. Used for edges whose endpoints are both active.
func (p Palette) Blend(a, b colorful.Color) colorful.Color {
	mid := a.BlendLab(b, 0.5)
	return mid.BlendLab(p.Highlight, 0.35).Clamped()
}

// MustHex parses a "#rrggbb" literal and panics if it is malformed.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func rgba(r, g, b uint8, a float64) Swatch {
	return Swatch{Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, Alpha: a}
}

var (
	light = Palette{
		Mode:       Light,
		Background: MustHex("#fdf8fa"),
		Highlight:  MustHex("#ff8fab"),
		Waves: []Swatch{
			rgba(255, 182, 193, 0.3),
			rgba(255, 182, 193, 0.2),
			rgba(255, 182, 193, 0.1),
			rgba(230, 230, 250, 0.25),
			rgba(230, 230, 250, 0.15),
		},
		Particles: []colorful.Color{
			MustHex("#ffb6c1"),
			MustHex("#e6e6fa"),
			MustHex("#f5f5f5"),
		},
	}

	dark = Palette{
		Mode:       Dark,
		Background: MustHex("#0f0b1a"),
		Highlight:  MustHex("#b8aeff"),
		Waves: []Swatch{
			rgba(74, 59, 113, 0.35),
			rgba(74, 59, 113, 0.25),
			rgba(74, 59, 113, 0.15),
			rgba(106, 90, 255, 0.2),
			rgba(138, 122, 255, 0.15),
		},
		Particles: []colorful.Color{
			MustHex("#4a3b71"),
			MustHex("#6a5aff"),
			MustHex("#8a7aff"),
		},
	}
)

// For returns a copy of the palette for the mode; unknown modes get the
// light palette.
func For(m Mode) Palette {
	src := light
	if m == Dark {
		src = dark
	}
	p := src
	p.Waves = append([]Swatch(nil), src.Waves...)
	p.Particles = append([]colorful.Color(nil), src.Particles...)
	return p
}

func Modes() []Mode { return []Mode{Light, Dark} }
