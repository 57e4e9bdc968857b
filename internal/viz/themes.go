package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ambient/internal/palette"
)

// Theme is the chrome around the canvas, derived from the engine palette
// so the panel follows the light/dark toggle.
type Theme struct {
	Mode       palette.Mode
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

func ThemeFor(m palette.Mode) Theme {
	p := palette.For(m)
	text := palette.MustHex("#2b2233")
	if m == palette.Dark {
		text = palette.MustHex("#e8e4ff")
	}
	return Theme{
		Mode:       m,
		Primary:    palette.Lipgloss(p.Highlight),
		Secondary:  p.Wave(3).Lipgloss(),
		Accent:     palette.Lipgloss(p.Particles[len(p.Particles)-1]),
		Background: palette.Lipgloss(p.Background),
		Text:       palette.Lipgloss(text),
		Muted:      palette.Lipgloss(text.BlendLab(p.Background, 0.55)),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}
}
