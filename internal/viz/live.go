package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/engine"
	"github.com/san-kum/ambient/internal/export"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/logging"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/scheduler"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 34
	historyCapacity = 120
	scrollStep      = 40
	gifFrames       = 600
)

type TickMsg time.Time

// Model hosts an engine in the terminal. Each TickMsg is the host's
// frame callback: it fires the engine's scheduler queue, then resamples
// the raster the engine drew on into the Braille canvas.
type Model struct {
	eng    *engine.Engine
	queue  *scheduler.Queue
	raster *render.Raster
	canvas *Canvas
	log    *log.Logger

	interval      time.Duration
	termW, termH  int
	cols, rows    int
	scroll        float64
	lastExecuted  uint64
	paused        bool
	showStats     bool
	showHelp      bool
	recorder      *export.GIFRecorder
	status        string
	popHistory    []float64
	edgeHistory   []float64
	rateHistory   []float64
	tickRate      *metrics.TickRate
	styles        styles
	pointerInside bool
}

// NewLive builds the terminal host and its engine. A nil logger discards.
func NewLive(cfg *config.Config, logger *log.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	q := scheduler.NewQueue()
	eng := engine.New(cfg, engine.WithWaker(q), engine.WithLogger(logger))

	m := Model{
		eng:       eng,
		queue:     q,
		log:       logger,
		interval:  time.Second / 60,
		termW:     defaultCols,
		termH:     defaultRows,
		showStats: true,
		tickRate:  metrics.NewTickRate(time.Second),
		styles:    newStyles(ThemeFor(eng.Mode())),
	}
	if cfg.Scheduler.MaxFPS > 0 {
		m.interval = time.Duration(float64(time.Second) / cfg.Scheduler.MaxFPS)
	}
	eng.AddMetric(m.tickRate)
	m.layout()
	m.raster = render.NewRaster(m.cols*2, m.rows*4)
	eng.Attach(m.raster)
	return m
}

func (m Model) Engine() *engine.Engine { return m.eng }
func (m Model) Canvas() *Canvas        { return m.canvas }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if !m.eng.Start() {
		m.log.Error("terminal host could not start the engine", "err", m.eng.Check())
	}
	return m.tick()
}

// layout sizes the canvas from the terminal, leaving a header line, a
// footer line and optionally the stats panel.
func (m *Model) layout() {
	cols := m.termW
	if m.showStats {
		cols -= statsWidth + 3
	}
	m.cols = max(cols, 10)
	m.rows = max(m.termH-2, 4)
	m.canvas = NewCanvas(m.cols, m.rows)
	m.eng.OnResize(geom.Ext(float64(m.cols*2), float64(m.rows*4)))
}

// cellToSurface maps a terminal cell to the centre of its sub-pixel block.
func (m Model) cellToSurface(x, y int) (geom.Point, bool) {
	row := y - 1
	if x < 0 || x >= m.cols || row < 0 || row >= m.rows {
		return geom.Point{}, false
	}
	return geom.Pt(float64(x*2+1), float64(row*4+2)), true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.eng.Stop()
			m.finishRecording()
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "t":
			next := palette.Dark
			if m.eng.Mode() == palette.Dark {
				next = palette.Light
			}
			m.eng.OnThemeChange(next)
			m.styles = newStyles(ThemeFor(next))
		case "s":
			m.snapshot()
		case "g":
			if m.recorder != nil {
				m.finishRecording()
			} else {
				m.recorder = export.NewGIFRecorder(1/m.interval.Seconds(), gifFrames)
				m.status = "recording"
			}
		case "p":
			m.showStats = !m.showStats
			m.layout()
		case "up", "k":
			m.scrollBy(-scrollStep)
		case "down", "j":
			m.scrollBy(scrollStep)
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-scrollStep)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollBy(scrollStep)
			return m, nil
		}
		if p, ok := m.cellToSurface(msg.X, msg.Y); ok {
			m.eng.OnPointerMove(p.X, p.Y)
			m.pointerInside = true
		} else if m.pointerInside {
			m.eng.OnPointerLeave()
			m.pointerInside = false
		}

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.layout()

	case TickMsg:
		m.queue.Fire()
		m.refresh()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scrollBy(d float64) {
	m.scroll = max(m.scroll+d, 0)
	m.eng.OnScroll(m.scroll)
}

func (m *Model) togglePause() {
	if m.paused {
		m.paused = !m.eng.Start()
		m.status = ""
		return
	}
	m.eng.Stop()
	m.paused = true
	m.status = "paused"
}

// refresh copies a newly drawn frame into the canvas.
func (m *Model) refresh() {
	st := m.eng.Stats()
	if st.Executed == m.lastExecuted {
		return
	}
	m.lastExecuted = st.Executed
	if !st.Last.Drawn {
		return
	}
	m.canvas.FromImage(m.raster.Image(), m.eng.Palette().Background)

	m.popHistory = appendCapped(m.popHistory, float64(st.Last.Particles))
	m.edgeHistory = appendCapped(m.edgeHistory, float64(st.Last.Edges))
	m.rateHistory = appendCapped(m.rateHistory, m.tickRate.Value())

	if m.recorder != nil && !m.recorder.Add(m.raster.Image()) {
		m.finishRecording()
	}
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) snapshot() {
	name := fmt.Sprintf("ambient-%d.svg", time.Now().Unix())
	if err := export.SaveSVG(name, m.eng.Frame()); err != nil {
		m.log.Error("snapshot failed", "err", err)
		m.status = "snapshot failed"
		return
	}
	m.log.Info("snapshot written", "path", name)
	m.status = "saved " + name
}

func (m *Model) finishRecording() {
	if m.recorder == nil {
		return
	}
	rec := m.recorder
	m.recorder = nil
	if rec.Len() == 0 {
		m.status = ""
		return
	}
	if err := rec.Save("ambient.gif"); err != nil {
		m.log.Error("gif export failed", "err", err)
		m.status = "gif failed"
		return
	}
	m.log.Info("gif written", "frames", rec.Len())
	m.status = fmt.Sprintf("saved ambient.gif (%d frames)", rec.Len())
}

func (m Model) View() string {
	pal := m.eng.Palette()
	title := GradientText("ambient", pal.Highlight, pal.Particles[len(pal.Particles)-1])

	state := m.styles.running.Render("RUNNING")
	switch {
	case m.recorder != nil:
		state = m.styles.recording.Render("REC")
	case m.paused:
		state = m.styles.paused.Render("PAUSED")
	}
	header := title + "  " + state
	if m.status != "" {
		header += "  " + m.styles.label.UnsetWidth().Render(m.status)
	}

	body := m.canvas.Render()
	if m.showStats {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.statsView())
	}
	footer := m.styles.help.UnsetMarginTop().Render("space pause  t theme  s svg  g gif  p panel  ? help  q quit")

	view := header + "\n" + body + "\n" + footer
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) statsView() string {
	st := m.eng.Stats()
	cfg := m.eng.Config()
	var s strings.Builder

	s.WriteString(m.styles.header.Render(strings.ToUpper(string(st.Mode))) + "\n")
	if len(m.popHistory) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.popHistory, m.edgeHistory},
			asciigraph.Height(5), asciigraph.Width(statsWidth-10), asciigraph.Caption("particles / edges"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", st.Time))
	row("Particles", fmt.Sprintf("%d / %d", st.Last.Particles, cfg.Particles.MaxParticles))
	if cfg.Particles.MaxParticles > 0 {
		s.WriteString(m.styles.ProgressBar(float64(st.Last.Particles)/float64(cfg.Particles.MaxParticles), statsWidth-6) + "\n")
	}
	row("Active", fmt.Sprintf("%d", st.Last.Active))
	row("Edges", fmt.Sprintf("%d", st.Last.Edges))
	row("Bands", fmt.Sprintf("%d", st.Last.Bands))
	row("Scroll", fmt.Sprintf("%.0f", st.Scroll))
	row("Evicted", fmt.Sprintf("%d", st.Evicted))
	row("Ticks", fmt.Sprintf("%d (+%d skipped)", st.Executed, st.Skipped))
	row("Rate", fmt.Sprintf("%.1f/s", m.tickRate.Value()))
	s.WriteString(m.styles.Sparkline(m.rateHistory, statsWidth-6) + "\n")

	return m.styles.panel.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Stop/Start the engine    ║
║  T        - Toggle light/dark theme  ║
║  S        - Save an SVG snapshot     ║
║  G        - Toggle GIF recording     ║
║  P        - Toggle stats panel       ║
║  Up/Down  - Scroll (or mouse wheel)  ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the terminal host and blocks until the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	p := tea.NewProgram(NewLive(cfg, logger), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
