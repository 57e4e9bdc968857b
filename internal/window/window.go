// Package window hosts the engine in a desktop window. Ebitengine's
// Update callback is the host frame callback: it forwards input and fires
// the scheduler queue, and Draw uploads the raster the engine painted.
package window

import (
	"errors"
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/engine"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/logging"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/scheduler"
	"github.com/san-kum/ambient/internal/viewport"
)

const wheelStep = 40

type game struct {
	eng    *engine.Engine
	queue  *scheduler.Queue
	raster *render.Raster
	log    *log.Logger

	w, h   int
	scroll float64
	cursor image.Point
	inside bool
}

func newGame(cfg *config.Config, logger *log.Logger) *game {
	g := &game{
		queue: scheduler.NewQueue(),
		log:   logger,
		w:     cfg.Width,
		h:     cfg.Height,
	}
	if g.w <= 0 || g.h <= 0 {
		g.w, g.h = config.DefaultWidth, config.DefaultHeight
	}
	// A minimised window counts as off screen.
	probe := viewport.ProbeFunc(func() (geom.Rect, geom.Extent, bool) {
		vp := geom.Ext(float64(g.w), float64(g.h))
		if ebiten.IsWindowMinimized() {
			return geom.Rect{}, vp, true
		}
		return geom.Rect{W: vp.Width, H: vp.Height}, vp, true
	})
	g.eng = engine.New(cfg,
		engine.WithWaker(g.queue),
		engine.WithLogger(logger),
		engine.WithProbe(probe),
	)
	g.raster = render.NewRaster(g.w, g.h)
	g.eng.Attach(g.raster)
	return g
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	in := x >= 0 && y >= 0 && x < g.w && y < g.h
	if in && (!g.inside || g.cursor != image.Pt(x, y)) {
		g.eng.OnPointerMove(float64(x), float64(y))
	} else if !in && g.inside {
		g.eng.OnPointerLeave()
	}
	g.cursor, g.inside = image.Pt(x, y), in

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scroll = max(g.scroll-dy*wheelStep, 0)
		g.eng.OnScroll(g.scroll)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		next := palette.Dark
		if g.eng.Mode() == palette.Dark {
			next = palette.Light
		}
		g.eng.OnThemeChange(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.eng.Running() {
			g.eng.Stop()
		} else {
			g.eng.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.eng.Stop()
		return ebiten.Termination
	}

	g.queue.Fire()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	rgba, ok := g.raster.Image().(*image.RGBA)
	if ok && rgba.Bounds().Size() == screen.Bounds().Size() {
		screen.WritePixels(rgba.Pix)
		return
	}
	screen.Fill(g.eng.Palette().Background.Clamped())
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.eng.OnResize(geom.Ext(float64(g.w), float64(g.h)))
	}
	return g.w, g.h
}

// Run opens a resizable window and blocks until it is closed.
func Run(cfg *config.Config, logger *log.Logger) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	g := newGame(cfg, logger)

	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle("ambient - T: theme, Space: stop/start, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Scheduler.MaxFPS > 0 {
		ebiten.SetTPS(max(int(cfg.Scheduler.MaxFPS), 1))
	}

	if !g.eng.Start() {
		return g.eng.Check()
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	g.log.Info("window closed")
	return nil
}
