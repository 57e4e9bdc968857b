package engine

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/logging"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/particles"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/scheduler"
	"github.com/san-kum/ambient/internal/viewport"
	"github.com/san-kum/ambient/internal/waves"
)

var (
	ErrNoSurface = errors.New("engine: no drawing surface attached")
	ErrNoWaker   = errors.New("engine: host cannot schedule frames")
)

// maxPendingMoves bounds the pointer events buffered between two ticks.
// Older moves are dropped first.
const maxPendingMoves = 64

// Observer is told about every executed tick, after the engine lock is
// released but still inside the scheduler callback. It must not call
// Start, Stop or Stats.
type Observer interface {
	OnFrame(s metrics.FrameStats)
}

type ObserverFunc func(metrics.FrameStats)

func (f ObserverFunc) OnFrame(s metrics.FrameStats) { f(s) }

type pointerMove struct {
	pos geom.Point
	at  time.Time
}

type pending struct {
	resize *geom.Extent
	theme  *palette.Mode
	scroll *float64
	leave  bool
	moves  []pointerMove
}

func (p *pending) empty() bool {
	return p.resize == nil && p.theme == nil && p.scroll == nil && !p.leave && len(p.moves) == 0
}

type Engine struct {
	mu sync.Mutex

	cfg   config.Config
	log   *log.Logger
	rng   *rand.Rand
	waker scheduler.Waker
	clock scheduler.Clock
	probe viewport.Probe
	sched *scheduler.Scheduler

	tracker *viewport.Tracker
	field   *particles.Field
	synth   *waves.Synth
	surface render.Surface
	mode    palette.Mode
	pal     palette.Palette

	attached bool
	running  bool
	dropped  bool
	time     float64
	pending  pending
	visible  bool
	last     render.Frame
	lastStat metrics.FrameStats

	metrics   metrics.Set
	observers []Observer

	edges []particles.Edge
	paths []waves.Path
	parts []particles.Particle
}

// New builds a stopped, unattached engine. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &Engine{
		cfg:     *cfg,
		log:     logging.Discard(),
		clock:   scheduler.SystemClock{},
		visible: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	mode, err := cfg.Mode()
	if err != nil {
		e.log.Warn("falling back to light theme", "err", err)
		mode = palette.Light
	}
	e.mode = mode
	e.pal = palette.For(mode)

	e.tracker = viewport.NewTracker(e.probe)
	e.field = particles.NewField(cfg.Particles, e.rng)
	e.synth = waves.NewSynth(cfg.Waves)
	e.synth.Configure(cfg.Waves.Bands, e.pal)
	e.sched = scheduler.New(e.waker, e.clock, cfg.Scheduler.MaxFPS, e.frame)
	return e
}

// Attach sets the drawing surface. A surface that already has a size is
// adopted as the drawable extent unless OnResize said otherwise.
func (e *Engine) Attach(s render.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.surface = s
	e.attached = s != nil
	if s == nil {
		return
	}
	if size := s.Size(); !size.Empty() && e.pending.resize == nil && e.tracker.State().Extent.Empty() {
		e.pending.resize = &size
	}
	e.log.Debug("surface attached", "size", s.Size())
}

// Check reports why Start would fail, or nil.
func (e *Engine) Check() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkLocked()
}

func (e *Engine) checkLocked() error {
	if e.surface == nil {
		return ErrNoSurface
	}
	if e.waker == nil {
		return ErrNoWaker
	}
	return nil
}

// Start begins scheduling frames. It is idempotent while running and
// reports false, leaving the engine stopped, when there is nothing to
// draw on or no way to be called back.
func (e *Engine) Start() bool {
	e.mu.Lock()
	if err := e.checkLocked(); err != nil {
		e.mu.Unlock()
		e.log.Warn("engine not started", "err", err)
		return false
	}
	if e.dropped && e.pending.resize == nil {
		ext := e.tracker.State().Extent
		e.pending.resize = &ext
	}
	e.dropped = false
	wasRunning := e.running
	e.running = true
	e.mu.Unlock()

	if !e.sched.Start() {
		e.mu.Lock()
		e.running = wasRunning
		e.mu.Unlock()
		return false
	}
	if !wasRunning {
		e.log.Info("engine started", "max_fps", e.cfg.Scheduler.MaxFPS)
	}
	return true
}

// Stop halts the scheduler and drops the particle population. Safe to
// call any number of times.
func (e *Engine) Stop() {
	e.sched.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.dropped = true
	e.field.Reset()
	e.edges, e.paths, e.parts = nil, nil, nil
	e.last = render.Frame{}
	e.pending.moves = nil
	e.log.Info("engine stopped", "time", e.time)
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// OnResize queues a new drawable extent. Negative sizes clamp to zero.
func (e *Engine) OnResize(ext geom.Extent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return
	}
	ext = ext.Normalize()
	e.pending.resize = &ext
}

// OnThemeChange queues a theme switch. Modes other than light and dark
// are ignored.
func (e *Engine) OnThemeChange(m palette.Mode) {
	mode, err := palette.ParseMode(string(m))
	if err != nil || m == "" {
		e.log.Warn("ignoring theme change", "mode", string(m), "err", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return
	}
	e.pending.theme = &mode
}

func (e *Engine) OnPointerMove(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	now := e.clock.Now()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return
	}
	e.pending.leave = false
	if len(e.pending.moves) == maxPendingMoves {
		e.pending.moves = slices.Delete(e.pending.moves, 0, 1)
	}
	e.pending.moves = append(e.pending.moves, pointerMove{pos: geom.Pt(x, y), at: now})
}

// OnPointerLeave ends pointer influence without waiting for the idle
// timeout.
func (e *Engine) OnPointerLeave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return
	}
	e.pending.moves = e.pending.moves[:0]
	e.pending.leave = true
}

func (e *Engine) OnScroll(offset float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.attached {
		return
	}
	e.pending.scroll = &offset
}

func (e *Engine) applyPendingLocked() {
	p := &e.pending
	if p.empty() {
		return
	}
	if p.theme != nil && *p.theme != e.mode {
		e.mode = *p.theme
		e.pal = palette.For(e.mode)
		e.synth.Configure(e.cfg.Waves.Bands, e.pal)
		e.field.Initialize(e.tracker.State().Extent, e.pal)
		e.log.Info("theme changed", "mode", e.mode)
	}
	if p.resize != nil {
		ext := *p.resize
		e.tracker.Resize(ext)
		e.synth.Resize(ext)
		e.field.Initialize(ext, e.pal)
		if e.surface != nil {
			e.surface.Resize(int(math.Round(ext.Width)), int(math.Round(ext.Height)))
		}
		if ext.Empty() {
			e.log.Debug("zero-area extent, frames are no-ops")
		}
		e.log.Debug("resized", "width", ext.Width, "height", ext.Height, "particles", e.field.Len())
	}
	if p.scroll != nil {
		e.tracker.Scroll(*p.scroll)
	}
	if p.leave {
		e.field.ClearPointer()
	}
	e.pending = pending{moves: p.moves}
}

// applyMovesLocked feeds buffered pointer moves to the field. It only runs
// on visible ticks, so the population does not change while off screen.
func (e *Engine) applyMovesLocked() {
	for _, m := range e.pending.moves {
		e.field.OnPointerMove(m.pos, m.at)
	}
	e.pending.moves = e.pending.moves[:0]
}

// frame is the scheduler's tick. It runs with the scheduler lock held.
func (e *Engine) frame(now time.Time) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.applyPendingLocked()
	e.time += e.cfg.Waves.TimeStep

	st, flipped := e.tracker.Update()
	if flipped {
		e.log.Debug("visibility changed", "visible", st.Visible)
	}
	stats := metrics.FrameStats{At: now, Time: e.time, Visible: st.Visible, Bands: len(e.synth.Bands())}

	switch {
	case !st.Visible:
	case !render.Available(e.surface):
		e.log.Debug("surface unavailable, skipping frame")
	default:
		e.applyMovesLocked()
		e.field.Tick(1, st.Extent, e.field.PointerActive(now))
		e.edges = e.field.Edges(e.edges[:0])
		e.paths = e.synth.Paths(e.paths[:0], e.time, st.Scroll)
		e.parts = e.field.Snapshot(e.parts[:0])

		e.last = render.Frame{
			Extent:    st.Extent,
			Time:      e.time,
			Scroll:    st.Scroll,
			Palette:   e.pal,
			Waves:     e.paths,
			Edges:     e.edges,
			Particles: e.parts,
		}
		stats.Drawn = render.DrawFrame(e.surface, e.last)
		stats.Edges = len(e.edges)
	}
	stats.Particles = e.field.Len()
	stats.Active = e.field.ActiveCount()
	e.visible = st.Visible
	e.lastStat = stats
	e.metrics.Observe(stats)
	observers := e.observers
	e.mu.Unlock()

	for _, o := range observers {
		o.OnFrame(stats)
	}
}

// Frame returns a deep copy of the last drawn frame. The engine reuses
// its buffers on the next tick.
func (e *Engine) Frame() render.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.last
	f.Waves = slices.Clone(f.Waves)
	for i := range f.Waves {
		f.Waves[i].Points = slices.Clone(f.Waves[i].Points)
	}
	f.Edges = slices.Clone(f.Edges)
	f.Particles = slices.Clone(f.Particles)
	return f
}

// Stats is a point-in-time summary of the engine.
type Stats struct {
	State    scheduler.State
	Executed uint64
	Skipped  uint64
	Time     float64
	Mode     palette.Mode
	Extent   geom.Extent
	Scroll   float64
	Visible  bool
	Evicted  int
	Last     metrics.FrameStats
}

func (e *Engine) Stats() Stats {
	s := Stats{State: e.sched.State(), Executed: e.sched.Executed(), Skipped: e.sched.Skipped()}

	e.mu.Lock()
	defer e.mu.Unlock()
	vs := e.tracker.State()
	s.Time = e.time
	s.Mode = e.mode
	s.Extent = vs.Extent
	s.Scroll = vs.Scroll
	s.Visible = e.visible
	s.Evicted = e.field.Evicted()
	s.Last = e.lastStat
	return s
}

func (e *Engine) Mode() palette.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Palette() palette.Palette {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pal
}

func (e *Engine) Config() config.Config { return e.cfg }

func (e *Engine) AddMetric(m metrics.Metric) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics = append(e.metrics, m)
}

func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(slices.Clip(e.observers), o)
}

func (e *Engine) Metrics() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.metrics.Values()
}
