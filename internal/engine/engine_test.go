package engine

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/geom"
	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/palette"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/scheduler"
	"github.com/san-kum/ambient/internal/viewport"
)

var _ = Describe("Engine", func() {
	var (
		cfg     *config.Config
		queue   *scheduler.Queue
		clock   *scheduler.ManualClock
		rec     *render.Recorder
		visible bool
		e       *Engine
	)

	probe := viewport.ProbeFunc(func() (geom.Rect, geom.Extent, bool) {
		region := geom.Rect{W: 800, H: 600}
		if !visible {
			region.Y = 2000
		}
		return region, geom.Ext(800, 600), true
	})

	step := func(n int) {
		for i := 0; i < n; i++ {
			clock.Advance(20 * time.Millisecond)
			queue.Fire()
		}
	}

	positions := func() []geom.Point {
		var out []geom.Point
		for _, p := range e.field.Snapshot(nil) {
			out = append(out, p.Pos)
		}
		return out
	}

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Seed = 7
		queue = scheduler.NewQueue()
		clock = scheduler.NewManualClock(time.Unix(5000, 0))
		rec = render.NewRecorder(800, 600)
		visible = true
	})

	JustBeforeEach(func() {
		e = New(cfg, WithWaker(queue), WithClock(clock), WithProbe(probe))
	})

	Describe("Start", func() {
		It("stays stopped without a surface", func() {
			Expect(e.Check()).To(MatchError(ErrNoSurface))
			Expect(e.Start()).To(BeFalse())
			Expect(e.Running()).To(BeFalse())
			Expect(queue.Pending()).To(BeZero())
		})

		It("stays stopped without a waker", func() {
			e = New(cfg, WithClock(clock))
			e.Attach(rec)
			Expect(e.Check()).To(MatchError(ErrNoWaker))
			Expect(e.Start()).To(BeFalse())
			Expect(e.Stats().State).To(Equal(scheduler.Stopped))
		})

		It("is idempotent while running", func() {
			e.Attach(rec)
			Expect(e.Start()).To(BeTrue())
			Expect(e.Start()).To(BeTrue())
			Expect(queue.Pending()).To(Equal(1))
		})
	})

	Context("attached to an 800x600 surface", func() {
		JustBeforeEach(func() {
			e.Attach(rec)
			Expect(e.Start()).To(BeTrue())
		})

		It("populates the field from the drawable area", func() {
			step(1)
			Expect(e.field.Len()).To(Equal(32))
			for _, p := range positions() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<=", 800))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<=", 600))
			}
			Expect(rec.Frames()).To(Equal(1))
			Expect(rec.Count(render.OpFill)).To(Equal(cfg.Waves.Bands))
			Expect(rec.Count(render.OpCircle)).To(Equal(32))
		})

		It("advances global time by a fixed step per executed tick", func() {
			step(5)
			Expect(e.Stats().Time).To(BeNumerically("~", 5*cfg.Waves.TimeStep, 1e-12))
		})

		It("skips callbacks arriving faster than the frame ceiling", func() {
			step(1)
			queue.Fire()
			queue.Fire()
			s := e.Stats()
			Expect(s.Executed).To(Equal(uint64(1)))
			Expect(s.Skipped).To(Equal(uint64(2)))
			Expect(rec.Frames()).To(Equal(1))
		})

		It("pauses work while invisible but keeps rescheduling", func() {
			step(3)
			before := positions()
			frames := rec.Frames()
			visible = false

			step(10)
			Expect(positions()).To(Equal(before))
			Expect(rec.Frames()).To(Equal(frames))
			Expect(queue.Pending()).To(Equal(1))
			Expect(e.Stats().Executed).To(Equal(uint64(13)))
			Expect(e.Stats().Visible).To(BeFalse())

			visible = true
			step(1)
			Expect(positions()).NotTo(Equal(before))
			Expect(rec.Frames()).To(Equal(frames + 1))
		})

		It("draws nothing after Stop", func() {
			step(2)
			e.Stop()
			e.Stop()
			rec.Reset()

			step(10)
			Expect(rec.Ops).To(BeEmpty())
			Expect(queue.Pending()).To(BeZero())
			Expect(e.Running()).To(BeFalse())
			Expect(e.field.Len()).To(BeZero())
			Expect(e.Frame().Particles).To(BeEmpty())
		})

		It("repopulates on restart", func() {
			step(1)
			e.Stop()
			Expect(e.Start()).To(BeTrue())
			step(1)
			Expect(e.field.Len()).To(Equal(32))
		})

		It("applies a resize at the next tick only", func() {
			step(1)
			e.OnResize(geom.Ext(400, 300))
			Expect(e.field.Len()).To(Equal(32))

			step(1)
			Expect(e.field.Len()).To(Equal(8))
			Expect(rec.Size()).To(Equal(geom.Ext(400, 300)))
			Expect(e.Frame().Extent).To(Equal(geom.Ext(400, 300)))
		})

		It("treats a zero-area resize as a no-op frame", func() {
			e.OnResize(geom.Ext(0, 600))
			step(2)
			Expect(e.field.Len()).To(BeZero())
			Expect(rec.Frames()).To(BeZero())
			Expect(queue.Pending()).To(Equal(1))
		})

		It("recolors on theme change", func() {
			step(1)
			e.OnThemeChange(palette.Dark)
			Expect(e.Mode()).To(Equal(palette.Light))

			step(1)
			Expect(e.Mode()).To(Equal(palette.Dark))
			f := e.Frame()
			Expect(f.Palette.Mode).To(Equal(palette.Dark))
			dark := palette.For(palette.Dark)
			for _, p := range f.Particles {
				Expect(dark.Particles).To(ContainElement(p.Color))
			}
		})

		It("hands out frames that later ticks do not mutate", func() {
			step(1)
			f := e.Frame()
			Expect(f.Waves).NotTo(BeEmpty())
			first := f.Waves[0].Points[0]

			step(5)
			Expect(f.Waves[0].Points[0]).To(Equal(first))
			Expect(e.Frame().Waves[0].Points[0]).NotTo(Equal(first))
		})

		It("ignores theme modes other than light and dark", func() {
			step(1)
			e.OnThemeChange(palette.Mode("sepia"))
			e.OnThemeChange(palette.Mode(""))
			Expect(e.pending.theme).To(BeNil())

			step(1)
			Expect(e.Mode()).To(Equal(palette.Light))
			Expect(e.Stats().Mode).To(Equal(palette.Light))

			e.OnThemeChange(palette.Mode(" DARK "))
			step(1)
			Expect(e.Mode()).To(Equal(palette.Dark))
		})

		It("skips frames while the surface is down", func() {
			step(1)
			before := positions()
			rec.Down = true
			step(4)
			Expect(positions()).To(Equal(before))
			Expect(rec.Frames()).To(Equal(1))
		})

		It("follows the scroll offset", func() {
			e.OnScroll(-40)
			step(1)
			Expect(e.Stats().Scroll).To(BeZero())
			e.OnScroll(120)
			step(1)
			Expect(e.Frame().Scroll).To(Equal(120.0))
		})

		It("reports frames to observers and metrics", func() {
			var seen []metrics.FrameStats
			e.AddObserver(ObserverFunc(func(s metrics.FrameStats) { seen = append(seen, s) }))
			e.AddMetric(metrics.NewPopulation())

			step(3)
			Expect(seen).To(HaveLen(3))
			Expect(seen[2].Drawn).To(BeTrue())
			Expect(seen[2].Particles).To(Equal(32))
			Expect(e.Metrics()).To(HaveKeyWithValue("population", 32.0))
		})
	})

	Context("with the pointer over the surface", func() {
		BeforeEach(func() {
			cfg.Particles.SpawnProbability = 1
		})

		JustBeforeEach(func() {
			e.Attach(rec)
			Expect(e.Start()).To(BeTrue())
			step(1)
		})

		It("spawns active particles under the pointer", func() {
			e.OnPointerMove(100, 100)
			step(1)
			Expect(e.field.Len()).To(Equal(33))
			Expect(e.field.ActiveCount()).To(BeNumerically(">=", 1))
			Expect(e.Stats().Last.Active).To(Equal(e.field.ActiveCount()))
		})

		It("never grows beyond the cap", func() {
			for i := 0; i < 200; i++ {
				e.OnPointerMove(float64(i%800), 300)
				if i%10 == 0 {
					step(1)
				}
			}
			step(1)
			Expect(e.field.Len()).To(BeNumerically("<=", cfg.Particles.MaxParticles))
		})

		It("buffers a bounded number of moves between ticks", func() {
			for i := 0; i < 3*maxPendingMoves; i++ {
				e.OnPointerMove(200, 200)
			}
			Expect(e.pending.moves).To(HaveLen(maxPendingMoves))
			step(1)
			Expect(e.field.Len()).To(Equal(32 + maxPendingMoves))
		})

		It("holds pointer moves until the region is back on screen", func() {
			visible = false
			step(1)
			for i := 0; i < 5; i++ {
				e.OnPointerMove(100+float64(i), 100)
			}
			step(3)
			Expect(e.field.Len()).To(Equal(32))
			Expect(e.field.Evicted()).To(BeZero())
			Expect(e.pending.moves).To(HaveLen(5))

			visible = true
			step(1)
			Expect(e.field.Len()).To(Equal(37))
			Expect(e.pending.moves).To(BeEmpty())
		})

		It("drops influence when the pointer leaves", func() {
			e.OnPointerMove(100, 100)
			step(1)
			e.OnPointerLeave()
			step(1)
			Expect(e.field.ActiveCount()).To(BeZero())
		})

		It("drops influence after the idle window", func() {
			e.OnPointerMove(100, 100)
			step(1)
			clock.Advance(cfg.Particles.PointerIdle)
			step(1)
			Expect(e.field.ActiveCount()).To(BeZero())
		})
	})

	It("ignores input before a surface is attached", func() {
		e.OnResize(geom.Ext(10, 10))
		e.OnPointerMove(1, 1)
		e.OnScroll(5)
		e.OnThemeChange(palette.Dark)
		Expect(e.pending.empty()).To(BeTrue())
	})

	It("keeps particles and edges within their invariants over a long run", func() {
		cfg.Particles.SpawnProbability = 0.5
		e = New(cfg, WithWaker(queue), WithClock(clock))
		e.Attach(rec)
		Expect(e.Start()).To(BeTrue())
		for i := 0; i < 300; i++ {
			e.OnPointerMove(400+float64(i%50), 300)
			step(1)
		}
		f := e.Frame()
		for _, p := range f.Particles {
			Expect(p.Speed()).To(BeNumerically("<=", cfg.Particles.MaxSpeed+1e-9))
			Expect(p.Opacity).To(BeNumerically(">=", cfg.Particles.OpacityFloor))
			Expect(p.Radius).To(BeNumerically("<=", p.MaxRadius))
		}
		for _, edge := range f.Edges {
			Expect(edge.Opacity).To(BeNumerically(">", 0))
			Expect(edge.Opacity).To(BeNumerically("<=", 1))
		}
		Expect(len(f.Particles)).To(BeNumerically("<=", cfg.Particles.MaxParticles))
	})
})
