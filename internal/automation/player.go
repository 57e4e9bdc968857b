package automation

import (
	"context"
	"time"

	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/engine"
	"github.com/san-kum/ambient/internal/render"
	"github.com/san-kum/ambient/internal/scheduler"
)

// Player drives an engine off-screen: every Step applies the script's
// events for the frame, advances a manual clock by one frame interval and
// fires the scheduler queue once.
type Player struct {
	Engine   *engine.Engine
	Queue    *scheduler.Queue
	Clock    *scheduler.ManualClock
	Interval time.Duration
	Script   *Script

	frame int
	last  uint64
}

// NewPlayer attaches s to a fresh engine and starts it. A nil script
// plays no events.
func NewPlayer(cfg *config.Config, s render.Surface, script *Script, opts ...engine.Option) (*Player, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := &Player{
		Queue:    scheduler.NewQueue(),
		Clock:    scheduler.NewManualClock(time.Unix(0, 0)),
		Interval: time.Second / 60,
		Script:   script,
	}
	if cfg.Scheduler.MaxFPS > 0 {
		p.Interval = time.Duration(float64(time.Second) / cfg.Scheduler.MaxFPS)
	}
	if p.Script == nil {
		p.Script = &Script{}
	}
	opts = append([]engine.Option{engine.WithWaker(p.Queue), engine.WithClock(p.Clock)}, opts...)
	p.Engine = engine.New(cfg, opts...)
	p.Engine.Attach(s)
	if !p.Engine.Start() {
		return nil, p.Engine.Check()
	}
	return p, nil
}

func (p *Player) Frame() int { return p.frame }

// Step plays one frame and reports whether it was drawn.
func (p *Player) Step() bool {
	p.Script.Apply(p.frame, p.Engine)
	p.frame++
	p.Clock.Advance(p.Interval)
	p.Queue.Fire()

	st := p.Engine.Stats()
	drawn := st.Executed != p.last && st.Last.Drawn
	p.last = st.Executed
	return drawn
}

// Run plays n frames, calling each after every one. It stops early when
// ctx is done or each fails.
func (p *Player) Run(ctx context.Context, n int, each func(frame int, drawn bool) error) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		drawn := p.Step()
		if each == nil {
			continue
		}
		if err := each(p.frame-1, drawn); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) Stop() { p.Engine.Stop() }
