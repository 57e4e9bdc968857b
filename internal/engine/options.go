package engine

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ambient/internal/scheduler"
	"github.com/san-kum/ambient/internal/viewport"
)

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWaker sets the host's frame-callback capability. Without one Start
// fails and the engine stays inert.
func WithWaker(w scheduler.Waker) Option {
	return func(e *Engine) { e.waker = w }
}

func WithClock(c scheduler.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithProbe sets how the engine learns whether its region is on screen.
func WithProbe(p viewport.Probe) Option {
	return func(e *Engine) { e.probe = p }
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}
