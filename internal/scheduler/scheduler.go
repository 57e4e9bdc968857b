package scheduler

import (
	"sync"
	"time"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// TickFunc does one frame of work. It runs with the scheduler's lock held,
// so it must not call back into the scheduler.
type TickFunc func(now time.Time)

type Scheduler struct {
	mu          sync.Mutex
	waker       Waker
	clock       Clock
	minInterval time.Duration
	tick        TickFunc

	state    State
	gen      uint64
	handle   Handle
	last     time.Time
	executed uint64
	skipped  uint64
}

// New builds a stopped scheduler. maxFPS <= 0 disables the frame-rate
// ceiling. A nil clock uses the system clock.
func New(waker Waker, clock Clock, maxFPS float64, tick TickFunc) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	var interval time.Duration
	if maxFPS > 0 {
		interval = time.Duration(float64(time.Second) / maxFPS)
	}
	return &Scheduler{waker: waker, clock: clock, minInterval: interval, tick: tick}
}

func (s *Scheduler) MinInterval() time.Duration { return s.minInterval }

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Executed and Skipped count callbacks that ran the tick and callbacks
// rejected by the frame-rate ceiling.
func (s *Scheduler) Executed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executed
}

func (s *Scheduler) Skipped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Start moves to Running and schedules the first callback. It is a no-op
// while running and reports false, staying Stopped, when there is no waker
// or tick to drive.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waker == nil || s.tick == nil {
		return false
	}
	if s.state == Running {
		return true
	}
	s.state = Running
	s.gen++
	s.last = time.Time{}
	s.scheduleLocked()
	return true
}

// Stop cancels the pending callback. Callbacks already handed to the host
// become no-ops. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	s.gen++
	s.waker.Cancel(s.handle)
}

func (s *Scheduler) scheduleLocked() {
	gen := s.gen
	s.handle = s.waker.Schedule(func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running || gen != s.gen {
		return
	}
	now := s.clock.Now()
	if !s.last.IsZero() && now.Sub(s.last) < s.minInterval {
		s.skipped++
	} else {
		s.last = now
		s.executed++
		s.tick(now)
	}
	s.scheduleLocked()
}
