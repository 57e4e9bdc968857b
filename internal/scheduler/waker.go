package scheduler

import "sync"

type Handle uint64

// Waker is the host's "call me on the next frame" capability.
type Waker interface {
	Schedule(fn func()) Handle
	Cancel(h Handle)
}

// Queue is a Waker whose callbacks run when the host calls Fire.
type Queue struct {
	mu      sync.Mutex
	next    Handle
	pending map[Handle]func()
	order   []Handle
}

func NewQueue() *Queue {
	return &Queue{pending: make(map[Handle]func())}
}

func (q *Queue) Schedule(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *Queue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, h)
}

func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Fire runs the callbacks pending at the time of the call. Callbacks they
// schedule wait for the next Fire. It returns how many ran.
func (q *Queue) Fire() int {
	q.mu.Lock()
	order := q.order
	q.order = nil
	fns := make([]func(), 0, len(order))
	for _, h := range order {
		if fn, ok := q.pending[h]; ok {
			fns = append(fns, fn)
			delete(q.pending, h)
		}
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// FireN calls Fire n times.
func (q *Queue) FireN(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		ran += q.Fire()
	}
	return ran
}
