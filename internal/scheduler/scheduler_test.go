package scheduler_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/scheduler"
)

// leakyWaker ignores Cancel, like a host that already dispatched the frame.
type leakyWaker struct {
	fns []func()
}

func (w *leakyWaker) Schedule(fn func()) scheduler.Handle {
	w.fns = append(w.fns, fn)
	return scheduler.Handle(len(w.fns))
}

func (w *leakyWaker) Cancel(scheduler.Handle) {}

var _ = Describe("Scheduler", func() {
	var (
		queue *scheduler.Queue
		clock *scheduler.ManualClock
		ticks []time.Time
		s     *scheduler.Scheduler
	)

	record := func(now time.Time) { ticks = append(ticks, now) }

	BeforeEach(func() {
		queue = scheduler.NewQueue()
		clock = scheduler.NewManualClock(time.Unix(1000, 0))
		ticks = nil
		s = scheduler.New(queue, clock, 60, record)
	})

	It("starts stopped", func() {
		Expect(s.State()).To(Equal(scheduler.Stopped))
		Expect(queue.Pending()).To(BeZero())
	})

	It("stays stopped without a waker", func() {
		bare := scheduler.New(nil, clock, 60, record)
		Expect(bare.Start()).To(BeFalse())
		Expect(bare.State()).To(Equal(scheduler.Stopped))
		bare.Stop()
	})

	It("is idempotent while running", func() {
		Expect(s.Start()).To(BeTrue())
		Expect(s.Start()).To(BeTrue())
		Expect(s.State()).To(Equal(scheduler.Running))
		Expect(queue.Pending()).To(Equal(1))
	})

	It("runs one tick per frame and always reschedules", func() {
		s.Start()
		for i := 0; i < 5; i++ {
			clock.Advance(20 * time.Millisecond)
			Expect(queue.Fire()).To(Equal(1))
			Expect(queue.Pending()).To(Equal(1))
		}
		Expect(ticks).To(HaveLen(5))
		Expect(s.Executed()).To(BeEquivalentTo(5))
	})

	It("skips frames faster than the ceiling but keeps rescheduling", func() {
		s.Start()
		queue.Fire()
		Expect(ticks).To(HaveLen(1))

		for i := 0; i < 3; i++ {
			clock.Advance(5 * time.Millisecond)
			queue.Fire()
		}
		Expect(ticks).To(HaveLen(1))
		Expect(s.Skipped()).To(BeEquivalentTo(3))
		Expect(queue.Pending()).To(Equal(1))

		clock.Advance(5 * time.Millisecond)
		queue.Fire()
		Expect(ticks).To(HaveLen(2))
	})

	It("derives the minimum interval from max fps", func() {
		Expect(s.MinInterval()).To(BeNumerically("~", time.Second/60, time.Microsecond))
		Expect(scheduler.New(queue, clock, 0, record).MinInterval()).To(BeZero())
	})

	It("cancels the pending callback on stop", func() {
		s.Start()
		queue.Fire()
		s.Stop()
		Expect(s.State()).To(Equal(scheduler.Stopped))
		Expect(queue.Pending()).To(BeZero())

		clock.Advance(time.Second)
		Expect(queue.FireN(10)).To(BeZero())
		Expect(ticks).To(HaveLen(1))
		s.Stop()
	})

	It("never ticks from callbacks issued before stop", func() {
		leaky := &leakyWaker{}
		ls := scheduler.New(leaky, clock, 0, record)
		ls.Start()
		ls.Stop()
		for _, fn := range leaky.fns {
			fn()
			fn()
		}
		Expect(ticks).To(BeEmpty())
	})

	It("can be restarted after stop", func() {
		s.Start()
		s.Stop()
		Expect(s.Start()).To(BeTrue())
		queue.Fire()
		Expect(ticks).To(HaveLen(1))
	})
})

var _ = Describe("Queue", func() {
	It("defers callbacks scheduled while firing", func() {
		q := scheduler.NewQueue()
		runs := 0
		var loop func()
		loop = func() {
			runs++
			q.Schedule(loop)
		}
		q.Schedule(loop)
		Expect(q.Fire()).To(Equal(1))
		Expect(runs).To(Equal(1))
		Expect(q.Pending()).To(Equal(1))
	})

	It("drops cancelled callbacks", func() {
		q := scheduler.NewQueue()
		ran := false
		h := q.Schedule(func() { ran = true })
		q.Cancel(h)
		Expect(q.Fire()).To(BeZero())
		Expect(ran).To(BeFalse())
	})
})

var _ = Describe("ManualClock", func() {
	It("advances and sets", func() {
		start := time.Unix(50, 0)
		c := scheduler.NewManualClock(start)
		c.Advance(time.Second)
		Expect(c.Now()).To(Equal(start.Add(time.Second)))
		c.Set(start)
		Expect(c.Now()).To(Equal(start))
	})
})
