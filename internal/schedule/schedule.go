// Package schedule runs delayed and periodic callbacks on a virtual clock.
//
// The clock only moves when Advance is called, so a round driven by a fixed
// simulation tick behaves identically on every run. All callbacks execute on
// the caller's goroutine, one at a time, ordered by due time and then by
// creation order. A callback may schedule or stop other timers, including
// itself.
package schedule

import (
	"container/heap"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer struct {
	due     time.Duration
	period  time.Duration // zero for one-shot timers
	seq     uint64
	fn      func()
	stopped bool
	index   int // position in the heap, -1 when not queued
}

// Stop cancels the timer. It reports whether the call prevented a future
// run; stopping an already fired one-shot timer or a stopped timer returns false.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return t.index >= 0
}

// Stopped reports whether Stop has been called.
func (t *Timer) Stopped() bool {
	return t == nil || t.stopped
}

// Scheduler owns the virtual clock and the pending timers.
// It is not safe for concurrent use.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// New returns a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current time. Negative delays run at the
// current time on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.push(s.now+d, 0, fn)
}

// Every runs fn every period, first at now+period.
// It panics if period is not positive, like time.NewTicker.
func (s *Scheduler) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		panic("schedule: non-positive period for Every")
	}
	return s.push(s.now+period, period, fn)
}

func (s *Scheduler) push(due, period time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{due: due, period: period, seq: s.seq, fn: fn, index: -1}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by d, running every timer that falls due
// on the way. Timers created by callbacks run in the same call when they are
// due before the new time. It returns the number of callbacks executed.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	fired := 0

	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.stopped {
			continue
		}

		s.now = next.due
		if next.period > 0 {
			// Re-queue before running so the callback can stop its own ticker.
			s.seq++
			next.due += next.period
			next.seq = s.seq
			heap.Push(&s.queue, next)
		} else {
			next.stopped = true
		}

		next.fn()
		fired++
	}

	s.now = target
	return fired
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.stopped {
			n++
		}
	}
	return n
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.queue {
		t.stopped = true
		t.index = -1
	}
	s.queue = s.queue[:0]
}

// timerQueue is a min-heap ordered by due time, then creation order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
