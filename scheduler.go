package main

import "container/heap"

// Timer is a cancellable frame-counted callback
type Timer struct {
	due   uint64
	seq   uint64
	fn    func()
	index int
	s     *Scheduler
}

// Cancel stops the timer. A cancelled timer never fires, even when it
// is due in the frame being advanced.
func (t *Timer) Cancel() {
	if t == nil || t.index < 0 {
		return
	}
	heap.Remove(&t.s.queue, t.index)
}

// Pending reports whether the timer is still waiting to fire
func (t *Timer) Pending() bool {
	return t != nil && t.index >= 0
}

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

// Scheduler runs delayed callbacks in frame order. Timers due in the same
// frame fire in the order they were scheduled.
type Scheduler struct {
	frame uint64
	seq   uint64
	queue timerQueue
}

// NewScheduler creates a scheduler at frame zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Frame returns the current frame number
func (s *Scheduler) Frame() uint64 { return s.frame }

// After schedules fn to run after the given number of frames (minimum one)
func (s *Scheduler) After(frames int, fn func()) *Timer {
	if frames < 1 {
		frames = 1
	}
	s.seq++
	t := &Timer{due: s.frame + uint64(frames), seq: s.seq, fn: fn, s: s}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves to the next frame and fires every timer that is now due
func (s *Scheduler) Advance() {
	s.frame++
	for len(s.queue) > 0 && s.queue[0].due <= s.frame {
		t := heap.Pop(&s.queue).(*Timer)
		t.fn()
	}
}

// Len returns the number of pending timers
func (s *Scheduler) Len() int { return len(s.queue) }

// TimerSlot owns at most one pending timer
type TimerSlot struct {
	t *Timer
}

// Replace cancels the current timer, if any, and holds t instead
func (ts *TimerSlot) Replace(t *Timer) {
	ts.t.Cancel()
	ts.t = t
}

// Cancel stops the held timer
func (ts *TimerSlot) Cancel() {
	ts.t.Cancel()
	ts.t = nil
}

// Pending reports whether the slot holds a timer that has not fired
func (ts *TimerSlot) Pending() bool {
	return ts.t.Pending()
}
