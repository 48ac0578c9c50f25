package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a virtual clock. Time only moves when Advance is called and due
// callbacks run on the caller's goroutine, in deadline order with ties broken
// by scheduling order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers manualHeap
}

// NewManual returns a clock reading start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn at Now()+d. Non-positive d fires on the next Advance.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		m:        m,
		deadline: m.now.Add(d),
		seq:      m.seq,
		fn:       fn,
		index:    -1,
	}
	heap.Push(&m.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that falls due.
// Callbacks may schedule or cancel timers; new timers due within the window
// also run.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].deadline.After(target) {
			m.now = target
			m.mu.Unlock()
			return
		}
		t := heap.Pop(&m.timers).(*manualTimer)
		if t.deadline.After(m.now) {
			m.now = t.deadline
		}
		m.mu.Unlock()

		if t.state.fire() {
			t.fn()
		}
	}
}

// Pending returns the number of scheduled, not yet fired timers
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

type manualTimer struct {
	m        *Manual
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
	state    timerState
}

func (t *manualTimer) Cancel() bool {
	if !t.state.cancel() {
		return false
	}
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.index >= 0 {
		heap.Remove(&t.m.timers, t.index)
	}
	return true
}

func (t *manualTimer) Active() bool {
	return t.state.active()
}

type manualHeap []*manualTimer

func (h manualHeap) Len() int { return len(h) }

func (h manualHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h manualHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *manualHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *manualHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
