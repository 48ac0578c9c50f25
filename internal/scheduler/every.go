package scheduler

import (
	"sync"
	"time"
)

// Every runs fn every interval until the returned handle is cancelled. Each
// run re-arms after fn returns, so a slow fn delays the next tick rather than
// stacking them.
func Every(s Scheduler, interval time.Duration, fn func()) Handle {
	iv := &intervalHandle{s: s, interval: interval, fn: fn}
	iv.arm()
	return iv
}

type intervalHandle struct {
	s        Scheduler
	interval time.Duration
	fn       func()

	mu        sync.Mutex
	current   Handle
	cancelled bool
}

func (iv *intervalHandle) arm() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.cancelled {
		return
	}
	iv.current = iv.s.AfterFunc(iv.interval, iv.tick)
}

func (iv *intervalHandle) tick() {
	if !iv.Active() {
		return
	}
	iv.fn()
	iv.arm()
}

func (iv *intervalHandle) Cancel() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.cancelled {
		return false
	}
	iv.cancelled = true
	if iv.current != nil {
		iv.current.Cancel()
	}
	return true
}

func (iv *intervalHandle) Active() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return !iv.cancelled
}
