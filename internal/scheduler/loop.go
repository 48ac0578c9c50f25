package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Loop is the update thread. A single goroutine runs every task, timer
// callbacks included, so game state has exactly one writer.
//
// Timer callbacks are delivered by time.AfterFunc, which only posts a task to
// the queue. The task checks the handle again before running, so a timer
// cancelled after its deadline passed, or outstanding when Stop was called,
// never runs its callback.
type Loop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	timers  map[*loopTimer]struct{}
	stopped bool

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewLoop creates a loop with the given queue depth
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultLoopQueueSize
	}
	return &Loop{
		tasks:  make(chan func(), queueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		timers: make(map[*loopTimer]struct{}),
	}
}

// Start launches the loop goroutine. Subsequent calls do nothing.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
		logger.Info(LogMsgLoopStarted)
	})
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case task := <-l.tasks:
			l.exec(task)
		case <-l.quit:
			// Drain what was queued before Stop so waiting Do calls return.
			for {
				select {
				case task := <-l.tasks:
					l.exec(task)
				default:
					return
				}
			}
		}
	}
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(LogMsgLoopTaskPanicked, LogFieldPanic, r)
		}
	}()
	task()
}

// Now returns the wall clock
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn to run on the loop after d. After Stop it returns an
// inactive handle.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	t := &loopTimer{loop: l}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		t.state.cancel()
		return t
	}
	l.timers[t] = struct{}{}
	t.timer = time.AfterFunc(d, func() {
		l.post(func() {
			if !t.state.fire() {
				return
			}
			l.forget(t)
			fn()
		})
	})
	return t
}

// post queues a task without blocking past Stop
func (l *Loop) post(task func()) {
	select {
	case l.tasks <- task:
	case <-l.quit:
	}
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

// Do runs fn on the loop and waits for it to finish. It must not be called
// from inside a loop task.
//
// The outcome is never ambiguous: if ctx ends while fn is still queued, fn is
// withdrawn and Do returns ctx.Err(); once fn has started, Do waits for it and
// returns nil.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	var state atomic.Int32
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		if !state.CompareAndSwap(taskQueued, taskRunning) {
			return
		}
		fn()
	}

	select {
	case <-l.quit:
		return ErrLoopStopped
	default:
	}

	select {
	case l.tasks <- task:
	case <-l.quit:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
	case <-l.done:
	case <-ctx.Done():
		if state.CompareAndSwap(taskQueued, taskWithdrawn) {
			return ctx.Err()
		}
		// Already running, so it will finish or the loop will exit.
		select {
		case <-finished:
		case <-l.done:
		}
	}

	select {
	case <-finished:
		if state.Load() == taskRunning {
			return nil
		}
	default:
	}
	if state.CompareAndSwap(taskQueued, taskWithdrawn) {
		return ErrLoopStopped
	}
	<-finished
	return nil
}

// Pending returns the number of armed timers
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Stop cancels every outstanding timer, runs the tasks already queued and
// waits for the loop goroutine to exit or ctx to expire. It is idempotent.
func (l *Loop) Stop(ctx context.Context) error {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.stopped = true
		timers := l.timers
		l.timers = make(map[*loopTimer]struct{})
		l.mu.Unlock()

		for t := range timers {
			t.stop()
		}
		close(l.quit)

		// A loop that was never started still has to release waiters.
		l.startOnce.Do(func() { close(l.done) })
	})

	select {
	case <-l.done:
		logger.Info(LogMsgLoopStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type loopTimer struct {
	loop  *Loop
	timer *time.Timer
	state timerState
}

func (t *loopTimer) Cancel() bool {
	if !t.stop() {
		return false
	}
	t.loop.forget(t)
	return true
}

func (t *loopTimer) stop() bool {
	if !t.state.cancel() {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

func (t *loopTimer) Active() bool {
	return t.state.active()
}
