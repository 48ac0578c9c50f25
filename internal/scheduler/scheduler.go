// Package scheduler is the single timing seam of the simulation. Gameplay code
// asks a Scheduler for cancellable timers and never touches time.Timer itself.
package scheduler

import (
	"context"
	"time"
)

// Handle is a scheduled callback
type Handle interface {
	// Cancel stops the callback. It reports false when the callback already
	// ran or was cancelled before; calling it again is a no-op.
	Cancel() bool
	// Active reports whether the callback is still pending
	Active() bool
}

// Scheduler hands out timers and tells the time
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Handle
}

// Dispatcher runs fn on the goroutine that owns game state and waits for it
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// Direct runs fn on the calling goroutine. Used with Manual in tests and
// headless simulations where the caller already is the update thread.
type Direct struct{}

// Do runs fn immediately
func (Direct) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}
