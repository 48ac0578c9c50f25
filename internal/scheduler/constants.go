package scheduler

import "errors"

// Log messages
const (
	LogMsgLoopStarted      = "Update loop started"
	LogMsgLoopStopped      = "Update loop stopped"
	LogMsgLoopTaskPanicked = "Update loop task panicked"
)

// Log field keys
const (
	LogFieldPanic = "panic"
)

// Default queue depth for the update loop
const DefaultLoopQueueSize = 256

// ErrLoopStopped is returned by Do once the loop has been stopped
var ErrLoopStopped = errors.New("update loop stopped")

// Lifecycle of a task queued by Loop.Do
const (
	taskQueued int32 = iota
	taskRunning
	taskWithdrawn
)
