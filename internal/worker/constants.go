package worker

import "errors"

// Log messages
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgPoolStarted       = "Worker pool started"
	LogMsgPoolStopped       = "Worker pool stopped"
	LogMsgQueueFull         = "Worker queue full, job dropped"
)

// Log field keys
const (
	LogFieldJob     = "job"
	LogFieldWorkers = "workers"
	LogFieldDrained = "drained"
	LogFieldError   = "error"
	LogFieldPanic   = "panic"
)

// Pool defaults
const (
	DefaultWorkers   = 1
	DefaultQueueSize = 16
	anonymousJob     = "anonymous"
)

// ErrPoolStopped is returned when a job is offered to a stopped pool
var ErrPoolStopped = errors.New("worker pool stopped")
