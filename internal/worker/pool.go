// Package worker runs jobs off the update loop, mostly disk writes.
package worker

import (
	"context"
	"sync"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs report their name in logs
type Named interface {
	Name() string
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers. ctx is handed to every job.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	logger.FromContext(ctx).Info(LogMsgPoolStarted, LogFieldWorkers, p.workers)
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(ctx, job)
		case <-p.quit:
			// Jobs queued before Stop still run
			for {
				select {
				case job := <-p.jobQueue:
					p.run(ctx, job)
				default:
					return
				}
			}
		}
	}
}

func (p *Pool) run(ctx context.Context, job Job) {
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error(LogMsgWorkerJobPanicked, LogFieldJob, jobName(job), LogFieldPanic, r)
		}
	}()
	if err := job.Process(ctx); err != nil {
		// Log error but don't crash worker
		log.Error(LogMsgWorkerJobFailed, LogFieldJob, jobName(job), LogFieldError, err)
	}
}

// Enqueue adds a job without blocking. It returns false when the queue is
// full or the pool is stopped.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgQueueFull, LogFieldJob, jobName(job))
		return false
	}
}

// Stop stops the workers once the queue is drained and waits for them.
// Calling it on a pool that never started runs nothing.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.quit)
	p.mu.Unlock()

	p.wg.Wait()
	logger.Info(LogMsgPoolStopped, LogFieldDrained, len(p.jobQueue) == 0)
}

func jobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return anonymousJob
}
