package save

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
	"github.com/osse101/PetalGarden_Go/internal/worker"
)

// Ledger is the part of the economy the autosaver reads
type Ledger interface {
	Export() economy.Snapshot
}

// Enqueuer accepts background jobs
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Autosaver snapshots the ledger on the update loop at a fixed interval and
// hands the write to the worker pool
type Autosaver struct {
	ctx        context.Context
	store      *Store
	ledger     Ledger
	sched      scheduler.Scheduler
	dispatcher scheduler.Dispatcher
	pool       Enqueuer
	bus        event.Bus
	interval   time.Duration

	mu        sync.Mutex
	handle    scheduler.Handle
	lastSaved *economy.Snapshot
	stopped   bool
}

// AutosaverDeps are the collaborators of an Autosaver
type AutosaverDeps struct {
	Store      *Store
	Ledger     Ledger
	Scheduler  scheduler.Scheduler
	Dispatcher scheduler.Dispatcher
	Pool       Enqueuer
	Bus        event.Bus
}

// NewAutosaver creates an autosaver. It does nothing until Start.
func NewAutosaver(ctx context.Context, interval time.Duration, deps AutosaverDeps) *Autosaver {
	return &Autosaver{
		ctx:        ctx,
		store:      deps.Store,
		ledger:     deps.Ledger,
		sched:      deps.Scheduler,
		dispatcher: deps.Dispatcher,
		pool:       deps.Pool,
		bus:        deps.Bus,
		interval:   interval,
	}
}

// Start arms the interval timer. Must run on the update loop.
func (a *Autosaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handle != nil || a.stopped || a.interval <= 0 {
		return
	}
	a.handle = scheduler.Every(a.sched, a.interval, a.tick)
	logger.FromContext(a.ctx).Info(LogMsgAutosaveStarted, LogFieldInterval, a.interval.String())
}

// tick runs on the update loop
func (a *Autosaver) tick() {
	snap := a.ledger.Export()
	if !a.changed(snap) {
		logger.FromContext(a.ctx).Debug(LogMsgSaveSkipped)
		return
	}
	savedAt := a.sched.Now()
	job := &saveJob{save: func(ctx context.Context) error { return a.write(ctx, snap, savedAt, a.publish) }}
	if !a.pool.Enqueue(job) {
		logger.FromContext(a.ctx).Warn(LogMsgSaveDropped)
		return
	}
	logger.FromContext(a.ctx).Debug(LogMsgSaveQueued)
}

// Stop cancels the interval and saves once more, synchronously. The
// snapshot is taken on the update loop through the dispatcher.
func (a *Autosaver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return nil
	}
	a.stopped = true
	handle := a.handle
	a.mu.Unlock()

	var snap economy.Snapshot
	var savedAt time.Time
	err := a.dispatcher.Do(ctx, func() {
		if handle != nil {
			handle.Cancel()
		}
		snap = a.ledger.Export()
		savedAt = a.sched.Now()
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgDispatchFailed, LogFieldError, err)
		return err
	}

	logger.FromContext(ctx).Info(LogMsgAutosaveStopped)
	return a.write(ctx, snap, savedAt, a.publish)
}

// SaveNow writes the ledger synchronously. Must run on the update loop; the
// completion event is published in place.
func (a *Autosaver) SaveNow(ctx context.Context) error {
	return a.write(ctx, a.ledger.Export(), a.sched.Now(), a.publishOnLoop)
}

func (a *Autosaver) write(ctx context.Context, snap economy.Snapshot, savedAt time.Time, publish func(context.Context, event.Event)) error {
	if err := a.store.SaveLedger(ctx, snap, savedAt); err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveFailed, LogFieldError, err)
		return err
	}

	a.mu.Lock()
	a.lastSaved = &snap
	a.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgLedgerSaved, LogFieldCoins, snap.Coins, LogFieldPetalTypes, len(snap.Petals))
	publish(ctx, event.NewSaveCompletedEvent(snap.Coins, len(snap.Petals), savedAt.Unix()))
	return nil
}

// publish delivers on the update loop from any other goroutine. After the
// loop stops the event is dropped with a log line.
func (a *Autosaver) publish(ctx context.Context, e event.Event) {
	if a.bus == nil {
		return
	}
	if err := a.dispatcher.Do(ctx, func() { a.publishOnLoop(ctx, e) }); err != nil {
		logger.FromContext(ctx).Debug(LogMsgDispatchFailed, LogFieldError, err)
	}
}

func (a *Autosaver) publishOnLoop(ctx context.Context, e event.Event) {
	if a.bus == nil {
		return
	}
	if err := a.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, LogFieldError, err)
	}
}

func (a *Autosaver) changed(snap economy.Snapshot) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lastSaved == nil {
		return true
	}
	return a.lastSaved.Coins != snap.Coins || !maps.Equal(a.lastSaved.Petals, snap.Petals)
}

type saveJob struct {
	save func(ctx context.Context) error
}

func (j *saveJob) Name() string { return autosaveJobName }

func (j *saveJob) Process(ctx context.Context) error {
	return j.save(ctx)
}
