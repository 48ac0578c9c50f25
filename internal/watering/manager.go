// Package watering owns the per-plant growth and wither timers and drives
// plants forward when they are watered.
package watering

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PetalGarden_Go/internal/distribution"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/plant"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
)

// Config holds the game-wide timings used when a definition leaves them unset
type Config struct {
	StageGrowthTime time.Duration
	WitherDuration  time.Duration
}

// DefaultConfig returns the built-in timings
func DefaultConfig() Config {
	return Config{
		StageGrowthTime: domain.DefaultStageGrowthTime,
		WitherDuration:  domain.DefaultWitherDuration,
	}
}

// TimerCounts reports the armed timers per kind
type TimerCounts struct {
	Growth int
	Wither int
}

// Manager owns the timer tables of every tracked plant. It references plants
// but never owns them; the grid decides when a plant goes away and calls
// Release.
//
// Every method and every timer callback must run on the update loop. The mutex
// only protects the tables for ActiveTimers, which metrics read from other
// goroutines.
type Manager struct {
	ctx   context.Context
	sched scheduler.Scheduler
	bus   event.Bus
	src   distribution.Source
	cfg   Config

	mu          sync.Mutex
	growth      map[uuid.UUID]scheduler.Handle
	wither      map[uuid.UUID]scheduler.Handle
	lastWatered map[uuid.UUID]time.Time
	disposed    bool
}

// NewManager creates a manager. ctx is used by timer callbacks for logging
// and publishing.
func NewManager(ctx context.Context, sched scheduler.Scheduler, bus event.Bus, src distribution.Source, cfg Config) *Manager {
	if cfg.StageGrowthTime <= 0 {
		cfg.StageGrowthTime = domain.DefaultStageGrowthTime
	}
	if cfg.WitherDuration <= 0 {
		cfg.WitherDuration = domain.DefaultWitherDuration
	}
	return &Manager{
		ctx:         ctx,
		sched:       sched,
		bus:         bus,
		src:         src,
		cfg:         cfg,
		growth:      make(map[uuid.UUID]scheduler.Handle),
		wither:      make(map[uuid.UUID]scheduler.Handle),
		lastWatered: make(map[uuid.UUID]time.Time),
	}
}

// Track starts managing a freshly planted plant. New plants wait for water,
// so the wither timer starts right away.
func (m *Manager) Track(p *plant.Plant) {
	if p == nil || m.isDisposed() {
		return
	}
	if plant.NeedsWatering(p) {
		m.armWither(p)
	}
}

// WaterPlant advances p one stage. It returns false and changes nothing when
// p does not need watering or the manager is disposed.
func (m *Manager) WaterPlant(ctx context.Context, p *plant.Plant) bool {
	log := logger.FromContext(ctx)
	if m.isDisposed() {
		log.Debug(LogMsgWaterRejected, LogFieldReason, domain.ErrMsgDisposed)
		return false
	}
	if !plant.NeedsWatering(p) {
		log.Debug(LogMsgWaterRejected, LogFieldReason, domain.ErrMsgNotWaitingForWater)
		return false
	}

	now := m.sched.Now()
	tr, err := p.Water(ctx, now)
	if err != nil {
		log.Debug(LogMsgWaterRejected, LogFieldReason, err.Error())
		return false
	}

	m.StopWitherTimer(p)
	m.mu.Lock()
	m.lastWatered[p.ID()] = now
	m.mu.Unlock()

	if tr.To.IsTerminal() {
		m.StopGrowthTimer(p)
	} else {
		m.armGrowth(p)
	}

	log.Info(LogMsgPlantWatered, LogFieldPlantID, p.ID().String(), LogFieldStage, tr.To.String())

	view := p.View()
	m.publish(ctx, event.NewPlantEvent(event.PlantWatered, view))
	m.publish(ctx, event.NewStageChangedEvent(view, tr.From, tr.To))
	p.Mechanics().Watered(ctx, p)
	p.Mechanics().StageChanged(ctx, p, tr.From, tr.To)
	return true
}

// NeedsWatering reports whether p is waiting for water
func (m *Manager) NeedsWatering(p *plant.Plant) bool {
	return plant.NeedsWatering(p)
}

// TimeSinceLastWatering returns zero when p was never watered
func (m *Manager) TimeSinceLastWatering(p *plant.Plant) time.Duration {
	if p == nil {
		return 0
	}
	m.mu.Lock()
	last, ok := m.lastWatered[p.ID()]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return m.sched.Now().Sub(last)
}

// StopWitherTimer cancels p's wither timer, if any
func (m *Manager) StopWitherTimer(p *plant.Plant) {
	if p == nil {
		return
	}
	m.stop(m.wither, p.ID())
}

// StopGrowthTimer cancels p's growth timer, if any
func (m *Manager) StopGrowthTimer(p *plant.Plant) {
	if p == nil {
		return
	}
	m.stop(m.growth, p.ID())
}

// Release forgets p entirely. Called when the plant leaves its cell.
func (m *Manager) Release(p *plant.Plant) {
	if p == nil {
		return
	}
	m.StopGrowthTimer(p)
	m.StopWitherTimer(p)
	m.mu.Lock()
	delete(m.lastWatered, p.ID())
	m.mu.Unlock()
}

// ActiveTimers returns the number of armed timers. Safe from any goroutine.
func (m *Manager) ActiveTimers() TimerCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return TimerCounts{Growth: len(m.growth), Wither: len(m.wither)}
}

// Dispose cancels every outstanding timer. Later calls, and any callback whose
// timer was already due, do nothing.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	handles := make([]scheduler.Handle, 0, len(m.growth)+len(m.wither))
	for _, h := range m.growth {
		handles = append(handles, h)
	}
	for _, h := range m.wither {
		handles = append(handles, h)
	}
	m.growth = make(map[uuid.UUID]scheduler.Handle)
	m.wither = make(map[uuid.UUID]scheduler.Handle)
	m.lastWatered = make(map[uuid.UUID]time.Time)
	m.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	logger.FromContext(m.ctx).Info(LogMsgManagerDisposed, LogFieldCancelled, len(handles))
}

func (m *Manager) isDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}

func (m *Manager) stop(table map[uuid.UUID]scheduler.Handle, id uuid.UUID) {
	m.mu.Lock()
	h, ok := table[id]
	delete(table, id)
	m.mu.Unlock()
	if ok {
		h.Cancel()
	}
}

// arm replaces the timer for id in table. The old handle is cancelled before
// the new one is stored, in one step on the update loop.
func (m *Manager) arm(table map[uuid.UUID]scheduler.Handle, id uuid.UUID, d time.Duration, fn func(scheduler.Handle)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		logger.FromContext(m.ctx).Debug(LogMsgTimerAfterDispose, LogFieldPlantID, id.String())
		return
	}
	if old, ok := table[id]; ok {
		old.Cancel()
	}
	var h scheduler.Handle
	h = m.sched.AfterFunc(d, func() { fn(h) })
	table[id] = h
}

// claim removes h from table if it is still the current timer for id
func (m *Manager) claim(table map[uuid.UUID]scheduler.Handle, id uuid.UUID, h scheduler.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed || table[id] != h {
		return false
	}
	delete(table, id)
	return true
}

func (m *Manager) growthDuration(p *plant.Plant) time.Duration {
	base := p.Definition().StageGrowthTime
	if base <= 0 {
		base = m.cfg.StageGrowthTime
	}
	return ClampDuration(base.Seconds()/p.GrowthModifier(), m.cfg.StageGrowthTime)
}

func (m *Manager) witherDuration(p *plant.Plant) time.Duration {
	base := p.Definition().WitherDuration
	if base <= 0 {
		base = m.cfg.WitherDuration
	}
	return ClampDuration(base.Seconds(), m.cfg.WitherDuration)
}

func (m *Manager) armGrowth(p *plant.Plant) {
	m.arm(m.growth, p.ID(), m.growthDuration(p), func(h scheduler.Handle) {
		m.growthElapsed(p, h)
	})
}

func (m *Manager) armWither(p *plant.Plant) {
	m.arm(m.wither, p.ID(), m.witherDuration(p), func(h scheduler.Handle) {
		m.witherElapsed(p, h)
	})
}

func (m *Manager) growthElapsed(p *plant.Plant, h scheduler.Handle) {
	if !m.claim(m.growth, p.ID(), h) {
		return
	}
	if !p.BeginWaiting() {
		return
	}
	logger.FromContext(m.ctx).Debug(LogMsgPlantNeedsWater, LogFieldPlantID, p.ID().String())
	m.armWither(p)
	m.publish(m.ctx, event.NewPlantEvent(event.PlantNeedsWater, p.View()))
}

func (m *Manager) witherElapsed(p *plant.Plant, h scheduler.Handle) {
	if !m.claim(m.wither, p.ID(), h) {
		return
	}
	if !plant.NeedsWatering(p) {
		return
	}

	log := logger.FromContext(m.ctx)
	risk := p.WitherRisk()
	if risk < 1 && m.src.Float64() >= risk {
		log.Debug(LogMsgPlantSurvived, LogFieldPlantID, p.ID().String())
		m.armWither(p)
		return
	}

	tr, err := p.Wither(m.ctx)
	if err != nil {
		log.Error(LogMsgWitherFailed, LogFieldPlantID, p.ID().String(), LogFieldError, err)
		return
	}
	m.StopGrowthTimer(p)
	m.StopWitherTimer(p)

	log.Info(LogMsgPlantWithered, LogFieldPlantID, p.ID().String())
	view := p.View()
	m.publish(m.ctx, event.NewPlantEvent(event.PlantWithered, view))
	m.publish(m.ctx, event.NewStageChangedEvent(view, tr.From, tr.To))
	p.Mechanics().StageChanged(m.ctx, p, tr.From, tr.To)
}

func (m *Manager) publish(ctx context.Context, e event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, LogFieldEventType, string(e.Type), LogFieldError, err)
	}
}
