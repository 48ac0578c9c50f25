package eventlog

import (
	"context"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Service journals domain events so clients can catch up on what they missed
type Service interface {
	// Subscribe registers the journal on every event type
	Subscribe(bus event.Bus) event.Subscription

	// Recent returns journaled events, newest first
	Recent(ctx context.Context, filter EventFilter) ([]Entry, error)

	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event journal service. A nil now uses time.Now.
func NewService(repo Repository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}
}

// Subscribe registers a wildcard handler on the bus
func (s *service) Subscribe(bus event.Bus) event.Subscription {
	return bus.SubscribeAll(s.handleEvent)
}

// handleEvent stores one event. Grid snapshots are skipped since every
// one of them supersedes the last.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	if evt.Type == event.GridChanged {
		log.Debug(LogMsgEventSkipped, LogFieldType, evt.Type)
		return nil
	}

	id, err := s.repo.LogEvent(ctx, string(evt.Type), evt.Payload, evt.Metadata, s.now())
	if err != nil {
		log.Error(LogMsgFailedToLog, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldID, id)
	return nil
}

func (s *service) Recent(ctx context.Context, filter EventFilter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	filter.Limit = min(filter.Limit, MaxQueryLimit)
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
