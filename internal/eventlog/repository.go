package eventlog

import (
	"context"
	"maps"
	"sync"
	"time"
)

// Entry is one journaled domain event
type Entry struct {
	ID        int64          `json:"id"`
	EventType string         `json:"event_type"`
	Payload   any            `json:"payload"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	EventTypes []string
	Since      *time.Time
	Limit      int
}

func (f EventFilter) matches(e Entry) bool {
	if f.Since != nil && e.CreatedAt.Before(*f.Since) {
		return false
	}
	if len(f.EventTypes) == 0 {
		return true
	}
	for _, t := range f.EventTypes {
		if t == e.EventType {
			return true
		}
	}
	return false
}

// Repository defines the interface for event journal storage
type Repository interface {
	// LogEvent stores an event and returns its assigned ID
	LogEvent(ctx context.Context, eventType string, payload any, metadata map[string]any, at time.Time) (int64, error)

	// GetEvents returns matching events, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Entry, error)

	// CleanupOldEvents removes events created before the cutoff
	CleanupOldEvents(ctx context.Context, before time.Time) (int64, error)
}

// MemoryRepository keeps the most recent events in a bounded slice.
// Once full, each new event evicts the oldest one.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	nextID   int64
	entries  []Entry
	evicted  int64
}

// NewMemoryRepository creates a journal holding at most capacity events
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &MemoryRepository{
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// LogEvent appends an event, evicting the oldest when full
func (r *MemoryRepository) LogEvent(_ context.Context, eventType string, payload any, metadata map[string]any, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry := Entry{
		ID:        r.nextID,
		EventType: eventType,
		Payload:   payload,
		Metadata:  maps.Clone(metadata),
		CreatedAt: at,
	}
	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = entry
		r.evicted++
		return entry.ID, nil
	}
	r.entries = append(r.entries, entry)
	return entry.ID, nil
}

// GetEvents returns matching events, newest first. A non-positive limit
// returns every match.
func (r *MemoryRepository) GetEvents(_ context.Context, filter EventFilter) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry, 0, min(len(r.entries), max(filter.Limit, 0)))
	for i := len(r.entries) - 1; i >= 0; i-- {
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
		if filter.matches(r.entries[i]) {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

// CleanupOldEvents drops every entry created before the cutoff
func (r *MemoryRepository) CleanupOldEvents(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Entries are appended in time order, so the stale ones form a prefix.
	cut := 0
	for cut < len(r.entries) && r.entries[cut].CreatedAt.Before(before) {
		cut++
	}
	if cut == 0 {
		return 0, nil
	}
	r.entries = append(r.entries[:0], r.entries[cut:]...)
	return int64(cut), nil
}

// Len returns the number of journaled events
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Evicted returns how many events were dropped because the journal was full
func (r *MemoryRepository) Evicted() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.evicted
}
