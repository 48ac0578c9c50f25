package cooldown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Service manages action cooldowns
type Service interface {
	// CheckCooldown checks if an action is on cooldown for key
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, key, action string) (bool, time.Duration, error)

	// EnforceCooldown checks the cooldown and runs fn if allowed. The timestamp
	// is recorded only when fn succeeds.
	EnforceCooldown(ctx context.Context, key, action string, fn func() error) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, key, action string) error

	// GetLastUsed returns when action was last performed (nil if never)
	GetLastUsed(ctx context.Context, key, action string) (*time.Time, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	if e.Remaining > 0 && e.Remaining < time.Second {
		return fmt.Sprintf(ErrFmtCooldownMilliseconds, e.Action, e.Remaining.Milliseconds())
	}

	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// memoryBackend keeps last-used timestamps in memory. Enforcement is
// serialized by enforceMu so check, fn and record happen as one step.
type memoryBackend struct {
	config Config
	clock  Clock

	enforceMu sync.Mutex
	mu        sync.RWMutex
	lastUsed  map[string]time.Time
}

// NewMemoryService creates an in-memory cooldown service
func NewMemoryService(config Config, clock Clock) Service {
	return &memoryBackend{
		config:   config,
		clock:    clock,
		lastUsed: make(map[string]time.Time),
	}
}

func (b *memoryBackend) CheckCooldown(ctx context.Context, key, action string) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}
	lastUsed, err := b.GetLastUsed(ctx, key, action)
	if err != nil {
		return false, 0, err
	}
	onCooldown, remaining := b.checkCooldownInternal(lastUsed, b.config.Duration(action))
	return onCooldown, remaining, nil
}

func (b *memoryBackend) EnforceCooldown(ctx context.Context, key, action string, fn func() error) error {
	log := logger.FromContext(ctx)

	b.enforceMu.Lock()
	defer b.enforceMu.Unlock()

	if b.config.DevMode {
		log.Debug(LogMsgDevModeBypass, "action", action, "key", key)
	} else {
		onCooldown, remaining, err := b.CheckCooldown(ctx, key, action)
		if err != nil {
			return err
		}
		if onCooldown {
			log.Debug(LogMsgCooldownRejected, "action", action, "key", key, "remaining", remaining)
			return ErrOnCooldown{Action: action, Remaining: remaining}
		}
	}

	if err := fn(); err != nil {
		// fn failed, the cooldown is not consumed
		return err
	}

	b.mu.Lock()
	b.lastUsed[cooldownKey(key, action)] = b.clock.Now()
	b.mu.Unlock()

	log.Debug(LogMsgCooldownEnforced, "action", action, "key", key)
	return nil
}

func (b *memoryBackend) ResetCooldown(_ context.Context, key, action string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.lastUsed, cooldownKey(key, action))
	return nil
}

func (b *memoryBackend) GetLastUsed(_ context.Context, key, action string) (*time.Time, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.lastUsed[cooldownKey(key, action)]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (b *memoryBackend) checkCooldownInternal(lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := b.clock.Now().Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}

func cooldownKey(key, action string) string {
	return key + keySeparator + action
}
