// Package economy keeps the coin balance and per-type petal counts.
package economy

import (
	"context"
	"math"
	"sync"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Service defines the ledger operations. Negative amounts are rejected and
// logged; balances saturate at math.MaxInt64 and never go below zero.
type Service interface {
	AddCoins(ctx context.Context, amount int64)
	TrySpendCoins(ctx context.Context, amount int64) bool
	Coins() int64

	AddPetals(ctx context.Context, petalType domain.PlantType, amount int64)
	TrySpendPetals(ctx context.Context, petalType domain.PlantType, amount int64) bool
	HasPetals(ctx context.Context, petalType domain.PlantType, amount int64) bool
	GetPetalsAmount(petalType domain.PlantType) int64

	Export() Snapshot
	Restore(ctx context.Context, snap Snapshot) error
}

type service struct {
	bus event.Bus

	mu     sync.RWMutex
	coins  int64
	petals map[domain.PlantType]int64
}

// NewService creates an empty ledger. bus may be nil.
func NewService(bus event.Bus) Service {
	return &service{
		bus:    bus,
		petals: make(map[domain.PlantType]int64),
	}
}

func (s *service) AddCoins(ctx context.Context, amount int64) {
	if !validAmount(ctx, opAddCoins, amount) {
		return
	}

	s.mu.Lock()
	prev := s.coins
	s.coins = saturatingAdd(prev, amount)
	next := s.coins
	s.mu.Unlock()

	if prev > math.MaxInt64-amount {
		logger.FromContext(ctx).Warn(LogMsgCoinsSaturated, LogFieldAmount, amount)
	}
	s.coinsChanged(ctx, prev, next)
}

func (s *service) TrySpendCoins(ctx context.Context, amount int64) bool {
	if !validAmount(ctx, opSpendCoins, amount) {
		return false
	}
	if amount == 0 {
		return true
	}

	s.mu.Lock()
	prev := s.coins
	if prev < amount {
		s.mu.Unlock()
		return false
	}
	s.coins = prev - amount
	next := s.coins
	s.mu.Unlock()

	s.coinsChanged(ctx, prev, next)
	return true
}

func (s *service) Coins() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coins
}

func (s *service) AddPetals(ctx context.Context, petalType domain.PlantType, amount int64) {
	if !validAmount(ctx, opAddPetals, amount) {
		return
	}

	s.mu.Lock()
	prev := s.petals[petalType]
	next := saturatingAdd(prev, amount)
	if next != 0 {
		s.petals[petalType] = next
	}
	s.mu.Unlock()

	if prev > math.MaxInt64-amount {
		logger.FromContext(ctx).Warn(LogMsgPetalsSaturated, LogFieldPetalType, string(petalType), LogFieldAmount, amount)
	}
	s.petalsChanged(ctx, petalType, prev, next)
}

func (s *service) TrySpendPetals(ctx context.Context, petalType domain.PlantType, amount int64) bool {
	if !validAmount(ctx, opSpendPetals, amount) {
		return false
	}
	if amount == 0 {
		return true
	}

	s.mu.Lock()
	prev := s.petals[petalType]
	if prev < amount {
		s.mu.Unlock()
		return false
	}
	next := prev - amount
	if next == 0 {
		delete(s.petals, petalType)
	} else {
		s.petals[petalType] = next
	}
	s.mu.Unlock()

	s.petalsChanged(ctx, petalType, prev, next)
	return true
}

func (s *service) HasPetals(ctx context.Context, petalType domain.PlantType, amount int64) bool {
	if !validAmount(ctx, opHasPetals, amount) {
		return false
	}
	return s.GetPetalsAmount(petalType) >= amount
}

func (s *service) GetPetalsAmount(petalType domain.PlantType) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.petals[petalType]
}

func (s *service) coinsChanged(ctx context.Context, prev, next int64) {
	if prev == next {
		return
	}
	s.publish(ctx, event.NewCoinsChangedEvent(prev, next))
}

func (s *service) petalsChanged(ctx context.Context, petalType domain.PlantType, prev, next int64) {
	if prev == next {
		return
	}
	s.publish(ctx, event.NewPetalsChangedEvent(petalType, prev, next))
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, LogFieldError, err)
	}
}

func validAmount(ctx context.Context, op string, amount int64) bool {
	if amount < 0 {
		logger.FromContext(ctx).Warn(LogMsgNegativeAmountRejected, LogFieldOperation, op, LogFieldAmount, amount)
		return false
	}
	return true
}

// saturatingAdd adds two non-negative values, clamping at math.MaxInt64
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
