package economy

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Snapshot is the serializable form of the ledger. Zero petal counts are
// omitted.
type Snapshot struct {
	Coins  int64            `json:"coins" yaml:"coins"`
	Petals map[string]int64 `json:"petals,omitempty" yaml:"petals,omitempty"`
}

// PetalTypes returns the petal types in the snapshot, sorted
func (s Snapshot) PetalTypes() []string {
	types := make([]string, 0, len(s.Petals))
	for t := range s.Petals {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (s *service) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Coins: s.coins}
	for t, n := range s.petals {
		if n == 0 {
			continue
		}
		if snap.Petals == nil {
			snap.Petals = make(map[string]int64, len(s.petals))
		}
		snap.Petals[string(t)] = n
	}
	return snap
}

// Restore replaces the ledger with snap. A snapshot holding a negative value
// is rejected as a whole and the ledger is left unchanged.
func (s *service) Restore(ctx context.Context, snap Snapshot) error {
	if snap.Coins < 0 {
		return fmt.Errorf(ErrMsgNegativeCoinsFmt, snap.Coins, domain.ErrNegativeAmount)
	}
	for _, t := range snap.PetalTypes() {
		if n := snap.Petals[t]; n < 0 {
			return fmt.Errorf(ErrMsgNegativePetalsFmt, t, n, domain.ErrNegativeAmount)
		}
	}

	type change struct {
		petalType  domain.PlantType
		prev, next int64
	}

	s.mu.Lock()
	prevCoins := s.coins
	s.coins = snap.Coins

	var changes []change
	next := make(map[domain.PlantType]int64, len(snap.Petals))
	for t, n := range snap.Petals {
		if n > 0 {
			next[domain.PlantType(t)] = n
		}
	}
	for t, n := range s.petals {
		if next[t] != n {
			changes = append(changes, change{petalType: t, prev: n, next: next[t]})
		}
	}
	for t, n := range next {
		if _, ok := s.petals[t]; !ok {
			changes = append(changes, change{petalType: t, prev: 0, next: n})
		}
	}
	s.petals = next
	s.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].petalType < changes[j].petalType })

	s.coinsChanged(ctx, prevCoins, snap.Coins)
	for _, c := range changes {
		s.petalsChanged(ctx, c.petalType, c.prev, c.next)
	}
	logger.FromContext(ctx).Info(LogMsgLedgerRestored, LogFieldCoins, snap.Coins)
	return nil
}
