package plant

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PetalGarden_Go/internal/distribution"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Clock is the part of a scheduler the factory needs
type Clock interface {
	Now() time.Time
}

// allRarities keys the cached list of every definition
const allRarities domain.Rarity = "*"

// Factory draws plant definitions and builds plants from them
type Factory struct {
	defs       []domain.PlantDefinition
	rarities   *distribution.RarityTable
	registry   *Registry
	clock      Clock
	candidates *expirable.LRU[domain.Rarity, []*domain.PlantDefinition]
}

// NewFactory creates a factory over defs. The definitions are copied.
func NewFactory(defs []domain.PlantDefinition, rarities *distribution.RarityTable, registry *Registry, clock Clock) *Factory {
	if registry == nil {
		registry = NewRegistry()
	}
	copied := make([]domain.PlantDefinition, len(defs))
	copy(copied, defs)
	return &Factory{
		defs:       copied,
		rarities:   rarities,
		registry:   registry,
		clock:      clock,
		candidates: expirable.NewLRU[domain.Rarity, []*domain.PlantDefinition](candidateCacheSize, nil, 0),
	}
}

// Definitions returns the number of known definitions
func (f *Factory) Definitions() int {
	return len(f.defs)
}

// PickDefinition draws a rarity, then picks uniformly among definitions of
// that rarity. When the tier is empty it picks uniformly among all
// definitions. It returns false only when no definitions exist.
func (f *Factory) PickDefinition(ctx context.Context, src distribution.Source) (*domain.PlantDefinition, bool) {
	log := logger.FromContext(ctx)
	if len(f.defs) == 0 {
		log.Warn(LogMsgNoDefinitions)
		return nil, false
	}

	rarity := f.rarities.Pick(src)
	pool := f.candidatesFor(rarity)
	if len(pool) == 0 {
		log.Warn(LogMsgRarityTierEmpty, LogFieldRarity, string(rarity))
		pool = f.candidatesFor(allRarities)
	}
	return pool[src.IntN(len(pool))], true
}

func (f *Factory) candidatesFor(rarity domain.Rarity) []*domain.PlantDefinition {
	if pool, ok := f.candidates.Get(rarity); ok {
		return pool
	}
	var pool []*domain.PlantDefinition
	for i := range f.defs {
		if rarity == allRarities || f.defs[i].Rarity == rarity {
			pool = append(pool, &f.defs[i])
		}
	}
	f.candidates.Add(rarity, pool)
	return pool
}

// New builds a plant from def on the given soil and resolves its mechanics.
// Planted hooks are not run here; the grid runs them once the plant is in
// its cell.
func (f *Factory) New(ctx context.Context, def *domain.PlantDefinition, pos domain.Position, soil domain.Soil) *Plant {
	return New(def, pos, soil, f.registry.Resolve(ctx, def.Mechanics), f.clock.Now())
}
