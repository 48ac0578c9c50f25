package plant

import (
	"context"
	"math"
	"sort"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Mechanic is a per-definition behaviour plugged into the plant lifecycle.
// A mechanic implements any subset of the hook interfaces below.
type Mechanic interface {
	Name() string
}

// PlantedHook runs once the plant is in its cell
type PlantedHook interface {
	OnPlanted(ctx context.Context, p *Plant)
}

// WateredHook runs after every successful watering
type WateredHook interface {
	OnWatered(ctx context.Context, p *Plant)
}

// StageChangedHook runs whenever the plant enters a new stage
type StageChangedHook interface {
	OnStageChanged(ctx context.Context, p *Plant, from, to domain.Stage)
}

// HarvestedHook runs after the reward has been settled
type HarvestedHook interface {
	OnHarvested(ctx context.Context, p *Plant, reward domain.RewardResult)
}

// RewardModifier adjusts a harvest reward before it is applied to the economy
type RewardModifier interface {
	ModifyReward(ctx context.Context, p *Plant, reward domain.RewardResult) domain.RewardResult
}

// Mechanics is the ordered list of mechanics attached to a plant. Every hook
// call is isolated: a panicking mechanic is logged and the next one still runs.
type Mechanics []Mechanic

// Planted invokes every PlantedHook
func (m Mechanics) Planted(ctx context.Context, p *Plant) {
	for _, mech := range m {
		if h, ok := mech.(PlantedHook); ok {
			invoke(ctx, mech, hookPlanted, func() { h.OnPlanted(ctx, p) })
		}
	}
}

// Watered invokes every WateredHook
func (m Mechanics) Watered(ctx context.Context, p *Plant) {
	for _, mech := range m {
		if h, ok := mech.(WateredHook); ok {
			invoke(ctx, mech, hookWatered, func() { h.OnWatered(ctx, p) })
		}
	}
}

// StageChanged invokes every StageChangedHook
func (m Mechanics) StageChanged(ctx context.Context, p *Plant, from, to domain.Stage) {
	for _, mech := range m {
		if h, ok := mech.(StageChangedHook); ok {
			invoke(ctx, mech, hookStageChanged, func() { h.OnStageChanged(ctx, p, from, to) })
		}
	}
}

// Harvested invokes every HarvestedHook
func (m Mechanics) Harvested(ctx context.Context, p *Plant, reward domain.RewardResult) {
	for _, mech := range m {
		if h, ok := mech.(HarvestedHook); ok {
			invoke(ctx, mech, hookHarvested, func() { h.OnHarvested(ctx, p, reward) })
		}
	}
}

// ModifyReward threads reward through every RewardModifier in order. A
// modifier that panics leaves the reward as it was before that modifier.
func (m Mechanics) ModifyReward(ctx context.Context, p *Plant, reward domain.RewardResult) domain.RewardResult {
	for _, mech := range m {
		h, ok := mech.(RewardModifier)
		if !ok {
			continue
		}
		in := reward
		invoke(ctx, mech, hookModifyReward, func() { reward = h.ModifyReward(ctx, p, in) })
		if reward.Coins < 0 || reward.Petals < 0 {
			reward = in
		}
	}
	return reward
}

func invoke(ctx context.Context, mech Mechanic, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgMechanicPanicked,
				LogFieldMechanic, mech.Name(), LogFieldHook, hook, LogFieldPanic, r)
		}
	}()
	fn()
}

// Registry maps mechanic names from plant definitions to implementations
type Registry struct {
	mechanics map[string]Mechanic
}

// NewRegistry returns a registry holding the built-in mechanics
func NewRegistry() *Registry {
	r := &Registry{mechanics: make(map[string]Mechanic)}
	r.Register(quickSprout{})
	r.Register(doublePetals{})
	return r
}

// Register adds or replaces a mechanic under its name
func (r *Registry) Register(m Mechanic) {
	r.mechanics[m.Name()] = m
}

// Names returns the registered mechanic names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.mechanics))
	for name := range r.mechanics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the mechanics for names, in order. Unknown names are logged
// and skipped.
func (r *Registry) Resolve(ctx context.Context, names []string) Mechanics {
	if len(names) == 0 {
		return nil
	}
	out := make(Mechanics, 0, len(names))
	for _, name := range names {
		m, ok := r.mechanics[name]
		if !ok {
			logger.FromContext(ctx).Warn(LogMsgUnknownMechanic, LogFieldMechanic, name)
			continue
		}
		out = append(out, m)
	}
	return out
}

// quickSprout speeds up every growth stage
type quickSprout struct{}

func (quickSprout) Name() string { return MechanicQuickSprout }

func (quickSprout) OnPlanted(_ context.Context, p *Plant) {
	p.ScaleGrowthModifier(QuickSproutGrowthFactor)
}

// doublePetals doubles the petal payout
type doublePetals struct{}

func (doublePetals) Name() string { return MechanicDoublePetals }

func (doublePetals) ModifyReward(_ context.Context, _ *Plant, reward domain.RewardResult) domain.RewardResult {
	if reward.Petals > math.MaxInt64/DoublePetalsFactor {
		reward.Petals = math.MaxInt64
		return reward
	}
	reward.Petals *= DoublePetalsFactor
	return reward
}
