package plant

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Plant is a single planted instance. Its identity is never reused.
//
// Plant is not safe for concurrent use: every mutation happens on the update
// loop. Reads from other goroutines go through View on that loop as well.
type Plant struct {
	id             uuid.UUID
	def            *domain.PlantDefinition
	pos            domain.Position
	soil           domain.Soil
	stage          domain.Stage
	progress       float64
	waiting        bool
	growthModifier float64
	witherRisk     float64
	plantedAt      time.Time
	lastWatered    time.Time
	removed        bool
	mechanics      Mechanics
}

// New creates a plant in the New stage, waiting for its first watering.
// The growth modifier starts at the soil's multiplier.
func New(def *domain.PlantDefinition, pos domain.Position, soil domain.Soil, mechanics Mechanics, now time.Time) *Plant {
	risk := def.WitherRisk
	if risk <= 0 {
		risk = 1
	}
	return &Plant{
		id:             uuid.New(),
		def:            def,
		pos:            pos,
		soil:           soil,
		stage:          domain.StageNew,
		progress:       domain.StageNew.Checkpoint(),
		waiting:        true,
		growthModifier: soil.GrowthMultiplier,
		witherRisk:     risk,
		plantedAt:      now,
		mechanics:      mechanics,
	}
}

func (p *Plant) ID() uuid.UUID                       { return p.id }
func (p *Plant) Definition() *domain.PlantDefinition { return p.def }
func (p *Plant) Position() domain.Position           { return p.pos }
func (p *Plant) Soil() domain.Soil                   { return p.soil }
func (p *Plant) Stage() domain.Stage                 { return p.stage }
func (p *Plant) Progress() float64                   { return p.progress }
func (p *Plant) IsWaitingForWater() bool             { return p.waiting }
func (p *Plant) GrowthModifier() float64             { return p.growthModifier }
func (p *Plant) WitherRisk() float64                 { return p.witherRisk }
func (p *Plant) PlantedAt() time.Time                { return p.plantedAt }
func (p *Plant) Removed() bool                       { return p.removed }
func (p *Plant) Mechanics() Mechanics                { return p.mechanics }

// LastWatered returns the time of the last watering and false if never watered
func (p *Plant) LastWatered() (time.Time, bool) {
	return p.lastWatered, !p.lastWatered.IsZero()
}

// NeedsWatering is true iff p is non-nil, waiting for water and not in a
// terminal stage
func NeedsWatering(p *Plant) bool {
	return p != nil && !p.removed && p.waiting && !p.stage.IsTerminal()
}

// Water performs the instant stage advance: the plant moves to the next stage,
// takes that stage's progress checkpoint and stops waiting. It fails with
// domain.ErrNotWaitingForWater when NeedsWatering is false and leaves the
// plant untouched.
func (p *Plant) Water(ctx context.Context, now time.Time) (Transition, error) {
	if !NeedsWatering(p) {
		return Transition{}, domain.ErrNotWaitingForWater
	}
	tr, err := defaultLifecycle.Apply(ctx, p.stage, EventWater)
	if err != nil {
		return Transition{}, err
	}
	p.stage = tr.To
	p.progress = tr.To.Checkpoint()
	p.waiting = false
	p.lastWatered = now
	return tr, nil
}

// BeginWaiting flags the plant as blocked on its next watering. It reports
// false for removed or terminal plants.
func (p *Plant) BeginWaiting() bool {
	if p.removed || p.stage.IsTerminal() {
		return false
	}
	p.waiting = true
	return true
}

// Wither moves a neglected plant to Withered
func (p *Plant) Wither(ctx context.Context) (Transition, error) {
	if p.removed {
		return Transition{}, fmt.Errorf("%w: plant %s already removed", domain.ErrInvalidTransition, p.id)
	}
	tr, err := defaultLifecycle.Apply(ctx, p.stage, EventWither)
	if err != nil {
		return Transition{}, err
	}
	p.stage = tr.To
	p.waiting = false
	return tr, nil
}

// Harvest marks a fully grown plant as removed
func (p *Plant) Harvest(ctx context.Context) error {
	if err := p.remove(ctx, EventHarvest); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotHarvestable, err)
	}
	return nil
}

// Destroy marks a withered plant as removed
func (p *Plant) Destroy(ctx context.Context) error {
	if err := p.remove(ctx, EventDestroy); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrNotWithered, err)
	}
	return nil
}

func (p *Plant) remove(ctx context.Context, event string) error {
	if p.removed {
		return fmt.Errorf("%w: plant %s already removed", domain.ErrInvalidTransition, p.id)
	}
	if _, err := defaultLifecycle.Apply(ctx, p.stage, event); err != nil {
		return err
	}
	p.removed = true
	p.waiting = false
	return nil
}

// ScaleGrowthModifier multiplies the growth modifier. Mechanics use it from
// their planted hook. Non-finite or non-positive factors are ignored.
func (p *Plant) ScaleGrowthModifier(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		logger.Warn(LogMsgInvalidGrowthModifier, LogFieldPlantID, p.id.String(), LogFieldFactor, factor)
		return
	}
	p.growthModifier *= factor
}

// View returns a read-only copy of the observable state
func (p *Plant) View() domain.PlantView {
	return domain.PlantView{
		ID:            p.id.String(),
		DefinitionID:  p.def.ID,
		DisplayName:   p.def.DisplayName,
		Type:          p.def.Type,
		Rarity:        p.def.Rarity,
		Position:      p.pos,
		Stage:         p.stage.String(),
		Visual:        p.def.VisualFor(p.stage),
		Progress:      p.progress,
		NeedsWatering: NeedsWatering(p),
	}
}

// MarshalJSON encodes the plant as its view
func (p *Plant) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.View())
}
