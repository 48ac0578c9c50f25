// Package grid owns the cells of the garden and the plant, harvest, destroy
// and water commands issued against them.
package grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PetalGarden_Go/internal/cooldown"
	"github.com/osse101/PetalGarden_Go/internal/distribution"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/plant"
	"github.com/osse101/PetalGarden_Go/internal/reward"
)

// Service is the grid command surface. Every method must run on the update
// loop; handlers get there through a scheduler.Dispatcher.
//
// The Try methods return a plain bool. The error-returning variants carry the
// rejection reason for callers that display it.
type Service interface {
	TryPlantAt(ctx context.Context, pos domain.Position) bool
	TryHarvestAt(ctx context.Context, pos domain.Position) bool
	TryDestroyAt(ctx context.Context, pos domain.Position) bool
	TryWaterAt(ctx context.Context, pos domain.Position) bool

	Plant(ctx context.Context, pos domain.Position) (*plant.Plant, error)
	Harvest(ctx context.Context, pos domain.Position) (domain.RewardResult, error)
	Destroy(ctx context.Context, pos domain.Position) error
	Water(ctx context.Context, pos domain.Position) error

	GetCell(pos domain.Position) *Cell
	GetNeighbors(pos domain.Position, radius int) []*Cell
	PlantAt(pos domain.Position) *plant.Plant
	Snapshot() []domain.CellView
	Width() int
	Height() int

	Dispose()
}

// PlantFactory draws definitions and builds plants
type PlantFactory interface {
	PickDefinition(ctx context.Context, src distribution.Source) (*domain.PlantDefinition, bool)
	New(ctx context.Context, def *domain.PlantDefinition, pos domain.Position, soil domain.Soil) *plant.Plant
}

// Waterer owns the plants' timers
type Waterer interface {
	Track(p *plant.Plant)
	WaterPlant(ctx context.Context, p *plant.Plant) bool
	Release(p *plant.Plant)
}

// RejectionRecorder counts rejected commands
type RejectionRecorder interface {
	RecordRejection(command, reason string)
}

// Config holds the grid layout
type Config struct {
	Width          int
	Height         int
	NeighborRadius int
}

// Deps are the collaborators of the grid service
type Deps struct {
	Bus      event.Bus
	Source   distribution.Source
	Soils    *distribution.SoilGenerator
	Factory  PlantFactory
	Watering Waterer
	Rewards  reward.Service
	Cooldown cooldown.Service
	Metrics  RejectionRecorder
}

type service struct {
	cfg   Config
	deps  Deps
	cells [][]*Cell

	subs     event.Subscriptions
	disposed bool
}

// NewService builds the grid and assigns every cell its soil
func NewService(ctx context.Context, cfg Config, deps Deps) (Service, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		logger.FromContext(ctx).Error(LogMsgInvalidDimensions, LogFieldWidth, cfg.Width, LogFieldHeight, cfg.Height)
		return nil, fmt.Errorf(ErrFmtInvalidDimensions, cfg.Width, cfg.Height, domain.ErrInvalidConfiguration)
	}
	if cfg.NeighborRadius < 1 {
		cfg.NeighborRadius = domain.DefaultNeighborRadius
	}

	soils := deps.Soils.Generate(cfg.Width, cfg.Height, deps.Source)
	cells := make([][]*Cell, cfg.Height)
	for y := range cells {
		cells[y] = make([]*Cell, cfg.Width)
		for x := range cells[y] {
			cells[y][x] = &Cell{pos: domain.Pos(x, y), soil: soils[y][x]}
		}
	}

	s := &service{cfg: cfg, deps: deps, cells: cells}
	if deps.Bus != nil {
		// Timer-driven plant changes alter the snapshot too.
		refresh := func(ctx context.Context, _ event.Event) error {
			if !s.disposed {
				s.publishGridChanged(ctx)
			}
			return nil
		}
		s.subs.Add(deps.Bus.Subscribe(event.PlantWithered, refresh))
		s.subs.Add(deps.Bus.Subscribe(event.PlantNeedsWater, refresh))
	}

	logger.FromContext(ctx).Info(LogMsgGridCreated, LogFieldWidth, cfg.Width, LogFieldHeight, cfg.Height)
	return s, nil
}

func (s *service) Width() int  { return s.cfg.Width }
func (s *service) Height() int { return s.cfg.Height }

// GetCell returns nil for positions outside the grid
func (s *service) GetCell(pos domain.Position) *Cell {
	if pos.X < 0 || pos.Y < 0 || pos.X >= s.cfg.Width || pos.Y >= s.cfg.Height {
		return nil
	}
	return s.cells[pos.Y][pos.X]
}

// GetNeighbors returns the in-bounds cells of the square around pos, centre
// excluded, in row-major order. A radius below 1 is treated as 1; one larger
// than the grid is treated as the grid size.
func (s *service) GetNeighbors(pos domain.Position, radius int) []*Cell {
	radius = max(1, min(radius, max(s.cfg.Width, s.cfg.Height)))

	// Only the part of the square that overlaps the grid is visited.
	x0, x1 := max(0, pos.X-radius), min(s.cfg.Width-1, pos.X+radius)
	y0, y1 := max(0, pos.Y-radius), min(s.cfg.Height-1, pos.Y+radius)

	var out []*Cell
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x == pos.X && y == pos.Y {
				continue
			}
			out = append(out, s.cells[y][x])
		}
	}
	return out
}

func (s *service) PlantAt(pos domain.Position) *plant.Plant {
	if c := s.GetCell(pos); c != nil {
		return c.occupant
	}
	return nil
}

// Snapshot returns a copy of every cell in row-major order
func (s *service) Snapshot() []domain.CellView {
	out := make([]domain.CellView, 0, s.cfg.Width*s.cfg.Height)
	for _, row := range s.cells {
		for _, c := range row {
			out = append(out, c.View())
		}
	}
	return out
}

func (s *service) TryPlantAt(ctx context.Context, pos domain.Position) bool {
	_, err := s.Plant(ctx, pos)
	return err == nil
}

func (s *service) TryHarvestAt(ctx context.Context, pos domain.Position) bool {
	_, err := s.Harvest(ctx, pos)
	return err == nil
}

func (s *service) TryDestroyAt(ctx context.Context, pos domain.Position) bool {
	return s.Destroy(ctx, pos) == nil
}

func (s *service) TryWaterAt(ctx context.Context, pos domain.Position) bool {
	return s.Water(ctx, pos) == nil
}

// Plant sows a randomly drawn definition into the empty cell at pos
func (s *service) Plant(ctx context.Context, pos domain.Position) (*plant.Plant, error) {
	var planted *plant.Plant
	err := s.interact(ctx, domain.CommandPlant, pos, func(cell *Cell) error {
		if !cell.IsEmpty() {
			return domain.ErrCellOccupied
		}
		if !cell.soil.Plantable {
			return domain.ErrSoilUnsuitable
		}
		def, ok := s.deps.Factory.PickDefinition(ctx, s.deps.Source)
		if !ok {
			return domain.ErrNoPlantDefinitions
		}

		p := s.deps.Factory.New(ctx, def, pos, cell.soil)
		cell.occupant = p
		p.Mechanics().Planted(ctx, p)
		s.deps.Watering.Track(p)
		planted = p

		logger.FromContext(ctx).Info(LogMsgPlanted,
			LogFieldPosition, pos.String(),
			LogFieldPlantID, p.ID().String(),
			LogFieldDefinition, def.ID,
			LogFieldRarity, string(def.Rarity))
		s.publish(ctx, event.NewPlantEvent(event.PlantPlanted, p.View()))
		return nil
	})
	return planted, err
}

// Harvest settles the reward of the fully grown plant at pos and clears the cell
func (s *service) Harvest(ctx context.Context, pos domain.Position) (domain.RewardResult, error) {
	var result domain.RewardResult
	err := s.interact(ctx, domain.CommandHarvest, pos, func(cell *Cell) error {
		p := cell.occupant
		if p == nil {
			return domain.ErrCellEmpty
		}
		if p.Stage() != domain.StageFullyGrown {
			return domain.ErrNotHarvestable
		}

		result = s.deps.Rewards.ProcessHarvest(ctx, p)
		s.detach(ctx, cell, p.Harvest)
		p.Mechanics().Harvested(ctx, p, result)

		logger.FromContext(ctx).Info(LogMsgHarvested, LogFieldPosition, pos.String(), LogFieldPlantID, p.ID().String())
		s.publish(ctx, event.NewHarvestedEvent(pos, p.ID().String(), result))
		return nil
	})
	return result, err
}

// Destroy clears the withered plant at pos without a reward
func (s *service) Destroy(ctx context.Context, pos domain.Position) error {
	return s.interact(ctx, domain.CommandDestroy, pos, func(cell *Cell) error {
		p := cell.occupant
		if p == nil {
			return domain.ErrCellEmpty
		}
		if p.Stage() != domain.StageWithered {
			return domain.ErrNotWithered
		}

		s.detach(ctx, cell, p.Destroy)

		logger.FromContext(ctx).Info(LogMsgDestroyed, LogFieldPosition, pos.String(), LogFieldPlantID, p.ID().String())
		s.publish(ctx, event.NewDestroyedEvent(pos, p.ID().String()))
		return nil
	})
}

// Water waters the plant at pos. Watering is not subject to the interaction
// cooldown.
func (s *service) Water(ctx context.Context, pos domain.Position) error {
	if s.disposed {
		return s.reject(ctx, domain.CommandWater, pos, domain.ErrDisposed)
	}
	cell := s.GetCell(pos)
	if cell == nil {
		return s.reject(ctx, domain.CommandWater, pos, fmt.Errorf(ErrFmtPosition, domain.ErrInvalidPosition, pos))
	}
	if cell.occupant == nil {
		return s.reject(ctx, domain.CommandWater, pos, domain.ErrCellEmpty)
	}
	if !s.deps.Watering.WaterPlant(ctx, cell.occupant) {
		return s.reject(ctx, domain.CommandWater, pos, domain.ErrNotWaitingForWater)
	}
	s.publishGridChanged(ctx)
	return nil
}

// interact runs a cooldown-gated command. fn only runs when the cooldown has
// elapsed, and a rejection inside fn does not consume the cooldown.
func (s *service) interact(ctx context.Context, command string, pos domain.Position, fn func(*Cell) error) error {
	if s.disposed {
		return s.reject(ctx, command, pos, domain.ErrDisposed)
	}
	cell := s.GetCell(pos)
	if cell == nil {
		return s.reject(ctx, command, pos, fmt.Errorf(ErrFmtPosition, domain.ErrInvalidPosition, pos))
	}

	err := s.deps.Cooldown.EnforceCooldown(ctx, domain.CooldownKeyGrid, domain.ActionGridInteraction, func() error {
		return fn(cell)
	})
	if err != nil {
		return s.reject(ctx, command, pos, err)
	}
	s.publishGridChanged(ctx)
	return nil
}

// detach clears the cell, drops the plant's timers and ends its lifecycle
func (s *service) detach(ctx context.Context, cell *Cell, remove func(context.Context) error) {
	p := cell.occupant
	cell.occupant = nil
	s.deps.Watering.Release(p)
	if err := remove(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgRemoveFailed, LogFieldPlantID, p.ID().String(), LogFieldError, err)
	}
}

func (s *service) reject(ctx context.Context, command string, pos domain.Position, err error) error {
	logger.FromContext(ctx).Debug(LogMsgCommandRejected,
		LogFieldCommand, command,
		LogFieldPosition, pos.String(),
		LogFieldReason, err.Error())
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordRejection(command, rejectionReason(err))
	}
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, cooldown.ErrOnCooldown{}):
		return ReasonCooldown
	case errors.Is(err, domain.ErrInvalidPosition):
		return ReasonInvalidPosition
	case errors.Is(err, domain.ErrCellOccupied):
		return ReasonOccupied
	case errors.Is(err, domain.ErrCellEmpty):
		return ReasonEmpty
	case errors.Is(err, domain.ErrSoilUnsuitable):
		return ReasonSoil
	case errors.Is(err, domain.ErrNotHarvestable):
		return ReasonNotHarvestable
	case errors.Is(err, domain.ErrNotWithered):
		return ReasonNotWithered
	case errors.Is(err, domain.ErrNotWaitingForWater):
		return ReasonNotWaiting
	case errors.Is(err, domain.ErrNoPlantDefinitions):
		return ReasonNoDefinitions
	case errors.Is(err, domain.ErrDisposed):
		return ReasonDisposed
	default:
		return ReasonOther
	}
}

func (s *service) publishGridChanged(ctx context.Context) {
	s.publish(ctx, event.NewGridChangedEvent(s.cfg.Width, s.cfg.Height, s.Snapshot()))
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.deps.Bus == nil {
		return
	}
	if err := s.deps.Bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, LogFieldEventType, string(e.Type), LogFieldError, err)
	}
}

// Dispose releases every plant's timers and stops listening for plant
// events. Commands fail afterwards. Calling it again does nothing.
func (s *service) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.subs.UnsubscribeAll()

	released := 0
	for _, row := range s.cells {
		for _, c := range row {
			if c.occupant != nil {
				s.deps.Watering.Release(c.occupant)
				released++
			}
		}
	}
	logger.FromContext(context.Background()).Info(LogMsgGridDisposed, LogFieldReleased, released)
}
