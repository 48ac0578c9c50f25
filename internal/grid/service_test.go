package grid_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/cooldown"
	"github.com/osse101/PetalGarden_Go/internal/distribution"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/plant"
	"github.com/osse101/PetalGarden_Go/internal/reward"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
	"github.com/osse101/PetalGarden_Go/internal/watering"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }
func (f fixedSource) IntN(n int) int   { return int(float64(f) * float64(n)) }

type recorder struct {
	rejections map[string]int
}

func (r *recorder) RecordRejection(command, reason string) {
	r.rejections[command+"/"+reason]++
}

type fixture struct {
	clock    *scheduler.Manual
	bus      *event.MemoryBus
	economy  economy.Service
	watering *watering.Manager
	metrics  *recorder
	grid     grid.Service
	events   []event.Type
}

type options struct {
	width, height int
	soil          string
	cooldown      time.Duration
	defs          []domain.PlantDefinition
}

func daisy() domain.PlantDefinition {
	return domain.PlantDefinition{
		ID:              "daisy",
		DisplayName:     "Daisy",
		StageGrowthTime: 5 * time.Second,
		WitherDuration:  10 * time.Second,
		WitherRisk:      1,
		SellPrice:       20,
		Type:            domain.PlantTypeBasic,
		Rarity:          domain.RarityCommon,
	}
}

func newFixture(t *testing.T, opts options) *fixture {
	t.Helper()
	if opts.width == 0 {
		opts.width, opts.height = 3, 3
	}
	if opts.soil == "" {
		opts.soil = domain.SoilNameRocky
	}
	if opts.defs == nil {
		opts.defs = []domain.PlantDefinition{daisy()}
	}

	ctx := context.Background()
	f := &fixture{
		clock:   scheduler.NewManual(epoch),
		bus:     event.NewMemoryBus(),
		metrics: &recorder{rejections: map[string]int{}},
	}
	f.bus.SubscribeAll(func(_ context.Context, e event.Event) error {
		f.events = append(f.events, e.Type)
		return nil
	})

	src := fixedSource(0)
	f.economy = economy.NewService(f.bus)
	f.watering = watering.NewManager(ctx, f.clock, f.bus, src, watering.DefaultConfig())
	factory := plant.NewFactory(opts.defs,
		distribution.NewRarityTable(map[domain.Rarity]float64{domain.RarityCommon: 1}),
		plant.NewRegistry(), f.clock)
	cd := cooldown.NewMemoryService(cooldown.Config{
		Cooldowns: map[string]time.Duration{domain.ActionGridInteraction: opts.cooldown},
	}, f.clock)

	g, err := grid.NewService(ctx, grid.Config{Width: opts.width, Height: opts.height}, grid.Deps{
		Bus:      f.bus,
		Source:   src,
		Soils:    distribution.NewSoilGenerator(domain.BuiltinSoils(), map[string]float64{opts.soil: 1}, 0),
		Factory:  factory,
		Watering: f.watering,
		Rewards:  reward.NewService(f.economy, reward.Config{PetalsPerHarvest: 1}),
		Cooldown: cd,
		Metrics:  f.metrics,
	})
	require.NoError(t, err)
	f.grid = g
	t.Cleanup(func() {
		g.Dispose()
		f.watering.Dispose()
	})
	return f
}

func (f *fixture) count(typ event.Type) int {
	n := 0
	for _, e := range f.events {
		if e == typ {
			n++
		}
	}
	return n
}

// growToFullyGrown waters the plant at pos through every stage. Rocky soil
// makes each growth phase 5s / 0.75.
func (f *fixture) growToFullyGrown(t *testing.T, pos domain.Position) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.grid.Water(ctx, pos))
		if i < 2 {
			f.clock.Advance(7 * time.Second)
		}
	}
	require.Equal(t, domain.StageFullyGrown, f.grid.PlantAt(pos).Stage())
}

func TestNewService_RejectsInvalidDimensions(t *testing.T) {
	t.Parallel()

	_, err := grid.NewService(context.Background(), grid.Config{Width: 0, Height: 3}, grid.Deps{})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestGrid_CellsCoverEveryPosition(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{width: 4, height: 2})

	assert.Equal(t, 4, f.grid.Width())
	assert.Equal(t, 2, f.grid.Height())

	snap := f.grid.Snapshot()
	require.Len(t, snap, 8)
	assert.Equal(t, domain.Pos(0, 0), snap[0].Position)
	assert.Equal(t, domain.Pos(3, 0), snap[3].Position)
	assert.Equal(t, domain.Pos(0, 1), snap[4].Position)
	for _, c := range snap {
		assert.Equal(t, domain.SoilNameRocky, c.Soil)
		assert.Nil(t, c.Plant)
	}

	assert.Nil(t, f.grid.GetCell(domain.Pos(4, 0)))
	assert.Nil(t, f.grid.GetCell(domain.Pos(-1, 0)))
	require.NotNil(t, f.grid.GetCell(domain.Pos(3, 1)))
	assert.Equal(t, domain.Pos(3, 1), f.grid.GetCell(domain.Pos(3, 1)).Position())
}

func TestGetNeighbors(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{width: 5, height: 5})

	tests := []struct {
		name   string
		pos    domain.Position
		radius int
		want   int
	}{
		{"centre", domain.Pos(2, 2), 1, 8},
		{"corner", domain.Pos(0, 0), 1, 3},
		{"edge", domain.Pos(2, 0), 1, 5},
		{"radius two from centre", domain.Pos(2, 2), 2, 24},
		{"radius below one is one", domain.Pos(2, 2), 0, 8},
		{"radius beyond the grid", domain.Pos(1, 1), 100_000, 24},
		{"max int radius", domain.Pos(0, 0), math.MaxInt, 24},
		{"outside the grid", domain.Pos(-3, 2), 1, 0},
		{"far outside with max radius", domain.Pos(math.MinInt, math.MaxInt), math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := f.grid.GetNeighbors(tt.pos, tt.radius)
			assert.Len(t, cells, tt.want)
			for _, c := range cells {
				assert.NotEqual(t, tt.pos, c.Position())
			}
		})
	}

	cells := f.grid.GetNeighbors(domain.Pos(0, 0), 1)
	require.Len(t, cells, 3)
	assert.Equal(t, domain.Pos(1, 0), cells[0].Position())
	assert.Equal(t, domain.Pos(0, 1), cells[1].Position())
	assert.Equal(t, domain.Pos(1, 1), cells[2].Position())
}

func TestTryPlantAt(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()
	pos := domain.Pos(1, 1)

	require.True(t, f.grid.TryPlantAt(ctx, pos))

	p := f.grid.PlantAt(pos)
	require.NotNil(t, p)
	assert.Equal(t, "daisy", p.Definition().ID)
	assert.Equal(t, domain.StageNew, p.Stage())
	assert.True(t, p.IsWaitingForWater())
	assert.Equal(t, pos, p.Position())
	assert.Equal(t, 1, f.count(event.PlantPlanted))
	assert.Equal(t, 1, f.count(event.GridChanged))
	assert.Equal(t, 1, f.watering.ActiveTimers().Wither)

	cell := f.grid.GetCell(pos)
	assert.False(t, cell.IsEmpty())
	assert.Same(t, p, cell.Occupant())
	require.NotNil(t, cell.View().Plant)
	assert.Equal(t, p.ID().String(), cell.View().Plant.ID)
}

func TestPlant_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("out of bounds", func(t *testing.T) {
		f := newFixture(t, options{})
		_, err := f.grid.Plant(ctx, domain.Pos(3, 0))
		assert.ErrorIs(t, err, domain.ErrInvalidPosition)
		assert.False(t, f.grid.TryPlantAt(ctx, domain.Pos(0, -1)))
		assert.Equal(t, 2, f.metrics.rejections["plant/"+grid.ReasonInvalidPosition])
		assert.Empty(t, f.events)
	})

	t.Run("occupied", func(t *testing.T) {
		f := newFixture(t, options{})
		first, err := f.grid.Plant(ctx, domain.Pos(0, 0))
		require.NoError(t, err)

		_, err = f.grid.Plant(ctx, domain.Pos(0, 0))
		assert.ErrorIs(t, err, domain.ErrCellOccupied)
		assert.Same(t, first, f.grid.PlantAt(domain.Pos(0, 0)))
		assert.Equal(t, 1, f.count(event.PlantPlanted))
		assert.Equal(t, 1, f.metrics.rejections["plant/"+grid.ReasonOccupied])
	})

	t.Run("unsuitable soil", func(t *testing.T) {
		f := newFixture(t, options{soil: domain.SoilNameUnsuitable})
		_, err := f.grid.Plant(ctx, domain.Pos(0, 0))
		assert.ErrorIs(t, err, domain.ErrSoilUnsuitable)
		assert.Nil(t, f.grid.PlantAt(domain.Pos(0, 0)))
	})

	t.Run("no definitions", func(t *testing.T) {
		f := newFixture(t, options{defs: []domain.PlantDefinition{}})
		_, err := f.grid.Plant(ctx, domain.Pos(0, 0))
		assert.ErrorIs(t, err, domain.ErrNoPlantDefinitions)
		assert.Equal(t, 1, f.metrics.rejections["plant/"+grid.ReasonNoDefinitions])
	})
}

func TestInteractionCooldown(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{cooldown: 250 * time.Millisecond})
	ctx := context.Background()

	require.True(t, f.grid.TryPlantAt(ctx, domain.Pos(0, 0)))

	_, err := f.grid.Plant(ctx, domain.Pos(1, 0))
	assert.ErrorIs(t, err, cooldown.ErrOnCooldown{})
	assert.Nil(t, f.grid.PlantAt(domain.Pos(1, 0)))
	assert.Equal(t, 1, f.metrics.rejections["plant/"+grid.ReasonCooldown])

	// Watering is not gated by the cooldown
	assert.True(t, f.grid.TryWaterAt(ctx, domain.Pos(0, 0)))

	f.clock.Advance(250 * time.Millisecond)
	assert.True(t, f.grid.TryPlantAt(ctx, domain.Pos(1, 0)))
}

func TestInteractionCooldown_RejectedCommandDoesNotConsume(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{cooldown: time.Second})
	ctx := context.Background()

	assert.False(t, f.grid.TryHarvestAt(ctx, domain.Pos(0, 0)))
	assert.True(t, f.grid.TryPlantAt(ctx, domain.Pos(0, 0)))
}

func TestWater(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()
	pos := domain.Pos(2, 2)

	assert.ErrorIs(t, f.grid.Water(ctx, pos), domain.ErrCellEmpty)
	assert.ErrorIs(t, f.grid.Water(ctx, domain.Pos(9, 9)), domain.ErrInvalidPosition)

	require.True(t, f.grid.TryPlantAt(ctx, pos))
	require.NoError(t, f.grid.Water(ctx, pos))
	assert.Equal(t, domain.StageSeed, f.grid.PlantAt(pos).Stage())

	assert.ErrorIs(t, f.grid.Water(ctx, pos), domain.ErrNotWaitingForWater)
	assert.Equal(t, 1, f.count(event.PlantWatered))
}

func TestHarvest(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()
	pos := domain.Pos(1, 0)

	require.True(t, f.grid.TryPlantAt(ctx, pos))

	_, err := f.grid.Harvest(ctx, pos)
	assert.ErrorIs(t, err, domain.ErrNotHarvestable)

	f.growToFullyGrown(t, pos)
	p := f.grid.PlantAt(pos)

	result, err := f.grid.Harvest(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, domain.RewardResult{Coins: 20, PetalType: domain.PlantTypeBasic, Petals: 1}, result)
	assert.Equal(t, int64(20), f.economy.Coins())
	assert.Equal(t, int64(1), f.economy.GetPetalsAmount(domain.PlantTypeBasic))

	assert.True(t, f.grid.GetCell(pos).IsEmpty())
	assert.True(t, p.Removed())
	assert.Equal(t, 1, f.count(event.PlantHarvested))
	assert.Equal(t, watering.TimerCounts{}, f.watering.ActiveTimers())

	_, err = f.grid.Harvest(ctx, pos)
	assert.ErrorIs(t, err, domain.ErrCellEmpty)
	assert.Equal(t, int64(20), f.economy.Coins())
}

func TestWitheringScenario(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()
	pos := domain.Pos(0, 2)

	require.True(t, f.grid.TryPlantAt(ctx, pos))
	p := f.grid.PlantAt(pos)

	assert.ErrorIs(t, f.grid.Destroy(ctx, pos), domain.ErrNotWithered)

	changedBefore := f.count(event.GridChanged)
	f.clock.Advance(10 * time.Second)

	assert.Equal(t, domain.StageWithered, p.Stage())
	assert.Equal(t, 1, f.count(event.PlantWithered))
	assert.Equal(t, changedBefore+1, f.count(event.GridChanged))

	_, err := f.grid.Harvest(ctx, pos)
	assert.ErrorIs(t, err, domain.ErrNotHarvestable)
	assert.ErrorIs(t, f.grid.Water(ctx, pos), domain.ErrNotWaitingForWater)

	require.True(t, f.grid.TryDestroyAt(ctx, pos))
	assert.True(t, f.grid.GetCell(pos).IsEmpty())
	assert.True(t, p.Removed())
	assert.Equal(t, 1, f.count(event.PlantDestroyed))
	assert.Equal(t, int64(0), f.economy.Coins())

	assert.True(t, f.grid.TryPlantAt(ctx, pos))
}

func TestNeedsWaterRefreshesSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()
	pos := domain.Pos(1, 1)

	require.True(t, f.grid.TryPlantAt(ctx, pos))
	require.NoError(t, f.grid.Water(ctx, pos))
	assert.False(t, f.grid.Snapshot()[4].Plant.NeedsWatering)

	changedBefore := f.count(event.GridChanged)
	f.clock.Advance(7 * time.Second)

	assert.Equal(t, 1, f.count(event.PlantNeedsWater))
	assert.Equal(t, changedBefore+1, f.count(event.GridChanged))
	assert.True(t, f.grid.Snapshot()[4].Plant.NeedsWatering)
}

func TestDispose(t *testing.T) {
	t.Parallel()
	f := newFixture(t, options{})
	ctx := context.Background()

	require.True(t, f.grid.TryPlantAt(ctx, domain.Pos(0, 0)))
	require.Equal(t, 1, f.watering.ActiveTimers().Wither)

	f.grid.Dispose()
	f.grid.Dispose()

	assert.Equal(t, watering.TimerCounts{}, f.watering.ActiveTimers())
	_, err := f.grid.Plant(ctx, domain.Pos(1, 0))
	assert.ErrorIs(t, err, domain.ErrDisposed)
	assert.ErrorIs(t, f.grid.Water(ctx, domain.Pos(0, 0)), domain.ErrDisposed)
}
