package reward_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/plant"
	"github.com/osse101/PetalGarden_Go/internal/reward"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// MockEconomy records ledger calls
type MockEconomy struct {
	mock.Mock
	economy.Service
}

func (m *MockEconomy) AddCoins(ctx context.Context, amount int64) {
	m.Called(ctx, amount)
}

func (m *MockEconomy) AddPetals(ctx context.Context, petalType domain.PlantType, amount int64) {
	m.Called(ctx, petalType, amount)
}

func basicDefinition() *domain.PlantDefinition {
	return &domain.PlantDefinition{
		ID:          "daisy",
		DisplayName: "Daisy",
		SellPrice:   20,
		Type:        domain.PlantTypeBasic,
		Rarity:      domain.RarityCommon,
	}
}

func grow(t *testing.T, p *plant.Plant) {
	t.Helper()
	ctx := context.Background()
	for p.Stage() != domain.StageFullyGrown {
		p.BeginWaiting()
		_, err := p.Water(ctx, epoch)
		require.NoError(t, err)
	}
}

func TestProcessHarvest_FullyGrown(t *testing.T) {
	ctx := context.Background()
	ledger := economy.NewService(nil)
	svc := reward.NewService(ledger, reward.Config{PetalsPerHarvest: 1})

	p := plant.New(basicDefinition(), domain.Pos(0, 0), domain.SoilFertile, nil, epoch)
	grow(t, p)

	result := svc.ProcessHarvest(ctx, p)
	assert.Equal(t, domain.RewardResult{Coins: 20, PetalType: domain.PlantTypeBasic, Petals: 1}, result)
	assert.Equal(t, int64(20), ledger.Coins())
	assert.Equal(t, int64(1), ledger.GetPetalsAmount(domain.PlantTypeBasic))
}

func TestProcessHarvest_NotHarvestable(t *testing.T) {
	ctx := context.Background()
	econ := &MockEconomy{}
	svc := reward.NewService(econ, reward.Config{})

	assert.True(t, svc.ProcessHarvest(ctx, nil).IsZero())

	young := plant.New(basicDefinition(), domain.Pos(0, 0), domain.SoilFertile, nil, epoch)
	assert.True(t, svc.ProcessHarvest(ctx, young).IsZero())

	withered := plant.New(basicDefinition(), domain.Pos(0, 0), domain.SoilFertile, nil, epoch)
	_, err := withered.Wither(ctx)
	require.NoError(t, err)
	assert.True(t, svc.ProcessHarvest(ctx, withered).IsZero())

	econ.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything)
	econ.AssertNotCalled(t, "AddPetals", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessHarvest_AlreadyHarvested(t *testing.T) {
	ctx := context.Background()
	ledger := economy.NewService(nil)
	svc := reward.NewService(ledger, reward.Config{})

	p := plant.New(basicDefinition(), domain.Pos(0, 0), domain.SoilFertile, nil, epoch)
	grow(t, p)
	require.NoError(t, p.Harvest(ctx))

	assert.True(t, svc.ProcessHarvest(ctx, p).IsZero())
	assert.Zero(t, ledger.Coins())
}

func TestProcessHarvest_AppliesRewardModifiers(t *testing.T) {
	ctx := context.Background()
	econ := &MockEconomy{}
	econ.On("AddCoins", mock.Anything, int64(20)).Once()
	econ.On("AddPetals", mock.Anything, domain.PlantTypeBasic, int64(6)).Once()
	svc := reward.NewService(econ, reward.Config{PetalsPerHarvest: 3})

	mechs := plant.NewRegistry().Resolve(ctx, []string{plant.MechanicDoublePetals})
	p := plant.New(basicDefinition(), domain.Pos(0, 0), domain.SoilFertile, mechs, epoch)
	grow(t, p)

	result := svc.ProcessHarvest(ctx, p)
	assert.Equal(t, int64(6), result.Petals)
	econ.AssertExpectations(t)
}
