// Package reward turns harvested plants into coins and petals.
package reward

import (
	"context"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/plant"
)

// Service settles harvest rewards
type Service interface {
	// ProcessHarvest pays out a fully grown plant and returns what was paid.
	// Any other plant yields a zero reward and touches nothing.
	ProcessHarvest(ctx context.Context, p *plant.Plant) domain.RewardResult
}

// Config holds reward tuning
type Config struct {
	PetalsPerHarvest int64
}

type service struct {
	economy economy.Service
	cfg     Config
}

// NewService creates a reward service that settles into econ
func NewService(econ economy.Service, cfg Config) Service {
	if cfg.PetalsPerHarvest <= 0 {
		cfg.PetalsPerHarvest = domain.DefaultPetalsPerHarvest
	}
	return &service{economy: econ, cfg: cfg}
}

func (s *service) ProcessHarvest(ctx context.Context, p *plant.Plant) domain.RewardResult {
	log := logger.FromContext(ctx)
	if p == nil {
		log.Debug(LogMsgNotHarvestable)
		return domain.RewardResult{}
	}
	if p.Removed() || p.Stage() != domain.StageFullyGrown {
		log.Debug(LogMsgNotHarvestable, LogFieldPlantID, p.ID().String(), LogFieldStage, p.Stage().String())
		return domain.RewardResult{}
	}

	def := p.Definition()
	result := domain.RewardResult{
		Coins:     def.SellPrice,
		PetalType: def.Type,
		Petals:    s.cfg.PetalsPerHarvest,
	}
	result = p.Mechanics().ModifyReward(ctx, p, result)

	s.economy.AddCoins(ctx, result.Coins)
	if result.PetalType != "" {
		s.economy.AddPetals(ctx, result.PetalType, result.Petals)
	}

	log.Info(LogMsgRewardSettled,
		LogFieldPlantID, p.ID().String(),
		LogFieldCoins, result.Coins,
		LogFieldPetalType, string(result.PetalType),
		LogFieldPetals, result.Petals)
	return result
}
