package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/validation"
)

var schemas = validation.NewSchemaValidator()

// GameConfig is the tunable game data loaded from YAML
type GameConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`

	// RarityWeights are relative; they need not sum to one
	RarityWeights map[domain.Rarity]float64 `yaml:"rarityWeights" validate:"dive,gte=0"`

	// SoilWeights are relative, keyed by soil name
	SoilWeights map[string]float64 `yaml:"soilWeights" validate:"dive,gte=0"`

	// Soils extends or overrides the built-in soil catalogue
	Soils []domain.Soil `yaml:"soils" validate:"dive"`

	PetalsPerHarvest int64                    `yaml:"petalsPerHarvest" validate:"gte=0"`
	Plants           []domain.PlantDefinition `yaml:"plants" validate:"required,min=1,dive"`
}

// GridConfig is the grid layout
type GridConfig struct {
	Width          int     `yaml:"width" validate:"gte=1,lte=256"`
	Height         int     `yaml:"height" validate:"gte=1,lte=256"`
	CenterBias     float64 `yaml:"centerBias" validate:"gte=0"`
	NeighborRadius int     `yaml:"neighborRadius" validate:"gte=0"`
}

// TimingConfig holds game-wide durations. Plant definitions may override
// growth and wither times.
type TimingConfig struct {
	InteractionCooldown time.Duration `yaml:"interactionCooldown" validate:"gte=0"`
	StageGrowthTime     time.Duration `yaml:"stageGrowthTime" validate:"gte=0"`
	WitherDuration      time.Duration `yaml:"witherDuration" validate:"gte=0"`
	AutosaveInterval    time.Duration `yaml:"autosaveInterval" validate:"gte=0"`
}

// DefaultGame returns the built-in game configuration
func DefaultGame() *GameConfig {
	return &GameConfig{
		Grid: GridConfig{
			Width:          DefaultGridWidth,
			Height:         DefaultGridHeight,
			CenterBias:     DefaultCenterBias,
			NeighborRadius: domain.DefaultNeighborRadius,
		},
		Timing: TimingConfig{
			InteractionCooldown: domain.DefaultInteractionCooldown,
			StageGrowthTime:     domain.DefaultStageGrowthTime,
			WitherDuration:      domain.DefaultWitherDuration,
			AutosaveInterval:    DefaultAutosaveInterval,
		},
		RarityWeights:    defaultRarityWeights(),
		SoilWeights:      defaultSoilWeights(),
		Soils:            domain.BuiltinSoils(),
		PetalsPerHarvest: domain.DefaultPetalsPerHarvest,
		Plants:           defaultPlants(),
	}
}

func defaultRarityWeights() map[domain.Rarity]float64 {
	return map[domain.Rarity]float64{
		domain.RarityCommon:    60,
		domain.RarityUncommon:  25,
		domain.RarityRare:      10,
		domain.RarityEpic:      4,
		domain.RarityLegendary: 1,
	}
}

func defaultSoilWeights() map[string]float64 {
	return map[string]float64{
		domain.SoilNameFertile:    0.5,
		domain.SoilNameRocky:      0.35,
		domain.SoilNameUnsuitable: 0.15,
	}
}

func defaultPlants() []domain.PlantDefinition {
	visuals := []string{"soil", "seed", "sprout", "bloom", "wilted"}
	return []domain.PlantDefinition{
		{ID: "daisy", DisplayName: "Daisy", StageVisuals: visuals, WitherRisk: 1, SellPrice: 5,
			Type: domain.PlantTypeBasic, Rarity: domain.RarityCommon},
		{ID: "tulip", DisplayName: "Tulip", StageVisuals: visuals, WitherRisk: 0.8, SellPrice: 12,
			Type: "tulip", Rarity: domain.RarityUncommon},
		{ID: "sunflower", DisplayName: "Sunflower", StageVisuals: visuals, StageGrowthTime: 4 * time.Second,
			WitherRisk: 0.6, SellPrice: 25, Type: "sunflower", Rarity: domain.RarityRare,
			Mechanics: []string{"quick_sprout"}},
		{ID: "orchid", DisplayName: "Orchid", StageVisuals: visuals, StageGrowthTime: 8 * time.Second,
			WitherDuration: 15 * time.Second, WitherRisk: 0.5, SellPrice: 60, Type: "orchid", Rarity: domain.RarityEpic},
		{ID: "moonpetal", DisplayName: "Moonpetal", StageVisuals: visuals, StageGrowthTime: 10 * time.Second,
			WitherDuration: 20 * time.Second, WitherRisk: 0.25, SellPrice: 150, Type: "moonpetal",
			Rarity: domain.RarityLegendary, Mechanics: []string{"double_petals"}},
	}
}

// LoadGame reads a game config from path. An empty path yields DefaultGame.
// Sections the file leaves out keep their defaults, except plants, which the
// file must list.
func LoadGame(path string) (*GameConfig, error) {
	if path == "" {
		return DefaultGame(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtReadGameConfig, path, err)
	}
	return ParseGame(data, path)
}

// ParseGame decodes and validates YAML game config data. name is only used
// in error messages.
func ParseGame(data []byte, name string) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrFmtParseGameConfig, name, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Struct decoding ignores unknown keys; the schema does not.
	if err := schemas.ValidateYAML(data, validation.SchemaGame); err != nil {
		return nil, fmt.Errorf(ErrFmtValidation, domain.ErrInvalidConfiguration, err.Error())
	}
	return &cfg, nil
}

func (c *GameConfig) applyDefaults() {
	def := DefaultGame()
	if c.Grid.Width == 0 {
		c.Grid.Width = def.Grid.Width
	}
	if c.Grid.Height == 0 {
		c.Grid.Height = def.Grid.Height
	}
	if c.Grid.NeighborRadius == 0 {
		c.Grid.NeighborRadius = def.Grid.NeighborRadius
	}
	if c.Timing.InteractionCooldown == 0 {
		c.Timing.InteractionCooldown = def.Timing.InteractionCooldown
	}
	if c.Timing.StageGrowthTime == 0 {
		c.Timing.StageGrowthTime = def.Timing.StageGrowthTime
	}
	if c.Timing.WitherDuration == 0 {
		c.Timing.WitherDuration = def.Timing.WitherDuration
	}
	if c.Timing.AutosaveInterval == 0 {
		c.Timing.AutosaveInterval = def.Timing.AutosaveInterval
	}
	if c.RarityWeights == nil {
		c.RarityWeights = def.RarityWeights
	}
	if c.SoilWeights == nil {
		c.SoilWeights = def.SoilWeights
	}
	if c.PetalsPerHarvest == 0 {
		c.PetalsPerHarvest = def.PetalsPerHarvest
	}
}

// SoilCatalogue returns the built-in soils with the configured soils
// overriding or extending them by name
func (c *GameConfig) SoilCatalogue() []domain.Soil {
	out := domain.BuiltinSoils()
	index := make(map[string]int, len(out))
	for i, s := range out {
		index[s.Name] = i
	}
	for _, s := range c.Soils {
		if i, ok := index[s.Name]; ok {
			out[i] = s
			continue
		}
		index[s.Name] = len(out)
		out = append(out, s)
	}
	return out
}
