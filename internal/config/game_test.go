package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

const minimalGame = `
plants:
  - id: fern
    displayName: Fern
    witherRisk: 0.5
    sellPrice: 3
    type: fern
    rarity: common
`

func TestDefaultGame_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultGame()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultGridWidth, cfg.Grid.Width)
	assert.NotEmpty(t, cfg.Plants)
	for _, r := range domain.Rarities() {
		assert.Positive(t, cfg.RarityWeights[r], "rarity %s should have a weight", r)
	}
}

func TestLoadGame_EmptyPathUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadGame("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGame(), cfg)
}

func TestLoadGame_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.yaml")
	data := `
grid:
  width: 4
  height: 3
  centerBias: 0
timing:
  interactionCooldown: 500ms
  witherDuration: 20s
rarityWeights:
  common: 1
  rare: 3
soilWeights:
  fertile: 1
  clay: 2
soils:
  - name: clay
    growthMultiplier: 0.9
    plantable: true
petalsPerHarvest: 2
plants:
  - id: fern
    displayName: Fern
    stageGrowthTime: 3s
    witherRisk: 0.5
    sellPrice: 3
    type: fern
    rarity: common
    mechanics: [quick_sprout]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadGame(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Grid.Width)
	assert.Equal(t, 3, cfg.Grid.Height)
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.InteractionCooldown)
	assert.Equal(t, 20*time.Second, cfg.Timing.WitherDuration)
	assert.Equal(t, domain.DefaultStageGrowthTime, cfg.Timing.StageGrowthTime, "missing timing keeps its default")
	assert.Equal(t, map[domain.Rarity]float64{domain.RarityCommon: 1, domain.RarityRare: 3}, cfg.RarityWeights)
	assert.Equal(t, int64(2), cfg.PetalsPerHarvest)

	require.Len(t, cfg.Plants, 1)
	fern := cfg.Plants[0]
	assert.Equal(t, 3*time.Second, fern.StageGrowthTime)
	assert.Equal(t, domain.PlantType("fern"), fern.Type)
	assert.Equal(t, []string{"quick_sprout"}, fern.Mechanics)

	catalogue := cfg.SoilCatalogue()
	require.Len(t, catalogue, 4)
	assert.Equal(t, "clay", catalogue[3].Name)
}

func TestLoadGame_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadGame(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read game config")
}

func TestParseGame_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := ParseGame([]byte(minimalGame), "minimal")
	require.NoError(t, err)
	def := DefaultGame()
	assert.Equal(t, def.Grid.Width, cfg.Grid.Width)
	assert.Equal(t, def.Grid.Height, cfg.Grid.Height)
	assert.Equal(t, def.Grid.NeighborRadius, cfg.Grid.NeighborRadius)
	assert.Equal(t, def.Timing, cfg.Timing)
	assert.Equal(t, def.RarityWeights, cfg.RarityWeights)
	assert.Equal(t, def.SoilWeights, cfg.SoilWeights)
	assert.Zero(t, cfg.Grid.CenterBias, "centre bias is off unless configured")
}

func TestParseGame_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{
			name:    "no plants",
			data:    "grid:\n  width: 3\n  height: 3\n",
			wantMsg: "Plants",
		},
		{
			name: "negative sell price",
			data: `
plants:
  - {id: a, displayName: A, sellPrice: -1, type: a, rarity: common}
`,
			wantMsg: "SellPrice",
		},
		{
			name: "risk above one",
			data: `
plants:
  - {id: a, displayName: A, witherRisk: 1.5, type: a, rarity: common}
`,
			wantMsg: "WitherRisk",
		},
		{
			name: "duplicate ids",
			data: `
plants:
  - {id: a, displayName: A, type: a, rarity: common}
  - {id: a, displayName: B, type: b, rarity: rare}
`,
			wantMsg: `duplicate plant id "a"`,
		},
		{
			name: "unknown rarity",
			data: `
plants:
  - {id: a, displayName: A, type: a, rarity: mythic}
`,
			wantMsg: `unknown rarity "mythic"`,
		},
		{
			name: "unknown soil weight",
			data: `
soilWeights:
  swamp: 1
plants:
  - {id: a, displayName: A, type: a, rarity: common}
`,
			wantMsg: `unknown soil "swamp"`,
		},
		{
			name: "grid too large",
			data: `
grid:
  width: 1000
plants:
  - {id: a, displayName: A, type: a, rarity: common}
`,
			wantMsg: "Width",
		},
		{
			name: "negative rarity weight",
			data: `
rarityWeights:
  common: -1
plants:
  - {id: a, displayName: A, type: a, rarity: common}
`,
			wantMsg: "RarityWeights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGame([]byte(tt.data), tt.name)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseGame_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseGame([]byte("plants: [unclosed"), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse game config broken")
}

func TestParseGame_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	data := minimalGame + "\ntimming:\n  witherDuration: 5s\n"
	_, err := ParseGame([]byte(data), "typo")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "timming")
}

func TestLoadGame_ShippedConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadGame(filepath.Join("..", "..", "configs", "game.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Plants, len(DefaultGame().Plants))
	assert.Equal(t, DefaultGame().Timing, cfg.Timing)
}
