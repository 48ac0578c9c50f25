package domain

import "time"

// Stage is a plant's discrete lifecycle state
type Stage int

const (
	StageNew Stage = iota
	StageSeed
	StageGrowing
	StageFullyGrown
	StageWithered
)

var stageNames = map[Stage]string{
	StageNew:        "new",
	StageSeed:       "seed",
	StageGrowing:    "growing",
	StageFullyGrown: "fully_grown",
	StageWithered:   "withered",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStage is the inverse of String
func ParseStage(name string) (Stage, bool) {
	for stage, n := range stageNames {
		if n == name {
			return stage, true
		}
	}
	return StageNew, false
}

// IsTerminal reports whether no further stage advance is possible
func (s Stage) IsTerminal() bool {
	return s == StageFullyGrown || s == StageWithered
}

// Checkpoint is the progress value a plant holds once it enters the stage
func (s Stage) Checkpoint() float64 {
	switch s {
	case StageGrowing:
		return 0.5
	case StageFullyGrown:
		return 1.0
	default:
		return 0
	}
}

// PlantDefinition is the immutable description of a plant species.
// Zero durations and risk fall back to the game-wide defaults.
type PlantDefinition struct {
	ID              string        `json:"id" yaml:"id" validate:"required"`
	DisplayName     string        `json:"display_name" yaml:"displayName" validate:"required"`
	StageVisuals    []string      `json:"stage_visuals,omitempty" yaml:"stageVisuals"`
	StageGrowthTime time.Duration `json:"stage_growth_time" yaml:"stageGrowthTime" validate:"gte=0"`
	WitherDuration  time.Duration `json:"wither_duration" yaml:"witherDuration" validate:"gte=0"`
	WitherRisk      float64       `json:"wither_risk" yaml:"witherRisk" validate:"gte=0,lte=1"`
	SellPrice       int64         `json:"sell_price" yaml:"sellPrice" validate:"gte=0"`
	Type            PlantType     `json:"type" yaml:"type" validate:"required"`
	Rarity          Rarity        `json:"rarity" yaml:"rarity" validate:"required"`
	Mechanics       []string      `json:"mechanics,omitempty" yaml:"mechanics"`
}

// VisualFor returns the visual key for a stage, or "" when none is configured
func (d *PlantDefinition) VisualFor(s Stage) string {
	if int(s) < len(d.StageVisuals) {
		return d.StageVisuals[s]
	}
	return ""
}
