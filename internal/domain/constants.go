package domain

import "time"

// Default timings used when neither the definition nor the game config
// supplies a value.
const (
	DefaultStageGrowthTime     = 5 * time.Second
	DefaultWitherDuration      = 10 * time.Second
	DefaultInteractionCooldown = 250 * time.Millisecond
	DefaultPetalsPerHarvest    = 1
	DefaultNeighborRadius      = 1
)

// Timer duration bounds. Durations outside this range never reach a scheduler.
const (
	MinTimerDuration = 10 * time.Millisecond
	MaxTimerDuration = 24 * time.Hour
)

// Cooldown identifiers for grid interactions
const (
	CooldownKeyGrid       = "grid"
	ActionGridInteraction = "interact"
)

// Grid command names, used in logs, metrics labels and HTTP responses
const (
	CommandPlant   = "plant"
	CommandHarvest = "harvest"
	CommandDestroy = "destroy"
	CommandWater   = "water"
)
