package plant

// Lifecycle events
const (
	EventWater   = "water"
	EventWither  = "wither"
	EventHarvest = "harvest"
	EventDestroy = "destroy"
)

// StateRemoved is the pseudo-state a plant enters when it leaves its cell
const StateRemoved = "removed"

// Built-in mechanic names
const (
	MechanicQuickSprout  = "quick_sprout"
	MechanicDoublePetals = "double_petals"
)

// Mechanic tuning
const (
	QuickSproutGrowthFactor = 1.5
	DoublePetalsFactor      = 2
)

// Factory cache sizing. One entry per rarity plus the all-definitions list.
const candidateCacheSize = 8

// Log messages
const (
	LogMsgMechanicPanicked      = "Plant mechanic panicked"
	LogMsgUnknownMechanic       = "Unknown plant mechanic ignored"
	LogMsgRarityTierEmpty       = "No plant definitions for drawn rarity, picking from all definitions"
	LogMsgNoDefinitions         = "No plant definitions configured"
	LogMsgInvalidGrowthModifier = "Invalid growth modifier ignored"
)

// Log field keys
const (
	LogFieldMechanic = "mechanic"
	LogFieldHook     = "hook"
	LogFieldPanic    = "panic"
	LogFieldPlantID  = "plant_id"
	LogFieldRarity   = "rarity"
	LogFieldFactor   = "factor"
)

// Hook names used in logs
const (
	hookPlanted      = "on_planted"
	hookWatered      = "on_watered"
	hookStageChanged = "on_stage_changed"
	hookHarvested    = "on_harvested"
	hookModifyReward = "modify_reward"
)
