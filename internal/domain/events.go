package domain

// Event type constants used for event bus subscriptions, SSE streaming and
// metrics. Event types follow the pattern: <entity>.<action>
const (
	// EventTypeGridChanged is published with a fresh cell snapshot after any successful grid command
	EventTypeGridChanged = "grid.changed"

	// EventTypePlantPlanted is published when a seed is planted into a cell
	EventTypePlantPlanted = "plant.planted"

	// EventTypePlantHarvested is published when a fully grown plant is harvested
	EventTypePlantHarvested = "plant.harvested"

	// EventTypePlantDestroyed is published when a withered plant is cleared
	EventTypePlantDestroyed = "plant.destroyed"

	// EventTypePlantWatered is published once per successful watering
	EventTypePlantWatered = "plant.watered"

	// EventTypePlantWithered is published once when a neglected plant withers
	EventTypePlantWithered = "plant.withered"

	// EventTypePlantStageChanged is published whenever a plant enters a new stage
	EventTypePlantStageChanged = "plant.stage_changed"

	// EventTypePlantNeedsWater is published when a growth timer elapses and the plant starts waiting
	EventTypePlantNeedsWater = "plant.needs_water"

	// EventTypeCoinsChanged is published when the coin balance actually changes
	EventTypeCoinsChanged = "economy.coins_changed"

	// EventTypePetalsChanged is published when a petal count actually changes
	EventTypePetalsChanged = "economy.petals_changed"

	// EventTypeSaveCompleted is published after the ledger has been written
	EventTypeSaveCompleted = "save.completed"
)

// CellView is a read-only copy of a cell, safe to hand to presentation code
type CellView struct {
	Position Position   `json:"position"`
	Soil     string     `json:"soil"`
	Plant    *PlantView `json:"plant,omitempty"`
}

// PlantView is a read-only copy of a plant's observable state
type PlantView struct {
	ID            string    `json:"id"`
	DefinitionID  string    `json:"definition_id"`
	DisplayName   string    `json:"display_name"`
	Type          PlantType `json:"type"`
	Rarity        Rarity    `json:"rarity"`
	Position      Position  `json:"position"`
	Stage         string    `json:"stage"`
	Visual        string    `json:"visual,omitempty"`
	Progress      float64   `json:"progress"`
	NeedsWatering bool      `json:"needs_watering"`
}
