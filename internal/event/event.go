package event

import (
	"github.com/osse101/PetalGarden_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]any

// Event represents a domain event
type Event struct {
	Version  string   `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type     `json:"type"`
	Payload  any      `json:"payload"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) any {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Domain event types
const (
	GridChanged      Type = domain.EventTypeGridChanged
	PlantPlanted     Type = domain.EventTypePlantPlanted
	PlantHarvested   Type = domain.EventTypePlantHarvested
	PlantDestroyed   Type = domain.EventTypePlantDestroyed
	PlantWatered     Type = domain.EventTypePlantWatered
	PlantWithered    Type = domain.EventTypePlantWithered
	PlantStageChange Type = domain.EventTypePlantStageChanged
	PlantNeedsWater  Type = domain.EventTypePlantNeedsWater
	CoinsChanged     Type = domain.EventTypeCoinsChanged
	PetalsChanged    Type = domain.EventTypePetalsChanged
	SaveCompleted    Type = domain.EventTypeSaveCompleted
)

// AllTypes lists every domain event type
func AllTypes() []Type {
	return []Type{
		GridChanged, PlantPlanted, PlantHarvested, PlantDestroyed, PlantWatered,
		PlantWithered, PlantStageChange, PlantNeedsWater, CoinsChanged,
		PetalsChanged, SaveCompleted,
	}
}

// Typed event payloads

// GridChangedPayloadV1 carries a full cell snapshot
type GridChangedPayloadV1 struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Cells  []domain.CellView `json:"cells"`
}

// PlantPayloadV1 carries the affected plant. Used by planted, watered,
// withered and needs-water events.
type PlantPayloadV1 struct {
	Plant domain.PlantView `json:"plant"`
}

// StageChangedPayloadV1 is the typed payload for stage change events
type StageChangedPayloadV1 struct {
	Plant     domain.PlantView `json:"plant"`
	FromStage string           `json:"from_stage"`
	ToStage   string           `json:"to_stage"`
}

// HarvestedPayloadV1 is the typed payload for harvest events
type HarvestedPayloadV1 struct {
	Position domain.Position     `json:"position"`
	PlantID  string              `json:"plant_id"`
	Reward   domain.RewardResult `json:"reward"`
}

// DestroyedPayloadV1 is the typed payload for destroy events
type DestroyedPayloadV1 struct {
	Position domain.Position `json:"position"`
	PlantID  string          `json:"plant_id"`
}

// CoinsChangedPayloadV1 is the typed payload for coin balance changes
type CoinsChangedPayloadV1 struct {
	Previous int64 `json:"previous"`
	Balance  int64 `json:"balance"`
}

// PetalsChangedPayloadV1 is the typed payload for petal count changes
type PetalsChangedPayloadV1 struct {
	PetalType domain.PlantType `json:"petal_type"`
	Previous  int64            `json:"previous"`
	Amount    int64            `json:"amount"`
}

// SaveCompletedPayloadV1 is the typed payload for save events
type SaveCompletedPayloadV1 struct {
	Coins      int64 `json:"coins"`
	PetalTypes int   `json:"petal_types"`
	Timestamp  int64 `json:"timestamp"`
}

// Type-safe event constructors

// NewGridChangedEvent creates a grid changed event
func NewGridChangedEvent(width, height int, cells []domain.CellView) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GridChanged,
		Payload: GridChangedPayloadV1{Width: width, Height: height, Cells: cells},
	}
}

// NewPlantEvent creates one of the plant-carrying events
func NewPlantEvent(eventType Type, plant domain.PlantView) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  PlantPayloadV1{Plant: plant},
		Metadata: Metadata{"plant_id": plant.ID, "rarity": string(plant.Rarity)},
	}
}

// NewStageChangedEvent creates a stage change event
func NewStageChangedEvent(plant domain.PlantView, from, to domain.Stage) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlantStageChange,
		Payload: StageChangedPayloadV1{
			Plant:     plant,
			FromStage: from.String(),
			ToStage:   to.String(),
		},
		Metadata: Metadata{"plant_id": plant.ID},
	}
}

// NewHarvestedEvent creates a plant harvested event
func NewHarvestedEvent(pos domain.Position, plantID string, reward domain.RewardResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlantHarvested,
		Payload: HarvestedPayloadV1{
			Position: pos,
			PlantID:  plantID,
			Reward:   reward,
		},
		Metadata: Metadata{"plant_id": plantID},
	}
}

// NewDestroyedEvent creates a plant destroyed event
func NewDestroyedEvent(pos domain.Position, plantID string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     PlantDestroyed,
		Payload:  DestroyedPayloadV1{Position: pos, PlantID: plantID},
		Metadata: Metadata{"plant_id": plantID},
	}
}

// NewCoinsChangedEvent creates a coins changed event
func NewCoinsChangedEvent(previous, balance int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CoinsChanged,
		Payload: CoinsChangedPayloadV1{Previous: previous, Balance: balance},
	}
}

// NewPetalsChangedEvent creates a petals changed event
func NewPetalsChangedEvent(petalType domain.PlantType, previous, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PetalsChanged,
		Payload: PetalsChangedPayloadV1{
			PetalType: petalType,
			Previous:  previous,
			Amount:    amount,
		},
	}
}

// NewSaveCompletedEvent creates a save completed event
func NewSaveCompletedEvent(coins int64, petalTypes int, timestamp int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SaveCompleted,
		Payload: SaveCompletedPayloadV1{
			Coins:      coins,
			PetalTypes: petalTypes,
			Timestamp:  timestamp,
		},
	}
}
