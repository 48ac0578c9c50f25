package metrics

import (
	"context"

	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event on bus
func (e *EventMetricsCollector) Register(bus event.Bus) event.Subscription {
	return bus.SubscribeAll(e.HandleEvent)
}

// HandleEvent processes events and updates metrics. Payloads that fail to
// decode are logged and skipped; metrics never fail a publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlantPlanted:
		var p event.PlantPayloadV1
		if p, err = event.DecodePayload[event.PlantPayloadV1](evt.Payload); err == nil {
			PlantsPlanted.WithLabelValues(string(p.Plant.Rarity)).Inc()
		}

	case event.PlantHarvested:
		var p event.HarvestedPayloadV1
		if p, err = event.DecodePayload[event.HarvestedPayloadV1](evt.Payload); err == nil {
			PlantsHarvested.WithLabelValues(string(p.Reward.PetalType)).Inc()
			CoinsEarned.Add(float64(p.Reward.Coins))
		}

	case event.PlantWithered:
		PlantsWithered.Inc()

	case event.PlantDestroyed:
		PlantsDestroyed.Inc()

	case event.PlantWatered:
		Waterings.Inc()

	case event.CoinsChanged:
		var p event.CoinsChangedPayloadV1
		if p, err = event.DecodePayload[event.CoinsChangedPayloadV1](evt.Payload); err == nil {
			CoinsBalance.Set(float64(p.Balance))
		}

	case event.PetalsChanged:
		var p event.PetalsChangedPayloadV1
		if p, err = event.DecodePayload[event.PetalsChangedPayloadV1](evt.Payload); err == nil {
			PetalsBalance.WithLabelValues(string(p.PetalType)).Set(float64(p.Amount))
		}

	case event.SaveCompleted:
		SavesCompleted.Inc()
	}

	if err != nil {
		log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
