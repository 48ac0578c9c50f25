package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(PlantWatered, func(ctx context.Context, e Event) error {
		assert.Equal(t, PlantWatered, e.Type)
		payload, err := DecodePayload[PlantPayloadV1](e.Payload)
		require.NoError(t, err)
		assert.Equal(t, "p1", payload.Plant.ID)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewPlantEvent(PlantWatered, domain.PlantView{ID: "p1"}))
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_SubscriptionOrder(t *testing.T) {
	bus := NewMemoryBus()
	var order []string

	bus.SubscribeAll(func(ctx context.Context, e Event) error {
		order = append(order, "all")
		return nil
	})
	bus.Subscribe(CoinsChanged, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(CoinsChanged, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewCoinsChangedEvent(0, 5)))
	assert.Equal(t, []string{"first", "second", "all"}, order)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody.listens"}))
}

func TestMemoryBus_ErrorsAreAggregated(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0

	bus.Subscribe(GridChanged, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("first failure")
	})
	bus.Subscribe(GridChanged, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})
	bus.Subscribe(GridChanged, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("second failure")
	})

	err := bus.Publish(context.Background(), NewGridChangedEvent(1, 1, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 2 errors")
	assert.Equal(t, 3, calls)
}

func TestMemoryBus_PanicIsRecovered(t *testing.T) {
	bus := NewMemoryBus()
	after := false

	bus.Subscribe(PlantWithered, func(ctx context.Context, e Event) error {
		panic("bad handler")
	})
	bus.Subscribe(PlantWithered, func(ctx context.Context, e Event) error {
		after = true
		return nil
	})

	err := bus.Publish(context.Background(), NewPlantEvent(PlantWithered, domain.PlantView{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad handler")
	assert.True(t, after)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	sub := bus.Subscribe(PlantPlanted, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})
	all := bus.SubscribeAll(func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: PlantPlanted}))
	assert.Equal(t, 2, calls)

	sub.Unsubscribe()
	sub.Unsubscribe()
	all.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), Event{Type: PlantPlanted}))
	assert.Equal(t, 2, calls)
}

func TestMemoryBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := NewMemoryBus()
	secondCalled := false
	var second Subscription

	bus.Subscribe(PlantDestroyed, func(ctx context.Context, e Event) error {
		second.Unsubscribe()
		return nil
	})
	second = bus.Subscribe(PlantDestroyed, func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewDestroyedEvent(domain.Pos(0, 0), "x")))
	assert.False(t, secondCalled)
}

func TestSubscriptions_UnsubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	var subs Subscriptions
	for _, typ := range []Type{CoinsChanged, PetalsChanged} {
		subs.Add(bus.Subscribe(typ, func(ctx context.Context, e Event) error {
			calls++
			return nil
		}))
	}

	subs.UnsubscribeAll()
	require.NoError(t, bus.Publish(context.Background(), NewCoinsChangedEvent(1, 2)))
	require.NoError(t, bus.Publish(context.Background(), NewPetalsChangedEvent(domain.PlantTypeBasic, 0, 1)))
	assert.Zero(t, calls)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]any{"previous": 3, "balance": 7}
	payload, err := DecodePayload[CoinsChangedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.Balance)
	assert.Equal(t, int64(3), payload.Previous)
}

func TestEvent_GetMetadataValue(t *testing.T) {
	e := NewHarvestedEvent(domain.Pos(1, 2), "abc", domain.RewardResult{Coins: 5})
	assert.Equal(t, "abc", e.GetMetadataValue("plant_id"))
	assert.Nil(t, e.GetMetadataValue("missing"))
	assert.Nil(t, Event{}.GetMetadataValue("plant_id"))
}
