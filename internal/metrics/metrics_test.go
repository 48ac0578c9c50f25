package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/event"
)

// Metrics are process-global, so assertions compare deltas.

func TestEventMetricsCollector(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	sub := NewEventMetricsCollector().Register(bus)
	defer sub.Unsubscribe()

	planted := testutil.ToFloat64(PlantsPlanted.WithLabelValues(string(domain.RarityRare)))
	harvested := testutil.ToFloat64(PlantsHarvested.WithLabelValues("tulip"))
	earned := testutil.ToFloat64(CoinsEarned)
	withered := testutil.ToFloat64(PlantsWithered)
	published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlantWithered)))

	require.NoError(t, bus.Publish(ctx, event.NewPlantEvent(event.PlantPlanted, domain.PlantView{Rarity: domain.RarityRare})))
	require.NoError(t, bus.Publish(ctx, event.NewHarvestedEvent(domain.Pos(0, 0), "id",
		domain.RewardResult{Coins: 12, PetalType: "tulip", Petals: 1})))
	require.NoError(t, bus.Publish(ctx, event.NewPlantEvent(event.PlantWithered, domain.PlantView{})))
	require.NoError(t, bus.Publish(ctx, event.NewCoinsChangedEvent(0, 12)))
	require.NoError(t, bus.Publish(ctx, event.NewPetalsChangedEvent("tulip", 0, 1)))

	assert.Equal(t, planted+1, testutil.ToFloat64(PlantsPlanted.WithLabelValues(string(domain.RarityRare))))
	assert.Equal(t, harvested+1, testutil.ToFloat64(PlantsHarvested.WithLabelValues("tulip")))
	assert.Equal(t, earned+12, testutil.ToFloat64(CoinsEarned))
	assert.Equal(t, withered+1, testutil.ToFloat64(PlantsWithered))
	assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.PlantWithered))))
	assert.Equal(t, float64(12), testutil.ToFloat64(CoinsBalance))
	assert.Equal(t, float64(1), testutil.ToFloat64(PetalsBalance.WithLabelValues("tulip")))
}

func TestEventMetricsCollector_UndecodablePayload(t *testing.T) {
	before := testutil.ToFloat64(PlantsHarvested.WithLabelValues(""))
	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.PlantHarvested,
		Payload: func() {},
	})
	assert.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(PlantsHarvested.WithLabelValues("")))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	before := testutil.ToFloat64(RejectedInteractions.WithLabelValues("plant", "occupied"))

	r.RecordRejection("plant", "occupied")
	r.SetActiveTimers(3, 5)

	assert.Equal(t, before+1, testutil.ToFloat64(RejectedInteractions.WithLabelValues("plant", "occupied")))
	assert.Equal(t, float64(3), testutil.ToFloat64(ActiveTimers.WithLabelValues(TimerKindGrowth)))
	assert.Equal(t, float64(5), testutil.ToFloat64(ActiveTimers.WithLabelValues(TimerKindWither)))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/things/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/things/42?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/things/{id}", "418")))
}
