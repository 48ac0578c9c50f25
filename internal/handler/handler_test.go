package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/plant"
)

// mockGrid is a testify mock of grid.Service
type mockGrid struct {
	mock.Mock
}

func (m *mockGrid) TryPlantAt(ctx context.Context, pos domain.Position) bool {
	return m.Called(ctx, pos).Bool(0)
}

func (m *mockGrid) TryHarvestAt(ctx context.Context, pos domain.Position) bool {
	return m.Called(ctx, pos).Bool(0)
}

func (m *mockGrid) TryDestroyAt(ctx context.Context, pos domain.Position) bool {
	return m.Called(ctx, pos).Bool(0)
}

func (m *mockGrid) TryWaterAt(ctx context.Context, pos domain.Position) bool {
	return m.Called(ctx, pos).Bool(0)
}

func (m *mockGrid) Plant(ctx context.Context, pos domain.Position) (*plant.Plant, error) {
	args := m.Called(ctx, pos)
	p, _ := args.Get(0).(*plant.Plant)
	return p, args.Error(1)
}

func (m *mockGrid) Harvest(ctx context.Context, pos domain.Position) (domain.RewardResult, error) {
	args := m.Called(ctx, pos)
	return args.Get(0).(domain.RewardResult), args.Error(1)
}

func (m *mockGrid) Destroy(ctx context.Context, pos domain.Position) error {
	return m.Called(ctx, pos).Error(0)
}

func (m *mockGrid) Water(ctx context.Context, pos domain.Position) error {
	return m.Called(ctx, pos).Error(0)
}

func (m *mockGrid) GetCell(pos domain.Position) *grid.Cell {
	c, _ := m.Called(pos).Get(0).(*grid.Cell)
	return c
}

func (m *mockGrid) GetNeighbors(pos domain.Position, radius int) []*grid.Cell {
	cells, _ := m.Called(pos, radius).Get(0).([]*grid.Cell)
	return cells
}

func (m *mockGrid) PlantAt(pos domain.Position) *plant.Plant {
	p, _ := m.Called(pos).Get(0).(*plant.Plant)
	return p
}

func (m *mockGrid) Snapshot() []domain.CellView {
	views, _ := m.Called().Get(0).([]domain.CellView)
	return views
}

func (m *mockGrid) Width() int  { return m.Called().Int(0) }
func (m *mockGrid) Height() int { return m.Called().Int(0) }
func (m *mockGrid) Dispose()    { m.Called() }

// stoppedDispatcher simulates an update loop that has shut down
type stoppedDispatcher struct{}

func (stoppedDispatcher) Do(context.Context, func()) error {
	return errors.New("loop stopped")
}

func testPlant(pos domain.Position) *plant.Plant {
	def := &domain.PlantDefinition{
		ID:          "daisy",
		DisplayName: "Daisy",
		Type:        "basic",
		Rarity:      domain.RarityCommon,
	}
	return plant.New(def, pos, domain.SoilFertile, nil, time.Unix(0, 0))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
