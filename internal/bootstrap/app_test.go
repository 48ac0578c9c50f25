package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PetalGarden_Go/internal/config"
	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/eventlog"
	"github.com/osse101/PetalGarden_Go/internal/handler"
	"github.com/osse101/PetalGarden_Go/internal/save"
	"github.com/osse101/PetalGarden_Go/internal/testing/leaktest"
)

// memoryObjects is an in-memory save.ObjectStore
type memoryObjects struct {
	mu    sync.Mutex
	props map[string][]byte
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{props: make(map[string][]byte)}
}

func (m *memoryObjects) ObjectPropExists(objectKey, propKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *memoryObjects) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.props[objectKey+"/"+propKey], nil
}

func (m *memoryObjects) SaveObjectProp(objectKey, propKey string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[objectKey+"/"+propKey] = data
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            0,
		LogLevel:        "error",
		LogFormat:       "text",
		Environment:     "test",
		ServiceName:     "petalgarden",
		Version:         "test",
		RNGSeed:         7,
		DevMode:         true,
		ShutdownTimeout: 2 * time.Second,
	}
}

func TestBuild_RestoresAndSavesLedger(t *testing.T) {
	SetupLoggerWithWriter(testConfig(), &bytes.Buffer{})
	checker := leaktest.NewGoroutineChecker(t)
	ctx := context.Background()

	objects := newMemoryObjects()
	require.NoError(t, save.NewStore(objects).SaveLedger(ctx, economy.Snapshot{
		Coins:  120,
		Petals: map[string]int64{"basic": 4},
	}, time.Unix(0, 0)))

	app, err := Build(ctx, testConfig(), Options{Objects: objects})
	require.NoError(t, err)

	assert.Equal(t, int64(120), app.Economy.Coins())
	assert.NoError(t, app.CheckHealth(ctx))

	// Spend on the loop so the final save has something new to record
	var spent bool
	require.NoError(t, app.Loop.Do(ctx, func() {
		spent = app.Economy.TrySpendCoins(ctx, 20)
	}))
	require.True(t, spent)

	entries, err := app.EventLog.Recent(ctx, eventlog.EventFilter{EventTypes: []string{string(event.CoinsChanged)}})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, event.CoinsChangedPayloadV1{Previous: 120, Balance: 100}, entries[0].Payload)

	app.Shutdown(ctx)
	assert.Error(t, app.CheckHealth(ctx), "loop is stopped")

	snap, err := save.NewStore(objects).LoadLedger(ctx)
	require.NoError(t, err)
	assert.Equal(t, economy.Snapshot{Coins: 100, Petals: map[string]int64{"basic": 4}}, snap)

	checker.Check(0)
}

func TestBuild_ServesGrid(t *testing.T) {
	SetupLoggerWithWriter(testConfig(), &bytes.Buffer{})
	ctx := context.Background()

	app, err := Build(ctx, testConfig(), Options{Objects: newMemoryObjects()})
	require.NoError(t, err)
	t.Cleanup(func() { app.Shutdown(ctx) })

	rec := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grid", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.GridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, config.DefaultGridWidth, resp.Width)
	assert.Equal(t, config.DefaultGridHeight, resp.Height)
	assert.Len(t, resp.Cells, config.DefaultGridWidth*config.DefaultGridHeight)

	rec = httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuild_BadGameConfig(t *testing.T) {
	SetupLoggerWithWriter(testConfig(), &bytes.Buffer{})
	cfg := testConfig()
	cfg.GameConfigPath = "does-not-exist.yaml"

	_, err := Build(context.Background(), cfg, Options{Objects: newMemoryObjects()})
	assert.Error(t, err)
}

func TestGracefulShutdown_SkipsNilComponents(t *testing.T) {
	SetupLoggerWithWriter(testConfig(), &bytes.Buffer{})
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
