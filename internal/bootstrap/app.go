// Package bootstrap wires the garden together and tears it down again.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/config"
	"github.com/osse101/PetalGarden_Go/internal/cooldown"
	"github.com/osse101/PetalGarden_Go/internal/distribution"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/eventlog"
	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/handler"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/metrics"
	"github.com/osse101/PetalGarden_Go/internal/plant"
	"github.com/osse101/PetalGarden_Go/internal/reward"
	"github.com/osse101/PetalGarden_Go/internal/save"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
	"github.com/osse101/PetalGarden_Go/internal/server"
	"github.com/osse101/PetalGarden_Go/internal/sse"
	"github.com/osse101/PetalGarden_Go/internal/watering"
	"github.com/osse101/PetalGarden_Go/internal/worker"
)

// App holds every long-lived component of a running garden
type App struct {
	Config *config.Config
	Game   *config.GameConfig

	Loop      *scheduler.Loop
	Bus       event.Bus
	EventLog  eventlog.Service
	Economy   economy.Service
	Watering  *watering.Manager
	Grid      grid.Service
	Hub       *sse.Hub
	Bridge    *sse.Bridge
	Pool      *worker.Pool
	Autosaver *save.Autosaver
	Server    *server.Server

	subs    event.Subscriptions
	sampler scheduler.Handle
	cleanup scheduler.Handle
}

// Options override parts of the wiring, mainly for tests
type Options struct {
	// Objects replaces the on-disk save store. Nil opens the default one.
	Objects save.ObjectStore
}

// Build wires the garden in dependency order: loop, bus, journal, economy (restored
// from the save), reward, watering, grid, metrics, SSE, autosaver and
// server. The update loop is running when Build returns.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	game, err := config.LoadGame(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtLoadGameConfig, err)
	}
	logger.Info(LogMsgGameConfigLoaded,
		LogFieldPath, cfg.GameConfigPath,
		LogFieldWidth, game.Grid.Width,
		LogFieldHeight, game.Grid.Height,
		LogFieldPlants, len(game.Plants))

	app := &App{Config: cfg, Game: game}
	app.Loop = scheduler.NewLoop(LoopQueueSize)

	bus := event.NewMemoryBus()
	app.Bus = bus
	app.subs.Add(metrics.NewEventMetricsCollector().Register(bus))
	app.EventLog = eventlog.NewService(eventlog.NewMemoryRepository(eventlog.DefaultCapacity), app.Loop.Now)
	app.subs.Add(app.EventLog.Subscribe(bus))
	logger.Info(LogMsgEventSystemReady)

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug(LogMsgConfigurationLoaded, LogFieldSeed, seed)
	src := distribution.NewSource(seed)

	app.Economy = economy.NewService(bus)
	store := openStore(cfg, opts)
	if err := store.RestoreInto(ctx, app.Economy); err != nil {
		logger.Warn(LogMsgLedgerRestoreFail, LogFieldError, err)
	} else {
		logger.Info(LogMsgLedgerRestored, LogFieldCoins, app.Economy.Coins())
	}

	rewards := reward.NewService(app.Economy, reward.Config{PetalsPerHarvest: game.PetalsPerHarvest})

	app.Watering = watering.NewManager(ctx, app.Loop, bus, src, watering.Config{
		StageGrowthTime: game.Timing.StageGrowthTime,
		WitherDuration:  game.Timing.WitherDuration,
	})

	cooldowns := cooldown.NewMemoryService(cooldown.Config{
		DevMode: cfg.DevMode,
		Cooldowns: map[string]time.Duration{
			domain.ActionGridInteraction: game.Timing.InteractionCooldown,
		},
	}, app.Loop)

	factory := plant.NewFactory(game.Plants, distribution.NewRarityTable(game.RarityWeights), plant.NewRegistry(), app.Loop)
	recorder := metrics.NewRecorder()

	app.Grid, err = grid.NewService(ctx, grid.Config{
		Width:          game.Grid.Width,
		Height:         game.Grid.Height,
		NeighborRadius: game.Grid.NeighborRadius,
	}, grid.Deps{
		Bus:      bus,
		Source:   src,
		Soils:    distribution.NewSoilGenerator(game.SoilCatalogue(), game.SoilWeights, game.Grid.CenterBias),
		Factory:  factory,
		Watering: app.Watering,
		Rewards:  rewards,
		Cooldown: cooldowns,
		Metrics:  recorder,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrFmtBuildGrid, err)
	}

	app.Hub = sse.NewHub()
	app.Hub.Start()
	app.Bridge = sse.NewBridge(app.Hub)
	app.Bridge.Subscribe(ctx, bus)

	app.Pool = worker.NewPool(SaveWorkers, SaveQueueSize)
	app.Pool.Start(ctx)

	interval := game.Timing.AutosaveInterval
	if cfg.AutosaveInterval > 0 {
		interval = cfg.AutosaveInterval
	}
	app.Autosaver = save.NewAutosaver(ctx, interval, save.AutosaverDeps{
		Store:      store,
		Ledger:     app.Economy,
		Scheduler:  app.Loop,
		Dispatcher: app.Loop,
		Pool:       app.Pool,
		Bus:        bus,
	})

	app.Server = server.NewServer(server.Config{
		Addr:           cfg.Addr(),
		Version:        cfg.Version,
		NeighborRadius: game.Grid.NeighborRadius,
	}, server.Deps{
		Grid:       app.Grid,
		Economy:    app.Economy,
		Dispatcher: app.Loop,
		Hub:        app.Hub,
		Health:     handler.HealthCheckFunc(app.CheckHealth),
		EventLog:   app.EventLog,
		Saver:      app.Autosaver,
	})

	app.Loop.Start()
	if err := app.Loop.Do(ctx, func() {
		app.Autosaver.Start()
		app.sampler = scheduler.Every(app.Loop, MetricsSampleInterval, func() {
			counts := app.Watering.ActiveTimers()
			recorder.SetActiveTimers(counts.Growth, counts.Wither)
		})
		cleanupJob := eventlog.NewCleanupJob(app.EventLog, eventlog.DefaultRetention)
		app.cleanup = scheduler.Every(app.Loop, eventlog.DefaultCleanupInterval, func() {
			app.Pool.Enqueue(cleanupJob)
		})
	}); err != nil {
		app.Shutdown(ctx)
		return nil, err
	}

	logger.Info(LogMsgGardenReady,
		LogFieldAutosave, interval.String(),
		LogFieldDevMode, cfg.DevMode)
	return app, nil
}

func openStore(cfg *config.Config, opts Options) *save.Store {
	if opts.Objects != nil {
		return save.NewStore(opts.Objects)
	}
	objects, err := save.OpenStore(cfg.SaveAppName)
	if err != nil {
		logger.Warn(LogMsgSaveStoreFallback, LogFieldError, err)
		return save.NewStore(nil)
	}
	return save.NewStore(objects)
}

// CheckHealth reports whether the update loop still answers
func (a *App) CheckHealth(ctx context.Context) error {
	return a.Loop.Do(ctx, func() {})
}

// Run serves HTTP until ctx is cancelled or the server fails, then shuts
// everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Server.Start()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info(LogMsgShutdownSignal)
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error(LogMsgServerFailed, LogFieldError, serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.ShutdownTimeout)
	defer cancel()
	a.Shutdown(shutdownCtx)
	return serveErr
}

// Shutdown stops every component in reverse dependency order
func (a *App) Shutdown(ctx context.Context) {
	// Cancel from the loop; a stopped loop drops its timers anyway.
	_ = a.Loop.Do(ctx, func() {
		for _, h := range []scheduler.Handle{a.sampler, a.cleanup} {
			if h != nil {
				h.Cancel()
			}
		}
	})
	GracefulShutdown(ctx, ShutdownComponents{
		Server:    a.Server,
		Autosaver: a.Autosaver,
		Grid:      a.Grid,
		Watering:  a.Watering,
		Loop:      a.Loop,
		Hub:       a.Hub,
		Bridge:    a.Bridge,
		Pool:      a.Pool,
	})
	a.subs.UnsubscribeAll()
}
