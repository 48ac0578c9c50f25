package bootstrap

import (
	"context"

	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/save"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
	"github.com/osse101/PetalGarden_Go/internal/server"
	"github.com/osse101/PetalGarden_Go/internal/sse"
	"github.com/osse101/PetalGarden_Go/internal/watering"
	"github.com/osse101/PetalGarden_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    *server.Server
	Autosaver *save.Autosaver
	Grid      grid.Service
	Watering  *watering.Manager
	Loop      *scheduler.Loop
	Hub       *sse.Hub
	Bridge    *sse.Bridge
	Pool      *worker.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in this order:
// 1. HTTP server (stop accepting new commands)
// 2. Autosaver (final synchronous save while the loop still runs)
// 3. Grid and watering manager, disposed on the loop
// 4. Update loop
// 5. SSE bridge and hub, then the save worker pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, LogFieldError, err)
		}
	}

	if c.Autosaver != nil {
		if err := c.Autosaver.Stop(ctx); err != nil {
			logger.Error(LogMsgFinalSaveFailed, LogFieldError, err)
		}
	}

	if c.Loop != nil {
		err := c.Loop.Do(ctx, func() {
			if c.Grid != nil {
				c.Grid.Dispose()
			}
			if c.Watering != nil {
				c.Watering.Dispose()
			}
		})
		if err != nil {
			logger.Error(LogMsgGridDisposeFailed, LogFieldError, err)
		}
		if err := c.Loop.Stop(ctx); err != nil {
			logger.Error(LogMsgLoopStopFailed, LogFieldError, err)
		}
	}

	if c.Bridge != nil {
		c.Bridge.Unsubscribe()
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	logger.Info(LogMsgServerStopped)
}
