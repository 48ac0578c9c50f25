package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/PetalGarden_Go/internal/bootstrap"
	"github.com/osse101/PetalGarden_Go/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error(bootstrap.LogMsgConfigLoadFailed, "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	// Stop on CTRL-C or other term signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{})
	if err != nil {
		slog.Error(bootstrap.LogMsgGardenBuildFailed, "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
