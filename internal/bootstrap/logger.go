package bootstrap

import (
	"io"
	"os"

	"github.com/osse101/PetalGarden_Go/internal/config"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// SetupLogger initializes the application logger on stdout
func SetupLogger(cfg *config.Config) {
	SetupLoggerWithWriter(cfg, os.Stdout)
}

// SetupLoggerWithWriter initializes the application logger on w. Source
// locations are added in development environments.
func SetupLoggerWithWriter(cfg *config.Config, w io.Writer) {
	addSource := cfg.Environment == EnvironmentDev || cfg.Environment == EnvironmentDevelopment

	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), w)

	logger.Info(LogMsgLoggingInitialized, LogFieldLogLevel, cfg.LogLevel)
	logger.Info(LogMsgStartingGarden,
		LogFieldEnvironment, cfg.Environment,
		LogFieldLogFormat, cfg.LogFormat,
		LogFieldVersion, cfg.Version)
	logger.Debug(LogMsgConfigurationLoaded,
		LogFieldPort, cfg.Port,
		LogFieldPath, cfg.GameConfigPath,
		LogFieldDevMode, cfg.DevMode)
}
