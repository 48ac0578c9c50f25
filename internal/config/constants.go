package config

import "time"

// Environment variable names
const (
	EnvPort             = "PORT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvServiceName      = "SERVICE_NAME"
	EnvVersion          = "VERSION"
	EnvGameConfigPath   = "GAME_CONFIG_PATH"
	EnvSaveAppName      = "SAVE_APP_NAME"
	EnvRNGSeed          = "RNG_SEED"
	EnvAutosaveInterval = "AUTOSAVE_INTERVAL"
	EnvDevMode          = "DEV_MODE"
	EnvShutdownTimeout  = "SHUTDOWN_TIMEOUT"
)

// Process defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultServiceName     = "petalgarden"
	DefaultVersion         = "dev"
	DefaultSaveAppName     = "petalgarden"
	DefaultShutdownTimeout = 10 * time.Second
)

// Game defaults
const (
	DefaultGridWidth        = 8
	DefaultGridHeight       = 6
	DefaultCenterBias       = 0.5
	DefaultAutosaveInterval = 30 * time.Second
	MaxGridSide             = 256
)

// Error formats
const (
	ErrFmtInvalidPort      = "invalid PORT value %q: %w"
	ErrFmtPortRange        = "PORT %d out of range: %w"
	ErrFmtReadGameConfig   = "failed to read game config %s: %w"
	ErrFmtParseGameConfig  = "failed to parse game config %s: %w"
	ErrFmtValidation       = "%w: %s"
	ErrFmtDuplicatePlantID = "duplicate plant id %q"
	ErrFmtUnknownRarity    = "plant %q has unknown rarity %q"
	ErrFmtUnknownWeight    = "rarity weight for unknown rarity %q"
	ErrFmtUnknownSoil      = "soil weight for unknown soil %q"
	ErrFmtDuplicateSoil    = "duplicate soil %q"
)
