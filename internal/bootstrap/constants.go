package bootstrap

import "time"

// Runtime sizing
const (
	// LoopQueueSize bounds the tasks waiting for the update loop
	LoopQueueSize = 256

	// SaveWorkers is the number of goroutines running saves and journal cleanup
	SaveWorkers = 1

	// SaveQueueSize bounds the pending background jobs
	SaveQueueSize = 4

	// MetricsSampleInterval is how often timer gauges are refreshed
	MetricsSampleInterval = 5 * time.Second
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingGarden      = "Starting PetalGarden"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Log messages for wiring
const (
	LogMsgGameConfigLoaded  = "Game configuration loaded"
	LogMsgSaveStoreFallback = "Save store unavailable, progress will not be persisted"
	LogMsgLedgerRestored    = "Ledger restored"
	LogMsgLedgerRestoreFail = "Failed to restore ledger, starting fresh"
	LogMsgEventSystemReady  = "Event system initialized"
	LogMsgGardenReady       = "Garden ready"
	LogMsgServerFailed      = "Server failed"
	LogMsgShutdownSignal    = "Shutdown signal received"
	LogMsgGardenBuildFailed = "Failed to build garden"
	LogMsgConfigLoadFailed  = "Failed to load configuration"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgFinalSaveFailed      = "Final save failed"
	LogMsgLoopStopFailed       = "Update loop did not stop cleanly"
	LogMsgGridDisposeFailed    = "Failed to dispose grid"
	LogMsgServerStopped        = "Server stopped"
)

// Log field keys
const (
	LogFieldError       = "error"
	LogFieldEnvironment = "environment"
	LogFieldLogLevel    = "log_level"
	LogFieldLogFormat   = "log_format"
	LogFieldVersion     = "version"
	LogFieldPort        = "port"
	LogFieldPath        = "path"
	LogFieldSeed        = "seed"
	LogFieldWidth       = "width"
	LogFieldHeight      = "height"
	LogFieldPlants      = "plants"
	LogFieldCoins       = "coins"
	LogFieldAutosave    = "autosave_interval"
	LogFieldDevMode     = "dev_mode"
)

// Environment names that enable source locations in logs
const (
	EnvironmentDev         = "dev"
	EnvironmentDevelopment = "development"
)

// Error format strings
const (
	ErrFmtLoadGameConfig = "failed to load game config: %w"
	ErrFmtBuildGrid      = "failed to build grid: %w"
)
