package save

import "errors"

// Storage layout
const (
	ledgerObject        = "economy"
	ledgerProperty      = "ledger"
	LedgerFormatVersion = 1
)

// Log messages
const (
	LogMsgLedgerSaved      = "Ledger saved"
	LogMsgLedgerLoaded     = "Ledger loaded"
	LogMsgNoSavedLedger    = "No saved ledger, starting empty"
	LogMsgSaveSkipped      = "Ledger unchanged, save skipped"
	LogMsgSaveFailed       = "Ledger save failed"
	LogMsgSaveQueued       = "Ledger save queued"
	LogMsgSaveDropped      = "Ledger save could not be queued"
	LogMsgAutosaveStarted  = "Autosave started"
	LogMsgAutosaveStopped  = "Autosave stopped"
	LogMsgDegradedMode     = "No save store configured, ledger will not persist"
	LogMsgDispatchFailed   = "Failed to reach update loop"
	LogMsgPublishFailed    = "Failed to publish save event"
	LogMsgVersionMismatch  = "Saved ledger has unexpected format version"
)

// Log field keys
const (
	LogFieldCoins      = "coins"
	LogFieldPetalTypes = "petal_types"
	LogFieldInterval   = "interval"
	LogFieldVersion    = "version"
	LogFieldError      = "error"
)

// Error formats
const (
	ErrFmtOpenStore    = "failed to open save store %q: %w"
	ErrFmtMarshal      = "failed to marshal ledger: %w"
	ErrFmtUnmarshal    = "failed to unmarshal ledger: %w"
	ErrFmtWrite        = "failed to save ledger: %w"
	ErrFmtRead         = "failed to load ledger: %w"
	ErrFmtInvalidSaved = "saved ledger rejected: %w"
)

const autosaveJobName = "autosave"

// ErrNoStore is returned by Store operations in degraded mode
var ErrNoStore = errors.New("no save store configured")
