package economy

// Error messages
const (
	ErrMsgNegativeCoinsFmt  = "snapshot coins %d: %w"
	ErrMsgNegativePetalsFmt = "snapshot petals %s=%d: %w"
)

// Log messages
const (
	LogMsgNegativeAmountRejected = "Negative amount rejected"
	LogMsgCoinsSaturated         = "Coin balance saturated"
	LogMsgPetalsSaturated        = "Petal count saturated"
	LogMsgPublishFailed          = "Failed to publish economy event"
	LogMsgLedgerRestored         = "Ledger restored"
)

// Log field keys
const (
	LogFieldOperation = "operation"
	LogFieldAmount    = "amount"
	LogFieldPetalType = "petal_type"
	LogFieldCoins     = "coins"
	LogFieldError     = "error"
)

// Operation names used in logs
const (
	opAddCoins    = "add_coins"
	opSpendCoins  = "spend_coins"
	opAddPetals   = "add_petals"
	opSpendPetals = "spend_petals"
	opHasPetals   = "has_petals"
)
