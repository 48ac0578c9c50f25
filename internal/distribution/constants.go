package distribution

// Log messages
const (
	LogMsgNegativeWeight  = "Negative weight treated as zero"
	LogMsgDegenerateTable = "Weight table sums to zero, using fallback"
)

// Log field keys
const (
	LogFieldIndex    = "index"
	LogFieldWeight   = "weight"
	LogFieldFallback = "fallback"
)
