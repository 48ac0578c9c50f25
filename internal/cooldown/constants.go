package cooldown

import "time"

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = 250 * time.Millisecond
)

const (
	// keySeparator joins key and action in the timestamp table
	keySeparator = ":"
)

// Log message constants
const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing cooldown enforcement"

	// LogMsgCooldownRejected is logged when an action is attempted during its cooldown
	LogMsgCooldownRejected = "Action rejected, on cooldown"

	// LogMsgCooldownEnforced is logged when cooldown is successfully enforced and updated
	LogMsgCooldownEnforced = "Cooldown enforced successfully"
)

// Error message format strings (for ErrOnCooldown.Error())
const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"

	// ErrFmtCooldownMilliseconds formats sub-second cooldowns
	ErrFmtCooldownMilliseconds = "You can %s again in %dms"
)

// SecondsPerMinute is used for time duration calculations
const SecondsPerMinute = 60
