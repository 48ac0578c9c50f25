package cooldown

import (
	"time"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode lets every action through immediately
	DevMode bool

	// Cooldowns maps an action to its duration. Negative entries are ignored.
	Cooldowns map[string]time.Duration
}

// Duration returns the cooldown for action. Grid interactions fall back to
// the game default, anything else to DefaultCooldownDuration.
func (c *Config) Duration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok && d >= 0 {
		return d
	}
	if action == domain.ActionGridInteraction {
		return domain.DefaultInteractionCooldown
	}
	return DefaultCooldownDuration
}
