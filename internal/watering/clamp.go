package watering

import (
	"math"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// ClampDuration turns a computed number of seconds into a timer duration.
// NaN, infinite and non-positive values are replaced by fallback (logged);
// the result always lies in [domain.MinTimerDuration, domain.MaxTimerDuration].
func ClampDuration(seconds float64, fallback time.Duration) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		logger.Warn(LogMsgInvalidDuration, LogFieldSeconds, seconds, LogFieldFallback, fallback.String())
		seconds = fallback.Seconds()
	}

	d := time.Duration(seconds * float64(time.Second))
	switch {
	case seconds >= domain.MaxTimerDuration.Seconds():
		return domain.MaxTimerDuration
	case d < domain.MinTimerDuration:
		return domain.MinTimerDuration
	default:
		return d
	}
}
