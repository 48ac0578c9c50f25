package distribution

import (
	"math"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Normalize divides each weight by the sum of all weights.
// Negative and NaN weights count as zero. When the sum is not positive the
// result is nil and the caller falls back to its default category.
func Normalize(weights []float64) []float64 {
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			logger.Warn(LogMsgNegativeWeight, LogFieldIndex, i, LogFieldWeight, w)
			continue
		}
		sum += w
	}
	if sum <= 0 || math.IsInf(sum, 0) {
		return nil
	}

	out := make([]float64, len(weights))
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			continue
		}
		out[i] = w / sum
	}
	return out
}

// Sample walks the cumulative sum of normalized and returns the first index
// whose cumulative weight reaches u. Rounding that leaves u above the final
// cumulative value returns the last index. An empty distribution returns -1.
func Sample(normalized []float64, u float64) int {
	if len(normalized) == 0 {
		return -1
	}

	cumulative := 0.0
	for i, w := range normalized {
		cumulative += w
		if w > 0 && cumulative >= u {
			return i
		}
	}

	for i := len(normalized) - 1; i >= 0; i-- {
		if normalized[i] > 0 {
			return i
		}
	}
	return len(normalized) - 1
}
