package distribution

import (
	"fmt"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Entry is one weighted category
type Entry[K comparable] struct {
	Key    K
	Weight float64
}

// Table is an immutable weighted table with a fallback category
type Table[K comparable] struct {
	keys       []K
	normalized []float64
	fallback   K
}

// NewTable builds a table. Entry order is preserved and decides tie-breaking.
func NewTable[K comparable](entries []Entry[K], fallback K) *Table[K] {
	keys := make([]K, len(entries))
	weights := make([]float64, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
		weights[i] = e.Weight
	}

	t := &Table[K]{
		keys:       keys,
		normalized: Normalize(weights),
		fallback:   fallback,
	}
	if t.normalized == nil {
		logger.Warn(LogMsgDegenerateTable, LogFieldFallback, fmt.Sprint(fallback))
	}
	return t
}

// Pick draws one key
func (t *Table[K]) Pick(src Source) K {
	if t.normalized == nil {
		return t.fallback
	}
	idx := Sample(t.normalized, src.Float64())
	if idx < 0 {
		return t.fallback
	}
	return t.keys[idx]
}

// Probability returns the normalized weight of key, 0 when absent
func (t *Table[K]) Probability(key K) float64 {
	if t.normalized == nil {
		if key == t.fallback {
			return 1
		}
		return 0
	}
	p := 0.0
	for i, k := range t.keys {
		if k == key {
			p += t.normalized[i]
		}
	}
	return p
}

// Fallback returns the category used when the table is degenerate
func (t *Table[K]) Fallback() K {
	return t.fallback
}

// Degenerate reports whether every draw returns the fallback
func (t *Table[K]) Degenerate() bool {
	return t.normalized == nil
}
