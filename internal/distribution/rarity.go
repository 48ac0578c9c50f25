package distribution

import "github.com/osse101/PetalGarden_Go/internal/domain"

// RarityTable draws the rarity tier of a newly planted seed
type RarityTable = Table[domain.Rarity]

// NewRarityTable builds a rarity table from configured weights. Rarities are
// added in domain.Rarities() order so draws are reproducible for a seed.
func NewRarityTable(weights map[domain.Rarity]float64) *RarityTable {
	entries := make([]Entry[domain.Rarity], 0, len(weights))
	for _, r := range domain.Rarities() {
		if w, ok := weights[r]; ok {
			entries = append(entries, Entry[domain.Rarity]{Key: r, Weight: w})
		}
	}
	return NewTable(entries, domain.DefaultRarity)
}
