package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity is the weighted category that decides which plant definitions can be
// drawn when a seed is planted.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// DefaultRarity is drawn when the rarity weight table is degenerate
const DefaultRarity = RarityCommon

// Rarities returns all rarities from most to least common
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

// IsValid reports whether r is one of the known rarities
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the player-facing name, e.g. "Legendary"
func (r Rarity) DisplayName() string {
	return titleCaser.String(string(r))
}

// PlantType tags a plant family. Petals are tracked per type.
type PlantType string

const PlantTypeBasic PlantType = "basic"

// DisplayName returns the player-facing name of the type
func (t PlantType) DisplayName() string {
	return titleCaser.String(string(t))
}
