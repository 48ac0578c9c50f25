package domain

// Built-in soil names
const (
	SoilNameFertile    = "fertile"
	SoilNameRocky      = "rocky"
	SoilNameUnsuitable = "unsuitable"
)

// Soil describes the ground of a cell. Entries beyond the three built-ins come
// from the soil catalogue in the game config.
type Soil struct {
	Name             string  `json:"name" yaml:"name"`
	GrowthMultiplier float64 `json:"growth_multiplier" yaml:"growthMultiplier"`
	Plantable        bool    `json:"plantable" yaml:"plantable"`
}

var (
	SoilFertile    = Soil{Name: SoilNameFertile, GrowthMultiplier: 1.25, Plantable: true}
	SoilRocky      = Soil{Name: SoilNameRocky, GrowthMultiplier: 0.75, Plantable: true}
	SoilUnsuitable = Soil{Name: SoilNameUnsuitable, GrowthMultiplier: 0, Plantable: false}
)

// DefaultSoil is used when the soil weight table is degenerate
var DefaultSoil = SoilFertile

// BuiltinSoils returns the soils every catalogue starts from
func BuiltinSoils() []Soil {
	return []Soil{SoilFertile, SoilRocky, SoilUnsuitable}
}
