package distribution

import (
	"math"
	"sort"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

// SoilGenerator assigns soil to every cell once, at grid construction.
//
// CenterBias is an optional policy: when positive the fertile weight of a cell
// is scaled by 1 + CenterBias*(1 - d/dmax), d being the distance from the
// grid centre, so fertile ground clusters in the middle.
type SoilGenerator struct {
	soils      []domain.Soil
	weights    []float64
	fallback   domain.Soil
	CenterBias float64
}

// NewSoilGenerator builds a generator from a catalogue and a weight per soil
// name. Soils without a weight are never drawn.
func NewSoilGenerator(catalogue []domain.Soil, weights map[string]float64, centerBias float64) *SoilGenerator {
	byName := make(map[string]domain.Soil, len(catalogue))
	for _, s := range catalogue {
		byName[s.Name] = s
	}

	names := make([]string, 0, len(weights))
	for name := range weights {
		if _, ok := byName[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	g := &SoilGenerator{fallback: domain.DefaultSoil, CenterBias: centerBias}
	if s, ok := byName[domain.SoilNameFertile]; ok {
		g.fallback = s
	}
	for _, name := range names {
		g.soils = append(g.soils, byName[name])
		g.weights = append(g.weights, weights[name])
	}
	return g
}

// Generate returns soils indexed [y][x]
func (g *SoilGenerator) Generate(width, height int, src Source) [][]domain.Soil {
	base := NewTable(g.entries(g.weights), g.fallback)

	out := make([][]domain.Soil, height)
	for y := 0; y < height; y++ {
		out[y] = make([]domain.Soil, width)
		for x := 0; x < width; x++ {
			if g.CenterBias <= 0 {
				out[y][x] = base.Pick(src)
				continue
			}
			biased := NewTable(g.entries(g.biasedWeights(x, y, width, height)), g.fallback)
			out[y][x] = biased.Pick(src)
		}
	}
	return out
}

func (g *SoilGenerator) entries(weights []float64) []Entry[domain.Soil] {
	entries := make([]Entry[domain.Soil], len(g.soils))
	for i, s := range g.soils {
		entries[i] = Entry[domain.Soil]{Key: s, Weight: weights[i]}
	}
	return entries
}

func (g *SoilGenerator) biasedWeights(x, y, width, height int) []float64 {
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	dmax := math.Hypot(cx, cy)

	factor := 1.0
	if dmax > 0 {
		d := math.Hypot(float64(x)-cx, float64(y)-cy)
		factor = 1 + g.CenterBias*(1-d/dmax)
	}

	out := make([]float64, len(g.weights))
	for i, s := range g.soils {
		out[i] = g.weights[i]
		if s.Name == domain.SoilNameFertile {
			out[i] *= factor
		}
	}
	return out
}
