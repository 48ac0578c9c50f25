package grid

import (
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/plant"
)

// Cell is one addressable slot of the grid. Position and soil never change;
// the occupant is set and cleared only by the grid service.
type Cell struct {
	pos      domain.Position
	soil     domain.Soil
	occupant *plant.Plant
}

func (c *Cell) Position() domain.Position { return c.pos }
func (c *Cell) Soil() domain.Soil         { return c.soil }

// Occupant returns the resident plant or nil
func (c *Cell) Occupant() *plant.Plant { return c.occupant }

// IsEmpty reports whether no plant lives in the cell
func (c *Cell) IsEmpty() bool { return c.occupant == nil }

// View returns a read-only copy of the cell
func (c *Cell) View() domain.CellView {
	v := domain.CellView{Position: c.pos, Soil: c.soil.Name}
	if c.occupant != nil {
		pv := c.occupant.View()
		v.Plant = &pv
	}
	return v
}
