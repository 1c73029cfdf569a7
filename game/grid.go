package game

import (
	"github.com/oliverbestmann/harmony"
	"github.com/oliverbestmann/harmony/gm"
)

type gridCell struct {
	solid  bool
	hasBox bool
	box    harmony.EntityId
}

// Grid tracks which cells block movement and which hold a box.
// Cells outside the grid are solid.
type Grid struct {
	width, height int
	cells         []gridCell
}

// NewGrid creates a grid with every cell solid.
func NewGrid(width, height int) *Grid {
	cells := make([]gridCell, width*height)
	for idx := range cells {
		cells[idx].solid = true
	}

	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) at(cell gm.IVec) *gridCell {
	if cell.X < 0 || cell.Y < 0 || cell.X >= g.width || cell.Y >= g.height {
		return nil
	}

	return &g.cells[cell.Y*g.width+cell.X]
}

func (g *Grid) Solid(cell gm.IVec) bool {
	c := g.at(cell)
	return c == nil || c.solid
}

func (g *Grid) SetSolid(cell gm.IVec, solid bool) {
	if c := g.at(cell); c != nil {
		c.solid = solid
	}
}

// Box returns the box in the given cell.
func (g *Grid) Box(cell gm.IVec) (harmony.EntityId, bool) {
	c := g.at(cell)
	if c == nil || !c.hasBox {
		return 0, false
	}

	return c.box, true
}

// Free returns true if the cell is neither solid nor holds a box.
func (g *Grid) Free(cell gm.IVec) bool {
	c := g.at(cell)
	return c != nil && !c.solid && !c.hasBox
}

func (g *Grid) PlaceBox(cell gm.IVec, box harmony.EntityId) {
	if c := g.at(cell); c != nil {
		c.hasBox = true
		c.box = box
	}
}

func (g *Grid) RemoveBox(cell gm.IVec) {
	if c := g.at(cell); c != nil {
		c.hasBox = false
		c.box = 0
	}
}
