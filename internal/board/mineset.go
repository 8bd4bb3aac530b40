package board

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// MineSet holds the unresolved mines of a round.
type MineSet struct {
	cells mapset.Set[Cell]
}

func NewMineSet(cells ...Cell) *MineSet {
	set := &MineSet{cells: mapset.New[Cell]()}
	for _, cell := range cells {
		set.Add(cell)
	}

	return set
}

// PlaceMines - scatters count mines by rejection sampling, never on exclude.
func PlaceMines(rnd Rand, exclude Cell, count int) *MineSet {
	set := NewMineSet()

	// one cell always stays free for the character
	count = min(count, GridSize*GridSize-1)
	for set.Len() < count {
		cell := RandomCell(rnd)
		if cell == exclude || set.Has(cell) {
			continue
		}
		set.Add(cell)
	}

	return set
}

func (that *MineSet) Has(cell Cell) bool {
	return that.cells.Has(cell)
}

func (that *MineSet) Add(cell Cell) {
	that.cells.Put(cell)
}

func (that *MineSet) Remove(cell Cell) {
	that.cells.Remove(cell)
}

func (that *MineSet) Len() int {
	return that.cells.Size()
}

// Cells - returns the mines ordered row by row.
func (that *MineSet) Cells() []Cell {
	cells := make([]Cell, 0, that.Len())
	that.cells.Each(func(cell Cell) {
		cells = append(cells, cell)
	})

	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})

	return cells
}
