package board

import "fmt"

// GridSize is the width and height of the square playing field.
const GridSize = 10

// Cell is a grid coordinate. X grows to the right, Y grows downwards.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rand is the subset of *rand.Rand used for mine placement.
type Rand interface {
	Intn(n int) int
}

// Mines answers membership queries for adjacency lookups.
type Mines interface {
	Has(cell Cell) bool
}

func (that Cell) InBounds() bool {
	return that.X >= 0 && that.X < GridSize && that.Y >= 0 && that.Y < GridSize
}

func (that Cell) Offset(dx, dy int) Cell {
	return Cell{X: that.X + dx, Y: that.Y + dy}
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

// RandomCell - returns a uniformly random cell of the grid.
func RandomCell(rnd Rand) Cell {
	return Cell{X: rnd.Intn(GridSize), Y: rnd.Intn(GridSize)}
}

// Chebyshev - returns the king-move distance between two cells.
func Chebyshev(a, b Cell) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// CountAdjacentMines - counts the mines in the 8 cells surrounding pos.
// Neighbours outside the grid are looked up as-is, mines are expected to be in bounds.
func CountAdjacentMines(pos Cell, mines Mines) int {
	count := 0
	eachNeighbour(pos, func(cell Cell) {
		if mines.Has(cell) {
			count++
		}
	})

	return count
}

// AdjacentMines - returns the mines surrounding pos, dx-major then dy.
func AdjacentMines(pos Cell, mines Mines) []Cell {
	var found []Cell
	eachNeighbour(pos, func(cell Cell) {
		if mines.Has(cell) {
			found = append(found, cell)
		}
	})

	return found
}

func IsAdjacentToMine(pos Cell, mines Mines) bool {
	return CountAdjacentMines(pos, mines) > 0
}

func eachNeighbour(pos Cell, fn func(cell Cell)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			fn(pos.Offset(dx, dy))
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
