package entity

import "github.com/rocketscienceinc/laststep/internal/board"

// Snapshot is a read-only view of a Session handed to the presentation layer.
type Snapshot struct {
	Character board.Cell
	Mines     []board.Cell
	Disarmed  []board.Cell
	Exploded  []board.Cell

	Score         int
	TimeBonus     int
	FinalScore    int
	TimeRemaining int
	Phase         Phase

	AdjacentToMine bool
	AdjacentCount  int
}

// Frame is everything drawn in one refresh.
type Frame struct {
	Snapshot Snapshot
	// Best is the highest recorded round, nil when nothing was recorded yet.
	Best *RoundResult
}

// DisarmEnabled reports whether the disarm control should accept input.
func (that Snapshot) DisarmEnabled() bool {
	return that.Phase == PhasePlaying && that.AdjacentToMine
}

// Hints - mine counts for the character's cell and its neighbours, zero counts omitted.
func (that Snapshot) Hints() map[board.Cell]int {
	mines := board.NewMineSet(that.Mines...)
	hints := make(map[board.Cell]int)

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cell := that.Character.Offset(dx, dy)
			if !cell.InBounds() {
				continue
			}
			if count := board.CountAdjacentMines(cell, mines); count > 0 {
				hints[cell] = count
			}
		}
	}

	return hints
}

func (that Snapshot) IsExploded(cell board.Cell) bool {
	return containsCell(that.Exploded, cell)
}

func (that Snapshot) IsDisarmed(cell board.Cell) bool {
	return containsCell(that.Disarmed, cell)
}

func containsCell(cells []board.Cell, cell board.Cell) bool {
	for _, c := range cells {
		if c == cell {
			return true
		}
	}
	return false
}
