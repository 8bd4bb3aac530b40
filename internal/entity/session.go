package entity

import (
	"fmt"

	"github.com/rocketscienceinc/laststep/internal/apperror"
	"github.com/rocketscienceinc/laststep/internal/board"
)

// Outcome describes what a single Session operation did.
type Outcome struct {
	Changed bool
	Cues    []Cue
	Phase   Phase
}

// Session is the state machine of one player's round: where the character stands,
// which mines are left, the score and the countdown.
//
// Every operation is total. Actions that make no sense in the current phase
// return an unchanged Outcome instead of an error.
type Session struct {
	rnd board.Rand

	character board.Cell
	mines     *board.MineSet
	disarmed  []board.Cell
	exploded  []board.Cell

	score         int
	finalScore    int
	timeRemaining int
	phase         Phase
}

// NewSession - starts a round with a random character cell and random mines.
func NewSession(rnd board.Rand) *Session {
	session := &Session{rnd: rnd}
	session.Reset()

	return session
}

// NewSessionWithLayout - starts a round on a fixed layout. Later resets draw from rnd.
func NewSessionWithLayout(rnd board.Rand, character board.Cell, mines []board.Cell) (*Session, error) {
	if !character.InBounds() {
		return nil, fmt.Errorf("%w: character %s out of bounds", apperror.ErrInvalidLayout, character)
	}

	if len(mines) == 0 {
		return nil, fmt.Errorf("%w: no mines", apperror.ErrInvalidLayout)
	}

	set := board.NewMineSet()
	for _, mine := range mines {
		switch {
		case !mine.InBounds():
			return nil, fmt.Errorf("%w: mine %s out of bounds", apperror.ErrInvalidLayout, mine)
		case mine == character:
			return nil, fmt.Errorf("%w: mine %s under the character", apperror.ErrInvalidLayout, mine)
		case set.Has(mine):
			return nil, fmt.Errorf("%w: duplicate mine %s", apperror.ErrInvalidLayout, mine)
		}
		set.Add(mine)
	}

	session := &Session{rnd: rnd}
	session.start(character, set)

	return session, nil
}

// Reset - throws the round away and deals a new one. Valid in every phase.
func (that *Session) Reset() Outcome {
	character := board.RandomCell(that.rnd)
	that.start(character, board.PlaceMines(that.rnd, character, NumMines))

	return Outcome{Changed: true, Phase: that.phase}
}

func (that *Session) start(character board.Cell, mines *board.MineSet) {
	that.character = character
	that.mines = mines
	that.disarmed = nil
	that.exploded = nil
	that.score = 0
	that.finalScore = 0
	that.timeRemaining = TimeLimit
	that.phase = PhasePlaying
}

// Move - steps the character one cell. Moves off the grid are ignored.
func (that *Session) Move(direction Direction) Outcome {
	if !that.IsPlaying() {
		return that.unchanged()
	}

	destination := that.character.Offset(direction.Delta())
	if destination == that.character || !destination.InBounds() {
		return that.unchanged()
	}

	that.character = destination

	if that.mines.Has(destination) {
		that.exploded = append(that.exploded, destination)
		that.finish(PhaseLost)

		return Outcome{Changed: true, Cues: []Cue{CueExplode, CueLose}, Phase: that.phase}
	}

	return Outcome{Changed: true, Cues: []Cue{CueStep}, Phase: that.phase}
}

// Disarm - removes every mine around the character and awards points for each.
func (that *Session) Disarm() Outcome {
	if !that.IsPlaying() || !board.IsAdjacentToMine(that.character, that.mines) {
		return that.unchanged()
	}

	adjacent := board.AdjacentMines(that.character, that.mines)
	for _, mine := range adjacent {
		that.mines.Remove(mine)
		that.disarmed = append(that.disarmed, mine)
	}
	that.score += DisarmReward * len(adjacent)

	cues := []Cue{CueDisarm}
	if that.mines.Len() == 0 {
		that.finish(PhaseWon)
		cues = append(cues, CueWin)
	}

	return Outcome{Changed: true, Cues: cues, Phase: that.phase}
}

// Tick - recomputes the countdown from the seconds elapsed since the round began.
func (that *Session) Tick(elapsedSeconds int) Outcome {
	if !that.IsPlaying() {
		return that.unchanged()
	}

	remaining := max(TimeLimit-max(elapsedSeconds, 0), 0)
	if remaining >= that.timeRemaining {
		return that.unchanged()
	}

	that.timeRemaining = remaining
	if that.timeRemaining > 0 {
		return Outcome{Changed: true, Phase: that.phase}
	}

	that.finish(PhaseTimedOut)

	return Outcome{Changed: true, Cues: []Cue{CueLose}, Phase: that.phase}
}

// finish freezes the round. Only a win earns the remaining seconds as a bonus.
func (that *Session) finish(phase Phase) {
	that.phase = phase
	that.finalScore = that.score
	if phase == PhaseWon {
		that.finalScore += that.timeRemaining
	}
}

func (that *Session) unchanged() Outcome {
	return Outcome{Phase: that.phase}
}

func (that *Session) IsPlaying() bool {
	return that.phase == PhasePlaying
}

func (that *Session) Phase() Phase {
	return that.phase
}

func (that *Session) Character() board.Cell {
	return that.character
}

func (that *Session) Score() int {
	return that.score
}

func (that *Session) TimeRemaining() int {
	return that.timeRemaining
}

// TimeBonus - seconds left at the moment of winning, zero otherwise.
func (that *Session) TimeBonus() int {
	if that.phase != PhaseWon {
		return 0
	}
	return that.timeRemaining
}

// FinalScore - score including the time bonus, zero while the round is running.
func (that *Session) FinalScore() int {
	return that.finalScore
}

// Snapshot - returns a copy of the state that callers are free to keep.
func (that *Session) Snapshot() Snapshot {
	return Snapshot{
		Character:      that.character,
		Mines:          that.mines.Cells(),
		Disarmed:       append([]board.Cell(nil), that.disarmed...),
		Exploded:       append([]board.Cell(nil), that.exploded...),
		Score:          that.score,
		TimeBonus:      that.TimeBonus(),
		FinalScore:     that.finalScore,
		TimeRemaining:  that.timeRemaining,
		Phase:          that.phase,
		AdjacentToMine: board.IsAdjacentToMine(that.character, that.mines),
		AdjacentCount:  board.CountAdjacentMines(that.character, that.mines),
	}
}
