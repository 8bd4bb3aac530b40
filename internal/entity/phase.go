package entity

const (
	NumMines     = 5
	TimeLimit    = 60
	DisarmReward = 10
)

type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseWon      Phase = "won"
	PhaseLost     Phase = "lost"
	PhaseTimedOut Phase = "timed_out"
)

// IsTerminal reports whether gameplay is over until the next reset.
func (that Phase) IsTerminal() bool {
	switch that {
	case PhaseWon, PhaseLost, PhaseTimedOut:
		return true
	default:
		return false
	}
}

// Cue names a sound the presentation layer should play.
type Cue string

const (
	CueStep    Cue = "step"
	CueDisarm  Cue = "disarm"
	CueExplode Cue = "explode"
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
)

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Delta - returns the unit step for the direction, zero for unknown values.
func (that Direction) Delta() (int, int) {
	switch that {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	default:
		return 0, 0
	}
}
