package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/laststep/internal/apperror"
	"github.com/rocketscienceinc/laststep/internal/board"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint: gosec // deterministic test source
}

func newLayoutSession(t *testing.T, character board.Cell, mines ...board.Cell) *Session {
	t.Helper()

	session, err := NewSessionWithLayout(newRand(1), character, mines)
	require.NoError(t, err)

	return session
}

func assertFreshRound(t *testing.T, session *Session) {
	t.Helper()

	snapshot := session.Snapshot()
	assert.Equal(t, PhasePlaying, snapshot.Phase)
	assert.Zero(t, snapshot.Score)
	assert.Zero(t, snapshot.FinalScore)
	assert.Equal(t, TimeLimit, snapshot.TimeRemaining)
	assert.Empty(t, snapshot.Disarmed)
	assert.Empty(t, snapshot.Exploded)
	assert.True(t, snapshot.Character.InBounds())
	require.Len(t, snapshot.Mines, NumMines)
	assert.NotContains(t, snapshot.Mines, snapshot.Character)
}

func TestNewSession(t *testing.T) {
	t.Run("Starts a playable round for any seed", func(t *testing.T) {
		for seed := int64(0); seed < 100; seed++ {
			// When: a session is created
			session := NewSession(newRand(seed))

			// Then: it is in its initial state
			assertFreshRound(t, session)
		}
	})
}

func TestNewSessionWithLayout(t *testing.T) {
	t.Run("Accepts a valid layout", func(t *testing.T) {
		// When: creating a session with three mines
		session := newLayoutSession(t, board.Cell{X: 3, Y: 3},
			board.Cell{X: 2, Y: 2}, board.Cell{X: 2, Y: 3}, board.Cell{X: 3, Y: 2})

		// Then: the layout is used as given
		snapshot := session.Snapshot()
		assert.Equal(t, board.Cell{X: 3, Y: 3}, snapshot.Character)
		assert.Equal(t, []board.Cell{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}}, snapshot.Mines)
		assert.True(t, snapshot.AdjacentToMine)
		assert.Equal(t, 3, snapshot.AdjacentCount)
	})

	invalid := []struct {
		name      string
		character board.Cell
		mines     []board.Cell
	}{
		{"character out of bounds", board.Cell{X: 10, Y: 0}, []board.Cell{{X: 1, Y: 1}}},
		{"mine out of bounds", board.Cell{X: 0, Y: 0}, []board.Cell{{X: -1, Y: 4}}},
		{"mine under the character", board.Cell{X: 4, Y: 4}, []board.Cell{{X: 4, Y: 4}}},
		{"duplicate mine", board.Cell{X: 0, Y: 0}, []board.Cell{{X: 5, Y: 5}, {X: 5, Y: 5}}},
		{"no mines", board.Cell{X: 0, Y: 0}, nil},
	}

	for _, tc := range invalid {
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			// When: creating a session from a broken layout
			session, err := NewSessionWithLayout(newRand(1), tc.character, tc.mines)

			// Then: ErrInvalidLayout is returned
			require.ErrorIs(t, err, apperror.ErrInvalidLayout)
			assert.Nil(t, session)
		})
	}
}

func TestSession_Move(t *testing.T) {
	t.Run("Steps one cell and cues a footstep", func(t *testing.T) {
		// Given: a character in the middle of the grid
		session := newLayoutSession(t, board.Cell{X: 5, Y: 5}, board.Cell{X: 9, Y: 9})

		// When: moving in each direction
		outcome := session.Move(DirectionUp)

		// Then: the character moved and a step cue is emitted
		assert.Equal(t, Outcome{Changed: true, Cues: []Cue{CueStep}, Phase: PhasePlaying}, outcome)
		assert.Equal(t, board.Cell{X: 5, Y: 4}, session.Character())

		session.Move(DirectionLeft)
		assert.Equal(t, board.Cell{X: 4, Y: 4}, session.Character())

		session.Move(DirectionDown)
		assert.Equal(t, board.Cell{X: 4, Y: 5}, session.Character())

		session.Move(DirectionRight)
		assert.Equal(t, board.Cell{X: 5, Y: 5}, session.Character())
	})

	t.Run("Blocked by the grid edge", func(t *testing.T) {
		// Given: the character in the top-left corner
		session := newLayoutSession(t, board.Cell{X: 0, Y: 0}, board.Cell{X: 9, Y: 9})
		before := session.Snapshot()

		// When: moving left and up
		left := session.Move(DirectionLeft)
		up := session.Move(DirectionUp)

		// Then: nothing changes
		assert.False(t, left.Changed)
		assert.False(t, up.Changed)
		assert.Empty(t, left.Cues)
		assert.Equal(t, before, session.Snapshot())
	})

	t.Run("Unknown direction is ignored", func(t *testing.T) {
		// Given: a running session
		session := newLayoutSession(t, board.Cell{X: 4, Y: 4}, board.Cell{X: 9, Y: 9})

		// When: moving in a direction that does not exist
		outcome := session.Move(Direction("sideways"))

		// Then: nothing changes
		assert.False(t, outcome.Changed)
		assert.Equal(t, board.Cell{X: 4, Y: 4}, session.Character())
	})

	t.Run("Stepping on a mine loses the round", func(t *testing.T) {
		// Given: a mine right of the character
		session := newLayoutSession(t, board.Cell{X: 4, Y: 4}, board.Cell{X: 5, Y: 4}, board.Cell{X: 0, Y: 9})
		session.Tick(12)

		// When: moving onto the mine
		outcome := session.Move(DirectionRight)

		// Then: the round is lost with an explosion on that exact cell
		assert.Equal(t, Outcome{Changed: true, Cues: []Cue{CueExplode, CueLose}, Phase: PhaseLost}, outcome)
		snapshot := session.Snapshot()
		assert.Equal(t, []board.Cell{{X: 5, Y: 4}}, snapshot.Exploded)
		assert.Equal(t, board.Cell{X: 5, Y: 4}, snapshot.Character)
		assert.Zero(t, snapshot.TimeBonus)
		assert.Zero(t, snapshot.FinalScore)
		assert.Equal(t, TimeLimit-12, snapshot.TimeRemaining)

		// And: further moves and ticks do nothing
		assert.False(t, session.Move(DirectionLeft).Changed)
		assert.False(t, session.Tick(40).Changed)
		assert.Equal(t, snapshot, session.Snapshot())
	})

	t.Run("Character never leaves the grid", func(t *testing.T) {
		directions := []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

		for seed := int64(0); seed < 20; seed++ {
			// Given: a random session
			rnd := newRand(seed)
			session := NewSession(rnd)

			// When: walking randomly until the round ends or the walk is over
			for step := 0; step < 500 && session.IsPlaying(); step++ {
				session.Move(directions[rnd.Intn(len(directions))])

				// Then: the character is always in bounds
				require.True(t, session.Character().InBounds())
			}
		}
	})
}

func TestSession_Disarm(t *testing.T) {
	t.Run("No-op when no mine is adjacent", func(t *testing.T) {
		// Given: the nearest mine is two cells away
		session := newLayoutSession(t, board.Cell{X: 5, Y: 5}, board.Cell{X: 5, Y: 7})
		before := session.Snapshot()

		// When: disarming twice
		first := session.Disarm()
		second := session.Disarm()

		// Then: score, mines and disarmed list are untouched
		assert.False(t, first.Changed)
		assert.False(t, second.Changed)
		assert.Equal(t, before, session.Snapshot())
	})

	t.Run("Removes exactly the adjacent mines", func(t *testing.T) {
		// Given: two adjacent mines and three far away
		session := newLayoutSession(t, board.Cell{X: 5, Y: 5},
			board.Cell{X: 4, Y: 4}, board.Cell{X: 6, Y: 6},
			board.Cell{X: 0, Y: 0}, board.Cell{X: 9, Y: 0}, board.Cell{X: 0, Y: 9})

		// When: disarming
		outcome := session.Disarm()

		// Then: both neighbours are gone and 20 points are awarded
		assert.Equal(t, Outcome{Changed: true, Cues: []Cue{CueDisarm}, Phase: PhasePlaying}, outcome)
		snapshot := session.Snapshot()
		assert.Equal(t, 2*DisarmReward, snapshot.Score)
		assert.Equal(t, []board.Cell{{X: 4, Y: 4}, {X: 6, Y: 6}}, snapshot.Disarmed)
		assert.Equal(t, []board.Cell{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9}}, snapshot.Mines)
		assert.Len(t, snapshot.Mines, 5-len(snapshot.Disarmed))
		assert.False(t, snapshot.AdjacentToMine)
		assert.Zero(t, snapshot.FinalScore)
	})

	t.Run("Clearing the last mines wins with a time bonus", func(t *testing.T) {
		// Given: three mines around (3,3) and 15 seconds gone
		session := newLayoutSession(t, board.Cell{X: 3, Y: 3},
			board.Cell{X: 2, Y: 2}, board.Cell{X: 2, Y: 3}, board.Cell{X: 3, Y: 2})
		session.Tick(15)

		// When: disarming
		outcome := session.Disarm()

		// Then: the round is won and the remaining time is the bonus
		assert.Equal(t, Outcome{Changed: true, Cues: []Cue{CueDisarm, CueWin}, Phase: PhaseWon}, outcome)
		snapshot := session.Snapshot()
		assert.Empty(t, snapshot.Mines)
		assert.Equal(t, 30, snapshot.Score)
		assert.Equal(t, 45, snapshot.TimeRemaining)
		assert.Equal(t, 45, snapshot.TimeBonus)
		assert.Equal(t, 30+45, snapshot.FinalScore)
		assert.Equal(t, snapshot.Score+snapshot.TimeRemaining, session.FinalScore())

		// And: the timer is frozen
		assert.False(t, session.Tick(59).Changed)
		assert.Equal(t, 45, session.TimeRemaining())
	})

	t.Run("Ignored after the round is over", func(t *testing.T) {
		// Given: a lost round with a mine still next to the character
		session := newLayoutSession(t, board.Cell{X: 1, Y: 1}, board.Cell{X: 2, Y: 1}, board.Cell{X: 3, Y: 1})
		session.Move(DirectionRight)
		require.Equal(t, PhaseLost, session.Phase())

		// When: disarming
		outcome := session.Disarm()

		// Then: nothing happens
		assert.False(t, outcome.Changed)
		assert.Zero(t, session.Score())
	})
}

func TestSession_Tick(t *testing.T) {
	t.Run("Counts down from the elapsed time", func(t *testing.T) {
		// Given: a new round
		session := newLayoutSession(t, board.Cell{X: 0, Y: 0}, board.Cell{X: 9, Y: 9})

		// When: 10 seconds have elapsed
		outcome := session.Tick(10)

		// Then: 50 seconds remain
		assert.Equal(t, Outcome{Changed: true, Phase: PhasePlaying}, outcome)
		assert.Equal(t, 50, session.TimeRemaining())
	})

	t.Run("Same or earlier elapsed time changes nothing", func(t *testing.T) {
		// Given: 20 seconds have elapsed
		session := newLayoutSession(t, board.Cell{X: 0, Y: 0}, board.Cell{X: 9, Y: 9})
		session.Tick(20)

		// When: ticking with the same and with smaller values
		assert.False(t, session.Tick(20).Changed)
		assert.False(t, session.Tick(5).Changed)
		assert.False(t, session.Tick(-3).Changed)

		// Then: the countdown never goes back up
		assert.Equal(t, 40, session.TimeRemaining())
	})

	t.Run("Running out of time ends the round without bonus", func(t *testing.T) {
		// Given: a round with one disarm done
		session := newLayoutSession(t, board.Cell{X: 0, Y: 0}, board.Cell{X: 1, Y: 1}, board.Cell{X: 9, Y: 9})
		session.Disarm()

		// When: more than the time limit has elapsed
		outcome := session.Tick(75)

		// Then: the round is timed out with the mine score only
		assert.Equal(t, Outcome{Changed: true, Cues: []Cue{CueLose}, Phase: PhaseTimedOut}, outcome)
		snapshot := session.Snapshot()
		assert.Zero(t, snapshot.TimeRemaining)
		assert.Equal(t, 10, snapshot.Score)
		assert.Equal(t, 10, snapshot.FinalScore)
		assert.Zero(t, snapshot.TimeBonus)

		// And: no more moves are accepted
		assert.False(t, session.Move(DirectionRight).Changed)
	})

	t.Run("Exactly the limit times out", func(t *testing.T) {
		session := newLayoutSession(t, board.Cell{X: 0, Y: 0}, board.Cell{X: 9, Y: 9})

		outcome := session.Tick(TimeLimit)

		assert.Equal(t, PhaseTimedOut, outcome.Phase)
	})
}

func TestSession_Reset(t *testing.T) {
	terminal := map[Phase]func(session *Session){
		PhaseWon: func(session *Session) {
			session.Disarm()
		},
		PhaseLost: func(session *Session) {
			session.Move(DirectionLeft)
		},
		PhaseTimedOut: func(session *Session) {
			session.Tick(TimeLimit)
		},
		PhasePlaying: func(session *Session) {
			session.Tick(30)
		},
	}

	for phase, reach := range terminal {
		t.Run("Restarts from "+string(phase), func(t *testing.T) {
			// Given: a session driven into the phase
			session := newLayoutSession(t, board.Cell{X: 5, Y: 5}, board.Cell{X: 4, Y: 5})
			reach(session)
			require.Equal(t, phase, session.Phase())

			// When: resetting
			outcome := session.Reset()

			// Then: a fresh round with new random mines begins
			assert.Equal(t, Outcome{Changed: true, Phase: PhasePlaying}, outcome)
			assertFreshRound(t, session)
		})
	}
}

func TestPhase_IsTerminal(t *testing.T) {
	assert.False(t, PhasePlaying.IsTerminal())
	assert.True(t, PhaseWon.IsTerminal())
	assert.True(t, PhaseLost.IsTerminal())
	assert.True(t, PhaseTimedOut.IsTerminal())
}
