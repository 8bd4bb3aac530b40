package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoundResult is the record kept for a finished round.
type RoundResult struct {
	ID            string    `json:"id"`
	Player        string    `json:"player"`
	Phase         Phase     `json:"phase"`
	MineScore     int       `json:"mine_score"`
	TimeBonus     int       `json:"time_bonus"`
	FinalScore    int       `json:"final_score"`
	MinesDisarmed int       `json:"mines_disarmed"`
	TimeRemaining int       `json:"time_remaining"`
	FinishedAt    time.Time `json:"finished_at"`
}

func NewRoundResult(player string, snapshot Snapshot, finishedAt time.Time) *RoundResult {
	return &RoundResult{
		ID:            uuid.NewString(),
		Player:        player,
		Phase:         snapshot.Phase,
		MineScore:     snapshot.Score,
		TimeBonus:     snapshot.TimeBonus,
		FinalScore:    snapshot.FinalScore,
		MinesDisarmed: len(snapshot.Disarmed),
		TimeRemaining: snapshot.TimeRemaining,
		FinishedAt:    finishedAt.UTC(),
	}
}

func (that *RoundResult) IsWin() bool {
	return that.Phase == PhaseWon
}
