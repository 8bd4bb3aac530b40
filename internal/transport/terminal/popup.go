package terminal

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/laststep/internal/entity"
)

const (
	tryAgainButton = "Try Again"
	endGameButton  = "End Game"
)

var popupTitles = map[entity.Phase]string{
	entity.PhaseWon:      "YAY! All safe now.",
	entity.PhaseLost:     "Game Over!",
	entity.PhaseTimedOut: "Time's Up! Game Over!",
}

// popupText - the end-of-round message. Only a win shows the time bonus breakdown.
func popupText(frame entity.Frame) string {
	snapshot := frame.Snapshot

	var text strings.Builder
	text.WriteString(popupTitles[snapshot.Phase])
	text.WriteString("\n\n")
	fmt.Fprintf(&text, "Points from mines: %d", snapshot.Score)

	if snapshot.Phase == entity.PhaseWon {
		fmt.Fprintf(&text, "\nTime bonus: %d", snapshot.TimeBonus)
		text.WriteString("\n────────────────")
		fmt.Fprintf(&text, "\nFinal score: %d", snapshot.FinalScore)
	}

	if frame.Best != nil {
		fmt.Fprintf(&text, "\n\nBest score: %d", frame.Best.FinalScore)
	}

	return text.String()
}
