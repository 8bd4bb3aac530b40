package terminal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rocketscienceinc/laststep/internal/entity"
)

var outcomeNames = map[entity.Phase]string{
	entity.PhaseWon:      "won",
	entity.PhaseLost:     "exploded",
	entity.PhaseTimedOut: "timed out",
}

// PrintLeaderboard - writes the recorded rounds as a table, best first as given.
func PrintLeaderboard(w io.Writer, results []*entity.RoundResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No rounds recorded yet.")
		return err
	}

	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(table, "#\tPLAYER\tOUTCOME\tMINES\tBONUS\tSCORE\tFINISHED")
	for i, result := range results {
		fmt.Fprintf(table, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			i+1,
			result.Player,
			outcomeNames[result.Phase],
			result.MinesDisarmed,
			result.TimeBonus,
			result.FinalScore,
			result.FinishedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	if err := table.Flush(); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}

	return nil
}
