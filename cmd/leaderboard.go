package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/report"
)

var leaderboardMinPlayed int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank every roster player by handicap",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardMinPlayed, "min-played", 0, "hide players with fewer played matches")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	if r.Len() == 0 {
		fmt.Fprintln(os.Stdout, "Roster is empty.")
		return nil
	}

	var rows []model.PlayerStanding
	for _, s := range aggregator.Leaderboard(r.Players(), matches) {
		if s.Stats.Played >= leaderboardMinPlayed {
			rows = append(rows, s)
		}
	}
	report.PrintLeaderboard(os.Stdout, rows)
	return nil
}
