package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <id|alias>",
	Short: "Chronological results and running handicap for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	players, err := resolvePlayers(r, args)
	if err != nil {
		return err
	}

	history := aggregator.History(players[0].ID, matches)
	if len(history) == 0 {
		fmt.Println("no played matches found")
		return nil
	}
	report.PrintHistory(os.Stdout, players[0], history)
	return nil
}
