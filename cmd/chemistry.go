package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/report"
)

var chemistryCmd = &cobra.Command{
	Use:   "chemistry [<a> <b>]",
	Short: "How two players fare together, or the full pair matrix",
	Long: `With two players (id or alias), print how often they shared a match,
how often they were on the same side, and their win percentage together.

Without arguments, print the win percentage of every pair of roster players
when on the same side. Each cell shows "win% (matches together)".`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 players, received %d", len(args))
		}
		return nil
	},
	RunE: runChemistry,
}

func runChemistry(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		players := r.Players()
		report.PrintChemistryMatrix(os.Stdout, players, aggregator.ChemistryMatrix(players, matches))
		return nil
	}

	pair, err := resolvePlayers(r, args)
	if err != nil {
		return err
	}
	if pair[0].ID == pair[1].ID {
		return fmt.Errorf("chemistry needs two different players")
	}
	a, b := pair[0], pair[1]
	report.PrintChemistry(os.Stdout, a, b, aggregator.Chemistry(a.ID, b.ID, matches))
	return nil
}
