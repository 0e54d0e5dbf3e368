package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/report"
	"github.com/pable/go-arena-metrics/internal/roster"
)

// playerCmd prints the stats of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <id|alias> [<id|alias>...]",
	Short: "Stats for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	players, err := resolvePlayers(r, args)
	if err != nil {
		return err
	}

	standings := make([]model.PlayerStanding, len(players))
	for i, p := range players {
		standings[i] = model.PlayerStanding{Player: p, Stats: aggregator.PlayerStats(p.ID, matches)}
	}
	report.PrintPlayerTable(os.Stdout, standings)
	return nil
}

// resolvePlayers maps each id or alias argument to a roster entry.
func resolvePlayers(r *roster.Roster, args []string) ([]model.Player, error) {
	out := make([]model.Player, 0, len(args))
	for _, arg := range args {
		p, ok := r.Resolve(arg)
		if !ok {
			return nil, fmt.Errorf("%w: %q", model.ErrUnknownPlayer, arg)
		}
		out = append(out, p)
	}
	return out, nil
}
