package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/parser"
	"github.com/pable/go-arena-metrics/internal/report"
	"github.com/pable/go-arena-metrics/internal/tabular"
)

var matchmakingDryRun bool

var matchmakingCmd = &cobra.Command{
	Use:   "matchmaking <announcement.txt>",
	Short: "Create a pending match from a group chat announcement",
	Long: `Parse an announcement of the form

  Tuesday 14/05 @20:00
  1. Pablo
  2. Sander
  ...

resolve every name against the roster, split the first ten players into two
teams, and append the match to the log with a pending outcome. Names missing
from the roster are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatchmaking,
}

func init() {
	matchmakingCmd.Flags().BoolVar(&matchmakingDryRun, "dry-run", false, "print the match without appending it to the log")
}

func runMatchmaking(cmd *cobra.Command, args []string) error {
	r, err := loadRoster()
	if err != nil {
		return err
	}

	p := parser.New(r,
		parser.WithLogger(log),
		parser.WithLocation(cfg.Location),
		parser.WithKickoff(cfg.Kickoff),
		parser.WithColors(cfg.TeamColors[0], cfg.TeamColors[1]),
		parser.WithClock(now),
	)
	log.Info().Str("file", args[0]).Msg("matchmaking")
	res, err := p.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parse announcement: %w", err)
	}

	summary, err := res.Match.Summary(r, cfg.Venue)
	if err != nil {
		return err
	}
	report.PrintMatchSummary(os.Stdout, summary)
	if len(res.Unresolved) > 0 {
		fmt.Fprintf(os.Stdout, "Not in roster: %s\n", strings.Join(res.Unresolved, ", "))
	}
	if len(res.Reserves) > 0 {
		names := make([]string, len(res.Reserves))
		for i, pl := range res.Reserves {
			names[i] = pl.Alias
		}
		fmt.Fprintf(os.Stdout, "Reserves: %s\n", strings.Join(names, ", "))
	}

	if matchmakingDryRun {
		fmt.Fprintln(os.Stdout, "Dry run, match not saved.")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.MatchesPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := tabular.AppendFile(cfg.MatchesPath, tabular.MatchesIn(cfg.Location), res.Match); err != nil {
		return fmt.Errorf("append match: %w", err)
	}
	log.Info().Str("path", cfg.MatchesPath).Msg("match appended")
	return nil
}
