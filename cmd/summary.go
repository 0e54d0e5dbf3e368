package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/report"
)

// summaryTop is the number of players in the "most active" table.
const summaryTop = 10

// summaryCmd is the cobra command for displaying a high-level overview of the log.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the match log",
	Long: `Display aggregate statistics about the match log: roster size, match
count, date range, the next upcoming match, the outcome breakdown, and the
most active players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches recorded yet. Run 'arenametrics matchmaking <announcement.txt>' to add one.")
		return nil
	}

	t := now()
	ov := aggregator.Overview(r.Len(), matches, t)
	var next *model.Match
	if ov.NextIndex >= 0 {
		next = &matches[ov.NextIndex]
	}
	report.PrintOverview(os.Stdout, ov, next, mostActive(aggregator.Leaderboard(r.Players(), matches)), t)
	return nil
}

// mostActive returns up to summaryTop players with at least one played
// match, by matches played.
func mostActive(standings []model.PlayerStanding) []model.PlayerStanding {
	var out []model.PlayerStanding
	for _, s := range standings {
		if s.Stats.Played > 0 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.Played > out[j].Stats.Played
	})
	if len(out) > summaryTop {
		out = out[:summaryTop]
	}
	return out
}
