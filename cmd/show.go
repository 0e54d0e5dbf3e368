package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <index|last>",
	Short: "Show one match by its position in the log",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	idx, err := matchIndex(args[0], len(matches))
	if err != nil {
		return err
	}

	m := matches[idx]
	summary, err := m.Summary(r, cfg.Venue)
	if err != nil {
		return fmt.Errorf("match %d: %w", idx, err)
	}
	report.PrintMatchSummary(os.Stdout, summary)
	fmt.Fprintf(os.Stdout, "Outcome   : %s\n", m.Outcome)
	if m.RecordingID != "" {
		fmt.Fprintf(os.Stdout, "Recording : %s\n", m.RecordingID)
	}
	if m.IsPlayable(now()) {
		fmt.Fprintln(os.Stdout, "Status    : upcoming")
	}
	return nil
}

// matchIndex parses a log position; "last" is the most recent entry.
func matchIndex(arg string, n int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("match log is empty")
	}
	if arg == "last" {
		return n - 1, nil
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid match index %q", arg)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("match index %d out of range [0, %d]", idx, n-1)
	}
	return idx, nil
}
