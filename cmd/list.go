package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded matches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches recorded yet. Run 'arenametrics matchmaking <announcement.txt>' to add one.")
		return nil
	}
	report.PrintMatchList(os.Stdout, matches, r, now())
	return nil
}
