package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the SQLite mirror from the roster and match log",
	Long: `Replace the contents of the SQLite mirror with the current roster, match
log and per-player stats so they can be explored with 'arenametrics sql'.
The CSV files are never modified.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players := r.Players()
	if err := db.Sync(players, matches, aggregator.Leaderboard(players, matches)); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	c, err := db.Counts()
	if err != nil {
		return err
	}
	log.Info().
		Str("db", cfg.DBPath).
		Int("players", c.Players).
		Int("matches", c.Matches).
		Int("appearances", c.Appearances).
		Msg("mirror rebuilt")
	fmt.Fprintf(os.Stdout, "Synced %d players and %d matches to %s\n", c.Players, c.Matches, cfg.DBPath)
	return nil
}
