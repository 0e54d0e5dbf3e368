package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/config"
	"github.com/pable/go-arena-metrics/internal/logger"
	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/roster"
	"github.com/pable/go-arena-metrics/internal/tabular"
)

var (
	cfg *config.Config
	log = zerolog.Nop()
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "arenametrics",
	Short: "5-vs-5 match log and player statistics",
	Long: `Record weekly 5-vs-5 matches from the group chat announcement and
derive per-player and per-pair statistics from the match log.

The roster (players.csv) and the match log (matches.csv) live in the data
directory. Settings come from flags, ARENA_* environment variables, a .env
file, and an optional arenametrics.yaml.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./arenametrics.yaml or ~/.arenametrics/arenametrics.yaml)")
	pf.String("data-dir", "data", "directory holding players.csv and matches.csv")
	pf.String("db", "", "path to the SQLite mirror (default ~/.arenametrics/arena.db)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("timezone", "Local", "IANA time zone of match dates")

	rootCmd.AddCommand(matchmakingCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(chemistryCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	log = logger.New(c.LogLevel)
	log.Debug().
		Str("players", c.PlayersPath).
		Str("matches", c.MatchesPath).
		Str("timezone", c.Location.String()).
		Msg("config loaded")
	return nil
}

// loadRoster reads the players file named by the config.
func loadRoster() (*roster.Roster, error) {
	r, err := roster.Load(cfg.PlayersPath, log)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no roster at %s: create it with an \"id,alias\" header", cfg.PlayersPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return r, nil
}

// loadMatches reads the match log. A missing log is an empty history.
func loadMatches() ([]model.Match, error) {
	matches, err := tabular.ReadFile(cfg.MatchesPath, tabular.MatchesIn(cfg.Location))
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", cfg.MatchesPath).Msg("match log does not exist yet")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	return matches, nil
}

// loadAll reads both files.
func loadAll() (*roster.Roster, []model.Match, error) {
	r, err := loadRoster()
	if err != nil {
		return nil, nil, err
	}
	matches, err := loadMatches()
	if err != nil {
		return nil, nil, err
	}
	return r, matches, nil
}
