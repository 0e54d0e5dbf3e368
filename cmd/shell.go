package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-arena-metrics/internal/aggregator"
	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/report"
	"github.com/pable/go-arena-metrics/internal/roster"
	"github.com/pable/go-arena-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Load the roster and match log once and query them interactively. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds the snapshot the REPL answers from.
type shellSession struct {
	roster  *roster.Roster
	matches []model.Match
}

func (s *shellSession) reload() error {
	r, matches, err := loadAll()
	if err != nil {
		return err
	}
	s.roster, s.matches = r, matches
	return nil
}

func runShell(_ *cobra.Command, _ []string) error {
	s := &shellSession{}
	if err := s.reload(); err != nil {
		return err
	}

	cGreeting.Println("arenametrics shell")
	cMuted.Printf("%d players, %d matches; type 'help' or 'exit'\n", s.roster.Len(), len(s.matches))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("arena")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := s.exec(line); err != nil {
			if errors.Is(err, errShellExit) {
				return nil
			}
			cError.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

var errShellExit = errors.New("exit")

func (s *shellSession) exec(line string) error {
	tokens := strings.Fields(line)
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "exit", "quit":
		return errShellExit
	case "help":
		shellHelp()
	case "reload":
		if err := s.reload(); err != nil {
			return err
		}
		cMuted.Printf("%d players, %d matches\n", s.roster.Len(), len(s.matches))
	case "list":
		report.PrintMatchList(os.Stdout, s.matches, s.roster, now())
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show <index|last>")
		}
		idx, err := matchIndex(args[0], len(s.matches))
		if err != nil {
			return err
		}
		summary, err := s.matches[idx].Summary(s.roster, cfg.Venue)
		if err != nil {
			return err
		}
		report.PrintMatchSummary(os.Stdout, summary)
		fmt.Printf("Outcome   : %s\n", s.matches[idx].Outcome)
	case "player":
		if len(args) == 0 {
			return fmt.Errorf("usage: player <id|alias> [...]")
		}
		players, err := resolvePlayers(s.roster, args)
		if err != nil {
			return err
		}
		standings := make([]model.PlayerStanding, len(players))
		for i, p := range players {
			standings[i] = model.PlayerStanding{Player: p, Stats: aggregator.PlayerStats(p.ID, s.matches)}
		}
		report.PrintPlayerTable(os.Stdout, standings)
	case "trend":
		if len(args) != 1 {
			return fmt.Errorf("usage: trend <id|alias>")
		}
		players, err := resolvePlayers(s.roster, args)
		if err != nil {
			return err
		}
		report.PrintHistory(os.Stdout, players[0], aggregator.History(players[0].ID, s.matches))
	case "leaderboard":
		report.PrintLeaderboard(os.Stdout, aggregator.Leaderboard(s.roster.Players(), s.matches))
	case "chemistry":
		switch len(args) {
		case 0:
			players := s.roster.Players()
			report.PrintChemistryMatrix(os.Stdout, players, aggregator.ChemistryMatrix(players, s.matches))
		case 2:
			pair, err := resolvePlayers(s.roster, args)
			if err != nil {
				return err
			}
			report.PrintChemistry(os.Stdout, pair[0], pair[1], aggregator.Chemistry(pair[0].ID, pair[1].ID, s.matches))
		default:
			return fmt.Errorf("usage: chemistry [<a> <b>]")
		}
	case "sql":
		if len(args) == 0 {
			return fmt.Errorf("usage: sql <query>")
		}
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return printQuery(db, strings.TrimSpace(strings.TrimPrefix(line, cmd)))
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all matches, newest first"},
		{"show <index|last>", "show one match"},
		{"player <id|alias> [...]", "stats for one or more players"},
		{"trend <id|alias>", "a player's results over time"},
		{"leaderboard", "all players ranked by handicap"},
		{"chemistry [<a> <b>]", "pair stats, or the full matrix"},
		{"sql <query>", "query the SQLite mirror (run 'sync' first)"},
		{"reload", "re-read the roster and match log"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}
