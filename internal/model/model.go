package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// TeamSize is the number of players on a complete team.
	TeamSize = 5
	// MatchSize is the number of players needed to fill both teams.
	MatchSize = 2 * TeamSize

	// DateLayout is the minute-precision timestamp format used by the match log.
	DateLayout = "2006-01-02T15:04"
)

// Player is a roster entry. Identity is the ID; Alias is the display name.
type Player struct {
	ID    string
	Alias string
}

// Lookup resolves player ids against a roster.
type Lookup interface {
	Player(id string) (Player, bool)
}

// Outcome is the result code of a match, serialized as a single character.
type Outcome string

const (
	OutcomePending     Outcome = "0"
	OutcomeTeam1Winner Outcome = "1"
	OutcomeTeam2Winner Outcome = "2"
	OutcomeDraw        Outcome = "3"
	OutcomeCancelled   Outcome = "4"
	OutcomeUnknown     Outcome = "9"
)

// ParseOutcome validates a single-character outcome code.
func ParseOutcome(code string) (Outcome, error) {
	switch o := Outcome(strings.TrimSpace(code)); o {
	case OutcomePending, OutcomeTeam1Winner, OutcomeTeam2Winner,
		OutcomeDraw, OutcomeCancelled, OutcomeUnknown:
		return o, nil
	default:
		return "", fmt.Errorf("%w: unknown outcome code %q", ErrMalformedRecord, code)
	}
}

// Code returns the wire representation of the outcome.
func (o Outcome) Code() string {
	return string(o)
}

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "PENDING"
	case OutcomeTeam1Winner:
		return "TEAM_1_WINNER"
	case OutcomeTeam2Winner:
		return "TEAM_2_WINNER"
	case OutcomeDraw:
		return "DRAW"
	case OutcomeCancelled:
		return "CANCELLED"
	case OutcomeUnknown:
		return "UNKNOWN"
	default:
		return "?"
	}
}

// winningSide returns 1 or 2 for a decisive outcome, 0 otherwise.
func (o Outcome) winningSide() int {
	switch o {
	case OutcomeTeam1Winner:
		return 1
	case OutcomeTeam2Winner:
		return 2
	default:
		return 0
	}
}

// ---- Derived statistics ----

// Result is one entry of a player's recent form.
type Result int8

const (
	ResultUnknown Result = iota
	ResultWin
	// ResultLoss covers every played match the player did not win, draws included.
	ResultLoss
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "W"
	case ResultLoss:
		return "L"
	default:
		return "?"
	}
}

// PlayerStats holds a player's aggregates over the whole match history.
type PlayerStats struct {
	Played         int
	Wins           int
	Losses         int
	TournamentWins int
	Handicap       int // Wins - Losses
	// LastFive is ordered oldest to newest, left-padded with ResultUnknown.
	LastFive [5]Result
}

// PlayerStanding pairs a player with their stats for leaderboard views.
type PlayerStanding struct {
	Player Player
	Stats  PlayerStats
}

// ChemistryStats describes how two players fare across every match listing them both.
type ChemistryStats struct {
	ID             string // "<a>-<b>"
	PlayedBoth     int
	PlayedTogether int
	WinsTogether   int
}

// PlayedAgainst is the number of shared matches spent on opposite sides.
func (c ChemistryStats) PlayedAgainst() int {
	return c.PlayedBoth - c.PlayedTogether
}

// WinRatio returns the rounded percentage of wins when playing together.
// ok is false when the pair never played on the same side.
func (c ChemistryStats) WinRatio() (pct int, ok bool) {
	if c.PlayedTogether == 0 {
		return 0, false
	}
	return int(math.RoundToEven(float64(c.WinsTogether) / float64(c.PlayedTogether) * 100)), true
}

// MatchSummary is a display-ready view of a match with aliases resolved.
type MatchSummary struct {
	Date  time.Time
	Venue string
	Team1 []string
	Team2 []string
}

// String renders the multi-line "date venue / team 1 / vs / team 2" block.
func (s MatchSummary) String() string {
	var b strings.Builder
	b.WriteString(s.Date.Format(DateLayout))
	if s.Venue != "" {
		b.WriteString(" ")
		b.WriteString(s.Venue)
	}
	b.WriteString("\n")
	b.WriteString(joinAliases(s.Team1))
	b.WriteString("\nvs\n")
	b.WriteString(joinAliases(s.Team2))
	return b.String()
}

func joinAliases(aliases []string) string {
	sorted := append([]string(nil), aliases...)
	sort.Strings(sorted)
	return strings.Join(sorted, " • ")
}

// HistoryEntry is one played match from a single player's point of view.
type HistoryEntry struct {
	Date     time.Time
	Side     int
	Outcome  Outcome
	Result   Result
	Handicap int // running Wins - Losses up to and including this match
}

// Overview summarizes the whole match log.
type Overview struct {
	Players   int
	Matches   int
	ByOutcome map[Outcome]int
	First     time.Time // zero when the log is empty
	Last      time.Time
	// NextIndex is the log position of the earliest playable match, or -1.
	NextIndex int
}
