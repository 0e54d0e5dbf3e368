package model

import (
	"fmt"
	"time"
)

// Match is one recorded 5-vs-5 game. Outcome is the only field that changes
// after creation; matches are never deleted from the log.
type Match struct {
	Date        time.Time
	Team1       Team
	Team2       Team
	Outcome     Outcome
	RecordingID string // empty when no recording exists
}

// IsFuture reports whether the match is scheduled strictly after now.
func (m Match) IsFuture(now time.Time) bool {
	return m.Date.After(now)
}

// IsPlayable reports whether both teams are complete, the match is in the
// future, and no outcome has been recorded yet.
func (m Match) IsPlayable(now time.Time) bool {
	return m.Team1.IsComplete() && m.Team2.IsComplete() &&
		m.IsFuture(now) &&
		m.Outcome == OutcomePending
}

// IsPlayed reports whether the match produced a result (win or draw).
func (m Match) IsPlayed() bool {
	switch m.Outcome {
	case OutcomeTeam1Winner, OutcomeTeam2Winner, OutcomeDraw:
		return true
	default:
		return false
	}
}

// IsWon reports whether one side won outright.
func (m Match) IsWon() bool {
	return m.Outcome.winningSide() != 0
}

// IsDone reports whether the match left the pending state, cancellations included.
func (m Match) IsDone() bool {
	return m.Outcome != OutcomePending
}

func (m Match) IsCancelled() bool {
	return m.Outcome == OutcomeCancelled
}

// IsTournamentMode is reserved; no data source marks tournament matches yet.
func (m Match) IsTournamentMode() bool {
	return false
}

// Side returns 1 or 2 for the team the player is on, 0 if absent.
func (m Match) Side(playerID string) int {
	switch {
	case m.Team1.Has(playerID):
		return 1
	case m.Team2.Has(playerID):
		return 2
	default:
		return 0
	}
}

// Has reports whether the player took part in the match.
func (m Match) Has(playerID string) bool {
	return m.Side(playerID) != 0
}

// IsWinner reports whether the player was on the winning side of a played match.
func (m Match) IsWinner(playerID string) bool {
	if !m.IsPlayed() {
		return false
	}
	side := m.Side(playerID)
	return side != 0 && side == m.Outcome.winningSide()
}

// IsLoser reports whether the player took part in a decisively won match and
// was not on the winning side.
func (m Match) IsLoser(playerID string) bool {
	if !m.IsWon() || !m.Has(playerID) {
		return false
	}
	return !m.IsWinner(playerID)
}

// Summary resolves both teams to aliases for display.
func (m Match) Summary(roster Lookup, venue string) (MatchSummary, error) {
	team1, err := m.Team1.Aliases(roster)
	if err != nil {
		return MatchSummary{}, fmt.Errorf("team 1: %w", err)
	}
	team2, err := m.Team2.Aliases(roster)
	if err != nil {
		return MatchSummary{}, fmt.Errorf("team 2: %w", err)
	}
	return MatchSummary{
		Date:  m.Date,
		Venue: venue,
		Team1: team1,
		Team2: team2,
	}, nil
}
