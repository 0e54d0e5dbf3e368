// Package aggregator derives per-player and per-pair statistics from the match
// history. Every function is a pure scan of the slice it is given.
package aggregator

import (
	"sort"
	"time"

	"github.com/pable/go-arena-metrics/internal/model"
)

// PlayerStats computes a player's aggregates over matches.
func PlayerStats(playerID string, matches []model.Match) model.PlayerStats {
	// ---- Pass 1: played matches the player took part in, oldest first. ----

	var played []model.Match
	for _, m := range matches {
		if m.Has(playerID) && m.IsPlayed() {
			played = append(played, m)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Date.Before(played[j].Date)
	})

	// ---- Pass 2: counters. ----

	var s model.PlayerStats
	s.Played = len(played)
	results := make([]model.Result, 0, len(played))
	for _, m := range played {
		switch {
		case m.IsWinner(playerID):
			s.Wins++
			if m.IsTournamentMode() {
				s.TournamentWins++
			}
			results = append(results, model.ResultWin)
		case m.IsLoser(playerID):
			s.Losses++
			results = append(results, model.ResultLoss)
		default:
			// draw
			results = append(results, model.ResultLoss)
		}
	}
	s.Handicap = s.Wins - s.Losses

	// ---- Pass 3: recent form, right-aligned in the window. ----

	if len(results) > len(s.LastFive) {
		results = results[len(results)-len(s.LastFive):]
	}
	copy(s.LastFive[len(s.LastFive)-len(results):], results)
	return s
}

// Chemistry computes how players a and b fare in every match listing them
// both, whatever its outcome. Only decided wins count towards WinsTogether.
func Chemistry(a, b string, matches []model.Match) model.ChemistryStats {
	c := model.ChemistryStats{ID: a + "-" + b}
	for _, m := range matches {
		sideA, sideB := m.Side(a), m.Side(b)
		if sideA == 0 || sideB == 0 {
			continue
		}
		c.PlayedBoth++
		if sideA != sideB {
			continue
		}
		c.PlayedTogether++
		if m.IsWinner(a) {
			c.WinsTogether++
		}
	}
	return c
}

// Leaderboard returns one standing per player, best first: handicap, then
// wins, then matches played, then alias.
func Leaderboard(players []model.Player, matches []model.Match) []model.PlayerStanding {
	out := make([]model.PlayerStanding, len(players))
	for i, p := range players {
		out[i] = model.PlayerStanding{Player: p, Stats: PlayerStats(p.ID, matches)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Stats, out[j].Stats
		if a.Handicap != b.Handicap {
			return a.Handicap > b.Handicap
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Played != b.Played {
			return a.Played > b.Played
		}
		return out[i].Player.Alias < out[j].Player.Alias
	})
	return out
}

// ChemistryMatrix returns Chemistry for every ordered pair of distinct
// players, row-major in the order given.
func ChemistryMatrix(players []model.Player, matches []model.Match) [][]model.ChemistryStats {
	out := make([][]model.ChemistryStats, len(players))
	for i, a := range players {
		out[i] = make([]model.ChemistryStats, len(players))
		for j, b := range players {
			if i == j {
				out[i][j] = model.ChemistryStats{ID: a.ID + "-" + b.ID}
				continue
			}
			out[i][j] = Chemistry(a.ID, b.ID, matches)
		}
	}
	return out
}

// History lists the played matches of a player oldest first with the running
// handicap after each one.
func History(playerID string, matches []model.Match) []model.HistoryEntry {
	var played []model.Match
	for _, m := range matches {
		if m.Has(playerID) && m.IsPlayed() {
			played = append(played, m)
		}
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Date.Before(played[j].Date)
	})

	out := make([]model.HistoryEntry, len(played))
	handicap := 0
	for i, m := range played {
		e := model.HistoryEntry{Date: m.Date, Side: m.Side(playerID), Outcome: m.Outcome, Result: model.ResultLoss}
		switch {
		case m.IsWinner(playerID):
			e.Result = model.ResultWin
			handicap++
		case m.IsLoser(playerID):
			handicap--
		}
		e.Handicap = handicap
		out[i] = e
	}
	return out
}

// Overview counts matches per outcome and finds the date range and the next
// playable match.
func Overview(players int, matches []model.Match, now time.Time) model.Overview {
	ov := model.Overview{
		Players:   players,
		Matches:   len(matches),
		ByOutcome: make(map[model.Outcome]int),
		NextIndex: -1,
	}
	for i, m := range matches {
		ov.ByOutcome[m.Outcome]++
		if ov.First.IsZero() || m.Date.Before(ov.First) {
			ov.First = m.Date
		}
		if m.Date.After(ov.Last) {
			ov.Last = m.Date
		}
		if m.IsPlayable(now) && (ov.NextIndex < 0 || m.Date.Before(matches[ov.NextIndex].Date)) {
			ov.NextIndex = i
		}
	}
	return ov
}
