package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-arena-metrics/internal/model"
)

var day0 = time.Date(2025, 1, 7, 20, 0, 0, 0, time.UTC)

// makeMatch builds a match on day0 + n weeks.
func makeMatch(week int, team1, team2 []string, outcome model.Outcome) model.Match {
	return model.Match{
		Date:    day0.AddDate(0, 0, 7*week),
		Team1:   model.Team{PlayerIDs: team1, Color: "black"},
		Team2:   model.Team{PlayerIDs: team2, Color: "white"},
		Outcome: outcome,
	}
}

var (
	blackIDs = []string{"a", "b", "c", "d", "e"}
	whiteIDs = []string{"f", "g", "h", "i", "j"}
)

// ---- PlayerStats ----

func TestPlayerStats_Basic(t *testing.T) {
	matches := []model.Match{
		makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
		makeMatch(1, blackIDs, whiteIDs, model.OutcomeTeam2Winner),
		makeMatch(2, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
		makeMatch(3, blackIDs, whiteIDs, model.OutcomePending),
		makeMatch(4, blackIDs, whiteIDs, model.OutcomeCancelled),
		makeMatch(5, whiteIDs, []string{"k", "l", "m", "n", "o"}, model.OutcomeTeam1Winner),
	}

	s := PlayerStats("a", matches)
	assert.Equal(t, 3, s.Played)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Handicap)
	assert.Equal(t, 0, s.TournamentWins)
	assert.Equal(t, [5]model.Result{
		model.ResultUnknown, model.ResultUnknown,
		model.ResultWin, model.ResultLoss, model.ResultWin,
	}, s.LastFive)
}

func TestPlayerStats_NoHistory(t *testing.T) {
	s := PlayerStats("nobody", []model.Match{makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner)})
	assert.Equal(t, model.PlayerStats{}, s)
	for _, r := range s.LastFive {
		assert.Equal(t, model.ResultUnknown, r)
	}
}

func TestPlayerStats_LastFiveIsNewestWindow(t *testing.T) {
	// Supplied newest first; the window still reads oldest to newest.
	var matches []model.Match
	outcomes := []model.Outcome{
		model.OutcomeTeam2Winner, // week 0, loss
		model.OutcomeTeam2Winner, // week 1, loss
		model.OutcomeTeam1Winner, // week 2, win
		model.OutcomeDraw,        // week 3, draw
		model.OutcomeTeam1Winner, // week 4, win
		model.OutcomeTeam2Winner, // week 5, loss
		model.OutcomeTeam1Winner, // week 6, win
	}
	for week := len(outcomes) - 1; week >= 0; week-- {
		matches = append(matches, makeMatch(week, blackIDs, whiteIDs, outcomes[week]))
	}

	s := PlayerStats("a", matches)
	assert.Equal(t, 7, s.Played)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 3, s.Losses)
	assert.Equal(t, 0, s.Handicap)
	assert.Equal(t, [5]model.Result{
		model.ResultWin, model.ResultLoss, model.ResultWin, model.ResultLoss, model.ResultWin,
	}, s.LastFive)
}

func TestPlayerStats_DrawCountsAsPlayedOnly(t *testing.T) {
	s := PlayerStats("f", []model.Match{makeMatch(0, blackIDs, whiteIDs, model.OutcomeDraw)})
	assert.Equal(t, 1, s.Played)
	assert.Equal(t, 0, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, model.ResultLoss, s.LastFive[4])
}

// ---- Chemistry ----

func TestChemistry(t *testing.T) {
	// a and b: together 4 times (3 wins, one loss), against twice.
	ab1 := []string{"a", "b", "c", "d", "e"}
	ab2 := []string{"f", "g", "h", "i", "j"}
	split1 := []string{"a", "c", "d", "e", "k"}
	split2 := []string{"b", "f", "g", "h", "i"}
	matches := []model.Match{
		makeMatch(0, ab1, ab2, model.OutcomeTeam1Winner),
		makeMatch(1, ab1, ab2, model.OutcomeTeam1Winner),
		makeMatch(2, ab2, ab1, model.OutcomeTeam2Winner),
		makeMatch(3, ab1, ab2, model.OutcomeTeam2Winner),
		makeMatch(4, split1, split2, model.OutcomeTeam1Winner),
		makeMatch(5, split2, split1, model.OutcomeDraw),
	}

	c := Chemistry("a", "b", matches)
	assert.Equal(t, "a-b", c.ID)
	assert.Equal(t, 6, c.PlayedBoth)
	assert.Equal(t, 4, c.PlayedTogether)
	assert.Equal(t, 2, c.PlayedAgainst())
	assert.Equal(t, 3, c.WinsTogether)
	pct, ok := c.WinRatio()
	require.True(t, ok)
	assert.Equal(t, 75, pct)

	rev := Chemistry("b", "a", matches)
	assert.Equal(t, "b-a", rev.ID)
	assert.Equal(t, c.PlayedBoth, rev.PlayedBoth)
	assert.Equal(t, c.WinsTogether, rev.WinsTogether)
}

func TestChemistry_CountsUndecidedMatches(t *testing.T) {
	matches := []model.Match{
		makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
		makeMatch(1, blackIDs, whiteIDs, model.OutcomePending),
		makeMatch(2, blackIDs, whiteIDs, model.OutcomeCancelled),
	}

	c := Chemistry("a", "b", matches)
	assert.Equal(t, 3, c.PlayedBoth)
	assert.Equal(t, 3, c.PlayedTogether)
	assert.Equal(t, 0, c.PlayedAgainst())
	assert.Equal(t, 1, c.WinsTogether)
	pct, ok := c.WinRatio()
	require.True(t, ok)
	assert.Equal(t, 33, pct)

	c = Chemistry("a", "f", matches)
	assert.Equal(t, 3, c.PlayedBoth)
	assert.Equal(t, 0, c.PlayedTogether)
	assert.Equal(t, 3, c.PlayedAgainst())
}

func TestChemistry_NeverTogether(t *testing.T) {
	c := Chemistry("a", "f", []model.Match{makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner)})
	assert.Equal(t, 1, c.PlayedBoth)
	assert.Equal(t, 0, c.PlayedTogether)
	assert.Equal(t, 1, c.PlayedAgainst())
	_, ok := c.WinRatio()
	assert.False(t, ok)
}

// ---- Leaderboard / matrix ----

func TestLeaderboard(t *testing.T) {
	players := []model.Player{
		{ID: "a", Alias: "Anna"},
		{ID: "f", Alias: "Finn"},
		{ID: "z", Alias: "Zoe"},
		{ID: "y", Alias: "Yara"},
	}
	matches := []model.Match{
		makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam2Winner),
		makeMatch(1, blackIDs, whiteIDs, model.OutcomeTeam2Winner),
		makeMatch(2, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
	}

	got := Leaderboard(players, matches)
	require.Len(t, got, 4)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.Player.ID
	}
	// f: +1, a: -1, y and z without matches ordered by alias.
	assert.Equal(t, []string{"f", "y", "z", "a"}, ids)
	assert.Equal(t, 1, got[0].Stats.Handicap)
	assert.Equal(t, -1, got[3].Stats.Handicap)
}

func TestChemistryMatrix(t *testing.T) {
	players := []model.Player{{ID: "a"}, {ID: "b"}, {ID: "f"}}
	matches := []model.Match{makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner)}

	m := ChemistryMatrix(players, matches)
	require.Len(t, m, 3)
	assert.Equal(t, "a-b", m[0][1].ID)
	assert.Equal(t, 1, m[0][1].WinsTogether)
	assert.Equal(t, 0, m[0][0].PlayedBoth)
	assert.Equal(t, 1, m[2][0].PlayedAgainst())
}

// ---- History / overview ----

func TestHistory(t *testing.T) {
	matches := []model.Match{
		makeMatch(2, whiteIDs, blackIDs, model.OutcomeDraw),
		makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
		makeMatch(1, blackIDs, whiteIDs, model.OutcomeTeam2Winner),
		makeMatch(3, whiteIDs, blackIDs, model.OutcomeTeam2Winner),
		makeMatch(4, blackIDs, whiteIDs, model.OutcomeCancelled),
	}

	h := History("a", matches)
	require.Len(t, h, 4)
	assert.Equal(t, []model.Result{model.ResultWin, model.ResultLoss, model.ResultLoss, model.ResultWin},
		[]model.Result{h[0].Result, h[1].Result, h[2].Result, h[3].Result})
	assert.Equal(t, []int{1, 0, 0, 1}, []int{h[0].Handicap, h[1].Handicap, h[2].Handicap, h[3].Handicap})
	assert.Equal(t, 2, h[3].Side)

	// The running handicap ends where PlayerStats does.
	assert.Equal(t, PlayerStats("a", matches).Handicap, h[len(h)-1].Handicap)
}

func TestOverview(t *testing.T) {
	now := day0.AddDate(0, 0, 15)
	matches := []model.Match{
		makeMatch(0, blackIDs, whiteIDs, model.OutcomeTeam1Winner),
		makeMatch(1, blackIDs, whiteIDs, model.OutcomeDraw),
		makeMatch(4, blackIDs, whiteIDs, model.OutcomePending),
		makeMatch(3, blackIDs, whiteIDs, model.OutcomePending),
		makeMatch(5, blackIDs, whiteIDs, model.OutcomeCancelled),
	}

	ov := Overview(12, matches, now)
	assert.Equal(t, 12, ov.Players)
	assert.Equal(t, 5, ov.Matches)
	assert.Equal(t, 2, ov.ByOutcome[model.OutcomePending])
	assert.Equal(t, 1, ov.ByOutcome[model.OutcomeDraw])
	assert.True(t, ov.First.Equal(day0))
	assert.True(t, ov.Last.Equal(day0.AddDate(0, 0, 35)))
	assert.Equal(t, 3, ov.NextIndex)

	empty := Overview(0, nil, now)
	assert.Equal(t, -1, empty.NextIndex)
	assert.True(t, empty.First.IsZero())
}
