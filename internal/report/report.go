package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-arena-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// PrintMatchSummary prints the announcement-style block for a match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\n%s\n\n", s)
}

// PrintPlayerTable prints one stats row per player in the given order.
func PrintPlayerTable(w io.Writer, standings []model.PlayerStanding) {
	table := newTable(w)
	table.Header("PLAYER", "ID", "PLAYED", "W", "L", "D", "HANDICAP", "FORM")
	for _, s := range standings {
		table.Append(cells(playerRow(s))...)
	}
	table.Render()
}

// PrintLeaderboard prints standings with a rank column. Players without a
// played match are listed last without a rank.
func PrintLeaderboard(w io.Writer, standings []model.PlayerStanding) {
	table := newTable(w)
	table.Header("#", "PLAYER", "ID", "PLAYED", "W", "L", "D", "HANDICAP", "FORM")
	rank := 0
	for _, s := range standings {
		pos := "—"
		if s.Stats.Played > 0 {
			rank++
			pos = strconv.Itoa(rank)
		}
		table.Append(cells(append([]string{pos}, playerRow(s)...))...)
	}
	table.Render()
}

func playerRow(s model.PlayerStanding) []string {
	st := s.Stats
	return []string{
		s.Player.Alias,
		s.Player.ID,
		strconv.Itoa(st.Played),
		strconv.Itoa(st.Wins),
		strconv.Itoa(st.Losses),
		strconv.Itoa(st.Played - st.Wins - st.Losses),
		fmt.Sprintf("%+d", st.Handicap),
		Form(st.LastFive),
	}
}

// Form renders the last-five window as a compact string such as "??WLW".
func Form(results [5]model.Result) string {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.String())
	}
	return b.String()
}

// PrintChemistry prints the pair summary for two players.
func PrintChemistry(w io.Writer, a, b model.Player, c model.ChemistryStats) {
	table := newTable(w)
	table.Header("PAIR", "SHARED", "TOGETHER", "AGAINST", "WINS_TOGETHER", "WIN%")
	table.Append(
		a.Alias+" + "+b.Alias,
		strconv.Itoa(c.PlayedBoth),
		strconv.Itoa(c.PlayedTogether),
		strconv.Itoa(c.PlayedAgainst()),
		strconv.Itoa(c.WinsTogether),
		winRatio(c),
	)
	table.Render()
}

// PrintChemistryMatrix prints the win percentage of every pair when playing on
// the same side. Each cell also shows the number of matches played together.
func PrintChemistryMatrix(w io.Writer, players []model.Player, matrix [][]model.ChemistryStats) {
	table := newTable(w)
	header := make([]string, 0, len(players)+1)
	header = append(header, " ")
	for _, p := range players {
		header = append(header, p.Alias)
	}
	table.Header(cells(header)...)

	for i, p := range players {
		row := make([]string, 0, len(players)+1)
		row = append(row, p.Alias)
		for j := range players {
			if i == j {
				row = append(row, "·")
				continue
			}
			c := matrix[i][j]
			if c.PlayedTogether == 0 {
				row = append(row, "—")
				continue
			}
			row = append(row, fmt.Sprintf("%s (%d)", winRatio(c), c.PlayedTogether))
		}
		table.Append(cells(row)...)
	}
	table.Render()
}

func winRatio(c model.ChemistryStats) string {
	pct, ok := c.WinRatio()
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%d%%", pct)
}

// PrintMatchList prints matches newest first. The index column is the
// position in the log, as accepted by the show command.
func PrintMatchList(w io.Writer, matches []model.Match, roster model.Lookup, now time.Time) {
	table := newTable(w)
	table.Header("#", "DATE", "WHEN", "OUTCOME", "TEAM 1", "TEAM 2", "RECORDING")
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		rec := m.RecordingID
		if rec == "" {
			rec = "—"
		}
		table.Append(
			strconv.Itoa(i),
			m.Date.Format(model.DateLayout),
			humanize.RelTime(m.Date, now, "ago", "from now"),
			m.Outcome.String(),
			teamLabel(m.Team1, roster),
			teamLabel(m.Team2, roster),
			rec,
		)
	}
	table.Render()
}

// teamLabel joins aliases, falling back to the raw id for players missing
// from the roster.
func teamLabel(t model.Team, roster model.Lookup) string {
	names := make([]string, len(t.PlayerIDs))
	for i, id := range t.PlayerIDs {
		if p, ok := roster.Player(id); ok {
			names[i] = p.Alias
		} else {
			names[i] = id
		}
	}
	label := strings.Join(names, ", ")
	if t.Color != "" {
		label = "[" + t.Color + "] " + label
	}
	return label
}

// PrintHistory prints a player's played matches oldest first.
func PrintHistory(w io.Writer, p model.Player, history []model.HistoryEntry) {
	fmt.Fprintf(w, "\n--- %s (%s) ---\n\n", p.Alias, p.ID)
	table := newTable(w)
	table.Header("DATE", "SIDE", "OUTCOME", "RESULT", "HANDICAP")
	for _, e := range history {
		result := e.Result.String()
		if e.Outcome == model.OutcomeDraw {
			result = "D"
		}
		table.Append(
			e.Date.Format(model.DateLayout),
			strconv.Itoa(e.Side),
			e.Outcome.String(),
			result,
			fmt.Sprintf("%+d", e.Handicap),
		)
	}
	table.Render()
}

// PrintOverview prints log-wide counters followed by the most active players.
func PrintOverview(w io.Writer, ov model.Overview, next *model.Match, active []model.PlayerStanding, now time.Time) {
	fmt.Fprintf(w, "\n=== Match Log Summary ===\n\n")
	fmt.Fprintf(w, "  Players       : %s\n", humanize.Comma(int64(ov.Players)))
	fmt.Fprintf(w, "  Matches       : %s\n", humanize.Comma(int64(ov.Matches)))
	if ov.Matches > 0 {
		fmt.Fprintf(w, "  Date range    : %s → %s\n", ov.First.Format(model.DateLayout), ov.Last.Format(model.DateLayout))
	}
	if next != nil {
		fmt.Fprintf(w, "  Next match    : #%d %s (%s)\n", ov.NextIndex, next.Date.Format(model.DateLayout),
			humanize.RelTime(next.Date, now, "ago", "from now"))
	}

	fmt.Fprintf(w, "\n--- Outcomes ---\n\n")
	ot := newTable(w)
	ot.Header("OUTCOME", "MATCHES")
	for _, o := range []model.Outcome{
		model.OutcomeTeam1Winner, model.OutcomeTeam2Winner, model.OutcomeDraw,
		model.OutcomePending, model.OutcomeCancelled, model.OutcomeUnknown,
	} {
		ot.Append(o.String(), strconv.Itoa(ov.ByOutcome[o]))
	}
	ot.Render()

	if len(active) == 0 {
		return
	}
	fmt.Fprintf(w, "\n--- Most Active Players ---\n\n")
	PrintPlayerTable(w, active)
}
