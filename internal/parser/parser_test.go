package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/roster"
)

var aliases = []string{
	"Pablo", "Sander", "Jo Han", "Mehmet", "Bram",
	"Niels", "Youssef", "Daan", "Lucas", "Ruben",
	"Thijs", "Kees",
}

func testRoster(t *testing.T) *roster.Roster {
	t.Helper()
	players := make([]model.Player, len(aliases))
	for i, a := range aliases {
		players[i] = model.Player{ID: fmt.Sprintf("p%d", i+1), Alias: a}
	}
	r, err := roster.New(players, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func announcement(header string, names ...string) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for i, n := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n)
	}
	return b.String()
}

func fixedClock() time.Time {
	return time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
}

func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	return New(testRoster(t), append([]Option{WithClock(fixedClock), WithLocation(time.UTC)}, opts...)...)
}

func TestParse_EndToEnd(t *testing.T) {
	p := newTestParser(t)

	res, err := p.Parse(announcement("Tuesday 14/05 @20:00", aliases[:10]...))
	require.NoError(t, err)

	m := res.Match
	assert.True(t, m.Date.Equal(time.Date(2024, 5, 14, 20, 0, 0, 0, time.UTC)), m.Date.String())
	assert.Equal(t, model.OutcomePending, m.Outcome)
	assert.Empty(t, m.RecordingID)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, m.Team1.PlayerIDs)
	assert.Equal(t, []string{"p6", "p7", "p8", "p9", "p10"}, m.Team2.PlayerIDs)
	assert.Equal(t, "black", m.Team1.Color)
	assert.Equal(t, "white", m.Team2.Color)
	assert.True(t, m.Team1.IsComplete())
	assert.True(t, m.Team2.IsComplete())
	assert.Empty(t, res.Unresolved)
	assert.Empty(t, res.Reserves)
}

func TestParse_NotEnoughPlayers(t *testing.T) {
	p := newTestParser(t)

	_, err := p.Parse(announcement("Tuesday 14/05 @20:00", aliases[:9]...))
	require.ErrorIs(t, err, model.ErrNotEnoughPlayers)
	assert.Contains(t, err.Error(), "9/10")
}

func TestParse_UnresolvedCascades(t *testing.T) {
	var buf bytes.Buffer
	p := newTestParser(t, WithLogger(zerolog.New(&buf)))

	names := append([]string{"Ghost"}, aliases[:9]...)
	_, err := p.Parse(announcement("Tuesday 14/05 @20:00", names...))
	require.ErrorIs(t, err, model.ErrNotEnoughPlayers)
	assert.Contains(t, buf.String(), "Ghost")
	assert.Contains(t, buf.String(), "player not found in roster")
}

func TestParse_UnresolvedSkipped(t *testing.T) {
	p := newTestParser(t)

	names := append([]string{"Ghost"}, aliases[:10]...)
	res, err := p.Parse(announcement("Tuesday 14/05 @20:00", names...))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ghost"}, res.Unresolved)
	assert.Equal(t, "p1", res.Match.Team1.PlayerIDs[0])
}

func TestParse_InvalidHeader(t *testing.T) {
	p := newTestParser(t)

	for _, header := range []string{
		"14/05 @20:00",
		"Tuesday 2024-05-14",
		"Matchmaking this week!",
		"Tuesday 31/02 @20:00",
		"Tuesday 14/13 @20:00",
		"Tuesday 14/05 @25:00",
		"Tuesday 14/05 @21.30",
		"Tuesday 14/05 @9pm",
		"Tuesday 14/05 @2130",
		"Tuesday 14/05 @20:00x",
		"Tuesday 14/05 at the pitch @ 20h",
	} {
		_, err := p.Parse(announcement(header, aliases[:10]...))
		require.ErrorIs(t, err, model.ErrInvalidDateFormat, header)
	}

	_, err := p.Parse("  \n\n")
	require.ErrorIs(t, err, model.ErrInvalidDateFormat)
}

func TestParse_DefaultKickoff(t *testing.T) {
	p := newTestParser(t, WithKickoff(19*time.Hour+30*time.Minute))

	res, err := p.Parse(announcement("Tuesday 14/05", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14T19:30", res.Match.Date.Format(model.DateLayout))
}

func TestParse_InvisibleCharacters(t *testing.T) {
	p := newTestParser(t)

	text := "\u2060Tuesday 14/05 @20:00\u2060\r\n"
	for i, a := range aliases[:10] {
		text += fmt.Sprintf("%d.\u2060 \u200b%s\u2060 \r\n", i+1, a)
	}
	res, err := p.Parse(text)
	require.NoError(t, err)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, "p10", res.Match.Team2.PlayerIDs[4])
}

func TestParse_CaseInsensitiveNames(t *testing.T) {
	p := newTestParser(t)

	names := make([]string, 10)
	for i, a := range aliases[:10] {
		if i%2 == 0 {
			names[i] = strings.ToUpper(a)
		} else {
			names[i] = "  " + strings.ToLower(a) + "  "
		}
	}
	res, err := p.Parse(announcement("tuesday 14/05 @20:00", names...))
	require.NoError(t, err)
	assert.Empty(t, res.Unresolved)
	assert.Equal(t, "p3", res.Match.Team1.PlayerIDs[2])
}

func TestParse_DuplicatesAndReserves(t *testing.T) {
	p := newTestParser(t)

	names := append([]string{"Pablo"}, aliases...)
	res, err := p.Parse(announcement("Tuesday 14/05 @20:00", names...))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, res.Match.Team1.PlayerIDs)
	require.Len(t, res.Reserves, 2)
	assert.Equal(t, "Thijs", res.Reserves[0].Alias)
	assert.Equal(t, "Kees", res.Reserves[1].Alias)
}

func TestParse_NonParticipantLinesIgnored(t *testing.T) {
	p := newTestParser(t)

	text := announcement("Tuesday 14/05 @20:00", aliases[:10]...) +
		"Reserves:\n" +
		"bring both shirts\n"
	res, err := p.Parse(text)
	require.NoError(t, err)
	assert.Empty(t, res.Unresolved)
}

func TestParse_TrailingTextAfterHeader(t *testing.T) {
	p := newTestParser(t)

	res, err := p.Parse(announcement("Tuesday 14/05 @21:30 see you there!", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14T21:30", res.Match.Date.Format(model.DateLayout))

	res, err = p.Parse(announcement("Tuesday 14/05 usual time", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14T20:00", res.Match.Date.Format(model.DateLayout))
}

func TestParse_DaylightSavingDays(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	p := newTestParser(t, WithLocation(amsterdam))

	for _, header := range []string{
		"Sunday 31/03 @20:00",
		"Sunday 27/10 @20:00",
		"Sunday 31/03",
		"Sunday 27/10",
	} {
		res, err := p.Parse(announcement(header, aliases[:10]...))
		require.NoError(t, err, header)
		d := res.Match.Date
		assert.Equal(t, amsterdam, d.Location(), header)
		assert.Equal(t, 20, d.Hour(), header)
		assert.Equal(t, 0, d.Minute(), header)
	}

	res, err := p.Parse(announcement("Sunday 31/03 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31T20:00", res.Match.Date.Format(model.DateLayout))

	res, err = p.Parse(announcement("Sunday 27/10 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-10-27T20:00", res.Match.Date.Format(model.DateLayout))
}

func TestParse_UnknownDayNameIsAWarning(t *testing.T) {
	var buf bytes.Buffer
	p := newTestParser(t, WithLogger(zerolog.New(&buf)))

	res, err := p.Parse(announcement("Dinsdag 14/05 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-14T20:00", res.Match.Date.Format(model.DateLayout))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "unrecognized day name")
}

func TestParse_WeekdayMismatchIsAWarning(t *testing.T) {
	var buf bytes.Buffer
	p := newTestParser(t, WithLogger(zerolog.New(&buf)))

	_, err := p.Parse(announcement("Friday 14/05 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "day of week does not match date")

	buf.Reset()
	_, err = p.Parse(announcement("Tue 14/05 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "day of week")
}

func TestParse_CustomSplitterAndColors(t *testing.T) {
	alternate := func(ps []model.Player) (a, b, rest []model.Player) {
		for i, pl := range ps[:model.MatchSize] {
			if i%2 == 0 {
				a = append(a, pl)
			} else {
				b = append(b, pl)
			}
		}
		return a, b, ps[model.MatchSize:]
	}
	p := newTestParser(t, WithSplitter(alternate), WithColors("red", "blue"))

	res, err := p.Parse(announcement("Tuesday 14/05 @20:00", aliases[:10]...))
	require.NoError(t, err)
	assert.Equal(t, "[red]p1_p3_p5_p7_p9", res.Match.Team1.String())
	assert.Equal(t, "[blue]p2_p4_p6_p8_p10", res.Match.Team2.String())
}

func TestParseFile(t *testing.T) {
	p := newTestParser(t)
	path := filepath.Join(t.TempDir(), "announcement.txt")
	require.NoError(t, os.WriteFile(path, []byte(announcement("Tuesday 14/05 @20:00", aliases[:10]...)), 0o644))

	res, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Match.Team1.PlayerIDs, 5)

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
