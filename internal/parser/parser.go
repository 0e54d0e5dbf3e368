// Package parser turns a free-text match announcement into a pending Match.
//
// The expected layout is a header line "<DayOfWeek> <DD/MM> @<HH:MM>" followed
// by one "<position>. <name>" line per participant, as posted in the group chat.
package parser

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/pable/go-arena-metrics/internal/model"
)

var (
	rxHeader      = regexp.MustCompile(`^(\p{L}+)\s+(\d{1,2})/(\d{1,2})(?:\s+@\s*(\d{1,2}):(\d{2})\b)?(.*)$`)
	rxParticipant = regexp.MustCompile(`^(\d+)\.?[^\p{L}\p{N}]*\s(.+)$`)
)

// Roster resolves announcement names to players.
type Roster interface {
	ByAlias(name string) (model.Player, bool)
}

// Splitter divides the resolved participants into two teams. Players it does
// not place are returned as reserves.
type Splitter func(players []model.Player) (team1, team2, reserves []model.Player)

// FirstTen puts the first five players on team 1 and the next five on team 2.
func FirstTen(players []model.Player) (team1, team2, reserves []model.Player) {
	return players[:model.TeamSize], players[model.TeamSize:model.MatchSize], players[model.MatchSize:]
}

// Result is a parsed announcement.
type Result struct {
	Match      model.Match
	Unresolved []string
	Reserves   []model.Player
}

// Parser holds the roster and parsing settings. It never writes to the log.
type Parser struct {
	roster  Roster
	log     zerolog.Logger
	split   Splitter
	colors  [2]string
	loc     *time.Location
	kickoff time.Duration
	now     func() time.Time
}

// Option customizes a Parser.
type Option func(*Parser)

// WithColors sets the tags given to team 1 and team 2.
func WithColors(team1, team2 string) Option {
	return func(p *Parser) { p.colors = [2]string{team1, team2} }
}

// WithLocation sets the time zone the announcement is written in.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithKickoff sets the time of day used when the header omits "@HH:MM".
func WithKickoff(offset time.Duration) Option {
	return func(p *Parser) { p.kickoff = offset }
}

// WithClock replaces time.Now; the year of the match is taken from it.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

func WithSplitter(s Splitter) Option {
	return func(p *Parser) { p.split = s }
}

func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// New returns a Parser resolving names against roster.
func New(roster Roster, opts ...Option) *Parser {
	p := &Parser{
		roster:  roster,
		log:     zerolog.Nop(),
		split:   FirstTen,
		colors:  [2]string{"black", "white"},
		loc:     time.Local,
		kickoff: 20 * time.Hour,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the announcement at path.
func (p *Parser) ParseFile(path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read announcement: %w", err)
	}
	return p.Parse(string(raw))
}

// Parse builds a pending match from the announcement text.
func (p *Parser) Parse(text string) (Result, error) {
	lines := nonEmptyLines(clean(text))
	if len(lines) == 0 {
		return Result{}, fmt.Errorf("%w: empty announcement", model.ErrInvalidDateFormat)
	}

	date, err := p.parseHeader(lines[0])
	if err != nil {
		return Result{}, err
	}

	var (
		res     Result
		players []model.Player
		seen    = make(map[string]struct{})
	)
	for _, line := range lines[1:] {
		m := rxParticipant.FindStringSubmatch(line)
		if m == nil {
			p.log.Debug().Str("line", line).Msg("skipping non-participant line")
			continue
		}
		name := strings.TrimSpace(m[2])
		player, ok := p.roster.ByAlias(name)
		if !ok {
			p.log.Warn().
				Err(model.ErrUnresolvedPlayer).
				Str("position", m[1]).
				Str("name", name).
				Msg("player not found in roster")
			res.Unresolved = append(res.Unresolved, name)
			continue
		}
		if _, dup := seen[player.ID]; dup {
			p.log.Warn().Str("player", player.ID).Str("position", m[1]).Msg("player listed twice")
			continue
		}
		seen[player.ID] = struct{}{}
		players = append(players, player)
	}

	if len(players) < model.MatchSize {
		return Result{}, fmt.Errorf("%w: found %d/%d", model.ErrNotEnoughPlayers, len(players), model.MatchSize)
	}

	team1, team2, reserves := p.split(players)
	res.Match = model.Match{
		Date:    date,
		Team1:   model.NewTeam(p.colors[0], team1...),
		Team2:   model.NewTeam(p.colors[1], team2...),
		Outcome: model.OutcomePending,
	}
	res.Reserves = reserves
	if len(reserves) > 0 {
		p.log.Info().Int("reserves", len(reserves)).Msg("more players than slots")
	}
	return res, nil
}

func (p *Parser) parseHeader(line string) (time.Time, error) {
	m := rxHeader.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrInvalidDateFormat, line)
	}
	day, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])

	// Anything after the date that still carries an @ is a kickoff time
	// we could not read.
	if strings.Contains(m[6], "@") {
		return time.Time{}, fmt.Errorf("%w: unreadable time in %q", model.ErrInvalidDateFormat, line)
	}

	hour := int(p.kickoff / time.Hour)
	minute := int(p.kickoff % time.Hour / time.Minute)
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("%w: time out of range in %q", model.ErrInvalidDateFormat, line)
		}
	}

	year := p.now().In(p.loc).Year()
	if d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc); d.Day() != day || int(d.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: no such date %02d/%02d", model.ErrInvalidDateFormat, day, month)
	}
	date := time.Date(year, time.Month(month), day, hour, minute, 0, 0, p.loc)

	if wd, ok := weekday(m[1]); !ok {
		p.log.Warn().Str("day", m[1]).Msg("unrecognized day name, weekday not checked")
	} else if wd != date.Weekday() {
		p.log.Warn().
			Str("day", m[1]).
			Str("date", date.Format(model.DateLayout)).
			Msg("day of week does not match date")
	}
	return date, nil
}

// weekday accepts English day names and their three-letter abbreviations.
func weekday(word string) (time.Weekday, bool) {
	if len(word) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if len(word) <= len(name) && strings.EqualFold(word, name[:len(word)]) {
			return d, true
		}
	}
	return 0, false
}

// invisible drops format characters (zero-width spaces, word joiners, BOMs)
// and turns no-break spaces into plain ones.
func invisible() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.In(unicode.Cf)),
		runes.Map(func(r rune) rune {
			if r == '\u00a0' || r == '\u202f' {
				return ' '
			}
			return r
		}),
	)
}

func clean(text string) string {
	out, _, err := transform.String(invisible(), text)
	if err != nil {
		return text
	}
	return out
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
