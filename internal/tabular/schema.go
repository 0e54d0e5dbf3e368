package tabular

import (
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-arena-metrics/internal/model"
)

// Players is the roster schema: id,alias. Ids and aliases are stored
// trimmed of surrounding whitespace, so only trimmed values round-trip as is.
var Players Schema[model.Player] = playerSchema{}

// Matches is the match log schema in the local time zone. Team cells and
// recording ids are stored trimmed, like player fields.
var Matches Schema[model.Match] = MatchesIn(time.Local)

type playerSchema struct{}

func (playerSchema) Columns() []string {
	return []string{"id", "alias"}
}

func (playerSchema) Encode(p model.Player) []string {
	return []string{strings.TrimSpace(p.ID), strings.TrimSpace(p.Alias)}
}

func (playerSchema) Decode(row Row) (model.Player, error) {
	id, err := row.Get("id")
	if err != nil {
		return model.Player{}, err
	}
	alias, err := row.Get("alias")
	if err != nil {
		return model.Player{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Player{}, fmt.Errorf("%w: empty player id", model.ErrMalformedRecord)
	}
	if strings.Contains(id, model.ListSeparator) {
		return model.Player{}, fmt.Errorf("%w: player id %q contains %q", model.ErrMalformedRecord, id, model.ListSeparator)
	}
	return model.Player{ID: id, Alias: strings.TrimSpace(alias)}, nil
}

type matchSchema struct {
	loc *time.Location
}

// MatchesIn returns a match schema that interprets dates in loc.
func MatchesIn(loc *time.Location) Schema[model.Match] {
	if loc == nil {
		loc = time.Local
	}
	return matchSchema{loc: loc}
}

func (matchSchema) Columns() []string {
	return []string{"date", "team_1", "team_2", "outcome", "recording_id"}
}

func (s matchSchema) Encode(m model.Match) []string {
	return []string{
		m.Date.In(s.loc).Format(model.DateLayout),
		m.Team1.String(),
		m.Team2.String(),
		m.Outcome.Code(),
		strings.TrimSpace(m.RecordingID),
	}
}

func (s matchSchema) Decode(row Row) (model.Match, error) {
	var cells [5]string
	for i, col := range s.Columns() {
		v, err := row.Get(col)
		if err != nil {
			return model.Match{}, err
		}
		cells[i] = v
	}

	date, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(cells[0]), s.loc)
	if err != nil {
		return model.Match{}, fmt.Errorf("%w: date %q: %v", model.ErrMalformedRecord, cells[0], err)
	}
	team1, err := model.ParseTeam(cells[1])
	if err != nil {
		return model.Match{}, fmt.Errorf("team_1: %w", err)
	}
	team2, err := model.ParseTeam(cells[2])
	if err != nil {
		return model.Match{}, fmt.Errorf("team_2: %w", err)
	}
	for _, id := range team1.PlayerIDs {
		if team2.Has(id) {
			return model.Match{}, fmt.Errorf("%w: player %q is on both teams", model.ErrMalformedRecord, id)
		}
	}
	outcome := model.OutcomePending
	if code := strings.TrimSpace(cells[3]); code != "" {
		if outcome, err = model.ParseOutcome(code); err != nil {
			return model.Match{}, err
		}
	}
	return model.Match{
		Date:        date,
		Team1:       team1,
		Team2:       team2,
		Outcome:     outcome,
		RecordingID: strings.TrimSpace(cells[4]),
	}, nil
}
