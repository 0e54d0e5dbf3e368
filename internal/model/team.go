package model

import (
	"fmt"
	"regexp"
	"strings"
)

// ListSeparator joins player ids inside a team cell.
const ListSeparator = "_"

var rxColorTag = regexp.MustCompile(`\[(.*?)\]`)

// Team is an ordered list of player ids with an optional display color.
// An empty Color means the team is untagged.
type Team struct {
	PlayerIDs []string
	Color     string
}

// NewTeam builds a tagged team from resolved players.
func NewTeam(color string, players ...Player) Team {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return Team{PlayerIDs: ids, Color: color}
}

// ParseTeam parses the wire form "[color]id1_id2_..." or "id1_id2_...".
func ParseTeam(s string) (Team, error) {
	var t Team
	raw := strings.TrimSpace(s)
	if loc := rxColorTag.FindStringSubmatchIndex(raw); loc != nil {
		t.Color = strings.TrimSpace(raw[loc[2]:loc[3]])
		raw = strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	}
	if raw == "" {
		return t, nil
	}

	seen := make(map[string]struct{})
	for _, id := range strings.Split(raw, ListSeparator) {
		id = strings.TrimSpace(id)
		if id == "" {
			return Team{}, fmt.Errorf("%w: empty player id in team %q", ErrMalformedRecord, s)
		}
		if _, dup := seen[id]; dup {
			return Team{}, fmt.Errorf("%w: duplicate player id %q in team %q", ErrMalformedRecord, id, s)
		}
		seen[id] = struct{}{}
		t.PlayerIDs = append(t.PlayerIDs, id)
	}
	return t, nil
}

// String returns the wire form. Untagged teams carry no bracket segment.
// Color and ids are written trimmed, the same way ParseTeam reads them.
func (t Team) String() string {
	ids := make([]string, len(t.PlayerIDs))
	for i, id := range t.PlayerIDs {
		ids[i] = strings.TrimSpace(id)
	}
	joined := strings.Join(ids, ListSeparator)
	color := strings.TrimSpace(t.Color)
	if color == "" {
		return joined
	}
	return "[" + color + "]" + joined
}

// Len returns the number of players on the team.
func (t Team) Len() int {
	return len(t.PlayerIDs)
}

// IsComplete reports whether the team has exactly TeamSize players.
func (t Team) IsComplete() bool {
	return len(t.PlayerIDs) == TeamSize
}

// Has reports whether the player id is on the team.
func (t Team) Has(playerID string) bool {
	for _, id := range t.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// Players resolves every id against the roster.
func (t Team) Players(roster Lookup) ([]Player, error) {
	out := make([]Player, 0, len(t.PlayerIDs))
	for _, id := range t.PlayerIDs {
		p, ok := roster.Player(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// Aliases resolves the team to display names.
func (t Team) Aliases(roster Lookup) ([]string, error) {
	players, err := t.Players(roster)
	if err != nil {
		return nil, err
	}
	aliases := make([]string, len(players))
	for i, p := range players {
		aliases[i] = p.Alias
	}
	return aliases, nil
}
