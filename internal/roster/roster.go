// Package roster indexes the player list by id and by display alias.
package roster

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/pable/go-arena-metrics/internal/model"
	"github.com/pable/go-arena-metrics/internal/tabular"
)

// Roster is an immutable snapshot of the players file.
type Roster struct {
	players []model.Player
	byID    map[string]int
	byAlias map[string]int
}

// Load reads the players file at path.
func Load(path string, log zerolog.Logger) (*Roster, error) {
	players, err := tabular.ReadFile(path, tabular.Players)
	if err != nil {
		return nil, err
	}
	return New(players, log)
}

// New indexes players in the given order. Duplicate ids are rejected; a
// duplicate alias is logged and the first player keeps it.
func New(players []model.Player, log zerolog.Logger) (*Roster, error) {
	r := &Roster{
		players: make([]model.Player, 0, len(players)),
		byID:    make(map[string]int, len(players)),
		byAlias: make(map[string]int, len(players)),
	}
	for _, p := range players {
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %q", model.ErrMalformedRecord, p.ID)
		}
		idx := len(r.players)
		r.players = append(r.players, p)
		r.byID[p.ID] = idx

		key := foldAlias(p.Alias)
		if key == "" {
			log.Warn().Str("id", p.ID).Msg("player has no alias")
			continue
		}
		if prev, dup := r.byAlias[key]; dup {
			log.Warn().
				Str("alias", p.Alias).
				Str("kept", r.players[prev].ID).
				Str("ignored", p.ID).
				Msg("duplicate alias in roster")
			continue
		}
		r.byAlias[key] = idx
	}
	log.Debug().Int("players", len(r.players)).Msg("roster loaded")
	return r, nil
}

// Player implements model.Lookup.
func (r *Roster) Player(id string) (model.Player, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return model.Player{}, false
	}
	return r.players[idx], true
}

// ByAlias finds a player by display name, ignoring case and surrounding space.
func (r *Roster) ByAlias(name string) (model.Player, bool) {
	idx, ok := r.byAlias[foldAlias(name)]
	if !ok {
		return model.Player{}, false
	}
	return r.players[idx], true
}

// Resolve accepts either a player id or an alias.
func (r *Roster) Resolve(key string) (model.Player, bool) {
	if p, ok := r.Player(strings.TrimSpace(key)); ok {
		return p, true
	}
	return r.ByAlias(key)
}

// Players returns the roster in file order.
func (r *Roster) Players() []model.Player {
	return append([]model.Player(nil), r.players...)
}

func (r *Roster) Len() int {
	return len(r.players)
}

func foldAlias(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
