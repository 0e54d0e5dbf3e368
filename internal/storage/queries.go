package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/go-arena-metrics/internal/model"
)

// Counts reports the number of rows in each mirrored table.
type Counts struct {
	Players     int
	Matches     int
	Appearances int
	PlayerStats int
}

// Sync replaces the mirror contents with the given snapshot in one transaction.
func (db *DB) Sync(players []model.Player, matches []model.Match, standings []model.PlayerStanding) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"match_players", "matches", "players", "player_stats"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertPlayers(tx, players); err != nil {
		return err
	}
	if err := insertMatches(tx, matches); err != nil {
		return err
	}
	if err := insertStandings(tx, standings); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPlayers(tx *sql.Tx, players []model.Player) error {
	stmt, err := tx.Prepare(`INSERT INTO players(id, alias) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Alias); err != nil {
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	return nil
}

func insertMatches(tx *sql.Tx, matches []model.Match) error {
	matchStmt, err := tx.Prepare(`
		INSERT INTO matches(idx, date, team_1, team_1_color, team_2, team_2_color, outcome, outcome_name, recording_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer matchStmt.Close()

	playerStmt, err := tx.Prepare(`
		INSERT INTO match_players(match_idx, player_id, side, slot) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	for i, m := range matches {
		_, err := matchStmt.Exec(
			i, m.Date.Format(model.DateLayout),
			strings.Join(m.Team1.PlayerIDs, model.ListSeparator), m.Team1.Color,
			strings.Join(m.Team2.PlayerIDs, model.ListSeparator), m.Team2.Color,
			m.Outcome.Code(), m.Outcome.String(), nullString(m.RecordingID),
		)
		if err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
		for side, team := range []model.Team{m.Team1, m.Team2} {
			for slot, id := range team.PlayerIDs {
				if _, err := playerStmt.Exec(i, id, side+1, slot); err != nil {
					return fmt.Errorf("insert match %d player %s: %w", i, id, err)
				}
			}
		}
	}
	return nil
}

func insertStandings(tx *sql.Tx, standings []model.PlayerStanding) error {
	stmt, err := tx.Prepare(`
		INSERT INTO player_stats(player_id, played, wins, losses, tournament_wins, handicap, last_five)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range standings {
		var form strings.Builder
		for _, r := range s.Stats.LastFive {
			form.WriteString(r.String())
		}
		st := s.Stats
		if _, err := stmt.Exec(s.Player.ID, st.Played, st.Wins, st.Losses, st.TournamentWins, st.Handicap, form.String()); err != nil {
			return fmt.Errorf("insert stats %s: %w", s.Player.ID, err)
		}
	}
	return nil
}

// Counts returns the row count of every mirrored table.
func (db *DB) Counts() (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"players", &c.Players},
		{"matches", &c.Matches},
		{"match_players", &c.Appearances},
		{"player_stats", &c.PlayerStats},
	} {
		if err := db.conn.QueryRow("SELECT COUNT(1) FROM " + q.table).Scan(q.dst); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return c, nil
}

// QueryRaw runs an arbitrary query and returns the column names and every row
// rendered as strings. NULL becomes an empty string.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
