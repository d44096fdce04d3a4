// Package store persists session results to SQLite so benchmark runs
// can be compared across invocations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/edenlum/PokerLLM/internal/session"
)

// Store wraps a SQLite database holding sessions, per-player results
// and per-hand records.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: empty database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	started_at  TEXT    NOT NULL,
	duration_ms INTEGER NOT NULL,
	hands       INTEGER NOT NULL,
	fallbacks   INTEGER NOT NULL,
	busted      TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS session_players (
	session_id  TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	player      TEXT    NOT NULL,
	final_stack INTEGER NOT NULL,
	net_chips   INTEGER NOT NULL,
	fallbacks   INTEGER NOT NULL,
	PRIMARY KEY (session_id, player)
);

CREATE TABLE IF NOT EXISTS hands (
	session_id TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	num        INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	winners    TEXT    NOT NULL,
	pot        INTEGER NOT NULL,
	showdown   INTEGER NOT NULL,
	fallbacks  INTEGER NOT NULL,
	PRIMARY KEY (session_id, num)
);

CREATE INDEX IF NOT EXISTS idx_session_players_player ON session_players(player);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSession writes a completed session and all its hands in one
// transaction.
func (s *Store) SaveSession(ctx context.Context, res *session.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, duration_ms, hands, fallbacks, busted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.Start.UTC().Format(time.RFC3339Nano),
		res.Duration.Milliseconds(),
		len(res.Hands),
		res.Fallbacks,
		res.Busted,
	)
	if err != nil {
		return fmt.Errorf("store: insert session %s: %w", res.ID, err)
	}

	for name, stack := range res.FinalStacks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_players (session_id, player, final_stack, net_chips, fallbacks)
			 VALUES (?, ?, ?, ?, ?)`,
			res.ID, name, stack, res.NetChips[name], res.FallbacksBy[name],
		)
		if err != nil {
			return fmt.Errorf("store: insert player %s: %w", name, err)
		}
	}

	for _, h := range res.Hands {
		showdown := 0
		if h.Showdown {
			showdown = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO hands (session_id, num, seed, winners, pot, showdown, fallbacks)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.ID, h.Num, h.Seed, strings.Join(h.Winners, ","), h.Pot, showdown, h.Fallbacks,
		)
		if err != nil {
			return fmt.Errorf("store: insert hand %d: %w", h.Num, err)
		}
	}

	return tx.Commit()
}

// SessionSummary is the stored overview of one session.
type SessionSummary struct {
	ID        string
	Start     time.Time
	Duration  time.Duration
	Hands     int
	Fallbacks int
	Busted    string
	NetChips  map[string]int
}

// Session loads one stored session by id. Returns sql.ErrNoRows when
// the id is unknown.
func (s *Store) Session(ctx context.Context, id string) (*SessionSummary, error) {
	var (
		sum        SessionSummary
		startedAt  string
		durationMS int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, duration_ms, hands, fallbacks, busted FROM sessions WHERE id = ?`, id,
	).Scan(&sum.ID, &startedAt, &durationMS, &sum.Hands, &sum.Fallbacks, &sum.Busted)
	if err != nil {
		return nil, err
	}
	if sum.Start, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("store: bad started_at for %s: %w", id, err)
	}
	sum.Duration = time.Duration(durationMS) * time.Millisecond

	rows, err := s.db.QueryContext(ctx,
		`SELECT player, net_chips FROM session_players WHERE session_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sum.NetChips = make(map[string]int)
	for rows.Next() {
		var player string
		var net int
		if err := rows.Scan(&player, &net); err != nil {
			return nil, err
		}
		sum.NetChips[player] = net
	}
	return &sum, rows.Err()
}

// Hands loads the hand records of a stored session in play order.
func (s *Store) Hands(ctx context.Context, sessionID string) ([]session.HandRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT num, seed, winners, pot, showdown, fallbacks FROM hands
		 WHERE session_id = ? ORDER BY num`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []session.HandRecord
	for rows.Next() {
		var (
			h        session.HandRecord
			winners  string
			showdown int
		)
		if err := rows.Scan(&h.Num, &h.Seed, &winners, &h.Pot, &showdown, &h.Fallbacks); err != nil {
			return nil, err
		}
		if winners != "" {
			h.Winners = strings.Split(winners, ",")
		}
		h.Showdown = showdown == 1
		out = append(out, h)
	}
	return out, rows.Err()
}

// LeaderboardRow aggregates one player across every stored session.
type LeaderboardRow struct {
	Player    string
	NetChips  int
	Sessions  int
	Fallbacks int
}

// Leaderboard ranks all stored players by total net chips.
func (s *Store) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, SUM(net_chips), COUNT(*), SUM(fallbacks)
		 FROM session_players
		 GROUP BY player
		 ORDER BY SUM(net_chips) DESC, player`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Player, &r.NetChips, &r.Sessions, &r.Fallbacks); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
