package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SQLiteOpts struct {
	BusyTimeout time.Duration
	PingTimeout time.Duration
}

// schema is applied on every open so the storage file works on first run.
const schema = `
CREATE TABLE IF NOT EXISTS messages (
    id          TEXT PRIMARY KEY,
    sender      TEXT,
    content     TEXT,
    timestamp   TEXT,
    status      TEXT,
    is_verified INTEGER
);
`

// NewSQLiteConnection opens a *sqlx.DB over the pure-Go sqlite driver.
// The pool is pinned to a single connection: sqlite allows one writer at a
// time and a single-writer pool keeps per-record updates from interleaving.
func NewSQLiteConnection(path string, opts SQLiteOpts) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds()),
		"PRAGMA journal_mode = WAL",
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return conn, nil
}
