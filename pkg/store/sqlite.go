package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/texasholdem"

	_ "modernc.org/sqlite" // needed
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS tournaments (
    id           TEXT PRIMARY KEY,
    status       TEXT    NOT NULL DEFAULT 'running',
    winner_id    TEXT,
    hands_played INTEGER NOT NULL DEFAULT 0,
    snapshot     TEXT,
    created      TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated      TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, `
CREATE TABLE IF NOT EXISTS tournament_hands (
    id            TEXT PRIMARY KEY,
    tournament_id TEXT    NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
    hand_number   INTEGER NOT NULL,
    logs          TEXT    NOT NULL,
    created       TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (tournament_id, hand_number)
)`, `
CREATE TABLE IF NOT EXISTS tournament_results (
    tournament_id TEXT    NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
    player_id     TEXT    NOT NULL,
    position      INTEGER NOT NULL,
    net_chips     INTEGER NOT NULL,
    PRIMARY KEY (tournament_id, player_id)
)`}

// SQLite is a Store that writes to a local database file
type SQLite struct {
	db *sql.DB
}

var _ Store = &SQLite{}

// NewSQLite opens or creates the database at path and creates the tables it needs
// ":memory:" keeps the database in memory.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "." {
			if err := os.MkdirAll(parent, 0755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// a single connection, so ":memory:" is one database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	statements := append([]string{`PRAGMA busy_timeout = 5000`, `PRAGMA foreign_keys = ON`}, sqliteSchema...)
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &SQLite{db: db}, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SyncState implements Store
func (s *SQLite) SyncState(ctx context.Context, snapshot texasholdem.Snapshot) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO tournaments (id, hands_played, snapshot)
VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE
SET hands_played = excluded.hands_played, snapshot = excluded.snapshot, updated = CURRENT_TIMESTAMP`

	_, err = s.db.ExecContext(ctx, query, snapshot.TournamentID, snapshot.HandNumber, string(b))
	return err
}

// HandComplete implements Store
func (s *SQLite) HandComplete(ctx context.Context, snapshot texasholdem.Snapshot) error {
	b, err := json.Marshal(snapshot.Logs)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO tournament_hands (id, tournament_id, hand_number, logs)
VALUES (?, ?, ?, ?)
ON CONFLICT DO NOTHING`

	_, err = s.db.ExecContext(ctx, query, snapshot.HandID, snapshot.TournamentID, snapshot.HandNumber, string(b))
	return err
}

// TournamentComplete implements Store
func (s *SQLite) TournamentComplete(ctx context.Context, summary Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			if err := tx.Rollback(); err != nil {
				logrus.WithError(err).Error("could not rollback transaction")
			}
		}
	}()

	const query = `
UPDATE tournaments
SET status = 'complete', winner_id = ?, hands_played = ?, updated = CURRENT_TIMESTAMP
WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query, summary.WinnerID, summary.HandsPlayed, summary.TournamentID); err != nil {
		return err
	}

	for i, playerID := range summary.Standings {
		const insert = `
INSERT INTO tournament_results (tournament_id, player_id, position, net_chips)
VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, insert, summary.TournamentID, playerID, i+1, summary.Payouts[playerID]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}
