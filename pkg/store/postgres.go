package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/texasholdem"
)

// Postgres is a Store backed by the tables in sql/
type Postgres struct {
	db *sql.DB
}

var _ Store = &Postgres{}

// NewPostgres returns a Store that writes to db
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// SyncState implements Store
func (p *Postgres) SyncState(ctx context.Context, snapshot texasholdem.Snapshot) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO tournaments (id, hands_played, snapshot)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE
SET hands_played = EXCLUDED.hands_played, snapshot = EXCLUDED.snapshot, updated = NOW()`

	_, err = p.db.ExecContext(ctx, query, snapshot.TournamentID, snapshot.HandNumber, b)
	return err
}

// HandComplete implements Store
func (p *Postgres) HandComplete(ctx context.Context, snapshot texasholdem.Snapshot) error {
	b, err := json.Marshal(snapshot.Logs)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO tournament_hands (id, tournament_id, hand_number, logs)
VALUES ($1, $2, $3, $4)
ON CONFLICT DO NOTHING`

	_, err = p.db.ExecContext(ctx, query, snapshot.HandID, snapshot.TournamentID, snapshot.HandNumber, b)
	return err
}

// TournamentComplete implements Store
func (p *Postgres) TournamentComplete(ctx context.Context, summary Summary) error {
	tx, err := p.db.BeginTx(ctx, nil)
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
SET status = 'complete', winner_id = $1, hands_played = $2, updated = NOW()
WHERE id = $3`

	if _, err := tx.ExecContext(ctx, query, summary.WinnerID, summary.HandsPlayed, summary.TournamentID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO tournament_results (tournament_id, player_id, position, net_chips)
VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, playerID := range summary.Standings {
		if _, err := stmt.ExecContext(ctx, summary.TournamentID, playerID, i+1, summary.Payouts[playerID]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}
