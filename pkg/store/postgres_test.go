package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/db"
	"walletpoker-server/pkg/poker/texasholdem"
)

func postgresOrSkip(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("WPS_PG_DSN")
	if dsn == "" {
		t.Skip("WPS_PG_DSN is not set")
	}

	conn, err := db.Open(dsn)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	t.Cleanup(func() { _ = conn.Close() })
	return NewPostgres(conn)
}

func TestPostgres(t *testing.T) {
	p := postgresOrSkip(t)
	a := assert.New(t)
	ctx := context.Background()

	tournamentID := uuid.New().String()
	snapshot := texasholdem.Snapshot{
		TournamentID: tournamentID,
		HandID:       uuid.New().String(),
		HandNumber:   1,
	}

	a.NoError(p.SyncState(ctx, snapshot))
	a.NoError(p.SyncState(ctx, snapshot))
	a.NoError(p.HandComplete(ctx, snapshot))
	a.NoError(p.HandComplete(ctx, snapshot))
	a.NoError(p.TournamentComplete(ctx, Summary{
		TournamentID: tournamentID,
		WinnerID:     "p0",
		Payouts:      map[string]int{"p0": 100, "p1": -100},
		HandsPlayed:  1,
		Standings:    []string{"p0", "p1"},
	}))

	var status, winnerID string
	row := p.db.QueryRowContext(ctx, "SELECT status, winner_id FROM tournaments WHERE id = $1", tournamentID)
	a.NoError(row.Scan(&status, &winnerID))
	a.Equal("complete", status)
	a.Equal("p0", winnerID)

	var position int
	row = p.db.QueryRowContext(ctx, "SELECT position FROM tournament_results WHERE tournament_id = $1 AND player_id = $2", tournamentID, "p1")
	a.NoError(row.Scan(&position))
	a.Equal(2, position)
}
