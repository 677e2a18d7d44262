package store

import (
	"context"

	"walletpoker-server/pkg/poker/texasholdem"
)

// Summary is the final result of a tournament
type Summary struct {
	TournamentID string `json:"tournamentId"`
	WinnerID     string `json:"winnerId"`
	// Payouts is the net change in chips for each player, rake included
	Payouts     map[string]int `json:"payouts"`
	HandsPlayed int            `json:"handsPlayed"`
	// Standings lists every player by finishing position, winner first
	Standings []string `json:"standings"`
	Rake      int      `json:"rake"`
}

// Store persists tournament state for the surrounding application
// Calls are made from their own goroutine and never block the table.
type Store interface {
	// SyncState records the latest public view of the table
	SyncState(ctx context.Context, snapshot texasholdem.Snapshot) error

	// HandComplete records a finished hand
	HandComplete(ctx context.Context, snapshot texasholdem.Snapshot) error

	// TournamentComplete records the final result
	TournamentComplete(ctx context.Context, summary Summary) error
}
