package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/poker/texasholdem"
)

func TestMemory(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Snapshot("t1")
	a.False(ok)

	a.NoError(m.SyncState(ctx, texasholdem.Snapshot{TournamentID: "t1", HandNumber: 1}))
	a.NoError(m.SyncState(ctx, texasholdem.Snapshot{TournamentID: "t1", HandNumber: 2}))
	snapshot, ok := m.Snapshot("t1")
	a.True(ok)
	a.Equal(2, snapshot.HandNumber)
	a.Equal(2, m.Syncs())

	a.NoError(m.HandComplete(ctx, texasholdem.Snapshot{TournamentID: "t1", HandNumber: 1}))
	hands := m.Hands("t1")
	a.Len(hands, 1)
	hands[0].HandNumber = 99
	a.Equal(1, m.Hands("t1")[0].HandNumber)
	a.Empty(m.Hands("t2"))

	a.NoError(m.TournamentComplete(ctx, Summary{TournamentID: "t1", WinnerID: "p0"}))
	summary, ok := m.Summary("t1")
	a.True(ok)
	a.Equal("p0", summary.WinnerID)
}
