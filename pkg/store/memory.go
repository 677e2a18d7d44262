package store

import (
	"context"
	"sync"

	"walletpoker-server/pkg/poker/texasholdem"
)

// Memory is a Store that keeps everything in memory
type Memory struct {
	lock      sync.RWMutex
	snapshots map[string]texasholdem.Snapshot
	hands     map[string][]texasholdem.Snapshot
	summaries map[string]Summary
	syncs     int
}

var _ Store = &Memory{}

// NewMemory returns an empty Memory store
func NewMemory() *Memory {
	return &Memory{
		snapshots: make(map[string]texasholdem.Snapshot),
		hands:     make(map[string][]texasholdem.Snapshot),
		summaries: make(map[string]Summary),
	}
}

// SyncState implements Store
func (m *Memory) SyncState(ctx context.Context, snapshot texasholdem.Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.snapshots[snapshot.TournamentID] = snapshot
	m.syncs++
	return nil
}

// HandComplete implements Store
func (m *Memory) HandComplete(ctx context.Context, snapshot texasholdem.Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.hands[snapshot.TournamentID] = append(m.hands[snapshot.TournamentID], snapshot)
	return nil
}

// TournamentComplete implements Store
func (m *Memory) TournamentComplete(ctx context.Context, summary Summary) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.summaries[summary.TournamentID] = summary
	return nil
}

// Snapshot returns the last synced snapshot of a tournament
func (m *Memory) Snapshot(tournamentID string) (texasholdem.Snapshot, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	snapshot, ok := m.snapshots[tournamentID]
	return snapshot, ok
}

// Hands returns every completed hand of a tournament
func (m *Memory) Hands(tournamentID string) []texasholdem.Snapshot {
	m.lock.RLock()
	defer m.lock.RUnlock()

	hands := make([]texasholdem.Snapshot, len(m.hands[tournamentID]))
	copy(hands, m.hands[tournamentID])
	return hands
}

// Summary returns the result of a completed tournament
func (m *Memory) Summary(tournamentID string) (Summary, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	summary, ok := m.summaries[tournamentID]
	return summary, ok
}

// Syncs returns the number of SyncState calls
func (m *Memory) Syncs() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.syncs
}
