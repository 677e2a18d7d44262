package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/poker/texasholdem"
	"walletpoker-server/pkg/store"
)

// PitBoss is responsible for dispatching players to their tournament's dealer
type PitBoss struct {
	logger  logrus.FieldLogger
	store   store.Store
	options Options

	lock    sync.RWMutex
	dealers map[string]*Dealer
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, s store.Store, opts Options) *PitBoss {
	return &PitBoss{
		logger:  logger,
		store:   s,
		options: opts,
		dealers: make(map[string]*Dealer),
	}
}

// Start seats the players, deals the first hand and returns the table as an observer sees it
func (p *PitBoss) Start(ctx context.Context, tournamentID string, playerIDs []string, buyIn int, blinds Blinds) (texasholdem.Snapshot, error) {
	if tournamentID == "" {
		return texasholdem.Snapshot{}, UserError("tournament ID cannot be empty")
	}

	if n := len(playerIDs); n < p.options.MinPlayers || n > p.options.MaxPlayers {
		return texasholdem.Snapshot{}, fmt.Errorf("%w: %d players, need %d to %d", ErrTournamentSizeInvalid, n, p.options.MinPlayers, p.options.MaxPlayers)
	}

	opts := texasholdem.Options{
		SmallBlind:    blinds.Small,
		BigBlind:      blinds.Big,
		RemainderRule: p.options.RemainderRule,
	}

	table, err := texasholdem.NewTable(p.logger, uuid.New().String(), tournamentID, playerIDs, buyIn, opts)
	if err != nil {
		return texasholdem.Snapshot{}, UserError(err.Error())
	}

	p.lock.Lock()
	if _, found := p.dealers[tournamentID]; found {
		p.lock.Unlock()
		return texasholdem.Snapshot{}, ErrTournamentExists
	}

	dealer := NewDealer(p, table, buyIn)
	p.dealers[tournamentID] = dealer
	p.lock.Unlock()

	dealer.StartShift()

	var snapshot texasholdem.Snapshot
	err = dealer.exec(ctx, func() error {
		if err := dealer.startHand(); err != nil {
			return err
		}

		snapshot = table.Snapshot("")
		return nil
	})
	if err != nil {
		p.remove(tournamentID, dealer)
		dealer.EndShift()
		return texasholdem.Snapshot{}, err
	}

	p.logger.WithFields(logrus.Fields{
		"tournamentId": tournamentID,
		"tableId":      table.ID,
		"players":      len(playerIDs),
		"buyIn":        buyIn,
	}).Info("tournament started")

	return snapshot, nil
}

// Act applies a player's action and returns the table as that player sees it
func (p *PitBoss) Act(ctx context.Context, tournamentID, playerID string, act action.Action, amount int) (texasholdem.Snapshot, error) {
	dealer, err := p.dealer(tournamentID)
	if err != nil {
		return texasholdem.Snapshot{}, err
	}

	var snapshot texasholdem.Snapshot
	err = dealer.exec(ctx, func() error {
		var err error
		snapshot, err = dealer.act(playerID, act, amount)
		return err
	})

	return snapshot, err
}

// Query returns the table as viewerID sees it
// An empty viewerID is an observer and sees no hole cards until a showdown.
func (p *PitBoss) Query(ctx context.Context, tournamentID, viewerID string) (texasholdem.Snapshot, error) {
	dealer, err := p.dealer(tournamentID)
	if err != nil {
		return texasholdem.Snapshot{}, err
	}

	var snapshot texasholdem.Snapshot
	err = dealer.exec(ctx, func() error {
		snapshot = dealer.table.Snapshot(viewerID)
		return nil
	})

	return snapshot, err
}

// NextHandAt returns when the next hand is dealt
// Only players seated in the tournament can see the timer.
func (p *PitBoss) NextHandAt(ctx context.Context, tournamentID, playerID string) (time.Time, error) {
	dealer, err := p.dealer(tournamentID)
	if err != nil {
		return time.Time{}, err
	}

	var at time.Time
	err = dealer.exec(ctx, func() error {
		if err := dealer.requireSeat(playerID); err != nil {
			return err
		}

		if dealer.pending == nil {
			return ErrNoPendingHand
		}

		at = dealer.pending.Start
		return nil
	})

	return at, err
}

// CancelNextHand stops the timer for the next hand
// The hand can still be dealt with StartNextHand. Only seated players can cancel the timer.
func (p *PitBoss) CancelNextHand(ctx context.Context, tournamentID, playerID string) error {
	dealer, err := p.dealer(tournamentID)
	if err != nil {
		return err
	}

	return dealer.exec(ctx, func() error {
		if err := dealer.requireSeat(playerID); err != nil {
			return err
		}

		if dealer.pending == nil {
			return ErrNoPendingHand
		}

		dealer.cancelPending()
		return nil
	})
}

// StartNextHand deals the next hand without waiting for the timer
// Only seated players can deal early.
func (p *PitBoss) StartNextHand(ctx context.Context, tournamentID, playerID string) (texasholdem.Snapshot, error) {
	dealer, err := p.dealer(tournamentID)
	if err != nil {
		return texasholdem.Snapshot{}, err
	}

	var snapshot texasholdem.Snapshot
	err = dealer.exec(ctx, func() error {
		if err := dealer.requireSeat(playerID); err != nil {
			return err
		}

		if err := dealer.startNextHand(dealer.table.HandNumber()); err != nil {
			return err
		}

		snapshot = dealer.table.Snapshot("")
		return nil
	})

	return snapshot, err
}

// Shutdown stops every dealer and their timers
func (p *PitBoss) Shutdown() {
	p.lock.Lock()
	dealers := p.dealers
	p.dealers = make(map[string]*Dealer)
	p.lock.Unlock()

	for _, dealer := range dealers {
		dealer.EndShift()
	}

	for _, dealer := range dealers {
		dealer.Wait()
	}

	p.logger.WithField("tournaments", len(dealers)).Info("pit boss shut down")
}

func (p *PitBoss) dealer(tournamentID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, found := p.dealers[tournamentID]
	if !found {
		return nil, ErrTableNotFound
	}

	return dealer, nil
}

// remove deletes the tournament if dealer still runs it
func (p *PitBoss) remove(tournamentID string, dealer *Dealer) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[tournamentID] == dealer {
		delete(p.dealers, tournamentID)
	}
}
