package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/poker/potmanager"
	"walletpoker-server/pkg/poker/texasholdem"
	"walletpoker-server/pkg/store"
)

// Dealer runs one tournament table
// Every read and write of the table happens on the dealer's run loop, so the table itself needs
// no locking.
type Dealer struct {
	pitBoss *PitBoss
	table   *texasholdem.Table
	logger  logrus.FieldLogger
	buyIn   int

	execInRunLoop chan func()
	persist       *persistQueue
	close         chan bool
	closeOnce     sync.Once
	done          chan bool
	persisted     chan bool

	// only accessed from the run loop
	aborted  bool
	finished bool
	pending  *pendingHand
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *texasholdem.Table, buyIn int) *Dealer {
	return &Dealer{
		pitBoss: pitBoss,
		table:   table,
		logger: pitBoss.logger.WithFields(logrus.Fields{
			"tournamentId": table.TournamentID,
			"tableId":      table.ID,
		}),
		buyIn:         buyIn,
		execInRunLoop: make(chan func(), 256),
		persist:       newPersistQueue(),
		close:         make(chan bool),
		done:          make(chan bool),
		persisted:     make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.persistLoop()
	go d.runLoop()
}

// EndShift stops the run loop
// Jobs that have not started yet are dropped. Store calls already queued are still made.
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// Wait blocks until the run loop stopped and every queued store call returned
func (d *Dealer) Wait() {
	<-d.done
	<-d.persisted
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	defer func() {
		d.cancelPending()
		d.persist.close()
		close(d.done)
		d.logger.Debug("terminating dealer run loop")
	}()

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
			if d.finished {
				return
			}
		case <-d.close:
			return
		}
	}
}

func (d *Dealer) persistLoop() {
	defer close(d.persisted)
	for {
		job, ok := d.persist.pop()
		if !ok {
			return
		}

		job.fn()
	}
}

// exec runs fn on the run loop and waits for its result
func (d *Dealer) exec(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	job := func() {
		result <- d.protect(fn)
	}

	select {
	case d.execInRunLoop <- job:
	case <-d.done:
		return ErrTableNotFound
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-d.done:
		// the job may have been the one that finished the tournament
		select {
		case err := <-result:
			return err
		default:
			return ErrTableNotFound
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post runs fn on the run loop without waiting for it
func (d *Dealer) post(fn func() error) {
	job := func() {
		if err := d.protect(fn); err != nil && err != errStaleTimer {
			d.logger.WithError(err).Error("could not run job")
		}
	}

	select {
	case d.execInRunLoop <- job:
	case <-d.done:
	}
}

// protect runs fn unless the table was aborted, and aborts the table if fn panics
// NOTE: must only be called from the run loop
func (d *Dealer) protect(fn func() error) (err error) {
	if d.aborted {
		return ErrTableAborted
	}

	defer func() {
		if r := recover(); r != nil {
			d.abort(r)
			err = ErrTableAborted
		}
	}()

	return fn()
}

func (d *Dealer) abort(reason interface{}) {
	d.aborted = true
	d.cancelPending()
	d.logger.WithFields(logrus.Fields{
		"handNumber": d.table.HandNumber(),
		"panic":      fmt.Sprint(reason),
	}).Error("table aborted")
}

// queue hands a store call to the persist goroutine without waiting for the store
// NOTE: must only be called from the run loop
func (d *Dealer) queue(name string, fn func(ctx context.Context, s store.Store) error) {
	s := d.pitBoss.store
	if s == nil {
		return
	}

	timeout := d.pitBoss.options.StoreTimeout
	waiting := d.persist.push(name, func() {
		ctx, cancel := storeContext(timeout)
		defer cancel()

		if err := fn(ctx, s); err != nil {
			d.logger.WithError(err).WithField("call", name).Error("could not update store")
		}
	})

	if waiting == persistBacklogWarning {
		d.logger.WithField("waiting", waiting).Warn("store is falling behind")
	}
}

// storeContext bounds a store call; a zero timeout means no deadline
func storeContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), timeout)
}

// startHand deals the next hand
// NOTE: must only be called from the run loop
func (d *Dealer) startHand() error {
	if err := d.table.StartHand(d.pitBoss.options.Generator); err != nil {
		return err
	}

	d.afterTransition()
	return nil
}

// startNextHand deals the next hand if handNumber is still the latest hand
// NOTE: must only be called from the run loop
func (d *Dealer) startNextHand(handNumber int) error {
	if d.table.HandNumber() != handNumber {
		return errStaleTimer
	}

	d.cancelPending()
	return d.startHand()
}

// requireSeat returns ErrPlayerNotSeated unless the player has a seat, busted or not
// NOTE: must only be called from the run loop
func (d *Dealer) requireSeat(playerID string) error {
	if _, found := d.table.SeatForPlayer(playerID); !found {
		return ErrPlayerNotSeated
	}

	return nil
}

// act applies the player's action
// NOTE: must only be called from the run loop
func (d *Dealer) act(playerID string, act action.Action, amount int) (texasholdem.Snapshot, error) {
	seat, found := d.table.SeatForPlayer(playerID)
	if !found {
		return texasholdem.Snapshot{}, ErrPlayerNotSeated
	}

	if err := d.table.Apply(seat, act, amount); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"playerId": playerID,
			"action":   string(act),
			"amount":   amount,
		}).Debug("rejected action")
		return texasholdem.Snapshot{}, err
	}

	snapshot := d.table.Snapshot(playerID)
	d.afterTransition()
	return snapshot, nil
}

// afterTransition syncs the store and, when the hand is over, either schedules the next hand
// or ends the tournament
// NOTE: must only be called from the run loop
func (d *Dealer) afterTransition() {
	public := d.table.Snapshot("")
	d.queue(syncStateCall, func(ctx context.Context, s store.Store) error {
		return s.SyncState(ctx, public)
	})

	if d.table.Status() != texasholdem.StatusComplete {
		return
	}

	d.queue("HandComplete", func(ctx context.Context, s store.Store) error {
		return s.HandComplete(ctx, public)
	})

	if winner, over := d.table.Winner(); over {
		d.finish(winner)
		return
	}

	d.schedule()
}

// finish records the result and removes the tournament
// NOTE: must only be called from the run loop
func (d *Dealer) finish(winnerID string) {
	summary := d.summary(winnerID)
	d.queue("TournamentComplete", func(ctx context.Context, s store.Store) error {
		return s.TournamentComplete(ctx, summary)
	})

	d.finished = true
	d.pitBoss.remove(d.table.TournamentID, d)

	d.logger.WithFields(logrus.Fields{
		"winnerId":    winnerID,
		"handsPlayed": summary.HandsPlayed,
		"rake":        summary.Rake,
	}).Info("tournament complete")
}

// summary pays the prize pool, less the rake, to the winner
func (d *Dealer) summary(winnerID string) store.Summary {
	seats := d.table.Seats()
	prizePool := d.buyIn * len(seats)
	rake := potmanager.CalculateRake(prizePool, d.pitBoss.options.RakePercent)

	payouts := make(map[string]int, len(seats))
	for _, seat := range seats {
		payouts[seat.PlayerID] = -d.buyIn
	}

	payouts[winnerID] += prizePool - rake

	eliminated := d.table.EliminationOrder()
	standings := make([]string, 0, len(seats))
	standings = append(standings, winnerID)
	for i := len(eliminated) - 1; i >= 0; i-- {
		standings = append(standings, eliminated[i])
	}

	return store.Summary{
		TournamentID: d.table.TournamentID,
		WinnerID:     winnerID,
		Payouts:      payouts,
		HandsPlayed:  d.table.HandNumber(),
		Standings:    standings,
		Rake:         rake,
	}
}
