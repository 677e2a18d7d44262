package room

import (
	"time"

	"github.com/sirupsen/logrus"
)

// pendingHand is the next hand waiting for its timer
type pendingHand struct {
	// HandNumber is the hand that must still be the latest when the timer fires
	HandNumber int       `json:"handNumber"`
	Start      time.Time `json:"start"`
	timer      *time.Timer
}

// schedule arms a timer that deals the next hand after the configured delay
// NOTE: must only be called from the run loop
func (d *Dealer) schedule() {
	delay := d.pitBoss.options.NextHandDelay
	pending := &pendingHand{
		HandNumber: d.table.HandNumber(),
		Start:      time.Now().Add(delay),
	}

	pending.timer = time.AfterFunc(delay, func() {
		d.post(func() error {
			if d.pending != pending {
				return errStaleTimer
			}

			return d.startNextHand(pending.HandNumber)
		})
	})

	d.pending = pending
	d.logger.WithFields(logrus.Fields{
		"handNumber": pending.HandNumber,
		"delay":      delay.String(),
	}).Debug("next hand scheduled")
}

// cancelPending stops the timer of the next hand, if there is one
// NOTE: must only be called from the run loop
func (d *Dealer) cancelPending() {
	if d.pending == nil {
		return
	}

	d.pending.timer.Stop()
	d.pending = nil
}
