package texasholdem

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/handanalyzer"
	"walletpoker-server/pkg/poker/potmanager"
)

// afterAction moves the hand forward after a seat acted
func (t *Table) afterAction(seatIndex int) {
	if t.countSeats(func(s *Seat) bool { return s.Status.inHand() }) == 1 {
		t.awardUncontested()
		return
	}

	if t.isRoundComplete() {
		t.advanceRound()
		return
	}

	t.actingSeat = t.nextSeat(seatIndex, (*Seat).canAct)
}

// isRoundComplete returns true when nobody is left to act in the betting round
// All-in seats never need to match. A lone seat that can act only has to match what the
// others put in, since nobody is left to call a raise.
func (t *Table) isRoundComplete() bool {
	canAct := 0
	highest := 0
	for _, seat := range t.seats {
		if seat.canAct() {
			canAct++
		} else if seat.Status.inHand() && seat.Bet > highest {
			highest = seat.Bet
		}
	}

	switch canAct {
	case 0:
		return true
	case 1:
		for _, seat := range t.seats {
			if seat.canAct() {
				return seat.Bet >= highest
			}
		}
	}

	for _, seat := range t.seats {
		if seat.canAct() && (!seat.HasActed || seat.Bet != t.currentBet) {
			return false
		}
	}

	return true
}

// AdvanceRound deals the next street once the betting round is complete
// Apply calls this on its own; it is exported for collaborators that drive the table by hand.
func (t *Table) AdvanceRound() error {
	if t.status != StatusBetting {
		return newIllegalActionError(ReasonNotBetting, "")
	}

	if !t.isRoundComplete() {
		return errors.New("betting round is not complete")
	}

	t.advanceRound()
	t.checkInvariants()
	return nil
}

func (t *Table) advanceRound() {
	for _, seat := range t.seats {
		seat.Bet = 0
		seat.HasActed = false
		if seat.canAct() {
			seat.LastAction = ""
		}
	}

	t.currentBet = 0

	if t.round == RoundRiver {
		t.showdown()
		return
	}

	// fewer than two seats can bet, so there is nothing left to decide before the showdown
	if t.countSeats((*Seat).canAct) < 2 {
		t.runOut()
		return
	}

	t.dealCommunity(t.round.communityCardsToDeal())
	t.round++
	t.actingSeat = t.nextSeat(t.dealerSeat, (*Seat).canAct)
}

// runOut deals the rest of the board without betting and goes to the showdown
func (t *Table) runOut() {
	t.actingSeat = -1
	t.dealCommunity(5 - len(t.community))
	t.log("", "the board is run out")
	t.showdown()
}

func (t *Table) dealCommunity(n int) {
	if n == 0 {
		return
	}

	cards, err := t.deck.Deal(n)
	if err != nil {
		invariantViolation("dealing community cards: %v", err)
	}

	t.community = append(t.community, cards...)
	t.logCards("", cards, "dealt %s", cards)
	t.logger.WithFields(logrus.Fields{
		"handNumber": t.handNumber,
		"community":  len(t.community),
		"cardsLeft":  t.deck.CardsLeft(),
	}).Debug("community cards dealt")
}

// showdown evaluates every hand still in and pays each pot to its best eligible hand
func (t *Table) showdown() {
	t.status = StatusShowdown
	t.round = RoundShowdown
	t.actingSeat = -1
	t.contested = true

	hands := make([]potmanager.RankedHand, 0, len(t.seats))
	for _, seat := range t.seats {
		if !seat.Status.inHand() {
			continue
		}

		cards := append(seat.HoleCards.Clone(), t.community...)
		evaluation := handanalyzer.Evaluate(cards)
		seat.evaluation = &evaluation
		hands = append(hands, potmanager.RankedHand{
			PlayerID: seat.PlayerID,
			Seat:     seat.Index,
			Strength: evaluation.Strength,
		})
	}

	pots := potmanager.ComputePots(t.contributions())
	if pots.Total() != t.pot {
		invariantViolation("pots total %d, pot is %d", pots.Total(), t.pot)
	}

	payouts, err := potmanager.DistributePots(pots, hands, t.options.RemainderRule, t.dealerSeat, len(t.seats))
	if err != nil {
		invariantViolation("distributing pots: %v", err)
	}

	paid := 0
	for _, seat := range t.seats {
		won := payouts[seat.PlayerID]
		if won == 0 {
			continue
		}

		paid += won
		seat.Chips += won
		seat.winnings = won
		t.logCards(seat.PlayerID, seat.evaluation.Cards, "{} won %d with %s", won, seat.evaluation.Description)
	}

	if paid != t.pot {
		invariantViolation("paid %d from a pot of %d", paid, t.pot)
	}

	t.pot = 0
	t.finishHand()
}

// awardUncontested gives the whole pot to the only seat left without looking at any cards
func (t *Table) awardUncontested() {
	winner := t.seats[t.nextSeat(-1, func(s *Seat) bool { return s.Status.inHand() })]

	winner.Chips += t.pot
	winner.winnings = t.pot
	t.log(winner.PlayerID, "{} won %d uncontested", t.pot)

	t.pot = 0
	t.round = RoundShowdown
	t.actingSeat = -1
	t.contested = false
	t.finishHand()
}

// finishHand eliminates busted seats and completes the hand
func (t *Table) finishHand() {
	for _, seat := range t.seats {
		seat.Bet = 0
	}

	t.currentBet = 0

	// a smaller stack at the start of the hand finishes lower
	busted := make([]*Seat, 0)
	for _, seat := range t.seats {
		if seat.Chips == 0 && seat.Status != SeatEliminated {
			busted = append(busted, seat)
		}
	}

	sort.SliceStable(busted, func(i, j int) bool {
		return busted[i].Contributed < busted[j].Contributed
	})

	for _, seat := range busted {
		seat.Status = SeatEliminated
		t.eliminated = append(t.eliminated, seat.PlayerID)
		t.log(seat.PlayerID, "{} was eliminated")
	}

	t.status = StatusComplete

	t.logger.WithFields(logrus.Fields{
		"handNumber": t.handNumber,
		"contested":  t.contested,
		"eliminated": len(busted),
	}).Info("hand complete")
}

func (t *Table) contributions() []potmanager.Contribution {
	contributions := make([]potmanager.Contribution, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat.Contributed == 0 {
			continue
		}

		contributions = append(contributions, potmanager.Contribution{
			PlayerID: seat.PlayerID,
			Seat:     seat.Index,
			Amount:   seat.Contributed,
			Folded:   !seat.Status.inHand(),
		})
	}

	return contributions
}
