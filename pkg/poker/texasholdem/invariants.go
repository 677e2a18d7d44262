package texasholdem

import (
	"walletpoker-server/pkg/deck"
)

// checkInvariants panics with ErrInvariantViolation if the table state is corrupt
func (t *Table) checkInvariants() {
	t.checkMoney()
	t.checkDeck()
	t.checkActingSeat()
}

func (t *Table) checkMoney() {
	chips := 0
	bets := 0
	contributed := 0
	for _, seat := range t.seats {
		if seat.Chips < 0 {
			invariantViolation("seat %d has %d chips", seat.Index, seat.Chips)
		}

		chips += seat.Chips
		bets += seat.Bet
		contributed += seat.Contributed
	}

	if chips+t.pot != t.totalChips {
		invariantViolation("%d chips in stacks and %d in the pot, expected %d", chips, t.pot, t.totalChips)
	}

	if t.status == StatusBetting {
		if contributed != t.pot {
			invariantViolation("seats contributed %d, pot is %d", contributed, t.pot)
		}

		if bets > t.pot {
			invariantViolation("round bets of %d exceed the pot of %d", bets, t.pot)
		}
	}
}

func (t *Table) checkDeck() {
	if t.status == StatusWaiting {
		return
	}

	seen := make(map[deck.Card]bool, 52)
	add := func(cards deck.Hand) {
		for _, card := range cards {
			if !card.IsValid() {
				invariantViolation("invalid card %v", card)
			}

			if seen[card] {
				invariantViolation("card %s appears twice", card)
			}

			seen[card] = true
		}
	}

	add(t.deck.Cards)
	add(t.community)
	for _, seat := range t.seats {
		add(seat.HoleCards)
	}

	if len(seen) != 52 {
		invariantViolation("%d cards accounted for", len(seen))
	}
}

func (t *Table) checkActingSeat() {
	if t.actingSeat < 0 {
		if t.status == StatusBetting {
			invariantViolation("nobody is on the clock in a betting round")
		}

		return
	}

	if t.actingSeat >= len(t.seats) {
		invariantViolation("acting seat %d does not exist", t.actingSeat)
	}

	if status := t.seats[t.actingSeat].Status; status != SeatActive {
		invariantViolation("acting seat %d is %s", t.actingSeat, status)
	}
}
