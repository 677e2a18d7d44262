package texasholdem

import (
	"walletpoker-server/pkg/deck"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/poker/handanalyzer"
)

// Seat is a player's position at the table
type Seat struct {
	PlayerID string
	Index    int
	Chips    int
	// Bet is what the seat committed in the current betting round
	Bet int
	// Contributed is what the seat committed over the whole hand, used for side pots
	Contributed int
	HoleCards   deck.Hand
	Status      SeatStatus
	LastAction  action.Action

	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool

	// HasActed is true once the seat acted since the last bet or raise
	HasActed bool

	// showdown results
	evaluation *handanalyzer.Evaluation
	winnings   int
}

// resetForHand clears everything a previous hand left on the seat
func (s *Seat) resetForHand() {
	s.Bet = 0
	s.Contributed = 0
	s.HoleCards = nil
	s.LastAction = ""
	s.IsDealer = false
	s.IsSmallBlind = false
	s.IsBigBlind = false
	s.HasActed = false
	s.evaluation = nil
	s.winnings = 0

	switch s.Status {
	case SeatEliminated, SeatSittingOut:
	case SeatActive, SeatFolded, SeatAllIn:
		if s.Chips > 0 {
			s.Status = SeatActive
		} else {
			s.Status = SeatEliminated
		}
	}
}

// commit moves chips from the stack into the current bet
// The caller adds the returned amount to the pot.
func (s *Seat) commit(amount int) int {
	if amount > s.Chips {
		amount = s.Chips
	}

	s.Chips -= amount
	s.Bet += amount
	s.Contributed += amount

	if s.Chips == 0 && s.Status == SeatActive {
		s.Status = SeatAllIn
	}

	return amount
}

func (s *Seat) canAct() bool {
	return s.Status == SeatActive
}
