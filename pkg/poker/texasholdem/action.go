package texasholdem

import (
	"github.com/sirupsen/logrus"
	"walletpoker-server/pkg/poker/action"
)

// AvailableAction is an action the seat on the clock may take
type AvailableAction struct {
	Action action.Action `json:"action"`
	// Amount is the chips a call or all-in puts in
	Amount int `json:"amount,omitempty"`
	// MinAmount and MaxAmount bound a raise, expressed as the total bet for the round
	MinAmount int `json:"minAmount,omitempty"`
	MaxAmount int `json:"maxAmount,omitempty"`
}

// Validate checks whether the seat can take the action
// amount is only used by a raise and is the total the seat's bet is raised to.
func (t *Table) Validate(seatIndex int, act action.Action, amount int) error {
	switch t.status {
	case StatusBetting:
	case StatusComplete:
		return newIllegalActionError(ReasonHandComplete, "")
	case StatusWaiting, StatusDealing, StatusShowdown:
		return newIllegalActionError(ReasonNotBetting, "")
	}

	if seatIndex < 0 || seatIndex >= len(t.seats) {
		return newIllegalActionError(ReasonSeatInactive, "no seat %d", seatIndex)
	}

	seat := t.seats[seatIndex]
	if seat.Status != SeatActive {
		return newIllegalActionError(ReasonSeatInactive, "seat is %s", seat.Status)
	}

	if t.actingSeat != seatIndex {
		return newIllegalActionError(ReasonNotYourTurn, "")
	}

	gap := t.currentBet - seat.Bet

	switch act {
	case action.Fold:
		return nil
	case action.Check:
		if gap > 0 {
			return newIllegalActionError(ReasonCannotCheck, "%d to call", gap)
		}

		return nil
	case action.Call:
		if gap <= 0 {
			return newIllegalActionError(ReasonNothingToCall, "")
		}

		if seat.Chips < gap {
			return newIllegalActionError(ReasonInsufficientChips, "%d to call, %d in your stack", gap, seat.Chips)
		}

		return nil
	case action.Raise:
		if minRaise := t.minRaise(); amount < minRaise {
			return newIllegalActionError(ReasonRaiseTooSmall, "minimum raise is to %d", minRaise)
		}

		if maxRaise := seat.Chips + seat.Bet; amount > maxRaise {
			return newIllegalActionError(ReasonRaiseTooLarge, "maximum raise is to %d", maxRaise)
		}

		return nil
	case action.AllIn:
		if seat.Chips == 0 {
			return newIllegalActionError(ReasonNoChips, "")
		}

		return nil
	}

	return newIllegalActionError(ReasonUnknownAction, "%q", string(act))
}

// Apply validates the action, applies it and moves the hand forward
// When the action closes the betting round the next street is dealt, and when it ends the hand
// the pot is awarded before Apply returns.
func (t *Table) Apply(seatIndex int, act action.Action, amount int) error {
	if err := t.Validate(seatIndex, act, amount); err != nil {
		return err
	}

	seat := t.seats[seatIndex]
	switch act {
	case action.Fold:
		seat.Status = SeatFolded
		t.log(seat.PlayerID, "{} %s", act.LogMessage(0))
	case action.Check:
		t.log(seat.PlayerID, "{} %s", act.LogMessage(0))
	case action.Call:
		called := seat.commit(t.currentBet - seat.Bet)
		t.pot += called
		t.log(seat.PlayerID, "{} %s", act.LogMessage(called))
	case action.Raise:
		t.pot += seat.commit(amount - seat.Bet)
		t.raiseTo(seat)
		t.log(seat.PlayerID, "{} %s", act.LogMessage(amount))
	case action.AllIn:
		committed := seat.commit(seat.Chips)
		t.pot += committed
		if seat.Bet > t.currentBet {
			t.raiseTo(seat)
		}

		t.log(seat.PlayerID, "{} %s", act.LogMessage(committed))
	}

	seat.LastAction = act
	seat.HasActed = true

	t.logger.WithFields(logrus.Fields{
		"playerId": seat.PlayerID,
		"action":   string(act),
		"amount":   amount,
	}).Debug("applied action")

	t.afterAction(seatIndex)
	t.checkInvariants()
	return nil
}

// raiseTo makes the seat's bet the one to match and reopens the action
func (t *Table) raiseTo(seat *Seat) {
	t.currentBet = seat.Bet
	for _, other := range t.seats {
		if other != seat && other.canAct() {
			other.HasActed = false
		}
	}
}

func (t *Table) minRaise() int {
	return t.currentBet + t.options.BigBlind
}

// AvailableActions returns what the seat can do right now
// Seats that are not on the clock get nothing.
func (t *Table) AvailableActions(seatIndex int) []AvailableAction {
	if t.status != StatusBetting || seatIndex != t.actingSeat || seatIndex < 0 {
		return nil
	}

	seat := t.seats[seatIndex]
	if !seat.canAct() {
		return nil
	}

	gap := t.currentBet - seat.Bet
	actions := []AvailableAction{{Action: action.Fold}}

	if gap <= 0 {
		actions = append(actions, AvailableAction{Action: action.Check})
	} else if seat.Chips >= gap {
		actions = append(actions, AvailableAction{Action: action.Call, Amount: gap})
	}

	if maxRaise := seat.Chips + seat.Bet; seat.Chips > gap && maxRaise >= t.minRaise() {
		actions = append(actions, AvailableAction{
			Action:    action.Raise,
			MinAmount: t.minRaise(),
			MaxAmount: maxRaise,
		})
	}

	if seat.Chips > 0 {
		actions = append(actions, AvailableAction{Action: action.AllIn, Amount: seat.Chips})
	}

	return actions
}
