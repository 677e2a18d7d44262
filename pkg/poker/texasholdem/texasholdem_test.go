package texasholdem

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/deck"
	"walletpoker-server/pkg/poker/action"
	"walletpoker-server/pkg/poker/handanalyzer"
	"walletpoker-server/pkg/poker/potmanager"
)

func TestNewTable(t *testing.T) {
	a := assert.New(t)
	logger := logrus.StandardLogger()

	_, err := NewTable(logger, "t", "x", []string{"p0"}, 100, DefaultOptions())
	a.EqualError(err, "there must be at least two players")

	_, err = NewTable(logger, "t", "x", []string{"p0", "p1"}, 0, DefaultOptions())
	a.EqualError(err, "buy-in must be greater than zero")

	_, err = NewTable(logger, "t", "x", []string{"p0", "p0"}, 100, DefaultOptions())
	a.EqualError(err, "player p0 is seated twice")

	_, err = NewTable(logger, "t", "x", []string{"p0", ""}, 100, DefaultOptions())
	a.EqualError(err, "player ID cannot be empty")

	opts := DefaultOptions()
	opts.BigBlind = 0
	_, err = NewTable(logger, "t", "x", []string{"p0", "p1"}, 100, opts)
	a.EqualError(err, "big blind must be at least the small blind")

	opts = DefaultOptions()
	opts.RemainderRule = "nearest"
	_, err = NewTable(logger, "t", "x", []string{"p0", "p1"}, 100, opts)
	a.Error(err)

	tbl, err := NewTable(logger, "t", "x", []string{"p0", "p1", "p2"}, 100, DefaultOptions())
	a.NoError(err)
	a.Equal(StatusWaiting, tbl.Status())
	a.Equal(300, tbl.TotalChips())
	a.False(tbl.IsTournamentOver())
	_, ok := tbl.ActingSeat()
	a.False(ok)
}

func TestTable_headsUpBlindsAndCall(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))

	a.Equal(1, tbl.HandNumber())
	a.NotEmpty(tbl.HandID())
	a.Equal(StatusBetting, tbl.Status())
	a.Equal(RoundPreFlop, tbl.Round())

	// the button posts the small blind heads-up
	a.True(tbl.seats[0].IsDealer)
	a.True(tbl.seats[0].IsSmallBlind)
	a.True(tbl.seats[1].IsBigBlind)
	a.Equal(1, tbl.seats[0].Bet)
	a.Equal(2, tbl.seats[1].Bet)
	a.Equal(3, tbl.Pot())
	a.Equal(2, tbl.CurrentBet())
	a.Equal(99, tbl.seats[0].Chips)
	a.Equal(98, tbl.seats[1].Chips)
	a.Len(tbl.seats[0].HoleCards, 2)
	a.Len(tbl.seats[1].HoleCards, 2)
	a.Equal(48, tbl.deck.CardsLeft())

	seat, ok := tbl.ActingSeat()
	a.True(ok)
	a.Equal(0, seat)

	a.Equal([]AvailableAction{
		{Action: action.Fold},
		{Action: action.Call, Amount: 1},
		{Action: action.Raise, MinAmount: 4, MaxAmount: 100},
		{Action: action.AllIn, Amount: 99},
	}, tbl.AvailableActions(0))
	a.Nil(tbl.AvailableActions(1))

	a.NoError(tbl.Apply(0, action.Call, 0))
	a.Equal(4, tbl.Pot())

	// betting round complete, flop dealt
	a.Equal(RoundFlop, tbl.Round())
	a.Len(tbl.Community(), 3)
	a.Equal(0, tbl.CurrentBet())
	a.Equal(0, tbl.seats[0].Bet)
	a.Equal(0, tbl.seats[1].Bet)
	a.Equal(2, tbl.seats[0].Contributed)

	// big blind acts first after the flop
	seat, _ = tbl.ActingSeat()
	a.Equal(1, seat)
	a.Equal([]AvailableAction{
		{Action: action.Fold},
		{Action: action.Check},
		{Action: action.Raise, MinAmount: 2, MaxAmount: 98},
		{Action: action.AllIn, Amount: 98},
	}, tbl.AvailableActions(1))

	// a raise reopens the action
	a.NoError(tbl.Apply(1, action.Raise, 10))
	a.Equal(10, tbl.CurrentBet())
	a.Equal(14, tbl.Pot())
	a.Equal([]AvailableAction{
		{Action: action.Fold},
		{Action: action.Call, Amount: 10},
		{Action: action.Raise, MinAmount: 12, MaxAmount: 98},
		{Action: action.AllIn, Amount: 98},
	}, tbl.AvailableActions(0))

	a.NoError(tbl.Apply(0, action.Call, 0))
	a.Equal(RoundTurn, tbl.Round())
	a.Len(tbl.Community(), 4)

	a.NoError(tbl.Apply(1, action.Check, 0))
	a.NoError(tbl.Apply(0, action.Check, 0))
	a.Equal(RoundRiver, tbl.Round())
	a.Len(tbl.Community(), 5)

	a.NoError(tbl.Apply(1, action.Check, 0))
	a.NoError(tbl.Apply(0, action.Check, 0))
	a.Equal(RoundShowdown, tbl.Round())
	a.Equal(StatusComplete, tbl.Status())
	a.Equal(0, tbl.Pot())
	a.Equal(200, tbl.seats[0].Chips+tbl.seats[1].Chips)
}

func TestTable_preFlopFold(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))
	a.NoError(tbl.Apply(0, action.Fold, 0))

	a.Equal(StatusComplete, tbl.Status())
	a.Equal(RoundShowdown, tbl.Round())
	a.Equal(0, tbl.Pot())
	a.Equal(99, tbl.seats[0].Chips)
	a.Equal(101, tbl.seats[1].Chips)
	a.False(tbl.contested)

	// nobody's hand was evaluated or revealed
	for _, seat := range tbl.seats {
		a.Nil(seat.evaluation)
	}

	snap := tbl.Snapshot("p0")
	a.Len(snap.Seats[0].HoleCards, 2)
	a.Nil(snap.Seats[1].HoleCards)
	a.Nil(snap.Seats[1].Hand)
	a.Equal(3, snap.Seats[1].Winnings)
	a.Nil(snap.ActingSeat)

	logs := tbl.Logs()
	a.Equal("{} won 3 uncontested", logs[len(logs)-1].Message)
	a.Equal([]string{"p1"}, logs[len(logs)-1].PlayerIDs)

	// actions after the hand are rejected without changing anything
	err := tbl.Apply(1, action.Check, 0)
	a.ErrorIs(err, ErrIllegalAction)
	a.Equal(ReasonHandComplete, reasonOf(err))
	a.Equal(101, tbl.seats[1].Chips)

	// the next hand moves the button
	a.NoError(tbl.StartHand(noShuffle{}))
	a.Equal(2, tbl.HandNumber())
	a.True(tbl.seats[1].IsDealer)
	a.True(tbl.seats[1].IsSmallBlind)
	a.True(tbl.seats[0].IsBigBlind)
	a.Equal(100, tbl.seats[1].Chips)
	a.Equal(97, tbl.seats[0].Chips)
	seat, _ := tbl.ActingSeat()
	a.Equal(1, seat)
	a.ErrorIs(tbl.StartHand(noShuffle{}), ErrHandInProgress)
}

func TestTable_Validate(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.Equal(ReasonNotBetting, reasonOf(tbl.Validate(0, action.Fold, 0)))

	a.NoError(tbl.StartHand(noShuffle{}))

	runTest := func(seat int, act action.Action, amount int, reason Reason) {
		t.Helper()

		err := tbl.Validate(seat, act, amount)
		if reason == "" {
			a.NoError(err)
			return
		}

		a.True(errors.Is(err, ErrIllegalAction), "%s should be illegal", act)
		a.Equal(reason, reasonOf(err))
	}

	runTest(1, action.Check, 0, ReasonNotYourTurn)
	runTest(5, action.Fold, 0, ReasonSeatInactive)
	runTest(0, action.Check, 0, ReasonCannotCheck)
	runTest(0, action.Raise, 3, ReasonRaiseTooSmall)
	runTest(0, action.Raise, 101, ReasonRaiseTooLarge)
	runTest(0, action.Action("bet"), 0, ReasonUnknownAction)
	runTest(0, action.Raise, 4, "")
	runTest(0, action.Raise, 100, "")
	runTest(0, action.Call, 0, "")
	runTest(0, action.Fold, 0, "")
	runTest(0, action.AllIn, 0, "")

	a.NoError(tbl.Apply(0, action.Call, 0))
	runTest(1, action.Call, 0, ReasonNothingToCall)
	runTest(1, action.Check, 0, "")

	a.EqualError(tbl.Validate(1, action.Raise, 1), "raise is below the minimum: minimum raise is to 2")
}

func TestTable_shortStack(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 1, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))

	// seat 0 is on the button and first to act three-handed
	seat, _ := tbl.ActingSeat()
	a.Equal(0, seat)
	a.Equal(ReasonInsufficientChips, reasonOf(tbl.Validate(0, action.Call, 0)))
	a.Equal(ReasonRaiseTooLarge, reasonOf(tbl.Validate(0, action.Raise, 4)))
	a.Equal([]AvailableAction{
		{Action: action.Fold},
		{Action: action.AllIn, Amount: 1},
	}, tbl.AvailableActions(0))

	// an all-in below the bet does not change it
	a.NoError(tbl.Apply(0, action.AllIn, 0))
	a.Equal(SeatAllIn, tbl.seats[0].Status)
	a.Equal(2, tbl.CurrentBet())
	seat, _ = tbl.ActingSeat()
	a.Equal(1, seat)

	a.Equal(ReasonSeatInactive, reasonOf(tbl.Validate(0, action.Fold, 0)))

	a.NoError(tbl.Apply(1, action.Call, 0))
	a.Equal(RoundFlop, tbl.Round())
	a.Equal(5, tbl.Pot())

	// first seat after the button that can still act
	seat, _ = tbl.ActingSeat()
	a.Equal(1, seat)
}

func TestTable_bigBlindOption(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100, 100)
	tbl.options.BigBlindOption = true
	a.NoError(tbl.StartHand(noShuffle{}))

	a.NoError(tbl.Apply(0, action.Call, 0))
	a.NoError(tbl.Apply(1, action.Call, 0))
	a.Equal(RoundPreFlop, tbl.Round())
	seat, _ := tbl.ActingSeat()
	a.Equal(2, seat)

	a.NoError(tbl.Apply(2, action.Check, 0))
	a.Equal(RoundFlop, tbl.Round())

	// without the option the call around closes the round
	tbl = newTestTable(t, 100, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))
	a.NoError(tbl.Apply(0, action.Call, 0))
	a.NoError(tbl.Apply(1, action.Call, 0))
	a.Equal(RoundFlop, tbl.Round())
	a.Equal(6, tbl.Pot())
}

func TestTable_allInRunOut(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))
	stackDeck(tbl, map[int]string{0: "Ah,As", 1: "Kh,Kd"}, "2c,7d,9s,Jc,3h")

	a.NoError(tbl.Apply(0, action.AllIn, 0))
	a.Equal(100, tbl.CurrentBet())
	a.Equal([]AvailableAction{
		{Action: action.Fold},
		{Action: action.Call, Amount: 98},
		{Action: action.AllIn, Amount: 98},
	}, tbl.AvailableActions(1))

	a.NoError(tbl.Apply(1, action.Call, 0))

	a.Equal(RoundShowdown, tbl.Round())
	a.Equal(StatusComplete, tbl.Status())
	a.Equal("2c,7d,9s,Jc,3h", tbl.Community().String())
	a.Equal(200, tbl.seats[0].Chips)
	a.Equal(0, tbl.seats[1].Chips)
	a.Equal(SeatEliminated, tbl.seats[1].Status)
	a.True(tbl.contested)

	a.True(tbl.IsTournamentOver())
	winner, ok := tbl.Winner()
	a.True(ok)
	a.Equal("p0", winner)
	a.Equal([]string{"p1"}, tbl.EliminationOrder())
	a.ErrorIs(tbl.StartHand(noShuffle{}), ErrTournamentOver)

	// a contested showdown reveals the hands to everybody
	snap := tbl.Snapshot("")
	a.Equal("Ah,As", snap.Seats[0].HoleCards.String())
	a.Equal("Kh,Kd", snap.Seats[1].HoleCards.String())
	a.Equal(handanalyzer.OnePair, snap.Seats[0].Hand.Hand)
	a.Equal("Pair of Aces", snap.Seats[0].Hand.Description)
	a.Equal(200, snap.Seats[0].Winnings)
}

func TestTable_threeWayAllInSidePots(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 50, 150, 300)
	a.NoError(tbl.StartHand(noShuffle{}))
	stackDeck(tbl, map[int]string{0: "Ah,Kd", 1: "As,Kc", 2: "Qh,Td"}, "2c,7d,9s,Jc,3h")

	a.NoError(tbl.Apply(0, action.AllIn, 0))
	a.NoError(tbl.Apply(1, action.AllIn, 0))
	a.NoError(tbl.Apply(2, action.AllIn, 0))

	a.Equal(StatusComplete, tbl.Status())

	pots := potmanager.ComputePots(tbl.contributions())
	a.Len(pots, 3)
	a.Equal(150, pots[0].Amount)
	a.Equal(200, pots[1].Amount)
	a.Equal(150, pots[2].Amount)
	a.Equal([]string{"p2"}, pots[2].Eligible)

	// seats 0 and 1 split the main pot, seat 1 takes the first side pot and seat 2 gets back
	// the chips nobody could match
	a.Equal(75, tbl.seats[0].Chips)
	a.Equal(275, tbl.seats[1].Chips)
	a.Equal(150, tbl.seats[2].Chips)
	a.Equal(500, chipsAndPot(tbl))
	a.Empty(tbl.EliminationOrder())
}

func TestTable_eliminationOrder(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 20, 10, 300)
	a.NoError(tbl.StartHand(noShuffle{}))
	stackDeck(tbl, map[int]string{0: "2h,3d", 1: "4h,5d", 2: "Ah,As"}, "Kc,Qd,9s,8c,7h")

	a.NoError(tbl.Apply(0, action.AllIn, 0))
	a.NoError(tbl.Apply(1, action.AllIn, 0))
	a.NoError(tbl.Apply(2, action.Call, 0))

	a.Equal(StatusComplete, tbl.Status())
	a.Equal(330, tbl.seats[2].Chips)

	// the shorter stack busts first
	a.Equal([]string{"p1", "p0"}, tbl.EliminationOrder())
	a.True(tbl.IsTournamentOver())
}

func TestTable_AdvanceRound(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.Equal(ReasonNotBetting, reasonOf(tbl.AdvanceRound()))

	a.NoError(tbl.StartHand(noShuffle{}))
	a.EqualError(tbl.AdvanceRound(), "betting round is not complete")
	a.Equal(RoundPreFlop, tbl.Round())
}

func TestTable_Snapshot(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))

	snap := tbl.Snapshot("p0")
	a.Equal("table-1", snap.TableID)
	a.Equal("tournament-1", snap.TournamentID)
	a.Len(snap.Seats[0].HoleCards, 2)
	a.Nil(snap.Seats[1].HoleCards)
	a.Nil(snap.Seats[2].HoleCards)
	a.NotEmpty(snap.Actions)
	a.Equal(0, *snap.ActingSeat)
	a.Equal(RoundPreFlop, snap.Round)
	a.Equal(StatusBetting, snap.Status)
	a.Equal(3, snap.Pot)

	a.Nil(tbl.Snapshot("p1").Actions)
	a.Len(tbl.Snapshot("p1").Seats[1].HoleCards, 2)
	a.Nil(tbl.Snapshot("stranger").Seats[0].HoleCards)

	// querying twice gives the same answer
	a.Equal(tbl.Snapshot("p2"), tbl.Snapshot("p2"))

	// the snapshot does not follow the table
	original := tbl.seats[0].HoleCards[0]
	snap.Seats[0].HoleCards[0] = deck.Card{Rank: 2, Suit: deck.Clubs}
	a.Equal(original, tbl.seats[0].HoleCards[0])
}

func TestTable_invariants(t *testing.T) {
	a := assert.New(t)

	tbl := newTestTable(t, 100, 100)
	a.NoError(tbl.StartHand(noShuffle{}))

	assertViolation := func(fn func()) {
		t.Helper()

		defer func() {
			r := recover()
			err, ok := r.(error)
			if a.True(ok, "expected a panic") {
				a.ErrorIs(err, ErrInvariantViolation)
			}
		}()

		fn()
	}

	assertViolation(func() {
		tbl.pot++
		defer func() { tbl.pot-- }()
		tbl.checkInvariants()
	})

	assertViolation(func() {
		saved := tbl.seats[1].HoleCards
		tbl.seats[1].HoleCards = tbl.seats[0].HoleCards.Clone()
		defer func() { tbl.seats[1].HoleCards = saved }()
		tbl.checkInvariants()
	})

	assertViolation(func() {
		tbl.seats[0].Status = SeatFolded
		defer func() { tbl.seats[0].Status = SeatActive }()
		tbl.checkInvariants()
	})

	a.NotPanics(tbl.checkInvariants)
}

func TestTable_moneyIsConserved(t *testing.T) {
	a := assert.New(t)
	gen := rand.New(rand.NewSource(11)) // nolint:gosec

	for game := 0; game < 20; game++ {
		players := 2 + gen.Intn(5)
		stacks := make([]int, players)
		for i := range stacks {
			stacks[i] = 20 + gen.Intn(200)
		}

		tbl := newTestTable(t, stacks...)
		total := tbl.TotalChips()

		for hand := 0; hand < 200 && !tbl.IsTournamentOver(); hand++ {
			if !a.NoError(tbl.StartHand(gen)) {
				return
			}

			for tbl.Status() == StatusBetting {
				seat, ok := tbl.ActingSeat()
				if !a.True(ok) {
					return
				}

				actions := tbl.AvailableActions(seat)
				choice := actions[gen.Intn(len(actions))]
				amount := 0
				if choice.Action == action.Raise {
					amount = choice.MinAmount + gen.Intn(choice.MaxAmount-choice.MinAmount+1)
				}

				if !a.NoError(tbl.Apply(seat, choice.Action, amount)) {
					return
				}

				a.Equal(total, chipsAndPot(tbl))
			}

			a.Equal(StatusComplete, tbl.Status())
			a.Equal(0, tbl.Pot())
			a.Equal(total, chipsAndPot(tbl))
		}
	}
}
