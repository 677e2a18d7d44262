package texasholdem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"walletpoker-server/internal/rng"
	"walletpoker-server/pkg/deck"
	"walletpoker-server/pkg/poker/potmanager"
)

// Options configures the table
type Options struct {
	SmallBlind int
	BigBlind   int
	// RemainderRule decides who gets the odd chips of a split pot
	RemainderRule potmanager.RemainderRule
	// BigBlindOption lets the big blind act again when the pre-flop action is only called around
	BigBlindOption bool
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		SmallBlind:    1,
		BigBlind:      2,
		RemainderRule: potmanager.RemainderToFirstSeat,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be at least the small blind")
	}

	if _, err := potmanager.ParseRemainderRule(string(opts.RemainderRule)); err != nil {
		return err
	}

	return nil
}

// Table is one No-Limit Texas Hold'em table and the hand being played on it
// A Table is not safe for concurrent use. Every method must be called from the goroutine that
// owns it.
type Table struct {
	ID           string
	TournamentID string

	logger  logrus.FieldLogger
	options Options

	seats     []*Seat
	deck      *deck.Deck
	community deck.Hand

	pot        int
	currentBet int
	// actingSeat is -1 when nobody is on the clock
	actingSeat int
	dealerSeat int
	round      Round
	status     Status

	handNumber int
	handID     string
	// contested is true when the last hand was decided by comparing hands
	contested bool

	// totalChips never changes after the table is created
	totalChips int

	// eliminated holds player IDs in the order they busted
	eliminated []string

	logs []*LogMessage
}

// NewTable seats the players in the order given, each with buyIn chips
func NewTable(logger logrus.FieldLogger, tableID, tournamentID string, playerIDs []string, buyIn int, opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(playerIDs) < 2 {
		return nil, errors.New("there must be at least two players")
	}

	if buyIn <= 0 {
		return nil, errors.New("buy-in must be greater than zero")
	}

	seen := make(map[string]bool)
	seats := make([]*Seat, len(playerIDs))
	for i, id := range playerIDs {
		if id == "" {
			return nil, errors.New("player ID cannot be empty")
		}

		if seen[id] {
			return nil, fmt.Errorf("player %s is seated twice", id)
		}

		seen[id] = true
		seats[i] = &Seat{
			PlayerID: id,
			Index:    i,
			Chips:    buyIn,
			Status:   SeatActive,
		}
	}

	return &Table{
		ID:           tableID,
		TournamentID: tournamentID,
		logger: logger.WithFields(logrus.Fields{
			"tableId":      tableID,
			"tournamentId": tournamentID,
		}),
		options:    opts,
		seats:      seats,
		deck:       deck.New(),
		community:  make(deck.Hand, 0, 5),
		actingSeat: -1,
		// the first hand moves the button to seat 0
		dealerSeat: len(seats) - 1,
		round:      RoundPreFlop,
		status:     StatusWaiting,
		totalChips: buyIn * len(seats),
		eliminated: make([]string, 0),
		logs:       make([]*LogMessage, 0),
	}, nil
}

// StartHand moves the button, shuffles a fresh deck, posts the blinds and deals the hole cards
func (t *Table) StartHand(gen rng.Generator) error {
	switch t.status {
	case StatusWaiting, StatusComplete:
	case StatusDealing, StatusBetting, StatusShowdown:
		return ErrHandInProgress
	}

	if t.IsTournamentOver() {
		return ErrTournamentOver
	}

	t.status = StatusDealing
	t.handNumber++
	t.handID = uuid.New().String()
	t.logs = make([]*LogMessage, 0)
	t.contested = false

	for _, seat := range t.seats {
		seat.resetForHand()
	}

	t.dealerSeat = t.nextSeat(t.dealerSeat, func(s *Seat) bool { return s.Status == SeatActive })
	t.seats[t.dealerSeat].IsDealer = true

	t.deck = deck.New()
	t.deck.Shuffle(gen)
	t.community = make(deck.Hand, 0, 5)
	t.pot = 0
	t.currentBet = 0
	t.round = RoundPreFlop

	t.logger.WithFields(logrus.Fields{
		"handNumber": t.handNumber,
		"handId":     t.handID,
		"deckHash":   t.deck.HashCode(),
	}).Debug("starting hand")

	sb, bb := t.blindSeats()
	t.postBlind(sb, t.options.SmallBlind, "small")
	t.postBlind(bb, t.options.BigBlind, "big")
	t.seats[sb].IsSmallBlind = true
	t.seats[bb].IsBigBlind = true
	t.currentBet = t.options.BigBlind

	// small blind is dealt first
	for i := 0; i < len(t.seats); i++ {
		seat := t.seats[(sb+i)%len(t.seats)]
		if !seat.Status.inHand() {
			continue
		}

		cards, err := t.deck.Deal(2)
		if err != nil {
			invariantViolation("dealing hole cards: %v", err)
		}

		seat.HoleCards = cards
	}

	t.status = StatusBetting
	t.actingSeat = t.nextSeat(bb, (*Seat).canAct)
	if t.isRoundComplete() {
		t.advanceRound()
	}

	t.checkInvariants()
	return nil
}

// blindSeats returns the small and big blind seats
// Heads-up the button posts the small blind.
func (t *Table) blindSeats() (int, int) {
	hasChips := func(s *Seat) bool { return s.Status == SeatActive }

	if t.countSeats(hasChips) == 2 {
		return t.dealerSeat, t.nextSeat(t.dealerSeat, hasChips)
	}

	sb := t.nextSeat(t.dealerSeat, hasChips)
	return sb, t.nextSeat(sb, hasChips)
}

func (t *Table) postBlind(index, amount int, name string) {
	seat := t.seats[index]
	posted := seat.commit(amount)
	t.pot += posted

	if name == "big" {
		seat.HasActed = !t.options.BigBlindOption
	}

	if seat.Status == SeatAllIn {
		t.log(seat.PlayerID, "{} posted the %s blind of %d and is all-in", name, posted)
	} else {
		t.log(seat.PlayerID, "{} posted the %s blind of %d", name, posted)
	}
}

// nextSeat returns the first seat clockwise from index that matches, or -1
func (t *Table) nextSeat(index int, match func(*Seat) bool) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		next := (index + i + n) % n
		if match(t.seats[next]) {
			return next
		}
	}

	return -1
}

func (t *Table) countSeats(match func(*Seat) bool) int {
	count := 0
	for _, seat := range t.seats {
		if match(seat) {
			count++
		}
	}

	return count
}

// SeatForPlayer returns the seat index of the player
func (t *Table) SeatForPlayer(playerID string) (int, bool) {
	for _, seat := range t.seats {
		if seat.PlayerID == playerID {
			return seat.Index, true
		}
	}

	return 0, false
}

// Seats returns copies of every seat
func (t *Table) Seats() []Seat {
	seats := make([]Seat, len(t.seats))
	for i, seat := range t.seats {
		seats[i] = *seat
		seats[i].HoleCards = seat.HoleCards.Clone()
	}

	return seats
}

// Status returns the lifecycle state of the table
func (t *Table) Status() Status {
	return t.status
}

// Round returns the current betting round
func (t *Table) Round() Round {
	return t.round
}

// HandNumber returns the number of the current hand, starting at 1
func (t *Table) HandNumber() int {
	return t.handNumber
}

// HandID returns the unique identifier of the current hand
func (t *Table) HandID() string {
	return t.handID
}

// ActingSeat returns the seat on the clock
func (t *Table) ActingSeat() (int, bool) {
	return t.actingSeat, t.actingSeat >= 0
}

// Pot returns every chip committed in the current hand
func (t *Table) Pot() int {
	return t.pot
}

// CurrentBet returns the amount each seat must match in the current round
func (t *Table) CurrentBet() int {
	return t.currentBet
}

// Community returns the board
func (t *Table) Community() deck.Hand {
	return t.community.Clone()
}

// IsTournamentOver returns true once a single seat holds chips
func (t *Table) IsTournamentOver() bool {
	if t.status != StatusWaiting && t.status != StatusComplete {
		return false
	}

	return t.countSeats(func(s *Seat) bool { return s.Chips > 0 }) == 1
}

// Winner returns the player holding every chip
func (t *Table) Winner() (string, bool) {
	if !t.IsTournamentOver() {
		return "", false
	}

	for _, seat := range t.seats {
		if seat.Chips > 0 {
			return seat.PlayerID, true
		}
	}

	return "", false
}

// EliminationOrder returns the players who busted, first out first
func (t *Table) EliminationOrder() []string {
	order := make([]string, len(t.eliminated))
	copy(order, t.eliminated)
	return order
}

// TotalChips returns the number of chips in play
func (t *Table) TotalChips() int {
	return t.totalChips
}
