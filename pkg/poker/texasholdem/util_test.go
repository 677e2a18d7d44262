package texasholdem

import (
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/deck"
)

// noShuffle leaves the deck in its original order
type noShuffle struct{}

func (noShuffle) Intn(n int) int {
	return n - 1
}

func playerIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "p" + strconv.Itoa(i)
	}

	return ids
}

func newTestTable(t *testing.T, stacks ...int) *Table {
	t.Helper()

	tbl, err := NewTable(logrus.StandardLogger(), "table-1", "tournament-1", playerIDs(len(stacks)), 100, DefaultOptions())
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	tbl.totalChips = 0
	for i, chips := range stacks {
		tbl.seats[i].Chips = chips
		tbl.totalChips += chips
	}

	return tbl
}

// stackDeck replaces the hole cards dealt to each seat and puts board on top of the deck
// Every seat still in the hand must be given cards.
func stackDeck(tbl *Table, holes map[int]string, board string) {
	used := make(deck.Hand, 0)
	for index, cards := range holes {
		hole := deck.CardsFromString(cards)
		tbl.seats[index].HoleCards = hole
		used = append(used, hole...)
	}

	top := deck.CardsFromString(board)
	used = append(used, top...)
	used = append(used, tbl.community...)

	rest := make(deck.Hand, 0, 52)
	for _, card := range deck.New().Cards {
		if !used.HasCard(card) {
			rest = append(rest, card)
		}
	}

	tbl.deck.Cards = append(top, rest...)
}

func chipsAndPot(tbl *Table) int {
	total := tbl.pot
	for _, seat := range tbl.seats {
		total += seat.Chips
	}

	return total
}

func reasonOf(err error) Reason {
	if e, ok := err.(*IllegalActionError); ok {
		return e.Reason
	}

	return ""
}
