package handanalyzer

import (
	"math/rand"
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/deck"
)

var crossCheckSuits = map[deck.Suit]poker.Suit{
	deck.Clubs:    poker.Suit(0),
	deck.Diamonds: poker.Suit(1),
	deck.Hearts:   poker.Suit(2),
	deck.Spades:   poker.Suit(3),
}

func toPaulhankin(t *testing.T, cards deck.Hand) *[7]poker.Card {
	t.Helper()

	var out [7]poker.Card
	for i, card := range cards {
		rank := card.Rank
		if rank == deck.Ace {
			rank = deck.LowAce
		}

		c, err := poker.MakeCard(crossCheckSuits[card.Suit], poker.Rank(rank))
		if err != nil {
			t.Fatal(err)
		}

		out[i] = c
	}

	return &out
}

func compareInts(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}

	return 0
}

// the ordering of any two seven card hands must agree with an independent evaluator
func TestEvaluate_AgreesWithPaulhankin(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	full := deck.New().Cards

	for i := 0; i < 2000; i++ {
		perm := r.Perm(len(full))
		first := make(deck.Hand, 7)
		second := make(deck.Hand, 7)
		for j := 0; j < 7; j++ {
			first[j] = full[perm[j]]
			second[j] = full[perm[j+7]]
		}

		ours := compareInts(Evaluate(first).Strength, Evaluate(second).Strength)
		theirs := compareInts(int(poker.Eval7(toPaulhankin(t, first))), int(poker.Eval7(toPaulhankin(t, second))))
		if !assert.Equal(t, theirs, ours, "%s vs %s", first, second) {
			return
		}
	}
}
