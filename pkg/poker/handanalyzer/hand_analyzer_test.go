package handanalyzer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"walletpoker-server/pkg/deck"
	"walletpoker-server/pkg/golden"
)

func evaluate(cards string) Evaluation {
	return Evaluate(deck.CardsFromString(cards))
}

func TestEvaluate_Categories(t *testing.T) {
	runTest := func(t *testing.T, cards string, hand Hand, description, best string) {
		t.Helper()

		e := evaluate(cards)
		assert.Equal(t, hand, e.Hand, cards)
		assert.Equal(t, description, e.Description, cards)
		assert.Equal(t, best, e.Cards.String(), cards)
	}

	runTest(t, "Th,Jh,Qh,Kh,Ah", RoyalFlush, "Royal flush", "Ah,Kh,Qh,Jh,Th")
	runTest(t, "Ad,2d,3d,4d,5d", StraightFlush, "Straight flush, Five high", "5d,4d,3d,2d,Ad")
	runTest(t, "9s,8s,7s,6s,5s", StraightFlush, "Straight flush, Nine high", "9s,8s,7s,6s,5s")
	runTest(t, "2h,Ks,Kh,Kd,Kc", FourOfAKind, "Four of a kind, Kings", "Ks,Kh,Kd,Kc,2h")
	runTest(t, "3c,Kh,3d,Kd,Ks", FullHouse, "Full house, Kings over Threes", "Kh,Kd,Ks,3c,3d")
	runTest(t, "2h,9h,Ah,7h,4h", Flush, "Flush, Ace high", "Ah,9h,7h,4h,2h")
	runTest(t, "5c,6s,7h,8d,9c", Straight, "Straight, Nine high", "9c,8d,7h,6s,5c")
	runTest(t, "Ac,2d,3h,4s,5c", Straight, "Straight, Five high", "5c,4s,3h,2d,Ac")
	runTest(t, "Ac,Kd,Qh,Js,Tc", Straight, "Straight, Ace high", "Ac,Kd,Qh,Js,Tc")
	runTest(t, "7c,Ks,7d,2c,7h", ThreeOfAKind, "Three of a kind, Sevens", "7c,7d,7h,Ks,2c")
	runTest(t, "8h,Ac,Kc,8s,Ad", TwoPair, "Two pair, Aces and Eights", "Ac,Ad,8h,8s,Kc")
	runTest(t, "Jc,2c,9h,Jd,4s", OnePair, "Pair of Jacks", "Jc,Jd,9h,4s,2c")
	runTest(t, "6c,6d,9h,Ks,2c", OnePair, "Pair of Sixes", "6c,6d,Ks,9h,2c")
	runTest(t, "Ac,Jd,9h,4s,2c", HighCard, "High card, Ace", "Ac,Jd,9h,4s,2c")
}

func TestEvaluate_CategoryOrder(t *testing.T) {
	hands := []string{
		"Ac,Kd,Qh,Js,9c", // best high card
		"2c,2d,3h,4s,5h", // worst pair
		"Ac,Ad,Kh,Ks,Qc",
		"2c,2d,2h,3s,4h",
		"Ac,2d,3h,4s,5c", // wheel
		"2c,3d,4h,5s,6c",
		"Ac,Kd,Qh,Js,Tc",
		"2h,3h,4h,5h,7h",
		"2c,2d,2h,3s,3h",
		"2c,2d,2h,2s,3h",
		"Ah,2h,3h,4h,5h",
		"9h,Th,Jh,Qh,Kh",
		"Th,Jh,Qh,Kh,Ah",
	}

	for i := 1; i < len(hands); i++ {
		lower := evaluate(hands[i-1])
		higher := evaluate(hands[i])
		assert.Less(t, lower.Strength, higher.Strength, "%s should lose to %s", hands[i-1], hands[i])
	}
}

func TestEvaluate_Kickers(t *testing.T) {
	a := assert.New(t)

	a.Greater(evaluate("Ac,Ad,Kh,Qs,Jc").Strength, evaluate("Ac,Ad,Kh,Qs,Tc").Strength)
	a.Greater(evaluate("Kc,Kd,2h,2s,4c").Strength, evaluate("Kc,Kd,2h,2s,3c").Strength)
	a.Greater(evaluate("Kc,Kd,3h,3s,2c").Strength, evaluate("Kc,Kd,2h,2s,Ac").Strength)
	a.Greater(evaluate("3c,3d,3h,2s,2c").Strength, evaluate("2c,2d,2h,As,Ac").Strength)
	a.Greater(evaluate("5c,5d,5h,5s,3c").Strength, evaluate("5c,5d,5h,5s,2c").Strength)
	a.Greater(evaluate("Ah,9h,7h,4h,3h").Strength, evaluate("Ah,9h,7h,4h,2h").Strength)
	a.Equal(evaluate("Ah,Kh,Qd,Jc,9s").Strength, evaluate("As,Ks,Qh,Jd,9c").Strength)
}

func TestEvaluate_SevenCards(t *testing.T) {
	a := assert.New(t)

	e := evaluate("Ah,Kh,2c,3d,Qh,Jh,Th")
	a.Equal(RoyalFlush, e.Hand)

	e = evaluate("As,2c,3d,4h,5s,Kd,Kc")
	a.Equal(Straight, e.Hand)
	a.Equal("5s,4h,3d,2c,As", e.Cards.String())

	e = evaluate("As,2c,3d,4h,5s,6d,Kc")
	a.Equal("Straight, Six high", e.Description)

	e = evaluate("Kc,Kd,Kh,Qs,Qc,Qd,2h")
	a.Equal("Full house, Kings over Queens", e.Description)

	e = evaluate("2h,3h,4h,6h,9h,Ah,Kh")
	a.Equal(Flush, e.Hand)
	a.Equal("Ah,Kh,9h,6h,4h", e.Cards.String())

	// six cards work too
	e = evaluate("9c,9d,4h,4s,2c,2d")
	a.Equal("Two pair, Nines and Fours", e.Description)
}

func TestEvaluate_SharedBoard(t *testing.T) {
	board := "5c,6d,7h,8s,9c"
	p1 := evaluate("2c,3d," + board)
	p2 := evaluate("Kc,Kd," + board)
	assert.Equal(t, p1.Strength, p2.Strength)
	assert.Equal(t, Straight, p1.Hand)
}

func TestEvaluate_Panics(t *testing.T) {
	a := assert.New(t)
	a.Panics(func() { evaluate("Ac,Kd,Qh,Js") })
	a.Panics(func() { evaluate("Ac,Kd,Qh,Js,Tc,9c,8c,7c") })
	a.Panics(func() { New(deck.CardsFromString("Ac,Kd,Qh")) })
}

func TestEvaluate_WheelNeverBelowHighCardReading(t *testing.T) {
	// the wheel is a straight, and a straight outranks anything the same cards make without it
	wheel := evaluate("Ac,2d,3h,4s,5c")
	a := assert.New(t)
	a.Greater(wheel.Strength, calculateStrength(HighCard, []int{14, 5, 4, 3, 2}))
	a.Greater(wheel.Strength, evaluate("Ac,Ad,Ah,Ks,Qc").Strength)
	a.Less(wheel.Strength, evaluate("2c,3d,4h,5s,6c").Strength)
}

func TestEvaluate_BestOfCombinations(t *testing.T) {
	gen := rand.New(rand.NewSource(7)) // nolint:gosec
	for i := 0; i < 200; i++ {
		d := deck.New()
		d.Shuffle(gen)
		cards, _ := d.Deal(7)

		best := Evaluate(cards)
		eachCombination(cards, 5, func(combo []deck.Card) {
			assert.GreaterOrEqual(t, best.Strength, New(combo).GetStrength(), cards.String())
		})

		assert.Len(t, best.Cards, 5)
		for _, c := range best.Cards {
			assert.True(t, cards.HasCard(c))
		}

		assert.Equal(t, best.Hand, Hand(best.Strength/pow(strengthBase, tiebreakDigits)))
	}
}

func Test_calculateStrength(t *testing.T) {
	a := assert.New(t)
	a.Equal(0, calculateStrength(HighCard, nil))
	a.Equal(pow(15, 5), calculateStrength(OnePair, nil))
	a.Equal(14*pow(15, 4)+13*pow(15, 3), calculateStrength(HighCard, []int{14, 13}))
	a.Less(calculateStrength(HighCard, []int{14, 14, 14, 14, 14}), calculateStrength(OnePair, []int{2}))
}

func TestHand_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("High card", HighCard.String())
	a.Equal("Royal flush", RoyalFlush.String())
	a.Panics(func() { _ = Hand(99).String() })
}

func pow(base, exp int) int {
	n := 1
	for i := 0; i < exp; i++ {
		n *= base
	}

	return n
}

func TestEvaluation_JSON(t *testing.T) {
	golden.AssertJSON(t, evaluate("Ah,Kh,Qh,Jh,Th,2c,3d"))
	golden.AssertJSON(t, evaluate("5c,4d,3h,2s,Ac,Kd,9h"))
}
