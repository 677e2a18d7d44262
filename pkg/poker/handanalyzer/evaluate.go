package handanalyzer

import (
	"fmt"

	"walletpoker-server/pkg/deck"
)

// Evaluation is the best five card hand that can be made from a set of cards
type Evaluation struct {
	Hand        Hand      `json:"hand"`
	Strength    int       `json:"strength"`
	Cards       deck.Hand `json:"cards"`
	Description string    `json:"description"`
}

// Evaluate returns the best hand from five to seven cards
// Five cards are analyzed directly; otherwise every five card combination is analyzed and the
// strongest is kept. Passing fewer than five or more than seven cards is a programming error.
func Evaluate(cards []deck.Card) Evaluation {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("cannot evaluate %d cards", len(cards)))
	}

	var best *HandAnalyzer
	eachCombination(cards, 5, func(combo []deck.Card) {
		h := New(combo)
		if best == nil || h.GetStrength() > best.GetStrength() {
			best = h
		}
	})

	return Evaluation{
		Hand:        best.GetHand(),
		Strength:    best.GetStrength(),
		Cards:       best.GetBestCards(),
		Description: best.Description(),
	}
}

// eachCombination calls fn with every k sized combination of cards
// The slice passed to fn is reused between calls.
func eachCombination(cards []deck.Card, k int, fn func([]deck.Card)) {
	combo := make([]deck.Card, k)

	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			fn(combo)
			return
		}

		for i := start; i <= len(cards)-(k-depth); i++ {
			combo[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}

	walk(0, 0)
}
