package handanalyzer

import "walletpoker-server/pkg/deck"

// checkStraight returns the high card of a five card straight, or 0
// cards must be sorted high to low. The ace plays low only for the wheel.
func checkStraight(cards deck.Hand) int {
	for i := 1; i < len(cards); i++ {
		if cards[i].Rank == cards[i-1].Rank {
			return 0
		}
	}

	high := cards[0].Rank
	low := cards[len(cards)-1].Rank
	if high-low == len(cards)-1 {
		return high
	}

	// A-5-4-3-2
	if high == deck.Ace && cards[1].Rank == 5 && low == 2 {
		return 5
	}

	return 0
}
