package potmanager

import (
	"sort"
)

type tier struct {
	strength int
	hands    []RankedHand
}

// WinManager groups showdown hands by strength
type WinManager map[int]*tier

// NewWinManager returns an empty WinManager
func NewWinManager() WinManager {
	return make(WinManager)
}

// AddHand adds a hand to the tier of its strength
func (w WinManager) AddHand(hand RankedHand) {
	t, ok := w[hand.Strength]
	if !ok {
		t = &tier{
			strength: hand.Strength,
			hands:    make([]RankedHand, 0),
		}
	}

	t.hands = append(t.hands, hand)
	w[hand.Strength] = t
}

// GetSortedTiers returns the hands grouped by strength, strongest first
// Hands within a tier are in seat order.
func (w WinManager) GetSortedTiers() [][]RankedHand {
	tiers := make([]*tier, 0, len(w))
	for _, tier := range w {
		tiers = append(tiers, tier)
	}

	sort.Sort(sort.Reverse(sortByStrength(tiers)))

	tiered := make([][]RankedHand, len(tiers))
	for i, t := range tiers {
		sort.Slice(t.hands, func(a, b int) bool {
			return t.hands[a].Seat < t.hands[b].Seat
		})
		tiered[i] = t.hands
	}

	return tiered
}

type sortByStrength []*tier

func (s sortByStrength) Len() int {
	return len(s)
}

func (s sortByStrength) Less(i, j int) bool {
	return s[i].strength < s[j].strength
}

func (s sortByStrength) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
