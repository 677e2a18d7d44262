package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoEligibleWinner is returned when a pot holds chips that nobody can win
var ErrNoEligibleWinner = errors.New("pot has no eligible winner")

// ComputePots splits the hand's contributions into a main pot and side pots
// Every distinct amount put in by a player still in the hand is a tier. Each pot takes the
// slice between the previous tier and its own from every contributor, folded players included,
// and can only be won by non-folded players who reached the tier. Folded chips above the
// highest tier are dead money in the last pot.
func ComputePots(contributions []Contribution) Pots {
	sorted := make([]Contribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seat < sorted[j].Seat
	})

	tierSet := make(map[int]bool)
	for _, c := range sorted {
		if !c.Folded && c.Amount > 0 {
			tierSet[c.Amount] = true
		}
	}

	tiers := make([]int, 0, len(tierSet))
	for amount := range tierSet {
		tiers = append(tiers, amount)
	}
	sort.Ints(tiers)

	pots := make(Pots, 0, len(tiers))
	prevTier := 0
	for _, level := range tiers {
		pot := &Pot{Eligible: make([]string, 0)}
		for _, c := range sorted {
			pot.Amount += minInt(c.Amount, level) - minInt(c.Amount, prevTier)
			if !c.Folded && c.Amount >= level {
				pot.Eligible = append(pot.Eligible, c.PlayerID)
			}
		}

		pots = append(pots, pot)
		prevTier = level
	}

	deadMoney := 0
	for _, c := range sorted {
		if c.Amount > prevTier {
			deadMoney += c.Amount - prevTier
		}
	}

	if deadMoney > 0 {
		if len(pots) == 0 {
			// only folded players put money in, which leaves nobody to win it
			pots = append(pots, &Pot{Eligible: make([]string, 0)})
		}

		pots[len(pots)-1].Amount += deadMoney
	}

	return pots
}

// RankedHand is a player's showdown hand
type RankedHand struct {
	PlayerID string
	Seat     int
	Strength int
}

// DistributePots awards every pot to the best eligible hand
// Ties split the pot evenly and the chips that do not divide go to one winner chosen by rule.
// The returned map holds the total won by each player.
func DistributePots(pots Pots, hands []RankedHand, rule RemainderRule, dealerSeat, seatCount int) (map[string]int, error) {
	wm := NewWinManager()
	for _, hand := range hands {
		wm.AddHand(hand)
	}
	tiers := wm.GetSortedTiers()

	payouts := make(map[string]int)
	for i, pot := range pots {
		if pot.Amount == 0 {
			continue
		}

		winners := bestEligible(tiers, pot)
		if len(winners) == 0 {
			return nil, fmt.Errorf("pot %d of %d chips: %w", i, pot.Amount, ErrNoEligibleWinner)
		}

		share := pot.Amount / len(winners)
		for _, winner := range winners {
			payouts[winner.PlayerID] += share
		}

		if remainder := pot.Amount % len(winners); remainder > 0 {
			payouts[rule.pick(winners, dealerSeat, seatCount).PlayerID] += remainder
		}
	}

	return payouts, nil
}

// bestEligible returns the strongest hands that can win the pot
func bestEligible(tiers [][]RankedHand, pot *Pot) []RankedHand {
	for _, level := range tiers {
		winners := make([]RankedHand, 0, len(level))
		for _, hand := range level {
			if pot.IsEligible(hand.PlayerID) {
				winners = append(winners, hand)
			}
		}

		if len(winners) > 0 {
			return winners
		}
	}

	return nil
}

// CalculateRake returns the operator's cut of a pot, rounded down
func CalculateRake(pot, percent int) int {
	if pot <= 0 || percent <= 0 {
		return 0
	}

	return pot * percent / 100
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
