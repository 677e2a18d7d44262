package potmanager

import "fmt"

// RemainderRule decides who receives the odd chips of a split pot
type RemainderRule string

// remainder rules
const (
	// RemainderToFirstSeat gives the odd chips to the tied winner with the lowest seat index
	RemainderToFirstSeat RemainderRule = "first-seat"
	// RemainderToLeftOfDealer gives the odd chips to the first tied winner clockwise from the button
	RemainderToLeftOfDealer RemainderRule = "left-of-dealer"
)

// ParseRemainderRule returns the rule for its configuration name
func ParseRemainderRule(s string) (RemainderRule, error) {
	switch RemainderRule(s) {
	case RemainderToFirstSeat, RemainderToLeftOfDealer:
		return RemainderRule(s), nil
	}

	return "", fmt.Errorf("unknown remainder rule: %q", s)
}

// pick returns the single winner who takes the remainder
// winners must not be empty
func (r RemainderRule) pick(winners []RankedHand, dealerSeat, seatCount int) RankedHand {
	switch r {
	case RemainderToLeftOfDealer:
		if seatCount <= 0 {
			panic("seat count is required for the left of dealer rule")
		}

		best := winners[0]
		bestDistance := seatDistance(dealerSeat, best.Seat, seatCount)
		for _, w := range winners[1:] {
			if d := seatDistance(dealerSeat, w.Seat, seatCount); d < bestDistance {
				best = w
				bestDistance = d
			}
		}

		return best
	case RemainderToFirstSeat:
		best := winners[0]
		for _, w := range winners[1:] {
			if w.Seat < best.Seat {
				best = w
			}
		}

		return best
	}

	panic(fmt.Sprintf("unknown remainder rule: %q", string(r)))
}

// seatDistance is how many seats clockwise from the dealer a seat is, 1 being the seat to the
// dealer's left and seatCount the dealer
func seatDistance(dealerSeat, seat, seatCount int) int {
	d := (seat - dealerSeat + seatCount) % seatCount
	if d == 0 {
		return seatCount
	}

	return d
}
