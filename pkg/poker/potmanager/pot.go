package potmanager

// Contribution is everything a seat put into the pot over the whole hand
type Contribution struct {
	PlayerID string
	Seat     int
	Amount   int
	Folded   bool
}

// Pot is a main or side pot
type Pot struct {
	Amount int `json:"amount"`
	// Eligible lists the players who can win the pot, in seat order
	Eligible []string `json:"eligible"`
}

// IsEligible returns true if the player can win the pot
func (p *Pot) IsEligible(playerID string) bool {
	for _, id := range p.Eligible {
		if id == playerID {
			return true
		}
	}

	return false
}

// Pots is an ordered list of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
