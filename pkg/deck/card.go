package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits is every suit in deck order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Letter returns the single character used in card notation
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	}

	panic(fmt.Sprintf("unknown suit: %q", string(s)))
}

// face cards
const (
	Ten     = 10
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

// Card is an individual playing card
// Cards are values; two cards are equal when their rank and suit match.
type Card struct {
	Rank int
	Suit Suit
}

// RankString returns the single character rank notation (2-9, T, J, Q, K, A)
func RankString(rank int) string {
	switch rank {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace, LowAce:
		return "A"
	}

	if rank >= 2 && rank <= 9 {
		return string(rune('0' + rank))
	}

	panic(fmt.Sprintf("unknown rank: %d", rank))
}

// RankName returns the English name of a rank, i.e., "King"
func RankName(rank int) string {
	switch rank {
	case 2:
		return "Two"
	case 3:
		return "Three"
	case 4:
		return "Four"
	case 5:
		return "Five"
	case 6:
		return "Six"
	case 7:
		return "Seven"
	case 8:
		return "Eight"
	case 9:
		return "Nine"
	case Ten:
		return "Ten"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace, LowAce:
		return "Ace"
	}

	panic(fmt.Sprintf("unknown rank: %d", rank))
}

// String returns the two character notation, i.e., "Ah" or "Td"
func (c Card) String() string {
	return RankString(c.Rank) + c.Suit.Letter()
}

// IsValid returns true if the card belongs to the standard 52 card deck
func (c Card) IsValid() bool {
	if c.Rank < 2 || c.Rank > Ace {
		return false
	}

	switch c.Suit {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}

	return false
}

// CardFromString returns a Card from the two character notation
func CardFromString(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var rank int
	switch r := strings.ToUpper(s[0:1]); r {
	case "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		if r[0] < '2' || r[0] > '9' {
			return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
		}

		rank = int(r[0] - '0')
	}

	var suit Suit
	switch strings.ToLower(s[1:2]) {
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	case "s":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// CardsFromString returns a slice of cards from a comma separated list, i.e., "Ah,Kh,2c"
// It panics on malformed input and is intended for fixtures and tests.
func CardsFromString(s string) Hand {
	if s == "" {
		return Hand{}
	}

	parts := strings.Split(s, ",")
	cards := make(Hand, len(parts))
	for i, part := range parts {
		card, err := CardFromString(strings.TrimSpace(part))
		if err != nil {
			panic(err)
		}

		cards[i] = card
	}

	return cards
}

// MarshalJSON encodes the card in two character notation
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from two character notation
func (c *Card) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	card, err := CardFromString(s)
	if err != nil {
		return err
	}

	*c = card
	return nil
}
