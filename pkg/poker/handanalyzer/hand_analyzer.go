package handanalyzer

import (
	"fmt"
	"sort"

	"walletpoker-server/pkg/deck"
)

// strengthBase is one more than the highest rank, so each tiebreak rank is a single digit
const strengthBase = 15

// tiebreakDigits is the number of rank digits below the category digit
const tiebreakDigits = 5

// HandAnalyzer analyzes exactly five cards
type HandAnalyzer struct {
	// cards sorted by rank, high to low
	cards deck.Hand

	quads         []int
	trips         []int
	pairs         []int
	singles       []int
	flush         bool
	straight      int
	straightFlush int

	hand     Hand
	strength int
	best     deck.Hand
}

// New analyzes a five card hand
func New(cards []deck.Card) *HandAnalyzer {
	if len(cards) != 5 {
		panic(fmt.Sprintf("hand analyzer requires five cards, got %d", len(cards)))
	}

	// clone to prevent modifying original
	sortedCards := make(deck.Hand, len(cards))
	copy(sortedCards, cards)
	sort.SliceStable(sortedCards, func(i, j int) bool {
		return sortedCards[i].Rank > sortedCards[j].Rank
	})

	h := &HandAnalyzer{cards: sortedCards}
	h.analyzeHand()
	h.calculateHand()
	return h
}

// analyzeHand groups the cards by rank and checks for flushes and straights
func (h *HandAnalyzer) analyzeHand() {
	counts := make(map[int]int)
	for _, card := range h.cards {
		counts[card.Rank]++
	}

	// cards are sorted, so walking them keeps each group ordered high to low
	seen := make(map[int]bool)
	for _, card := range h.cards {
		if seen[card.Rank] {
			continue
		}

		seen[card.Rank] = true
		switch counts[card.Rank] {
		case 4:
			h.quads = append(h.quads, card.Rank)
		case 3:
			h.trips = append(h.trips, card.Rank)
		case 2:
			h.pairs = append(h.pairs, card.Rank)
		default:
			h.singles = append(h.singles, card.Rank)
		}
	}

	h.flush = true
	for _, card := range h.cards[1:] {
		if card.Suit != h.cards[0].Suit {
			h.flush = false
			break
		}
	}

	h.straight = checkStraight(h.cards)
	if h.flush {
		h.straightFlush = h.straight
	}
}

func (h *HandAnalyzer) calculateHand() {
	switch {
	case h.straightFlush == deck.Ace:
		h.hand = RoyalFlush
		h.strength = calculateStrength(RoyalFlush, nil)
	case h.straightFlush > 0:
		h.hand = StraightFlush
		h.strength = calculateStrength(StraightFlush, []int{h.straightFlush})
	case len(h.quads) > 0:
		h.hand = FourOfAKind
		h.strength = calculateStrength(FourOfAKind, append([]int{h.quads[0]}, h.singles...))
	case len(h.trips) > 0 && len(h.pairs) > 0:
		h.hand = FullHouse
		h.strength = calculateStrength(FullHouse, []int{h.trips[0], h.pairs[0]})
	case h.flush:
		h.hand = Flush
		h.strength = calculateStrength(Flush, h.ranks())
	case h.straight > 0:
		h.hand = Straight
		h.strength = calculateStrength(Straight, []int{h.straight})
	case len(h.trips) > 0:
		h.hand = ThreeOfAKind
		h.strength = calculateStrength(ThreeOfAKind, append([]int{h.trips[0]}, h.singles...))
	case len(h.pairs) >= 2:
		h.hand = TwoPair
		h.strength = calculateStrength(TwoPair, append([]int{h.pairs[0], h.pairs[1]}, h.singles...))
	case len(h.pairs) == 1:
		h.hand = OnePair
		h.strength = calculateStrength(OnePair, append([]int{h.pairs[0]}, h.singles...))
	default:
		h.hand = HighCard
		h.strength = calculateStrength(HighCard, h.ranks())
	}

	h.best = h.orderBestCards()
}

// orderBestCards orders the five cards the way they are read: groups first, kickers after,
// and a wheel with the ace last
func (h *HandAnalyzer) orderBestCards() deck.Hand {
	if h.straight == 5 {
		ordered := make(deck.Hand, 0, 5)
		ordered = append(ordered, h.cards[1:]...)
		return append(ordered, h.cards[0])
	}

	order := make([]int, 0, 5)
	order = append(order, h.quads...)
	order = append(order, h.trips...)
	order = append(order, h.pairs...)
	order = append(order, h.singles...)

	ordered := make(deck.Hand, 0, 5)
	for _, rank := range order {
		for _, card := range h.cards {
			if card.Rank == rank {
				ordered = append(ordered, card)
			}
		}
	}

	return ordered
}

func (h *HandAnalyzer) ranks() []int {
	r := make([]int, len(h.cards))
	for i, card := range h.cards {
		r[i] = card.Rank
	}

	return r
}

// calculateStrength encodes the category as the most significant digit followed by up to five
// tiebreak ranks, highest first
func calculateStrength(hand Hand, ranks []int) int {
	strength := int(hand)
	for i := 0; i < tiebreakDigits; i++ {
		strength *= strengthBase
		if i < len(ranks) {
			strength += ranks[i]
		}
	}

	return strength
}

// GetHand will return the category of the hand
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetStrength returns the comparable strength of the hand
func (h *HandAnalyzer) GetStrength() int {
	return h.strength
}

// GetBestCards returns the five cards in reading order
func (h *HandAnalyzer) GetBestCards() deck.Hand {
	return h.best.Clone()
}

// Description returns a human readable description, i.e., "Full house, Kings over Threes"
func (h *HandAnalyzer) Description() string {
	switch h.hand {
	case RoyalFlush:
		return "Royal flush"
	case StraightFlush:
		return fmt.Sprintf("Straight flush, %s high", deck.RankName(h.straightFlush))
	case FourOfAKind:
		return fmt.Sprintf("Four of a kind, %s", pluralRank(h.quads[0]))
	case FullHouse:
		return fmt.Sprintf("Full house, %s over %s", pluralRank(h.trips[0]), pluralRank(h.pairs[0]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", deck.RankName(h.cards[0].Rank))
	case Straight:
		return fmt.Sprintf("Straight, %s high", deck.RankName(h.straight))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a kind, %s", pluralRank(h.trips[0]))
	case TwoPair:
		return fmt.Sprintf("Two pair, %s and %s", pluralRank(h.pairs[0]), pluralRank(h.pairs[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", pluralRank(h.pairs[0]))
	case HighCard:
		return fmt.Sprintf("High card, %s", deck.RankName(h.cards[0].Rank))
	}

	panic(fmt.Sprintf("unknown hand: %d", h.hand))
}

func pluralRank(rank int) string {
	if rank == 6 {
		return "Sixes"
	}

	return deck.RankName(rank) + "s"
}
