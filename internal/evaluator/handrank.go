package evaluator

import (
	"fmt"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

// Category is the class of a five-card poker hand, weakest first.
type Category uint8

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the comparable strength of a five-card hand: its category and
// the tie-break rank values that matter for that category, most significant
// first. Unused trailing slots are zero.
//
//	StraightFlush, Straight  high card (5 for A-2-3-4-5)
//	FourOfAKind              quad, kicker
//	FullHouse                trips, pair
//	Flush, HighCard          five ranks descending
//	ThreeOfAKind             trips, two kickers
//	TwoPair                  high pair, low pair, kicker
//	OnePair                  pair, three kickers
//
// Two HandRanks compare equal exactly when they are ==, which is the split
// pot condition.
type HandRank struct {
	Category Category `json:"category"`
	Ranks    [5]int   `json:"ranks"`
}

// Compare returns 1 if h is stronger than other, -1 if weaker and 0 if the two
// hands tie.
func (h HandRank) Compare(other HandRank) int {
	return Compare(h, other)
}

// Compare orders two hand ranks lexicographically: category first, then each
// tie-break rank in turn.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := range a.Ranks {
		if a.Ranks[i] != b.Ranks[i] {
			if a.Ranks[i] > b.Ranks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String describes the hand, e.g. "Full House, Aces over Kings".
func (h HandRank) String() string {
	r := h.Ranks
	switch h.Category {
	case StraightFlush:
		if r[0] == 14 {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", rankName(r[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", plural(r[0]))
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", plural(r[0]), plural(r[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(r[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(r[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", plural(r[0]))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", plural(r[0]), plural(r[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", plural(r[0]))
	case HighCard:
		return fmt.Sprintf("High Card, %s", rankName(r[0]))
	default:
		return "Unknown"
	}
}

// Hand is a HandRank together with the five cards that produced it, ordered for
// display (grouped cards first, then kickers).
type Hand struct {
	Rank  HandRank     `json:"rank"`
	Cards [5]deck.Card `json:"cards"`
}

func (h Hand) String() string {
	return fmt.Sprintf("%s %v", h.Rank, h.Cards)
}

func rankName(v int) string {
	r, ok := deck.RankOf(v)
	if !ok {
		return "?"
	}
	return r.Name()
}

func plural(v int) string {
	name := rankName(v)
	if name == "Six" {
		return "Sixes"
	}
	return name + "s"
}
