// Package evaluator ranks poker hands. It finds the best five-card hand out of
// five to seven cards and orders hands for showdown, including exact ties.
package evaluator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

// MaxCards is the most cards a hold'em player can combine: two hole cards and
// five on the board.
const MaxCards = 7

var (
	ErrInsufficientCards = errors.New("insufficient cards")
	ErrTooManyCards      = errors.New("too many cards")
	ErrDuplicateCard     = errors.New("duplicate card")
	ErrInvalidCard       = errors.New("invalid card")
	ErrInvalidHole       = errors.New("hole must be exactly two cards")
)

// Evaluate ranks the best hand a player can make from two hole cards and zero
// to five community cards. Fewer than five cards in total is
// ErrInsufficientCards.
func Evaluate(hole, community []deck.Card) (HandRank, error) {
	h, err := EvaluateHand(hole, community)
	return h.Rank, err
}

// EvaluateHand is Evaluate, also returning the five cards used.
func EvaluateHand(hole, community []deck.Card) (Hand, error) {
	if len(hole) != 2 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrInvalidHole, len(hole))
	}
	if len(community) > 5 {
		return Hand{}, fmt.Errorf("%w: %d community cards", ErrTooManyCards, len(community))
	}
	cards := make([]deck.Card, 0, MaxCards)
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return BestHand(cards)
}

// EvaluateBest ranks the best five-card subset of 5 to 7 cards. The result
// depends only on the set of cards, not their order.
func EvaluateBest(cards []deck.Card) (HandRank, error) {
	h, err := BestHand(cards)
	return h.Rank, err
}

// BestHand is EvaluateBest, also returning the five cards used.
func BestHand(cards []deck.Card) (Hand, error) {
	if err := validate(cards); err != nil {
		return Hand{}, err
	}

	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b deck.Card) int {
		if c := cmp.Compare(b.Rank.Value(), a.Rank.Value()); c != 0 {
			return c
		}
		return cmp.Compare(a.Suit, b.Suit)
	})

	// Every C(n,5) subset, at most 21. Subsets are visited in a fixed order over
	// the canonically sorted cards so the chosen five are deterministic too.
	n := len(sorted)
	var best Hand
	found := false
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five := [5]deck.Card{sorted[a], sorted[b], sorted[c], sorted[d], sorted[e]}
						rank := classify(five)
						if !found || rank.Compare(best.Rank) > 0 {
							best = Hand{Rank: rank, Cards: five}
							found = true
						}
					}
				}
			}
		}
	}

	arrange(&best)
	return best, nil
}

func validate(cards []deck.Card) error {
	switch {
	case len(cards) < 5:
		return fmt.Errorf("%w: need at least 5, got %d", ErrInsufficientCards, len(cards))
	case len(cards) > MaxCards:
		return fmt.Errorf("%w: at most %d, got %d", ErrTooManyCards, MaxCards, len(cards))
	}

	var seen [deck.Size]bool
	for _, c := range cards {
		if !validCard(c) {
			return fmt.Errorf("%w: %v", ErrInvalidCard, c)
		}
		if seen[c.Index()] {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c.Index()] = true
	}
	return nil
}

func validCard(c deck.Card) bool {
	return c.Rank.Valid() && c.Suit >= deck.Hearts && c.Suit <= deck.Spades
}

type group struct {
	value int
	count int
}

// classify ranks exactly five distinct cards.
func classify(five [5]deck.Card) HandRank {
	var counts [15]int
	flush := true
	for i, c := range five {
		counts[c.Rank.Value()]++
		if i > 0 && c.Suit != five[0].Suit {
			flush = false
		}
	}

	// Groups ordered by size, then by rank: this is exactly the tie-break order
	// for every non-straight category.
	groups := make([]group, 0, 5)
	for v := 14; v >= 2; v-- {
		if counts[v] > 0 {
			groups = append(groups, group{value: v, count: counts[v]})
		}
	}
	slices.SortStableFunc(groups, func(a, b group) int {
		return cmp.Compare(b.count, a.count)
	})

	var ranks [5]int
	for i, g := range groups {
		ranks[i] = g.value
	}

	high := straightHigh(groups)
	switch {
	case flush && high > 0:
		return HandRank{Category: StraightFlush, Ranks: [5]int{high}}
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Ranks: ranks}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Ranks: ranks}
	case flush:
		return HandRank{Category: Flush, Ranks: ranks}
	case high > 0:
		return HandRank{Category: Straight, Ranks: [5]int{high}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Ranks: ranks}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Ranks: ranks}
	case groups[0].count == 2:
		return HandRank{Category: OnePair, Ranks: ranks}
	default:
		return HandRank{Category: HighCard, Ranks: ranks}
	}
}

// straightHigh returns the top card of a straight, 5 for the wheel
// (A-2-3-4-5), or 0 when the five ranks are not consecutive.
func straightHigh(groups []group) int {
	if len(groups) != 5 {
		return 0
	}
	if groups[0].value-groups[4].value == 4 {
		return groups[0].value
	}
	if groups[0].value == 14 && groups[1].value == 5 {
		return 5
	}
	return 0
}

// arrange orders the cards of h for display: bigger groups first, then higher
// ranks, with the ace played low at the end of a wheel.
func arrange(h *Hand) {
	wheel := (h.Rank.Category == Straight || h.Rank.Category == StraightFlush) && h.Rank.Ranks[0] == 5

	var counts [15]int
	for _, c := range h.Cards {
		counts[c.Rank.Value()]++
	}
	value := func(c deck.Card) int {
		if wheel && c.Rank == deck.Ace {
			return 1
		}
		return c.Rank.Value()
	}

	slices.SortFunc(h.Cards[:], func(a, b deck.Card) int {
		if c := cmp.Compare(counts[b.Rank.Value()], counts[a.Rank.Value()]); c != 0 {
			return c
		}
		if c := cmp.Compare(value(b), value(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.Suit, b.Suit)
	})
}
