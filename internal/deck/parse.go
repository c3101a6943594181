package deck

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseCards parses card notation into a slice of cards.
// Cards may be concatenated ("AsKs") or separated by spaces or commas
// ("A♠ 10h, Td"). Ranks: A K Q J T|10 9..2. Suits: s h d c or ♠ ♥ ♦ ♣.
func ParseCards(s string) ([]Card, error) {
	runes := []rune(s)
	var cards []Card
	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) || runes[i] == ',' {
			i++
			continue
		}

		rankLen := 1
		if runes[i] == '1' && i+1 < len(runes) && runes[i+1] == '0' {
			rankLen = 2
		}
		if i+rankLen >= len(runes) {
			return nil, fmt.Errorf("incomplete card at position %d", i)
		}

		rank, err := parseRank(string(runes[i : i+rankLen]))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		suit, err := parseSuit(string(runes[i+rankLen]))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+rankLen, err)
		}
		cards = append(cards, NewCard(suit, rank))
		i += rankLen + 1
	}
	return cards, nil
}

// ParseCard parses exactly one card.
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, fmt.Errorf("expected one card, got %d in %q", len(cards), s)
	}
	return cards[0], nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	case "J":
		return Jack, nil
	case "T", "10":
		return Ten, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Number(int(s[0] - '0'))
	}
	return Rank{}, fmt.Errorf("invalid rank %q", s)
}

func parseSuit(s string) (Suit, error) {
	switch strings.ToLower(s) {
	case "h", "♥":
		return Hearts, nil
	case "d", "♦":
		return Diamonds, nil
	case "c", "♣":
		return Clubs, nil
	case "s", "♠":
		return Spades, nil
	}
	return 0, fmt.Errorf("invalid suit %q", s)
}
