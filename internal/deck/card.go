package deck

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists the four suits in deck construction order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	suit, err := parseSuit(str)
	if err != nil {
		return err
	}
	*s = suit
	return nil
}

// face tags which variant of Rank is in use.
type face uint8

const (
	faceNumber face = iota + 1
	faceJack
	faceQueen
	faceKing
	faceAce
)

// Rank is a tagged variant: a numbered rank carrying its pip count (2-10), or
// one of Jack, Queen, King, Ace. The zero Rank is invalid.
//
// Ordering is defined only by Value; nothing relies on the order the variants
// are declared in.
type Rank struct {
	face face
	pip  uint8
}

var (
	Two   = Rank{face: faceNumber, pip: 2}
	Three = Rank{face: faceNumber, pip: 3}
	Four  = Rank{face: faceNumber, pip: 4}
	Five  = Rank{face: faceNumber, pip: 5}
	Six   = Rank{face: faceNumber, pip: 6}
	Seven = Rank{face: faceNumber, pip: 7}
	Eight = Rank{face: faceNumber, pip: 8}
	Nine  = Rank{face: faceNumber, pip: 9}
	Ten   = Rank{face: faceNumber, pip: 10}
	Jack  = Rank{face: faceJack}
	Queen = Rank{face: faceQueen}
	King  = Rank{face: faceKing}
	Ace   = Rank{face: faceAce}
)

// Ranks lists every rank from lowest to highest.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Number returns the numbered rank with n pips.
func Number(n int) (Rank, error) {
	if n < 2 || n > 10 {
		return Rank{}, fmt.Errorf("number rank out of range: %d", n)
	}
	return Rank{face: faceNumber, pip: uint8(n)}, nil
}

// RankOf is the inverse of Rank.Value.
func RankOf(value int) (Rank, bool) {
	switch {
	case value >= 2 && value <= 10:
		return Rank{face: faceNumber, pip: uint8(value)}, true
	case value == 11:
		return Jack, true
	case value == 12:
		return Queen, true
	case value == 13:
		return King, true
	case value == 14:
		return Ace, true
	}
	return Rank{}, false
}

// Value is the total order over ranks used for hand comparison: pips for
// numbered ranks, then 11 (Jack) through 14 (Ace). Invalid ranks return 0.
func (r Rank) Value() int {
	switch r.face {
	case faceNumber:
		return int(r.pip)
	case faceJack:
		return 11
	case faceQueen:
		return 12
	case faceKing:
		return 13
	case faceAce:
		return 14
	default:
		return 0
	}
}

// IsNumber reports whether r is a numbered rank, and its pip count.
func (r Rank) IsNumber() (int, bool) {
	return int(r.pip), r.face == faceNumber
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r.Value() != 0
}

// String returns the rank label ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch r.face {
	case faceNumber:
		return strconv.Itoa(int(r.pip))
	case faceJack:
		return "J"
	case faceQueen:
		return "Q"
	case faceKing:
		return "K"
	case faceAce:
		return "A"
	default:
		return "?"
	}
}

// Name returns the spoken name of the rank, e.g. "Queen" or "Seven".
func (r Rank) Name() string {
	names := [...]string{2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven",
		8: "Eight", 9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace"}
	v := r.Value()
	if v == 0 {
		return "Unknown"
	}
	return names[v]
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	rank, err := parseRank(str)
	if err != nil {
		return err
	}
	*r = rank
	return nil
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Index maps the card onto 0..51, unique per card.
func (c Card) Index() int {
	return int(c.Suit)*13 + c.Rank.Value() - 2
}
