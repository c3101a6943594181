package deck

import (
	"errors"
	"testing"

	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	d := New()
	if d.Remaining() != Size {
		t.Fatalf("Expected %d cards, got %d", Size, d.Remaining())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if !seen[NewCard(suit, rank)] {
				t.Errorf("missing %s", NewCard(suit, rank))
			}
		}
	}
}

func TestShufflePreservesCards(t *testing.T) {
	d := New()
	before := make(map[Card]int)
	for _, c := range d.Cards() {
		before[c]++
	}

	d.Shuffle(randutil.New(42))

	after := make(map[Card]int)
	for _, c := range d.Cards() {
		after[c]++
	}
	if len(after) != len(before) {
		t.Fatalf("shuffle changed card set: %d vs %d", len(after), len(before))
	}
	for c, n := range before {
		if after[c] != n {
			t.Errorf("card %s count %d after shuffle, want %d", c, after[c], n)
		}
	}
}

func TestShuffleDeterministicPerSeed(t *testing.T) {
	a, b := New(), New()
	a.Shuffle(randutil.New(7))
	b.Shuffle(randutil.New(7))
	if !cardsEqual(a.Cards(), b.Cards()) {
		t.Error("same seed should give same order")
	}

	c := New()
	c.Shuffle(randutil.New(8))
	if cardsEqual(a.Cards(), c.Cards()) {
		t.Error("different seeds should give different orders")
	}
}

func TestDrawUntilExhausted(t *testing.T) {
	d := New()
	d.Shuffle(randutil.New(42))

	for i := 0; i < Size; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("Draw failed at card %d: %v", i+1, err)
		}
	}
	if d.Remaining() != 0 {
		t.Fatalf("Expected empty deck, %d remain", d.Remaining())
	}

	if _, err := d.Draw(); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Draw on empty deck = %v, want ErrDeckExhausted", err)
	}
}

func TestDrawNIsAllOrNothing(t *testing.T) {
	d := FromCards(MustParseCards("AsKsQs"))

	got, err := d.DrawN(2)
	if err != nil {
		t.Fatal(err)
	}
	if !cardsEqual(got, MustParseCards("AsKs")) {
		t.Errorf("DrawN(2) = %v", got)
	}

	if _, err := d.DrawN(2); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("DrawN past end = %v, want ErrDeckExhausted", err)
	}
	if d.Remaining() != 1 {
		t.Errorf("failed DrawN must not consume cards, %d remain", d.Remaining())
	}
}
