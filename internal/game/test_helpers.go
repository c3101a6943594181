package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

// TestRoundOption configures test round creation
type TestRoundOption func(*testRoundBuilder)

type testRoundBuilder struct {
	seed    int64
	chips   int
	players []string
	opts    []Option
}

// WithSeed seeds the shuffle.
func WithSeed(seed int64) TestRoundOption {
	return func(b *testRoundBuilder) { b.seed = seed }
}

// WithPlayers seats the named players in order.
func WithPlayers(names ...string) TestRoundOption {
	return func(b *testRoundBuilder) { b.players = names }
}

// WithStartingChips sets every seeded player's stack. Default 1000.
func WithStartingChips(chips int) TestRoundOption {
	return func(b *testRoundBuilder) { b.chips = chips }
}

// WithStackedDeck deals the given cards in order on every hand. Cards not
// listed follow in the default unshuffled order.
func WithStackedDeck(cards string) TestRoundOption {
	return func(b *testRoundBuilder) {
		b.opts = append(b.opts, WithDeck(func() *deck.Deck { return StackedDeck(cards) }))
	}
}

// WithRoundOptions passes options straight to NewRound.
func WithRoundOptions(opts ...Option) TestRoundOption {
	return func(b *testRoundBuilder) { b.opts = append(b.opts, opts...) }
}

// NewTestRound creates a round with sensible defaults and any players seated.
// It panics on setup errors.
func NewTestRound(opts ...TestRoundOption) *Round {
	b := &testRoundBuilder{seed: 42, chips: 1000}
	for _, opt := range opts {
		opt(b)
	}

	roundOpts := append([]Option{
		WithRNG(randutil.New(b.seed)),
		WithLogger(log.New(io.Discard)),
	}, b.opts...)
	r := NewRound(roundOpts...)

	for _, name := range b.players {
		if err := r.AddPlayer(name, b.chips); err != nil {
			panic(err)
		}
	}
	return r
}

// HeadsUpRound seats Alice and Bob.
func HeadsUpRound(opts ...TestRoundOption) *Round {
	return NewTestRound(append([]TestRoundOption{WithPlayers("Alice", "Bob")}, opts...)...)
}

// StackedDeck returns a deck that deals the given cards first, then the rest
// of the deck in its default order.
func StackedDeck(cards string) *deck.Deck {
	top := deck.MustParseCards(cards)
	used := make(map[deck.Card]bool, len(top))
	for _, c := range top {
		used[c] = true
	}
	all := append([]deck.Card(nil), top...)
	for _, c := range deck.New().Cards() {
		if !used[c] {
			all = append(all, c)
		}
	}
	return deck.FromCards(all)
}
