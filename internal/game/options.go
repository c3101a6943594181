package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/handid"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

// MaxSeats is the most players a Round can seat: 23 hands of two hole cards
// plus five community cards fit in one deck.
const MaxSeats = (deck.Size - 5) / 2

// Option configures a Round during creation.
type Option func(*roundConfig)

type roundConfig struct {
	rng      *rand.Rand
	logger   *log.Logger
	maxSeats int
	ids      *handid.Generator
	newDeck  func() *deck.Deck
}

func defaultConfig() *roundConfig {
	return &roundConfig{
		maxSeats: MaxSeats,
		ids:      handid.NewGenerator(nil),
	}
}

// WithRNG sets the random source used to shuffle every deck the Round deals.
// It should be created once per process; the Round never reseeds it.
func WithRNG(rng *rand.Rand) Option {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *roundConfig) {
		c.logger = logger
	}
}

// WithMaxSeats limits the table size. Values outside 2..MaxSeats are clamped.
func WithMaxSeats(n int) Option {
	return func(c *roundConfig) {
		c.maxSeats = min(max(n, 2), MaxSeats)
	}
}

// WithHandIDs sets the generator for hand IDs.
func WithHandIDs(g *handid.Generator) Option {
	return func(c *roundConfig) {
		c.ids = g
	}
}

// WithDeck replaces shuffling: every Deal draws from a deck returned by fn,
// in the order given. Used to stack decks in tests.
func WithDeck(fn func() *deck.Deck) Option {
	return func(c *roundConfig) {
		c.newDeck = fn
	}
}

func (c *roundConfig) finish() {
	if c.rng == nil {
		c.rng = randutil.New(randutil.ProcessSeed())
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.ids == nil {
		c.ids = handid.NewGenerator(nil)
	}
}
