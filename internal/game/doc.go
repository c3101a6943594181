// Package game implements the Texas Hold'em round state machine.
//
// The main type is Round, which owns the seated players, the deck, the
// community cards and the pot, and moves a hand from the deal through the
// betting streets to the showdown.
//
// # Basic Usage
//
//	r := game.NewRound(game.WithRNG(randutil.New(42)))
//	r.AddPlayer("Alice", 1000)
//	r.AddPlayer("Bob", 1000)
//	r.Deal()
//	r.Bet("Alice", 100)
//	r.Call("Bob") // the flop is dealt, current bet resets to 0
//
// Every mutator returns a typed error (ErrNotPlayersTurn, ErrInsufficientChips,
// ...) and leaves the Round unchanged on failure. Use errors.Is to match them,
// or ErrorCode for a stable string.
//
// # Betting
//
// Bet amounts are street totals: Bet("Bob", 300) after Bob has put in 100 this
// street costs him 200 more. A street ends once every unfolded player has acted
// and matched the current bet. There are no blinds, all-ins or side pots: a
// player who can't cover a bet must fold.
//
// # Deterministic Testing
//
// Seed the shuffle with WithRNG(randutil.New(seed)), or stack the deck
// completely with WithDeck:
//
//	r := game.NewRound(game.WithDeck(func() *deck.Deck {
//	    return deck.FromCards(deck.MustParseCards("AsAh KdKc 2c7d9hJsQs"))
//	}))
//
// # Concurrency
//
// A Round is safe for concurrent use. Each exported method holds the Round's
// mutex for its whole duration, so concurrent actions are applied one at a time
// and readers never see a half-applied action.
package game
