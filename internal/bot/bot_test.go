package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNewStrategies(t *testing.T) {
	t.Parallel()

	for _, name := range Strategies {
		s, err := New(name, randutil.New(1), testLogger())
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}

	s, err := New("RAND", randutil.New(1), testLogger())
	require.NoError(t, err)
	assert.Equal(t, "random", s.Name())

	_, err = New("shark", randutil.New(1), testLogger())
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestFoldBotChecksWhenFree(t *testing.T) {
	t.Parallel()
	r := game.HeadsUpRound()
	require.NoError(t, r.Deal())

	d, err := Play(r, "Alice", NewFoldBot(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, game.Check, d.Action)

	d, err = Play(r, "Bob", NewFoldBot(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, game.Check, d.Action)
	assert.Equal(t, game.Flop, r.Street())
}

func TestFoldBotFoldsToBet(t *testing.T) {
	t.Parallel()
	r := game.HeadsUpRound()
	require.NoError(t, r.Deal())
	require.NoError(t, r.Bet("Alice", 100))

	d, err := Play(r, "Bob", NewFoldBot(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Action)
	assert.Equal(t, game.PhaseComplete, r.Phase())

	alice, _ := r.Player("Alice")
	assert.Equal(t, 1000, alice.Chips)
}

func TestCallBotCalls(t *testing.T) {
	t.Parallel()
	r := game.HeadsUpRound()
	require.NoError(t, r.Deal())
	require.NoError(t, r.Bet("Alice", 100))

	d, err := Play(r, "Bob", NewCallBot(testLogger()))
	require.NoError(t, err)
	assert.Equal(t, game.Call, d.Action)
	assert.Equal(t, 100, d.Amount)
	assert.Equal(t, game.Flop, r.Street())
	assert.Equal(t, 200, r.Pot())
}

func TestPlayRequiresTurn(t *testing.T) {
	t.Parallel()
	r := game.HeadsUpRound()

	_, err := Play(r, "Alice", NewCallBot(testLogger()))
	assert.ErrorIs(t, err, ErrNotOnTurn)

	require.NoError(t, r.Deal())
	_, err = Play(r, "Bob", NewCallBot(testLogger()))
	assert.ErrorIs(t, err, ErrNotOnTurn)
}

func TestChartBotFollowsStartingHandChart(t *testing.T) {
	t.Parallel()
	// Alice is dealt As Ac, Bob Kd 7c.
	r := game.HeadsUpRound(game.WithStackedDeck("As Kd Ac 7c"))
	require.NoError(t, r.Deal())

	chart := NewChartBot(testLogger())

	d, err := Play(r, "Alice", chart)
	require.NoError(t, err)
	assert.Equal(t, game.Bet, d.Action)
	assert.Contains(t, d.Reasoning, "AA")

	d, err = Play(r, "Bob", chart)
	require.NoError(t, err)
	assert.Equal(t, game.Fold, d.Action)
	assert.Contains(t, d.Reasoning, "K7o")
	assert.Equal(t, game.PhaseComplete, r.Phase())
}

func TestViewHidesOpponentCards(t *testing.T) {
	t.Parallel()
	r := game.NewTestRound(game.WithPlayers("Alice", "Bob", "Carol"))
	require.NoError(t, r.Deal())

	view, ok := ViewFor(r.Snapshot(), "Alice", r.ValidActions("Alice"))
	require.True(t, ok)
	assert.Len(t, view.Self.Hole, 2)
	assert.Equal(t, 2, view.Opponents())
	assert.Equal(t, 0, view.Owes())
	for _, p := range view.Table.Players {
		if p.Name != "Alice" {
			assert.Empty(t, p.Hole, p.Name)
		}
	}

	_, ok = ViewFor(r.Snapshot(), "Mallory", nil)
	assert.False(t, ok)
}

func TestRandBotStaysInRange(t *testing.T) {
	t.Parallel()
	bot := NewRandBot(randutil.New(7), testLogger())
	valid := []game.ValidAction{
		{Action: game.Fold},
		{Action: game.Call, Min: 50, Max: 50},
		{Action: game.Bet, Min: 51, Max: 400},
	}

	seen := map[game.Action]bool{}
	for range 500 {
		d := bot.MakeDecision(View{ValidActions: valid})
		seen[d.Action] = true
		if d.Action == game.Bet {
			assert.GreaterOrEqual(t, d.Amount, 51)
			assert.LessOrEqual(t, d.Amount, 400)
		}
	}
	assert.Len(t, seen, 3)
}

func TestFindActionFallsBack(t *testing.T) {
	t.Parallel()

	d := findAction(game.Call, []game.ValidAction{{Action: game.Fold}}, "calling")
	assert.Equal(t, game.Fold, d.Action)
	assert.Equal(t, "fallback: calling", d.Reasoning)

	d = findAction(game.Call, nil, "calling")
	assert.Equal(t, game.Fold, d.Action)
}

// Every strategy only ever picks legal actions, so whole hands between
// mixed bots complete without errors and never create or destroy chips.
func TestStrategiesPlayLegalHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2025)

	names := []string{"call", "random", "maniac", "chart", "tag", "fold", "equity"}
	r := game.NewTestRound(game.WithPlayers(names...), game.WithStartingChips(300), game.WithSeed(2025))
	strategies := map[string]Strategy{}
	for _, name := range names {
		s, err := New(name, rng, testLogger())
		require.NoError(t, err)
		if eb, ok := s.(*EquityBot); ok {
			eb.Samples = 100
		}
		strategies[name] = s
	}

	for hand := range 40 {
		require.NoError(t, r.Deal(), "hand %d", hand)
		for steps := 0; r.Phase() == game.PhaseBetting; steps++ {
			require.Less(t, steps, 500, "hand %d never finished", hand)
			name, ok := r.Turn()
			require.True(t, ok)
			_, err := Play(r, name, strategies[name])
			require.NoError(t, err, "hand %d", hand)
		}

		total := 0
		for _, p := range r.Players() {
			total += p.Chips
		}
		require.Equal(t, 300*len(names), total, "hand %d", hand)
	}
}
