package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

func stacks(r *Round) map[string]int {
	out := map[string]int{}
	for _, p := range r.Players() {
		out[p.Name] = p.Chips
	}
	return out
}

func turn(t *testing.T, r *Round) string {
	t.Helper()
	name, ok := r.Turn()
	require.True(t, ok, "expected a player on turn")
	return name
}

func TestBetCallAdvancesToFlop(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())

	assert.Equal(t, PhaseBetting, r.Phase())
	assert.Equal(t, PreFlop, r.Street())
	assert.Equal(t, "Alice", turn(t, r))

	require.NoError(t, r.Bet("Alice", 100))
	assert.Equal(t, "Bob", turn(t, r))
	assert.Equal(t, 100, r.CurrentBet())

	require.NoError(t, r.Call("Bob"))

	assert.Equal(t, 200, r.Pot())
	assert.Equal(t, map[string]int{"Alice": 900, "Bob": 900}, stacks(r))
	assert.Equal(t, Flop, r.Street())
	assert.Len(t, r.Community(), 3)
	assert.Equal(t, 0, r.CurrentBet())
	assert.Equal(t, "Alice", turn(t, r))
}

func TestDealOneCardPerPass(t *testing.T) {
	t.Parallel()
	r := NewTestRound(WithPlayers("Alice", "Bob", "Carol"), WithStackedDeck("As Kd Qh Ac Kc Qd"))
	require.NoError(t, r.Deal())

	players := r.Players()
	assert.Equal(t, deck.MustParseCards("As Ac"), players[0].Hole)
	assert.Equal(t, deck.MustParseCards("Kd Kc"), players[1].Hole)
	assert.Equal(t, deck.MustParseCards("Qh Qd"), players[2].Hole)
}

func TestThreePlayerHandUsesElevenDistinctCards(t *testing.T) {
	t.Parallel()
	for seed := int64(1); seed <= 20; seed++ {
		r := NewTestRound(WithSeed(seed), WithPlayers("Alice", "Bob", "Carol"))
		require.NoError(t, r.Deal())

		seen := map[deck.Card]bool{}
		for _, p := range r.Players() {
			require.Len(t, p.Hole, 2)
			for _, c := range p.Hole {
				seen[c] = true
			}
		}
		assert.Len(t, seen, 6)

		for r.Phase() == PhaseBetting {
			require.NoError(t, r.Check(turn(t, r)))
		}
		board := r.Community()
		require.Len(t, board, 5)
		for _, c := range board {
			seen[c] = true
		}
		assert.Len(t, seen, 11, "seed %d", seed)
	}
}

func TestCommunityCardsMatchStreet(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())

	for _, street := range []Street{PreFlop, Flop, Turn, River} {
		require.Equal(t, street, r.Street())
		assert.Len(t, r.Community(), street.CommunityCards())
		require.NoError(t, r.Check("Alice"))
		require.NoError(t, r.Check("Bob"))
	}
	assert.Equal(t, PhaseComplete, r.Phase())
}

func TestInsufficientChipsLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())
	before := r.Snapshot()

	err := r.Bet("Alice", 1001)
	require.ErrorIs(t, err, ErrInsufficientChips)

	assert.Equal(t, before, r.Snapshot())
	assert.Equal(t, 1000, stacks(r)["Alice"])
	assert.Equal(t, 0, r.Pot())
	assert.Equal(t, "Alice", turn(t, r))
}

func TestCallRequiresEnoughChips(t *testing.T) {
	t.Parallel()
	r := NewTestRound()
	require.NoError(t, r.AddPlayer("Alice", 500))
	require.NoError(t, r.AddPlayer("Bob", 200))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 300))
	require.ErrorIs(t, r.Call("Bob"), ErrInsufficientChips)
	assert.Equal(t, 200, stacks(r)["Bob"])
	assert.Equal(t, 300, r.Pot())

	require.NoError(t, r.Fold("Bob"))
	assert.Equal(t, map[string]int{"Alice": 500, "Bob": 200}, stacks(r))
}

func TestFoldToLastPlayerAwardsPot(t *testing.T) {
	t.Parallel()
	r := NewTestRound(WithPlayers("Alice", "Bob", "Carol"))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 50))
	require.NoError(t, r.Call("Bob"))
	require.NoError(t, r.Fold("Carol"))
	require.Equal(t, Flop, r.Street())

	require.NoError(t, r.Bet("Alice", 100))
	require.NoError(t, r.Fold("Bob"))

	assert.Equal(t, PhaseComplete, r.Phase())
	assert.Len(t, r.Community(), 3, "no further streets are dealt")
	assert.Equal(t, []Winner{{Name: "Alice", Amount: 200}}, r.Winners())
	assert.Equal(t, map[string]int{"Alice": 1050, "Bob": 950, "Carol": 1000}, stacks(r))

	_, onTurn := r.Turn()
	assert.False(t, onTurn)
}

func TestShowdownBestHandWins(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound(WithStackedDeck("As Kd Ah Kc 2c 7d 9h Js Qs"))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 40))
	require.NoError(t, r.Call("Bob"))
	for r.Phase() == PhaseBetting {
		require.NoError(t, r.Check(turn(t, r)))
	}

	winners := r.Winners()
	require.Len(t, winners, 1)
	assert.Equal(t, "Alice", winners[0].Name)
	assert.Equal(t, 80, winners[0].Amount)
	assert.Equal(t, "Pair of Aces", winners[0].Description)
	require.NotNil(t, winners[0].Hand)
	assert.Equal(t, map[string]int{"Alice": 1040, "Bob": 960}, stacks(r))
}

func TestSplitPotOddChipGoesToEarliestSeat(t *testing.T) {
	t.Parallel()
	// The board is a royal flush, so every hand plays the board.
	r := NewTestRound(WithPlayers("Alice", "Bob", "Carol"), WithStackedDeck("2c 3c 4c 2d 3d 4d As Ks Qs Js Ts"))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 1))
	require.NoError(t, r.Call("Bob"))
	require.NoError(t, r.Call("Carol"))
	require.Equal(t, 3, r.Pot())

	require.NoError(t, r.Check("Alice"))
	require.NoError(t, r.Check("Bob"))
	require.NoError(t, r.Fold("Carol"))
	for r.Phase() == PhaseBetting {
		require.NoError(t, r.Check(turn(t, r)))
	}

	winners := r.Winners()
	require.Len(t, winners, 2)
	assert.Equal(t, Winner{Name: "Alice", Amount: 2, Hand: winners[0].Hand, Description: "Royal Flush"}, winners[0])
	assert.Equal(t, Winner{Name: "Bob", Amount: 1, Hand: winners[1].Hand, Description: "Royal Flush"}, winners[1])
	assert.Equal(t, map[string]int{"Alice": 1001, "Bob": 1000, "Carol": 999}, stacks(r))
}

func TestSplitPotShares(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{2, 1}, splitPot(3, 2))
	assert.Equal(t, []int{4, 3, 3}, splitPot(10, 3))
	assert.Equal(t, []int{2, 2, 1, 1}, splitPot(6, 4))
	assert.Equal(t, []int{100}, splitPot(100, 1))
}

func TestRaiseReopensAction(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 100))
	require.NoError(t, r.Bet("Bob", 300))
	assert.Equal(t, "Alice", turn(t, r), "Alice must respond to the raise")
	assert.Equal(t, PreFlop, r.Street())

	require.NoError(t, r.Call("Alice"))
	assert.Equal(t, 600, r.Pot())
	assert.Equal(t, map[string]int{"Alice": 700, "Bob": 700}, stacks(r))
	assert.Equal(t, Flop, r.Street())
}

func TestStreetWaitsForBetToBeMatched(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())

	require.NoError(t, r.Check("Alice"))
	require.NoError(t, r.Bet("Bob", 50))
	assert.Equal(t, PreFlop, r.Street(), "Alice has acted but not matched")
	assert.Equal(t, "Alice", turn(t, r))

	require.ErrorIs(t, r.Check("Alice"), ErrIllegalCheck)
	require.NoError(t, r.Call("Alice"))
	assert.Equal(t, Flop, r.Street())
}

func TestActionErrors(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()

	require.ErrorIs(t, r.Bet("Alice", 10), ErrInvalidPhaseForAction)
	require.NoError(t, r.Deal())

	tests := []struct {
		name string
		act  func() error
		want error
	}{
		{"not your turn", func() error { return r.Check("Bob") }, ErrNotPlayersTurn},
		{"unknown player", func() error { return r.Check("Mallory") }, ErrPlayerNotFound},
		{"zero bet", func() error { return r.Bet("Alice", 0) }, ErrInvalidAmount},
		{"negative bet", func() error { return r.Bet("Alice", -5) }, ErrInvalidAmount},
		{"unknown action", func() error { return r.Act("Alice", Action(99), 0) }, ErrUnknownAction},
	}
	for _, tt := range tests {
		before := r.Snapshot()
		assert.ErrorIs(t, tt.act(), tt.want, tt.name)
		assert.Equal(t, before, r.Snapshot(), tt.name)
	}

	require.NoError(t, r.Bet("Alice", 100))
	require.ErrorIs(t, r.Bet("Bob", 50), ErrBetTooSmall)
	require.ErrorIs(t, r.Check("Bob"), ErrIllegalCheck)
	assert.Equal(t, 1000, stacks(r)["Bob"])
	assert.Equal(t, "Bob", turn(t, r))
}

func TestActionsAfterCompleteFail(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())
	require.NoError(t, r.Fold("Alice"))

	assert.Equal(t, PhaseComplete, r.Phase())
	assert.ErrorIs(t, r.Check("Bob"), ErrInvalidPhaseForAction)
}

func TestCallWithNothingOwedChecks(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())

	require.NoError(t, r.Call("Alice"))
	require.NoError(t, r.Call("Bob"))
	assert.Equal(t, Flop, r.Street())
	assert.Equal(t, 0, r.Pot())

	log := r.Log()
	require.GreaterOrEqual(t, len(log), 2)
	assert.Equal(t, Check, log[0].Action)
	assert.Equal(t, Check, log[1].Action)
}

func TestNewStreetStartsWithFirstUnfoldedSeat(t *testing.T) {
	t.Parallel()
	r := NewTestRound(WithPlayers("Alice", "Bob", "Carol"))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Fold("Alice"))
	require.NoError(t, r.Check("Bob"))
	require.NoError(t, r.Check("Carol"))

	assert.Equal(t, Flop, r.Street())
	assert.Equal(t, "Bob", turn(t, r))
}

func TestFoldedPlayersAreSkipped(t *testing.T) {
	t.Parallel()
	r := NewTestRound(WithPlayers("Alice", "Bob", "Carol", "Dave"))
	require.NoError(t, r.Deal())

	require.NoError(t, r.Bet("Alice", 20))
	require.NoError(t, r.Fold("Bob"))
	require.NoError(t, r.Call("Carol"))
	require.NoError(t, r.Bet("Dave", 60))

	assert.Equal(t, "Alice", turn(t, r))
	require.NoError(t, r.Call("Alice"))
	assert.Equal(t, "Carol", turn(t, r), "Bob has folded")
}

func TestStructuralOperations(t *testing.T) {
	t.Parallel()
	r := NewTestRound(WithRoundOptions(WithMaxSeats(3)))

	require.ErrorIs(t, r.Deal(), ErrNotEnoughPlayers)
	require.NoError(t, r.AddPlayer("Alice", 1000))
	require.ErrorIs(t, r.Deal(), ErrNotEnoughPlayers)
	require.ErrorIs(t, r.AddPlayer("Alice", 500), ErrDuplicatePlayer)
	require.ErrorIs(t, r.AddPlayer("  ", 500), ErrInvalidName)
	require.ErrorIs(t, r.AddPlayer("Bob", -1), ErrInvalidAmount)
	require.NoError(t, r.AddPlayer("Bob", 1000))
	require.NoError(t, r.AddPlayer("Carol", 0))
	require.ErrorIs(t, r.AddPlayer("Dave", 1000), ErrTableFull)

	require.NoError(t, r.Deal())
	assert.ErrorIs(t, r.AddPlayer("Dave", 1000), ErrRoundInProgress)
	_, err := r.RemovePlayer("Bob")
	assert.ErrorIs(t, err, ErrRoundInProgress)
	assert.ErrorIs(t, r.Deal(), ErrRoundInProgress)

	require.NoError(t, r.Fold("Alice"))
	require.NoError(t, r.Fold("Bob"))
	require.Equal(t, PhaseComplete, r.Phase())

	chips, err := r.RemovePlayer("Bob")
	require.NoError(t, err)
	assert.Equal(t, 1000, chips)
	_, err = r.RemovePlayer("Bob")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Len(t, r.Players(), 2)
}

func TestZeroChipPlayerCanOnlyCheckOrFold(t *testing.T) {
	t.Parallel()
	r := NewTestRound()
	require.NoError(t, r.AddPlayer("Alice", 0))
	require.NoError(t, r.AddPlayer("Bob", 1000))
	require.NoError(t, r.Deal())

	assert.Equal(t, []ValidAction{{Action: Fold}, {Action: Check}}, r.ValidActions("Alice"))
	require.ErrorIs(t, r.Bet("Alice", 1), ErrInsufficientChips)
	require.NoError(t, r.Check("Alice"))

	require.NoError(t, r.Bet("Bob", 10))
	assert.Equal(t, []ValidAction{{Action: Fold}}, r.ValidActions("Alice"))
	require.ErrorIs(t, r.Call("Alice"), ErrInsufficientChips)
	require.NoError(t, r.Fold("Alice"))
	assert.Equal(t, map[string]int{"Alice": 0, "Bob": 1000}, stacks(r))
}

func TestValidActions(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	assert.Nil(t, r.ValidActions("Alice"))
	require.NoError(t, r.Deal())

	assert.Equal(t, []ValidAction{
		{Action: Fold},
		{Action: Check},
		{Action: Bet, Min: 1, Max: 1000},
	}, r.ValidActions("Alice"))
	assert.Nil(t, r.ValidActions("Bob"))

	require.NoError(t, r.Bet("Alice", 100))
	assert.Equal(t, []ValidAction{
		{Action: Fold},
		{Action: Call, Min: 100, Max: 100},
		{Action: Bet, Min: 101, Max: 1000},
	}, r.ValidActions("Bob"))
}

func TestNextDealResetsHand(t *testing.T) {
	t.Parallel()
	r := HeadsUpRound()
	require.NoError(t, r.Deal())
	first := r.HandID()
	require.NoError(t, r.Bet("Alice", 100))
	require.NoError(t, r.Call("Bob"))
	require.NoError(t, r.Bet("Alice", 100))
	require.NoError(t, r.Fold("Bob"))

	require.NoError(t, r.Deal())
	assert.NotEqual(t, first, r.HandID())
	assert.Equal(t, 0, r.Pot())
	assert.Equal(t, 0, r.CurrentBet())
	assert.Empty(t, r.Community())
	assert.Nil(t, r.Winners())
	assert.Empty(t, r.Log())
	assert.Equal(t, "Alice", turn(t, r))
	for _, p := range r.Players() {
		assert.False(t, p.Folded)
		assert.False(t, p.Acted)
		assert.Zero(t, p.Committed)
		assert.Len(t, p.Hole, 2)
	}
	assert.Equal(t, map[string]int{"Alice": 1100, "Bob": 900}, stacks(r))
	assert.Equal(t, 2, r.Snapshot().Hands)
}

func TestSeededRoundsDealIdentically(t *testing.T) {
	t.Parallel()
	a := HeadsUpRound(WithSeed(7))
	b := HeadsUpRound(WithSeed(7))
	require.NoError(t, a.Deal())
	require.NoError(t, b.Deal())

	pa, pb := a.Players(), b.Players()
	assert.Equal(t, pa[0].Hole, pb[0].Hole)
	assert.Equal(t, pa[1].Hole, pb[1].Hole)
}
