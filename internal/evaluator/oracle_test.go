package evaluator

import (
	"testing"

	hpoker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

// toOracle converts a card into paulhankin/poker's encoding (ace is rank 1).
func toOracle(t *testing.T, c deck.Card) hpoker.Card {
	t.Helper()
	suits := map[deck.Suit]hpoker.Suit{
		deck.Clubs:    hpoker.Club,
		deck.Diamonds: hpoker.Diamond,
		deck.Hearts:   hpoker.Heart,
		deck.Spades:   hpoker.Spade,
	}
	rank := c.Rank.Value()
	if rank == 14 {
		rank = 1
	}
	card, err := hpoker.MakeCard(suits[c.Suit], hpoker.Rank(rank))
	require.NoError(t, err)
	return card
}

func oracleScore(t *testing.T, cards []deck.Card) int16 {
	t.Helper()
	var seven [7]hpoker.Card
	for i, c := range cards {
		seven[i] = toOracle(t, c)
	}
	return hpoker.Eval7(&seven)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// TestCompareAgreesWithIndependentEvaluator deals random heads-up showdowns and
// checks that our ordering matches a separate, table-driven evaluator,
// including every tie.
func TestCompareAgreesWithIndependentEvaluator(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)

	for i := 0; i < 3000; i++ {
		d := deck.New()
		d.Shuffle(rng)
		cards, err := d.DrawN(9)
		require.NoError(t, err)

		board := cards[4:]
		a := append(append([]deck.Card(nil), cards[0:2]...), board...)
		b := append(append([]deck.Card(nil), cards[2:4]...), board...)

		rankA, err := EvaluateBest(a)
		require.NoError(t, err)
		rankB, err := EvaluateBest(b)
		require.NoError(t, err)

		want := sign(int(oracleScore(t, a)) - int(oracleScore(t, b)))
		require.Equal(t, want, Compare(rankA, rankB),
			"hands %v (%s) vs %v (%s)", a, rankA, b, rankB)
	}
}
