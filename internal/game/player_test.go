package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

func TestRosterKeepsSeatOrder(t *testing.T) {
	t.Parallel()
	var r Roster
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := r.Add(name, 100)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 1, r.Index("Bob"))
	assert.Equal(t, -1, r.Index("Mallory"))

	p, err := r.Remove("Bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.Name)
	assert.Equal(t, "Carol", r.Seat(1).Name)
	assert.Equal(t, 200, r.TotalChips())
}

func TestRosterResets(t *testing.T) {
	t.Parallel()
	var r Roster
	p, err := r.Add("Alice", 100)
	require.NoError(t, err)
	p.Hole = deck.MustParseCards("AsKs")
	p.Folded = true
	p.Acted = true
	p.StreetBet = 20
	p.Committed = 40

	r.ResetForStreet()
	assert.False(t, p.Acted)
	assert.Zero(t, p.StreetBet)
	assert.Equal(t, 40, p.Committed)
	assert.True(t, p.Folded)

	r.ResetForHand()
	assert.Nil(t, p.Hole)
	assert.False(t, p.Folded)
	assert.Zero(t, p.Committed)
	assert.Equal(t, 100, p.Chips)
	assert.Equal(t, []int{0}, r.Unfolded())
}

func TestRosterPlayersAreCopies(t *testing.T) {
	t.Parallel()
	var r Roster
	p, err := r.Add("Alice", 100)
	require.NoError(t, err)
	p.Hole = deck.MustParseCards("AsKs")

	copies := r.Players()
	copies[0].Chips = 0
	copies[0].Hole[0] = deck.MustParseCards("2c")[0]

	assert.Equal(t, 100, p.Chips)
	assert.Equal(t, deck.MustParseCards("AsKs"), p.Hole)
}

func TestPlayerOwes(t *testing.T) {
	t.Parallel()
	p := Player{StreetBet: 30}
	assert.Equal(t, 70, p.Owes(100))
	assert.Equal(t, 0, p.Owes(30))
	assert.Equal(t, 0, p.Owes(0))
}
