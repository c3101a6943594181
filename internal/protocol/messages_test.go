package protocol

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

func TestEnvelopeShape(t *testing.T) {
	t.Parallel()

	data, err := Encode(TypeAction, ActionData{Action: "bet", Amount: 40})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "action", raw["type"])
	assert.Contains(t, raw, "timestamp")
	assert.Equal(t, map[string]any{"action": "bet", "amount": float64(40)}, raw["data"])
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := Unmarshal([]byte(`{"type":"shuffle_up","data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	_, err = Marshal(&Message{Type: "bogus"})
	assert.ErrorIs(t, err, ErrUnknownMessageType)

	_, err = Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeWithoutPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(TypeDeal, nil)
	require.NoError(t, err)
	assert.Empty(t, msg.Data)

	data, err := Marshal(msg)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, TypeDeal, back.Type)

	var join JoinData
	assert.Error(t, back.Decode(&join))
}

func TestStateCarriesRedactedSnapshot(t *testing.T) {
	t.Parallel()

	r := game.HeadsUpRound()
	require.NoError(t, r.Deal())

	state := StateData{
		Snapshot:     r.Snapshot().Redact("Bob"),
		You:          "Bob",
		ValidActions: r.ValidActions("Bob"),
	}
	data, err := Encode(TypeState, state)
	require.NoError(t, err)

	msg, err := Unmarshal(data)
	require.NoError(t, err)
	var got StateData
	require.NoError(t, msg.Decode(&got))

	alice, ok := got.Snapshot.Player("Alice")
	require.True(t, ok)
	bob, ok := got.Snapshot.Player("Bob")
	require.True(t, ok)
	assert.Empty(t, alice.Hole, "opponent cards must not reach the wire")
	assert.Len(t, bob.Hole, 2)
	assert.Equal(t, game.PhaseBetting, got.Snapshot.Phase)
	assert.Empty(t, got.ValidActions, "Bob is not on turn")

	turn, ok := got.Snapshot.TurnPlayer()
	require.True(t, ok)
	assert.Equal(t, "Alice", turn)
}

func TestErrorFromGame(t *testing.T) {
	t.Parallel()

	r := game.HeadsUpRound()
	require.NoError(t, r.Deal())
	err := r.Check("Bob")
	require.Error(t, err)

	payload := ErrorFromGame(err)
	assert.Equal(t, "not_players_turn", payload.Code)
	assert.Equal(t, err.Error(), payload.Message)

	assert.Equal(t, "internal", ErrorFromGame(fmt.Errorf("boom")).Code)
}

func TestConcurrentEncode(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				data, err := Encode(TypeJoin, JoinData{Name: fmt.Sprintf("bot-%d-%d", g, i), BuyIn: i})
				if !assert.NoError(t, err) {
					return
				}
				msg, err := Unmarshal(data)
				if !assert.NoError(t, err) {
					return
				}
				var join JoinData
				if !assert.NoError(t, msg.Decode(&join)) {
					return
				}
				assert.Equal(t, fmt.Sprintf("bot-%d-%d", g, i), join.Name)
				assert.Equal(t, i, join.BuyIn)
			}
		}()
	}
	wg.Wait()
}
