package simulator

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianwalkeruk/vibe-poker/internal/bot"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()
	sim := New(Config{Hands: 10})

	assert.Equal(t, MixedStrategies(), sim.config.Strategies)
	assert.Equal(t, 1000, sim.config.StartingChips)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.History)
}

func TestRunConservesChips(t *testing.T) {
	t.Parallel()
	sim := New(Config{
		Hands:         200,
		Strategies:    []string{"random", "maniac", "call", "tag"},
		StartingChips: 500,
		Seed:          12345,
		Timeout:       5 * time.Second,
		Logger:        testLogger(),
	})

	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, result.Hands)
	require.Len(t, result.Players, 4)

	total := 0
	for _, p := range result.Players {
		total += p.Chips
		assert.Equal(t, 200, p.Stats.Hands, p.Name)
		assert.NoError(t, p.Stats.Validate(), p.Name)
	}
	assert.Equal(t, 2000, total)
	assert.Equal(t, "random-1", result.Players[0].Name)
}

func TestFoldBotsLoseToCallers(t *testing.T) {
	t.Parallel()
	// The caller never folds and the folder never bets, so every hand is
	// checked down to a showdown.
	result, err := New(Config{
		Hands:      50,
		Strategies: []string{"fold", "call"},
		Seed:       7,
		Logger:     testLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50, result.Showdowns)
	assert.Equal(t, 2000, result.Players[0].Chips+result.Players[1].Chips)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := Config{Hands: 60, Strategies: []string{"random", "maniac", "chart"}, Seed: 99, Logger: testLogger()}

	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for i := range a.Players {
		assert.Equal(t, a.Players[i].Chips, b.Players[i].Chips)
		assert.Equal(t, a.Players[i].Stats.Values, b.Players[i].Stats.Values)
	}
	assert.Equal(t, a.Showdowns, b.Showdowns)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Hands: 1, Strategies: []string{"call"}}).Run(context.Background())
	assert.ErrorIs(t, err, game.ErrNotEnoughPlayers)

	_, err = New(Config{Hands: 1, Strategies: []string{"call", "shark"}}).Run(context.Background())
	assert.ErrorIs(t, err, bot.ErrUnknownStrategy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(Config{Hands: 1, Strategies: []string{"call", "call"}}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWritesHistories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := New(Config{
		Hands:      3,
		Strategies: []string{"call", "call"},
		Seed:       1,
		History:    game.NewFileHistoryWriter(dir),
	}).Run(context.Background())
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "hand_*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 3)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "=== HAND ")
	assert.Contains(t, string(content), "=== END HAND ===")
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()
	result, err := New(Config{Hands: 20, Strategies: []string{"tag", "call"}, Seed: 3}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, result)
	out := buf.String()
	assert.Contains(t, out, "=== RESULTS (20 hands")
	assert.Contains(t, out, "tag-1 (tag)")
	assert.Contains(t, out, "call-2 (call)")
	assert.Contains(t, out, "95% CI")
}
