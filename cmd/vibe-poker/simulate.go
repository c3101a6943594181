package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/cmd/vibe-poker/shared"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
	"github.com/ianwalkeruk/vibe-poker/internal/simulator"
)

// SimulateCmd plays bots against each other on a local table
type SimulateCmd struct {
	Hands      int           `kong:"default='1000',help='Number of hands to play'"`
	Players    int           `kong:"default='0',help='Seats to fill from the mixed line-up, 0 for one of each'"`
	Strategies []string      `kong:"help='Explicit line-up, one seat per strategy (call, fold, random, chart, tag, maniac, equity)'"`
	Chips      int           `kong:"default='1000',help='Starting stack per seat'"`
	Seed       *int64        `kong:"help='Deterministic RNG seed'"`
	Timeout    time.Duration `kong:"default='5s',help='Give up on a hand after this long'"`
	HistoryDir string        `kong:"help='Write a history file per hand to this directory'"`
	Debug      bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	strategies, err := c.lineUp()
	if err != nil {
		return err
	}

	seed := randutil.ProcessSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Starting simulation", "hands", c.Hands, "players", len(strategies), "seed", seed)

	config := simulator.Config{
		Hands:         c.Hands,
		Strategies:    strategies,
		StartingChips: c.Chips,
		Seed:          seed,
		Timeout:       c.Timeout,
		Logger:        logger,
	}
	if !c.Debug {
		// Every hand logs at info; keep the summary readable
		config.Logger = shared.NewLogger(os.Stderr, log.WarnLevel)
	}
	if c.HistoryDir != "" {
		config.History = game.NewFileHistoryWriter(c.HistoryDir)
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	start := time.Now()
	result, err := simulator.New(config).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, result)
	logger.Info("Simulation complete", "hands", result.Hands, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *SimulateCmd) lineUp() ([]string, error) {
	if len(c.Strategies) > 0 {
		if c.Players != 0 && c.Players != len(c.Strategies) {
			return nil, fmt.Errorf("--players %d does not match %d strategies", c.Players, len(c.Strategies))
		}
		return c.Strategies, nil
	}

	mixed := simulator.MixedStrategies()
	if c.Players == 0 {
		return mixed, nil
	}
	if c.Players < 2 || c.Players > game.MaxSeats {
		return nil, fmt.Errorf("--players must be between 2 and %d", game.MaxSeats)
	}
	strategies := make([]string, c.Players)
	for i := range strategies {
		strategies[i] = mixed[i%len(mixed)]
	}
	return strategies, nil
}
