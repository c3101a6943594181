// Package simulator plays many hands between bots on a local Round and
// checks that no chips are ever created or lost.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/bot"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
	"github.com/ianwalkeruk/vibe-poker/internal/statistics"
)

var ErrChipsNotConserved = errors.New("chips not conserved")

// maxActionsPerHand bounds a hand well beyond anything legal play produces.
const maxActionsPerHand = 10_000

// Config holds configuration for running simulations
type Config struct {
	Hands         int
	Strategies    []string // one seat per entry; empty means MixedStrategies
	StartingChips int
	Seed          int64
	Timeout       time.Duration // per hand, zero for none
	Logger        *log.Logger
	History       game.HistoryWriter
}

// PlayerResult is one seat's outcome over the whole run
type PlayerResult struct {
	Name     string
	Strategy string
	Chips    int
	Stats    *statistics.Statistics
}

// Result summarises a simulation
type Result struct {
	Hands     int
	Showdowns int
	Players   []PlayerResult
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
}

// MixedStrategies is the default table line-up.
func MixedStrategies() []string {
	return []string{"tag", "random", "chart", "maniac", "call", "equity"}
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) *Simulator {
	if len(config.Strategies) == 0 {
		config.Strategies = MixedStrategies()
	}
	if config.StartingChips == 0 {
		config.StartingChips = 1000
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.History == nil {
		config.History = game.NopHistoryWriter{}
	}
	return &Simulator{config: config}
}

// Run plays the configured number of hands. Stacks carry over from hand to
// hand; busted players stay seated and can only check or fold.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	logger := cfg.Logger.WithPrefix("simulator")

	if len(cfg.Strategies) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 strategies, got %d", game.ErrNotEnoughPlayers, len(cfg.Strategies))
	}

	round := game.NewRound(
		game.WithRNG(randutil.New(cfg.Seed)),
		game.WithLogger(cfg.Logger),
		game.WithMaxSeats(len(cfg.Strategies)),
	)
	botRNG := randutil.New(cfg.Seed + 1)

	result := &Result{}
	bots := make(map[string]bot.Strategy, len(cfg.Strategies))
	for i, name := range cfg.Strategies {
		strategy, err := bot.New(name, botRNG, cfg.Logger)
		if err != nil {
			return nil, err
		}
		player := fmt.Sprintf("%s-%d", strategy.Name(), i+1)
		if err := round.AddPlayer(player, cfg.StartingChips); err != nil {
			return nil, err
		}
		bots[player] = strategy
		result.Players = append(result.Players, PlayerResult{
			Name:     player,
			Strategy: strategy.Name(),
			Stats:    &statistics.Statistics{BigPotChips: cfg.StartingChips},
		})
	}
	total := cfg.StartingChips * len(cfg.Strategies)

	for hand := range cfg.Hands {
		before := round.Players()

		if err := s.playHandWithTimeout(ctx, round, bots); err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}

		snap := round.Snapshot()
		if err := cfg.History.WriteHandHistory(snap.HandID, game.FormatHistory(snap)); err != nil {
			logger.Warn("Failed to write hand history", "hand", snap.HandID, "error", err)
		}

		chips := 0
		for i, p := range snap.Players {
			chips += p.Chips
			result.Players[i].Stats.Add(statistics.HandResult{
				Net:            p.Chips - before[i].Chips,
				Seat:           i,
				WentToShowdown: snap.Showdown,
				Folded:         p.Folded,
				FinalPotSize:   snap.Pot,
				StreetReached:  snap.Street.String(),
			})
		}
		if chips != total {
			return nil, fmt.Errorf("%w after hand %s: %d on the table, want %d", ErrChipsNotConserved, snap.HandID, chips, total)
		}

		result.Hands++
		if snap.Showdown {
			result.Showdowns++
		}
		logger.Debug("Hand complete", "hand", snap.HandID, "pot", snap.Pot, "showdown", snap.Showdown)
	}

	for i, p := range round.Players() {
		result.Players[i].Chips = p.Chips
		if result.Hands == 0 {
			continue
		}
		if err := result.Players[i].Stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", p.Name, err)
		}
	}
	return result, nil
}

// playHandWithTimeout deals and plays one hand to completion, giving up if
// it outlives the configured timeout.
func (s *Simulator) playHandWithTimeout(ctx context.Context, round *game.Round, bots map[string]bot.Strategy) error {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	if err := round.Deal(); err != nil {
		return err
	}

	for actions := 0; round.Phase() == game.PhaseBetting; actions++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hand %s abandoned: %w", round.HandID(), err)
		}
		if actions >= maxActionsPerHand {
			return fmt.Errorf("hand %s did not finish after %d actions", round.HandID(), actions)
		}

		name, ok := round.Turn()
		if !ok {
			return fmt.Errorf("hand %s is betting with no player on turn", round.HandID())
		}
		if _, err := bot.Play(round, name, bots[name]); err != nil {
			return err
		}
	}
	return nil
}

// PrintSummary writes a per-player report of a simulation
func PrintSummary(w io.Writer, result *Result) {
	fmt.Fprintf(w, "\n=== RESULTS (%d hands, %d showdowns) ===\n", result.Hands, result.Showdowns)

	for _, p := range result.Players {
		st := p.Stats
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s (%s)\n", p.Name, p.Strategy)
		fmt.Fprintf(w, "  Final stack: %d\n", p.Chips)
		fmt.Fprintf(w, "  Mean: %.2f chips/hand, median %.2f, std dev %.2f\n", st.Mean(), st.Median(), st.StdDev())
		fmt.Fprintf(w, "  95%% CI: [%.2f, %.2f]\n", low, high)

		totalWins := st.ShowdownWins + st.NonShowdownWins
		if totalWins > 0 {
			fmt.Fprintf(w, "  Wins: %d at showdown (%.1f%%), %d uncontested (%.1f%%)\n",
				st.ShowdownWins, pct(st.ShowdownWins, totalWins),
				st.NonShowdownWins, pct(st.NonShowdownWins, totalWins))
		}
		if st.Hands > 0 {
			fmt.Fprintf(w, "  Folded %d of %d hands; big pots (>= %d): %d, net %.0f\n",
				st.Folds, st.Hands, st.BigPotChips, st.BigPots, st.BigPotsNet)
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 40))
}

func pct(n, of int) float64 {
	return float64(n) / float64(of) * 100
}
