package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

// MaxOpponents keeps every sampled deal within one deck.
const MaxOpponents = 22

var ErrInvalidEquityInput = errors.New("invalid equity input")

// EquityResult is the outcome of a Monte Carlo equity estimate.
type EquityResult struct {
	Samples int     `json:"samples"`
	Win     float64 `json:"win"`    // share of samples won outright
	Tie     float64 `json:"tie"`    // share of samples split
	Equity  float64 `json:"equity"` // expected share of the pot
}

type equityTally struct {
	samples int
	wins    int
	ties    int
	share   float64
}

// Equity estimates how often hole wins against the given number of opponents
// holding random cards, completing the board at random. Samples are split
// across worker goroutines, each with its own RNG seeded from rng so a seeded
// rng gives a reproducible result.
func Equity(ctx context.Context, hole, board []deck.Card, opponents, samples int, rng *rand.Rand) (EquityResult, error) {
	switch {
	case len(hole) != 2:
		return EquityResult{}, fmt.Errorf("%w: %w", ErrInvalidEquityInput, ErrInvalidHole)
	case len(board) > 5:
		return EquityResult{}, fmt.Errorf("%w: board has %d cards", ErrInvalidEquityInput, len(board))
	case opponents < 1 || opponents > MaxOpponents:
		return EquityResult{}, fmt.Errorf("%w: opponents must be 1-%d", ErrInvalidEquityInput, MaxOpponents)
	case samples < 1:
		return EquityResult{}, fmt.Errorf("%w: samples must be positive", ErrInvalidEquityInput)
	}
	if rng == nil {
		rng = randutil.New(randutil.ProcessSeed())
	}

	var used [deck.Size]bool
	known := append(append([]deck.Card(nil), hole...), board...)
	for _, c := range known {
		if !validCard(c) {
			return EquityResult{}, fmt.Errorf("%w: %w: %v", ErrInvalidEquityInput, ErrInvalidCard, c)
		}
		if used[c.Index()] {
			return EquityResult{}, fmt.Errorf("%w: %w: %s", ErrInvalidEquityInput, ErrDuplicateCard, c)
		}
		used[c.Index()] = true
	}

	var available []deck.Card
	for _, c := range deck.New().Cards() {
		if !used[c.Index()] {
			available = append(available, c)
		}
	}

	workers := min(runtime.NumCPU(), 8, samples)
	tallies := make([]equityTally, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := samples / workers
		if w < samples%workers {
			n++
		}
		workerRNG := randutil.New(rng.Int64())

		g.Go(func() error {
			return runEquityWorker(ctx, hole, board, available, opponents, n, workerRNG, &tallies[w])
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total equityTally
	for _, t := range tallies {
		total.samples += t.samples
		total.wins += t.wins
		total.ties += t.ties
		total.share += t.share
	}

	n := float64(total.samples)
	return EquityResult{
		Samples: total.samples,
		Win:     float64(total.wins) / n,
		Tie:     float64(total.ties) / n,
		Equity:  total.share / n,
	}, nil
}

func runEquityWorker(ctx context.Context, hole, board, available []deck.Card, opponents, samples int, rng *rand.Rand, out *equityTally) error {
	pool := append([]deck.Card(nil), available...)
	missing := 5 - len(board)
	need := missing + 2*opponents

	fullBoard := make([]deck.Card, 5)
	copy(fullBoard, board)

	for s := range samples {
		if s%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		// Partial Fisher-Yates: only the first need cards are drawn.
		for i := range need {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}
		copy(fullBoard[len(board):], pool[:missing])

		hero, err := Evaluate(hole, fullBoard)
		if err != nil {
			return err
		}

		best := 1 // 1 ahead of everyone so far, 0 tied for best, -1 beaten
		tied := 0
		for o := range opponents {
			start := missing + 2*o
			villain, err := Evaluate(pool[start:start+2], fullBoard)
			if err != nil {
				return err
			}
			switch hero.Compare(villain) {
			case -1:
				best = -1
			case 0:
				tied++
				if best > 0 {
					best = 0
				}
			}
			if best < 0 {
				break
			}
		}

		out.samples++
		switch {
		case best > 0:
			out.wins++
			out.share++
		case best == 0:
			out.ties++
			out.share += 1 / float64(tied+1)
		}
	}
	return nil
}
