package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/evaluator"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

// OddsCmd runs a Monte Carlo equity estimate for one hand
type OddsCmd struct {
	Hole      string `kong:"required,help='Hole cards, e.g. \"As Ks\"'"`
	Board     string `kong:"short='b',help='Community cards, e.g. \"Td 7s 8h\"'"`
	Opponents int    `kong:"short='o',default='1',help='Opponents holding random hands'"`
	Samples   int    `kong:"short='n',default='100000',help='Number of Monte Carlo deals'"`
	Seed      *int64 `kong:"help='Random seed for reproducible results'"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

func (c *OddsCmd) Run() error {
	return c.run(context.Background(), os.Stdout)
}

func (c *OddsCmd) run(ctx context.Context, w io.Writer) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("parsing hole cards: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("hole must be exactly two cards, got %d", len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
	}
	if n := len(board); n != 0 && (n < 3 || n > 5) {
		return fmt.Errorf("board must have 0, 3, 4 or 5 cards, got %d", n)
	}

	seed := randutil.ProcessSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	result, err := evaluator.Equity(ctx, hole, board, c.Opponents, c.Samples, randutil.New(seed))
	if err != nil {
		return err
	}

	fmt.Fprintln(w, headerStyle.Render("Hand Equity"))
	fmt.Fprintf(w, "Hand:      %s (%s, top %.0f%% pre-flop)\n",
		handStyle.Render(fmt.Sprint(hole)), deck.HandKey(hole), (1-deck.HandPercentile(hole))*100)
	if len(board) > 0 {
		fmt.Fprintf(w, "Board:     %s\n", fmt.Sprint(board))
		made, err := evaluator.EvaluateHand(hole, board)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Made hand: %s\n", categoryStyle.Render(made.Rank.String()))
	}
	fmt.Fprintf(w, "Opponents: %d\n", c.Opponents)
	fmt.Fprintf(w, "Samples:   %d (seed %d)\n\n", result.Samples, seed)

	fmt.Fprintf(w, "Win:    %s\n", winStyle.Render(fmt.Sprintf("%6.2f%%", result.Win*100)))
	fmt.Fprintf(w, "Tie:    %s\n", tieStyle.Render(fmt.Sprintf("%6.2f%%", result.Tie*100)))
	fmt.Fprintf(w, "Equity: %s\n", handStyle.Render(fmt.Sprintf("%6.2f%%", result.Equity*100)))
	return nil
}
