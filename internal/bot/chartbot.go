package bot

import (
	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// ChartBot plays a starting-hand chart pre-flop and check/calls after.
type ChartBot struct {
	logger *log.Logger
}

func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) Name() string { return "chart" }

func (c *ChartBot) MakeDecision(view View) Decision {
	if view.Table.Street != game.PreFlop {
		return passive(view.ValidActions, "chart-bot")
	}

	pct := deck.HandPercentile(view.Self.Hole)
	switch {
	case pct >= 0.94:
		if amount, ok := potBet(view, 1); ok {
			return Decision{Action: game.Bet, Amount: amount, Reasoning: "chart-bot raising premium " + deck.HandKey(view.Self.Hole)}
		}
		return passive(view.ValidActions, "chart-bot")
	case pct >= 0.6:
		return passive(view.ValidActions, "chart-bot")
	case hasAction(game.Check, view.ValidActions):
		return findAction(game.Check, view.ValidActions, "chart-bot checking weak hand")
	default:
		return findAction(game.Fold, view.ValidActions, "chart-bot folding "+deck.HandKey(view.Self.Hole))
	}
}
