package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/evaluator"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// DefaultEquitySamples is the number of Monte Carlo deals per decision
const DefaultEquitySamples = 2000

// EquityBot estimates its share of the pot against the remaining players
// and compares it with the price of continuing.
type EquityBot struct {
	rng     *rand.Rand
	logger  *log.Logger
	Samples int
}

func NewEquityBot(rng *rand.Rand, logger *log.Logger) *EquityBot {
	return &EquityBot{rng: rng, logger: logger, Samples: DefaultEquitySamples}
}

func (e *EquityBot) Name() string { return "equity" }

func (e *EquityBot) MakeDecision(view View) Decision {
	opponents := min(max(view.Opponents(), 1), evaluator.MaxOpponents)
	res, err := evaluator.Equity(context.Background(), view.Self.Hole, view.Table.Community, opponents, e.Samples, e.rng)
	if err != nil {
		e.logger.Warn("Equity estimate failed", "player", view.Self.Name, "error", err)
		return passive(view.ValidActions, "equity-bot")
	}

	owes := view.Owes()
	potOdds := 0.0
	if owes > 0 {
		potOdds = float64(owes) / float64(view.Table.Pot+owes)
	}

	e.logger.Debug("Equity decision",
		"player", view.Self.Name,
		"street", view.Table.Street,
		"equity", res.Equity,
		"pot_odds", potOdds)

	fair := 1 / float64(opponents+1)
	switch {
	case res.Equity > fair*1.6:
		if amount, ok := potBet(view, res.Equity); ok {
			return Decision{Action: game.Bet, Amount: amount, Reasoning: "equity-bot value bet"}
		}
		return passive(view.ValidActions, "equity-bot")
	case owes == 0:
		return findAction(game.Check, view.ValidActions, "equity-bot checking")
	case res.Equity >= potOdds:
		return findAction(game.Call, view.ValidActions, "equity-bot calling with odds")
	default:
		return findAction(game.Fold, view.ValidActions, "equity-bot folding without odds")
	}
}
