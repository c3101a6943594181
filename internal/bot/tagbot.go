package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// TAGBot is tight-aggressive: it only continues with strong starting hands
// and bets them.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Name() string { return "tag" }

func (t *TAGBot) MakeDecision(view View) Decision {
	premium := deck.HandPercentile(view.Self.Hole) >= 0.88

	if premium {
		if amount, ok := potBet(view, 0.75); ok && t.rng.Float64() < 0.7 {
			return Decision{Action: game.Bet, Amount: amount, Reasoning: "TAG bet premium"}
		}
		return passive(view.ValidActions, "TAG")
	}

	if hasAction(game.Check, view.ValidActions) {
		return findAction(game.Check, view.ValidActions, "TAG check")
	}
	if t.rng.Float64() < 0.3 && hasAction(game.Call, view.ValidActions) {
		return findAction(game.Call, view.ValidActions, "TAG call")
	}
	return findAction(game.Fold, view.ValidActions, "TAG fold")
}
