package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// ManiacBot bets and raises far more often than it should
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Name() string { return "maniac" }

func (m *ManiacBot) MakeDecision(view View) Decision {
	lo, hi, canBet := betRange(view.ValidActions)

	if hasAction(game.Check, view.ValidActions) {
		if canBet && m.rng.Float64() < 0.85 {
			if m.rng.Float64() < 0.3 {
				return Decision{Action: game.Bet, Amount: hi, Reasoning: "maniac shove"}
			}
			return Decision{Action: game.Bet, Amount: lo + (hi-lo)*3/4, Reasoning: "maniac big bet"}
		}
		return findAction(game.Check, view.ValidActions, "maniac checking")
	}

	// Facing a bet
	roll := m.rng.Float64()
	if roll < 0.4 && canBet {
		return Decision{Action: game.Bet, Amount: hi, Reasoning: "maniac shove over bet"}
	}
	if roll < 0.8 && hasAction(game.Call, view.ValidActions) {
		return findAction(game.Call, view.ValidActions, "maniac call")
	}
	return findAction(game.Fold, view.ValidActions, "maniac fold")
}
