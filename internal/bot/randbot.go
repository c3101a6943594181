package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// RandBot makes uniformly random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Name() string { return "random" }

func (r *RandBot) MakeDecision(view View) Decision {
	if len(view.ValidActions) == 0 {
		return Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	va := view.ValidActions[r.rng.IntN(len(view.ValidActions))]

	amount := va.Min
	if va.Action == game.Bet && va.Max > va.Min {
		amount = va.Min + r.rng.IntN(va.Max-va.Min+1)
	}

	return Decision{Action: va.Action, Amount: amount, Reasoning: "rand-bot random action"}
}
