package bot

import (
	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// CallBot checks or calls down every street, folding the river only to bets
// bigger than the pot.
type CallBot struct {
	logger *log.Logger
}

func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Name() string { return "call" }

func (c *CallBot) MakeDecision(view View) Decision {
	if view.Table.Street == game.River && view.Owes() > view.Table.Pot-view.Owes() {
		return findAction(game.Fold, view.ValidActions, "call-bot folding river to overbet")
	}
	return passive(view.ValidActions, "call-bot")
}
