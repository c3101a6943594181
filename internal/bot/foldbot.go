package bot

import (
	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// FoldBot always folds, except that it checks when that is free.
type FoldBot struct {
	logger *log.Logger
}

func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Name() string { return "fold" }

func (f *FoldBot) MakeDecision(view View) Decision {
	if hasAction(game.Check, view.ValidActions) {
		return findAction(game.Check, view.ValidActions, "fold-bot checking")
	}
	return findAction(game.Fold, view.ValidActions, "fold-bot folding")
}
