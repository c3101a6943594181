// Package bot provides simple automated players. A Strategy looks at what
// one seat can see of the table and picks a legal action; Play applies that
// choice to a Round.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrNotOnTurn       = errors.New("player is not on turn")
)

// Decision is an action chosen by a strategy, with a short explanation for
// logs.
type Decision struct {
	Action    game.Action
	Amount    int
	Reasoning string
}

// View is the table as one player sees it while on turn: other players' hole
// cards are hidden.
type View struct {
	Self         game.Player
	Table        game.Snapshot
	ValidActions []game.ValidAction
}

// Owes is how much Self must add to stay in the hand.
func (v View) Owes() int {
	return v.Self.Owes(v.Table.CurrentBet)
}

// Opponents counts the other players still holding cards.
func (v View) Opponents() int {
	n := 0
	for _, p := range v.Table.Players {
		if !p.Folded && p.Name != v.Self.Name {
			n++
		}
	}
	return n
}

// Strategy decides what a player does when it is their turn.
type Strategy interface {
	Name() string
	MakeDecision(view View) Decision
}

// Strategies lists the names accepted by New.
var Strategies = []string{"call", "fold", "random", "chart", "tag", "maniac", "equity"}

// New builds a strategy by name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Strategy, error) {
	logger = logger.WithPrefix("bot")
	switch strings.ToLower(name) {
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "random", "rand":
		return NewRandBot(rng, logger), nil
	case "chart":
		return NewChartBot(logger), nil
	case "tag":
		return NewTAGBot(rng, logger), nil
	case "maniac":
		return NewManiacBot(rng, logger), nil
	case "equity":
		return NewEquityBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(Strategies, ", "))
	}
}

// ViewFor builds the view of name from a full snapshot.
func ViewFor(snap game.Snapshot, name string, valid []game.ValidAction) (View, bool) {
	redacted := snap.Redact(name)
	self, ok := redacted.Player(name)
	if !ok {
		return View{}, false
	}
	return View{Self: self, Table: redacted, ValidActions: valid}, true
}

// Play asks s for name's action and applies it to r. It returns the decision
// that was applied.
func Play(r *game.Round, name string, s Strategy) (Decision, error) {
	valid := r.ValidActions(name)
	if len(valid) == 0 {
		return Decision{}, fmt.Errorf("%w: %s", ErrNotOnTurn, name)
	}
	view, ok := ViewFor(r.Snapshot(), name, valid)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", game.ErrPlayerNotFound, name)
	}

	d := s.MakeDecision(view)
	if err := r.Act(name, d.Action, d.Amount); err != nil {
		return d, fmt.Errorf("%s bot chose %s %d: %w", s.Name(), d.Action, d.Amount, err)
	}
	return d, nil
}

func hasAction(action game.Action, validActions []game.ValidAction) bool {
	return slices.ContainsFunc(validActions, func(va game.ValidAction) bool { return va.Action == action })
}

// findAction returns preferred at its minimum amount when legal, otherwise
// the first legal action.
func findAction(preferred game.Action, validActions []game.ValidAction, reasoning string) Decision {
	for _, va := range validActions {
		if va.Action == preferred {
			return Decision{Action: preferred, Amount: va.Min, Reasoning: reasoning}
		}
	}

	if len(validActions) > 0 {
		return Decision{Action: validActions[0].Action, Amount: validActions[0].Min, Reasoning: "fallback: " + reasoning}
	}

	return Decision{Action: game.Fold, Reasoning: "emergency fold"}
}

// betRange returns the legal bet range, if betting is allowed.
func betRange(validActions []game.ValidAction) (lo, hi int, ok bool) {
	for _, va := range validActions {
		if va.Action == game.Bet {
			return va.Min, va.Max, true
		}
	}
	return 0, 0, false
}

// passive checks when free, otherwise calls, otherwise folds.
func passive(validActions []game.ValidAction, who string) Decision {
	if hasAction(game.Check, validActions) {
		return findAction(game.Check, validActions, who+" checking")
	}
	if hasAction(game.Call, validActions) {
		return findAction(game.Call, validActions, who+" calling")
	}
	return findAction(game.Fold, validActions, who+" folding")
}

// potBet sizes a bet at fraction of the pot on top of the current bet,
// clamped to the legal range.
func potBet(view View, fraction float64) (int, bool) {
	lo, hi, ok := betRange(view.ValidActions)
	if !ok {
		return 0, false
	}
	want := view.Table.CurrentBet + int(float64(max(view.Table.Pot, 1))*fraction)
	return min(max(want, lo), hi), true
}
