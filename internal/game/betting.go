package game

import "fmt"

// Phase is where a Round is in its lifecycle. Dealing and Showdown only exist
// while Deal or the final action of a hand is running, so callers normally
// observe Setup, Betting or Complete.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDealing
	PhaseBetting
	PhaseShowdown
	PhaseComplete
)

var phaseNames = [...]string{"setup", "dealing", "betting", "showdown", "complete"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Street represents the betting round
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"preflop", "flop", "turn", "river"}

func (s Street) String() string {
	if s < 0 || int(s) >= len(streetNames) {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return streetNames[s]
}

// CommunityCards is how many board cards are showing during the street.
func (s Street) CommunityCards() int {
	return [...]int{0, 3, 4, 5}[s]
}

func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	for i, name := range streetNames {
		if name == string(text) {
			*s = Street(i)
			return nil
		}
	}
	return fmt.Errorf("unknown street %q", text)
}

// Action represents a player action. The zero value is not an action.
type Action int

const (
	Fold Action = iota + 1
	Check
	Call
	Bet
)

var actionNames = map[Action]string{Fold: "fold", Check: "check", Call: "call", Bet: "bet"}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction accepts the lowercase action names. "raise" is an alias for bet
// since amounts are always street totals.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet", "raise":
		return Bet, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ValidAction is an action the player on turn may take. For Call, Min is the
// street total being matched. For Bet, Min and Max bound the street total the
// player can bet to.
type ValidAction struct {
	Action Action `json:"action"`
	Min    int    `json:"min,omitempty"`
	Max    int    `json:"max,omitempty"`
}

// validActions lists the legal actions for p given the bet to match.
func validActions(p *Player, currentBet int) []ValidAction {
	actions := []ValidAction{{Action: Fold}}
	owed := currentBet - p.StreetBet

	if owed == 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else if owed <= p.Chips {
		actions = append(actions, ValidAction{Action: Call, Min: currentBet, Max: currentBet})
	}

	most := p.StreetBet + p.Chips
	least := max(currentBet+1, 1)
	if most >= least {
		actions = append(actions, ValidAction{Action: Bet, Min: least, Max: most})
	}
	return actions
}
