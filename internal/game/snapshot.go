package game

import (
	"slices"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

// Snapshot is a self-contained copy of a Round's state, safe to serialise and
// hand to another goroutine.
type Snapshot struct {
	HandID     string      `json:"hand_id,omitempty"`
	Hands      int         `json:"hands"`
	Phase      Phase       `json:"phase"`
	Street     Street      `json:"street"`
	Players    []Player    `json:"players"`
	Community  []deck.Card `json:"community"`
	Pot        int         `json:"pot"`
	CurrentBet int         `json:"current_bet"`
	Turn       int         `json:"turn"` // seat on turn, -1 for none
	Showdown   bool        `json:"showdown"`
	Winners    []Winner    `json:"winners,omitempty"`
	Log        []LogEntry  `json:"log,omitempty"`
}

// TurnPlayer returns the name of the player on turn.
func (s Snapshot) TurnPlayer() (string, bool) {
	if s.Turn < 0 || s.Turn >= len(s.Players) {
		return "", false
	}
	return s.Players[s.Turn].Name, true
}

// Player returns the named player.
func (s Snapshot) Player(name string) (Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// Redact returns a copy with hole cards hidden from viewer. A player's own
// cards stay visible, as do the cards of everyone who reached a showdown.
// An empty viewer sees no hole cards before showdown.
func (s Snapshot) Redact(viewer string) Snapshot {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.Name != viewer && !(s.Showdown && !p.Folded) {
			p.Hole = nil
		} else {
			p.Hole = slices.Clone(p.Hole)
		}
		out.Players[i] = p
	}
	return out
}
