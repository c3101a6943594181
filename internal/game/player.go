package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
)

// Player represents a seated player. Chips persist across hands; the other
// fields describe the current hand.
type Player struct {
	Name      string      `json:"name"`
	Chips     int         `json:"chips"`
	Hole      []deck.Card `json:"hole,omitempty"`
	Folded    bool        `json:"folded"`
	Acted     bool        `json:"acted"`
	StreetBet int         `json:"street_bet"` // committed on the current street
	Committed int         `json:"committed"`  // committed in the whole hand
}

// Owes returns how much more the player must put in to match currentBet.
func (p *Player) Owes(currentBet int) int {
	return max(currentBet-p.StreetBet, 0)
}

// needsToAct reports whether the betting street can't end without p acting.
func (p *Player) needsToAct(currentBet int) bool {
	return !p.Folded && (!p.Acted || p.StreetBet < currentBet)
}

func (p *Player) clone() Player {
	c := *p
	c.Hole = slices.Clone(p.Hole)
	return c
}

// Roster is the ordered list of seats. Seat order is turn order and never
// changes during a hand. Roster is not safe for concurrent use; Round guards it.
type Roster struct {
	seats []*Player
}

// Add seats a new player at the end of the table.
func (r *Roster) Add(name string, chips int) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if chips < 0 {
		return nil, fmt.Errorf("%w: starting chips %d", ErrInvalidAmount, chips)
	}
	if r.Index(name) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
	}
	p := &Player{Name: name, Chips: chips}
	r.seats = append(r.seats, p)
	return p, nil
}

// Remove unseats a player, returning their final stack.
func (r *Roster) Remove(name string) (Player, error) {
	i := r.Index(name)
	if i < 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	p := r.seats[i]
	r.seats = slices.Delete(r.seats, i, i+1)
	return *p, nil
}

// Index returns the seat of the named player or -1.
func (r *Roster) Index(name string) int {
	return slices.IndexFunc(r.seats, func(p *Player) bool { return p.Name == name })
}

// Find returns the named player.
func (r *Roster) Find(name string) (*Player, bool) {
	if i := r.Index(name); i >= 0 {
		return r.seats[i], true
	}
	return nil, false
}

// Seat returns the player at seat i.
func (r *Roster) Seat(i int) *Player {
	return r.seats[i]
}

func (r *Roster) Len() int {
	return len(r.seats)
}

// ResetForHand clears every per-hand field. Chips are untouched.
func (r *Roster) ResetForHand() {
	for _, p := range r.seats {
		p.Hole = nil
		p.Folded = false
		p.Acted = false
		p.StreetBet = 0
		p.Committed = 0
	}
}

// ResetForStreet clears acted flags and street bets.
func (r *Roster) ResetForStreet() {
	for _, p := range r.seats {
		p.Acted = false
		p.StreetBet = 0
	}
}

// Unfolded returns the seats still contesting the pot, in seat order.
func (r *Roster) Unfolded() []int {
	var seats []int
	for i, p := range r.seats {
		if !p.Folded {
			seats = append(seats, i)
		}
	}
	return seats
}

// TotalChips is the sum of all stacks, excluding anything in the pot.
func (r *Roster) TotalChips() int {
	total := 0
	for _, p := range r.seats {
		total += p.Chips
	}
	return total
}

// Players returns deep copies of every seat.
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.seats))
	for i, p := range r.seats {
		out[i] = p.clone()
	}
	return out
}
