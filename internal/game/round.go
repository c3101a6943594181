package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ianwalkeruk/vibe-poker/internal/deck"
	"github.com/ianwalkeruk/vibe-poker/internal/handid"
)

// Round is one poker table playing a hand at a time. It is safe for
// concurrent use: every exported method holds the Round's lock for its whole
// duration, so actions apply one at a time and never partially.
type Round struct {
	mu sync.Mutex

	rng      *rand.Rand
	logger   *log.Logger
	ids      *handid.Generator
	newDeck  func() *deck.Deck
	maxSeats int

	roster     Roster
	deck       *deck.Deck
	community  []deck.Card
	pot        int
	currentBet int
	turn       int
	phase      Phase
	street     Street
	showdown   bool
	handID     string
	hands      int
	winners    []Winner
	log        []LogEntry
}

// NewRound creates an empty table in the Setup phase.
func NewRound(opts ...Option) *Round {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.finish()

	return &Round{
		rng:      cfg.rng,
		logger:   cfg.logger,
		ids:      cfg.ids,
		newDeck:  cfg.newDeck,
		maxSeats: cfg.maxSeats,
		turn:     -1,
		phase:    PhaseSetup,
	}
}

func (r *Round) structural() error {
	if r.phase != PhaseSetup && r.phase != PhaseComplete {
		return fmt.Errorf("%w: phase %s", ErrRoundInProgress, r.phase)
	}
	return nil
}

// AddPlayer seats a player with a starting stack. Only allowed between hands.
func (r *Round) AddPlayer(name string, chips int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.structural(); err != nil {
		return err
	}
	if r.roster.Len() >= r.maxSeats {
		return fmt.Errorf("%w: %d seats", ErrTableFull, r.maxSeats)
	}
	p, err := r.roster.Add(name, chips)
	if err != nil {
		return err
	}
	r.logger.Debug("Player seated", "player", p.Name, "chips", p.Chips, "seat", r.roster.Len()-1)
	return nil
}

// RemovePlayer unseats a player between hands and returns their stack.
func (r *Round) RemovePlayer(name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.structural(); err != nil {
		return 0, err
	}
	p, err := r.roster.Remove(name)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Player left", "player", p.Name, "chips", p.Chips)
	return p.Chips, nil
}

// Deal starts a new hand: a fresh shuffled deck, two hole cards per seat dealt
// one card per pass in seat order, and the pre-flop street with seat 0 on turn.
// On error the Round is unchanged.
func (r *Round) Deal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.structural(); err != nil {
		return err
	}
	n := r.roster.Len()
	if n < 2 {
		return fmt.Errorf("%w: %d seated", ErrNotEnoughPlayers, n)
	}

	var d *deck.Deck
	if r.newDeck != nil {
		d = r.newDeck()
	} else {
		d = deck.New()
		d.Shuffle(r.rng)
	}

	holes := make([][]deck.Card, n)
	for range 2 {
		for i := range n {
			c, err := d.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			holes[i] = append(holes[i], c)
		}
	}

	r.phase = PhaseDealing
	r.roster.ResetForHand()
	for i, hole := range holes {
		r.roster.Seat(i).Hole = hole
	}
	r.deck = d
	r.community = nil
	r.pot = 0
	r.currentBet = 0
	r.turn = 0
	r.showdown = false
	r.winners = nil
	r.log = nil
	r.handID = r.ids.Generate()
	r.hands++
	r.street = PreFlop
	r.phase = PhaseBetting

	r.logger.Debug("Dealt hand", "hand", r.handID, "players", n)
	return nil
}

// Bet bets to amount: amount is the player's total for the street, so the
// stack is debited amount minus what they already put in this street.
func (r *Round) Bet(name string, amount int) error {
	return r.Act(name, Bet, amount)
}

// Call matches the current bet. With nothing owed it is a check.
func (r *Round) Call(name string) error {
	return r.Act(name, Call, 0)
}

// Check passes the action without betting. Only legal when the player has
// already matched the current bet.
func (r *Round) Check(name string) error {
	return r.Act(name, Check, 0)
}

// Fold gives up the hand. If one player remains they win the pot at once.
func (r *Round) Fold(name string) error {
	return r.Act(name, Fold, 0)
}

// Act applies an action for the named player. amount is only used by Bet.
func (r *Round) Act(name string, action Action, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseBetting {
		return fmt.Errorf("%w: %s during %s", ErrInvalidPhaseForAction, action, r.phase)
	}
	seat := r.roster.Index(name)
	if seat < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
	}
	if seat != r.turn {
		return fmt.Errorf("%w: %s, waiting on %s", ErrNotPlayersTurn, name, r.roster.Seat(r.turn).Name)
	}
	p := r.roster.Seat(seat)

	switch action {
	case Fold:
		p.Folded = true
		p.Acted = true
		r.record(LogEntry{Kind: EntryAction, Player: p.Name, Action: Fold})
		if unfolded := r.roster.Unfolded(); len(unfolded) == 1 {
			r.awardUncontested(unfolded[0])
			return nil
		}

	case Check:
		if p.StreetBet != r.currentBet {
			return fmt.Errorf("%w: %s owes %d", ErrIllegalCheck, p.Name, p.Owes(r.currentBet))
		}
		p.Acted = true
		r.record(LogEntry{Kind: EntryAction, Player: p.Name, Action: Check})

	case Call:
		if p.StreetBet == r.currentBet {
			p.Acted = true
			r.record(LogEntry{Kind: EntryAction, Player: p.Name, Action: Check})
			break
		}
		if err := r.commit(p, r.currentBet); err != nil {
			return err
		}
		r.record(LogEntry{Kind: EntryAction, Player: p.Name, Action: Call, Amount: r.currentBet})

	case Bet:
		if amount <= 0 {
			return fmt.Errorf("%w: bet of %d", ErrInvalidAmount, amount)
		}
		if amount < r.currentBet {
			return fmt.Errorf("%w: %d is below the current bet of %d", ErrBetTooSmall, amount, r.currentBet)
		}
		if err := r.commit(p, amount); err != nil {
			return err
		}
		r.record(LogEntry{Kind: EntryAction, Player: p.Name, Action: Bet, Amount: amount})

	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}

	r.logger.Debug("Player acted", "hand", r.handID, "player", p.Name, "action", action,
		"street_bet", p.StreetBet, "pot", r.pot)
	return r.advance(seat)
}

// commit brings p's street total up to amount, or fails without touching
// anything if the stack can't cover it.
func (r *Round) commit(p *Player, amount int) error {
	debit := amount - p.StreetBet
	if debit > p.Chips {
		return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientChips, p.Name, debit, p.Chips)
	}
	p.Chips -= debit
	p.StreetBet = amount
	p.Committed += debit
	p.Acted = true
	r.pot += debit
	r.currentBet = max(r.currentBet, amount)
	return nil
}

// advance moves the turn to the next seat that still owes action after from,
// ending the street when there is none.
func (r *Round) advance(from int) error {
	n := r.roster.Len()
	for i := 1; i < n; i++ {
		seat := (from + i) % n
		if r.roster.Seat(seat).needsToAct(r.currentBet) {
			r.turn = seat
			return nil
		}
	}
	return r.advanceStreet()
}

// advanceStreet deals the next street's community cards or, after the river,
// settles the hand at showdown.
func (r *Round) advanceStreet() error {
	if r.street == River {
		return r.settleShowdown()
	}

	count := 1
	if r.street == PreFlop {
		count = 3
	}
	cards, err := r.deck.DrawN(count)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", r.street+1, err)
	}

	r.roster.ResetForStreet()
	r.currentBet = 0
	r.community = append(r.community, cards...)
	r.street++
	r.turn = r.roster.Unfolded()[0]
	r.record(LogEntry{Kind: EntryStreet, Cards: slices.Clone(r.community)})

	r.logger.Debug("Street dealt", "hand", r.handID, "street", r.street, "board", r.community)
	return nil
}

func (r *Round) record(e LogEntry) {
	e.Street = r.street
	r.log = append(r.log, e)
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Street returns the current (or last) betting street.
func (r *Round) Street() Street {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.street
}

// Players returns copies of every seat in seat order.
func (r *Round) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roster.Players()
}

// Player returns a copy of the named seat.
func (r *Round) Player(name string) (Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.roster.Find(name)
	if !ok {
		return Player{}, false
	}
	return p.clone(), true
}

func (r *Round) Community() []deck.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.community)
}

func (r *Round) Pot() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pot
}

func (r *Round) CurrentBet() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentBet
}

// Turn returns the player on turn, if any.
func (r *Round) Turn() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.turn < 0 {
		return "", false
	}
	return r.roster.Seat(r.turn).Name, true
}

// Winners returns the payouts of the last completed hand, nil otherwise.
func (r *Round) Winners() []Winner {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseComplete {
		return nil
	}
	return slices.Clone(r.winners)
}

// ValidActions lists what the named player may do now: nil unless it is
// their turn.
func (r *Round) ValidActions(name string) []ValidAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseBetting || r.turn < 0 {
		return nil
	}
	p := r.roster.Seat(r.turn)
	if p.Name != name {
		return nil
	}
	return validActions(p, r.currentBet)
}

func (r *Round) HandID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handID
}

// Log returns the action log of the current or last hand.
func (r *Round) Log() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.log)
}

// Snapshot copies the full state, hole cards included.
func (r *Round) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		HandID:     r.handID,
		Hands:      r.hands,
		Phase:      r.phase,
		Street:     r.street,
		Players:    r.roster.Players(),
		Community:  slices.Clone(r.community),
		Pot:        r.pot,
		CurrentBet: r.currentBet,
		Turn:       r.turn,
		Showdown:   r.showdown,
		Winners:    slices.Clone(r.winners),
		Log:        slices.Clone(r.log),
	}
}
