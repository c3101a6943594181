package game

import (
	"fmt"
	"slices"

	"github.com/ianwalkeruk/vibe-poker/internal/evaluator"
)

// settleShowdown ranks every unfolded hand and pays the best. Tied winners
// split the pot; leftover chips go one each to the tied winners in seat
// order, starting from the lowest seat.
func (r *Round) settleShowdown() error {
	r.phase = PhaseShowdown
	r.showdown = true

	type contender struct {
		seat int
		hand evaluator.Hand
	}
	var best []contender
	for _, seat := range r.roster.Unfolded() {
		p := r.roster.Seat(seat)
		hand, err := evaluator.BestHand(slices.Concat(p.Hole, r.community))
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		r.record(LogEntry{Kind: EntryShowdown, Player: p.Name, Cards: slices.Clone(p.Hole), Hand: hand.Rank.String()})

		switch {
		case len(best) == 0 || hand.Rank.Compare(best[0].hand.Rank) > 0:
			best = []contender{{seat, hand}}
		case hand.Rank == best[0].hand.Rank:
			best = append(best, contender{seat, hand})
		}
	}

	shares := splitPot(r.pot, len(best))
	r.winners = make([]Winner, len(best))
	for i, c := range best {
		p := r.roster.Seat(c.seat)
		p.Chips += shares[i]
		hand := c.hand
		r.winners[i] = Winner{
			Name:        p.Name,
			Amount:      shares[i],
			Hand:        &hand,
			Description: hand.Rank.String(),
		}
		r.record(LogEntry{Kind: EntryWin, Player: p.Name, Amount: shares[i], Hand: hand.Rank.String()})
	}

	r.finish()
	return nil
}

// awardUncontested pays the whole pot to the last player standing.
func (r *Round) awardUncontested(seat int) {
	p := r.roster.Seat(seat)
	p.Chips += r.pot
	r.winners = []Winner{{Name: p.Name, Amount: r.pot}}
	r.record(LogEntry{Kind: EntryWin, Player: p.Name, Amount: r.pot})
	r.finish()
}

func (r *Round) finish() {
	r.phase = PhaseComplete
	r.turn = -1
	r.currentBet = 0
	r.logger.Info("Hand complete", "hand", r.handID, "pot", r.pot, "winners", winnerNames(r.winners), "showdown", r.showdown)
}

// splitPot divides pot between n winners, giving the remainder one chip at a
// time from the first share.
func splitPot(pot, n int) []int {
	shares := make([]int, n)
	for i := range shares {
		shares[i] = pot / n
		if i < pot%n {
			shares[i]++
		}
	}
	return shares
}

func winnerNames(winners []Winner) []string {
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	return names
}
