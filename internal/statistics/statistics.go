// Package statistics accumulates per-player results over many simulated
// hands.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// HandResult is one player's outcome of a single hand
type HandResult struct {
	Net            int    // chips won (positive) or lost (negative)
	Seat           int    // seat index the player held
	WentToShowdown bool   // the hand reached a showdown
	Folded         bool   // the player folded
	FinalPotSize   int    // pot at the end of the hand
	StreetReached  string // last street played
}

// SeatStats tracks results for one seat
type SeatStats struct {
	Hands int
	Sum   float64
	SumSq float64
}

// Statistics tracks a player's results across hands
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64   // sum of squares for variance
	Values []float64 // every result, for median and percentiles

	// Wins and net chips split by how the hand ended
	ShowdownWins    int
	NonShowdownWins int
	ShowdownNet     float64
	NonShowdownNet  float64
	AllNet          float64
	Folds           int

	// Per seat, indexed by seat number
	SeatResults []SeatStats

	// Pot sizes. BigPotChips is the threshold for BigPots; zero disables it.
	MaxPot      int
	BigPotChips int
	BigPots     int
	BigPotsNet  float64
}

// Mean returns the average net chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if net > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}

	// Losses count too, so the buckets always add up to AllNet
	if result.WentToShowdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net
	if result.Folded {
		s.Folds++
	}

	if result.Seat >= 0 {
		if result.Seat >= len(s.SeatResults) {
			s.SeatResults = append(s.SeatResults, make([]SeatStats, result.Seat+1-len(s.SeatResults))...)
		}
		seat := &s.SeatResults[result.Seat]
		seat.Hands++
		seat.Sum += net
		seat.SumSq += net * net
	}

	s.MaxPot = max(s.MaxPot, result.FinalPotSize)
	if s.BigPotChips > 0 && result.FinalPotSize >= s.BigPotChips {
		s.BigPots++
		s.BigPotsNet += net
	}
}

// Median returns the median of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbouring results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result from one seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.SeatResults) {
		return 0
	}
	ss := s.SeatResults[seat]
	if ss.Hands == 0 {
		return 0
	}
	return ss.Sum / float64(ss.Hands)
}

// IsLedgerBalanced checks that showdown and non-showdown results add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate checks the accumulated data for internal consistency
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.2f, ShowdownNet=%.2f, NonShowdownNet=%.2f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	seatHands := 0
	for _, ss := range s.SeatResults {
		seatHands += ss.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}

	return nil
}
