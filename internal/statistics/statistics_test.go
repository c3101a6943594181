package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.SeatMean(0) != 0 {
		t.Errorf("Expected seat mean of 0 for empty stats, got %f", stats.SeatMean(0))
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{BigPotChips: 100}

	results := []HandResult{
		{Net: 10, Seat: 0, WentToShowdown: false, FinalPotSize: 20},
		{Net: -20, Seat: 1, WentToShowdown: true, FinalPotSize: 40},
		{Net: 30, Seat: 2, WentToShowdown: true, FinalPotSize: 120},
		{Net: 0, Seat: 0, WentToShowdown: false, FinalPotSize: 2, Folded: true},
		{Net: -10, Seat: 1, WentToShowdown: false, FinalPotSize: 30, Folded: true},
	}
	for _, result := range results {
		stats.Add(result)
	}

	if stats.Hands != 5 {
		t.Errorf("Expected 5 hands, got %d", stats.Hands)
	}
	if math.Abs(stats.Mean()-2.0) > 1e-9 {
		t.Errorf("Expected mean of 2, got %f", stats.Mean())
	}
	// sorted: -20, -10, 0, 10, 30
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 non-showdown win, got %d and %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.Folds != 2 {
		t.Errorf("Expected 2 folds, got %d", stats.Folds)
	}
	if len(stats.SeatResults) != 3 || stats.SeatResults[1].Hands != 2 {
		t.Errorf("Unexpected seat results: %+v", stats.SeatResults)
	}
	if math.Abs(stats.SeatMean(1)+15) > 1e-9 {
		t.Errorf("Expected seat 1 mean of -15, got %f", stats.SeatMean(1))
	}
	if stats.MaxPot != 120 || stats.BigPots != 1 || stats.BigPotsNet != 30 {
		t.Errorf("Unexpected pot tracking: max %d, big %d, big net %f", stats.MaxPot, stats.BigPots, stats.BigPotsNet)
	}
	if !stats.IsLedgerBalanced() {
		t.Error("Expected ledger to be balanced")
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{Net: i})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.625, 3.5},
		{1.0, 5.0},
	}
	for _, test := range tests {
		if got := stats.Percentile(test.percentile); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("Percentile %.3f: expected %f, got %f", test.percentile, test.expected, got)
		}
	}
}

func TestStatistics_VarianceAndInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []int{1, 3, 5} {
		stats.Add(HandResult{Net: v})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean: [%f, %f]", low, high)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should have positive width, got %f", high-low)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
		want  string
	}{
		{
			name:  "ledger mismatch",
			stats: Statistics{Hands: 1, Values: []float64{1}, AllNet: 1, ShowdownNet: 0.5, NonShowdownNet: 0.6},
			want:  "ledger mismatch",
		},
		{
			name:  "no hands",
			stats: Statistics{},
			want:  "invalid hands count",
		},
		{
			name:  "values mismatch",
			stats: Statistics{Hands: 2, Values: []float64{1}, AllNet: 1, NonShowdownNet: 1},
			want:  "values array length",
		},
		{
			name: "too many wins",
			stats: Statistics{Hands: 2, Values: []float64{1, 1}, AllNet: 2, ShowdownNet: 1, NonShowdownNet: 1,
				ShowdownWins: 2, NonShowdownWins: 2, SeatResults: []SeatStats{{Hands: 2}}},
			want: "exceeds total hands",
		},
		{
			name: "seat mismatch",
			stats: Statistics{Hands: 2, Values: []float64{1, 1}, AllNet: 2, ShowdownNet: 1, NonShowdownNet: 1,
				SeatResults: []SeatStats{{Hands: 1}}},
			want: "seat hands total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if err == nil {
				t.Fatalf("Expected validation to fail with %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q error, got: %v", tt.want, err)
			}
		})
	}
}
