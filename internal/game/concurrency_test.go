package game

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentActionsAreSerialised has every player hammer the Round from
// its own goroutine. Only the player on turn succeeds; everyone else must get
// ErrNotPlayersTurn and change nothing.
func TestConcurrentActionsAreSerialised(t *testing.T) {
	t.Parallel()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve"}
	r := NewTestRound(WithPlayers(names...))
	require.NoError(t, r.Deal())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		failures []error
	)
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r.Phase() == PhaseBetting {
				err := r.Call(name)
				switch {
				case err == nil:
					mu.Lock()
					accepted++
					mu.Unlock()
				case errors.Is(err, ErrNotPlayersTurn), errors.Is(err, ErrInvalidPhaseForAction):
					runtime.Gosched()
				default:
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
					return
				}
			}
		}()
	}

	// Readers run alongside the writers.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for r.Phase() == PhaseBetting {
			_ = r.Snapshot().Redact("Alice")
		}
	}()

	wg.Wait()
	<-done

	assert.Empty(t, failures)
	assert.Equal(t, 4*len(names), accepted, "one call per player per street")
	assert.Equal(t, PhaseComplete, r.Phase())
	assert.Len(t, r.Community(), 5)

	total := 0
	for _, p := range r.Players() {
		total += p.Chips
	}
	assert.Equal(t, len(names)*1000, total)
}

func TestIndependentRoundsShareNothing(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := HeadsUpRound(WithSeed(int64(i)))
			for range 50 {
				if err := r.Deal(); err != nil {
					t.Error(err)
					return
				}
				for r.Phase() == PhaseBetting {
					name, _ := r.Turn()
					if err := r.Call(name); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
