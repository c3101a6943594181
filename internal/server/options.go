package server

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"

	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for action timeouts. Tests pass a quartz
// mock.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithRNG sets the random source shared by the table and its bots, in place
// of one seeded from the config.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// WithHistoryWriter overrides where completed hand histories go.
func WithHistoryWriter(w game.HistoryWriter) Option {
	return func(s *Server) { s.history = w }
}
