// Package server hosts a single poker table over websockets. Clients join a
// seat, request deals and submit actions; after every change each connection
// receives the table state with other players' hole cards hidden.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/ianwalkeruk/vibe-poker/internal/bot"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
	"github.com/ianwalkeruk/vibe-poker/internal/randutil"
)

const shutdownTimeout = 5 * time.Second

// Server represents the WebSocket server and the table it hosts
type Server struct {
	cfg      *Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	clock    quartz.Clock
	rng      *rand.Rand
	history  game.HistoryWriter
	timeout  time.Duration

	mu          sync.RWMutex
	connections map[*Connection]bool

	// tableMu orders table changes with the broadcasts and timers that
	// follow them. The Round has its own lock for everything else.
	tableMu  sync.Mutex
	round    *game.Round
	npcs     map[string]bot.Strategy
	departed map[string]bool
	timer    *quartz.Timer
	timerSeq uint64
	lastHand string
}

// NewServer creates a server for cfg, seating any configured bots.
func NewServer(cfg *Config, logger *log.Logger, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Browser clients may be served from anywhere
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:       quartz.NewReal(),
		timeout:     timeout,
		connections: make(map[*Connection]bool),
		npcs:        make(map[string]bot.Strategy),
		departed:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := cfg.Table.Seed
		if seed == 0 {
			seed = randutil.ProcessSeed()
		}
		s.logger.Info("Seeding table", "seed", seed)
		s.rng = randutil.New(seed)
	}
	if s.history == nil {
		if cfg.Table.HistoryDir != "" {
			s.history = game.NewFileHistoryWriter(cfg.Table.HistoryDir)
		} else {
			s.history = game.NopHistoryWriter{}
		}
	}

	s.round = game.NewRound(
		game.WithRNG(s.rng),
		game.WithLogger(logger.WithPrefix("round")),
		game.WithMaxSeats(cfg.Table.MaxSeats),
	)

	for _, b := range cfg.Bots {
		strategy, err := bot.New(b.Strategy, s.rng, logger)
		if err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		if err := s.round.AddPlayer(b.Name, b.BuyIn); err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		s.npcs[b.Name] = strategy
		s.logger.Info("Seated bot", "name", b.Name, "strategy", strategy.Name(), "chips", b.BuyIn)
	}

	return s, nil
}

// Handler returns the HTTP routes: /ws, /health and /state.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Address(), Handler: s.Handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down")
		s.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Stop closes every connection and cancels any pending action timeout.
func (s *Server) Stop() {
	s.tableMu.Lock()
	s.stopTimer()
	s.tableMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register(client)
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister(client)
	}()
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	// A fresh spectator view so the client can render the table at once
	s.tableMu.Lock()
	defer s.tableMu.Unlock()
	s.sendState(conn, s.round.Snapshot())
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	if _, ok := s.connections[conn]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()

	s.logger.Info("Client disconnected", "total", total)
	if name := conn.GetPlayer(); name != "" {
		s.disconnected(name)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

// handleState serves the public table state: no hole cards until showdown.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Snapshot().Redact("")); err != nil {
		s.logger.Error("Failed to encode state", "error", err)
	}
}

// ConnectedPlayers returns the names bound to open connections
func (s *Server) ConnectedPlayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []string
	for conn := range s.connections {
		if name := conn.GetPlayer(); name != "" {
			players = append(players, name)
		}
	}
	return players
}
