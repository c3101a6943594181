package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/ianwalkeruk/vibe-poker/cmd/vibe-poker/shared"
	"github.com/ianwalkeruk/vibe-poker/internal/server"
)

// ServerCmd hosts one table. Flags override the config file.
type ServerCmd struct {
	Config     string `kong:"short='c',default='vibe-poker.hcl',help='Path to HCL configuration file'"`
	Addr       string `kong:"help='Listen address as host:port (overrides config)'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed (overrides config)'"`
	Timeout    string `kong:"help='Action timeout such as 30s, 0 to disable (overrides config)'"`
	HistoryDir string `kong:"help='Directory for hand history files (overrides config)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := c.applyOverrides(cfg); err != nil {
		return err
	}

	logger := shared.SetupLoggerWithLevel(os.Stderr, cfg.Server.LogLevel)
	if c.Debug {
		logger = shared.SetupLogger(true)
	}

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting vibe-poker server",
		"address", cfg.Address(),
		"starting_chips", cfg.Table.StartingChips,
		"max_seats", cfg.Table.MaxSeats,
		"action_timeout", cfg.Table.ActionTimeout,
		"bots", len(cfg.Bots))

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return s.Start(ctx)
}

func (c *ServerCmd) applyOverrides(cfg *server.Config) error {
	if c.Addr != "" {
		host, port, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return fmt.Errorf("invalid --addr: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid --addr port: %w", err)
		}
		cfg.Server.Address = host
		cfg.Server.Port = p
	}
	if c.Seed != nil {
		cfg.Table.Seed = *c.Seed
	}
	if c.Timeout != "" {
		cfg.Table.ActionTimeout = c.Timeout
	}
	if c.HistoryDir != "" {
		cfg.Table.HistoryDir = c.HistoryDir
	}
	return cfg.Validate()
}
