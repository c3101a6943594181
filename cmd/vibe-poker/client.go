package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ianwalkeruk/vibe-poker/cmd/vibe-poker/shared"
	"github.com/ianwalkeruk/vibe-poker/internal/client"
	"github.com/ianwalkeruk/vibe-poker/internal/tui"
)

// ClientCmd sits one player at a remote table in the terminal UI
type ClientCmd struct {
	Config   string `kong:"short='c',default='vibe-poker-client.hcl',help='Path to HCL configuration file'"`
	URL      string `kong:"name='url',short='s',help='Server URL (overrides config)'"`
	Name     string `kong:"short='n',help='Player name (overrides config, defaults to $USER)'"`
	BuyIn    int    `kong:"help='Chips to sit down with, 0 for the table default (overrides config)'"`
	NoColor  bool   `kong:"help='Disable colours'"`
	LogLevel string `kong:"help='Log level (overrides config)'"`
	LogFile  string `kong:"help='Log file path (overrides config)'"`
}

func (c *ClientCmd) Run() error {
	cfg, err := client.LoadClientConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The terminal belongs to the UI, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := shared.SetupLoggerWithLevel(logFile, cfg.UI.LogLevel)
	logger.Info("Starting client", "server", cfg.Server.URL, "player", cfg.Player.Name, "config", c.Config)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	connectCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ConnectTimeout)*time.Second)
	defer cancel()

	wsClient := client.NewClient(cfg.Server.URL, logger)
	if err := wsClient.Connect(connectCtx); err != nil {
		return err
	}
	defer func() { _ = wsClient.Disconnect() }()

	tuiModel := tui.NewTUIModel(logger)
	program := tea.NewProgram(tuiModel, tea.WithAltScreen())
	tuiModel.SetProgram(program)

	agent := client.NewNetworkAgent(wsClient, tuiModel, logger)

	tuiModel.AddLogEntry("=== vibe-poker ===")
	tuiModel.AddLogEntry("Connected to server: " + cfg.Server.URL)
	tuiModel.AddLogEntry("Player: " + cfg.Player.Name)
	if err := wsClient.Join(cfg.Player.Name, cfg.Player.BuyIn); err != nil {
		return err
	}

	agentErr := make(chan error, 1)
	go func() {
		err := agent.Run(ctx)
		tuiModel.SendQuitSignal()
		agentErr <- err
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	select {
	case err := <-agentErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	default:
		// The UI quit first; the agent stops with the connection
	}
	return nil
}

func (c *ClientCmd) applyOverrides(cfg *client.ClientConfig) {
	if c.URL != "" {
		cfg.Server.URL = c.URL
	}
	if c.Name != "" {
		cfg.Player.Name = c.Name
	}
	if cfg.Player.Name == "" {
		cfg.Player.Name = os.Getenv("USER")
	}
	cfg.Player.Name = strings.TrimSpace(cfg.Player.Name)
	if c.BuyIn > 0 {
		cfg.Player.BuyIn = c.BuyIn
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
}
