package server

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ianwalkeruk/vibe-poker/internal/bot"
	"github.com/ianwalkeruk/vibe-poker/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Table  *TableConfig    `hcl:"table,block"`
	Bots   []BotConfig     `hcl:"bot,block"`
}

// ServerSettings contains listener and logging configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig configures the single table the server hosts
type TableConfig struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	MaxSeats      int    `hcl:"max_seats,optional"`
	ActionTimeout string `hcl:"action_timeout,optional"` // Go duration, "0s" disables
	Seed          int64  `hcl:"seed,optional"`           // 0 picks a random seed
	HistoryDir    string `hcl:"history_dir,optional"`    // empty disables hand histories
}

// BotConfig seats a server-side bot at startup
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	BuyIn    int    `hcl:"buy_in,optional"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = 1000
	}
	if c.Table.MaxSeats == 0 {
		c.Table.MaxSeats = 9
	}
	if c.Table.ActionTimeout == "" {
		c.Table.ActionTimeout = "30s"
	}

	for i := range c.Bots {
		if c.Bots[i].BuyIn == 0 {
			c.Bots[i].BuyIn = c.Table.StartingChips
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.Table.StartingChips <= 0 {
		return fmt.Errorf("table: starting chips must be positive")
	}
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > game.MaxSeats {
		return fmt.Errorf("table: max seats must be between 2 and %d", game.MaxSeats)
	}
	timeout, err := c.Timeout()
	if err != nil {
		return fmt.Errorf("table: invalid action timeout: %w", err)
	}
	if timeout < 0 {
		return fmt.Errorf("table: action timeout cannot be negative")
	}

	if len(c.Bots) >= c.Table.MaxSeats {
		return fmt.Errorf("%d bots leave no seat free at a %d-seat table", len(c.Bots), c.Table.MaxSeats)
	}
	seen := make(map[string]bool, len(c.Bots))
	for _, b := range c.Bots {
		if seen[b.Name] {
			return fmt.Errorf("bot %s: duplicate name", b.Name)
		}
		seen[b.Name] = true
		if !validStrategy(b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		if b.BuyIn <= 0 {
			return fmt.Errorf("bot %s: buy-in must be positive", b.Name)
		}
	}

	return nil
}

// Timeout parses the action timeout
func (c *Config) Timeout() (time.Duration, error) {
	return time.ParseDuration(c.Table.ActionTimeout)
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

func validStrategy(name string) bool {
	if strings.EqualFold(name, "rand") {
		return true
	}
	return slices.ContainsFunc(bot.Strategies, func(s string) bool { return strings.EqualFold(s, name) })
}
