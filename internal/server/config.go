package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroom/trainer/internal/engine"
)

// Config is the complete trainer configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
	Seats  []SeatSettings `hcl:"seat,block"`
}

// ServerSettings contains host-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableSettings defines the stakes and table size for the session.
type TableSettings struct {
	MaxSeats   int `hcl:"max_seats,optional"`
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
	Ante       int `hcl:"ante,optional"`
}

// SeatSettings seats one player for the session.
type SeatSettings struct {
	Name  string `hcl:"name,label"`
	Seat  int    `hcl:"seat"`
	Stack int    `hcl:"stack"`
}

// DefaultConfig returns the configuration used when no file is present:
// a six-max 5/10 table with six equal stacks.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			MaxSeats:   6,
			SmallBlind: 5,
			BigBlind:   10,
		},
	}
	for i := 0; i < 6; i++ {
		cfg.Seats = append(cfg.Seats, SeatSettings{
			Name:  fmt.Sprintf("player%d", i+1),
			Seat:  i,
			Stack: 1000,
		})
	}
	return cfg
}

// LoadConfig loads configuration from an HCL file, falling back to
// DefaultConfig when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Table.MaxSeats == 0 {
		cfg.Table.MaxSeats = 6
	}

	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("big blind %d is below small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.Ante < 0 {
		return fmt.Errorf("ante must be non-negative, got %d", c.Table.Ante)
	}
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > engine.MaxSeats {
		return fmt.Errorf("max seats must be 2-%d, got %d", engine.MaxSeats, c.Table.MaxSeats)
	}
	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats must be configured, got %d", len(c.Seats))
	}

	seats := map[int]bool{}
	for _, s := range c.Seats {
		if s.Seat < 0 || s.Seat >= c.Table.MaxSeats {
			return fmt.Errorf("seat %q: seat %d out of range 0-%d", s.Name, s.Seat, c.Table.MaxSeats-1)
		}
		if seats[s.Seat] {
			return fmt.Errorf("seat %d configured twice", s.Seat)
		}
		seats[s.Seat] = true
		if s.Stack <= 0 {
			return fmt.Errorf("seat %q: stack must be positive, got %d", s.Name, s.Stack)
		}
	}
	return nil
}

// ListenAddress returns the host:port the server should bind to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// HandConfig converts the configured table and seats into the
// parameters for the session's first hand.
func (c *Config) HandConfig(seed int64) engine.HandConfig {
	cfg := engine.HandConfig{
		Table: engine.Table{
			MaxSeats:   c.Table.MaxSeats,
			SmallBlind: c.Table.SmallBlind,
			BigBlind:   c.Table.BigBlind,
			Ante:       c.Table.Ante,
		},
		Dealer: c.Seats[0].Seat,
		Seed:   seed,
	}
	for _, s := range c.Seats {
		cfg.Players = append(cfg.Players, engine.SeatConfig{
			ID:    s.Name,
			Name:  s.Name,
			Seat:  s.Seat,
			Stack: s.Stack,
		})
	}
	return cfg
}
