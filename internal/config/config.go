// Package config loads the optional HCL configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/gofish"
	"github.com/lox/cardgames/internal/simulator"
)

// DefaultFile is read when no --config flag is given
const DefaultFile = "cardgames.hcl"

// Config represents the complete configuration
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	War        *WarConfig        `hcl:"war,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
	GoFish     *GoFishConfig     `hcl:"gofish,block"`
}

// WarConfig contains settings for single games and simulations of War
type WarConfig struct {
	AceLow    bool `hcl:"ace_low,optional"`
	MaxRounds int  `hcl:"max_rounds,optional"`
}

// SimulationConfig contains settings for the War simulator
type SimulationConfig struct {
	Games   int   `hcl:"games,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// GoFishConfig contains settings for Go Fish
type GoFishConfig struct {
	HandSize int            `hcl:"hand_size,optional"`
	MaxTurns int            `hcl:"max_turns,optional"`
	Seed     int64          `hcl:"seed,optional"`
	Players  []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig defines one Go Fish seat
type PlayerConfig struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind,optional"`
}

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func defaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "You", Kind: "human"},
		{Name: "Bot", Kind: "computer"},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse parses configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	diags := gohcl.DecodeBody(body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.War == nil {
		c.War = &WarConfig{}
	}
	if c.War.MaxRounds == 0 {
		c.War.MaxRounds = simulator.DefaultMaxRounds
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 10000
	}

	if c.GoFish == nil {
		c.GoFish = &GoFishConfig{}
	}
	if c.GoFish.HandSize == 0 {
		c.GoFish.HandSize = gofish.DefaultHandSize
	}
	if c.GoFish.MaxTurns == 0 {
		c.GoFish.MaxTurns = gofish.DefaultMaxTurns
	}
	if len(c.GoFish.Players) == 0 {
		c.GoFish.Players = defaultPlayers()
	}
	for i := range c.GoFish.Players {
		if c.GoFish.Players[i].Kind == "" {
			c.GoFish.Players[i].Kind = "computer"
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.War.MaxRounds < 0 {
		return fmt.Errorf("war: max rounds must not be negative")
	}

	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation: games must be positive")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative")
	}

	g := c.GoFish
	if len(g.Players) < 2 {
		return fmt.Errorf("gofish: %w, got %d", gofish.ErrNotEnoughPlayers, len(g.Players))
	}
	if g.HandSize < 1 || g.HandSize*len(g.Players) > deck.Size {
		return fmt.Errorf("gofish: cannot deal %d cards to %d players from %d", g.HandSize, len(g.Players), deck.Size)
	}
	if g.MaxTurns < 1 {
		return fmt.Errorf("gofish: max turns must be positive")
	}

	seen := make(map[string]bool)
	for _, p := range g.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("gofish: player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("gofish: duplicate player %q", p.Name)
		}
		seen[p.Name] = true
		if _, err := gofish.ParseKind(p.Kind); err != nil {
			return fmt.Errorf("gofish: player %s: %w", p.Name, err)
		}
	}

	return nil
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Ranking returns how War compares ranks
func (c *Config) Ranking() deck.Ranking {
	if c.War.AceLow {
		return deck.AceTiesKing
	}
	return deck.AceHigh
}

// Players creates the configured Go Fish players
func (c *Config) Players() ([]*gofish.Player, error) {
	players := make([]*gofish.Player, 0, len(c.GoFish.Players))
	for _, pc := range c.GoFish.Players {
		kind, err := gofish.ParseKind(pc.Kind)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", pc.Name, err)
		}
		players = append(players, gofish.NewPlayer(pc.Name, kind))
	}
	return players, nil
}
