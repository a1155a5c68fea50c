// Package config loads table and simulation settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/rikiki/internal/bot"
	"github.com/lox/rikiki/internal/game"
)

// Config represents the complete configuration file
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	Rules      *RulesConfig      `hcl:"rules,block"`
	Tables     []TableConfig     `hcl:"table,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// RulesConfig mirrors game.Rules
type RulesConfig struct {
	MaxCards       int  `hcl:"max_cards,optional"`
	DeckSize       int  `hcl:"deck_size,optional"`
	StrictPointSum bool `hcl:"strict_point_sum,optional"`
}

// TableConfig names a group of players that play together
type TableConfig struct {
	Name    string   `hcl:"name,label"`
	Players []string `hcl:"players"`
}

// SimulationConfig sets defaults for the simulate command
type SimulationConfig struct {
	Games      int      `hcl:"games,optional"`
	Players    int      `hcl:"players,optional"`
	Strategies []string `hcl:"strategy,optional"`
	Workers    int      `hcl:"workers,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(filename, src)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	defaults := game.DefaultRules()
	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.Rules.MaxCards == 0 {
		c.Rules.MaxCards = defaults.MaxCards
	}
	if c.Rules.DeckSize == 0 {
		c.Rules.DeckSize = defaults.DeckSize
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 1000
	}
	if c.Simulation.Players == 0 {
		c.Simulation.Players = 4
	}
	if len(c.Simulation.Strategies) == 0 {
		c.Simulation.Strategies = []string{"random"}
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 4
	}
}

// Validate checks the configuration for values the game cannot run with
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.Rules.MaxCards < 1 {
		return fmt.Errorf("rules: max_cards must be positive, got %d", c.Rules.MaxCards)
	}
	if c.Rules.DeckSize < 1 {
		return fmt.Errorf("rules: deck_size must be positive, got %d", c.Rules.DeckSize)
	}

	seen := make(map[string]bool)
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: defined more than once", table.Name)
		}
		seen[table.Name] = true

		players := game.NewPlayers(table.Players...)
		if _, err := game.NewGame(players, game.WithRules(c.GameRules())); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}

	sim := c.Simulation
	if sim.Games < 1 {
		return fmt.Errorf("simulation: games must be positive, got %d", sim.Games)
	}
	if sim.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", sim.Workers)
	}
	if c.GameRules().InitialCards(sim.Players) < 1 {
		return fmt.Errorf("simulation: cannot deal to %d players", sim.Players)
	}
	for _, name := range sim.Strategies {
		if _, err := bot.Lookup(name); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
	}

	return nil
}

// GameRules converts the rules block
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		MaxCards:       c.Rules.MaxCards,
		DeckSize:       c.Rules.DeckSize,
		StrictPointSum: c.Rules.StrictPointSum,
	}
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
