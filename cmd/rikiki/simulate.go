package main

import (
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/rikiki/cmd/rikiki/shared"
	"github.com/lox/rikiki/internal/config"
	"github.com/lox/rikiki/internal/randutil"
	"github.com/lox/rikiki/internal/scoresheet"
	"github.com/lox/rikiki/internal/simulator"
)

// SimulateCmd plays bot games to compare betting strategies. Flags override
// the simulation block of the config file.
type SimulateCmd struct {
	Games     *int     `kong:"short='g',help='Number of games to simulate'"`
	Players   *int     `kong:"short='p',help='Players per game'"`
	Strategy  []string `kong:"short='s',help='Strategies assigned to seats in turn (random, cautious, greedy)'"`
	Workers   *int     `kong:"short='w',help='Parallel workers'"`
	Seed      *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	StrictSum bool     `kong:"help='Require tricks to add up to the cards dealt'"`
	Config    string   `kong:"short='c',default='rikiki.hcl',type='path',help='Configuration file'"`
	Debug     bool     `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid simulation settings: %w", err)
	}
	if !c.Debug {
		logger.SetLevel(cfg.Level())
	}

	clock := quartz.NewReal()
	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		_, seed = randutil.NewFromClock(clock)
		logger.Info("Using random seed", "seed", seed)
	}

	sim, err := simulator.New(simulator.Config{
		Games:      cfg.Simulation.Games,
		Players:    cfg.Simulation.Players,
		Strategies: cfg.Simulation.Strategies,
		Workers:    cfg.Simulation.Workers,
		Seed:       seed,
		Rules:      cfg.GameRules(),
		Logger:     logger,
		Clock:      clock,
	})
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d games, %d players, seed %d",
		result.Games, cfg.Simulation.Players, result.Seed)))
	fmt.Println(scoresheet.New(os.Stdout).Strategies(result.ByStrategy))
	fmt.Printf("Completed in %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

// apply copies the flags that were set over the config file values.
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Games != nil {
		cfg.Simulation.Games = *c.Games
	}
	if c.Players != nil {
		cfg.Simulation.Players = *c.Players
	}
	if len(c.Strategy) > 0 {
		cfg.Simulation.Strategies = c.Strategy
	}
	if c.Workers != nil {
		cfg.Simulation.Workers = *c.Workers
	}
	if c.StrictSum {
		cfg.Rules.StrictPointSum = true
	}
}
