// Package simulator plays many bot-driven games to compare betting
// strategies.
package simulator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/rikiki/internal/bot"
	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/match"
	"github.com/lox/rikiki/internal/randutil"
	"github.com/lox/rikiki/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games      int
	Players    int
	Strategies []string // assigned to seats in turn
	Workers    int
	Seed       int64
	Rules      game.Rules
	Logger     *log.Logger
	Clock      quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	Games      int
	Seed       int64
	ByStrategy map[string]*statistics.Statistics
	Elapsed    time.Duration
}

// Simulator runs Rikiki game simulations
type Simulator struct {
	config     Config
	strategies []bot.Strategy
}

// New creates a simulator, resolving strategy names up front
func New(config Config) (*Simulator, error) {
	if config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if config.Rules.InitialCards(config.Players) < 1 {
		return nil, fmt.Errorf("cannot deal to %d players", config.Players)
	}
	if len(config.Strategies) == 0 {
		return nil, fmt.Errorf("at least one strategy is required")
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	strategies := make([]bot.Strategy, len(config.Strategies))
	for i, name := range config.Strategies {
		s, err := bot.Lookup(name)
		if err != nil {
			return nil, err
		}
		strategies[i] = s
	}

	return &Simulator{config: config, strategies: strategies}, nil
}

// Run plays every game across the configured workers. Game i is seeded with
// Seed+i, so results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	logger := s.config.Logger.WithPrefix("sim")
	start := s.config.Clock.Now()

	var mu sync.Mutex
	merged := make(map[string]*statistics.Statistics)

	g, ctx := errgroup.WithContext(ctx)
	for w := range s.config.Workers {
		g.Go(func() error {
			local := make(map[string]*statistics.Statistics)
			for i := w; i < s.config.Games; i += s.config.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results, err := s.playGame(i)
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				for _, r := range results {
					st, ok := local[r.Strategy]
					if !ok {
						st = &statistics.Statistics{}
						local[r.Strategy] = st
					}
					st.Add(r)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for name, st := range local {
				if _, ok := merged[name]; !ok {
					merged[name] = &statistics.Statistics{}
				}
				merged[name].Merge(st)
			}
			logger.Debug("Worker finished", "worker", w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for name, st := range merged {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", name, err)
		}
	}

	elapsed := s.config.Clock.Since(start)
	logger.Info("Simulation complete", "games", s.config.Games, "workers", s.config.Workers, "elapsed", elapsed)
	return &Result{
		Games:      s.config.Games,
		Seed:       s.config.Seed,
		ByStrategy: merged,
		Elapsed:    elapsed,
	}, nil
}

// seatStrategies rotates the strategy list by the game index so every
// strategy gets every seat.
func (s *Simulator) seatStrategies(gameIndex int) []bot.Strategy {
	seats := make([]bot.Strategy, s.config.Players)
	for seat := range seats {
		seats[seat] = s.strategies[(seat+gameIndex)%len(s.strategies)]
	}
	return seats
}

// playGame plays one full game and returns a result per seat
func (s *Simulator) playGame(index int) ([]statistics.GameResult, error) {
	seed := s.config.Seed + int64(index)
	rng := randutil.New(seed)
	seats := s.seatStrategies(index)

	players := make([]game.Player, s.config.Players)
	for i := range players {
		players[i] = game.Player(fmt.Sprintf("%s-%d", seats[i].Name(), i))
	}

	m, err := match.New(players,
		match.WithID(fmt.Sprintf("sim-%d", seed)),
		match.WithClock(s.config.Clock),
		match.WithRules(s.config.Rules))
	if err != nil {
		return nil, err
	}

	hits := make([]int, len(players))
	for over := false; !over; {
		rctx := m.Context()
		bets := bot.CollectBets(rctx, seats, rng)
		points := bot.DealTricks(rctx, rng)

		for seat, bet := range bets {
			if err := m.SetBet(seat, bet); err != nil {
				return nil, err
			}
		}
		if err := m.LockBets(); err != nil {
			return nil, err
		}
		for seat, p := range points {
			if err := m.SetPoints(seat, p); err != nil {
				return nil, err
			}
			if p == bets[seat] {
				hits[seat]++
			}
		}
		if err := m.LockPoints(); err != nil {
			return nil, err
		}
		if over, err = m.Advance(); err != nil {
			return nil, err
		}
	}

	final, _ := m.Result()
	standings := final.Standings()
	totals := final.Totals()

	results := make([]statistics.GameResult, len(players))
	for seat := range players {
		results[seat] = statistics.GameResult{
			Seed:     seed,
			Seat:     seat,
			Strategy: seats[seat].Name(),
			Total:    totals[seat],
			Hits:     hits[seat],
			Rounds:   final.AmountOfRounds(),
		}
	}
	for _, st := range standings {
		if st.Rank == 1 {
			results[st.Seat].Won = true
		}
	}
	return results, nil
}
