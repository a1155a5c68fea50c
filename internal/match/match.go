// Package match runs one Rikiki game on behalf of a driver such as the TUI
// or the simulator.
//
// The game package encodes each phase as its own type; a driver that holds a
// single long-lived handle needs the opposite. Match keeps whichever phase
// value is current, checks every call against it, and serializes callers
// with a mutex so one match has a single writer at a time. It also stamps the
// match and its rounds with times from an injected clock.
package match

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/gameid"
)

var (
	// ErrWrongPhase is returned when an input does not belong to the current
	// phase, e.g. points while bets are still open.
	ErrWrongPhase = errors.New("not allowed in the current phase")

	// ErrGameOver is returned for any input after the last round.
	ErrGameOver = errors.New("game is over")
)

// Match is a game in progress. It is safe for concurrent use.
type Match struct {
	mu     sync.Mutex
	id     string
	clock  quartz.Clock
	logger *log.Logger

	startedAt    time.Time
	roundStarted time.Time
	timings      []Timing

	// exactly one of these is non-nil
	betting  *game.GameBetting
	scoring  *game.GameScoring
	finished *game.GameRoundFinished
	over     *game.Game
}

// Timing records when a round was scored and how long it took.
type Timing struct {
	FinishedAt time.Time
	Duration   time.Duration
}

// Option configures a Match.
type Option func(*config)

type config struct {
	id       string
	clock    quartz.Clock
	logger   *log.Logger
	gameOpts []game.GameOption
}

// WithID uses a fixed ID instead of generating one.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithClock sets the clock used for timestamps. Defaults to the real clock.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the logger for the match and its game.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRules sets the game rules.
func WithRules(rules game.Rules) Option {
	return func(c *config) { c.gameOpts = append(c.gameOpts, game.WithRules(rules)) }
}

// New starts a match for players, in seat order, with its first round open
// for bets.
func New(players []game.Player, opts ...Option) (*Match, error) {
	cfg := &config{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.id == "" {
		cfg.id = gameid.NewGenerator(cfg.clock, nil).Generate()
	}

	logger := cfg.logger.With("match", cfg.id)
	betting, err := game.New(players, append(cfg.gameOpts, game.WithLogger(logger))...)
	if err != nil {
		return nil, fmt.Errorf("starting match: %w", err)
	}

	now := cfg.clock.Now()
	m := &Match{
		id:           cfg.id,
		clock:        cfg.clock,
		logger:       logger.WithPrefix("match"),
		startedAt:    now,
		roundStarted: now,
		betting:      betting,
	}
	m.logger.Info("Match started", "players", len(players), "rounds", betting.Game().AmountOfRounds())
	return m, nil
}

func (m *Match) ID() string { return m.id }

// Phase returns the phase of the current round. A finished game reports
// PhaseFinished; use Over to tell the two apart.
func (m *Match) Phase() game.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase()
}

func (m *Match) phase() game.Phase {
	switch {
	case m.betting != nil:
		return game.PhaseBetting
	case m.scoring != nil:
		return game.PhaseScoring
	default:
		return game.PhaseFinished
	}
}

// Over reports whether every round has been played.
func (m *Match) Over() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.over != nil
}

// Result returns the completed game once the match is over.
func (m *Match) Result() (*game.Game, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.over, m.over != nil
}

func (m *Match) game() *game.Game {
	switch {
	case m.betting != nil:
		return m.betting.Game()
	case m.scoring != nil:
		return m.scoring.Game()
	case m.finished != nil:
		return m.finished.Game()
	default:
		return m.over
	}
}

func (m *Match) context() game.Context {
	switch {
	case m.betting != nil:
		return m.betting.Context()
	case m.scoring != nil:
		return m.scoring.Context()
	case m.finished != nil:
		return m.finished.Context()
	default:
		rounds := m.over.Rounds()
		return rounds[len(rounds)-1].Context()
	}
}

// Context returns the context of the current (or, after the game, the last)
// round.
func (m *Match) Context() game.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.context()
}

func (m *Match) check(want game.Phase) error {
	if m.over != nil {
		return ErrGameOver
	}
	if got := m.phase(); got != want {
		return fmt.Errorf("%w: %s, want %s", ErrWrongPhase, got, want)
	}
	return nil
}

// SetBet records a bet in the current round.
func (m *Match) SetBet(player, bet int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(game.PhaseBetting); err != nil {
		return err
	}
	return m.betting.SetBet(player, bet)
}

// LockBets closes betting. game.ErrIncomplete leaves betting open.
func (m *Match) LockBets() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(game.PhaseBetting); err != nil {
		return err
	}
	scoring, err := m.betting.LockBets()
	if err != nil {
		return err
	}
	m.betting, m.scoring = nil, scoring
	return nil
}

// SetPoints records the points of a seat in the current round.
func (m *Match) SetPoints(player, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(game.PhaseScoring); err != nil {
		return err
	}
	return m.scoring.SetPoints(player, points)
}

// LockPoints scores the current round.
func (m *Match) LockPoints() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(game.PhaseScoring); err != nil {
		return err
	}
	finished, err := m.scoring.LockPoints()
	if err != nil {
		return err
	}
	m.scoring, m.finished = nil, finished

	now := m.clock.Now()
	m.timings = append(m.timings, Timing{FinishedAt: now, Duration: now.Sub(m.roundStarted)})
	m.logger.Info("Round scored",
		"round", finished.Game().RoundNumber(),
		"cards", finished.Context().AmountOfCards,
		"scores", finished.Round().Scores())
	return nil
}

// Advance records the scored round and opens the next one. It reports
// whether that was the last round.
func (m *Match) Advance() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(game.PhaseFinished); err != nil {
		return false, err
	}
	next, err := m.finished.NextRound()
	if err != nil {
		return false, err
	}
	m.finished = nil
	if next.GameOver() {
		m.over = next.Over
		m.logger.Info("Match over", "totals", m.over.Totals(), "elapsed", m.clock.Since(m.startedAt))
		return true, nil
	}
	m.betting = next.Round
	m.roundStarted = m.clock.Now()
	return false, nil
}
