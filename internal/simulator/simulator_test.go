package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rikiki/internal/game"
)

func testConfig(t *testing.T) Config {
	return Config{
		Games:      20,
		Players:    4,
		Strategies: []string{"random", "cautious"},
		Workers:    3,
		Seed:       12345,
		Rules:      game.DefaultRules(),
		Logger:     log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
		Clock:      quartz.NewMock(t),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(testConfig(t))
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Strategies = []string{"psychic"}
	_, err = New(cfg)
	assert.ErrorContains(t, err, "unknown strategy")

	cfg = testConfig(t)
	cfg.Players = 53
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.Games = 0
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()
	sim, err := New(testConfig(t))
	require.NoError(t, err)

	result, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, result.Games)
	require.Len(t, result.ByStrategy, 2)

	games := 0
	for _, st := range result.ByStrategy {
		require.NoError(t, st.Validate())
		games += st.Games
		assert.Equal(t, st.Games*20, st.Rounds, "four players play 20 rounds")
	}
	assert.Equal(t, 20*4, games, "one result per seat per game")

	// a zero bet hits whenever the seat takes no tricks
	assert.Greater(t, result.ByStrategy["cautious"].HitRate(), 0.0)
}

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Workers = 1
	one, err := New(cfg)
	require.NoError(t, err)

	cfg = testConfig(t)
	cfg.Workers = 5
	five, err := New(cfg)
	require.NoError(t, err)

	a, err := one.Run(context.Background())
	require.NoError(t, err)
	b, err := five.Run(context.Background())
	require.NoError(t, err)

	for name, st := range a.ByStrategy {
		other := b.ByStrategy[name]
		require.NotNil(t, other)
		assert.Equal(t, st.Sum, other.Sum, name)
		assert.Equal(t, st.Hits, other.Hits, name)
		assert.Equal(t, st.Wins, other.Wins, name)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	sim, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeatRotation(t *testing.T) {
	t.Parallel()
	sim, err := New(testConfig(t))
	require.NoError(t, err)

	names := func(i int) []string {
		var out []string
		for _, s := range sim.seatStrategies(i) {
			out = append(out, s.Name())
		}
		return out
	}
	assert.Equal(t, []string{"random", "cautious", "random", "cautious"}, names(0))
	assert.Equal(t, []string{"cautious", "random", "cautious", "random"}, names(1))
}
