package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rikiki/internal/game"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, game.DefaultRules(), c.GameRules())
	assert.Equal(t, log.InfoLevel, c.Level())
	assert.Equal(t, 1000, c.Simulation.Games)
	assert.Equal(t, []string{"random"}, c.Simulation.Strategies)
	assert.Empty(t, c.Tables)
}

func TestParse(t *testing.T) {
	src := `
log_level = "debug"

rules {
  max_cards        = 7
  strict_point_sum = true
}

table "friday" {
  players = ["Alice", "Bob", "Charlie", "Diana"]
}

table "duo" {
  players = ["Eve", "Frank"]
}

simulation {
  games    = 50
  players  = 5
  strategy = ["cautious", "greedy"]
}
`
	c, err := Parse("rikiki.hcl", []byte(src))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, log.DebugLevel, c.Level())
	assert.Equal(t, game.Rules{MaxCards: 7, DeckSize: 52, StrictPointSum: true}, c.GameRules())

	require.Len(t, c.Tables, 2)
	friday := c.TableByName("friday")
	require.NotNil(t, friday)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie", "Diana"}, friday.Players)
	assert.Nil(t, c.TableByName("missing"))

	assert.Equal(t, 50, c.Simulation.Games)
	assert.Equal(t, 5, c.Simulation.Players)
	assert.Equal(t, 4, c.Simulation.Workers)
	assert.Equal(t, []string{"cautious", "greedy"}, c.Simulation.Strategies)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("bad.hcl", []byte(`rules {`))
	assert.Error(t, err)

	_, err = Parse("bad.hcl", []byte(`unknown = 1`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"log level", `log_level = "loud"`, "log_level"},
		{"negative cards", `rules { max_cards = -1 }`, "max_cards"},
		{"duplicate table", `
table "a" { players = ["x"] }
table "a" { players = ["y"] }`, "more than once"},
		{"duplicate player", `table "a" { players = ["x", "x"] }`, "duplicate"},
		{"empty table", `table "a" { players = [] }`, "at least one player"},
		{"too many players", `simulation { players = 60 }`, "cannot deal"},
		{"unknown strategy", `simulation { strategy = ["psychic"] }`, "psychic"},
		{"workers", `simulation { workers = -2 }`, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse("test.hcl", []byte(tt.src))
			require.NoError(t, err)
			err = c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "rikiki.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "warn"`), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, c.Level())
}
