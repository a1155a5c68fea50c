package tui

import (
	"bytes"
	"io"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/match"
	"github.com/lox/rikiki/internal/scoresheet"
)

func newTestModel(t *testing.T, opts ...match.Option) (*TUIModel, *match.Match) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	m, err := match.New(game.NewPlayers("Alice", "Bob", "Charlie", "Diana"), append([]match.Option{match.WithID("tui")}, opts...)...)
	require.NoError(t, err)

	sheet := scoresheet.NewWithProfile(&bytes.Buffer{}, termenv.Ascii)
	return NewTUIModelWithOptions(m, sheet, logger, true), m
}

// send types line into the input and presses enter.
func send(t *testing.T, model *TUIModel, line string) tea.Cmd {
	t.Helper()
	model.input.SetValue(line)
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Same(t, model, updated)
	return cmd
}

// enterRound types values in prompt order; values are indexed by seat.
func enterRound(t *testing.T, model *TUIModel, bets, points []int) {
	t.Helper()
	for _, values := range [][]int{bets, points} {
		for _, seat := range model.order {
			send(t, model, strconv.Itoa(values[seat]))
			require.Empty(t, model.Message())
		}
	}
}

func TestTUITestMode(t *testing.T) {
	model, _ := newTestModel(t)

	assert.True(t, model.IsTestMode())
	assert.Equal(t, []string{"Round 1/20: 10 cards, Alice deals"}, model.GetCapturedLog())
	assert.Equal(t, "Bet for Bob (0-10)", model.Prompt())
}

func TestProductionModeDoesNotCapture(t *testing.T) {
	m, err := match.New(game.NewPlayers("Alice"), match.WithID("prod"))
	require.NoError(t, err)
	model := NewTUIModel(m, scoresheet.NewWithProfile(&bytes.Buffer{}, termenv.Ascii), log.New(io.Discard))

	assert.False(t, model.IsTestMode())
	assert.Nil(t, model.GetCapturedLog())
}

func TestPromptsFollowBettingOrder(t *testing.T) {
	model, m := newTestModel(t)

	send(t, model, "1")
	assert.Equal(t, "Bet for Charlie (0-10)", model.Prompt())
	send(t, model, "2")
	send(t, model, "3")
	assert.Equal(t, "Bet for Alice (0-10)", model.Prompt())
	send(t, model, "0")

	assert.Equal(t, game.PhaseScoring, m.Phase())
	assert.Equal(t, "Tricks won by Bob (0-10)", model.Prompt())
	assert.Contains(t, model.GetCapturedLog(), "Bets: Bob 1, Charlie 2, Diana 3, Alice 0")
}

func TestInvalidInput(t *testing.T) {
	model, m := newTestModel(t)

	send(t, model, "lots")
	assert.Equal(t, `"lots" is not a number`, model.Message())

	send(t, model, "11")
	assert.Equal(t, "Enter a number from 0 to 10", model.Message())

	send(t, model, "4")
	assert.Empty(t, model.Message())
	assert.Equal(t, "Bet for Charlie (0-10)", model.Prompt())

	send(t, model, "back")
	assert.Equal(t, "Bet for Bob (0-10)", model.Prompt())
	send(t, model, "5")

	bet := m.Snapshot().Bets[1]
	assert.Equal(t, match.Entry{Value: 5, Set: true}, bet)
}

func TestEndToEnd(t *testing.T) {
	model, m := newTestModel(t)

	enterRound(t, model, []int{0, 1, 2, 3}, []int{0, 1, 2, 3})
	enterRound(t, model, []int{0, 0, 2, 0}, []int{0, 5, 2, 3})

	assert.Equal(t, [][]int{{2, 3, 4, 5}, {2, -5, 4, -3}}, m.Snapshot().Scores())
	assert.Equal(t, game.PhaseBetting, m.Phase())

	entries := model.GetCapturedLog()
	assert.Contains(t, entries, "Round 1 scored: Alice +2, Bob +3, Charlie +4, Diana +5")
	assert.Contains(t, entries, "Round 2 scored: Alice +2, Bob -5, Charlie +4, Diana -3")
	assert.Contains(t, entries, "Round 3/20: 8 cards, Charlie deals")
}

func TestStrictPointSumRetry(t *testing.T) {
	rules := game.DefaultRules()
	rules.StrictPointSum = true
	model, m := newTestModel(t, match.WithRules(rules))

	for range 4 {
		send(t, model, "2")
	}
	for range 4 {
		send(t, model, "1")
	}
	assert.Equal(t, "Tricks must add up to 10, enter them again", model.Message())
	assert.Equal(t, game.PhaseScoring, m.Phase())
	assert.Equal(t, "Tricks won by Bob (0-10)", model.Prompt())

	for _, p := range []string{"2", "2", "2", "4"} {
		send(t, model, p)
	}
	assert.Empty(t, model.Message())
	assert.Equal(t, game.PhaseBetting, m.Phase())
	assert.Equal(t, 2, m.Snapshot().Round)
}

func TestPlayToGameOver(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	m, err := match.New(game.NewPlayers("Alice", "Bob"), match.WithID("short"),
		match.WithRules(game.Rules{MaxCards: 2, DeckSize: 52}))
	require.NoError(t, err)
	model := NewTUIModelWithOptions(m, scoresheet.NewWithProfile(&bytes.Buffer{}, termenv.Ascii), logger, true)

	for range 4 {
		ctx := m.Context()
		points := make([]int, 2)
		points[0] = ctx.AmountOfCards
		enterRound(t, model, []int{ctx.AmountOfCards, 0}, points)
	}

	require.True(t, m.Over())
	assert.Equal(t, "Game over. Enter to exit", model.Prompt())
	assert.Contains(t, model.GetCapturedLog(), "Game over")

	send(t, model, "3")
	assert.Contains(t, model.Message(), "over")

	cmd := send(t, model, "")
	require.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

func TestQuit(t *testing.T) {
	model, _ := newTestModel(t)

	cmd := send(t, model, "quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	model, _ := newTestModel(t)
	assert.Equal(t, "Loading...", model.View())

	model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := model.View()
	assert.Contains(t, view, "Round 1/20")
	assert.Contains(t, view, "Bet for Bob")
	assert.Contains(t, view, "Diana")

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, model.View(), "Log focused")
}
