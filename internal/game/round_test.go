package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bettingRound(t *testing.T, cards, players int, bets ...int) *BettingRound {
	t.Helper()
	r := NewRound(NewContext(0, cards, players), DefaultRules())
	for i, b := range bets {
		require.NoError(t, r.SetBet(i, b))
	}
	return r
}

func TestLockBetsIncomplete(t *testing.T) {
	t.Parallel()
	r := bettingRound(t, 5, 3, 1, 2)

	assert.Equal(t, []int{2}, r.Missing())

	scoring, err := r.LockBets()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Nil(t, scoring)

	// still open: fill the gap and retry
	require.NoError(t, r.SetBet(2, 0))
	assert.Empty(t, r.Missing())

	scoring, err = r.LockBets()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, scoring.Bets())
	assert.Equal(t, PhaseScoring, scoring.Phase())
	assert.Equal(t, r.Context(), scoring.Context())
}

func TestLockedRoundIsConsumed(t *testing.T) {
	t.Parallel()
	r := bettingRound(t, 2, 2, 1, 1)

	scoring, err := r.LockBets()
	require.NoError(t, err)

	_, err = r.LockBets()
	assert.ErrorIs(t, err, ErrConsumed)
	assert.ErrorIs(t, r.SetBet(0, 0), ErrConsumed)

	require.NoError(t, scoring.SetPoints(0, 1))
	require.NoError(t, scoring.SetPoints(1, 1))
	_, err = scoring.LockPoints()
	require.NoError(t, err)

	_, err = scoring.LockPoints()
	assert.ErrorIs(t, err, ErrConsumed)
	assert.ErrorIs(t, scoring.SetPoints(0, 0), ErrConsumed)
}

func TestSetBetValidation(t *testing.T) {
	t.Parallel()
	r := NewRound(NewContext(0, 3, 2), DefaultRules())

	tests := []struct {
		name    string
		player  int
		bet     int
		wantErr error
	}{
		{"zero", 0, 0, nil},
		{"all cards", 1, 3, nil},
		{"negative", 0, -1, ErrOutOfRange},
		{"more than dealt", 0, 4, ErrOutOfRange},
		{"negative seat", -1, 1, ErrPlayerIndex},
		{"seat past table", 2, 1, ErrPlayerIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.SetBet(tt.player, tt.bet)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSetBetOverwrites(t *testing.T) {
	t.Parallel()
	r := bettingRound(t, 4, 1, 3)
	require.NoError(t, r.SetBet(0, 1))

	bet, ok := r.Bet(0)
	assert.True(t, ok)
	assert.Equal(t, 1, bet)

	_, ok = r.Bet(5)
	assert.False(t, ok)
}

func TestLockPointsScores(t *testing.T) {
	t.Parallel()
	r := bettingRound(t, 10, 4, 0, 1, 2, 3)
	scoring, err := r.LockBets()
	require.NoError(t, err)

	for i, p := range []int{0, 1, 2, 3} {
		require.NoError(t, scoring.SetPoints(i, p))
	}
	finished, err := scoring.LockPoints()
	require.NoError(t, err)

	assert.Equal(t, PhaseFinished, finished.Phase())
	assert.Equal(t, []int{2, 3, 4, 5}, finished.Scores())
	assert.Equal(t, []int{0, 1, 2, 3}, finished.Bets())
	assert.Equal(t, []int{0, 1, 2, 3}, finished.Points())
}

func TestLockPointsIncomplete(t *testing.T) {
	t.Parallel()
	scoring, err := bettingRound(t, 3, 2, 1, 1).LockBets()
	require.NoError(t, err)

	require.NoError(t, scoring.SetPoints(1, 2))
	_, err = scoring.LockPoints()
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, []int{0}, scoring.Missing())

	require.NoError(t, scoring.SetPoints(0, 1))
	finished, err := scoring.LockPoints()
	require.NoError(t, err)
	assert.Len(t, finished.Scores(), 2)
}

func TestStrictPointSum(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()
	rules.StrictPointSum = true

	r := NewRound(NewContext(0, 3, 2), rules)
	require.NoError(t, r.SetBet(0, 1))
	require.NoError(t, r.SetBet(1, 1))
	scoring, err := r.LockBets()
	require.NoError(t, err)

	require.NoError(t, scoring.SetPoints(0, 1))
	require.NoError(t, scoring.SetPoints(1, 1))
	_, err = scoring.LockPoints()
	assert.ErrorIs(t, err, ErrPointSum)

	// a rejected sum leaves the round open
	require.NoError(t, scoring.SetPoints(1, 2))
	finished, err := scoring.LockPoints()
	require.NoError(t, err)
	assert.Equal(t, []int{3, -1}, finished.Scores())
}

func TestFinishedRoundReturnsCopies(t *testing.T) {
	t.Parallel()
	scoring, err := bettingRound(t, 1, 1, 1).LockBets()
	require.NoError(t, err)
	require.NoError(t, scoring.SetPoints(0, 1))
	finished, err := scoring.LockPoints()
	require.NoError(t, err)

	scores := finished.Scores()
	scores[0] = 100
	assert.Equal(t, []int{3}, finished.Scores())
}

func TestPhaseString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "new", PhaseNew.String())
	assert.Equal(t, "betting", PhaseBetting.String())
	assert.Equal(t, "scoring", PhaseScoring.String())
	assert.Equal(t, "finished", PhaseFinished.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
