package match

import (
	"slices"
	"time"

	"github.com/lox/rikiki/internal/game"
)

// Entry is one seat's input in the open round.
type Entry struct {
	Value int
	Set   bool
}

// RoundRecord is a scored round.
type RoundRecord struct {
	Number  int
	Context game.Context
	Bets    []int
	Points  []int
	Scores  []int
	Timing  Timing
}

// Snapshot is a copy of a match's state, safe to hold after the match moves
// on.
type Snapshot struct {
	ID        string
	Players   []game.Player
	Phase     game.Phase
	Over      bool
	Round     int
	Rounds    int
	Context   game.Context
	Bets      []Entry
	Points    []Entry
	History   []RoundRecord
	Totals    []int
	StartedAt time.Time
}

// Snapshot captures the current state. History includes a round that has
// been scored but not yet advanced past.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := m.game()
	rounds := g.Rounds()
	if m.finished != nil {
		rounds = append(rounds, m.finished.Round())
	}

	s := Snapshot{
		ID:        m.id,
		Players:   g.Players(),
		Phase:     m.phase(),
		Over:      m.over != nil,
		Round:     min(g.RoundNumber(), g.AmountOfRounds()),
		Rounds:    g.AmountOfRounds(),
		Context:   m.context(),
		History:   make([]RoundRecord, len(rounds)),
		Totals:    make([]int, len(g.Players())),
		StartedAt: m.startedAt,
	}

	for i, r := range rounds {
		rec := RoundRecord{
			Number:  i + 1,
			Context: r.Context(),
			Bets:    r.Bets(),
			Points:  r.Points(),
			Scores:  r.Scores(),
		}
		if i < len(m.timings) {
			rec.Timing = m.timings[i]
		}
		for seat, score := range rec.Scores {
			s.Totals[seat] += score
		}
		s.History[i] = rec
	}

	n := len(s.Players)
	switch {
	case m.betting != nil:
		s.Bets = entries(n, m.betting.Bet)
		s.Points = make([]Entry, n)
	case m.scoring != nil:
		s.Bets = lockedEntries(m.scoring.Bets())
		s.Points = entries(n, m.scoring.Points)
	case m.finished != nil:
		s.Bets = lockedEntries(m.finished.Round().Bets())
		s.Points = lockedEntries(m.finished.Round().Points())
	}
	return s
}

// Scores returns the score history in the same shape as game.Game.Scores.
func (s Snapshot) Scores() [][]int {
	out := make([][]int, len(s.History))
	for i, r := range s.History {
		out[i] = slices.Clone(r.Scores)
	}
	return out
}

// Pending lists seats without an entry in the open round's current phase.
func (s Snapshot) Pending() []int {
	var list []Entry
	switch s.Phase {
	case game.PhaseBetting:
		list = s.Bets
	case game.PhaseScoring:
		list = s.Points
	}
	var out []int
	for i, e := range list {
		if !e.Set {
			out = append(out, i)
		}
	}
	return out
}

func entries(n int, get func(int) (int, bool)) []Entry {
	out := make([]Entry, n)
	for i := range out {
		v, ok := get(i)
		out[i] = Entry{Value: v, Set: ok}
	}
	return out
}

func lockedEntries(values []int) []Entry {
	out := make([]Entry, len(values))
	for i, v := range values {
		out[i] = Entry{Value: v, Set: true}
	}
	return out
}
