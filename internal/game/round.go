package game

import (
	"fmt"
	"slices"
)

// Phase is the stage a round has reached.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseBetting
	PhaseScoring
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseBetting:
		return "betting"
	case PhaseScoring:
		return "scoring"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// slots collects one value per seat, filled in any order.
type slots struct {
	values []int
	filled []bool
}

func newSlots(n int) slots {
	return slots{values: make([]int, n), filled: make([]bool, n)}
}

func (s *slots) set(ctx Context, player, value int) error {
	if player < 0 || player >= len(s.values) {
		return fmt.Errorf("%w: %d of %d", ErrPlayerIndex, player, len(s.values))
	}
	if value < 0 || value > ctx.AmountOfCards {
		return fmt.Errorf("%w: %d with %d cards dealt", ErrOutOfRange, value, ctx.AmountOfCards)
	}
	s.values[player] = value
	s.filled[player] = true
	return nil
}

func (s *slots) get(player int) (int, bool) {
	if player < 0 || player >= len(s.values) || !s.filled[player] {
		return 0, false
	}
	return s.values[player], true
}

func (s *slots) missing() []int {
	var out []int
	for i, ok := range s.filled {
		if !ok {
			out = append(out, i)
		}
	}
	return out
}

// lock returns the complete value list, or ErrIncomplete naming the first
// empty seats.
func (s *slots) lock() ([]int, error) {
	if missing := s.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing seats %v", ErrIncomplete, missing)
	}
	return slices.Clone(s.values), nil
}

// BettingRound is a round collecting bets.
type BettingRound struct {
	ctx      Context
	rules    Rules
	bets     slots
	consumed bool
}

// NewRound creates a round for ctx. A new round has nothing to do before
// betting, so it starts directly in the betting phase.
func NewRound(ctx Context, rules Rules) *BettingRound {
	return &BettingRound{
		ctx:   ctx,
		rules: rules,
		bets:  newSlots(ctx.AmountOfPlayers),
	}
}

func (r *BettingRound) Context() Context { return r.ctx }
func (r *BettingRound) Phase() Phase     { return PhaseBetting }

// SetBet records the bet of the player at the given seat, replacing any
// earlier bet.
func (r *BettingRound) SetBet(player, bet int) error {
	if r.consumed {
		return ErrConsumed
	}
	return r.bets.set(r.ctx, player, bet)
}

// Bet returns the bet of a seat and whether it has been placed.
func (r *BettingRound) Bet(player int) (int, bool) {
	return r.bets.get(player)
}

// Missing lists the seats that have not bet yet.
func (r *BettingRound) Missing() []int {
	return r.bets.missing()
}

// LockBets closes betting. It fails with ErrIncomplete while a seat has no
// bet, leaving the round open for more input.
func (r *BettingRound) LockBets() (*ScoringRound, error) {
	if r.consumed {
		return nil, ErrConsumed
	}
	bets, err := r.bets.lock()
	if err != nil {
		return nil, err
	}
	r.consumed = true
	return &ScoringRound{
		ctx:    r.ctx,
		rules:  r.rules,
		bets:   bets,
		points: newSlots(r.ctx.AmountOfPlayers),
	}, nil
}

// ScoringRound is a round with locked bets, collecting points.
type ScoringRound struct {
	ctx      Context
	rules    Rules
	bets     []int
	points   slots
	consumed bool
}

func (r *ScoringRound) Context() Context { return r.ctx }
func (r *ScoringRound) Phase() Phase     { return PhaseScoring }

// Bets returns the locked bets in seat order.
func (r *ScoringRound) Bets() []int {
	return slices.Clone(r.bets)
}

// SetPoints records the tricks won by the player at the given seat.
func (r *ScoringRound) SetPoints(player, points int) error {
	if r.consumed {
		return ErrConsumed
	}
	return r.points.set(r.ctx, player, points)
}

// Points returns the points of a seat and whether they have been entered.
func (r *ScoringRound) Points(player int) (int, bool) {
	return r.points.get(player)
}

// Missing lists the seats without points.
func (r *ScoringRound) Missing() []int {
	return r.points.missing()
}

// LockPoints closes the round and computes every player's score.
func (r *ScoringRound) LockPoints() (*FinishedRound, error) {
	if r.consumed {
		return nil, ErrConsumed
	}
	points, err := r.points.lock()
	if err != nil {
		return nil, err
	}
	if r.rules.StrictPointSum {
		sum := 0
		for _, p := range points {
			sum += p
		}
		if sum != r.ctx.AmountOfCards {
			return nil, fmt.Errorf("%w: got %d, dealt %d", ErrPointSum, sum, r.ctx.AmountOfCards)
		}
	}

	scores := make([]int, len(r.bets))
	for i := range r.bets {
		scores[i] = ComputeScore(r.bets[i], points[i])
	}

	r.consumed = true
	return &FinishedRound{
		ctx:    r.ctx,
		bets:   r.bets,
		points: points,
		scores: scores,
	}, nil
}

// FinishedRound is a completed round. It is read-only.
type FinishedRound struct {
	ctx    Context
	bets   []int
	points []int
	scores []int
}

func (r *FinishedRound) Context() Context { return r.ctx }
func (r *FinishedRound) Phase() Phase     { return PhaseFinished }

func (r *FinishedRound) Bets() []int   { return slices.Clone(r.bets) }
func (r *FinishedRound) Points() []int { return slices.Clone(r.points) }

// Scores returns the per-player scores in seat order.
func (r *FinishedRound) Scores() []int {
	return slices.Clone(r.scores)
}
