package game

import (
	"io"
	"slices"
	"sort"

	"github.com/charmbracelet/log"
)

// Game is one match: the players, the round schedule and the history of
// finished rounds. It only grows by appending finished rounds.
type Game struct {
	players        []Player
	rules          Rules
	amountOfCards  int
	amountOfRounds int
	rounds         []*FinishedRound
	logger         *log.Logger
}

// GameOption configures a Game during creation.
type GameOption func(*gameConfig)

type gameConfig struct {
	rules  Rules
	logger *log.Logger
}

// WithRules replaces the default rules.
func WithRules(rules Rules) GameOption {
	return func(c *gameConfig) {
		c.rules = rules
	}
}

// WithLogger sets the logger phase transitions are reported to.
func WithLogger(logger *log.Logger) GameOption {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// NewGame creates an empty game for players, in seat order.
func NewGame(players []Player, opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{rules: DefaultRules()}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := validatePlayers(players, cfg.rules); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	amountOfCards := cfg.rules.InitialCards(len(players))
	amountOfRounds := 2 * amountOfCards

	return &Game{
		players:        slices.Clone(players),
		rules:          cfg.rules,
		amountOfCards:  amountOfCards,
		amountOfRounds: amountOfRounds,
		rounds:         make([]*FinishedRound, 0, amountOfRounds),
		logger:         logger.WithPrefix("game"),
	}, nil
}

// New creates a game and opens its first round for betting.
func New(players []Player, opts ...GameOption) (*GameBetting, error) {
	g, err := NewGame(players, opts...)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(0, g.amountOfCards, len(g.players))
	g.logger.Debug("Game started", "players", len(g.players), "cards", g.amountOfCards, "rounds", g.amountOfRounds)
	return &GameBetting{game: g, round: NewRound(ctx, g.rules)}, nil
}

func (g *Game) Players() []Player   { return slices.Clone(g.players) }
func (g *Game) Rules() Rules        { return g.rules }
func (g *Game) InitialCards() int   { return g.amountOfCards }
func (g *Game) AmountOfRounds() int { return g.amountOfRounds }

// Rounds returns the finished rounds in play order.
func (g *Game) Rounds() []*FinishedRound {
	return slices.Clone(g.rounds)
}

// RoundNumber is the 1-based number of the round in play.
func (g *Game) RoundNumber() int {
	return len(g.rounds) + 1
}

// Over reports whether every scheduled round has been played.
func (g *Game) Over() bool {
	return len(g.rounds) == g.amountOfRounds
}

// Scores returns the scores of every finished round, one slice per round in
// play order, each in seat order.
func (g *Game) Scores() [][]int {
	scores := make([][]int, len(g.rounds))
	for i, r := range g.rounds {
		scores[i] = r.Scores()
	}
	return scores
}

// Totals returns each player's cumulative score.
func (g *Game) Totals() []int {
	return totals(len(g.players), g.rounds)
}

// Standing is a player's place in the ranking.
type Standing struct {
	Seat   int
	Player Player
	Total  int
	// Rank is 1-based; tied totals share a rank.
	Rank int
}

// Standings ranks players by total score. Ties keep seat order.
func (g *Game) Standings() []Standing {
	return standings(g.players, g.Totals())
}

func (g *Game) appendRound(r *FinishedRound) {
	g.rounds = append(g.rounds, r)
}

func totals(players int, rounds []*FinishedRound) []int {
	out := make([]int, players)
	for _, r := range rounds {
		for i, s := range r.scores {
			out[i] += s
		}
	}
	return out
}

func standings(players []Player, totals []int) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{Seat: i, Player: p, Total: totals[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	for i := range out {
		if i > 0 && out[i].Total == out[i-1].Total {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}

// GameBetting is a game whose current round is collecting bets.
type GameBetting struct {
	game     *Game
	round    *BettingRound
	consumed bool
}

func (g *GameBetting) Game() *Game      { return g.game }
func (g *GameBetting) Context() Context { return g.round.Context() }
func (g *GameBetting) Phase() Phase     { return PhaseBetting }
func (g *GameBetting) Scores() [][]int  { return g.game.Scores() }

// SetBet records the bet of a seat in the current round.
func (g *GameBetting) SetBet(player, bet int) error {
	if g.consumed {
		return ErrConsumed
	}
	return g.round.SetBet(player, bet)
}

func (g *GameBetting) Bet(player int) (int, bool) { return g.round.Bet(player) }
func (g *GameBetting) Missing() []int             { return g.round.Missing() }

// LockBets closes betting on the current round.
func (g *GameBetting) LockBets() (*GameScoring, error) {
	if g.consumed {
		return nil, ErrConsumed
	}
	round, err := g.round.LockBets()
	if err != nil {
		return nil, err
	}
	g.consumed = true
	g.game.logger.Debug("Bets locked", "round", g.game.RoundNumber(), "bets", round.bets)
	return &GameScoring{game: g.game, round: round}, nil
}

// GameScoring is a game whose current round is collecting points.
type GameScoring struct {
	game     *Game
	round    *ScoringRound
	consumed bool
}

func (g *GameScoring) Game() *Game      { return g.game }
func (g *GameScoring) Context() Context { return g.round.Context() }
func (g *GameScoring) Phase() Phase     { return PhaseScoring }
func (g *GameScoring) Scores() [][]int  { return g.game.Scores() }
func (g *GameScoring) Bets() []int      { return g.round.Bets() }

// SetPoints records the points of a seat in the current round.
func (g *GameScoring) SetPoints(player, points int) error {
	if g.consumed {
		return ErrConsumed
	}
	return g.round.SetPoints(player, points)
}

func (g *GameScoring) Points(player int) (int, bool) { return g.round.Points(player) }
func (g *GameScoring) Missing() []int                { return g.round.Missing() }

// LockPoints finishes the current round.
func (g *GameScoring) LockPoints() (*GameRoundFinished, error) {
	if g.consumed {
		return nil, ErrConsumed
	}
	round, err := g.round.LockPoints()
	if err != nil {
		return nil, err
	}
	g.consumed = true
	g.game.logger.Debug("Points locked", "round", g.game.RoundNumber(), "points", round.points, "scores", round.scores)
	return &GameRoundFinished{game: g.game, round: round}, nil
}

// GameRoundFinished is a game whose current round has been scored but not
// yet recorded.
type GameRoundFinished struct {
	game     *Game
	round    *FinishedRound
	consumed bool
}

func (g *GameRoundFinished) Game() *Game           { return g.game }
func (g *GameRoundFinished) Context() Context      { return g.round.Context() }
func (g *GameRoundFinished) Phase() Phase          { return PhaseFinished }
func (g *GameRoundFinished) Round() *FinishedRound { return g.round }

// Scores returns the recorded history followed by the just-finished round.
func (g *GameRoundFinished) Scores() [][]int {
	return append(g.game.Scores(), g.round.Scores())
}

// Totals includes the just-finished round.
func (g *GameRoundFinished) Totals() []int {
	return totals(len(g.game.players), append(g.game.Rounds(), g.round))
}

// Next is the outcome of advancing a game. Exactly one field is set.
type Next struct {
	Round *GameBetting
	Over  *Game
}

// GameOver reports whether the last round has been played.
func (n Next) GameOver() bool {
	return n.Over != nil
}

// NextRound records the finished round and either opens the next round or,
// after the last scheduled round, returns the completed game.
func (g *GameRoundFinished) NextRound() (Next, error) {
	if g.consumed {
		return Next{}, ErrConsumed
	}
	g.consumed = true

	g.game.appendRound(g.round)
	if g.game.Over() {
		g.game.logger.Debug("Game over", "rounds", len(g.game.rounds), "totals", g.game.Totals())
		return Next{Over: g.game}, nil
	}

	ctx := g.round.Context().Next()
	g.game.logger.Debug("Round started", "round", g.game.RoundNumber(), "dealer", ctx.DealerIndex, "cards", ctx.AmountOfCards)
	return Next{Round: &GameBetting{game: g.game, round: NewRound(ctx, g.game.rules)}}, nil
}
