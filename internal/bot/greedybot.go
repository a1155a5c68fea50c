package bot

import rand "math/rand/v2"

// GreedyBot bets its fair share of the tricks, rounded up
type GreedyBot struct{}

func (GreedyBot) Name() string { return "greedy" }

func (GreedyBot) Bet(view View, _ *rand.Rand) int {
	ctx := view.Context
	return (ctx.AmountOfCards + ctx.AmountOfPlayers - 1) / ctx.AmountOfPlayers
}
