package bot

import rand "math/rand/v2"

// RandBot bets a uniformly random number of tricks
type RandBot struct{}

func (RandBot) Name() string { return "random" }

func (RandBot) Bet(view View, rng *rand.Rand) int {
	return rng.IntN(view.Context.AmountOfCards + 1)
}
