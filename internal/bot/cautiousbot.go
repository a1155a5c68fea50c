package bot

import rand "math/rand/v2"

// CautiousBot always bets zero tricks
type CautiousBot struct{}

func (CautiousBot) Name() string { return "cautious" }

func (CautiousBot) Bet(View, *rand.Rand) int {
	return 0
}
