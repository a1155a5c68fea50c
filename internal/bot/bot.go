// Package bot provides simple betting strategies for simulated players.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sort"

	"github.com/lox/rikiki/internal/game"
)

// View is what a seat knows when it has to bet.
type View struct {
	Seat    int
	Context game.Context
	// Placed holds the bets of seats that bet earlier this round, in
	// betting order.
	Placed []int
}

// Strategy chooses a bet. Results outside [0, cards] are clamped by the
// caller.
type Strategy interface {
	Name() string
	Bet(view View, rng *rand.Rand) int
}

var registry = map[string]Strategy{
	"random":   RandBot{},
	"cautious": CautiousBot{},
	"greedy":   GreedyBot{},
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (known: %v)", name, Names())
	}
	return s, nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clamp keeps a bet inside what the round allows.
func Clamp(bet int, ctx game.Context) int {
	return max(0, min(bet, ctx.AmountOfCards))
}

// BettingOrder returns seats in the order they bet: starting left of the
// dealer and ending with the dealer.
func BettingOrder(ctx game.Context) []int {
	order := make([]int, ctx.AmountOfPlayers)
	for i := range order {
		order[i] = (ctx.DealerIndex + 1 + i) % ctx.AmountOfPlayers
	}
	return order
}

// CollectBets asks each seat's strategy for a bet in betting order and
// returns them in seat order.
func CollectBets(ctx game.Context, strategies []Strategy, rng *rand.Rand) []int {
	bets := make([]int, ctx.AmountOfPlayers)
	var placed []int
	for _, seat := range BettingOrder(ctx) {
		view := View{Seat: seat, Context: ctx, Placed: slices.Clone(placed)}
		bet := Clamp(strategies[seat].Bet(view, rng), ctx)
		bets[seat] = bet
		placed = append(placed, bet)
	}
	return bets
}

// DealTricks hands each of the round's tricks to a random seat, so the
// returned points always add up to the cards dealt.
func DealTricks(ctx game.Context, rng *rand.Rand) []int {
	points := make([]int, ctx.AmountOfPlayers)
	for range ctx.AmountOfCards {
		points[rng.IntN(ctx.AmountOfPlayers)]++
	}
	return points
}
