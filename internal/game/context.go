package game

import "fmt"

// Context is the fixed setting of a single round. It is created once per
// round and never changes afterwards.
type Context struct {
	DealerIndex     int
	AmountOfCards   int
	AmountOfPlayers int
	// IncrementingPhase is latched once the card count has reached one and
	// starts climbing back up.
	IncrementingPhase bool
}

// NewContext returns the context of an opening round.
func NewContext(dealerIndex, amountOfCards, amountOfPlayers int) Context {
	return Context{
		DealerIndex:     dealerIndex,
		AmountOfCards:   amountOfCards,
		AmountOfPlayers: amountOfPlayers,
	}
}

// Next derives the context of the round that follows c.
func (c Context) Next() Context {
	incrementing := c.IncrementingPhase || c.AmountOfCards == 1

	var cards int
	switch {
	case c.IncrementingPhase:
		cards = c.AmountOfCards + 1
	case incrementing:
		// first round of the climb repeats the single card
		cards = 1
	default:
		cards = c.AmountOfCards - 1
	}

	return Context{
		DealerIndex:       c.nextDealer(),
		AmountOfCards:     cards,
		AmountOfPlayers:   c.AmountOfPlayers,
		IncrementingPhase: incrementing,
	}
}

func (c Context) nextDealer() int {
	return (c.DealerIndex + 1) % c.AmountOfPlayers
}

func (c Context) String() string {
	return fmt.Sprintf("dealer=%d cards=%d players=%d incrementing=%t",
		c.DealerIndex, c.AmountOfCards, c.AmountOfPlayers, c.IncrementingPhase)
}
