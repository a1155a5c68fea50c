// Package game implements the round-by-round state machine of Rikiki, a
// trick-taking game in the Oh Hell family.
//
// Each round moves through a fixed sequence of phases. Bets are collected
// first, then the tricks ("points") each player actually won, and finally
// the per-player scores are derived from the (bet, points) pairs. Every phase
// has its own Go type, so an operation that belongs to one phase cannot be
// called on another:
//
//	BettingRound  --LockBets-->   ScoringRound
//	ScoringRound  --LockPoints--> FinishedRound
//
// # Basic Usage
//
// A Game wraps the same sequence and owns the card-count schedule:
//
//	betting, err := game.New(game.NewPlayers("Alice", "Bob", "Charlie", "Diana"))
//	// collect one bet per player
//	for i, bet := range []int{0, 1, 2, 3} {
//	    _ = betting.SetBet(i, bet)
//	}
//	scoring, err := betting.LockBets() // ErrIncomplete until every bet is in
//	...
//	finished, err := scoring.LockPoints()
//	next, over := finished.NextRound()
//	if over != nil {
//	    fmt.Println(over.Scores())
//	}
//
// # Card Schedule
//
// The first round deals min(MaxCards, DeckSize/players) cards. The count
// drops by one each round down to a single card, repeats the single-card
// round once, then climbs back up so that the last of the 2×initial rounds
// deals the initial count again. The dealer moves one seat to the left every
// round.
//
// # Consumed Values
//
// Transitions consume their receiver: once LockBets, LockPoints or NextRound
// has succeeded, the old value refuses further use with ErrConsumed. A failed
// lock (ErrIncomplete, ErrPointSum) leaves the receiver usable so the caller
// can fill in what is missing and retry.
package game
