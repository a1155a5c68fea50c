package game

// Rules holds the table settings that shape a game.
type Rules struct {
	// MaxCards caps the cards dealt in the first round.
	MaxCards int
	// DeckSize is the number of cards in the deck.
	DeckSize int
	// StrictPointSum rejects a round whose points do not add up to the
	// cards dealt. Off by default: scores are defined for any points.
	StrictPointSum bool
}

// DefaultRules returns a standard 52-card game starting at ten cards.
func DefaultRules() Rules {
	return Rules{
		MaxCards: 10,
		DeckSize: 52,
	}
}

// InitialCards returns the cards dealt in the first round for the given
// number of players.
func (r Rules) InitialCards(players int) int {
	if players <= 0 {
		return 0
	}
	return min(r.MaxCards, r.DeckSize/players)
}

// AmountOfRounds returns how many rounds a game with the given number of
// players lasts.
func (r Rules) AmountOfRounds(players int) int {
	return 2 * r.InitialCards(players)
}

// Schedule returns the context of every round of a game, in play order.
func Schedule(players int, rules Rules) []Context {
	cards := rules.InitialCards(players)
	if cards < 1 {
		return nil
	}

	rounds := make([]Context, 0, rules.AmountOfRounds(players))
	ctx := NewContext(0, cards, players)
	for range rules.AmountOfRounds(players) {
		rounds = append(rounds, ctx)
		ctx = ctx.Next()
	}
	return rounds
}
