package game

import "fmt"

// Player identifies a seat by display name. Rounds index players by
// position, never by name.
type Player string

// NewPlayers builds a player list from names, in seat order.
func NewPlayers(names ...string) []Player {
	players := make([]Player, len(names))
	for i, name := range names {
		players[i] = Player(name)
	}
	return players
}

func (p Player) String() string {
	return string(p)
}

func validatePlayers(players []Player, rules Rules) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}
	if rules.InitialCards(len(players)) < 1 {
		return fmt.Errorf("%w: %d players, %d cards", ErrTooManyPlayers, len(players), rules.DeckSize)
	}

	seen := make(map[Player]int, len(players))
	for i, p := range players {
		if j, ok := seen[p]; ok {
			return fmt.Errorf("%w: %q at seats %d and %d", ErrDuplicatePlayer, p, j, i)
		}
		seen[p] = i
	}
	return nil
}
