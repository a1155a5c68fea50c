package game

import "errors"

var (
	// ErrNoPlayers is returned when a game is created without players.
	ErrNoPlayers = errors.New("at least one player is required")

	// ErrTooManyPlayers is returned when the deck cannot deal a single card
	// to every player.
	ErrTooManyPlayers = errors.New("too many players for the deck")

	// ErrDuplicatePlayer is returned when two players share a name.
	ErrDuplicatePlayer = errors.New("duplicate player")

	// ErrIncomplete is returned by a lock while some player has no value yet.
	ErrIncomplete = errors.New("not every player has a value")

	// ErrOutOfRange is returned for a bet or points value outside
	// [0, amount of cards].
	ErrOutOfRange = errors.New("value out of range")

	// ErrPlayerIndex is returned for a seat index outside the table.
	ErrPlayerIndex = errors.New("player index out of range")

	// ErrPointSum is returned under strict rules when the points of a round
	// do not add up to the cards dealt.
	ErrPointSum = errors.New("points do not add up to the cards dealt")

	// ErrConsumed is returned when a phase value is used after it already
	// transitioned.
	ErrConsumed = errors.New("round already advanced")
)
