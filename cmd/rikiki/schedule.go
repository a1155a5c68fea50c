package main

import (
	"fmt"
	"os"

	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/scoresheet"
)

// ScheduleCmd prints how many cards each round deals and who deals it
type ScheduleCmd struct {
	Players  []string `arg:"" optional:"" help:"Player names in seat order"`
	Count    int      `kong:"short='n',default='4',help='Number of players when no names are given'"`
	MaxCards int      `kong:"default='10',help='Most cards dealt in a round'"`
	DeckSize int      `kong:"default='52',help='Cards in the deck'"`
}

func (c *ScheduleCmd) Run() error {
	players := c.Players
	if len(players) == 0 {
		for i := range c.Count {
			players = append(players, fmt.Sprintf("Seat %d", i+1))
		}
	}

	rules := game.Rules{MaxCards: c.MaxCards, DeckSize: c.DeckSize}
	rounds := game.Schedule(len(players), rules)
	if len(rounds) == 0 {
		return fmt.Errorf("%w: %d players, %d cards, max %d per round",
			game.ErrTooManyPlayers, len(players), c.DeckSize, c.MaxCards)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d players, %d rounds", len(players), len(rounds))))
	fmt.Println(scoresheet.New(os.Stdout).Schedule(game.NewPlayers(players...), rounds))
	return nil
}
