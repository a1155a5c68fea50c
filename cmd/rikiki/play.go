package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/lox/rikiki/cmd/rikiki/shared"
	"github.com/lox/rikiki/internal/config"
	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/match"
	"github.com/lox/rikiki/internal/randutil"
	"github.com/lox/rikiki/internal/scoresheet"
	"github.com/lox/rikiki/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

var errNoPlayers = errors.New("no players: pass names or --table")

// PlayCmd runs the interactive scorekeeper
type PlayCmd struct {
	Players []string `arg:"" optional:"" help:"Player names in seat order, starting with the first dealer"`
	Table   string   `kong:"short='t',help='Use the players of a table from the config file'"`
	Shuffle bool     `kong:"help='Randomize the seating order'"`
	Config  string   `kong:"short='c',default='rikiki.hcl',type='path',help='Configuration file'"`
	LogFile string   `kong:"help='Write logs to this file'"`
	Debug   bool     `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}

	logger, closeLog, err := shared.SetupFileLogger(c.LogFile, c.Debug)
	if err != nil {
		return err
	}
	defer closeLog()
	if !c.Debug {
		logger.SetLevel(cfg.Level())
	}

	players, err := resolvePlayers(cfg, c.Players, c.Table)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	if c.Shuffle {
		rng, seed := randutil.NewFromClock(clock)
		rng.Shuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })
		logger.Info("Shuffled seats", "seed", seed, "players", players)
	}

	m, err := match.New(players,
		match.WithRules(cfg.GameRules()),
		match.WithLogger(logger),
		match.WithClock(clock))
	if err != nil {
		return err
	}

	model := tui.NewTUIModel(m, scoresheet.New(os.Stdout), logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	s := m.Snapshot()
	if len(s.History) == 0 {
		return nil
	}

	sheet := scoresheet.New(os.Stdout)
	fmt.Println(titleStyle.Render("Rikiki " + s.ID))
	fmt.Println(sheet.Scores(s))
	if g, ok := m.Result(); ok {
		fmt.Println(sheet.Standings(g.Standings()))
	}
	return nil
}

// resolvePlayers picks the seating from command line names, a named table,
// or the only table in the config, in that order.
func resolvePlayers(cfg *config.Config, names []string, table string) ([]game.Player, error) {
	switch {
	case len(names) > 0:
		return game.NewPlayers(names...), nil
	case table != "":
		t := cfg.TableByName(table)
		if t == nil {
			return nil, fmt.Errorf("unknown table %q", table)
		}
		return game.NewPlayers(t.Players...), nil
	case len(cfg.Tables) == 1:
		return game.NewPlayers(cfg.Tables[0].Players...), nil
	default:
		return nil, errNoPlayers
	}
}
