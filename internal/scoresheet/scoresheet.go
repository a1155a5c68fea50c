// Package scoresheet renders score history, standings and card schedules as
// terminal tables.
package scoresheet

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/match"
	"github.com/lox/rikiki/internal/statistics"
)

// Sheet renders tables for one output.
type Sheet struct {
	renderer *lipgloss.Renderer

	header lipgloss.Style
	cell   lipgloss.Style
	hit    lipgloss.Style
	miss   lipgloss.Style
	total  lipgloss.Style
	border lipgloss.Style
}

// New returns a sheet that detects colour support from w.
func New(w io.Writer) *Sheet {
	return NewWithProfile(w, termenv.NewOutput(w).EnvColorProfile())
}

// NewWithProfile forces a colour profile. termenv.Ascii disables styling.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Sheet {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Sheet{
		renderer: r,
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Padding(0, 1),
		cell:     r.NewStyle().Padding(0, 1),
		hit:      r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#96CEB4")),
		miss:     r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FF6B6B")),
		total:    r.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFD700")),
		border:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

// Cell formats one player's round as "bet/points score".
func Cell(bet, points, score int) string {
	return fmt.Sprintf("%d/%d %+d", bet, points, score)
}

// Scores renders one row per scored round and a totals row.
func (s *Sheet) Scores(snap match.Snapshot) string {
	headers := []string{"#", "Cards", "Dealer"}
	for _, p := range snap.Players {
		headers = append(headers, p.String())
	}

	rows := make([][]string, 0, len(snap.History)+1)
	hits := make(map[[2]int]bool)
	for i, rec := range snap.History {
		row := []string{
			strconv.Itoa(rec.Number),
			strconv.Itoa(rec.Context.AmountOfCards),
			snap.Players[rec.Context.DealerIndex].String(),
		}
		for seat := range snap.Players {
			row = append(row, Cell(rec.Bets[seat], rec.Points[seat], rec.Scores[seat]))
			hits[[2]int{i, seat + 3}] = rec.Bets[seat] == rec.Points[seat]
		}
		rows = append(rows, row)
	}

	totalsRow := []string{"", "", "Total"}
	for _, t := range snap.Totals {
		totalsRow = append(totalsRow, strconv.Itoa(t))
	}
	rows = append(rows, totalsRow)
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case row == last:
				return s.total
			case col < 3:
				return s.cell
			case hits[[2]int{row, col}]:
				return s.hit
			default:
				return s.miss
			}
		})
	return t.String()
}

// Standings renders the ranking table.
func (s *Sheet) Standings(standings []game.Standing) string {
	rows := make([][]string, len(standings))
	for i, st := range standings {
		rows[i] = []string{strconv.Itoa(st.Rank), st.Player.String(), strconv.Itoa(st.Total)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("Rank", "Player", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			if standings[row].Rank == 1 {
				return s.total
			}
			return s.cell
		})
	return t.String()
}

// Schedule renders the round plan of a game.
func (s *Sheet) Schedule(players []game.Player, rounds []game.Context) string {
	rows := make([][]string, len(rounds))
	for i, ctx := range rounds {
		direction := "down"
		if ctx.IncrementingPhase {
			direction = "up"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(ctx.AmountOfCards),
			players[ctx.DealerIndex].String(),
			direction,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("Round", "Cards", "Dealer", "Phase").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		})
	return t.String()
}

// Strategies renders one row of simulation statistics per strategy, best
// mean first.
func (s *Sheet) Strategies(byStrategy map[string]*statistics.Statistics) string {
	names := make([]string, 0, len(byStrategy))
	for name := range byStrategy {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byStrategy[names[i]], byStrategy[names[j]]
		if a.Mean() != b.Mean() {
			return a.Mean() > b.Mean()
		}
		return names[i] < names[j]
	})

	rows := make([][]string, len(names))
	for i, name := range names {
		st := byStrategy[name]
		low, high := st.ConfidenceInterval95()
		rows[i] = []string{
			name,
			strconv.Itoa(st.Games),
			fmt.Sprintf("%.1f", st.Mean()),
			fmt.Sprintf("[%.1f, %.1f]", low, high),
			fmt.Sprintf("%.1f", st.Median()),
			fmt.Sprintf("%.1f%%", 100*st.HitRate()),
			fmt.Sprintf("%.1f%%", 100*st.WinRate()),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("Strategy", "Seats", "Mean", "95% CI", "Median", "Hit rate", "Win rate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case row == 0:
				return s.total
			default:
				return s.cell
			}
		})
	return t.String()
}
