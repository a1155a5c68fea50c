// Package tui is an interactive scorekeeper for a table playing Rikiki with
// real cards. It asks for every seat's bet, then every seat's tricks, and
// keeps the score sheet up to date between rounds.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/rikiki/internal/bot"
	"github.com/lox/rikiki/internal/game"
	"github.com/lox/rikiki/internal/match"
	"github.com/lox/rikiki/internal/scoresheet"
)

// TUIModel represents the Bubble Tea model for the scorekeeper
type TUIModel struct {
	match  *match.Match
	sheet  *scoresheet.Sheet
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	order       []int // seats in entry order for the open round
	cursor      int   // index into order of the seat being asked
	message     string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a scorekeeper for m
func NewTUIModel(m *match.Match, sheet *scoresheet.Sheet, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(m, sheet, logger, false)
}

// NewTUIModelWithOptions creates a scorekeeper with test mode option
func NewTUIModelWithOptions(m *match.Match, sheet *scoresheet.Sheet, logger *log.Logger, testMode bool) *TUIModel {
	// Properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	model := &TUIModel{
		match:       m,
		sheet:       sheet,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
		testMode:    testMode,
	}
	model.startRound()
	return model
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if cmd := m.submit(line); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles one line of input and returns a command when the program
// should stop.
func (m *TUIModel) submit(line string) tea.Cmd {
	switch strings.ToLower(line) {
	case "quit", "exit":
		m.quitting = true
		return tea.Quit
	case "back":
		if m.cursor > 0 {
			m.cursor--
		}
		m.message = ""
		return nil
	}

	if m.match.Over() {
		if line == "" {
			m.quitting = true
			return tea.Quit
		}
		m.message = "The game is over. Press Enter to exit."
		return nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		m.message = fmt.Sprintf("%q is not a number", line)
		return nil
	}

	seat := m.order[m.cursor]
	switch m.match.Phase() {
	case game.PhaseBetting:
		err = m.match.SetBet(seat, n)
	case game.PhaseScoring:
		err = m.match.SetPoints(seat, n)
	}
	if err != nil {
		m.message = m.explain(err)
		return nil
	}

	m.message = ""
	m.cursor++
	if m.cursor == len(m.order) {
		m.lock()
	}
	return nil
}

// lock closes the open phase once every seat has answered.
func (m *TUIModel) lock() {
	switch m.match.Phase() {
	case game.PhaseBetting:
		if err := m.match.LockBets(); err != nil {
			m.message = m.explain(err)
			m.cursor = 0
			return
		}
		s := m.match.Snapshot()
		m.AddLogEntry("Bets: " + m.describe(s, s.Bets))
		m.cursor = 0

	case game.PhaseScoring:
		if err := m.match.LockPoints(); err != nil {
			m.message = m.explain(err)
			m.cursor = 0
			return
		}
		m.finishRound()
	}
}

func (m *TUIModel) finishRound() {
	s := m.match.Snapshot()
	rec := s.History[len(s.History)-1]

	parts := make([]string, len(s.Players))
	for i, p := range s.Players {
		parts[i] = fmt.Sprintf("%s %+d", p, rec.Scores[i])
	}
	m.AddLogEntry(fmt.Sprintf("Round %d scored: %s", rec.Number, strings.Join(parts, ", ")))

	over, err := m.match.Advance()
	if err != nil {
		m.message = m.explain(err)
		return
	}
	if !over {
		m.startRound()
		return
	}

	m.AddLogEntry("")
	m.AddBoldLogEntry("Game over")
	if g, ok := m.match.Result(); ok {
		winner := g.Standings()[0]
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("%s wins with %d points", winner.Player, winner.Total)))
		m.AddLogEntry(m.sheet.Standings(g.Standings()))
	}
	m.AddLogEntry(m.sheet.Scores(m.match.Snapshot()))
}

// startRound announces the open round and resets the prompt order.
func (m *TUIModel) startRound() {
	s := m.match.Snapshot()
	m.order = bot.BettingOrder(s.Context)
	m.cursor = 0
	m.AddLogEntry(fmt.Sprintf("Round %d/%d: %d cards, %s deals",
		s.Round, s.Rounds, s.Context.AmountOfCards, s.Players[s.Context.DealerIndex]))
}

func (m *TUIModel) explain(err error) string {
	switch {
	case errors.Is(err, game.ErrOutOfRange):
		return fmt.Sprintf("Enter a number from 0 to %d", m.match.Context().AmountOfCards)
	case errors.Is(err, game.ErrPointSum):
		return fmt.Sprintf("Tricks must add up to %d, enter them again", m.match.Context().AmountOfCards)
	default:
		return err.Error()
	}
}

func (m *TUIModel) describe(s match.Snapshot, entries []match.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, seat := range m.order {
		parts = append(parts, fmt.Sprintf("%s %d", s.Players[seat], entries[seat].Value))
	}
	return strings.Join(parts, ", ")
}

// Prompt returns the question for the current input.
func (m *TUIModel) Prompt() string {
	if m.match.Over() {
		return "Game over. Enter to exit"
	}
	s := m.match.Snapshot()
	player := s.Players[m.order[m.cursor]]
	if s.Phase == game.PhaseScoring {
		return fmt.Sprintf("Tricks won by %s (0-%d)", player, s.Context.AmountOfCards)
	}
	return fmt.Sprintf("Bet for %s (0-%d)", player, s.Context.AmountOfCards)
}

// Message returns the last input error, if any.
func (m *TUIModel) Message() string {
	return m.message
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(1, m.width-2)).
		Height(max(1, actionHeight))
	if m.focusedPane == 1 {
		actionStyle = actionStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(25, lipgloss.Width(sidebarContent))
	paneHeight := max(1, m.height-actionHeight-4)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = paneHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && m.logViewport.Width > 1 && m.logViewport.Height > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane lists every seat with its entry for the open round and
// its running total.
func (m *TUIModel) renderSidebarPane() string {
	s := m.match.Snapshot()
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(fmt.Sprintf(" Round %d/%d ", s.Round, s.Rounds)))
	content.WriteString("\n")
	content.WriteString(RoundInfoStyle.Render(fmt.Sprintf("%d cards, %s", s.Context.AmountOfCards, s.Phase)))
	content.WriteString("\n\n")

	active := -1
	if !s.Over && m.cursor < len(m.order) {
		active = m.order[m.cursor]
	}

	for seat, p := range s.Players {
		line := fmt.Sprintf("%-10s %s %s %4d", p, entry(s.Bets, seat), entry(s.Points, seat), s.Totals[seat])
		if seat == s.Context.DealerIndex {
			line += " D"
		}
		if seat == active {
			content.WriteString(ActivePlayerStyle.Render(line))
		} else {
			content.WriteString(PlayerInfoStyle.Render(line))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("bet / tricks / total"))
	return content.String()
}

func entry(entries []match.Entry, seat int) string {
	if seat >= len(entries) || !entries[seat].Set {
		return " -"
	}
	return fmt.Sprintf("%2d", entries[seat].Value)
}

func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	content.WriteString(PromptStyle.Render(m.Prompt()))
	content.WriteString("\n")
	if m.message != "" {
		content.WriteString(ErrorStyle.Render(m.message))
		content.WriteString("\n")
	}

	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Enter to submit • 'back' to fix the previous seat • Tab to scroll log • Ctrl+C to quit"))
	}

	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// AddBoldLogEntry adds a bold entry to the game log
func (m *TUIModel) AddBoldLogEntry(entry string) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		m.gameLog = append(m.gameLog, entry)
		return
	}
	m.AddLogEntry(lipgloss.NewStyle().Bold(true).Render(entry))
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
