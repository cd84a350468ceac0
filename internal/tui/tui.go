// Package tui is the interactive hand analysis dashboard: a 52-card grid,
// two card holders, pot and call inputs and the analysis report.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/handequity/internal/render"
	"github.com/lox/handequity/poker"
	"github.com/lox/handequity/sdk/analysis"
)

// Holder is the destination for cards picked from the grid.
type Holder int

const (
	MyCards Holder = iota
	TableCards
)

func (h Holder) String() string {
	if h == TableCards {
		return "Table Cards"
	}
	return "My Cards"
}

// Limit returns how many cards the holder accepts.
func (h Holder) Limit() int {
	if h == TableCards {
		return 5
	}
	return 2
}

type pane int

const (
	gridPane pane = iota
	potPane
	callPane
	reportPane
	paneCount
)

// gridSuits orders the grid rows.
var gridSuits = [4]uint8{poker.Hearts, poker.Diamonds, poker.Clubs, poker.Spades}

// Analyzer runs an analysis for the dashboard.
type Analyzer interface {
	Analyze(ctx context.Context, sel analysis.Selection) (analysis.Report, error)
}

// Settings are the simulation parameters used for every analysis.
type Settings struct {
	Players int
	Trials  int
}

// analysisMsg carries a finished analysis back to Update.
type analysisMsg struct {
	report analysis.Report
	err    error
}

// Model represents the Bubble Tea model for the dashboard
type Model struct {
	analyzer Analyzer
	settings Settings
	logger   *log.Logger

	// UI components
	potInput  textinput.Model
	callInput textinput.Model
	report    viewport.Model

	// Selection state
	holder    Holder
	mine      []poker.Card
	table     []poker.Card
	cursorRow int
	cursorCol int

	focused   pane
	status    string
	statusErr bool
	busy      bool
	quitting  bool

	width  int
	height int
}

// NewModel creates a dashboard that analyses selections with analyzer.
func NewModel(analyzer Analyzer, settings Settings, logger *log.Logger) *Model {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 12
		ti.Width = 12
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
		ti.Prompt = "> "
		return ti
	}

	vp := viewport.New(60, 12)
	vp.SetContent(InfoStyle.Render("Pick two cards for My Cards, then press a to analyze."))

	return &Model{
		analyzer:  analyzer,
		settings:  settings,
		logger:    logger.WithPrefix("tui"),
		potInput:  newInput("pot"),
		callInput: newInput("call"),
		report:    vp,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Holder returns the holder that receives grid picks.
func (m *Model) Holder() Holder { return m.holder }

// MyCards returns the selected hole cards.
func (m *Model) MyCards() []poker.Card { return m.mine }

// TableCards returns the selected board cards.
func (m *Model) TableCards() []poker.Card { return m.table }

// Status returns the status line text.
func (m *Model) Status() string { return m.status }

// Cursor returns the card under the grid cursor.
func (m *Model) Cursor() poker.Card {
	return poker.NewCard(uint8(m.cursorCol), gridSuits[m.cursorRow])
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.report.Width = max(msg.Width-4, 20)
		m.report.Height = max(msg.Height-20, 5)
		return m, nil

	case analysisMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.report.SetContent(render.Report(msg.report))
		m.report.GotoTop()
		m.setStatus(fmt.Sprintf("🏆 Hand Category: %s", msg.report.Classification))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focused + 1) % paneCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focused + paneCount - 1) % paneCount)
			return m, nil
		}

		switch m.focused {
		case gridPane:
			return m, m.handleGridKey(msg)
		case potPane, callPane:
			if msg.String() == "enter" {
				return m, m.analyze()
			}
		case reportPane:
			var cmd tea.Cmd
			m.report, cmd = m.report.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case potPane:
		m.potInput, cmd = m.potInput.Update(msg)
	case callPane:
		m.callInput, cmd = m.callInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		m.cursorCol = (m.cursorCol + 12) % 13
	case "right", "l":
		m.cursorCol = (m.cursorCol + 1) % 13
	case "up", "k":
		m.cursorRow = (m.cursorRow + 3) % 4
	case "down", "j":
		m.cursorRow = (m.cursorRow + 1) % 4
	case "m":
		m.holder = MyCards
	case "t":
		m.holder = TableCards
	case " ", "enter":
		m.pick(m.Cursor())
	case "backspace", "x":
		m.unpick()
	case "r":
		m.Reset()
	case "a":
		return m.analyze()
	}
	return nil
}

// pick assigns card to the active holder unless it is full or the card is taken.
func (m *Model) pick(card poker.Card) {
	if m.assigned(card) {
		m.setError(fmt.Sprintf("%s is already selected", card.Pretty()))
		return
	}
	dst := &m.mine
	if m.holder == TableCards {
		dst = &m.table
	}
	if len(*dst) >= m.holder.Limit() {
		m.setError(fmt.Sprintf("%s holds at most %d cards", m.holder, m.holder.Limit()))
		return
	}
	*dst = append(*dst, card)
	m.setStatus(fmt.Sprintf("%s added to %s", card.Pretty(), m.holder))
}

func (m *Model) unpick() {
	dst := &m.mine
	if m.holder == TableCards {
		dst = &m.table
	}
	if n := len(*dst); n > 0 {
		*dst = (*dst)[:n-1]
	}
}

func (m *Model) assigned(card poker.Card) bool {
	return poker.NewHand(m.mine...).HasCard(card) || poker.NewHand(m.table...).HasCard(card)
}

// Reset clears both holders and the report.
func (m *Model) Reset() {
	m.mine = nil
	m.table = nil
	m.holder = MyCards
	m.report.SetContent("")
	m.setStatus("All cards reset")
}

// Selection builds the analysis request from the current state.
func (m *Model) Selection() (analysis.Selection, error) {
	if len(m.mine) != 2 {
		return analysis.Selection{}, fmt.Errorf("select exactly 2 cards for '%s'", MyCards)
	}
	pot, err := parseAmount("pot", m.potInput.Value())
	if err != nil {
		return analysis.Selection{}, err
	}
	call, err := parseAmount("call", m.callInput.Value())
	if err != nil {
		return analysis.Selection{}, err
	}
	return analysis.Selection{
		Hole:    append([]poker.Card(nil), m.mine...),
		Board:   append([]poker.Card(nil), m.table...),
		Pot:     pot,
		Call:    call,
		Players: m.settings.Players,
		Trials:  m.settings.Trials,
	}, nil
}

func parseAmount(name, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return v, nil
}

// analyze returns the command that runs the analysis off the update loop.
func (m *Model) analyze() tea.Cmd {
	if m.busy {
		return nil
	}
	sel, err := m.Selection()
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	m.busy = true
	m.setStatus("Analyzing...")
	m.logger.Debug("Starting analysis", "hole", poker.FormatCards(sel.Hole), "board", poker.FormatCards(sel.Board))

	analyzer := m.analyzer
	return func() tea.Msg {
		report, err := analyzer.Analyze(context.Background(), sel)
		return analysisMsg{report: report, err: err}
	}
}

func (m *Model) setFocus(p pane) {
	m.focused = p
	m.potInput.Blur()
	m.callInput.Blur()
	switch p {
	case potPane:
		m.potInput.Focus()
	case callPane:
		m.callInput.Focus()
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// View renders the dashboard
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("♠️ Poker Decision Dashboard"))
	b.WriteString("\n\n")

	b.WriteString(m.renderHolders())
	b.WriteString("\n\n")

	b.WriteString(m.pane(gridPane).Render(m.renderGrid()))
	b.WriteString("\n")

	fmt.Fprintf(&b, "My Cards: %s\n", render.Cards(m.mine))
	fmt.Fprintf(&b, "Table Cards: %s\n\n", render.Cards(m.table))

	inputs := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(potPane).Render("Pot "+m.potInput.View()),
		" ",
		m.pane(callPane).Render("Call "+m.callInput.View()))
	b.WriteString(inputs)
	b.WriteString("\n")

	if m.status != "" {
		style := SuccessStyle
		if m.statusErr {
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.pane(reportPane).Render(m.report.View()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("←↑↓→ move • space pick • m/t holder • x undo • a analyze • r reset • tab focus • esc quit"))
	return b.String()
}

func (m *Model) pane(p pane) lipgloss.Style {
	if m.focused == p {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m *Model) renderHolders() string {
	parts := make([]string, 0, 2)
	for _, h := range []Holder{MyCards, TableCards} {
		label := fmt.Sprintf("%s (%d/%d)", h, m.count(h), h.Limit())
		if h == m.holder {
			parts = append(parts, ActiveHolderStyle.Render("● "+label))
		} else {
			parts = append(parts, HolderStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, "   ")
}

func (m *Model) count(h Holder) int {
	if h == TableCards {
		return len(m.table)
	}
	return len(m.mine)
}

// renderGrid draws 13 rank columns by 4 suit rows.
func (m *Model) renderGrid() string {
	mine := poker.NewHand(m.mine...)
	table := poker.NewHand(m.table...)

	rows := make([]string, len(gridSuits))
	for r, suit := range gridSuits {
		cells := make([]string, 13)
		for rank := 0; rank < 13; rank++ {
			card := poker.NewCard(uint8(rank), suit)
			style := BlackCardStyle
			switch {
			case mine.HasCard(card):
				style = MineCardStyle
			case table.HasCard(card):
				style = TableCardStyle
			case card.Red():
				style = RedCardStyle
			}
			if m.focused == gridPane && r == m.cursorRow && rank == m.cursorCol {
				style = style.Inherit(CursorStyle)
			}
			cells[rank] = style.Render(fmt.Sprintf("%-3s", card.Pretty()))
		}
		rows[r] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n")
}
