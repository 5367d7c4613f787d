package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/neonboard/internal/cli/formatter"
	"github.com/alexanderramin/neonboard/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type boardKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.MoveRight, k.MoveDown, k.Refresh, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Refresh, k.Quit},
	}
}

var boardKeys = boardKeyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card")),
	MoveLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "move left")),
	MoveRight: key.NewBinding(key.WithKeys("L"), key.WithHelp("H/L", "move card")),
	MoveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "reorder")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// boardLoadedMsg carries a fresh read of the board. selectCard, when set,
// moves the cursor onto that card.
type boardLoadedMsg struct {
	details    service.BoardDetails
	selectCard string
	err        error
}

// boardModel is the interactive board view behind `board view`.
type boardModel struct {
	ctx     context.Context
	app     *App
	boardID string

	details service.BoardDetails
	loaded  bool
	focus   formatter.Focus
	err     error

	keys boardKeyMap
	help help.Model
}

func newBoardModel(ctx context.Context, app *App, boardID string) *boardModel {
	return &boardModel{
		ctx:     ctx,
		app:     app,
		boardID: boardID,
		keys:    boardKeys,
		help:    help.New(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load("")
}

func (m *boardModel) load(selectCard string) tea.Cmd {
	ctx, app, id := m.ctx, m.app, m.boardID
	return func() tea.Msg {
		d, err := app.Queries.GetBoard(ctx, id)
		return boardLoadedMsg{details: d, selectCard: selectCard, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.loaded = true
		m.details = msg.details
		if msg.selectCard != "" {
			m.selectCard(msg.selectCard)
		}
		m.clampFocus()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.focusedCardID())
		}
		if !m.loaded {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Left):
			m.focus.Column--
			m.clampFocus()
		case key.Matches(msg, m.keys.Right):
			m.focus.Column++
			m.clampFocus()
		case key.Matches(msg, m.keys.Up):
			m.focus.Card--
			m.clampFocus()
		case key.Matches(msg, m.keys.Down):
			m.focus.Card++
			m.clampFocus()
		case key.Matches(msg, m.keys.MoveLeft):
			return m, m.moveAcross(-1)
		case key.Matches(msg, m.keys.MoveRight):
			return m, m.moveAcross(1)
		case key.Matches(msg, m.keys.MoveUp):
			return m, m.moveWithin(-1)
		case key.Matches(msg, m.keys.MoveDown):
			return m, m.moveWithin(1)
		}
	}
	return m, nil
}

// moveAcross moves the focused card to the bottom of the adjacent column.
func (m *boardModel) moveAcross(delta int) tea.Cmd {
	cardID := m.focusedCardID()
	target := m.focus.Column + delta
	if cardID == "" || target < 0 || target >= len(m.details.Columns) {
		return nil
	}
	col := m.details.Columns[target]
	return m.move(cardID, col.ID, len(col.Cards))
}

// moveWithin swaps the focused card with its neighbour in the same column.
func (m *boardModel) moveWithin(delta int) tea.Cmd {
	cardID := m.focusedCardID()
	if cardID == "" {
		return nil
	}
	col := m.details.Columns[m.focus.Column]
	target := m.focus.Card + delta
	if target < 0 || target >= len(col.Cards) {
		return nil
	}
	return m.move(cardID, col.ID, target)
}

func (m *boardModel) move(cardID, columnID string, position int) tea.Cmd {
	ctx, app, boardID := m.ctx, m.app, m.boardID
	return func() tea.Msg {
		if err := app.Boards.MoveCard(ctx, boardID, cardID, columnID, position); err != nil {
			return boardLoadedMsg{err: err}
		}
		d, err := app.Queries.GetBoard(ctx, boardID)
		return boardLoadedMsg{details: d, selectCard: cardID, err: err}
	}
}

func (m *boardModel) focusedCardID() string {
	cols := m.details.Columns
	if m.focus.Column < 0 || m.focus.Column >= len(cols) {
		return ""
	}
	cards := cols[m.focus.Column].Cards
	if m.focus.Card < 0 || m.focus.Card >= len(cards) {
		return ""
	}
	return cards[m.focus.Card].ID
}

func (m *boardModel) selectCard(id string) {
	for ci, col := range m.details.Columns {
		for pi, card := range col.Cards {
			if card.ID == id {
				m.focus = formatter.Focus{Column: ci, Card: pi}
				return
			}
		}
	}
}

// clampFocus keeps the cursor on an existing column, and on an existing card
// when the column has any.
func (m *boardModel) clampFocus() {
	cols := m.details.Columns
	if len(cols) == 0 {
		m.focus = formatter.Focus{}
		return
	}
	m.focus.Column = max(0, min(m.focus.Column, len(cols)-1))
	n := len(cols[m.focus.Column].Cards)
	m.focus.Card = max(0, min(m.focus.Card, n-1))
}

func (m *boardModel) View() string {
	if m.err != nil && !m.loaded {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n" + m.help.View(m.keys)
	}
	if !m.loaded {
		return formatter.Dim("Loading board...")
	}

	var b strings.Builder
	b.WriteString(formatter.FormatBoard(m.details, m.focus))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
