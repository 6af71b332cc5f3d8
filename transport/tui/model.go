// Package tui renders a game session in the terminal with Bubble Tea.
// One Model owns one session; every key press is one synchronous state transition.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-replay/internal/view"
)

type focus int

const (
	focusBoard focus = iota
	focusMoves
)

var (
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	statusStyle    = lipgloss.NewStyle().Bold(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

type Model struct {
	logger *slog.Logger

	state      tictactoe.State
	cursor     int
	focus      focus
	moveCursor int
}

func New(logger *slog.Logger, ascending bool) Model {
	state := tictactoe.NewState()
	state.Ascending = ascending

	return Model{
		logger: logger.With("component", "tui"),
		state:  state,
		cursor: 4,
	}
}

func (m Model) State() tictactoe.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	case "s":
		return m.dispatch(tictactoe.ToggleOrderAction{}), nil
	case "r":
		m.cursor = 4
		return m.dispatch(tictactoe.RestartAction{}), nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cell := int(key.Runes[0] - '1')
		m.cursor = cell
		return m.dispatch(tictactoe.PlayAction{Cell: cell}), nil
	}

	if m.focus == focusMoves {
		return m.updateMoves(key), nil
	}

	return m.updateBoard(key), nil
}

func (m Model) updateBoard(key tea.KeyMsg) Model {
	row, col := m.cursor/entity.RowSize, m.cursor%entity.RowSize

	switch key.String() {
	case "up", "k":
		row = max(row-1, 0)
	case "down", "j":
		row = min(row+1, entity.RowSize-1)
	case "left", "h":
		col = max(col-1, 0)
	case "right", "l":
		col = min(col+1, entity.RowSize-1)
	case "enter", " ":
		return m.dispatch(tictactoe.PlayAction{Cell: m.cursor})
	}

	m.cursor = row*entity.RowSize + col

	return m
}

func (m Model) updateMoves(key tea.KeyMsg) Model {
	moves := view.Render(m.state).Moves

	switch key.String() {
	case "up", "k":
		m.moveCursor = max(m.moveCursor-1, 0)
	case "down", "j":
		m.moveCursor = min(m.moveCursor+1, len(moves)-1)
	case "enter", " ":
		// the current entry is plain text
		if moves[m.moveCursor].Current {
			return m
		}
		return m.dispatch(tictactoe.JumpAction{Move: moves[m.moveCursor].Move})
	}

	return m
}

func (m *Model) toggleFocus() {
	if m.focus == focusBoard {
		m.focus = focusMoves
		m.moveCursor = m.currentMoveRow()
		return
	}

	m.focus = focusBoard
}

// currentMoveRow is the position of the current move in the displayed list.
func (m Model) currentMoveRow() int {
	for i, entry := range view.Render(m.state).Moves {
		if entry.Current {
			return i
		}
	}

	return 0
}

func (m Model) dispatch(action tictactoe.Action) Model {
	next, err := tictactoe.Reduce(m.state, action)
	if err != nil {
		m.logger.Debug("action ignored", "action", fmt.Sprintf("%T", action), "reason", err)
		return m
	}

	m.logger.Debug("action applied", "action", fmt.Sprintf("%T", action))

	m.state = next
	if m.focus == focusMoves {
		m.moveCursor = m.currentMoveRow()
	}

	return m
}

func (m Model) View() string {
	rendered := view.Render(m.state)

	var sb strings.Builder
	sb.WriteString(statusStyle.Render(rendered.Status))
	sb.WriteString("\n\n")

	for r, row := range rendered.Rows() {
		cells := make([]string, 0, len(row))
		for _, square := range row {
			cells = append(cells, m.renderSquare(square))
		}
		sb.WriteString(strings.Join(cells, "│"))
		sb.WriteString("\n")
		if r < entity.RowSize-1 {
			sb.WriteString("───┼───┼───\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(rendered.SortLabel + " (s)\n")

	for i, entry := range rendered.Moves {
		pointer := "  "
		if m.focus == focusMoves && i == m.moveCursor {
			pointer = "> "
		}

		label := entry.Label
		if !entry.Current {
			label = "[" + label + "]"
		}
		fmt.Fprintf(&sb, "%s%s\n", pointer, label)
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("arrows/hjkl move • enter play • 1-9 play cell • tab moves list • r restart • q quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderSquare(square view.Square) string {
	mark := string(square.Mark)
	if mark == "" {
		mark = " "
	}

	text := " " + mark + " "

	switch {
	case m.focus == focusBoard && square.Index == m.cursor:
		return cursorStyle.Render(text)
	case square.Highlight:
		return highlightStyle.Render(text)
	default:
		return text
	}
}
