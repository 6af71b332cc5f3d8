package view

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
)

// Square is one rendered board cell.
type Square struct {
	Index     int         `json:"index"`
	Mark      entity.Mark `json:"mark"`
	Highlight bool        `json:"highlight"`
}

// MoveEntry is one line of the move list. The Current entry is shown as text, not a button.
type MoveEntry struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// View is everything a rendering surface needs to draw one session.
type View struct {
	Squares   [entity.BoardSize]Square `json:"squares"`
	Status    string                   `json:"status"`
	Winner    entity.Mark              `json:"winner,omitempty"`
	Draw      bool                     `json:"draw"`
	NextMark  entity.Mark              `json:"next_mark"`
	SortLabel string                   `json:"sort_label"`
	Ascending bool                     `json:"ascending"`
	Moves     []MoveEntry              `json:"moves"`
}

func Render(state tictactoe.State) View {
	board := state.CurrentBoard()
	result := state.Result()

	var squares [entity.BoardSize]Square
	for i, mark := range board {
		squares[i] = Square{
			Index:     i,
			Mark:      mark,
			Highlight: result.InLine(i),
		}
	}

	return View{
		Squares:   squares,
		Status:    Status(result, state.NextMark()),
		Winner:    result.Winner,
		Draw:      result.Draw,
		NextMark:  state.NextMark(),
		SortLabel: SortLabel(state.Ascending),
		Ascending: state.Ascending,
		Moves:     moveList(state),
	}
}

func Status(result entity.Result, next entity.Mark) string {
	switch {
	case result.HasWinner():
		return fmt.Sprintf("Winner: %s", result.Winner)
	case result.Draw:
		return "Draw!"
	default:
		return fmt.Sprintf("Next Player: %s", next)
	}
}

// SortLabel names the order the toggle switches to.
func SortLabel(ascending bool) string {
	if ascending {
		return "Sort Moves: Descending"
	}
	return "Sort Moves: Ascending"
}

func MoveLabel(number int, move entity.Move) string {
	row, col, ok := move.Location()
	if !ok {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d (%d, %d)", number, row, col)
}

func moveList(state tictactoe.State) []MoveEntry {
	entries := make([]MoveEntry, 0, len(state.History))

	for number, move := range state.History {
		entry := MoveEntry{Move: number, Label: MoveLabel(number, move)}
		if number == state.Current {
			entry.Current = true
			entry.Label = fmt.Sprintf("You are at move #%d", number)
		}

		entries = append(entries, entry)
	}

	if !state.Ascending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	return entries
}

// Rows groups the squares into the three board rows.
func (that View) Rows() [entity.RowSize][entity.RowSize]Square {
	var rows [entity.RowSize][entity.RowSize]Square
	for i, square := range that.Squares {
		rows[i/entity.RowSize][i%entity.RowSize] = square
	}

	return rows
}

func (that View) IsOver() bool {
	return that.Winner != entity.EmptyCell || that.Draw
}
