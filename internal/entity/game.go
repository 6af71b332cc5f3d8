package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
)

// Mark is the symbol held by a board cell.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	RowSize   = 3
)

var (
	ErrInvalidCell = errors.New("invalid cell index")

	// WinCombos are checked in this order, the first complete one wins.
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is a row-major 3x3 grid, index = row*3 + col.
type Board [BoardSize]Mark

// Result is the outcome of evaluating a board.
type Result struct {
	Winner Mark  `json:"winner"`
	Line   []int `json:"line"`
	Draw   bool  `json:"draw"`
}

// Move is a history entry: the board after the move and the cell that was played.
// Cell is nil for the start position.
type Move struct {
	Board Board `json:"board"`
	Cell  *int  `json:"cell,omitempty"`
}

func NewBoard() Board {
	return Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Place returns a copy of the board with mark placed at cell.
func (that Board) Place(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= BoardSize {
		return that, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return that, apperror.ErrCellOccupied
	}

	that[cell] = mark

	return that, nil
}

// Evaluate reports the winner and its line, or whether the board is a draw.
func Evaluate(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Winner: a, Line: []int{combo[0], combo[1], combo[2]}}
		}
	}

	// the game continues until all the squares are full
	return Result{Winner: EmptyCell, Line: []int{}, Draw: board.IsFull()}
}

func (that Result) HasWinner() bool {
	return that.Winner != EmptyCell
}

func (that Result) IsOver() bool {
	return that.HasWinner() || that.Draw
}

// InLine reports whether cell belongs to the winning line.
func (that Result) InLine(cell int) bool {
	for _, index := range that.Line {
		if index == cell {
			return true
		}
	}

	return false
}

func NewStartMove() Move {
	return Move{Board: NewBoard()}
}

func NewMove(board Board, cell int) Move {
	return Move{Board: board, Cell: &cell}
}

// Location returns the 1-indexed row and column of the played cell.
func (that Move) Location() (int, int, bool) {
	if that.Cell == nil {
		return 0, 0, false
	}

	return *that.Cell/RowSize + 1, *that.Cell%RowSize + 1, true
}
