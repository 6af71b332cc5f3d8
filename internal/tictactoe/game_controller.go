package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
)

// State is one UI session: the move history, the displayed move and the move list order.
type State struct {
	History   []entity.Move `json:"history"`
	Current   int           `json:"current"`
	Ascending bool          `json:"ascending"`
}

func NewState() State {
	return State{
		History:   []entity.Move{entity.NewStartMove()},
		Current:   0,
		Ascending: true,
	}
}

func (that State) CurrentBoard() entity.Board {
	return that.History[that.Current].Board
}

// NextMark - X moves on even pointers, O on odd ones.
func (that State) NextMark() entity.Mark {
	if that.Current%2 == 0 {
		return entity.MarkX
	}
	return entity.MarkO
}

func (that State) Result() entity.Result {
	return entity.Evaluate(that.CurrentBoard())
}

// Play places the next mark on cell. Future moves after the pointer are discarded.
// On error the input state is returned unchanged.
func Play(state State, cell int) (State, error) {
	if err := validateMove(state, cell); err != nil {
		return state, fmt.Errorf("invalid turn: %w", err)
	}

	board, err := state.CurrentBoard().Place(cell, state.NextMark())
	if err != nil {
		return state, fmt.Errorf("invalid turn: %w", err)
	}

	history := make([]entity.Move, state.Current+1, state.Current+2)
	copy(history, state.History[:state.Current+1])
	history = append(history, entity.NewMove(board, cell))

	return State{
		History:   history,
		Current:   len(history) - 1,
		Ascending: state.Ascending,
	}, nil
}

// validateMove - checks if the move is valid.
func validateMove(state State, cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", entity.ErrInvalidCell, cell)
	}

	if state.Result().HasWinner() {
		return apperror.ErrGameFinished
	}

	if state.CurrentBoard()[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// JumpTo moves the pointer without touching the history.
func JumpTo(state State, move int) (State, error) {
	if move < 0 || move >= len(state.History) {
		return state, fmt.Errorf("%w: move %d of %d", apperror.ErrInvalidMove, move, len(state.History))
	}

	state.Current = move

	return state, nil
}

func ToggleOrder(state State) State {
	state.Ascending = !state.Ascending
	return state
}

// Restart drops the whole history and keeps the move list order.
func Restart(state State) State {
	next := NewState()
	next.Ascending = state.Ascending

	return next
}
