package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
)

// Action is a UI event applied to a State by Reduce.
type Action interface {
	apply(state State) (State, error)
}

type PlayAction struct {
	Cell int
}

type JumpAction struct {
	Move int
}

type ToggleOrderAction struct{}

type RestartAction struct{}

func (that PlayAction) apply(state State) (State, error) {
	return Play(state, that.Cell)
}

func (that JumpAction) apply(state State) (State, error) {
	return JumpTo(state, that.Move)
}

func (ToggleOrderAction) apply(state State) (State, error) {
	return ToggleOrder(state), nil
}

func (RestartAction) apply(state State) (State, error) {
	return Restart(state), nil
}

// Reduce returns the state after action. A rejected action leaves the state as it was;
// the error only says why.
func Reduce(state State, action Action) (State, error) {
	if action == nil {
		return state, fmt.Errorf("%w: nil", apperror.ErrUnknownAction)
	}

	next, err := action.apply(state)
	if err != nil {
		return state, err
	}

	return next, nil
}
