package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidMove      = errors.New("move is not in history")
	ErrUnknownAction    = errors.New("unknown action")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsMissing = errors.New("session id is required")
)
