package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-replay/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-replay/internal/view"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, state tictactoe.State) error
	GetByID(ctx context.Context, id string) (tictactoe.State, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager runs the session state machine on top of the session store.
// Every session is driven by a single event loop, so no per-session locking is done here.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	ascending   bool
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, ascending bool) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		ascending:   ascending,
	}
}

func (that *GameManager) StartSession(ctx context.Context) (string, *view.View, error) {
	id := pkg.GenerateNewSessionID()

	state := tictactoe.NewState()
	state.Ascending = that.ascending

	if err := that.sessionRepo.CreateOrUpdate(ctx, id, state); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session started", "sessionID", id)

	rendered := view.Render(state)

	return id, &rendered, nil
}

// Dispatch applies action to the session. Rejected moves are ignored: the unchanged view
// is returned with a nil error.
func (that *GameManager) Dispatch(ctx context.Context, id string, action tictactoe.Action) (*view.View, error) {
	log := that.logger.With("method", "Dispatch", "sessionID", id)

	state, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := tictactoe.Reduce(state, action)
	if err != nil {
		if !isIgnorable(err) {
			return nil, fmt.Errorf("failed to apply action: %w", err)
		}

		log.Debug("action ignored", "action", fmt.Sprintf("%T", action), "reason", err)
		rendered := view.Render(state)

		return &rendered, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, id, next); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if result := next.Result(); result.IsOver() && !state.Result().IsOver() {
		log.Info("game over", "winner", result.Winner, "draw", result.Draw, "moves", next.Current)
	}

	rendered := view.Render(next)

	return &rendered, nil
}

func (that *GameManager) GetView(ctx context.Context, id string) (*view.View, error) {
	state, err := that.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	rendered := view.Render(state)

	return &rendered, nil
}

func (that *GameManager) EndSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

func (that *GameManager) getSession(ctx context.Context, id string) (tictactoe.State, error) {
	if id == "" {
		return tictactoe.State{}, apperror.ErrSessionIsMissing
	}

	state, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return tictactoe.State{}, fmt.Errorf("failed to get session: %w", err)
	}

	return state, nil
}

// isIgnorable reports whether err is an invalid move the player should not hear about.
func isIgnorable(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrInvalidMove) ||
		errors.Is(err, entity.ErrInvalidCell)
}
