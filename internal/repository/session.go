package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, id string, state tictactoe.State) error
	GetByID(ctx context.Context, id string) (tictactoe.State, error)
	DeleteByID(ctx context.Context, id string) error
}

// memSession keeps sessions only for the life of the process.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string]tictactoe.State
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string]tictactoe.State),
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, id string, state tictactoe.State) error {
	if id == "" {
		return apperror.ErrSessionIsMissing
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[id] = state

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (tictactoe.State, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	state, ok := that.sessions[id]
	if !ok {
		return tictactoe.State{}, apperror.ErrSessionNotFound
	}

	return state, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}
