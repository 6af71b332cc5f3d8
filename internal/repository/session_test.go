package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-replay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-replay/internal/tictactoe"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()
	sessionRepo := NewSessionRepository()

	t.Run("Stores and overwrites a session", func(t *testing.T) {
		// Given: a new session state
		state := tictactoe.NewState()

		// When: CreateOrUpdate is called twice with a newer state
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "s1", state))
		next, err := tictactoe.Play(state, 4)
		require.NoError(t, err)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "s1", next))

		// Then: the latest state is returned
		stored, err := sessionRepo.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, next, stored)
	})

	t.Run("Error on empty id", func(t *testing.T) {
		err := sessionRepo.CreateOrUpdate(ctx, "", tictactoe.NewState())

		require.ErrorIs(t, err, apperror.ErrSessionIsMissing)
	})
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	sessionRepo := NewSessionRepository()

	// When: GetByID is called with an unknown id
	state, err := sessionRepo.GetByID(ctx, "9999999")

	// Then: ErrSessionNotFound is returned with an empty state
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	assert.Empty(t, state.History)
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		sessionRepo := NewSessionRepository()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "s1", tictactoe.NewState()))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "s1"))

		_, err := sessionRepo.GetByID(ctx, "s1")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		sessionRepo := NewSessionRepository()

		err := sessionRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
