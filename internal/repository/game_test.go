package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yutnori/internal/domain/game"
	"yutnori/internal/errors"
)

func TestGenerateHash(t *testing.T) {
	code := generateHash("a6a3d1b2-0000-4000-8000-000000000000")
	assert.Len(t, code, 5)
	assert.Equal(t, code, generateHash("a6a3d1b2-0000-4000-8000-000000000000"))
}

func TestGameRepository_PutAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(zap.NewNop().Sugar())

	id, code := repo.GenerateGameKeys(ctx)
	require.NotEmpty(t, id)
	require.Len(t, code, 5)

	play := &game.Game{ID: id, PublicKey: code}
	require.NoError(t, repo.PutGame(ctx, play))

	got, err := repo.GetGameByID(ctx, id)
	require.NoError(t, err)
	assert.Same(t, play, got)

	got, err = repo.GetGameByPublicKey(ctx, code)
	require.NoError(t, err)
	assert.Same(t, play, got)

	assert.False(t, repo.CheckPublicKeyIsUniq(ctx, code))
	assert.Error(t, repo.PutGame(ctx, &game.Game{ID: "other", PublicKey: code}))
	assert.Equal(t, 1, repo.Count())

	repo.DeleteGame(ctx, id)
	_, err = repo.GetGameByID(ctx, id)
	assert.ErrorIs(t, err, errors.ErrGameNotFound)
	assert.True(t, repo.CheckPublicKeyIsUniq(ctx, code))
}

func TestGameRepository_NotFound(t *testing.T) {
	repo := NewGameRepository(zap.NewNop().Sugar())
	_, err := repo.GetGameByID(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrGameNotFound)
	_, err = repo.GetGameByPublicKey(context.Background(), "00000")
	assert.ErrorIs(t, err, errors.ErrGameNotFound)
}

func TestGameRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewGameRepository(zap.NewNop().Sugar())
	assert.ErrorIs(t, repo.PutGame(ctx, &game.Game{ID: "x", PublicKey: "12345"}), context.Canceled)
}
