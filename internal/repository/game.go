package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yutnori/internal/domain/game"
	"yutnori/internal/errors"
)

// GameRepository keeps live sessions in process memory, indexed by id and by
// public code.
type GameRepository struct {
	log *zap.SugaredLogger

	mu       sync.RWMutex
	byID     map[string]*game.Game
	byPublic map[string]*game.Game
}

func NewGameRepository(log *zap.SugaredLogger) *GameRepository {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GameRepository{
		log:      log,
		byID:     make(map[string]*game.Game),
		byPublic: make(map[string]*game.Game),
	}
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameID string, gameKeyPublic string) {
	for {
		gameID = uuid.New().String()
		gameKeyPublic = generateHash(gameID)

		if g.CheckPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameID, gameKeyPublic
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) CheckPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, taken := g.byPublic[gameKeyPublic]
	return !taken
}

func (g *GameRepository) PutGame(ctx context.Context, play *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byPublic[play.PublicKey]; ok {
		g.log.Errorf("public key %s already in use", play.PublicKey)
		return fmt.Errorf("public key %s already in use", play.PublicKey)
	}
	g.byID[play.ID] = play
	g.byPublic[play.PublicKey] = play

	g.log.Infof("game stored with key: %s", play.PublicKey)
	return nil
}

func (g *GameRepository) GetGameByID(ctx context.Context, gameID string) (*game.Game, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	play, ok := g.byID[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrGameNotFound, gameID)
	}
	return play, nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (*game.Game, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	play, ok := g.byPublic[gameKeyPublic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrGameNotFound, gameKeyPublic)
	}
	return play, nil
}

// DeleteGame drops a session. Unknown ids are ignored.
func (g *GameRepository) DeleteGame(ctx context.Context, gameID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if play, ok := g.byID[gameID]; ok {
		delete(g.byID, gameID)
		delete(g.byPublic, play.PublicKey)
		g.log.Infof("game %s removed", play.PublicKey)
	}
}

// Count returns the number of stored sessions.
func (g *GameRepository) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byID)
}
