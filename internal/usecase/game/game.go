package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yutnori/internal/domain/game"
	"yutnori/internal/engine"
	"yutnori/internal/errors"
	"yutnori/internal/statuses"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
	MinPieces  = 1
	MaxPieces  = 5
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameID string, gameKeyPublic string)
	PutGame(ctx context.Context, g *game.Game) error
	GetGameByID(ctx context.Context, gameID string) (*game.Game, error)
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (*game.Game, error)
	DeleteGame(ctx context.Context, gameID string)
}

// Recorder receives a call for every state change the use case makes.
type Recorder interface {
	GameCreated(kind engine.Kind)
	GameFinished(kind engine.Kind)
	ThrowMade(t game.Throw)
	MoveApplied(t game.Throw, out engine.Outcome)
}

// Defaults fill the fields a CreateGameRequest leaves empty.
type Defaults struct {
	BoardKind       engine.Kind
	PlayerCount     int
	PiecesPerPlayer int
}

type GameUseCase struct {
	store    GameStore
	thrower  Thrower
	recorder Recorder
	defaults Defaults
	log      *zap.SugaredLogger
}

func NewGameUseCase(store GameStore, thrower Thrower, recorder Recorder, defaults Defaults, log *zap.SugaredLogger) *GameUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GameUseCase{
		store:    store,
		thrower:  thrower,
		recorder: recorder,
		defaults: defaults,
		log:      log,
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.GameState, error) {
	kind := g.defaults.BoardKind
	if req.BoardKind != "" {
		k, err := engine.ParseKind(req.BoardKind)
		if err != nil {
			return game.GameState{}, fmt.Errorf("%w: %v", errors.ErrInvalidGameSettings, err)
		}
		kind = k
	}

	names := req.Players
	if len(names) == 0 {
		for i := 0; i < g.defaults.PlayerCount; i++ {
			names = append(names, fmt.Sprintf("Player%d", i+1))
		}
	}
	if len(names) < MinPlayers || len(names) > MaxPlayers {
		return game.GameState{}, fmt.Errorf("%w: %d players, want %d to %d",
			errors.ErrInvalidGameSettings, len(names), MinPlayers, MaxPlayers)
	}

	pieces := req.PiecesPerPlayer
	if pieces == 0 {
		pieces = g.defaults.PiecesPerPlayer
	}
	if pieces < MinPieces || pieces > MaxPieces {
		return game.GameState{}, fmt.Errorf("%w: %d pieces per player, want %d to %d",
			errors.ErrInvalidGameSettings, pieces, MinPieces, MaxPieces)
	}

	board, err := engine.Build(kind)
	if err != nil {
		return game.GameState{}, fmt.Errorf("%w: %v", errors.ErrInvalidGameSettings, err)
	}

	id, publicKey := g.store.GenerateGameKeys(ctx)
	play := &game.Game{
		ID:         id,
		PublicKey:  publicKey,
		CreatedAt:  time.Now(),
		Status:     statuses.StatusPlaying,
		Board:      board,
		Engine:     engine.NewEngine(board, g.log.With("game", publicKey)),
		ThrowsOwed: 1,
		Winner:     -1,
	}
	for i, name := range names {
		play.Players = append(play.Players, engine.NewPlayer(i, name, pieces))
	}

	if err := g.store.PutGame(ctx, play); err != nil {
		return game.GameState{}, fmt.Errorf("%w: %v", errors.ErrCreateGameFailed, err)
	}
	g.recorder.GameCreated(kind)
	g.log.Infow("game created", "id", id, "code", publicKey, "board", kind, "players", len(names), "pieces", pieces)

	play.Lock()
	defer play.Unlock()
	return game.Snapshot(play), nil
}

func (g *GameUseCase) GetGame(ctx context.Context, gameID string) (game.GameState, error) {
	play, err := g.store.GetGameByID(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	play.Lock()
	defer play.Unlock()
	return game.Snapshot(play), nil
}

func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.GameState, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.GameState{}, err
	}
	play.Lock()
	defer play.Unlock()
	return game.Snapshot(play), nil
}

// DeleteGame removes a session.
func (g *GameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	play, err := g.store.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}
	g.store.DeleteGame(ctx, gameID)
	g.log.Infow("game deleted", "id", gameID, "code", play.PublicKey)
	return nil
}

// Throw makes one of the current player's owed throws. A nil result throws at
// random.
func (g *GameUseCase) Throw(ctx context.Context, gameID string, result *game.Throw) (game.GameState, error) {
	play, err := g.store.GetGameByID(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	play.Lock()
	defer play.Unlock()

	if play.Status == statuses.StatusFinished {
		return game.GameState{}, errors.ErrGameOver
	}
	if play.ThrowsOwed <= 0 {
		return game.GameState{}, errors.ErrThrowNotAllowed
	}

	var t game.Throw
	if result != nil {
		t = *result
		if t.Steps() == 0 {
			return game.GameState{}, fmt.Errorf("%w: %d", errors.ErrInvalidThrow, int(t))
		}
	} else {
		t = g.thrower.Throw()
	}

	play.ThrowsOwed--
	if t.GrantsExtraThrow() {
		play.ThrowsOwed++
	}
	play.Pending = append(play.Pending, t)
	g.appendEvent(play, game.Event{Type: game.EventThrow, Throw: &t, Piece: -1, From: -1, To: -1})
	g.recorder.ThrowMade(t)
	g.log.Debugw("throw", "game", play.PublicKey, "player", play.Turn, "throw", t, "owed", play.ThrowsOwed)

	return game.Snapshot(play), nil
}

// Move applies the pending throw at throwIndex to the current player's piece.
// The throw is spent even when the engine refuses the move.
func (g *GameUseCase) Move(ctx context.Context, gameID string, req game.MoveRequest) (game.GameState, error) {
	play, err := g.store.GetGameByID(ctx, gameID)
	if err != nil {
		return game.GameState{}, err
	}
	play.Lock()
	defer play.Unlock()

	if play.Status == statuses.StatusFinished {
		return game.GameState{}, errors.ErrGameOver
	}
	if play.ThrowsOwed > 0 || len(play.Pending) == 0 {
		return game.GameState{}, errors.ErrMoveNotAllowed
	}
	if req.Throw < 0 || req.Throw >= len(play.Pending) {
		return game.GameState{}, fmt.Errorf("%w: %d", errors.ErrInvalidThrowIndex, req.Throw)
	}

	player := play.CurrentPlayer()
	piece := player.Piece(req.Piece)
	if piece == nil {
		return game.GameState{}, fmt.Errorf("%w: %s has no piece %d", errors.ErrPieceNotFound, player.Name(), req.Piece)
	}
	if piece.Finished() {
		return game.GameState{}, fmt.Errorf("%w: %s", errors.ErrPieceFinished, piece)
	}

	t := play.Pending[req.Throw]
	play.Pending = append(play.Pending[:req.Throw], play.Pending[req.Throw+1:]...)

	out := play.Engine.Apply(piece, t.Steps())
	g.appendEvent(play, moveEvent(play.Turn, req.Piece, t, out))
	g.recorder.MoveApplied(t, out)

	if out.Captured {
		play.ThrowsOwed++
	}

	switch {
	case player.AllFinished():
		play.Status = statuses.StatusFinished
		play.Winner = play.Turn
		play.Pending = nil
		play.ThrowsOwed = 0
		g.appendEvent(play, game.Event{Type: game.EventWin, Piece: -1, From: -1, To: -1})
		g.recorder.GameFinished(play.Board.Kind())
		g.log.Infow("game finished", "game", play.PublicKey, "winner", player.Name())
	case len(play.Pending) == 0 && play.ThrowsOwed == 0:
		play.Turn = (play.Turn + 1) % len(play.Players)
		play.ThrowsOwed = 1
		g.appendEvent(play, game.Event{Type: game.EventTurn, Piece: -1, From: -1, To: -1})
	}

	return game.Snapshot(play), nil
}

func (g *GameUseCase) appendEvent(play *game.Game, ev game.Event) {
	ev.Seq = len(play.Events) + 1
	if ev.Type != game.EventMove {
		ev.Player = play.Turn
	}
	ev.At = time.Now()
	play.Events = append(play.Events, ev)
}

func moveEvent(player, piece int, t game.Throw, out engine.Outcome) game.Event {
	ev := game.Event{
		Type:     game.EventMove,
		Player:   player,
		Throw:    &t,
		Piece:    piece,
		Applied:  out.Applied,
		From:     int(out.From),
		To:       int(out.To),
		Finished: out.Finished,
	}
	for _, id := range out.Path {
		ev.Path = append(ev.Path, int(id))
	}
	for _, p := range out.Moved {
		ev.Moved = append(ev.Moved, p.Index())
	}
	for _, v := range out.Victims {
		ev.Captured = append(ev.Captured, game.Victim{Player: v.Owner().ID(), Piece: v.Index()})
	}
	return ev
}

type nopRecorder struct{}

func (nopRecorder) GameCreated(engine.Kind) {}
func (nopRecorder) GameFinished(engine.Kind) {}
func (nopRecorder) ThrowMade(game.Throw) {}
func (nopRecorder) MoveApplied(game.Throw, engine.Outcome) {}
