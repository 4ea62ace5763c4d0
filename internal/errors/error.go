package errors

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrCreateGameFailed    = errors.New("create game failed")
	ErrInvalidGameSettings = errors.New("invalid game settings")
	ErrGameOver            = errors.New("game is already over")
	ErrThrowNotAllowed     = errors.New("no throw is owed this turn")
	ErrMoveNotAllowed      = errors.New("moves wait until every owed throw is made")
	ErrInvalidThrowIndex   = errors.New("no pending throw at that index")
	ErrInvalidThrow        = errors.New("invalid throw")
	ErrPieceNotFound       = errors.New("piece not found")
	ErrPieceFinished       = errors.New("piece has already finished")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrInternal            = errors.New("internal error")
)
