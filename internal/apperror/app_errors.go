package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFound      = errors.New("game not found")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell coordinate")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrMoveRequired      = errors.New("a move is required for a human player")
	ErrNoAvailableMoves  = errors.New("no available moves")
	ErrModelNotTrained   = errors.New("naive bayes model is not trained")
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownOpponent   = errors.New("unknown opponent kind")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
