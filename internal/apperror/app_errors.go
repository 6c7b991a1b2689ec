package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidPosition = errors.New("invalid cell index")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrEmptyMoveSet    = errors.New("no moves left on the board")
	ErrInputClosed     = errors.New("input closed")
)
