package apperror

import "errors"

var (
	ErrInvalidSize       = errors.New("board size is not supported")
	ErrOutOfBounds       = errors.New("cell is out of bounds")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrNoEmptyCells      = errors.New("no empty cells left")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidFailChance = errors.New("fail chance must be within [0, 1]")
	ErrUnknownGameType   = errors.New("unknown game type")
	ErrInvalidState      = errors.New("session state does not match the board")
)
