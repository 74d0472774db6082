package view

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/rocketscienceinc/gridgame/internal/entity"
	"github.com/rocketscienceinc/gridgame/internal/rules"
)

// Game is what clients see of a hosted game.
type Game struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Size      int            `json:"size"`
	WinLength int            `json:"win_length"`
	Board     [][]board.Mark `json:"board"`
	Turn      board.Mark     `json:"turn,omitempty"`
	Status    string         `json:"status"`
	Winner    board.Mark     `json:"winner,omitempty"`
	LastMove  *board.Cell    `json:"last_move,omitempty"`
}

func NewGame(game *entity.Game) *Game {
	session := game.Session
	state := session.State()

	result := &Game{
		ID:        game.ID,
		Type:      game.Type,
		Size:      session.Size(),
		WinLength: rules.WinLength(session.Size()),
		Board:     session.Board().Rows(),
		Status:    string(state.Status),
		Winner:    state.Winner,
	}

	if !state.IsFinished() {
		result.Turn = session.CurrentTurn()
	}

	if last, ok := session.LastMove(); ok {
		result.LastMove = &last
	}

	return result
}

// TurnRequest is a move sent by a client, 0-based.
type TurnRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewGameRequest asks for a new game. Zero values fall back to server defaults.
type NewGameRequest struct {
	Size int    `json:"size,omitempty"`
	Type string `json:"type,omitempty"`
}

// HTTPStatus maps domain errors onto HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrOutOfBounds),
		errors.Is(err, apperror.ErrInvalidSize),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownGameType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage hides internal failures from clients.
func ErrorMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return http.StatusText(http.StatusInternalServerError)
	}

	return err.Error()
}
