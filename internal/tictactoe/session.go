package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/rocketscienceinc/gridgame/internal/rules"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusTie        Status = "tie"
)

// State is the outcome of a session so far. Winner is set only for StatusWon.
type State struct {
	Status Status     `json:"status"`
	Winner board.Mark `json:"winner,omitempty"`
}

func (that State) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusTie
}

// Session runs one game: it alternates turns, applies moves and detects the end.
// It does not know who is behind a mark; callers check identity.
type Session struct {
	board      *board.Board
	firstMover board.Mark
	turn       board.Mark
	state      State
	lastMove   *board.Cell
	moves      int
}

// NewSession - creates a session on an empty board with firstMover to play.
func NewSession(size int, firstMover board.Mark) (*Session, error) {
	if !firstMover.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, firstMover)
	}

	b, err := board.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &Session{
		board:      b,
		firstMover: firstMover,
		turn:       firstMover,
		state:      State{Status: StatusInProgress},
	}, nil
}

// ApplyMove - places the current player's mark at (row, col).
// A rejected move leaves the session unchanged.
func (that *Session) ApplyMove(row, col int) error {
	if that.state.IsFinished() {
		return apperror.ErrGameFinished
	}

	mover := that.turn
	if err := that.board.Place(row, col, mover); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	that.lastMove = &board.Cell{Row: row, Col: col}
	that.moves++
	that.updateState(mover)

	return nil
}

// Reset - starts over on an empty board of the same size with the original first mover.
func (that *Session) Reset() {
	b, _ := board.New(that.board.Size()) // size was validated at creation

	that.board = b
	that.turn = that.firstMover
	that.state = State{Status: StatusInProgress}
	that.lastMove = nil
	that.moves = 0
}

func (that *Session) State() State {
	return that.state
}

func (that *Session) IsFinished() bool {
	return that.state.IsFinished()
}

// CurrentTurn - returns the mark to move. It keeps the last mover once the game is over.
func (that *Session) CurrentTurn() board.Mark {
	return that.turn
}

// Board - returns a copy of the board for rendering and lookahead.
func (that *Session) Board() *board.Board {
	return that.board.Clone()
}

func (that *Session) Size() int {
	return that.board.Size()
}

func (that *Session) CellAt(row, col int) (board.Mark, error) {
	return that.board.CellAt(row, col)
}

func (that *Session) FirstMover() board.Mark {
	return that.firstMover
}

// Players - returns both marks in playing order.
func (that *Session) Players() [2]board.Mark {
	return [2]board.Mark{that.firstMover, that.firstMover.Opponent()}
}

// LastMove - returns the most recent move, or false before the first one.
func (that *Session) LastMove() (board.Cell, bool) {
	if that.lastMove == nil {
		return board.Cell{}, false
	}

	return *that.lastMove, true
}

func (that *Session) MoveCount() int {
	return that.moves
}

// updateState - checks the game status after a move.
func (that *Session) updateState(mover board.Mark) {
	switch {
	case rules.CheckWin(that.board, mover):
		that.state = State{Status: StatusWon, Winner: mover}
	case rules.IsFull(that.board):
		that.state = State{Status: StatusTie}
	default:
		that.turn = mover.Opponent()
	}
}

type sessionJSON struct {
	Board      *board.Board `json:"board"`
	FirstMover board.Mark   `json:"first_mover"`
	Turn       board.Mark   `json:"turn"`
	State      State        `json:"state"`
	LastMove   *board.Cell  `json:"last_move,omitempty"`
	Moves      int          `json:"moves"`
}

func (that *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		Board:      that.board,
		FirstMover: that.firstMover,
		Turn:       that.turn,
		State:      that.state,
		LastMove:   that.lastMove,
		Moves:      that.moves,
	})
}

func (that *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if raw.Board == nil {
		return fmt.Errorf("%w: missing board", apperror.ErrInvalidSize)
	}

	if !raw.FirstMover.IsPlayer() || !raw.Turn.IsPlayer() {
		return fmt.Errorf("%w: first mover %q, turn %q", apperror.ErrInvalidMark, raw.FirstMover, raw.Turn)
	}

	if err := validateState(raw.Board, raw.State); err != nil {
		return err
	}

	that.board = raw.Board
	that.firstMover = raw.FirstMover
	that.turn = raw.Turn
	that.state = raw.State
	that.lastMove = raw.LastMove
	that.moves = raw.Moves

	return nil
}

// validateState - a stored state must be the one updateState would have produced.
func validateState(b *board.Board, state State) error {
	xWins, oWins := rules.CheckWin(b, board.X), rules.CheckWin(b, board.O)

	switch state.Status {
	case StatusWon:
		if !state.Winner.IsPlayer() || !rules.CheckWin(b, state.Winner) {
			return fmt.Errorf("%w: won by %q", apperror.ErrInvalidState, state.Winner)
		}
	case StatusTie:
		if state.Winner != board.Empty || !rules.IsFull(b) || xWins || oWins {
			return fmt.Errorf("%w: tie", apperror.ErrInvalidState)
		}
	case StatusInProgress:
		if state.Winner != board.Empty || rules.IsFull(b) || xWins || oWins {
			return fmt.Errorf("%w: in progress", apperror.ErrInvalidState)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrInvalidState, state.Status)
	}

	return nil
}
