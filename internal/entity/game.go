package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
)

const (
	LocalType   = "local"
	WithBotType = "bot"
)

const (
	// HumanMark always opens the game against the computer.
	HumanMark = board.X
	BotMark   = board.O
)

// Game is a hosted session together with what the server needs to drive it.
type Game struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	Session    *tictactoe.Session  `json:"session"`
	FailChance *advisor.FailChance `json:"fail_chance,omitempty"`
}

// NewGame - creates a game of the given type. failBase is only used for games with the bot.
func NewGame(id, gameType string, size int, failBase float64) (*Game, error) {
	if gameType != LocalType && gameType != WithBotType {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}

	session, err := tictactoe.NewSession(size, HumanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	game := &Game{
		ID:      id,
		Type:    gameType,
		Session: session,
	}

	if gameType == WithBotType {
		failChance, err := advisor.NewFailChance(failBase)
		if err != nil {
			return nil, fmt.Errorf("failed to create fail chance: %w", err)
		}
		game.FailChance = &failChance
	}

	return game, nil
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) IsFinished() bool {
	return that.Session.IsFinished()
}

// ConfirmOngoingState - returns an error if the game can no longer accept moves.
func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}

// Restart - resets the session and the bot's fail chance.
func (that *Game) Restart() {
	that.Session.Reset()

	// The pity timer restarts with the board rather than carrying over into the rematch.
	if that.FailChance != nil {
		that.FailChance.Reset()
	}
}
