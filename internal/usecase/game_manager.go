package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/entity"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(session *tictactoe.Session, failChance *advisor.FailChance) (advisor.Decision, error)
}

// GameManager hosts games for the network front ends. Each call loads the game,
// changes it and stores it back, so no board is shared between requests.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	bot       botService
	botConfig advisor.Config
}

// NewGameManager - botConfig must be the one the bot was built with. Its
// FailBaseChance seeds the pity timer of every new game with the bot.
func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService, botConfig advisor.Config) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:  gameRepo,
		bot:       bot,
		botConfig: botConfig,
	}
}

// CreateGame - starts a new game of the given size and type.
func (that *GameManager) CreateGame(ctx context.Context, size int, gameType string) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), gameType, size, that.botConfig.FailBaseChance)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", game.ID, "type", game.Type, "size", size)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays (row, col) for whoever is to move. In a game with the bot only
// the human may call it, and the bot answers before the game is stored.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if game.IsWithBot() && game.Session.CurrentTurn() == that.botConfig.Self {
		return game, apperror.ErrNotYourTurn
	}

	if err = game.Session.ApplyMove(row, col); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsWithBot() && !game.IsFinished() {
		if _, err = that.bot.MakeTurn(game.Session, game.FailChance); err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		state := game.Session.State()
		log.Info("game finished", "status", state.Status, "winner", state.Winner)
	}

	return game, nil
}

// Restart - puts a game back to its initial state.
func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Restart()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
