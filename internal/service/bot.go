package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
)

var ErrNoFailChance = errors.New("bot fail chance is not set")

type BotService interface {
	MakeTurn(session *tictactoe.Session, failChance *advisor.FailChance) (advisor.Decision, error)
}

type botService struct {
	logger  *slog.Logger
	advisor *advisor.MoveAdvisor
	config  advisor.Config
	roll    func() float64
}

// NewBotService - creates a computer player playing config.Self. A nil roll uses math/rand/v2.
func NewBotService(logger *slog.Logger, adv *advisor.MoveAdvisor, config advisor.Config, roll func() float64) (BotService, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bot config: %w", err)
	}

	if roll == nil {
		roll = rand.Float64 //nolint: gosec // it's ok
	}

	return &botService{
		logger:  logger.With("component", "bot", "mark", string(config.Self)),
		advisor: adv,
		config:  config,
		roll:    roll,
	}, nil
}

// MakeTurn - rolls the fail chance, asks the advisor for a move and plays it.
func (that *botService) MakeTurn(session *tictactoe.Session, failChance *advisor.FailChance) (advisor.Decision, error) {
	log := that.logger.With("method", "MakeTurn")

	if session.IsFinished() {
		return advisor.Decision{}, apperror.ErrGameFinished
	}

	if session.CurrentTurn() != that.config.Self {
		return advisor.Decision{}, apperror.ErrNotYourTurn
	}

	if failChance == nil {
		return advisor.Decision{}, ErrNoFailChance
	}

	failRoll := failChance.Roll(that.roll())

	decision, err := that.advisor.Decide(session.Board(), that.config.Self, that.config.Opponent, failRoll)
	if err != nil {
		return advisor.Decision{}, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	if err = session.ApplyMove(decision.Cell.Row, decision.Cell.Col); err != nil {
		return advisor.Decision{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved",
		"row", decision.Cell.Row,
		"col", decision.Cell.Col,
		"tier", decision.Tier,
		"fail_chance", failChance.Current,
	)

	return decision, nil
}
