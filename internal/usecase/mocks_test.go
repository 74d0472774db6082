package usecase

import (
	"context"

	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/entity"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
	"github.com/stretchr/testify/mock"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(session *tictactoe.Session, failChance *advisor.FailChance) (advisor.Decision, error) {
	args := that.Called(session, failChance)
	decision, _ := args.Get(0).(advisor.Decision)
	return decision, args.Error(1)
}
