package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

type mockCatalog struct{ mock.Mock }

func (that *mockCatalog) DrawBoard(ctx context.Context, size int) ([]entity.Scenario, error) {
	args := that.Called(ctx, size)

	board, _ := args.Get(0).([]entity.Scenario)

	return board, args.Error(1)
}

func (that *mockCatalog) GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error) {
	args := that.Called(ctx, ids)

	scenarios, _ := args.Get(0).([]entity.Scenario)

	return scenarios, args.Error(1)
}

type mockScenarioRepo struct{ mock.Mock }

func (that *mockScenarioRepo) GetFree(ctx context.Context) (*entity.Scenario, error) {
	args := that.Called(ctx)

	free, _ := args.Get(0).(*entity.Scenario)

	return free, args.Error(1)
}

func (that *mockScenarioRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error) {
	args := that.Called(ctx, ids)

	scenarios, _ := args.Get(0).([]entity.Scenario)

	return scenarios, args.Error(1)
}

func (that *mockScenarioRepo) PickRandom(ctx context.Context, n int) ([]entity.Scenario, error) {
	args := that.Called(ctx, n)

	scenarios, _ := args.Get(0).([]entity.Scenario)

	return scenarios, args.Error(1)
}

type mockPlayerRepo struct{ mock.Mock }

func (that *mockPlayerRepo) GetOrCreate(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)

	player, _ := args.Get(0).(*entity.Player)

	return player, args.Error(1)
}

func (that *mockPlayerRepo) GetByID(ctx context.Context, id int64) (*entity.Player, error) {
	args := that.Called(ctx, id)

	player, _ := args.Get(0).(*entity.Player)

	return player, args.Error(1)
}

type mockGameRepo struct{ mock.Mock }

func (that *mockGameRepo) Create(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)

	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	args := that.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameRepo) SetWinner(ctx context.Context, gameID, playerID int64) error {
	return that.Called(ctx, gameID, playerID).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (that *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return that.Called(ctx, session).Error(0)
}

func (that *mockSessionRepo) GetByGameID(ctx context.Context, gameID int64) (*entity.Session, error) {
	args := that.Called(ctx, gameID)

	session, _ := args.Get(0).(*entity.Session)

	return session, args.Error(1)
}

func (that *mockSessionRepo) Mark(ctx context.Context, gameID, scenarioID int64) error {
	return that.Called(ctx, gameID, scenarioID).Error(0)
}
