package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

var ErrNotEnoughScenarios = errors.New("not enough scenarios in the pool")

type scenarioRepo interface {
	GetFree(ctx context.Context) (*entity.Scenario, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error)
	PickRandom(ctx context.Context, n int) ([]entity.Scenario, error)
}

// ScenarioCatalog draws board contents from the scenario repository.
type ScenarioCatalog struct {
	repo scenarioRepo
}

func NewScenarioCatalog(repo scenarioRepo) *ScenarioCatalog {
	return &ScenarioCatalog{
		repo: repo,
	}
}

// PickRandom returns n distinct non-free scenarios.
func (that *ScenarioCatalog) PickRandom(ctx context.Context, n int) ([]entity.Scenario, error) {
	scenarios, err := that.repo.PickRandom(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to pick scenarios: %w", err)
	}

	if len(scenarios) < n {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughScenarios, n, len(scenarios))
	}

	return scenarios, nil
}

func (that *ScenarioCatalog) GetFree(ctx context.Context) (*entity.Scenario, error) {
	free, err := that.repo.GetFree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get free scenario: %w", err)
	}

	return free, nil
}

func (that *ScenarioCatalog) GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error) {
	scenarios, err := that.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenarios by ids: %w", err)
	}

	return scenarios, nil
}

// DrawBoard picks size-1 scenarios and lays them out around the free one.
func (that *ScenarioCatalog) DrawBoard(ctx context.Context, size int) ([]entity.Scenario, error) {
	free, err := that.GetFree(ctx)
	if err != nil {
		return nil, err
	}

	drawn, err := that.PickRandom(ctx, size-1)
	if err != nil {
		return nil, err
	}

	board, err := entity.BuildBoard(*free, drawn)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	return board, nil
}
