package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type dbScenario struct {
	client *redis.Client
}

func NewScenarioRepository(client *redis.Client) repository.ScenarioRepository {
	return &dbScenario{
		client: client,
	}
}

func (that *dbScenario) Count(ctx context.Context) (int, error) {
	count, err := that.client.SCard(ctx, keyScenariosAll).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count scenarios: %w", err)
	}

	return int(count), nil
}

func (that *dbScenario) Insert(ctx context.Context, scenarios []entity.Scenario) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, scenario := range scenarios {
			pipe.HSet(ctx, scenarioKey(scenario.ID), fieldText, scenario.Text, fieldFree, scenario.Free)
			pipe.SAdd(ctx, keyScenariosAll, scenario.ID)

			if scenario.Free {
				pipe.Set(ctx, keyScenarioFree, scenario.ID, 0)
			} else {
				pipe.SAdd(ctx, keyScenariosPool, scenario.ID)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert scenarios: %w", err)
	}

	return nil
}

func (that *dbScenario) GetFree(ctx context.Context) (*entity.Scenario, error) {
	id, err := that.client.Get(ctx, keyScenarioFree).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: free scenario", repository.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get free scenario: %w", err)
	}

	scenarios, err := that.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	return &scenarios[0], nil
}

func (that *dbScenario) GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error) {
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))

	_, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			cmds = append(cmds, pipe.HGetAll(ctx, scenarioKey(id)))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scenarios: %w", err)
	}

	scenarios := make([]entity.Scenario, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: id %d", repository.ErrScenarioNotFound, ids[i])
		}

		scenarios = append(scenarios, entity.Scenario{
			ID:   ids[i],
			Text: fields[fieldText],
			Free: fields[fieldFree] == "1",
		})
	}

	return scenarios, nil
}

func (that *dbScenario) PickRandom(ctx context.Context, n int) ([]entity.Scenario, error) {
	members, err := that.client.SRandMemberN(ctx, keyScenariosPool, int64(n)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to pick scenarios: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := parseID(member)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scenario id %q: %w", member, err)
		}
		ids = append(ids, id)
	}

	return that.GetByIDs(ctx, ids)
}
