package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) repository.PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func (that *dbPlayer) GetOrCreate(ctx context.Context, name string) (*entity.Player, error) {
	id, err := that.client.HGet(ctx, keyPlayersByName, name).Int64()
	if err == nil {
		return &entity.Player{ID: id, Name: name}, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to find player by name: %w", err)
	}

	id, err = that.client.Incr(ctx, keyPlayerSeq).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate player id: %w", err)
	}

	claimed, err := that.client.HSetNX(ctx, keyPlayersByName, name, id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to claim player name: %w", err)
	}

	// someone registered the name between HGET and HSETNX.
	if !claimed {
		id, err = that.client.HGet(ctx, keyPlayersByName, name).Int64()
		if err != nil {
			return nil, fmt.Errorf("failed to find player by name: %w", err)
		}

		return &entity.Player{ID: id, Name: name}, nil
	}

	if err = that.client.HSet(ctx, playerKey(id), fieldName, name).Err(); err != nil {
		return nil, fmt.Errorf("failed to set player: %w", err)
	}

	return &entity.Player{ID: id, Name: name}, nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id int64) (*entity.Player, error) {
	name, err := that.client.HGet(ctx, playerKey(id), fieldName).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: id %d", repository.ErrPlayerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	return &entity.Player{ID: id, Name: name}, nil
}
