package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

// setWinner returns -1 for a missing game, 0 when a winner is already set and 1 on success.
var setWinner = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
`)

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) repository.GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Create(ctx context.Context) (*entity.Game, error) {
	id, err := that.client.Incr(ctx, keyGameSeq).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate game id: %w", err)
	}

	if err = that.client.HSet(ctx, gameKey(id), fieldID, id).Err(); err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	return &entity.Game{ID: id}, nil
}

func (that *dbGame) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	fields, err := that.client.HGetAll(ctx, gameKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: id %d", repository.ErrGameNotFound, id)
	}

	game := entity.Game{ID: id}

	if raw, ok := fields[fieldWinnerID]; ok {
		if game.WinnerID, err = parseID(raw); err != nil {
			return nil, fmt.Errorf("failed to parse winner of game %d: %w", id, err)
		}
	}

	return &game, nil
}

func (that *dbGame) SetWinner(ctx context.Context, gameID, playerID int64) error {
	result, err := setWinner.Run(ctx, that.client, []string{gameKey(gameID)}, fieldWinnerID, playerID).Int64()
	if err != nil {
		return fmt.Errorf("failed to set winner: %w", err)
	}

	switch result {
	case -1:
		return fmt.Errorf("%w: id %d", repository.ErrGameNotFound, gameID)
	case 0:
		return fmt.Errorf("%w: game %d", repository.ErrWinnerAlreadySet, gameID)
	default:
		return nil
	}
}
