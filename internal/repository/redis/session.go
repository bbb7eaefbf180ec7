package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

// markScenario returns -1 for a missing session, 0 when the scenario is not
// on the board or already marked and 1 when it was marked.
var markScenario = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
for _, id in ipairs(redis.call('LRANGE', KEYS[1], 0, -1)) do
	if id == ARGV[1] then
		return redis.call('SADD', KEYS[2], ARGV[1])
	end
end
return 0
`)

// dbSession stores the owner in a hash, the board in a list and the marks in a set.
type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Create(ctx context.Context, session *entity.Session) error {
	offered := make([]any, 0, len(session.Offered))
	for _, id := range session.Offered {
		offered = append(offered, id)
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, sessionKey(session.GameID), fieldPlayerID, session.PlayerID)
		pipe.RPush(ctx, sessionOfferedKey(session.GameID), offered...)

		for _, id := range session.Marked {
			pipe.SAdd(ctx, sessionMarkedKey(session.GameID), id)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByGameID(ctx context.Context, gameID int64) (*entity.Session, error) {
	playerID, err := that.client.HGet(ctx, sessionKey(gameID), fieldPlayerID).Int64()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: game %d", repository.ErrSessionNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var (
		offeredCmd *redis.StringSliceCmd
		markedCmd  *redis.StringSliceCmd
	)

	_, err = that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		offeredCmd = pipe.LRange(ctx, sessionOfferedKey(gameID), 0, -1)
		markedCmd = pipe.SMembers(ctx, sessionMarkedKey(gameID))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	marked := make(map[string]struct{}, len(markedCmd.Val()))
	for _, member := range markedCmd.Val() {
		marked[member] = struct{}{}
	}

	session := entity.Session{
		GameID:   gameID,
		PlayerID: playerID,
		Offered:  make([]int64, 0, len(offeredCmd.Val())),
		Marked:   make([]int64, 0, len(marked)),
	}

	// marks are reported in board order.
	for _, raw := range offeredCmd.Val() {
		id, err := parseID(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scenario id %q: %w", raw, err)
		}

		session.Offered = append(session.Offered, id)
		if _, ok := marked[raw]; ok {
			session.Marked = append(session.Marked, id)
		}
	}

	return &session, nil
}

func (that *dbSession) Mark(ctx context.Context, gameID, scenarioID int64) error {
	keys := []string{sessionOfferedKey(gameID), sessionMarkedKey(gameID)}

	result, err := markScenario.Run(ctx, that.client, keys, scenarioID).Int64()
	if err != nil {
		return fmt.Errorf("failed to mark scenario: %w", err)
	}

	switch result {
	case -1:
		return fmt.Errorf("%w: game %d", repository.ErrSessionNotFound, gameID)
	case 0:
		return fmt.Errorf("%w: scenario %d in game %d", repository.ErrNotMarkable, scenarioID, gameID)
	default:
		return nil
	}
}
