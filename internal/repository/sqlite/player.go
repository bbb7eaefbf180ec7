package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type dbPlayer struct {
	conn *sql.DB
}

func NewPlayerRepository(conn *sql.DB) repository.PlayerRepository {
	return &dbPlayer{
		conn: conn,
	}
}

func (that *dbPlayer) GetOrCreate(ctx context.Context, name string) (*entity.Player, error) {
	insert := `INSERT INTO players (name) VALUES (?) ON CONFLICT (name) DO NOTHING`
	if _, err := that.conn.ExecContext(ctx, insert, name); err != nil {
		return nil, fmt.Errorf("can't save player: %w", err)
	}

	player := entity.Player{Name: name}

	err := that.conn.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, name).Scan(&player.ID)
	if err != nil {
		return nil, fmt.Errorf("can't find player %q: %w", name, err)
	}

	return &player, nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id int64) (*entity.Player, error) {
	query := `SELECT id, name FROM players WHERE id = ?`

	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&player.ID, &player.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", repository.ErrPlayerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}
