package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type dbGame struct {
	conn *sql.DB
}

func NewGameRepository(conn *sql.DB) repository.GameRepository {
	return &dbGame{
		conn: conn,
	}
}

func (that *dbGame) Create(ctx context.Context) (*entity.Game, error) {
	result, err := that.conn.ExecContext(ctx, `INSERT INTO games (winner_id) VALUES (NULL)`)
	if err != nil {
		return nil, fmt.Errorf("can't create game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("can't read game id: %w", err)
	}

	return &entity.Game{ID: id}, nil
}

func (that *dbGame) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	query := `SELECT id, winner_id FROM games WHERE id = ?`

	var (
		game   entity.Game
		winner sql.NullInt64
	)

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&game.ID, &winner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", repository.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	if winner.Valid {
		game.WinnerID = winner.Int64
	}

	return &game, nil
}

func (that *dbGame) SetWinner(ctx context.Context, gameID, playerID int64) error {
	query := `UPDATE games SET winner_id = ? WHERE id = ? AND winner_id IS NULL`

	result, err := that.conn.ExecContext(ctx, query, playerID, gameID)
	if err != nil {
		return fmt.Errorf("can't set winner: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't read updated rows: %w", err)
	}

	if updated == 1 {
		return nil
	}

	if _, err = that.GetByID(ctx, gameID); err != nil {
		return err
	}

	return fmt.Errorf("%w: game %d", repository.ErrWinnerAlreadySet, gameID)
}
