package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

// dbSession keeps the board as one row per cell in session_scenarios.
type dbSession struct {
	conn *sql.DB
}

func NewSessionRepository(conn *sql.DB) repository.SessionRepository {
	return &dbSession{
		conn: conn,
	}
}

func (that *dbSession) Create(ctx context.Context, session *entity.Session) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (game_id, player_id) VALUES (?, ?)`,
		session.GameID, session.PlayerID,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("can't save session: %w", err)
	}

	cell := `INSERT INTO session_scenarios (game_id, position, scenario_id, marked) VALUES (?, ?, ?, ?)`
	for position, scenarioID := range session.Offered {
		if _, err = tx.ExecContext(ctx, cell, session.GameID, position, scenarioID, session.IsMarked(scenarioID)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("can't save board cell %d: %w", position, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByGameID(ctx context.Context, gameID int64) (*entity.Session, error) {
	session := entity.Session{
		GameID:  gameID,
		Offered: []int64{},
		Marked:  []int64{},
	}

	err := that.conn.QueryRowContext(ctx, `SELECT player_id FROM sessions WHERE game_id = ?`, gameID).Scan(&session.PlayerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: game %d", repository.ErrSessionNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find session: %w", err)
	}

	query := `SELECT scenario_id, marked FROM session_scenarios WHERE game_id = ? ORDER BY position`

	rows, err := that.conn.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("can't read board: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			scenarioID int64
			marked     bool
		)
		if err = rows.Scan(&scenarioID, &marked); err != nil {
			return nil, fmt.Errorf("can't scan board cell: %w", err)
		}

		session.Offered = append(session.Offered, scenarioID)
		if marked {
			session.Marked = append(session.Marked, scenarioID)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read board: %w", err)
	}

	return &session, nil
}

func (that *dbSession) Mark(ctx context.Context, gameID, scenarioID int64) error {
	query := `UPDATE session_scenarios SET marked = 1 WHERE game_id = ? AND scenario_id = ? AND marked = 0`

	result, err := that.conn.ExecContext(ctx, query, gameID, scenarioID)
	if err != nil {
		return fmt.Errorf("can't mark scenario: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't read updated rows: %w", err)
	}

	if updated == 0 {
		return fmt.Errorf("%w: scenario %d in game %d", repository.ErrNotMarkable, scenarioID, gameID)
	}

	return nil
}
