package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type dbScenario struct {
	conn *sql.DB
}

func NewScenarioRepository(conn *sql.DB) repository.ScenarioRepository {
	return &dbScenario{
		conn: conn,
	}
}

func (that *dbScenario) Count(ctx context.Context) (int, error) {
	var count int
	if err := that.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenarios`).Scan(&count); err != nil {
		return 0, fmt.Errorf("can't count scenarios: %w", err)
	}

	return count, nil
}

func (that *dbScenario) Insert(ctx context.Context, scenarios []entity.Scenario) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	query := `INSERT INTO scenarios (id, text, free) VALUES (?, ?, ?)`
	for _, scenario := range scenarios {
		if _, err = tx.ExecContext(ctx, query, scenario.ID, scenario.Text, scenario.Free); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("can't insert scenario %d: %w", scenario.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit scenarios: %w", err)
	}

	return nil
}

func (that *dbScenario) GetFree(ctx context.Context) (*entity.Scenario, error) {
	query := `SELECT id, text, free FROM scenarios WHERE free = 1`

	var scenario entity.Scenario

	err := that.conn.QueryRowContext(ctx, query).Scan(&scenario.ID, &scenario.Text, &scenario.Free)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: free scenario", repository.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("can't get free scenario: %w", err)
	}

	return &scenario, nil
}

func (that *dbScenario) GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error) {
	if len(ids) == 0 {
		return []entity.Scenario{}, nil
	}

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	query := `SELECT id, text, free FROM scenarios WHERE id IN (?` + strings.Repeat(", ?", len(ids)-1) + `)`

	rows, err := that.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't get scenarios: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]entity.Scenario, len(ids))
	for rows.Next() {
		var scenario entity.Scenario
		if err = rows.Scan(&scenario.ID, &scenario.Text, &scenario.Free); err != nil {
			return nil, fmt.Errorf("can't scan scenario: %w", err)
		}
		found[scenario.ID] = scenario
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read scenarios: %w", err)
	}

	scenarios := make([]entity.Scenario, 0, len(ids))
	for _, id := range ids {
		scenario, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", repository.ErrScenarioNotFound, id)
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, nil
}

func (that *dbScenario) PickRandom(ctx context.Context, n int) ([]entity.Scenario, error) {
	query := `SELECT id, text, free FROM scenarios WHERE free = 0 ORDER BY random() LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("can't pick scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := make([]entity.Scenario, 0, n)
	for rows.Next() {
		var scenario entity.Scenario
		if err = rows.Scan(&scenario.ID, &scenario.Text, &scenario.Free); err != nil {
			return nil, fmt.Errorf("can't scan scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read scenarios: %w", err)
	}

	return scenarios, nil
}
