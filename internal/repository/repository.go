// Package repository declares the game session store shared by the SQLite and Redis backends.
package repository

import (
	"context"
	"errors"
	"io"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrSessionNotFound  = errors.New("session not found")

	// ErrWinnerAlreadySet is returned when a game's winner was recorded before.
	ErrWinnerAlreadySet = errors.New("winner already set")
	// ErrNotMarkable is returned when a scenario is not on the board or already marked.
	ErrNotMarkable = errors.New("scenario is not markable")
)

type ScenarioRepository interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, scenarios []entity.Scenario) error

	GetFree(ctx context.Context) (*entity.Scenario, error)
	// GetByIDs returns one scenario per id, in the order requested.
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error)
	// PickRandom returns up to n distinct non-free scenarios in random order.
	PickRandom(ctx context.Context, n int) ([]entity.Scenario, error)
}

type PlayerRepository interface {
	// GetOrCreate returns the player with name, creating it on first use.
	GetOrCreate(ctx context.Context, name string) (*entity.Player, error)
	GetByID(ctx context.Context, id int64) (*entity.Player, error)
}

type GameRepository interface {
	Create(ctx context.Context) (*entity.Game, error)
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	SetWinner(ctx context.Context, gameID, playerID int64) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByGameID(ctx context.Context, gameID int64) (*entity.Session, error)
	Mark(ctx context.Context, gameID, scenarioID int64) error
}

// Store bundles the repositories of one backend with the connection they share.
type Store struct {
	Scenarios ScenarioRepository
	Players   PlayerRepository
	Games     GameRepository
	Sessions  SessionRepository

	closer io.Closer
}

func NewStore(scenarios ScenarioRepository, players PlayerRepository, games GameRepository, sessions SessionRepository, closer io.Closer) *Store {
	return &Store{
		Scenarios: scenarios,
		Players:   players,
		Games:     games,
		Sessions:  sessions,
		closer:    closer,
	}
}

func (that *Store) Close() error {
	if that.closer == nil {
		return nil
	}

	return that.closer.Close()
}
