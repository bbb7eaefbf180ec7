package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/rocketscienceinc/zoomingo-backend/internal/apperror"
	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

type boardCatalog interface {
	DrawBoard(ctx context.Context, size int) ([]entity.Scenario, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Scenario, error)
}

type playerRepo interface {
	GetOrCreate(ctx context.Context, name string) (*entity.Player, error)
	GetByID(ctx context.Context, id int64) (*entity.Player, error)
}

type gameRepo interface {
	Create(ctx context.Context) (*entity.Game, error)
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	SetWinner(ctx context.Context, gameID, playerID int64) error
}

type sessionRepo interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByGameID(ctx context.Context, gameID int64) (*entity.Session, error)
	Mark(ctx context.Context, gameID, scenarioID int64) error
}

// PlayerGame is a player's view of one game: the board and what is marked on it.
type PlayerGame struct {
	GameID   int64
	Player   entity.Player
	Board    []entity.Scenario
	Selected []int64
}

// GameManager runs the game lifecycle. Operations are serialized, so a resume
// or win check never observes a half-applied selection.
type GameManager struct {
	mu     sync.Mutex
	logger *slog.Logger

	catalog     boardCatalog
	playerRepo  playerRepo
	gameRepo    gameRepo
	sessionRepo sessionRepo

	boardSizes []int
}

func NewGameManager(
	logger *slog.Logger,
	catalog boardCatalog,
	playerRepo playerRepo,
	gameRepo gameRepo,
	sessionRepo sessionRepo,
	boardSizes []int,
) *GameManager {
	return &GameManager{
		logger: logger,

		catalog:     catalog,
		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		sessionRepo: sessionRepo,

		boardSizes: boardSizes,
	}
}

func (that *GameManager) NewGame(ctx context.Context, name string, size int) (*PlayerGame, error) {
	log := that.logger.With("method", "NewGame")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(apperror.ErrInvalidName, "Missing player name.")
	}

	if !slices.Contains(that.boardSizes, size) {
		return nil, apperror.New(apperror.ErrInvalidBoardSize, "Unsupported board size: %d", size)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	board, err := that.catalog.DrawBoard(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to draw board: %w", err)
	}

	player, err := that.playerRepo.GetOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	game, err := that.gameRepo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	session := entity.NewSession(game.ID, player.ID, board)
	if err = that.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("game created", "game_id", game.ID, "player_id", player.ID, "size", size)

	return &PlayerGame{
		GameID:   game.ID,
		Player:   *player,
		Board:    board,
		Selected: session.Marked,
	}, nil
}

func (that *GameManager) SelectScenario(ctx context.Context, gameID, scenarioID int64) error {
	log := that.logger.With("method", "SelectScenario")

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return err
	}

	if err = game.ConfirmUndecided(); err != nil {
		return err
	}

	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return err
	}

	if err = session.Mark(scenarioID); err != nil {
		return err
	}

	if err = that.sessionRepo.Mark(ctx, gameID, scenarioID); err != nil {
		if errors.Is(err, repository.ErrNotMarkable) {
			return apperror.New(apperror.ErrCannotSelect, "Could not select scenario ID: %d", scenarioID)
		}

		return fmt.Errorf("failed to mark scenario: %w", err)
	}

	log.Debug("scenario selected", "game_id", gameID, "scenario_id", scenarioID)

	return nil
}

// CheckWin records the session owner as winner once enough scenarios are marked.
// It returns a nil player while the game is still open.
func (that *GameManager) CheckWin(ctx context.Context, gameID int64) (*entity.Player, error) {
	log := that.logger.With("method", "CheckWin")

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmUndecided(); err != nil {
		return nil, err
	}

	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !session.HasBingo() {
		return nil, nil //nolint:nilnil // no winner yet
	}

	if err = game.DeclareWinner(session.PlayerID); err != nil {
		return nil, err
	}

	if err = that.gameRepo.SetWinner(ctx, gameID, session.PlayerID); err != nil {
		if errors.Is(err, repository.ErrWinnerAlreadySet) {
			return nil, entity.ErrAlreadyWon
		}

		return nil, fmt.Errorf("failed to set winner: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, session.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winner: %w", err)
	}

	log.Info("game won", "game_id", gameID, "player_id", player.ID, "marked", len(session.Marked))

	return player, nil
}

func (that *GameManager) ResumeGame(ctx context.Context, gameID, playerID int64) (*PlayerGame, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.getSession(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !session.OwnedBy(playerID) {
		return nil, apperror.New(apperror.ErrNotGameMember,
			"Cannot resume game: Player %d was not part of game %d", playerID, gameID)
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	board, err := that.catalog.GetByIDs(ctx, session.Offered)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return &PlayerGame{
		GameID:   gameID,
		Player:   *player,
		Board:    board,
		Selected: session.Marked,
	}, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id int64) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) getSession(ctx context.Context, gameID int64) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}
