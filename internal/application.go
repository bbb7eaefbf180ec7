package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"slices"
	"syscall"

	"github.com/rocketscienceinc/zoomingo-backend/internal/catalog"
	"github.com/rocketscienceinc/zoomingo-backend/internal/config"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
	redisrepo "github.com/rocketscienceinc/zoomingo-backend/internal/repository/redis"
	sqliterepo "github.com/rocketscienceinc/zoomingo-backend/internal/repository/sqlite"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository/storage"
	"github.com/rocketscienceinc/zoomingo-backend/internal/usecase"
	"github.com/rocketscienceinc/zoomingo-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := OpenStore(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = store.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	if _, err = SeedCatalog(ctx, logger, conf, store); err != nil {
		return err
	}

	gameManager := usecase.NewGameManager(
		logger,
		usecase.NewScenarioCatalog(store.Scenarios),
		store.Players,
		store.Games,
		store.Sessions,
		conf.Board.Sizes,
	)

	server := rest.New(logger, gameManager, conf.StaticDir)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage.Driver)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// OpenStore connects to the configured backend.
func OpenStore(ctx context.Context, conf *config.Config) (*repository.Store, error) {
	switch conf.Storage.Driver {
	case config.DriverRedis:
		addr := conf.Redis.GetRedisAddr()
		if addr == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, addr, conf.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return redisrepo.NewStore(redisStorage), nil
	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		return sqliterepo.NewStore(sqliteStorage), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, conf.Storage.Driver)
	}
}

// SeedCatalog loads the scenario catalog into an empty store.
func SeedCatalog(ctx context.Context, logger *slog.Logger, conf *config.Config, store *repository.Store) (int, error) {
	log := logger.With("component", "app", "method", "SeedCatalog")

	scenarios, err := catalog.Load(conf.CatalogPath)
	if err != nil {
		return 0, fmt.Errorf("could not load scenario catalog: %w", err)
	}

	if largest := slices.Max(conf.Board.Sizes); scenarios.PoolSize() < largest-1 {
		log.Warn("catalog too small for the largest board", "pool", scenarios.PoolSize(), "size", largest)
	}

	inserted, err := catalog.Seed(ctx, logger, store.Scenarios, scenarios)
	if err != nil {
		return 0, fmt.Errorf("could not seed scenario catalog: %w", err)
	}

	log.Info("scenario catalog ready", "inserted", inserted)

	return inserted, nil
}
