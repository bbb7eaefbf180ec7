package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

var (
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrNoBoardSizes    = errors.New("at least one board size is required")
	ErrBadBoardSize    = errors.New("board size must be an odd perfect square of at least 9")
)

type Config struct {
	LogLevel    string  `yaml:"log-level" env:"ZOOMINGO_LOG_LEVEL" env-default:"info"`
	HTTPPort    string  `yaml:"http-port" env:"PORT" env-default:"8080"`
	StaticDir   string  `yaml:"static-dir" env:"ZOOMINGO_STATIC_DIR"`
	CatalogPath string  `yaml:"catalog-path" env:"ZOOMINGO_CATALOG_PATH"`
	Storage     Storage `yaml:"storage"`
	Redis       Redis   `yaml:"redis"`
	Board       Board   `yaml:"board"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"ZOOMINGO_STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env:"ZOOMINGO_SQLITE_PATH" env-default:"zoomingo.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"ZOOMINGO_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"ZOOMINGO_REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"ZOOMINGO_REDIS_DB" env-default:"0"`
}

type Board struct {
	Sizes []int `yaml:"sizes" env:"ZOOMINGO_BOARD_SIZES" env-default:"9,25,49,81" env-separator:","`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the optional .env file, then the YAML file at path (environment only when
// the file does not exist), and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, statErr)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Storage.Driver)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, that.LogLevel) {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	if len(that.Board.Sizes) == 0 {
		return ErrNoBoardSizes
	}

	for _, size := range that.Board.Sizes {
		if !entity.IsValidBoardSize(size) {
			return fmt.Errorf("%w: %d", ErrBadBoardSize, size)
		}
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
