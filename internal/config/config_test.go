package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the YAML file and fills defaults", func(t *testing.T) {
		// Given: a config file overriding only some keys
		path := writeConfig(t, `
log-level: debug
http-port: "9191"
storage:
  driver: redis
redis:
  host: cache
board:
  sizes: [9, 25]
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: file values win and the rest comes from defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9191", conf.HTTPPort)
		assert.Equal(t, DriverRedis, conf.Storage.Driver)
		assert.Equal(t, "zoomingo.db", conf.Storage.SQLitePath)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, []int{9, 25}, conf.Board.Sizes)
	})

	t.Run("Falls back to the environment when the file is missing", func(t *testing.T) {
		// Given: no config file and a port in the environment
		t.Setenv("PORT", "7070")

		// When: the config is loaded
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults and environment are used
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, DriverSQLite, conf.Storage.Driver)
		assert.Equal(t, []int{9, 25, 49, 81}, conf.Board.Sizes)
	})

	t.Run("Rejects an invalid board size", func(t *testing.T) {
		path := writeConfig(t, "board:\n  sizes: [9, 16]\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrBadBoardSize)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel: "info",
			Storage:  Storage{Driver: DriverSQLite},
			Board:    Board{Sizes: []int{9}},
		}
	}

	assert.NoError(t, valid().Validate())

	conf := valid()
	conf.Storage.Driver = "postgres"
	assert.ErrorIs(t, conf.Validate(), ErrUnknownDriver)

	conf = valid()
	conf.LogLevel = "trace"
	assert.ErrorIs(t, conf.Validate(), ErrUnknownLogLevel)

	conf = valid()
	conf.Board.Sizes = nil
	assert.ErrorIs(t, conf.Validate(), ErrNoBoardSizes)
}

func TestLoad_ShippedConfig(t *testing.T) {
	// When: the config file shipped at the repository root is loaded
	conf, err := Load(filepath.Join("..", "..", "config.yml"))

	// Then: it is valid and serves the API without a static directory
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, conf.Storage.Driver)
	assert.Empty(t, conf.StaticDir)
	assert.Equal(t, []int{9, 25, 49, 81}, conf.Board.Sizes)
}
