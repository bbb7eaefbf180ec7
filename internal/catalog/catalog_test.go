package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
)

var errStoreDown = errors.New("store down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryStore struct {
	scenarios []entity.Scenario
	countErr  error
}

func (that *memoryStore) Count(context.Context) (int, error) {
	return len(that.scenarios), that.countErr
}

func (that *memoryStore) Insert(_ context.Context, scenarios []entity.Scenario) error {
	that.scenarios = append(that.scenarios, scenarios...)
	return nil
}

func TestDefault(t *testing.T) {
	// When: the embedded catalog is parsed
	catalog, err := Default()

	// Then: it is valid, the free scenario comes first and an 81-cell board can be drawn
	require.NoError(t, err)

	scenarios := catalog.Scenarios()
	require.NotEmpty(t, scenarios)
	assert.True(t, scenarios[0].Free)
	assert.Equal(t, int64(1), scenarios[0].ID)
	assert.GreaterOrEqual(t, catalog.PoolSize(), 80)
}

func TestParse(t *testing.T) {
	t.Run("Rejects a catalog without a free scenario", func(t *testing.T) {
		_, err := Parse([]byte("scenarios:\n  - text: a\n  - text: b\n"))
		assert.ErrorIs(t, err, ErrNoFreeScenario)
	})

	t.Run("Rejects a catalog with two free scenarios", func(t *testing.T) {
		_, err := Parse([]byte("scenarios:\n  - text: a\n    free: true\n  - text: b\n    free: true\n"))
		assert.ErrorIs(t, err, ErrManyFreeScenarios)
	})

	t.Run("Rejects blank and duplicated texts", func(t *testing.T) {
		_, err := Parse([]byte("scenarios:\n  - text: a\n    free: true\n  - text: '  '\n"))
		require.ErrorIs(t, err, ErrEmptyScenarioText)

		_, err = Parse([]byte("scenarios:\n  - text: a\n    free: true\n  - text: b\n  - text: b\n"))
		assert.ErrorIs(t, err, ErrDuplicateScenarioTxt)
	})

	t.Run("The free scenario is always id 1", func(t *testing.T) {
		// Given: a catalog with the free entry between two drawable ones
		catalog, err := Parse([]byte("scenarios:\n  - text: b\n  - text: ' a '\n    free: true\n  - text: c\n"))
		require.NoError(t, err)

		// When: the catalog is numbered
		scenarios := catalog.Scenarios()

		// Then: the free entry takes id 1 and the rest keep file order from 2
		assert.Equal(t, []entity.Scenario{
			{ID: 1, Text: "a", Free: true},
			{ID: 2, Text: "b"},
			{ID: 3, Text: "c"},
		}, scenarios)
	})

	t.Run("The default catalog starts with the free scenario", func(t *testing.T) {
		catalog, err := Default()
		require.NoError(t, err)

		for _, scenario := range catalog.Scenarios() {
			assert.Equal(t, scenario.ID == FreeScenarioID, scenario.Free, "id %d", scenario.ID)
		}
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - text: x\n    free: true\n"), 0o600))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Entries, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeding twice inserts the catalog once", func(t *testing.T) {
		// Given: an empty store and the default catalog
		store := &memoryStore{}
		catalog, err := Default()
		require.NoError(t, err)

		// When: the catalog is seeded twice
		first, err := Seed(ctx, discardLogger(), store, catalog)
		require.NoError(t, err)
		second, err := Seed(ctx, discardLogger(), store, catalog)
		require.NoError(t, err)

		// Then: only the first run inserts
		assert.Equal(t, len(catalog.Entries), first)
		assert.Zero(t, second)
		assert.Len(t, store.scenarios, len(catalog.Entries))
	})

	t.Run("Count failures are returned", func(t *testing.T) {
		catalog, err := Default()
		require.NoError(t, err)

		_, err = Seed(ctx, discardLogger(), &memoryStore{countErr: errStoreDown}, catalog)
		assert.ErrorIs(t, err, errStoreDown)
	})

	t.Run("Warns when the stored catalog differs", func(t *testing.T) {
		// Given: a store seeded with a smaller catalog
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		store := &memoryStore{scenarios: []entity.Scenario{{ID: 1, Text: "old", Free: true}}}
		catalog, err := Default()
		require.NoError(t, err)

		// When: the default catalog is seeded
		inserted, err := Seed(ctx, logger, store, catalog)

		// Then: nothing is inserted and the mismatch is logged
		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.Len(t, store.scenarios, 1)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "catalog changes are ignored")
	})

	t.Run("A matching store is seeded silently", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		catalog, err := Default()
		require.NoError(t, err)
		store := &memoryStore{scenarios: catalog.Scenarios()}

		_, err = Seed(ctx, logger, store, catalog)

		require.NoError(t, err)
		assert.Empty(t, logs.String())
	})
}
