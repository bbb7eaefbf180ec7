// Package repositorytest holds the behaviour every repository.Store backend must share.
package repositorytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/repository"
)

// StoreFactory returns an empty store for one subtest.
type StoreFactory func(t *testing.T) (context.Context, *repository.Store)

// Scenarios is a small catalog: the free scenario plus twelve drawable ones.
func Scenarios() []entity.Scenario {
	scenarios := []entity.Scenario{{ID: 1, Text: "free space", Free: true}}
	for i := int64(2); i <= 13; i++ {
		scenarios = append(scenarios, entity.Scenario{ID: i, Text: "scenario " + string(rune('a'+i))})
	}

	return scenarios
}

func seeded(t *testing.T, newStore StoreFactory) (context.Context, *repository.Store) {
	t.Helper()

	ctx, store := newStore(t)
	require.NoError(t, store.Scenarios.Insert(ctx, Scenarios()))

	return ctx, store
}

func Run(t *testing.T, newStore StoreFactory) {
	t.Run("Scenarios", func(t *testing.T) { testScenarios(t, newStore) })
	t.Run("Players", func(t *testing.T) { testPlayers(t, newStore) })
	t.Run("Games", func(t *testing.T) { testGames(t, newStore) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newStore) })
}

func testScenarios(t *testing.T, newStore StoreFactory) {
	t.Run("Count_Empty", func(t *testing.T) {
		ctx, store := newStore(t)

		count, err := store.Scenarios.Count(ctx)

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("GetFree_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		_, err := store.Scenarios.GetFree(ctx)

		assert.ErrorIs(t, err, repository.ErrScenarioNotFound)
	})

	t.Run("Insert_And_GetFree", func(t *testing.T) {
		// Given: a seeded catalog
		ctx, store := seeded(t, newStore)

		// When: the free scenario is requested
		free, err := store.Scenarios.GetFree(ctx)

		// Then: it is the flagged one
		require.NoError(t, err)
		assert.Equal(t, entity.Scenario{ID: 1, Text: "free space", Free: true}, *free)

		count, err := store.Scenarios.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(Scenarios()), count)
	})

	t.Run("GetByIDs_KeepsRequestOrder", func(t *testing.T) {
		ctx, store := seeded(t, newStore)

		scenarios, err := store.Scenarios.GetByIDs(ctx, []int64{5, 1, 3})

		require.NoError(t, err)
		assert.Equal(t, []int64{5, 1, 3}, entity.ScenarioIDs(scenarios))
		assert.True(t, scenarios[1].Free)
	})

	t.Run("GetByIDs_MissingID", func(t *testing.T) {
		ctx, store := seeded(t, newStore)

		_, err := store.Scenarios.GetByIDs(ctx, []int64{2, 999})

		assert.ErrorIs(t, err, repository.ErrScenarioNotFound)
	})

	t.Run("PickRandom_DistinctNonFree", func(t *testing.T) {
		// Given: a seeded catalog with twelve drawable scenarios
		ctx, store := seeded(t, newStore)

		// When: eight scenarios are drawn
		scenarios, err := store.Scenarios.PickRandom(ctx, 8)

		// Then: they are distinct and never the free one
		require.NoError(t, err)
		require.Len(t, scenarios, 8)

		seen := make(map[int64]bool)
		for _, scenario := range scenarios {
			assert.False(t, scenario.Free)
			assert.Greater(t, scenario.ID, int64(1))
			assert.False(t, seen[scenario.ID])
			seen[scenario.ID] = true
		}
	})

	t.Run("PickRandom_SmallPool", func(t *testing.T) {
		ctx, store := seeded(t, newStore)

		scenarios, err := store.Scenarios.PickRandom(ctx, 24)

		require.NoError(t, err)
		assert.Len(t, scenarios, len(Scenarios())-1)
	})
}

func testPlayers(t *testing.T, newStore StoreFactory) {
	t.Run("GetOrCreate_ReusesName", func(t *testing.T) {
		// Given: an empty store
		ctx, store := newStore(t)

		// When: the same name is registered twice and another name once
		alice, err := store.Players.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		again, err := store.Players.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		bob, err := store.Players.GetOrCreate(ctx, "Bob")
		require.NoError(t, err)

		// Then: the name maps to a single id
		assert.Equal(t, alice.ID, again.ID)
		assert.NotEqual(t, alice.ID, bob.ID)
		assert.Equal(t, "Alice", again.Name)
	})

	t.Run("GetByID", func(t *testing.T) {
		ctx, store := newStore(t)

		created, err := store.Players.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)

		found, err := store.Players.GetByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		player, err := store.Players.GetByID(ctx, 9999999)

		require.ErrorIs(t, err, repository.ErrPlayerNotFound)
		assert.Nil(t, player)
	})
}

func testGames(t *testing.T, newStore StoreFactory) {
	t.Run("Create_WithoutWinner", func(t *testing.T) {
		ctx, store := newStore(t)

		first, err := store.Games.Create(ctx)
		require.NoError(t, err)
		second, err := store.Games.Create(ctx)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)

		found, err := store.Games.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, found.HasWinner())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		_, err := store.Games.GetByID(ctx, 9999999)

		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("SetWinner_Once", func(t *testing.T) {
		// Given: a game and two players
		ctx, store := newStore(t)

		game, err := store.Games.Create(ctx)
		require.NoError(t, err)
		alice, err := store.Players.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)
		bob, err := store.Players.GetOrCreate(ctx, "Bob")
		require.NoError(t, err)

		// When: both try to become the winner
		require.NoError(t, store.Games.SetWinner(ctx, game.ID, alice.ID))
		err = store.Games.SetWinner(ctx, game.ID, bob.ID)

		// Then: the first winner stays
		require.ErrorIs(t, err, repository.ErrWinnerAlreadySet)

		found, err := store.Games.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, found.WinnerID)
	})

	t.Run("SetWinner_UnknownGame", func(t *testing.T) {
		ctx, store := newStore(t)

		alice, err := store.Players.GetOrCreate(ctx, "Alice")
		require.NoError(t, err)

		err = store.Games.SetWinner(ctx, 9999999, alice.ID)

		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})
}

func newSession(t *testing.T, ctx context.Context, store *repository.Store) *entity.Session {
	t.Helper()

	game, err := store.Games.Create(ctx)
	require.NoError(t, err)
	player, err := store.Players.GetOrCreate(ctx, "Alice")
	require.NoError(t, err)

	board, err := store.Scenarios.GetByIDs(ctx, []int64{9, 8, 7, 6, 1, 5, 4, 3, 2})
	require.NoError(t, err)

	session := entity.NewSession(game.ID, player.ID, board)
	require.NoError(t, store.Sessions.Create(ctx, session))

	return session
}

func testSessions(t *testing.T, newStore StoreFactory) {
	t.Run("Create_And_GetByGameID", func(t *testing.T) {
		// Given: a stored session
		ctx, store := seeded(t, newStore)
		session := newSession(t, ctx, store)

		// When: it is read back
		found, err := store.Sessions.GetByGameID(ctx, session.GameID)

		// Then: the board order and owner survive, nothing is marked
		require.NoError(t, err)
		assert.Equal(t, session.PlayerID, found.PlayerID)
		assert.Equal(t, []int64{9, 8, 7, 6, 1, 5, 4, 3, 2}, found.Offered)
		assert.Empty(t, found.Marked)
	})

	t.Run("GetByGameID_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		_, err := store.Sessions.GetByGameID(ctx, 9999999)

		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("Mark_OnceAndOnlyOffered", func(t *testing.T) {
		// Given: a stored session
		ctx, store := seeded(t, newStore)
		session := newSession(t, ctx, store)

		// When: one scenario is marked twice and an unknown one once
		require.NoError(t, store.Sessions.Mark(ctx, session.GameID, 4))
		require.NoError(t, store.Sessions.Mark(ctx, session.GameID, 8))
		errAgain := store.Sessions.Mark(ctx, session.GameID, 4)
		errUnknown := store.Sessions.Mark(ctx, session.GameID, 12)

		// Then: only the first marks land, reported in board order
		require.ErrorIs(t, errAgain, repository.ErrNotMarkable)
		require.ErrorIs(t, errUnknown, repository.ErrNotMarkable)

		found, err := store.Sessions.GetByGameID(ctx, session.GameID)
		require.NoError(t, err)
		assert.Equal(t, []int64{8, 4}, found.Marked)
	})
}
