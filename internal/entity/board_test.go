package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawScenarios(n int) []Scenario {
	drawn := make([]Scenario, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 2)
		drawn = append(drawn, Scenario{ID: id, Text: "scenario"})
	}

	return drawn
}

func TestIsValidBoardSize(t *testing.T) {
	for _, size := range []int{9, 25, 49, 81, 121} {
		assert.True(t, IsValidBoardSize(size), "size %d", size)
	}

	for _, size := range []int{-9, 0, 1, 4, 8, 10, 16, 36, 50} {
		assert.False(t, IsValidBoardSize(size), "size %d", size)
	}
}

func TestBoardSide(t *testing.T) {
	assert.Equal(t, 3, BoardSide(9))
	assert.Equal(t, 4, BoardSide(16))
	assert.Equal(t, 0, BoardSide(10))
	assert.Equal(t, 0, BoardSide(0))
}

func TestBuildBoard(t *testing.T) {
	free := Scenario{ID: 1, Text: "free space", Free: true}

	t.Run("Free scenario lands in the center for every size", func(t *testing.T) {
		for _, size := range []int{9, 25, 49, 81} {
			// Given: size-1 distinct non-free scenarios
			drawn := drawScenarios(size - 1)

			// When: the board is built
			board, err := BuildBoard(free, drawn)

			// Then: the free scenario is at the center and the rest keep their draw order
			require.NoError(t, err)
			require.Len(t, board, size)
			assert.Equal(t, free, board[CenterIndex(size)])

			seen := make(map[int64]bool, size)
			for i, scenario := range board {
				assert.False(t, seen[scenario.ID], "duplicate id %d", scenario.ID)
				seen[scenario.ID] = true

				if i != CenterIndex(size) {
					assert.Greater(t, scenario.ID, int64(1))
				}
			}
		}
	})

	t.Run("Rejects a scenario that is not flagged free", func(t *testing.T) {
		// Given: a center scenario without the free flag
		notFree := Scenario{ID: 1, Text: "free space"}

		// When: the board is built
		_, err := BuildBoard(notFree, drawScenarios(8))

		// Then: ErrFreeScenarioRequired is returned
		assert.ErrorIs(t, err, ErrFreeScenarioRequired)
	})

	t.Run("Rejects a draw that does not fill a square board", func(t *testing.T) {
		// When: seven scenarios are drawn for a board
		_, err := BuildBoard(free, drawScenarios(7))

		// Then: ErrBoardSizeMismatch is returned
		assert.ErrorIs(t, err, ErrBoardSizeMismatch)
	})

	t.Run("Rejects duplicate scenarios", func(t *testing.T) {
		// Given: a draw containing the same scenario twice
		drawn := drawScenarios(8)
		drawn[7] = drawn[0]

		// When: the board is built
		_, err := BuildBoard(free, drawn)

		// Then: ErrDuplicateScenario is returned
		assert.ErrorIs(t, err, ErrDuplicateScenario)
	})
}
