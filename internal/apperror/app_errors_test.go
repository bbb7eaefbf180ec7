package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsClient(t *testing.T) {
	t.Run("Finds a client error through wrapping", func(t *testing.T) {
		// Given: a client error wrapped by two layers
		err := fmt.Errorf("failed to select: %w", fmt.Errorf("usecase: %w", New(ErrCannotSelect, "Could not select scenario ID: %d", 7)))

		// When: looking for the client error
		clientErr, ok := AsClient(err)

		// Then: the message is available and the kind matches
		require.True(t, ok)
		assert.Equal(t, "Could not select scenario ID: 7", clientErr.Message)
		assert.ErrorIs(t, err, ErrCannotSelect)
	})

	t.Run("Plain errors are not client errors", func(t *testing.T) {
		// Given: a storage failure
		err := fmt.Errorf("failed to get game: %w", errors.New("disk I/O error"))

		// When: looking for a client error
		_, ok := AsClient(err)

		// Then: nothing is found
		assert.False(t, ok)
	})
}
