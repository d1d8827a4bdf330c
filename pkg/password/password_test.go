package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/pkg/password"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("Should verify the original password", func(t *testing.T) {
		hash, err := password.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, password.Verify("correct horse battery staple", hash))
	})

	t.Run("Should return ErrMismatch for a wrong password", func(t *testing.T) {
		hash, err := password.Hash("correct horse battery staple")
		require.NoError(t, err)

		err = password.Verify("wrong password", hash)
		assert.ErrorIs(t, err, password.ErrMismatch)
	})

	t.Run("Should produce distinct hashes for the same input", func(t *testing.T) {
		first, err := password.Hash("same input")
		require.NoError(t, err)
		second, err := password.Hash("same input")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
