package cryptox_test

import (
	"strings"
	"testing"

	"github.com/kamelin22/user-api/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestArgon2id(t *testing.T) {
	t.Parallel()

	var h cryptox.Argon2id

	t.Run("hash then verify roundtrip", func(t *testing.T) {
		t.Parallel()

		encoded, err := h.Hash("s3cret")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

		require.NoError(t, h.Verify("s3cret", encoded))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()

		encoded, err := h.Hash("s3cret")
		require.NoError(t, err)

		require.ErrorIs(t, h.Verify("wrong", encoded), cryptox.ErrMismatch)
	})

	t.Run("salts are unique per hash", func(t *testing.T) {
		t.Parallel()

		a, err := h.Hash("same-password")
		require.NoError(t, err)
		b, err := h.Hash("same-password")
		require.NoError(t, err)

		require.NotEqual(t, a, b)
	})

	t.Run("rejects malformed stored hashes", func(t *testing.T) {
		t.Parallel()

		for _, encoded := range []string{
			"",
			"plaintext",
			"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
			"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		} {
			err := h.Verify("anything", encoded)
			require.Error(t, err)
			require.NotErrorIs(t, err, cryptox.ErrMismatch)
		}
	})
}
