package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, h.Verify("s3cret-pass", hash))
	require.False(t, h.Verify("wrong-pass", hash))
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	h := NewPasswordHasher()

	h1, err := h.Hash("same-password")
	require.NoError(t, err)
	h2, err := h.Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, h.Verify("same-password", h1))
	require.True(t, h.Verify("same-password", h2))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher()
	require.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	require.False(t, h.Verify("anything", ""))
}
