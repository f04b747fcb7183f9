package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("letmein")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "letmein", hash)

	require.NoError(t, h.Compare(hash, "letmein"))
	require.Error(t, h.Compare(hash, "wrong"))
}

func TestBcryptHasherDistinctHashes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("letmein")
	require.NoError(t, err)
	h2, err := h.Hash("letmein")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "bcrypt salts each hash")
}
