package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := BcryptHasher{}

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, hasher.Verify(hash, "correct horse battery staple"))
	assert.False(t, hasher.Verify(hash, "wrong password"))
}

func TestBcryptSaltedPerCall(t *testing.T) {
	t.Parallel()

	hasher := BcryptHasher{}

	h1, err := hasher.Hash("same password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same password")
	require.NoError(t, err)

	// embedded random salt makes every hash distinct
	assert.NotEqual(t, h1, h2)
	assert.True(t, hasher.Verify(h1, "same password"))
	assert.True(t, hasher.Verify(h2, "same password"))
}
