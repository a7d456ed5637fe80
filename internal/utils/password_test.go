package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	// Equal plaintexts must not produce equal hashes
	first, err := HashPassword("secret123")
	require.NoError(t, err)
	second, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Both still verify
	assert.True(t, CheckPassword("secret123", first))
	assert.True(t, CheckPassword("secret123", second))
}
