package pkg

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := gofakeit.Password(true, true, true, true, false, 16)

	passwordHash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.NotEqual(t, password, passwordHash)

	assert.True(t, CheckPasswordHash(password, passwordHash))
	assert.False(t, CheckPasswordHash(password+"!", passwordHash))
	assert.False(t, CheckPasswordHash(password, "not-a-bcrypt-hash"))
}

func TestHashPassword_SameInputDifferentHashes(t *testing.T) {
	hash1, err := HashPassword("squat-day")
	require.NoError(t, err)
	hash2, err := HashPassword("squat-day")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPasswordHash("squat-day", hash1))
	assert.True(t, CheckPasswordHash("squat-day", hash2))
}
