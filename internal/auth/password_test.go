package auth

import (
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordHasher(t *testing.T) {
	_, err := NewPasswordHasher("md5")
	assert.Error(t, err)

	for _, name := range []string{"", "bcrypt", "ARGON2ID"} {
		h, err := NewPasswordHasher(name)
		require.NoError(t, err, name)

		hash, err := h.Hash("pw123456")
		require.NoError(t, err)
		assert.NotEqual(t, "pw123456", hash)
		assert.True(t, h.Compare(hash, "pw123456"))
		assert.False(t, h.Compare(hash, "pw1234567"))
	}
}

func TestPasswordHasher_VerifiesEitherAlgorithm(t *testing.T) {
	bcryptHash, err := BcryptHasher{Cost: 4}.Hash("secret-1")
	require.NoError(t, err)
	argonHash, err := Argon2idHasher{Params: &argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}}.Hash("secret-2")
	require.NoError(t, err)

	h, err := NewPasswordHasher("bcrypt")
	require.NoError(t, err)
	assert.True(t, h.Compare(bcryptHash, "secret-1"))
	assert.True(t, h.Compare(argonHash, "secret-2"))
	assert.False(t, h.Compare(argonHash, "secret-1"))
	assert.False(t, h.Compare("garbage", "secret-1"))
}
