package security

import (
	"strings"
	"testing"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", digest)
	assert.True(t, IsBcryptHash(digest))

	assert.True(t, hasher.Verify(digest, "hunter2"))
	assert.False(t, hasher.Verify(digest, "hunter3"))
}

func TestBcryptHasherRejectsOverlongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	_, err = hasher.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.Equal(t, errs.CodeValidation, errs.ErrorCode(err))
}

func TestBcryptHasherAcceptsLegacyPlaintext(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	assert.True(t, hasher.Verify("legacy-pass", "legacy-pass"))
	assert.False(t, hasher.Verify("legacy-pass", "legacy"))
}

func TestBcryptHasherInvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99).(*BcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestPlainHasher(t *testing.T) {
	hasher := NewPlainHasher()

	stored, err := hasher.Hash("pw")
	require.NoError(t, err)
	assert.Equal(t, "pw", stored)
	assert.True(t, hasher.Verify(stored, "pw"))
	assert.False(t, hasher.Verify(stored, "PW"))

	digest, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, hasher.Verify(string(digest), "pw"))
}

func TestIsBcryptHash(t *testing.T) {
	assert.True(t, IsBcryptHash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, IsBcryptHash("$2y$10$abcdefghijklmnopqrstuv"))
	assert.False(t, IsBcryptHash("plain"))
	assert.False(t, IsBcryptHash("$1$md5"))
}
