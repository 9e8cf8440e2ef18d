package security

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// IsBcryptHash reports whether stored looks like a bcrypt digest
func IsBcryptHash(stored string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// BcryptHasher stores new passwords as bcrypt digests. Rows written before
// hashing was enabled hold plaintext and still verify.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher; a cost outside bcrypt's range uses the default
func NewBcryptHasher(cost int) core.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements core.PasswordHasher
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify implements core.PasswordHasher
func (h *BcryptHasher) Verify(stored, password string) bool {
	if IsBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return constantTimeEqual(stored, password)
}

// PlainHasher stores passwords as submitted
type PlainHasher struct{}

// NewPlainHasher creates a PlainHasher
func NewPlainHasher() core.PasswordHasher {
	return PlainHasher{}
}

// Hash implements core.PasswordHasher
func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

// Verify implements core.PasswordHasher. Bcrypt rows still verify so that
// switching hashing off does not lock users out.
func (PlainHasher) Verify(stored, password string) bool {
	if IsBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return constantTimeEqual(stored, password)
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
