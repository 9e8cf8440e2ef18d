package usecase

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// LoginInput is the submitted login form
type LoginInput struct {
	InstagramUsername string
	Password          string
}

// LoginResult describes the outcome of a login
type LoginResult struct {
	User       *entity.User
	Registered bool // true when the account was auto-registered by this login
	LoginCount int  // 0 when the login log could not be written
}

// AccountUseCase covers login, identity lookup and the signup bonus
type AccountUseCase interface {
	// Login finds or auto-registers the account for the handle
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)

	// GetUser returns the account behind a session
	GetUser(ctx context.Context, userID uint64) (*entity.User, error)

	// ClaimBonus credits the one-time bonus and returns the updated account
	ClaimBonus(ctx context.Context, userID uint64) (*entity.User, error)
}
