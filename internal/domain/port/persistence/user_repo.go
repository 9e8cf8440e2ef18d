package persistence

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// UserRepository defines the account operations of the gateway
type UserRepository interface {
	// GetUserByID retrieves a user by internal ID
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given ID
	// - ErrStoreUnavailable: If the store cannot be reached
	GetUserByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetUserByInstagramUsername retrieves a user by login handle
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has the given handle
	// - ErrStoreUnavailable: If the store cannot be reached
	GetUserByInstagramUsername(ctx context.Context, instagramUsername string) (*entity.User, error)

	// CreateUser inserts a new user and assigns user.ID
	//
	// Possible errors:
	// - ErrConstraintViolation: If uid or instagram_username already exists
	// - ErrStoreUnavailable: If the store cannot be reached
	CreateUser(ctx context.Context, user *entity.User) error

	// SetUserBalance overwrites the wallet balance unconditionally.
	// Request paths use the conditional primitives below instead.
	//
	// Possible errors:
	// - ErrNegativeAmount: If balanceCents is below zero
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrStoreUnavailable: If the store cannot be reached
	SetUserBalance(ctx context.Context, userID uint64, balanceCents int64) error

	// MarkBonusClaimed sets bonus_claimed; setting it twice is harmless
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrStoreUnavailable: If the store cannot be reached
	MarkBonusClaimed(ctx context.Context, userID uint64) error

	// ClaimBonus credits amountCents and sets bonus_claimed in one conditional
	// write that only matches while bonus_claimed is false
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	// - ErrBonusAlreadyClaimed: If the bonus was already credited
	// - ErrStoreUnavailable: If the store cannot be reached
	ClaimBonus(ctx context.Context, userID uint64, amountCents int64) (*entity.User, error)
}
