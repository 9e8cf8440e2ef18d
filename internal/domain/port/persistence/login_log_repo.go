package persistence

import "context"

// LoginLogRepository defines the login audit operations of the gateway
type LoginLogRepository interface {
	// AppendLoginLog records a login and returns its count for the user,
	// which is the number of prior rows plus one
	//
	// Possible errors:
	// - ErrConstraintViolation: If the user doesn't exist
	// - ErrStoreUnavailable: If the store cannot be reached
	AppendLoginLog(ctx context.Context, userID uint64, instagramUsername string) (int, error)
}
