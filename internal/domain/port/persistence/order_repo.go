package persistence

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// OrderRepository defines the order operations of the gateway
type OrderRepository interface {
	// CreateOrder inserts an order without touching the wallet and assigns order.ID
	//
	// Possible errors:
	// - ErrConstraintViolation: If order_id already exists or the user is missing
	// - ErrStoreUnavailable: If the store cannot be reached
	CreateOrder(ctx context.Context, order *entity.Order) error

	// PlaceOrder debits order.Price from the owner only if the balance covers
	// it and inserts the order, in one transaction. Returns the owner with the
	// post-debit balance.
	//
	// Possible errors:
	// - ErrUserNotFound: If the owner doesn't exist
	// - ErrInsufficientBalance: If the balance is below the price (nothing written)
	// - ErrConstraintViolation: If order_id already exists (nothing written)
	// - ErrStoreUnavailable: If the store cannot be reached
	PlaceOrder(ctx context.Context, order *entity.Order) (*entity.User, error)

	// ListOrdersForUser returns the user's orders, oldest first
	//
	// Possible errors:
	// - ErrStoreUnavailable: If the store cannot be reached
	ListOrdersForUser(ctx context.Context, userID uint64) ([]*entity.Order, error)
}
