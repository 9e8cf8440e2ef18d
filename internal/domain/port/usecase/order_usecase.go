package usecase

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// OrderInput is the submitted order form. Price is in cents.
type OrderInput struct {
	ServiceName       string
	InstagramUsername string
	Quantity          int
	PriceCents        int64
}

// OrderUseCase places and lists wallet-paid orders
type OrderUseCase interface {
	// CreateOrder charges the wallet and records the order. Returns the order
	// and the owner with the post-debit balance.
	CreateOrder(ctx context.Context, userID uint64, input OrderInput) (*entity.Order, *entity.User, error)

	// ListOrders returns the user's orders, oldest first
	ListOrders(ctx context.Context, userID uint64) ([]*entity.Order, error)
}
