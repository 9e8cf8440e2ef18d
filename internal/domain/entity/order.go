package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
)

// OrderStatus is the fulfillment state of an order
type OrderStatus string

// Valid order statuses
const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusFailed     OrderStatus = "Failed"
	OrderStatusPending    OrderStatus = "Pending"
)

// IsValid checks if the order status is one of the allowed values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusCompleted, OrderStatusFailed, OrderStatusPending:
		return true
	}
	return false
}

// MinOrderPriceCents is the smallest chargeable order price (0.01)
const MinOrderPriceCents = 1

// Order is a purchase of a catalog service paid from the wallet
type Order struct {
	ID                uint64
	OrderID           string // User-facing order handle
	UserID            uint64
	ServiceName       string
	InstagramUsername string // Delivery target handle
	Quantity          int
	Price             int64 // cents
	Status            OrderStatus
	CreatedAt         time.Time
}

// NewOrder validates input and creates an order in Processing state
func NewOrder(orderID string, userID uint64, serviceName, instagramUsername string, quantity int, priceCents int64, createdAt time.Time) (*Order, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidateOrderInput(serviceName, instagramUsername, quantity, priceCents); err != nil {
		return nil, err
	}

	return &Order{
		OrderID:           orderID,
		UserID:            userID,
		ServiceName:       strings.TrimSpace(serviceName),
		InstagramUsername: strings.TrimSpace(instagramUsername),
		Quantity:          quantity,
		Price:             priceCents,
		Status:            OrderStatusProcessing,
		CreatedAt:         createdAt,
	}, nil
}

// ValidateOrderInput checks the client-supplied order fields
func ValidateOrderInput(serviceName, instagramUsername string, quantity int, priceCents int64) error {
	if strings.TrimSpace(serviceName) == "" {
		return errs.NewValidationError("serviceName", "must not be empty")
	}
	if strings.TrimSpace(instagramUsername) == "" {
		return errs.NewValidationError("instagramUsername", "must not be empty")
	}
	if quantity < 1 {
		return errs.NewValidationError("quantity", "must be at least 1")
	}
	if priceCents < MinOrderPriceCents {
		return errs.NewValidationError("price", "must be at least 0.01")
	}
	return nil
}

// GetPrice returns the price with 2 decimal places
func (o *Order) GetPrice() string {
	return AmountInCentsToString(o.Price)
}
