package dto

import (
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// OrderRequest is the order form. Price is a JSON number with at most two decimals.
type OrderRequest struct {
	ServiceName       string  `json:"serviceName" binding:"required"`
	InstagramUsername string  `json:"instagramUsername" binding:"required"`
	Quantity          int     `json:"quantity" binding:"required,min=1"`
	Price             float64 `json:"price" binding:"required,gte=0.01,money"`
}

// OrderResponse is the API view of an order
type OrderResponse struct {
	ID                uint64    `json:"id"`
	OrderID           string    `json:"orderId"`
	UserID            uint64    `json:"userId"`
	ServiceName       string    `json:"serviceName"`
	InstagramUsername string    `json:"instagramUsername"`
	Quantity          int       `json:"quantity"`
	Price             string    `json:"price"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CreateOrderResponse wraps a placed order
type CreateOrderResponse struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

// NewOrderResponse maps a domain order to its API view
func NewOrderResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:                order.ID,
		OrderID:           order.OrderID,
		UserID:            order.UserID,
		ServiceName:       order.ServiceName,
		InstagramUsername: order.InstagramUsername,
		Quantity:          order.Quantity,
		Price:             order.GetPrice(),
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
	}
}

// NewOrderListResponse maps orders, never returning a nil slice
func NewOrderListResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}
