package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orders usecase.OrderUseCase
	logger coreport.Logger
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(orders usecase.OrderUseCase, logger coreport.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err, msgInvalidOrder)
		return
	}

	priceCents, err := entity.CentsFromFloat(req.Price)
	if err != nil {
		respondError(c, h.logger, err, msgInvalidOrder)
		return
	}

	order, _, err := h.orders.CreateOrder(c.Request.Context(), identity.UserID, usecase.OrderInput{
		ServiceName:       req.ServiceName,
		InstagramUsername: req.InstagramUsername,
		Quantity:          req.Quantity,
		PriceCents:        priceCents,
	})
	ordersTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, err, msgInvalidOrder)
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		Success: true,
		Order:   dto.NewOrderResponse(order),
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders))
}
