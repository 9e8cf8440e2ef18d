package order

import (
	"context"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

// maxIdentifierAttempts bounds retries when a generated order id collides
const maxIdentifierAttempts = 3

var _ usecase.OrderUseCase = (*UseCase)(nil)

// UseCase implements usecase.OrderUseCase
type UseCase struct {
	gateway         persistence.Gateway
	notifier        notification.Notifier
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	generateOrderID func(time.Time) string
}

// NewUseCase creates a new order UseCase
func NewUseCase(
	gateway persistence.Gateway,
	notifier notification.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		gateway:         gateway,
		notifier:        notifier,
		timeProvider:    timeProvider,
		logger:          logger.With(map[string]any{"component": "order"}),
		generateOrderID: entity.GenerateOrderID,
	}
}

// CreateOrder debits the wallet and records the order in one store operation
func (u *UseCase) CreateOrder(ctx context.Context, userID uint64, input usecase.OrderInput) (*entity.Order, *entity.User, error) {
	if userID == 0 {
		return nil, nil, errs.ErrInvalidUserID
	}
	if err := entity.ValidateOrderInput(input.ServiceName, input.InstagramUsername, input.Quantity, input.PriceCents); err != nil {
		return nil, nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxIdentifierAttempts; attempt++ {
		now := u.timeProvider.Now()
		order, err := entity.NewOrder(
			u.generateOrderID(now),
			userID,
			input.ServiceName,
			input.InstagramUsername,
			input.Quantity,
			input.PriceCents,
			now,
		)
		if err != nil {
			return nil, nil, err
		}

		user, err := u.gateway.PlaceOrder(ctx, order)
		if err == nil {
			u.logger.Info("Order placed", map[string]any{
				"userId":     userID,
				"orderId":    order.OrderID,
				"price":      order.GetPrice(),
				"newBalance": user.GetBalance(),
			})
			u.notify(ctx, user, order)
			return order, user, nil
		}

		if !errs.IsConstraintViolationOn(err, "order_id") {
			u.logFailure(userID, order, err)
			return nil, nil, err
		}

		u.logger.Warn("Generated order id collided, retrying", map[string]any{
			"attempt": attempt,
			"orderId": order.OrderID,
		})
		lastErr = err
	}

	return nil, nil, lastErr
}

// ListOrders returns the user's orders, oldest first
func (u *UseCase) ListOrders(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.gateway.ListOrdersForUser(ctx, userID)
}

func (u *UseCase) logFailure(userID uint64, order *entity.Order, err error) {
	fields := map[string]any{
		"userId":  userID,
		"orderId": order.OrderID,
		"price":   order.GetPrice(),
		"error":   err,
	}

	if errs.IsInsufficientBalanceError(err) || errs.IsUserNotFoundError(err) {
		u.logger.Info("Order rejected", fields)
		return
	}
	u.logger.Error("Failed to place order", fields)
}

func (u *UseCase) notify(ctx context.Context, user *entity.User, order *entity.Order) {
	event := notification.Event{
		Action: notification.ActionOrder,
		UID:    user.UID,
		Fields: map[string]string{
			notification.FieldOrderID:     order.OrderID,
			notification.FieldServiceName: order.ServiceName,
			notification.FieldQuantity:    strconv.Itoa(order.Quantity),
			notification.FieldPrice:       entity.AmountInCentsToDisplay(order.Price),
			notification.FieldTarget:      order.InstagramUsername,
		},
	}

	if err := u.notifier.Notify(ctx, event); err != nil {
		u.logger.Warn("Operator notification failed", map[string]any{
			"action":  event.Action,
			"orderId": order.OrderID,
			"error":   err,
		})
	}
}
