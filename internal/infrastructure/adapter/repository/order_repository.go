package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository implements persistence.OrderRepository using GORM
type OrderRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func orderToModel(order *entity.Order) model.Order {
	return model.Order{
		OrderID:           order.OrderID,
		UserID:            order.UserID,
		ServiceName:       order.ServiceName,
		InstagramUsername: order.InstagramUsername,
		Quantity:          order.Quantity,
		Price:             order.Price,
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
	}
}

func orderToEntity(orderModel *model.Order) *entity.Order {
	return &entity.Order{
		ID:                orderModel.ID,
		OrderID:           orderModel.OrderID,
		UserID:            orderModel.UserID,
		ServiceName:       orderModel.ServiceName,
		InstagramUsername: orderModel.InstagramUsername,
		Quantity:          orderModel.Quantity,
		Price:             orderModel.Price,
		Status:            entity.OrderStatus(orderModel.Status),
		CreatedAt:         orderModel.CreatedAt,
	}
}

func (r *OrderRepository) handleDatabaseError(operation string, err error, order *entity.Order) error {
	mapped := r.errorClassifier.MapError("order", err)
	if errs.IsStoreUnavailableError(mapped) {
		r.logger.Error("Database error when "+operation, map[string]any{
			"order_id": order.OrderID,
			"user_id":  order.UserID,
			"error":    err.Error(),
		})
	}
	return mapped
}

func insertOrder(tx *gorm.DB, order *entity.Order) error {
	if order.Status == "" {
		order.Status = entity.OrderStatusProcessing
	}
	orderModel := orderToModel(order)
	if err := tx.Omit(clause.Associations).Create(&orderModel).Error; err != nil {
		return err
	}
	order.ID = orderModel.ID
	order.CreatedAt = orderModel.CreatedAt
	return nil
}

// CreateOrder inserts an order without touching the wallet
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	if err := insertOrder(r.db.WithContext(ctx), order); err != nil {
		return r.handleDatabaseError("creating order", err, order)
	}
	return nil
}

// PlaceOrder debits the owner and inserts the order in one transaction.
// The debit is a conditional update, so two concurrent orders can never
// both pass the balance check against the same funds.
func (r *OrderRepository) PlaceOrder(ctx context.Context, order *entity.Order) (*entity.User, error) {
	var user *entity.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND wallet_balance >= ?", order.UserID, order.Price).
			Update("wallet_balance", gorm.Expr("wallet_balance - ?", order.Price))
		if result.Error != nil {
			return result.Error
		}

		var userModel model.User
		if err := tx.First(&userModel, order.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return err
		}

		if result.RowsAffected == 0 {
			return errs.NewInsufficientBalanceError(
				order.UserID,
				order.GetPrice(),
				entity.AmountInCentsToString(userModel.WalletBalance),
			)
		}

		if err := insertOrder(tx, order); err != nil {
			return err
		}

		user = userToEntity(&userModel)
		return nil
	})
	if err != nil {
		return nil, r.handleDatabaseError("placing order", err, order)
	}

	r.logger.Debug("Order placed", map[string]any{
		"order_id":    order.OrderID,
		"user_id":     order.UserID,
		"price":       order.GetPrice(),
		"new_balance": user.GetBalance(),
	})
	return user, nil
}

// ListOrdersForUser returns the user's orders, oldest first
func (r *OrderRepository) ListOrdersForUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	var orderModels []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&orderModels).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing orders", err, &entity.Order{UserID: userID})
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderToEntity(&orderModels[i]))
	}
	return orders, nil
}
