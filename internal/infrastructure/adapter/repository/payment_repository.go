package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository implements persistence.PaymentRepository using GORM
type PaymentRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func paymentToEntity(paymentModel *model.Payment) (*entity.Payment, error) {
	status, err := entity.ParsePaymentStatus(paymentModel.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: payment %d has status %q", errs.ErrInternalServer, paymentModel.ID, paymentModel.Status)
	}

	return &entity.Payment{
		ID:            paymentModel.ID,
		UserID:        paymentModel.UserID,
		Amount:        paymentModel.Amount,
		UTRNumber:     paymentModel.UTRNumber,
		PaymentMethod: paymentModel.PaymentMethod,
		Status:        status,
		CreatedAt:     paymentModel.CreatedAt,
	}, nil
}

func (r *PaymentRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrPaymentNotFound
	}

	mapped := r.errorClassifier.MapError("payment", err)
	if errs.IsStoreUnavailableError(mapped) || errors.Is(mapped, errs.ErrInternalServer) {
		fields["error"] = err.Error()
		r.logger.Error("Database error when "+operation, fields)
	}
	return mapped
}

// CreatePayment inserts a payment and assigns payment.ID
func (r *PaymentRepository) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	if payment.Status == "" {
		payment.Status = entity.PaymentStatusPending
	}

	paymentModel := model.Payment{
		UserID:        payment.UserID,
		Amount:        payment.Amount,
		UTRNumber:     payment.UTRNumber,
		PaymentMethod: payment.PaymentMethod,
		Status:        string(payment.Status),
		CreatedAt:     payment.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&paymentModel).Error; err != nil {
		return r.handleDatabaseError("creating payment", err, map[string]any{
			"user_id":    payment.UserID,
			"utr_number": payment.UTRNumber,
		})
	}

	payment.ID = paymentModel.ID
	payment.CreatedAt = paymentModel.CreatedAt
	return nil
}

// ListPaymentsForUser returns the user's payments, oldest first
func (r *PaymentRepository) ListPaymentsForUser(ctx context.Context, userID uint64) ([]*entity.Payment, error) {
	var paymentModels []model.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing payments", err, map[string]any{"user_id": userID})
	}

	payments := make([]*entity.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payment, err := paymentToEntity(&paymentModels[i])
		if err != nil {
			return nil, r.handleDatabaseError("listing payments", err, map[string]any{"user_id": userID})
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// GetPaymentByID retrieves a payment
func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	var paymentModel model.Payment
	if err := r.db.WithContext(ctx).First(&paymentModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting payment", err, map[string]any{"payment_id": id})
	}

	payment, err := paymentToEntity(&paymentModel)
	if err != nil {
		return nil, r.handleDatabaseError("getting payment", err, map[string]any{"payment_id": id})
	}
	return payment, nil
}

// SetPaymentStatus overwrites the status with no transition check
func (r *PaymentRepository) SetPaymentStatus(ctx context.Context, id uint64, status entity.PaymentStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return r.handleDatabaseError("setting payment status", result.Error, map[string]any{"payment_id": id})
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// SettlePayment moves a Pending payment to a terminal status and, for
// Approved, credits the owner, in one transaction. The status update only
// matches Pending rows, which is what makes approval single-shot.
func (r *PaymentRepository) SettlePayment(ctx context.Context, id uint64, status entity.PaymentStatus) (*entity.Payment, *entity.User, error) {
	if !status.IsTerminal() {
		return nil, nil, errs.ErrInvalidStatus
	}

	var (
		payment *entity.Payment
		user    *entity.User
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paymentModel model.Payment
		if err := tx.First(&paymentModel, id).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", id, string(entity.PaymentStatusPending)).
			Update("status", string(status))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrPaymentAlreadySettled
		}
		paymentModel.Status = string(status)

		if status == entity.PaymentStatusApproved {
			credit := tx.Model(&model.User{}).
				Where("id = ?", paymentModel.UserID).
				Update("wallet_balance", gorm.Expr("wallet_balance + ?", paymentModel.Amount))
			if credit.Error != nil {
				return credit.Error
			}
			if credit.RowsAffected == 0 {
				return errs.ErrUserNotFound
			}
		}

		var userModel model.User
		if err := tx.First(&userModel, paymentModel.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return err
		}

		var err error
		if payment, err = paymentToEntity(&paymentModel); err != nil {
			return err
		}
		user = userToEntity(&userModel)
		return nil
	})
	if err != nil {
		return nil, nil, r.handleDatabaseError("settling payment", err, map[string]any{
			"payment_id": id,
			"status":     string(status),
		})
	}

	return payment, user, nil
}
