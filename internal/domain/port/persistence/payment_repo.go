package persistence

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// PaymentRepository defines the top-up operations of the gateway
type PaymentRepository interface {
	// CreatePayment inserts a payment and assigns payment.ID
	//
	// Possible errors:
	// - ErrConstraintViolation: If utr_number already exists or the user is missing
	// - ErrStoreUnavailable: If the store cannot be reached
	CreatePayment(ctx context.Context, payment *entity.Payment) error

	// ListPaymentsForUser returns the user's payments, oldest first
	//
	// Possible errors:
	// - ErrStoreUnavailable: If the store cannot be reached
	ListPaymentsForUser(ctx context.Context, userID uint64) ([]*entity.Payment, error)

	// GetPaymentByID retrieves a payment
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrStoreUnavailable: If the store cannot be reached
	GetPaymentByID(ctx context.Context, id uint64) (*entity.Payment, error)

	// SetPaymentStatus overwrites the status unconditionally
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrStoreUnavailable: If the store cannot be reached
	SetPaymentStatus(ctx context.Context, id uint64, status entity.PaymentStatus) error

	// SettlePayment moves a Pending payment to status and, for Approved,
	// credits the owner by the payment amount, in one transaction. Returns
	// the settled payment and its owner.
	//
	// Possible errors:
	// - ErrPaymentNotFound: If the payment doesn't exist
	// - ErrPaymentAlreadySettled: If the payment is no longer Pending (nothing written)
	// - ErrInvalidStatus: If status is not terminal
	// - ErrStoreUnavailable: If the store cannot be reached
	SettlePayment(ctx context.Context, id uint64, status entity.PaymentStatus) (*entity.Payment, *entity.User, error)
}
