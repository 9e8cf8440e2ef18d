package usecase

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// PaymentInput is the submitted top-up form. Amount is in cents.
type PaymentInput struct {
	AmountCents   int64
	UTRNumber     string
	PaymentMethod string
}

// PaymentUseCase handles manual top-ups and their review
type PaymentUseCase interface {
	// CreatePayment records a Pending top-up; the wallet is untouched
	CreatePayment(ctx context.Context, userID uint64, input PaymentInput) (*entity.Payment, error)

	// ListPayments returns the user's payments, oldest first
	ListPayments(ctx context.Context, userID uint64) ([]*entity.Payment, error)

	// ApprovePayment settles a Pending payment as Approved and credits its owner
	ApprovePayment(ctx context.Context, paymentID uint64) (*entity.Payment, *entity.User, error)

	// DeclinePayment settles a Pending payment as Declined
	DeclinePayment(ctx context.Context, paymentID uint64) (*entity.Payment, error)
}
