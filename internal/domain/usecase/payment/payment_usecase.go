package payment

import (
	"context"
	"strconv"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

var _ usecase.PaymentUseCase = (*UseCase)(nil)

// UseCase implements usecase.PaymentUseCase
type UseCase struct {
	gateway      persistence.Gateway
	notifier     notification.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new payment UseCase
func NewUseCase(
	gateway persistence.Gateway,
	notifier notification.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		gateway:      gateway,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "payment"}),
	}
}

// CreatePayment records a Pending top-up. The wallet is credited on approval only.
func (u *UseCase) CreatePayment(ctx context.Context, userID uint64, input usecase.PaymentInput) (*entity.Payment, error) {
	payment, err := entity.NewPayment(userID, input.AmountCents, input.UTRNumber, input.PaymentMethod, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	user, err := u.gateway.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.gateway.CreatePayment(ctx, payment); err != nil {
		u.logger.Warn("Failed to record payment", map[string]any{
			"userId":    userID,
			"utrNumber": payment.UTRNumber,
			"error":     err,
		})
		return nil, err
	}

	u.logger.Info("Payment submitted", map[string]any{
		"userId":    userID,
		"paymentId": payment.ID,
		"amount":    payment.GetAmount(),
	})

	u.notify(ctx, notification.Event{
		Action: notification.ActionPayment,
		UID:    user.UID,
		Fields: map[string]string{
			notification.FieldPaymentID:     strconv.FormatUint(payment.ID, 10),
			notification.FieldAmount:        entity.AmountInCentsToDisplay(payment.Amount),
			notification.FieldUTR:           payment.UTRNumber,
			notification.FieldPaymentMethod: payment.PaymentMethod,
		},
	})

	return payment, nil
}

// ListPayments returns the user's payments, oldest first
func (u *UseCase) ListPayments(ctx context.Context, userID uint64) ([]*entity.Payment, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.gateway.ListPaymentsForUser(ctx, userID)
}

// ApprovePayment settles a Pending payment and credits its owner exactly once
func (u *UseCase) ApprovePayment(ctx context.Context, paymentID uint64) (*entity.Payment, *entity.User, error) {
	payment, user, err := u.settle(ctx, paymentID, entity.PaymentStatusApproved)
	if err != nil {
		return nil, nil, err
	}

	u.logger.Info("Payment approved", map[string]any{
		"paymentId":  payment.ID,
		"userId":     user.ID,
		"amount":     payment.GetAmount(),
		"newBalance": user.GetBalance(),
	})
	u.notifySettled(ctx, notification.ActionPaymentApproved, payment, user)

	return payment, user, nil
}

// DeclinePayment settles a Pending payment without touching the wallet
func (u *UseCase) DeclinePayment(ctx context.Context, paymentID uint64) (*entity.Payment, error) {
	payment, user, err := u.settle(ctx, paymentID, entity.PaymentStatusDeclined)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Payment declined", map[string]any{
		"paymentId": payment.ID,
		"userId":    user.ID,
	})
	u.notifySettled(ctx, notification.ActionPaymentDeclined, payment, user)

	return payment, nil
}

func (u *UseCase) settle(ctx context.Context, paymentID uint64, status entity.PaymentStatus) (*entity.Payment, *entity.User, error) {
	if paymentID == 0 {
		return nil, nil, errs.ErrInvalidPaymentID
	}

	payment, user, err := u.gateway.SettlePayment(ctx, paymentID, status)
	if err != nil {
		if errs.IsStoreUnavailableError(err) {
			u.logger.Error("Failed to settle payment", map[string]any{
				"paymentId": paymentID,
				"status":    string(status),
				"error":     err,
			})
		}
		return nil, nil, err
	}
	return payment, user, nil
}

func (u *UseCase) notifySettled(ctx context.Context, action notification.Action, payment *entity.Payment, user *entity.User) {
	u.notify(ctx, notification.Event{
		Action: action,
		UID:    user.UID,
		Fields: map[string]string{
			notification.FieldPaymentID: strconv.FormatUint(payment.ID, 10),
			notification.FieldAmount:    entity.AmountInCentsToDisplay(payment.Amount),
			notification.FieldUTR:       payment.UTRNumber,
		},
	})
}

func (u *UseCase) notify(ctx context.Context, event notification.Event) {
	if err := u.notifier.Notify(ctx, event); err != nil {
		u.logger.Warn("Operator notification failed", map[string]any{
			"action": event.Action,
			"uid":    event.UID,
			"error":  err,
		})
	}
}
