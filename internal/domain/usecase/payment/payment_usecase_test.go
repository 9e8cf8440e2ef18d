package payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/memory"
	timeadapter "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event notification.Event) error {
	return m.Called(ctx, event).Error(0)
}

type fixture struct {
	gateway  *memory.Gateway
	notifier *mockNotifier
	useCase  *UseCase
	user     *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	gateway := memory.NewGateway(clock)
	notifier := &mockNotifier{}
	t.Cleanup(func() { notifier.AssertExpectations(t) })

	user, err := entity.NewUser("UID000000001", "alice", "pw", clock.Now())
	require.NoError(t, err)
	require.NoError(t, gateway.CreateUser(context.Background(), user))
	require.NoError(t, gateway.SetUserBalance(context.Background(), user.ID, 800))

	return &fixture{
		gateway:  gateway,
		notifier: notifier,
		useCase:  NewUseCase(gateway, notifier, clock, logger.NewNoopLogger()),
		user:     user,
	}
}

func (f *fixture) submit(t *testing.T, utr string) *entity.Payment {
	t.Helper()
	payment, err := f.useCase.CreatePayment(context.Background(), f.user.ID, usecase.PaymentInput{
		AmountCents:   50000,
		UTRNumber:     utr,
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)
	return payment
}

func (f *fixture) balance(t *testing.T) string {
	t.Helper()
	user, err := f.gateway.GetUserByID(context.Background(), f.user.ID)
	require.NoError(t, err)
	return user.GetBalance()
}

func TestCreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Payment starts pending without touching the wallet", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionPayment &&
				e.Fields[notification.FieldAmount] == "500" &&
				e.Fields[notification.FieldUTR] == "UTR123" &&
				e.Fields[notification.FieldPaymentMethod] == "UPI"
		})).Return(nil).Once()

		payment := f.submit(t, "UTR123")

		assert.Equal(t, entity.PaymentStatusPending, payment.Status)
		assert.Equal(t, "500.00", payment.GetAmount())
		assert.Equal(t, "8.00", f.balance(t))
	})

	t.Run("Duplicate UTR is a constraint violation", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()
		f.submit(t, "UTR123")

		_, err := f.useCase.CreatePayment(ctx, f.user.ID, usecase.PaymentInput{
			AmountCents: 100, UTRNumber: "UTR123", PaymentMethod: "UPI",
		})
		assert.True(t, errs.IsConstraintViolationOn(err, "utr_number"))
	})

	t.Run("Invalid input", func(t *testing.T) {
		f := newFixture(t)

		testCases := []usecase.PaymentInput{
			{AmountCents: 99, UTRNumber: "U", PaymentMethod: "UPI"},
			{AmountCents: 100, UTRNumber: "", PaymentMethod: "UPI"},
			{AmountCents: 100, UTRNumber: "U", PaymentMethod: " "},
		}
		for _, input := range testCases {
			_, err := f.useCase.CreatePayment(ctx, f.user.ID, input)
			assert.True(t, errs.IsValidationError(err), "input %+v", input)
		}
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.useCase.CreatePayment(ctx, 77, usecase.PaymentInput{
			AmountCents: 100, UTRNumber: "U", PaymentMethod: "UPI",
		})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestSettlePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve credits once and blocks re-approval", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionPayment
		})).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e notification.Event) bool {
			return e.Action == notification.ActionPaymentApproved
		})).Return(nil).Once()

		payment := f.submit(t, "UTR123")

		approved, user, err := f.useCase.ApprovePayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusApproved, approved.Status)
		assert.Equal(t, "508.00", user.GetBalance())

		_, _, err = f.useCase.ApprovePayment(ctx, payment.ID)
		assert.ErrorIs(t, err, errs.ErrPaymentAlreadySettled)

		_, err = f.useCase.DeclinePayment(ctx, payment.ID)
		assert.ErrorIs(t, err, errs.ErrPaymentAlreadySettled)

		assert.Equal(t, "508.00", f.balance(t))
	})

	t.Run("Decline leaves the wallet alone", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Twice()

		payment := f.submit(t, "UTR9")

		declined, err := f.useCase.DeclinePayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusDeclined, declined.Status)
		assert.Equal(t, "8.00", f.balance(t))

		_, _, err = f.useCase.ApprovePayment(ctx, payment.ID)
		assert.ErrorIs(t, err, errs.ErrPaymentAlreadySettled)
		assert.Equal(t, "8.00", f.balance(t))
	})

	t.Run("Concurrent approvals credit once", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

		payment := f.submit(t, "UTR7")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, _ = f.useCase.ApprovePayment(ctx, payment.ID)
			}()
		}
		wg.Wait()

		assert.Equal(t, "508.00", f.balance(t))
	})

	t.Run("Missing and invalid ids", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.useCase.ApprovePayment(ctx, 404)
		assert.ErrorIs(t, err, errs.ErrPaymentNotFound)

		_, err = f.useCase.DeclinePayment(ctx, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidPaymentID)
	})
}

func TestListPayments(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	first := f.submit(t, "UTR1")
	second := f.submit(t, "UTR2")

	payments, err := f.useCase.ListPayments(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, first.ID, payments[0].ID)
	assert.Equal(t, second.ID, payments[1].ID)
}
