package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	payment, err := NewPayment(5, 50000, " UTR123 ", "UPI", now)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, payment.Status)
	assert.Equal(t, "UTR123", payment.UTRNumber)
	assert.Equal(t, "500.00", payment.GetAmount())

	_, err = NewPayment(5, 99, "UTR1", "UPI", now)
	assert.ErrorIs(t, err, errs.ErrValidation, "amount below 1.00")

	_, err = NewPayment(5, 100, "", "UPI", now)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = NewPayment(5, 100, "UTR1", "", now)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = NewPayment(0, 100, "UTR1", "UPI", now)
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}

func TestPaymentSettle(t *testing.T) {
	t.Run("Pending to Approved once", func(t *testing.T) {
		p := &Payment{Status: PaymentStatusPending}
		require.NoError(t, p.Settle(PaymentStatusApproved))
		assert.Equal(t, PaymentStatusApproved, p.Status)

		assert.ErrorIs(t, p.Settle(PaymentStatusApproved), errs.ErrPaymentAlreadySettled)
		assert.ErrorIs(t, p.Settle(PaymentStatusDeclined), errs.ErrPaymentAlreadySettled)
		assert.Equal(t, PaymentStatusApproved, p.Status)
	})

	t.Run("Pending to Declined", func(t *testing.T) {
		p := &Payment{Status: PaymentStatusPending}
		require.NoError(t, p.Settle(PaymentStatusDeclined))
		assert.True(t, p.Status.IsTerminal())
	})

	t.Run("Pending is not a settlement target", func(t *testing.T) {
		p := &Payment{Status: PaymentStatusPending}
		assert.ErrorIs(t, p.Settle(PaymentStatusPending), errs.ErrInvalidStatus)
	})
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := ParsePaymentStatus("Rejected")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusDeclined, s)

	s, err = ParsePaymentStatus("Approved")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusApproved, s)

	_, err = ParsePaymentStatus("approved")
	assert.ErrorIs(t, err, errs.ErrInvalidStatus)
}
