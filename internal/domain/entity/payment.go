package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
)

// PaymentStatus is the review state of a manual top-up
type PaymentStatus string

// Valid payment statuses
const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusApproved PaymentStatus = "Approved"
	PaymentStatusDeclined PaymentStatus = "Declined"

	// paymentStatusRejected is a legacy spelling of Declined found in older rows
	paymentStatusRejected PaymentStatus = "Rejected"
)

// ParsePaymentStatus normalizes a stored status, mapping Rejected to Declined
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending:
		return PaymentStatusPending, nil
	case PaymentStatusApproved:
		return PaymentStatusApproved, nil
	case PaymentStatusDeclined, paymentStatusRejected:
		return PaymentStatusDeclined, nil
	}
	return "", errs.ErrInvalidStatus
}

// IsTerminal reports whether no further transition is allowed
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusDeclined
}

// MinPaymentAmountCents is the smallest accepted top-up (1.00)
const MinPaymentAmountCents = 100

// Payment is a manual wallet top-up awaiting admin review
type Payment struct {
	ID            uint64
	UserID        uint64
	Amount        int64 // cents
	UTRNumber     string
	PaymentMethod string
	Status        PaymentStatus
	CreatedAt     time.Time
}

// NewPayment validates input and creates a Pending payment
func NewPayment(userID uint64, amountCents int64, utrNumber, paymentMethod string, createdAt time.Time) (*Payment, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidatePaymentInput(amountCents, utrNumber, paymentMethod); err != nil {
		return nil, err
	}

	return &Payment{
		UserID:        userID,
		Amount:        amountCents,
		UTRNumber:     strings.TrimSpace(utrNumber),
		PaymentMethod: strings.TrimSpace(paymentMethod),
		Status:        PaymentStatusPending,
		CreatedAt:     createdAt,
	}, nil
}

// ValidatePaymentInput checks the client-supplied payment fields
func ValidatePaymentInput(amountCents int64, utrNumber, paymentMethod string) error {
	if amountCents < MinPaymentAmountCents {
		return errs.NewValidationError("amount", "must be at least 1")
	}
	if strings.TrimSpace(utrNumber) == "" {
		return errs.NewValidationError("utrNumber", "must not be empty")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return errs.NewValidationError("paymentMethod", "must not be empty")
	}
	return nil
}

// Settle moves a Pending payment to a terminal status
func (p *Payment) Settle(status PaymentStatus) error {
	if !status.IsTerminal() {
		return errs.ErrInvalidStatus
	}
	if p.Status.IsTerminal() {
		return errs.ErrPaymentAlreadySettled
	}
	p.Status = status
	return nil
}

// GetAmount returns the amount with 2 decimal places
func (p *Payment) GetAmount() string {
	return AmountInCentsToString(p.Amount)
}
