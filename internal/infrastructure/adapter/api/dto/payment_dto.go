package dto

import (
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// PaymentRequest is the manual top-up form
type PaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gte=1,money"`
	UTRNumber     string  `json:"utrNumber" binding:"required,max=64"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,max=32"`
}

// PaymentResponse is the API view of a payment
type PaymentResponse struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"userId"`
	Amount        string    `json:"amount"`
	UTRNumber     string    `json:"utrNumber"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatePaymentResponse wraps a submitted payment
type CreatePaymentResponse struct {
	Success bool            `json:"success"`
	Payment PaymentResponse `json:"payment"`
}

// NewPaymentResponse maps a domain payment to its API view
func NewPaymentResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		UserID:        payment.UserID,
		Amount:        payment.GetAmount(),
		UTRNumber:     payment.UTRNumber,
		PaymentMethod: payment.PaymentMethod,
		Status:        string(payment.Status),
		CreatedAt:     payment.CreatedAt,
	}
}

// NewPaymentListResponse maps payments, never returning a nil slice
func NewPaymentListResponse(payments []*entity.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, NewPaymentResponse(payment))
	}
	return out
}
