package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles top-up submission and admin review
type PaymentHandler struct {
	payments usecase.PaymentUseCase
	logger   coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments usecase.PaymentUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err, msgInvalidPayment)
		return
	}

	amountCents, err := entity.CentsFromFloat(req.Amount)
	if err != nil {
		respondError(c, h.logger, err, msgInvalidPayment)
		return
	}

	payment, err := h.payments.CreatePayment(c.Request.Context(), identity.UserID, usecase.PaymentInput{
		AmountCents:   amountCents,
		UTRNumber:     req.UTRNumber,
		PaymentMethod: req.PaymentMethod,
	})
	paymentsTotal.WithLabelValues("submit", outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, err, msgInvalidPayment)
		return
	}

	c.JSON(http.StatusOK, dto.CreatePaymentResponse{
		Success: true,
		Payment: dto.NewPaymentResponse(payment),
	})
}

// ListPayments handles GET /api/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	payments, err := h.payments.ListPayments(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewPaymentListResponse(payments))
}

// ApprovePayment handles POST /api/admin/payments/:id/approve
func (h *PaymentHandler) ApprovePayment(c *gin.Context) {
	paymentID, ok := h.paymentID(c)
	if !ok {
		return
	}

	_, _, err := h.payments.ApprovePayment(c.Request.Context(), paymentID)
	paymentsTotal.WithLabelValues("approve", outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, err, msgInvalidPaymentID)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Payment approved and funds added"})
}

// DeclinePayment handles POST /api/admin/payments/:id/decline
func (h *PaymentHandler) DeclinePayment(c *gin.Context) {
	paymentID, ok := h.paymentID(c)
	if !ok {
		return
	}

	_, err := h.payments.DeclinePayment(c.Request.Context(), paymentID)
	paymentsTotal.WithLabelValues("decline", outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, err, msgInvalidPaymentID)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Payment declined"})
}

func (h *PaymentHandler) paymentID(c *gin.Context) (uint64, bool) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, h.logger, errs.ErrInvalidPaymentID, msgInvalidPaymentID)
		return 0, false
	}
	return paymentID, true
}
