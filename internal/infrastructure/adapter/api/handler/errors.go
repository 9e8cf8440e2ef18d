package handler

import (
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// Client-facing messages
const (
	msgInvalidLogin        = "Invalid login data"
	msgInvalidOrder        = "Invalid order data"
	msgInvalidPayment      = "Invalid payment data"
	msgInvalidPaymentID    = "Invalid payment id"
	msgInsufficientBalance = "Insufficient wallet balance"
	msgDuplicateUTR        = "Payment with this UTR already exists"
	msgBonusClaimed        = "Bonus already claimed"
	msgInvalidCredentials  = "Invalid credentials"
	msgNotAuthenticated    = "Not authenticated"
	msgUserNotFound        = "User not found"
	msgPaymentNotFound     = "Payment not found"
	msgPaymentSettled      = "Payment already processed"
	msgLogoutFailed        = "Could not log out"
	msgServerError         = "Server error"
)

// utrField is the column whose uniqueness guards duplicate payments
const utrField = "utr_number"

// isInputError reports errors caused by malformed client input
func isInputError(err error) bool {
	return errs.IsValidationError(err) ||
		errors.Is(err, errs.ErrInvalidAmount) ||
		errors.Is(err, errs.ErrNegativeAmount) ||
		errors.Is(err, errs.ErrInvalidUserID) ||
		errors.Is(err, errs.ErrInvalidPaymentID)
}

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	switch {
	case isInputError(err),
		errs.IsInsufficientBalanceError(err),
		errors.Is(err, errs.ErrBonusAlreadyClaimed):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated),
		errors.Is(err, errs.ErrSessionNotFound),
		errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.IsUserNotFoundError(err), errors.Is(err, errs.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPaymentAlreadySettled), errs.IsConstraintViolationOn(err, utrField):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// messageFor picks the client message. invalidInput names the form that failed.
func messageFor(err error, invalidInput string) string {
	switch {
	case isInputError(err):
		return invalidInput
	case errs.IsInsufficientBalanceError(err):
		return msgInsufficientBalance
	case errors.Is(err, errs.ErrBonusAlreadyClaimed):
		return msgBonusClaimed
	case errors.Is(err, errs.ErrInvalidCredentials):
		return msgInvalidCredentials
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrSessionNotFound):
		return msgNotAuthenticated
	case errs.IsUserNotFoundError(err):
		return msgUserNotFound
	case errors.Is(err, errs.ErrPaymentNotFound):
		return msgPaymentNotFound
	case errors.Is(err, errs.ErrPaymentAlreadySettled):
		return msgPaymentSettled
	case errs.IsConstraintViolationOn(err, utrField):
		return msgDuplicateUTR
	default:
		return msgServerError
	}
}

// respondError writes the error envelope. Driver details are logged, never sent.
func respondError(c *gin.Context, logger coreport.Logger, err error, invalidInput string) {
	status := statusFor(err)

	fields := map[string]any{
		"path":   c.Request.URL.Path,
		"status": status,
		"error":  err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Debug("Request rejected", fields)
	}

	c.JSON(status, dto.ErrorResponse{
		Error: messageFor(err, invalidInput),
		Code:  errs.ErrorCode(err),
	})
}

// respondInvalid rejects a request body that failed binding
func respondInvalid(c *gin.Context, logger coreport.Logger, err error, message string) {
	logger.Debug("Invalid request body", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  errs.CodeValidation,
	})
}

// identityFrom returns the session identity or answers 401
func identityFrom(c *gin.Context, logger coreport.Logger) (*session.Session, bool) {
	identity, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, logger, errs.ErrUnauthenticated, "")
	}
	return identity, ok
}
