package handler

import (
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// BonusHandler credits the one-time signup bonus
type BonusHandler struct {
	accounts usecase.AccountUseCase
	message  string
	logger   coreport.Logger
}

// NewBonusHandler creates a bonus handler announcing amountCents on success
func NewBonusHandler(accounts usecase.AccountUseCase, amountCents int64, logger coreport.Logger) *BonusHandler {
	return &BonusHandler{
		accounts: accounts,
		message:  fmt.Sprintf("₹%s bonus claimed successfully!", entity.AmountInCentsToDisplay(amountCents)),
		logger:   logger,
	}
}

// ClaimBonus handles POST /api/bonus/claim
func (h *BonusHandler) ClaimBonus(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	user, err := h.accounts.ClaimBonus(c.Request.Context(), identity.UserID)
	bonusClaimsTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.BonusResponse{
		Success:    true,
		NewBalance: user.GetBalance(),
		Message:    h.message,
	})
}
