package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and identity requests
type AuthHandler struct {
	accounts usecase.AccountUseCase
	sessions *session.Manager
	logger   coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(accounts usecase.AccountUseCase, sessions *session.Manager, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		logger:   logger,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, h.logger, err, msgInvalidLogin)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), usecase.LoginInput{
		InstagramUsername: req.InstagramUsername,
		Password:          req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err, msgInvalidLogin)
		return
	}

	_, token, err := h.sessions.Create(c.Request.Context(), result.User.ID, result.User.UID)
	if err != nil {
		respondError(c, h.logger, err, msgInvalidLogin)
		return
	}
	http.SetCookie(c.Writer, h.sessions.Cookie(token))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		User:    dto.NewUserResponse(result.User),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.sessions.CookieName())

	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		h.logger.Error("Failed to destroy session", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: msgLogoutFailed,
			Code:  errs.ErrorCode(err),
		})
		return
	}

	http.SetCookie(c.Writer, h.sessions.ExpiredCookie())
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CurrentUser handles GET /api/auth/user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	identity, ok := identityFrom(c, h.logger)
	if !ok {
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
