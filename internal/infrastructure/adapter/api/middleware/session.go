package middleware

import (
	"net/http"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// sessionKey is the gin context key holding the resolved *session.Session
const sessionKey = "smm.session"

// RequireSession resolves the session cookie and stores the identity in the
// gin context. Requests without a live session are rejected with 401.
func RequireSession(manager *session.Manager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(manager.CookieName())
		if err != nil || token == "" {
			abortUnauthenticated(c)
			return
		}

		identity, err := manager.Resolve(c.Request.Context(), token)
		if err != nil {
			if errs.IsStoreUnavailableError(err) {
				logger.Error("Session store unavailable", map[string]any{
					"path":  c.Request.URL.Path,
					"error": err,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: "Server error",
					Code:  errs.CodeStoreUnavailable,
				})
				return
			}
			logger.Debug("Session rejected", map[string]any{"error": err})
			abortUnauthenticated(c)
			return
		}

		c.Set(sessionKey, identity)
		c.Next()
	}
}

// SessionFrom returns the identity stored by RequireSession
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*session.Session)
	return identity, ok && identity != nil
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Not authenticated",
		Code:  errs.CodeUnauthenticated,
	})
}
