package middleware

import (
	"crypto/subtle"
	"net/http"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the shared admin secret
const AdminTokenHeader = "X-Admin-Token"

// AdminToken guards admin routes with a shared secret. With required false
// every request passes. With required true and an empty token every request
// is refused.
func AdminToken(required bool, token string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !required {
			c.Next()
			return
		}

		supplied := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			logger.Warn("Admin request refused", map[string]any{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
				"has_token": supplied != "",
			})
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Admin access required",
				Code:  errs.CodeForbidden,
			})
			return
		}

		c.Next()
	}
}
