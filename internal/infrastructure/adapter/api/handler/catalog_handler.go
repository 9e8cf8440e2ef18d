package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service catalog
type CatalogHandler struct {
	catalog usecase.CatalogUseCase
	logger  coreport.Logger
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(catalog usecase.CatalogUseCase, logger coreport.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListServices handles GET /api/services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.NewServiceListResponse(services))
}
