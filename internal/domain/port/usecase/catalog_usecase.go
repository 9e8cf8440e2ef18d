package usecase

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// CatalogUseCase exposes the service catalog
type CatalogUseCase interface {
	// ListServices returns active services ordered by category, then name
	ListServices(ctx context.Context) ([]*entity.Service, error)

	// EnsureCatalog seeds the default catalog when none exists and returns
	// the number of rows inserted
	EnsureCatalog(ctx context.Context) (int, error)
}
