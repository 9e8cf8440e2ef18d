package persistence

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// ServiceRepository defines the catalog operations of the gateway
type ServiceRepository interface {
	// ListActiveServices returns active services ordered by category, then name
	//
	// Possible errors:
	// - ErrStoreUnavailable: If the store cannot be reached
	ListActiveServices(ctx context.Context) ([]*entity.Service, error)

	// SeedServicesIfEmpty inserts catalog when the services table has no rows
	// and returns the number inserted (0 when already seeded)
	//
	// Possible errors:
	// - ErrStoreUnavailable: If the store cannot be reached
	SeedServicesIfEmpty(ctx context.Context, catalog []*entity.Service) (int, error)
}
