package catalog

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

var _ usecase.CatalogUseCase = (*UseCase)(nil)

// UseCase implements usecase.CatalogUseCase
type UseCase struct {
	gateway persistence.Gateway
	logger  coreport.Logger
}

// NewUseCase creates a new catalog UseCase
func NewUseCase(gateway persistence.Gateway, logger coreport.Logger) *UseCase {
	return &UseCase{
		gateway: gateway,
		logger:  logger,
	}
}

// ListServices returns the active catalog
func (u *UseCase) ListServices(ctx context.Context) ([]*entity.Service, error) {
	return u.gateway.ListActiveServices(ctx)
}

// EnsureCatalog seeds the default catalog once. Safe to call on every start.
func (u *UseCase) EnsureCatalog(ctx context.Context) (int, error) {
	inserted, err := u.gateway.SeedServicesIfEmpty(ctx, entity.DefaultCatalog())
	if err != nil {
		u.logger.Error("Failed to seed service catalog", map[string]any{
			"version": entity.CatalogVersion,
			"error":   err,
		})
		return 0, err
	}

	if inserted > 0 {
		u.logger.Info("Default service catalog seeded", map[string]any{
			"version":  entity.CatalogVersion,
			"services": inserted,
		})
	} else {
		u.logger.Debug("Service catalog already present", nil)
	}

	return inserted, nil
}
