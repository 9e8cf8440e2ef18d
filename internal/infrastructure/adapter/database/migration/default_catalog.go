package migration

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

// SeedDefaultCatalog seeds the default service catalog when the services
// table is empty and records the catalog version next to the schema version
func (m *MigrationManager) SeedDefaultCatalog(ctx context.Context, catalog usecase.CatalogUseCase) (int, error) {
	return SeedDefaultCatalog(ctx, catalog, m, m.logger)
}

// CatalogVersionRecorder persists which catalog version was seeded
type CatalogVersionRecorder interface {
	RecordCatalogVersion(ctx context.Context, catalogVersion string) error
}

// SeedDefaultCatalog runs the catalog seeder. A nil recorder skips version
// bookkeeping, which is how the in-memory store starts up.
func SeedDefaultCatalog(ctx context.Context, catalog usecase.CatalogUseCase, recorder CatalogVersionRecorder, logger coreport.Logger) (int, error) {
	inserted, err := catalog.EnsureCatalog(ctx)
	if err != nil {
		return 0, err
	}

	if recorder != nil {
		if err := recorder.RecordCatalogVersion(ctx, entity.CatalogVersion); err != nil {
			logger.Warn("Failed to record catalog version", map[string]any{
				"version": entity.CatalogVersion,
				"error":   err.Error(),
			})
		}
	}

	return inserted, nil
}
