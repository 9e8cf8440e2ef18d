package repository

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ServiceRepository implements persistence.ServiceRepository using GORM
type ServiceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewServiceRepository creates a new ServiceRepository instance
func NewServiceRepository(db *gorm.DB, logger coreport.Logger) *ServiceRepository {
	return &ServiceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func serviceToModel(service *entity.Service) model.Service {
	return model.Service{
		Name:         service.Name,
		Category:     service.Category,
		Rate:         service.Rate,
		MinOrder:     service.MinOrder,
		MaxOrder:     service.MaxOrder,
		DeliveryTime: service.DeliveryTime,
		Active:       service.Active,
		CreatedAt:    service.CreatedAt,
	}
}

func serviceToEntity(serviceModel *model.Service) *entity.Service {
	return &entity.Service{
		ID:           serviceModel.ID,
		Name:         serviceModel.Name,
		Category:     serviceModel.Category,
		Rate:         serviceModel.Rate,
		MinOrder:     serviceModel.MinOrder,
		MaxOrder:     serviceModel.MaxOrder,
		DeliveryTime: serviceModel.DeliveryTime,
		Active:       serviceModel.Active,
		CreatedAt:    serviceModel.CreatedAt,
	}
}

// ListActiveServices returns active services ordered by category, then name
func (r *ServiceRepository) ListActiveServices(ctx context.Context) ([]*entity.Service, error) {
	var serviceModels []model.Service
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category ASC, name ASC").
		Find(&serviceModels).Error
	if err != nil {
		mapped := r.errorClassifier.MapError("service", err)
		r.logger.Error("Database error when listing services", map[string]any{"error": err.Error()})
		return nil, mapped
	}

	services := make([]*entity.Service, 0, len(serviceModels))
	for i := range serviceModels {
		services = append(services, serviceToEntity(&serviceModels[i]))
	}
	return services, nil
}

// SeedServicesIfEmpty bulk-inserts catalog when the table has no rows. A
// concurrent seeder tripping the unique name index counts as already seeded.
func (r *ServiceRepository) SeedServicesIfEmpty(ctx context.Context, catalog []*entity.Service) (int, error) {
	inserted := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Service{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(catalog) == 0 {
			return nil
		}

		serviceModels := make([]model.Service, 0, len(catalog))
		for _, service := range catalog {
			serviceModels = append(serviceModels, serviceToModel(service))
		}
		if err := tx.Create(&serviceModels).Error; err != nil {
			return err
		}

		inserted = len(serviceModels)
		return nil
	})
	if err != nil {
		mapped := r.errorClassifier.MapError("service", err)
		if errs.IsConstraintViolationOn(mapped, "name") {
			r.logger.Warn("Catalog seeded concurrently", map[string]any{"error": err.Error()})
			return 0, nil
		}
		r.logger.Error("Database error when seeding services", map[string]any{"error": err.Error()})
		return 0, mapped
	}

	return inserted, nil
}
