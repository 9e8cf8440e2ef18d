package migration

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// NormalizePaymentStatus rewrites the legacy "Rejected" payment status to "Declined"
type NormalizePaymentStatus struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewNormalizePaymentStatus creates a new migration instance
func NewNormalizePaymentStatus(db *gorm.DB, logger coreport.Logger) *NormalizePaymentStatus {
	return &NormalizePaymentStatus{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *NormalizePaymentStatus) Run(ctx context.Context) error {
	m.logger.Info("Normalizing legacy payment statuses", nil)

	result := m.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ?", "Rejected").
		Update("status", string(entity.PaymentStatusDeclined))
	if result.Error != nil {
		m.logger.Error("Failed to normalize payment statuses", map[string]any{"error": result.Error.Error()})
		return result.Error
	}

	m.logger.Info("Normalized legacy payment statuses", map[string]any{"rows": result.RowsAffected})
	return nil
}
