package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes that GORM tags cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

var advancedIndexes = []struct {
	name string
	sql  string
}{
	{
		// admin review queue
		name: "idx_payments_pending",
		sql: `CREATE INDEX IF NOT EXISTS idx_payments_pending
			ON payments (created_at)
			WHERE status = 'Pending'`,
	},
	{
		name: "idx_login_logs_user_created",
		sql: `CREATE INDEX IF NOT EXISTS idx_login_logs_user_created
			ON login_logs (user_id, created_at)`,
	},
	{
		name: "idx_orders_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_orders_created_at_brin
			ON orders USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_services_active",
		sql: `CREATE INDEX IF NOT EXISTS idx_services_active
			ON services (category, name)
			WHERE active`,
	},
}

// CreateAdvancedIndexes creates the partial and BRIN indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, index := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies table storage settings. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// wallet_balance is rewritten on every order, bonus and approval
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE users SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for users table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE payments SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for payments table", map[string]any{
			"error": err.Error(),
		})
	}
}
