package model

import (
	"time"
)

// MigrationVersion records each applied schema version and the catalog
// version that was seeded alongside it
type MigrationVersion struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	Version        string    `gorm:"type:varchar(20);not null;index"`
	CatalogVersion string    `gorm:"type:varchar(20)"`
	AppliedAt      time.Time `gorm:"not null"`
	Details        string    `gorm:"type:text"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}
