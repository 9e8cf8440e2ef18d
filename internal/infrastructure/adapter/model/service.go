package model

import (
	"time"
)

// Service represents a catalog row. Active carries no default tag so that
// inactive rows are written as false instead of the column default.
type Service struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_services_name;index:idx_services_category_name,priority:2"`
	Category     string    `gorm:"size:100;not null;index:idx_services_category_name,priority:1"`
	Rate         int64     `gorm:"not null"` // Rate in cents
	MinOrder     int       `gorm:"not null"`
	MaxOrder     int       `gorm:"not null"`
	DeliveryTime string    `gorm:"size:100;not null"`
	Active       bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}
