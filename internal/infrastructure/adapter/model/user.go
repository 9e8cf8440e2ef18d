package model

import (
	"time"
)

// User represents the database model for panel accounts
type User struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	UID               string    `gorm:"size:32;not null;uniqueIndex:idx_users_uid"`
	InstagramUsername string    `gorm:"size:255;not null;uniqueIndex:idx_users_instagram_username"`
	Password          string    `gorm:"size:255;not null"`
	WalletBalance     int64     `gorm:"not null;default:0"` // Balance in cents
	BonusClaimed      bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
