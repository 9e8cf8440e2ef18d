package model

import (
	"time"
)

// LoginLog is one row per successful login
type LoginLog struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	UserID            uint64    `gorm:"not null;index"`
	InstagramUsername string    `gorm:"size:255;not null"`
	LoginCount        int       `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName specifies the table name for LoginLog
func (LoginLog) TableName() string {
	return "login_logs"
}
