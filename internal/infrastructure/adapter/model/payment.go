package model

import (
	"time"
)

// Payment represents the database model for manual top-ups
type Payment struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index:idx_payments_user_created,priority:1"`
	Amount        int64     `gorm:"not null"` // Amount in cents
	UTRNumber     string    `gorm:"column:utr_number;size:64;not null;uniqueIndex:idx_payments_utr_number"`
	PaymentMethod string    `gorm:"size:50;not null"`
	Status        string    `gorm:"size:20;not null;index"`
	CreatedAt     time.Time `gorm:"not null;index:idx_payments_user_created,priority:2"`
	UpdatedAt     time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
