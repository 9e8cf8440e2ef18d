package model

import (
	"time"
)

// Order represents the database model for wallet-paid orders
type Order struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID           string    `gorm:"size:64;not null;uniqueIndex:idx_orders_order_id"`
	UserID            uint64    `gorm:"not null;index:idx_orders_user_created,priority:1"`
	ServiceName       string    `gorm:"size:255;not null"`
	InstagramUsername string    `gorm:"size:255;not null"`
	Quantity          int       `gorm:"not null"`
	Price             int64     `gorm:"not null"` // Price in cents
	Status            string    `gorm:"size:20;not null"`
	CreatedAt         time.Time `gorm:"not null;index:idx_orders_user_created,priority:2"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
