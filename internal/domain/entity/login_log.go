package entity

import "time"

// LoginLog records one login event and the running count for the user
type LoginLog struct {
	ID                uint64
	UserID            uint64
	InstagramUsername string
	LoginCount        int
	CreatedAt         time.Time
}
