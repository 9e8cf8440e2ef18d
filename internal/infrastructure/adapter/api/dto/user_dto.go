package dto

import (
	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
)

// LoginRequest is the login form. The password limit matches bcrypt's input limit.
type LoginRequest struct {
	InstagramUsername string `json:"instagramUsername" binding:"required,max=64"`
	Password          string `json:"password" binding:"required,max=72"`
}

// UserResponse is the public view of an account. The password never leaves the server.
type UserResponse struct {
	ID                uint64 `json:"id"`
	UID               string `json:"uid"`
	InstagramUsername string `json:"instagramUsername"`
	WalletBalance     string `json:"walletBalance"`
	BonusClaimed      bool   `json:"bonusClaimed"`
}

// LoginResponse wraps the account of a successful login
type LoginResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// NewUserResponse maps a domain user to its API view
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		UID:               user.UID,
		InstagramUsername: user.InstagramUsername,
		WalletBalance:     user.GetBalance(),
		BonusClaimed:      user.BonusClaimed,
	}
}
