package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
)

// User is a panel account identified by an Instagram handle
type User struct {
	ID                uint64    // Internal numeric identifier
	UID               string    // User-facing account handle, e.g. UID4K2J9QZ1X
	InstagramUsername string    // Unique login handle
	Password          string    // Stored credential (bcrypt hash or legacy plaintext)
	balance           int64     // Wallet balance in cents
	BonusClaimed      bool      // Set once the signup bonus has been credited
	CreatedAt         time.Time // When the account was auto-registered
}

// NewUser creates a user with a zero wallet and an unclaimed bonus
func NewUser(uid, instagramUsername, password string, createdAt time.Time) (*User, error) {
	instagramUsername = strings.TrimSpace(instagramUsername)
	if instagramUsername == "" {
		return nil, errs.NewValidationError("instagramUsername", "must not be empty")
	}
	if password == "" {
		return nil, errs.NewValidationError("password", "must not be empty")
	}
	if uid == "" {
		return nil, errs.NewValidationError("uid", "must not be empty")
	}

	return &User{
		UID:               uid,
		InstagramUsername: instagramUsername,
		Password:          password,
		CreatedAt:         createdAt,
	}, nil
}

// Balance returns the wallet balance in cents
func (u *User) Balance() int64 {
	return u.balance
}

// GetBalance returns the wallet balance as a string with 2 decimal places
func (u *User) GetBalance() string {
	return AmountInCentsToString(u.balance)
}

// SetBalance overwrites the wallet balance (for repositories)
func (u *User) SetBalance(balanceInCents int64) {
	u.balance = balanceInCents
}

// CanDeduct reports whether the wallet covers amountInCents
func (u *User) CanDeduct(amountInCents int64) bool {
	return u.balance >= amountInCents
}

// Debit subtracts amountInCents if the wallet covers it
func (u *User) Debit(amountInCents int64) error {
	if amountInCents < 0 {
		return errs.ErrNegativeAmount
	}
	if !u.CanDeduct(amountInCents) {
		return errs.NewInsufficientBalanceError(u.ID, AmountInCentsToString(amountInCents), u.GetBalance())
	}
	u.balance -= amountInCents
	return nil
}

// Credit adds amountInCents to the wallet
func (u *User) Credit(amountInCents int64) error {
	if amountInCents < 0 {
		return errs.ErrNegativeAmount
	}
	u.balance += amountInCents
	return nil
}

// ClaimBonus credits the bonus and flips BonusClaimed, exactly once
func (u *User) ClaimBonus(amountInCents int64) error {
	if u.BonusClaimed {
		return errs.ErrBonusAlreadyClaimed
	}
	if err := u.Credit(amountInCents); err != nil {
		return err
	}
	u.BonusClaimed = true
	return nil
}
