package account

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
)

// ClaimBonus credits the signup bonus exactly once
func (u *UseCase) ClaimBonus(ctx context.Context, userID uint64) (*entity.User, error) {
	user, err := u.gateway.ClaimBonus(ctx, userID, u.options.BonusAmountCents)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Bonus claimed", map[string]any{
		"userId":     user.ID,
		"amount":     entity.AmountInCentsToString(u.options.BonusAmountCents),
		"newBalance": user.GetBalance(),
	})

	u.notify(ctx, notification.Event{
		Action: notification.ActionBonus,
		UID:    user.UID,
		Fields: map[string]string{
			notification.FieldAmount: entity.AmountInCentsToDisplay(u.options.BonusAmountCents),
		},
	})

	return user, nil
}
