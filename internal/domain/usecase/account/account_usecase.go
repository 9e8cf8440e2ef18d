package account

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/usecase"
)

// DefaultBonusAmountCents is the one-time signup bonus (10.00)
const DefaultBonusAmountCents int64 = 1000

// maxIdentifierAttempts bounds retries when a generated uid collides
const maxIdentifierAttempts = 3

var _ usecase.AccountUseCase = (*UseCase)(nil)

// Options are the account policy toggles
type Options struct {
	// VerifyPassword makes repeat logins check the stored credential
	VerifyPassword bool

	// RelayCredentials puts the submitted password into the login event
	RelayCredentials bool

	// BonusAmountCents is credited by ClaimBonus; zero means DefaultBonusAmountCents
	BonusAmountCents int64
}

// UseCase implements usecase.AccountUseCase
type UseCase struct {
	gateway      persistence.Gateway
	hasher       coreport.PasswordHasher
	notifier     notification.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	options      Options
	generateUID  func() string
}

// NewUseCase creates a new account UseCase
func NewUseCase(
	gateway persistence.Gateway,
	hasher coreport.PasswordHasher,
	notifier notification.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	options Options,
) *UseCase {
	if options.BonusAmountCents <= 0 {
		options.BonusAmountCents = DefaultBonusAmountCents
	}

	return &UseCase{
		gateway:      gateway,
		hasher:       hasher,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger.With(map[string]any{"component": "account"}),
		options:      options,
		generateUID:  entity.GenerateUID,
	}
}

// GetUser returns the account behind a session
func (u *UseCase) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	return u.gateway.GetUserByID(ctx, userID)
}

func (u *UseCase) notify(ctx context.Context, event notification.Event) {
	if err := u.notifier.Notify(ctx, event); err != nil {
		u.logger.Warn("Operator notification failed", map[string]any{
			"action": event.Action,
			"uid":    event.UID,
			"error":  err,
		})
	}
}
