package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userToEntity(userModel *model.User) *entity.User {
	user := &entity.User{
		ID:                userModel.ID,
		UID:               userModel.UID,
		InstagramUsername: userModel.InstagramUsername,
		Password:          userModel.Password,
		BonusClaimed:      userModel.BonusClaimed,
		CreatedAt:         userModel.CreatedAt,
	}
	user.SetBalance(userModel.WalletBalance)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	mapped := r.errorClassifier.MapError("user", err)
	if errs.IsStoreUnavailableError(mapped) {
		fields["error"] = err.Error()
		r.logger.Error("Database error when "+operation, fields)
	}
	return mapped
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, map[string]any{"user_id": id})
	}
	return userToEntity(&userModel), nil
}

// GetUserByInstagramUsername retrieves a user by login handle
func (r *UserRepository) GetUserByInstagramUsername(ctx context.Context, instagramUsername string) (*entity.User, error) {
	var userModel model.User
	err := r.db.WithContext(ctx).
		Where("instagram_username = ?", instagramUsername).
		First(&userModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting user by username", err, map[string]any{
			"instagram_username": instagramUsername,
		})
	}
	return userToEntity(&userModel), nil
}

// CreateUser inserts a new user and assigns user.ID
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	now := r.timeProvider.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	userModel := model.User{
		UID:               user.UID,
		InstagramUsername: user.InstagramUsername,
		Password:          user.Password,
		WalletBalance:     user.Balance(),
		BonusClaimed:      user.BonusClaimed,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         now,
	}

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, map[string]any{"uid": user.UID})
	}

	user.ID = userModel.ID
	r.logger.Debug("User created", map[string]any{
		"user_id": user.ID,
		"uid":     user.UID,
	})
	return nil
}

// SetUserBalance overwrites the wallet balance
func (r *UserRepository) SetUserBalance(ctx context.Context, userID uint64, balanceCents int64) error {
	if balanceCents < 0 {
		return errs.ErrNegativeAmount
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", balanceCents)
	if result.Error != nil {
		return r.handleDatabaseError("setting balance", result.Error, map[string]any{"user_id": userID})
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}

	r.logger.Info("User balance overwritten", map[string]any{
		"user_id": userID,
		"balance": entity.AmountInCentsToString(balanceCents),
	})
	return nil
}

// MarkBonusClaimed sets bonus_claimed without crediting anything
func (r *UserRepository) MarkBonusClaimed(ctx context.Context, userID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("bonus_claimed", true)
	if result.Error != nil {
		return r.handleDatabaseError("marking bonus", result.Error, map[string]any{"user_id": userID})
	}
	if result.RowsAffected == 0 {
		// a repeated mark on some drivers reports zero changed rows
		if _, err := r.GetUserByID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// ClaimBonus credits amountCents in one conditional update that only matches
// while bonus_claimed is still false
func (r *UserRepository) ClaimBonus(ctx context.Context, userID uint64, amountCents int64) (*entity.User, error) {
	if amountCents < 0 {
		return nil, errs.ErrNegativeAmount
	}

	var user *entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND bonus_claimed = ?", userID, false).
			Updates(map[string]any{
				"wallet_balance": gorm.Expr("wallet_balance + ?", amountCents),
				"bonus_claimed":  true,
			})
		if result.Error != nil {
			return result.Error
		}

		var userModel model.User
		if err := tx.First(&userModel, userID).Error; err != nil {
			return err
		}
		if result.RowsAffected == 0 {
			return errs.ErrBonusAlreadyClaimed
		}

		user = userToEntity(&userModel)
		return nil
	})
	if err != nil {
		return nil, r.handleDatabaseError("claiming bonus", err, map[string]any{"user_id": userID})
	}

	return user, nil
}
