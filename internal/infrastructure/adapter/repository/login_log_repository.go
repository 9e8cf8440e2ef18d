package repository

import (
	"context"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginLogRepository implements persistence.LoginLogRepository using GORM
type LoginLogRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLoginLogRepository creates a new LoginLogRepository instance
func NewLoginLogRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LoginLogRepository {
	return &LoginLogRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// AppendLoginLog records a login and returns its count for the user.
// Concurrent logins of one user are serialized on the user row under
// postgres; sqlite already allows a single writer at a time.
func (r *LoginLogRepository) AppendLoginLog(ctx context.Context, userID uint64, instagramUsername string) (int, error) {
	var loginCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			// a missing user falls through to the foreign key on insert
			var owner model.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").Where("id = ?", userID).Limit(1).Find(&owner).Error; err != nil {
				return err
			}
		}

		var prior int64
		if err := tx.Model(&model.LoginLog{}).Where("user_id = ?", userID).Count(&prior).Error; err != nil {
			return err
		}

		logModel := model.LoginLog{
			UserID:            userID,
			InstagramUsername: instagramUsername,
			LoginCount:        int(prior) + 1,
			CreatedAt:         r.timeProvider.Now(),
		}
		if err := tx.Omit(clause.Associations).Create(&logModel).Error; err != nil {
			return err
		}

		loginCount = logModel.LoginCount
		return nil
	})
	if err != nil {
		return 0, r.errorClassifier.MapError("login_log", err)
	}

	return loginCount, nil
}
