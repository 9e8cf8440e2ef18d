package repository

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"gorm.io/gorm"
)

var _ persistence.Gateway = (*Gateway)(nil)

// Gateway is the GORM implementation of persistence.Gateway. It composes the
// per-entity repositories, which share one *gorm.DB.
type Gateway struct {
	*UserRepository
	*OrderRepository
	*PaymentRepository
	*ServiceRepository
	*LoginLogRepository

	db *gorm.DB
}

// NewGateway creates a Gateway over db
func NewGateway(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *Gateway {
	return &Gateway{
		UserRepository:     NewUserRepository(db, timeProvider, logger),
		OrderRepository:    NewOrderRepository(db, logger),
		PaymentRepository:  NewPaymentRepository(db, logger),
		ServiceRepository:  NewServiceRepository(db, logger),
		LoginLogRepository: NewLoginLogRepository(db, timeProvider, logger),
		db:                 db,
	}
}

// Ping checks the underlying connection pool
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}
	return nil
}
