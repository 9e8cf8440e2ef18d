package migration

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/entity"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/usecase/catalog"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/model"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/repository"
	timeadapter "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestMigrateAllFreshDatabase(t *testing.T) {
	db := newTestDB(t)
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	manager := NewMigrationManager(db, logger.NewNoopLogger(), clock)
	ctx := context.Background()

	version, err := manager.GetCurrentVersion(ctx)
	require.Error(t, err, "version table does not exist before the first run")
	assert.Empty(t, version)

	require.NoError(t, manager.MigrateAll(ctx))

	version, err = manager.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	for _, table := range []string{"users", "orders", "payments", "services", "login_logs", "migration_versions"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&model.User{}, "idx_users_instagram_username"))
	assert.True(t, db.Migrator().HasIndex(&model.Payment{}, "idx_payments_utr_number"))

	// second run is a no-op
	clock.Advance(time.Minute)
	require.NoError(t, manager.MigrateAll(ctx))

	var rows int64
	require.NoError(t, db.Model(&model.MigrationVersion{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestMigrateAllNormalizesLegacyPaymentStatus(t *testing.T) {
	db := newTestDB(t)
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	require.NoError(t, db.AutoMigrate(
		&model.MigrationVersion{},
		&model.User{},
		&model.Service{},
		&model.Order{},
		&model.Payment{},
		&model.LoginLog{},
	))
	require.NoError(t, db.Create(&model.MigrationVersion{Version: "1.0.0", AppliedAt: clock.Now()}).Error)

	user := model.User{UID: "UIDLEGACY01", InstagramUsername: "legacy", Password: "pw", CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Create(&user).Error)
	payment := model.Payment{UserID: user.ID, Amount: 50000, UTRNumber: "UTR-OLD", PaymentMethod: "UPI", Status: "Rejected", CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Omit("User").Create(&payment).Error)

	clock.Advance(time.Hour)
	manager := NewMigrationManager(db, logger.NewNoopLogger(), clock)
	require.NoError(t, manager.MigrateAll(ctx))

	var stored model.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, string(entity.PaymentStatusDeclined), stored.Status)

	version, err := manager.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestMigrateAllNormalizesUnversionedDatabase(t *testing.T) {
	db := newTestDB(t)
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// tables created by an earlier deployment, without migration_versions
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Service{},
		&model.Order{},
		&model.Payment{},
		&model.LoginLog{},
	))
	require.False(t, db.Migrator().HasTable(&model.MigrationVersion{}))

	user := model.User{UID: "UIDLEGACY02", InstagramUsername: "legacy2", Password: "pw", CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Create(&user).Error)
	rejected := model.Payment{UserID: user.ID, Amount: 10000, UTRNumber: "UTR-R", PaymentMethod: "UPI", Status: "Rejected", CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Omit("User").Create(&rejected).Error)
	pending := model.Payment{UserID: user.ID, Amount: 20000, UTRNumber: "UTR-P", PaymentMethod: "UPI", Status: "Pending", CreatedAt: clock.Now(), UpdatedAt: clock.Now()}
	require.NoError(t, db.Omit("User").Create(&pending).Error)

	manager := NewMigrationManager(db, logger.NewNoopLogger(), clock)
	require.NoError(t, manager.MigrateAll(ctx))

	var stored model.Payment
	require.NoError(t, db.First(&stored, rejected.ID).Error)
	assert.Equal(t, string(entity.PaymentStatusDeclined), stored.Status)

	require.NoError(t, db.First(&stored, pending.ID).Error)
	assert.Equal(t, string(entity.PaymentStatusPending), stored.Status)

	version, err := manager.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestSeedDefaultCatalogRecordsVersion(t *testing.T) {
	db := newTestDB(t)
	clock := timeadapter.NewFixedTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	log := logger.NewNoopLogger()
	manager := NewMigrationManager(db, log, clock)
	ctx := context.Background()

	require.NoError(t, manager.MigrateAll(ctx))

	gateway := repository.NewGateway(db, clock, log)
	catalogUseCase := catalog.NewUseCase(gateway, log)

	inserted, err := manager.SeedDefaultCatalog(ctx, catalogUseCase)
	require.NoError(t, err)
	assert.Equal(t, len(entity.DefaultCatalog()), inserted)

	catalogVersion, err := manager.GetCatalogVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.CatalogVersion, catalogVersion)

	inserted, err = manager.SeedDefaultCatalog(ctx, catalogUseCase)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	services, err := catalogUseCase.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 9)
}

func TestRecordCatalogVersionRequiresSchema(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&model.MigrationVersion{}))
	manager := NewMigrationManager(db, logger.NewNoopLogger(), timeadapter.NewRealTimeProvider())

	assert.Error(t, manager.RecordCatalogVersion(context.Background(), entity.CatalogVersion))
}
