package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/usecase/catalog"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/usecase/order"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/usecase/payment"

	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/notifier"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/security"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/session"
	timeProvider "github.com/amirhossein-jamali/smm-panel/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/smm-panel/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// driverMemory runs the panel without a database
const driverMemory = "memory"

// store bundles the persistence gateway with its lifecycle hooks
type store struct {
	gateway   persistence.Gateway
	recorder  migration.CatalogVersionRecorder
	keepAlive *database.KeepAlive
	close     func() error
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction())
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()
	ctx := context.Background()

	st, err := openStore(ctx, cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to open store", map[string]any{
			"driver": cfg.Database.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}

	// Operator notifications never block a request
	dispatcher := notifier.NewDispatcher(buildNotifier(cfg, appLogger), cfg.Notifier.Timeout, appLogger)

	hasher := security.NewPlainHasher()
	if cfg.Auth.HashPasswords {
		hasher = security.NewBcryptHasher(cfg.Auth.BcryptCost)
	}

	accountOptions := account.Options{
		VerifyPassword:   cfg.Auth.VerifyPassword,
		RelayCredentials: cfg.Notifier.RelayCredentials,
		BonusAmountCents: account.DefaultBonusAmountCents,
	}
	accountUseCase := account.NewUseCase(st.gateway, hasher, dispatcher, tp, appLogger, accountOptions)
	catalogUseCase := catalog.NewUseCase(st.gateway, appLogger)
	orderUseCase := order.NewUseCase(st.gateway, dispatcher, tp, appLogger)
	paymentUseCase := payment.NewUseCase(st.gateway, dispatcher, tp, appLogger)

	inserted, err := migration.SeedDefaultCatalog(ctx, catalogUseCase, st.recorder, appLogger)
	if err != nil {
		appLogger.Error("Failed to seed service catalog", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	appLogger.Info("Service catalog ready", map[string]any{"inserted": inserted})

	sessionStore, closeSessions, err := buildSessionStore(ctx, cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to open session store", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	sessionConfig := session.Config{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
		Domain:     cfg.Session.Domain,
	}
	if sessionConfig.Secret == "" {
		appLogger.Warn("No session secret configured, using a per-process secret", nil)
		sessionConfig.Secret = uuid.NewString()
	}
	sessions, err := session.NewManager(sessionStore, sessionConfig, tp)
	if err != nil {
		appLogger.Error("Failed to create session manager", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if st.keepAlive != nil {
		if err := st.keepAlive.Start(); err != nil {
			appLogger.Warn("Keep-alive probe not started", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := routes.RegisterValidators(); err != nil {
		appLogger.Error("Failed to register validators", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var probe handler.ProbeState
	if st.keepAlive != nil {
		probe = st.keepAlive
	}

	guards := routes.Guards{
		Session: middleware.RequireSession(sessions, appLogger),
		Admin:   middleware.AdminToken(cfg.Admin.RequireAuth, cfg.Admin.Token, appLogger),
	}
	if cfg.Auth.LoginRateLimit > 0 {
		guards.LoginLimit = middleware.NewRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst, tp, appLogger).Handler()
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, cfg.Server.AllowedOrigin)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:    handler.NewAuthHandler(accountUseCase, sessions, appLogger),
		Catalog: handler.NewCatalogHandler(catalogUseCase, appLogger),
		Order:   handler.NewOrderHandler(orderUseCase, appLogger),
		Payment: handler.NewPaymentHandler(paymentUseCase, appLogger),
		Bonus:   handler.NewBonusHandler(accountUseCase, accountOptions.BonusAmountCents, appLogger),
		Health:  handler.NewHealthHandler(st.gateway, probe, cfg.Database.QueryTimeout, appLogger),
	}, guards)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":           cfg.Server.Port,
			"env":            cfg.Environment,
			"driver":         cfg.Database.Driver,
			"verifyPassword": cfg.Auth.VerifyPassword,
			"adminAuth":      cfg.Admin.RequireAuth,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if st.keepAlive != nil {
		if err := st.keepAlive.Stop(shutdownCtx); err != nil {
			appLogger.Warn("Keep-alive probe did not stop cleanly", map[string]any{"error": err.Error()})
		}
	}

	if err := dispatcher.Close(shutdownCtx); err != nil {
		appLogger.Warn("Pending notifications were dropped", map[string]any{"error": err.Error()})
	}

	if err := closeSessions(); err != nil {
		appLogger.Warn("Failed to close session store", map[string]any{"error": err.Error()})
	}

	if err := st.close(); err != nil {
		appLogger.Warn("Failed to close store", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// openStore connects the configured persistence backend and migrates it
func openStore(ctx context.Context, cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) (*store, error) {
	if cfg.Database.Driver == driverMemory {
		appLogger.Warn("Using in-memory store, data is lost on restart", nil)
		return &store{
			gateway: memory.NewGateway(tp),
			close:   func() error { return nil },
		}, nil
	}

	dbManager := database.NewManager(databaseConfig(cfg), appLogger, tp)
	db, err := dbManager.Connect(ctx)
	if err != nil {
		return nil, err
	}

	migrations := migration.NewMigrationManager(db, appLogger, tp)
	if err := migrations.MigrateAll(ctx); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &store{
		gateway:   repository.NewGateway(db, tp, appLogger),
		recorder:  migrations,
		keepAlive: database.NewKeepAlive(db, cfg.Database.KeepAliveInterval, cfg.Database.QueryTimeout, appLogger, tp),
		close:     dbManager.Close,
	}, nil
}

// databaseConfig maps the application config onto the connection manager config
func databaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Driver:            cfg.Database.Driver,
		URL:               cfg.Database.URL,
		Host:              cfg.Database.Host,
		Port:              cfg.Database.Port,
		Username:          cfg.Database.Username,
		Password:          cfg.Database.Password,
		Database:          cfg.Database.Database,
		SSLMode:           cfg.Database.SSLMode,
		MaxOpenConns:      cfg.Database.MaxOpenConns,
		MaxIdleConns:      cfg.Database.MaxIdleConns,
		ConnMaxLifetime:   cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:   cfg.Database.ConnMaxIdleTime,
		QueryTimeout:      cfg.Database.QueryTimeout,
		KeepAliveInterval: cfg.Database.KeepAliveInterval,
		PoolStatsInterval: cfg.Database.PoolStatsInterval,
		LogLevel:          cfg.Database.LogLevel,
		RetryAttempts:     cfg.Database.RetryAttempts,
		RetryDelay:        cfg.Database.RetryDelay,
	}
}

// buildNotifier returns the Telegram notifier when credentials are present
func buildNotifier(cfg *config.Config, appLogger coreport.Logger) notification.Notifier {
	if !cfg.Notifier.TelegramEnabled() {
		appLogger.Info("Telegram notifier disabled, operator events are dropped", nil)
		return notifier.NewNoop()
	}

	telegram, err := notifier.NewTelegram(cfg.Notifier.Telegram.BotToken, cfg.Notifier.Telegram.ChatID, notifier.TelegramOptions{
		Endpoint: cfg.Notifier.Telegram.Endpoint,
	})
	if err != nil {
		appLogger.Warn("Telegram notifier unavailable, operator events are dropped", map[string]any{
			"error": err.Error(),
		})
		return notifier.NewNoop()
	}

	appLogger.Info("Telegram notifier ready", map[string]any{"bot": telegram.BotName()})
	return telegram
}

// buildSessionStore returns the Redis store when an address is configured
func buildSessionStore(ctx context.Context, cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) (session.Store, func() error, error) {
	if cfg.Redis.Addr == "" {
		if cfg.IsProduction() {
			appLogger.Warn("Sessions are kept in process memory", nil)
		}
		return session.NewMemoryStore(tp), func() error { return nil }, nil
	}

	client, err := session.NewRedisClient(ctx, session.RedisConfig{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
		PoolSize:    cfg.Redis.PoolSize,
	})
	if err != nil {
		return nil, nil, err
	}

	return session.NewRedisStore(client), client.Close, nil
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.IsProduction() {
		if cfg.Session.Secret == "" {
			missingConfigs = append(missingConfigs, "session.secret (or SMM_SESSION_SECRET environment variable)")
		}
		if cfg.Admin.RequireAuth && cfg.Admin.Token == "" {
			missingConfigs = append(missingConfigs, "admin.token (or SMM_ADMIN_TOKEN environment variable)")
		}
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Database.Driver == driverMemory {
		if cfg.IsProduction() {
			return errors.New("database.driver memory is not allowed in production")
		}
	} else if err := databaseConfig(cfg).Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if cfg.Auth.HashPasswords && (cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31) {
		return fmt.Errorf("auth.bcryptCost must be between 4 and 31, got: %d", cfg.Auth.BcryptCost)
	}

	if cfg.IsProduction() {
		var warnings []string

		if cfg.Database.URL == "" {
			switch strings.ToLower(cfg.Database.SSLMode) {
			case "require", "verify-ca", "verify-full":
			default:
				warnings = append(warnings, "database.sslMode should be 'require', 'verify-ca', or 'verify-full' in production")
			}
		}
		if !cfg.Session.Secure {
			warnings = append(warnings, "session.secure is off, cookies travel over plain HTTP")
		}
		if !cfg.Admin.RequireAuth {
			warnings = append(warnings, "admin.requireAuth is off, anyone can approve payments")
		}
		if cfg.Notifier.RelayCredentials {
			warnings = append(warnings, "notifier.relayCredentials sends submitted passwords to the operator chat")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
