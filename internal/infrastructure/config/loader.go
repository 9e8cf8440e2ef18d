package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every application environment variable
const EnvPrefix = "SMM"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment.
// Precedence: explicit env overrides, SMM_* variables, configs/<env>.yaml, defaults.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		fmt.Printf("Warning: no %s.yaml found, using defaults and environment\n", env)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := processEnvOverrides(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Existing variables win.
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errors.New("no .env file found in search paths")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 10000)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.allowedOrigin", "")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 5)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 30)
	v.SetDefault("database.queryTimeout", 10)
	v.SetDefault("database.keepAliveInterval", 30)
	v.SetDefault("database.poolStatsInterval", 30)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2)
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.dialTimeout", 5)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookieName", "smm.sid")
	v.SetDefault("session.ttl", 24)
	v.SetDefault("session.secure", false)
	v.SetDefault("session.domain", "")

	v.SetDefault("auth.verifyPassword", false)
	v.SetDefault("auth.hashPasswords", true)
	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.loginRateLimit", 30)
	v.SetDefault("auth.loginBurst", 10)

	v.SetDefault("admin.requireAuth", true)
	v.SetDefault("admin.token", "")

	v.SetDefault("notifier.telegram.botToken", "")
	v.SetDefault("notifier.telegram.chatId", 0)
	v.SetDefault("notifier.telegram.endpoint", "")
	v.SetDefault("notifier.relayCredentials", false)
	v.SetDefault("notifier.timeout", 5)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}

// getEnvironment determines the environment from SMM_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides maps the conventional variable names of the hosting
// platform and the secrets onto config keys. The first non-empty name wins.
func processEnvOverrides(v *viper.Viper) error {
	stringOverrides := []struct {
		key   string
		names []string
	}{
		{"database.driver", []string{"SMM_DB_DRIVER"}},
		{"database.url", []string{"SMM_DB_URL", "DATABASE_URL"}},
		{"database.host", []string{"SMM_DB_HOST"}},
		{"database.username", []string{"SMM_DB_USERNAME"}},
		{"database.password", []string{"SMM_DB_PASSWORD"}},
		{"database.database", []string{"SMM_DB_NAME"}},
		{"database.sslMode", []string{"SMM_DB_SSL_MODE"}},
		{"redis.addr", []string{"SMM_REDIS_ADDR"}},
		{"redis.password", []string{"SMM_REDIS_PASSWORD"}},
		{"session.secret", []string{"SMM_SESSION_SECRET", "SESSION_SECRET", "JWT_SECRET"}},
		{"admin.token", []string{"SMM_ADMIN_TOKEN"}},
		{"notifier.telegram.botToken", []string{"SMM_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN"}},
		{"server.allowedOrigin", []string{"SMM_ALLOWED_ORIGIN"}},
		{"logger.level", []string{"SMM_LOGGER_LEVEL"}},
	}
	for _, o := range stringOverrides {
		if value := firstEnv(o.names...); value != "" {
			v.Set(o.key, value)
		}
	}

	intOverrides := []struct {
		key   string
		names []string
	}{
		{"server.port", []string{"SMM_SERVER_PORT", "PORT"}},
		{"database.port", []string{"SMM_DB_PORT"}},
		{"database.maxOpenConns", []string{"SMM_DB_MAX_OPEN_CONNS"}},
		{"database.keepAliveInterval", []string{"SMM_DB_KEEPALIVE_SECONDS"}},
	}
	for _, o := range intOverrides {
		if value, ok, err := envInt(o.names...); err != nil {
			return err
		} else if ok {
			v.Set(o.key, value)
		}
	}

	if raw := firstEnv("SMM_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid telegram chat id %q: %w", raw, err)
		}
		v.Set("notifier.telegram.chatId", chatID)
	}

	return nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

func envInt(names ...string) (int, bool, error) {
	for _, name := range names {
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, fmt.Errorf("invalid integer in %s: %w", name, err)
		}
		return value, true, nil
	}
	return 0, false, nil
}

// processDurations converts the integer units read from config into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second

	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Second
	config.Database.QueryTimeout = config.Database.QueryTimeout * time.Second
	config.Database.KeepAliveInterval = config.Database.KeepAliveInterval * time.Second
	config.Database.PoolStatsInterval = config.Database.PoolStatsInterval * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second

	config.Redis.DialTimeout = config.Redis.DialTimeout * time.Second
	config.Session.TTL = config.Session.TTL * time.Hour
	config.Notifier.Timeout = config.Notifier.Timeout * time.Second
}
