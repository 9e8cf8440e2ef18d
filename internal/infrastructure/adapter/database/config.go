package database

import (
	"errors"
	"fmt"
	"time"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents database configuration
type Config struct {
	Driver            string        `mapstructure:"driver"`
	URL               string        `mapstructure:"url"`
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Username          string        `mapstructure:"username"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"name"`
	SSLMode           string        `mapstructure:"sslMode"`
	MaxOpenConns      int           `mapstructure:"maxOpenConns"`
	MaxIdleConns      int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime   time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime   time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout      time.Duration `mapstructure:"queryTimeout"`
	KeepAliveInterval time.Duration `mapstructure:"keepAliveInterval"`
	PoolStatsInterval time.Duration `mapstructure:"poolStatsInterval"`
	LogLevel          string        `mapstructure:"logLevel"`
	RetryAttempts     int           `mapstructure:"retryAttempts"`
	RetryDelay        time.Duration `mapstructure:"retryDelay"`
}

// DefaultConfig returns a Config with default values.
// Credentials are left empty and must come from the environment.
func DefaultConfig() *Config {
	return &Config{
		Driver:            DriverPostgres,
		Port:              5432,
		SSLMode:           "disable",
		MaxOpenConns:      5,
		MaxIdleConns:      5,
		ConnMaxLifetime:   30 * time.Minute,
		ConnMaxIdleTime:   30 * time.Second,
		QueryTimeout:      10 * time.Second,
		KeepAliveInterval: 30 * time.Second,
		PoolStatsInterval: 30 * time.Second,
		LogLevel:          "warn",
		RetryAttempts:     3,
		RetryDelay:        2 * time.Second,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.URL == "" {
			if c.Host == "" {
				return errors.New("database host is required")
			}
			if c.Port <= 0 || c.Port > 65535 {
				return fmt.Errorf("invalid port number: %d", c.Port)
			}
			if c.Username == "" {
				return errors.New("database username is required")
			}
			if c.Database == "" {
				return errors.New("database name is required")
			}
			validSSLModes := map[string]bool{
				"disable":     true,
				"require":     true,
				"verify-ca":   true,
				"verify-full": true,
				"prefer":      true,
			}
			if !validSSLModes[c.SSLMode] {
				return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
			}
		}
	case DriverSQLite:
		if c.URL == "" {
			return errors.New("sqlite requires a database url (file path or file::memory:)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.KeepAliveInterval < time.Second {
		return fmt.Errorf("keep-alive interval must be at least 1s, got: %s", c.KeepAliveInterval)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %s", c.RetryDelay)
	}

	validLogLevels := map[string]bool{
		"silent": true,
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// DSN returns the database connection string.
// A configured URL wins over the discrete host fields.
func (c *Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// WithMaxOpenConnections returns a copy of the config with updated max open connections
func (c *Config) WithMaxOpenConnections(max int) *Config {
	newConfig := *c
	newConfig.MaxOpenConns = max
	return &newConfig
}

// WithQueryTimeout returns a copy of the config with updated query timeout
func (c *Config) WithQueryTimeout(timeout time.Duration) *Config {
	newConfig := *c
	newConfig.QueryTimeout = timeout
	return &newConfig
}

// WithKeepAliveInterval returns a copy of the config with updated keep-alive interval
func (c *Config) WithKeepAliveInterval(interval time.Duration) *Config {
	newConfig := *c
	newConfig.KeepAliveInterval = interval
	return &newConfig
}
