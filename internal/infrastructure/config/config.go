package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Session     SessionConfig  `mapstructure:"session"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Admin       AdminConfig    `mapstructure:"admin"`
	Notifier    NotifierConfig `mapstructure:"notifier"`
	Logger      LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigin     string        `mapstructure:"allowedOrigin"`
}

// DatabaseConfig contains database connection settings.
// Driver "memory" runs without a database.
type DatabaseConfig struct {
	Driver            string        `mapstructure:"driver"`
	URL               string        `mapstructure:"url"`
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	Username          string        `mapstructure:"username"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"sslMode"`
	MaxOpenConns      int           `mapstructure:"maxOpenConns"`
	MaxIdleConns      int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime   time.Duration `mapstructure:"connMaxLifetime"`   // minutes
	ConnMaxIdleTime   time.Duration `mapstructure:"connMaxIdleTime"`   // seconds
	QueryTimeout      time.Duration `mapstructure:"queryTimeout"`      // seconds
	KeepAliveInterval time.Duration `mapstructure:"keepAliveInterval"` // seconds
	PoolStatsInterval time.Duration `mapstructure:"poolStatsInterval"` // seconds
	RetryAttempts     int           `mapstructure:"retryAttempts"`
	RetryDelay        time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel          string        `mapstructure:"logLevel"`
}

// RedisConfig contains the session store connection. An empty Addr keeps
// sessions in process memory.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"poolSize"`
	DialTimeout time.Duration `mapstructure:"dialTimeout"` // seconds
}

// SessionConfig contains cookie settings
type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookieName"`
	TTL        time.Duration `mapstructure:"ttl"` // hours
	Secure     bool          `mapstructure:"secure"`
	Domain     string        `mapstructure:"domain"`
}

// AuthConfig contains login behavior switches
type AuthConfig struct {
	VerifyPassword bool `mapstructure:"verifyPassword"`
	HashPasswords  bool `mapstructure:"hashPasswords"`
	BcryptCost     int  `mapstructure:"bcryptCost"`
	LoginRateLimit int  `mapstructure:"loginRateLimit"` // attempts per minute per client IP, 0 disables
	LoginBurst     int  `mapstructure:"loginBurst"`
}

// AdminConfig guards the payment approval endpoints
type AdminConfig struct {
	RequireAuth bool   `mapstructure:"requireAuth"`
	Token       string `mapstructure:"token"`
}

// NotifierConfig contains operator chat settings
type NotifierConfig struct {
	Telegram         TelegramConfig `mapstructure:"telegram"`
	RelayCredentials bool           `mapstructure:"relayCredentials"`
	Timeout          time.Duration  `mapstructure:"timeout"` // seconds
}

// TelegramConfig contains bot credentials. Empty values disable delivery.
type TelegramConfig struct {
	BotToken string `mapstructure:"botToken"`
	ChatID   int64  `mapstructure:"chatId"`
	Endpoint string `mapstructure:"endpoint"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction reports whether the production environment is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// TelegramEnabled reports whether both bot credentials are present
func (c *NotifierConfig) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != 0
}
