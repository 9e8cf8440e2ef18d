package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  readTimeout: 20
database:
  driver: sqlite
  url: "file::memory:"
  keepAliveInterval: 45
auth:
  verifyPassword: true
admin:
  requireAuth: false
notifier:
  relayCredentials: true
logger:
  level: debug
`

func useTempPaths(t *testing.T, yaml, dotenv string) {
	t.Helper()

	dir := t.TempDir()
	if yaml != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(yaml), 0o600))
	}
	envFile := filepath.Join(dir, ".env")
	if dotenv != "" {
		require.NoError(t, os.WriteFile(envFile, []byte(dotenv), 0o600))
	}

	oldConfigPaths, oldDotEnvPaths := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = []string{envFile}
	t.Cleanup(func() {
		ConfigPaths, DotEnvPaths = oldConfigPaths, oldDotEnvPaths
	})

	t.Setenv("SMM_ENV", "test")
}

func TestLoadConfigFromFile(t *testing.T) {
	useTempPaths(t, testYAML, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.URL)
	assert.Equal(t, 45*time.Second, cfg.Database.KeepAliveInterval)
	assert.Equal(t, 30*time.Second, cfg.Database.ConnMaxIdleTime)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Auth.VerifyPassword)
	assert.True(t, cfg.Auth.HashPasswords)
	assert.False(t, cfg.Admin.RequireAuth)
	assert.True(t, cfg.Notifier.RelayCredentials)
	assert.Equal(t, 5*time.Second, cfg.Notifier.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "smm.sid", cfg.Session.CookieName)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.False(t, cfg.Notifier.TelegramEnabled())
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	useTempPaths(t, "", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.Database.KeepAliveInterval)
	assert.False(t, cfg.Auth.VerifyPassword)
	assert.True(t, cfg.Admin.RequireAuth)
	assert.False(t, cfg.Notifier.RelayCredentials)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	useTempPaths(t, testYAML, "")

	t.Setenv("PORT", "8088")
	t.Setenv("DATABASE_URL", "postgres://smm:pw@db:5432/smm")
	t.Setenv("SMM_DB_DRIVER", "postgres")
	t.Setenv("SMM_SESSION_SECRET", "very-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("SMM_ADMIN_TOKEN", "admin-token")
	t.Setenv("SMM_AUTH_VERIFYPASSWORD", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://smm:pw@db:5432/smm", cfg.Database.URL)
	assert.Equal(t, "very-secret", cfg.Session.Secret)
	assert.Equal(t, "123:abc", cfg.Notifier.Telegram.BotToken)
	assert.Equal(t, int64(-100200300), cfg.Notifier.Telegram.ChatID)
	assert.True(t, cfg.Notifier.TelegramEnabled())
	assert.Equal(t, "admin-token", cfg.Admin.Token)
	assert.False(t, cfg.Auth.VerifyPassword)
}

func TestLoadConfigPrefixedEnvWinsOverPlatformName(t *testing.T) {
	useTempPaths(t, testYAML, "")

	t.Setenv("SMM_SERVER_PORT", "7000")
	t.Setenv("PORT", "8000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfigInvalidChatID(t *testing.T) {
	useTempPaths(t, testYAML, "")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram chat id")
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	useTempPaths(t, testYAML, "SMM_SESSION_SECRET=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv("SMM_SESSION_SECRET") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Session.Secret)
}
