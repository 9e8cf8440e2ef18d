package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "smm-panel"

// Defaults
const (
	DefaultCookieName = "smm.sid"
	DefaultTTL        = 24 * time.Hour
)

// Config configures cookie signing and lifetime
type Config struct {
	Secret     string        `mapstructure:"secret"`
	CookieName string        `mapstructure:"cookieName"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
	Domain     string        `mapstructure:"domain"`
}

// Manager issues and resolves session cookies. The cookie carries an HS256
// token whose jti names the server-side record and whose sub is the user uid.
type Manager struct {
	store        Store
	config       Config
	timeProvider core.TimeProvider
	newID        func() string
}

// NewManager creates a session manager
func NewManager(store Store, config Config, timeProvider core.TimeProvider) (*Manager, error) {
	if config.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if config.CookieName == "" {
		config.CookieName = DefaultCookieName
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}

	return &Manager{
		store:        store,
		config:       config,
		timeProvider: timeProvider,
		newID:        uuid.NewString,
	}, nil
}

// CookieName returns the name of the session cookie
func (m *Manager) CookieName() string {
	return m.config.CookieName
}

// Create stores a new session for the user and returns it with its signed token
func (m *Manager) Create(ctx context.Context, userID uint64, uid string) (*Session, string, error) {
	now := m.timeProvider.Now()
	record := &Session{
		ID:        m.newID(),
		UserID:    userID,
		UID:       uid,
		CreatedAt: now,
		ExpiresAt: now.Add(m.config.TTL),
	}

	token, err := m.sign(record)
	if err != nil {
		return nil, "", err
	}

	if err := m.store.Save(ctx, record, m.config.TTL); err != nil {
		return nil, "", err
	}

	return record, token, nil
}

// Resolve validates the token and loads its session record
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}

	record, err := m.store.Load(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if record.UID != claims.Subject {
		return nil, fmt.Errorf("%w: token subject does not match session", errs.ErrUnauthenticated)
	}

	return record, nil
}

// Destroy removes the session named by the token. Invalid tokens have
// nothing to destroy and return nil.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}

// Cookie builds the Set-Cookie value for a freshly issued token
func (m *Manager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		Domain:   m.config.Domain,
		MaxAge:   int(m.config.TTL / time.Second),
		Secure:   m.config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that clears the session on the client
func (m *Manager) ExpiredCookie() *http.Cookie {
	cookie := m.Cookie("")
	cookie.MaxAge = -1
	return cookie
}

func (m *Manager) sign(record *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        record.ID,
		Subject:   record.UID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(record.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(m.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.timeProvider.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token has no session id", errs.ErrUnauthenticated)
	}

	return claims, nil
}
