package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisConfig holds the connection settings for the session backend
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	PoolSize     int           `mapstructure:"poolSize"`
}

// NewRedisClient creates a client and verifies it with PING
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// RedisStore keeps sessions as JSON under session:<id> with a TTL
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a RedisStore on top of an existing client
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Key returns the redis key for a session id
func Key(id string) string {
	return keyPrefix + id
}

// Save implements Store
func (s *RedisStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	record := *session
	record.ExpiresAt = record.CreatedAt.Add(ttl)

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, Key(record.ID), payload, ttl).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

// Load implements Store
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrSessionNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}

	var record Session
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &record, nil
}

// Delete implements Store
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, Key(id)).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: session store: %v", errs.ErrStoreUnavailable, err)
}
