package session

import (
	"context"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/smm-panel/internal/domain/error"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
)

// Session is the server-side record behind a session cookie
type Session struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"userId"`
	UID       string    `json:"uid"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store persists session records. Load returns errs.ErrSessionNotFound for
// unknown or expired ids and errs.ErrStoreUnavailable for backend failures.
type Store interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process. Suitable for tests and a single node.
type MemoryStore struct {
	mu           sync.RWMutex
	sessions     map[string]Session
	timeProvider core.TimeProvider
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore(timeProvider core.TimeProvider) *MemoryStore {
	return &MemoryStore{
		sessions:     make(map[string]Session),
		timeProvider: timeProvider,
	}
}

// Save implements Store
func (s *MemoryStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	record := *session
	record.ExpiresAt = s.timeProvider.Now().Add(ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[record.ID] = record
	return nil
}

// Load implements Store
func (s *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.ErrSessionNotFound
	}
	if !s.timeProvider.Now().Before(record.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, errs.ErrSessionNotFound
	}

	return &record, nil
}

// Delete implements Store. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored records, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
