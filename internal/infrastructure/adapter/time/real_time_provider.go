package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface with the wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current time in UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed since t
func (p *RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// FixedTimeProvider is a manually advanced clock for tests
type FixedTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedTimeProvider creates a clock pinned at now
func NewFixedTimeProvider(now time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: now}
}

// Now returns the pinned time
func (p *FixedTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// Since returns the pinned time minus t
func (p *FixedTimeProvider) Since(t time.Time) time.Duration {
	return p.Now().Sub(t)
}

// WithTimeout delegates to context.WithTimeout
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Advance moves the clock forward by d
func (p *FixedTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = p.now.Add(d)
}
