package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ErrKeepAliveRunning is returned when Start is called twice
var ErrKeepAliveRunning = errors.New("keep-alive already running")

// KeepAlive issues SELECT 1 against the pool on a fixed schedule so idle
// connections are not reaped by the server. Failures are logged, never fatal.
type KeepAlive struct {
	db           *gorm.DB
	interval     time.Duration
	timeout      time.Duration
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	scheduler    *cron.Cron

	mu      sync.RWMutex
	running bool
	lastErr error
	lastRun time.Time
}

// NewKeepAlive creates a probe; timeout bounds every individual SELECT 1
func NewKeepAlive(db *gorm.DB, interval, timeout time.Duration, logger coreport.Logger, timeProvider coreport.TimeProvider) *KeepAlive {
	return &KeepAlive{
		db:           db,
		interval:     interval,
		timeout:      timeout,
		logger:       logger.With(map[string]any{"component": "keepalive"}),
		timeProvider: timeProvider,
		scheduler:    cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start schedules the probe
func (k *KeepAlive) Start() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		return ErrKeepAliveRunning
	}
	if k.interval < time.Second {
		return fmt.Errorf("keep-alive interval must be at least 1s, got %s", k.interval)
	}

	schedule := fmt.Sprintf("@every %s", k.interval)
	if _, err := k.scheduler.AddFunc(schedule, func() { _ = k.Probe(context.Background()) }); err != nil {
		return fmt.Errorf("schedule keep-alive %q: %w", schedule, err)
	}

	k.scheduler.Start()
	k.running = true

	k.logger.Info("Database keep-alive started", map[string]any{"interval": k.interval.String()})
	return nil
}

// Stop halts scheduling and waits for a running probe, bounded by ctx
func (k *KeepAlive) Stop(ctx context.Context) error {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return nil
	}
	k.running = false
	k.mu.Unlock()

	done := k.scheduler.Stop()
	select {
	case <-done.Done():
		k.logger.Info("Database keep-alive stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Probe runs a single SELECT 1 and records the outcome
func (k *KeepAlive) Probe(ctx context.Context) error {
	probeCtx, cancel := k.timeProvider.WithTimeout(ctx, k.timeout)
	defer cancel()

	err := k.db.WithContext(probeCtx).Exec("SELECT 1").Error

	k.mu.Lock()
	k.lastErr = err
	k.lastRun = k.timeProvider.Now()
	k.mu.Unlock()

	if err != nil {
		keepAliveFailures.Inc()
		k.logger.Warn("Database keep-alive failed", map[string]any{"error": err.Error()})
		return err
	}

	k.logger.Debug("Database keep-alive ok", nil)
	return nil
}

// LastError returns the error of the most recent probe, nil if it succeeded or none ran yet
func (k *KeepAlive) LastError() error {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.lastErr
}

// LastRun returns when the most recent probe finished
func (k *KeepAlive) LastRun() time.Time {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.lastRun
}
