package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
)

// PoolMetrics is a snapshot of the connection pool
type PoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor periodically publishes pool statistics as gauges
type PoolMonitor struct {
	db       *sql.DB
	logger   coreport.Logger
	mutex    sync.RWMutex
	last     PoolMetrics
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewPoolMonitor creates a new connection pool monitor
func NewPoolMonitor(db *sql.DB, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start collects once and then on every tick until Stop
func (m *PoolMonitor) Start(interval time.Duration) {
	m.Collect()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Collect()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop stops the monitoring. Safe to call more than once.
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Metrics returns the last collected snapshot
func (m *PoolMonitor) Metrics() PoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.last
}

// Collect reads the pool stats and updates the gauges
func (m *PoolMonitor) Collect() PoolMetrics {
	stats := m.db.Stats()
	snapshot := PoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}

	poolConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	poolConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	poolConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	poolConnections.WithLabelValues("max_open").Set(float64(stats.MaxOpenConnections))
	poolWaitCount.Set(float64(stats.WaitCount))

	m.mutex.Lock()
	m.last = snapshot
	m.mutex.Unlock()

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return snapshot
}
