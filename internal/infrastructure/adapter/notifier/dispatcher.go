package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/core"
	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "smm",
		Name:      "notifications_total",
		Help:      "Operator notifications by action and delivery result",
	},
	[]string{"action", "result"},
)

// Delivery results
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

var _ notification.Notifier = (*Dispatcher)(nil)

// Dispatcher delivers events asynchronously so a slow or failing chat never
// delays or fails the request that produced the event.
type Dispatcher struct {
	next    notification.Notifier
	timeout time.Duration
	logger  core.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher wraps next; timeout bounds each delivery
func NewDispatcher(next notification.Notifier, timeout time.Duration, logger core.Logger) *Dispatcher {
	return &Dispatcher{
		next:    next,
		timeout: timeout,
		logger:  logger.With(map[string]any{"component": "notifier"}),
	}
}

// Notify schedules delivery and returns immediately. It never returns an error.
func (d *Dispatcher) Notify(ctx context.Context, event notification.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		notificationsTotal.WithLabelValues(string(event.Action), ResultDropped).Inc()
		d.logger.Warn("Notification dropped after shutdown", map[string]any{
			"action": event.Action,
			"uid":    event.UID,
		})
		return nil
	}

	// the request context is cancelled as soon as the response is written
	deliveryCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(deliveryCtx, event)
	}()

	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, event notification.Event) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.next.Notify(ctx, event); err != nil {
		notificationsTotal.WithLabelValues(string(event.Action), ResultFailed).Inc()
		d.logger.Warn("Notification delivery failed", map[string]any{
			"action": event.Action,
			"uid":    event.UID,
			"error":  err.Error(),
		})
		return
	}

	notificationsTotal.WithLabelValues(string(event.Action), ResultSent).Inc()
	d.logger.Debug("Notification delivered", map[string]any{
		"action": event.Action,
		"uid":    event.UID,
	})
}

// Close stops accepting events and waits for in-flight deliveries or ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
