package notifier

import (
	"context"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
)

// Noop drops every event. Used when no chat credentials are configured.
type Noop struct{}

// NewNoop creates a Noop notifier
func NewNoop() notification.Notifier {
	return Noop{}
}

// Notify implements notification.Notifier
func (Noop) Notify(context.Context, notification.Event) error {
	return nil
}
