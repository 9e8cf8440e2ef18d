package persistence

import "context"

// Gateway is the narrow persistence contract the use cases depend on.
// Every operation is a single logical unit of work against the store.
type Gateway interface {
	UserRepository
	OrderRepository
	PaymentRepository
	ServiceRepository
	LoginLogRepository

	// Ping checks that the store answers
	Ping(ctx context.Context) error
}
