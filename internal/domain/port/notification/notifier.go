package notification

import "context"

// Action tags an operator notification
type Action string

// Notification actions
const (
	ActionLogin           Action = "login"
	ActionOrder           Action = "order"
	ActionPayment         Action = "payment"
	ActionBonus           Action = "bonus"
	ActionPaymentApproved Action = "payment_approved"
	ActionPaymentDeclined Action = "payment_declined"
)

// Event field keys
const (
	FieldUsername      = "username"
	FieldPassword      = "password"
	FieldServiceName   = "serviceName"
	FieldQuantity      = "quantity"
	FieldPrice         = "price"
	FieldTarget        = "instagramUsername"
	FieldOrderID       = "orderId"
	FieldAmount        = "amount"
	FieldUTR           = "utrNumber"
	FieldPaymentMethod = "paymentMethod"
	FieldPaymentID     = "paymentId"
)

// Event is an opaque payload for the operator channel
type Event struct {
	Action Action
	UID    string
	Fields map[string]string
}

// Notifier delivers events to the operator channel. Callers treat delivery
// as best-effort: a returned error is logged, never surfaced to clients.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
