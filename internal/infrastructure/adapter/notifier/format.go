package notifier

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
)

// FormatMessage renders an event as the plain text sent to the operator chat.
// Unknown actions fall back to a generic key/value listing.
func FormatMessage(event notification.Event) string {
	f := event.Fields
	var b strings.Builder

	switch event.Action {
	case notification.ActionLogin:
		fmt.Fprintf(&b, "🔐 New Login\nUID: %s\nUsername: %s", event.UID, f[notification.FieldUsername])
		if password, ok := f[notification.FieldPassword]; ok {
			fmt.Fprintf(&b, "\nPassword: %s", password)
		}
	case notification.ActionPayment:
		fmt.Fprintf(&b, "💰 Payment Request\nUID: %s\nAmount: ₹%s\nUTR: %s\nMethod: %s",
			event.UID, f[notification.FieldAmount], f[notification.FieldUTR], f[notification.FieldPaymentMethod])
	case notification.ActionOrder:
		fmt.Fprintf(&b, "📦 New Order\nUID: %s\nService: %s\nQuantity: %s\nPrice: ₹%s\nUsername: %s",
			event.UID, f[notification.FieldServiceName], f[notification.FieldQuantity],
			f[notification.FieldPrice], f[notification.FieldTarget])
	case notification.ActionBonus:
		fmt.Fprintf(&b, "🎁 Bonus Claimed\nUID: %s\nAmount: ₹%s", event.UID, f[notification.FieldAmount])
	case notification.ActionPaymentApproved:
		fmt.Fprintf(&b, "✅ Payment Approved\nUID: %s\nPayment: #%s\nAmount: ₹%s\nUTR: %s",
			event.UID, f[notification.FieldPaymentID], f[notification.FieldAmount], f[notification.FieldUTR])
	case notification.ActionPaymentDeclined:
		fmt.Fprintf(&b, "❌ Payment Declined\nUID: %s\nPayment: #%s\nAmount: ₹%s\nUTR: %s",
			event.UID, f[notification.FieldPaymentID], f[notification.FieldAmount], f[notification.FieldUTR])
	default:
		fmt.Fprintf(&b, "%s\nUID: %s", event.Action, event.UID)
		for _, key := range slices.Sorted(maps.Keys(f)) {
			fmt.Fprintf(&b, "\n%s: %s", key, f[key])
		}
	}

	return b.String()
}
