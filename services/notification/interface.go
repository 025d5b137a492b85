package notification

import "context"

// Lifecycle event kinds pushed to the parties.
const (
	KindAppointmentAccepted  = "appointment_accepted"
	KindAppointmentDeclined  = "appointment_declined"
	KindAppointmentCancelled = "appointment_cancelled"
	KindPaymentRecorded      = "payment_recorded"
	KindRefundIssued         = "refund_issued"
)

// NotificationService dispatches lifecycle events to a party. All call sites
// are fire-and-forget: a failed dispatch is logged and never aborts the
// transition that triggered it.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID, kind string, data map[string]string) error
	NotifyProvider(ctx context.Context, providerID, kind string, data map[string]string) error
}
