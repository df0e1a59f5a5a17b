package ports

import "context"

// NotificationKind selects the message template.
type NotificationKind string

const (
	NotifyRequestLink NotificationKind = "request-link"
	NotifyHRSubmitted NotificationKind = "hr-notified"
	NotifyThankYou    NotificationKind = "thank-you"
)

// Notification is one templated message addressed to a single recipient.
// Fields feed the template; unknown keys are ignored by the backend.
type Notification struct {
	Kind      NotificationKind
	Recipient string
	Fields    map[string]string
}

// DeliveryResult reports the outcome of a send. Backends never panic or leak
// errors past this boundary; the caller decides whether a failure matters.
type DeliveryResult struct {
	OK  bool
	Err error
}

// Notifier is the pluggable delivery backend. The workflow engine depends
// only on this interface, never on a concrete provider.
type Notifier interface {
	Send(ctx context.Context, n Notification) DeliveryResult
}
