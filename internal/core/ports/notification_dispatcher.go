package ports

import "context"

// Notification is one outbound customer notification: an event key, the
// recipient and the template context rendered by the delivery channel.
type Notification struct {
	EventKey  string
	Recipient string
	Context   map[string]string
}

// NotificationDispatcher sends notifications fire-and-forget: the core never
// consumes a result, and a failing dispatch must not fail the business
// operation that triggered it.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification)
}
