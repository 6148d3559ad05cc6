// Package notification delivers customer notifications over a structured log
// channel. The log lines stand in for a mail or messaging backend; the core
// only sees the dispatcher port and never waits on delivery.
package notification

import (
	"context"
	"log/slog"

	"shop/internal/core/ports"
)

// SlogDispatcher writes every notification as a structured log record.
type SlogDispatcher struct {
	logger *slog.Logger
}

// NewSlogDispatcher creates a dispatcher logging to the given logger.
func NewSlogDispatcher(logger *slog.Logger) *SlogDispatcher {
	return &SlogDispatcher{logger: logger.With("component", "notification_dispatcher")}
}

// Dispatch logs the notification. Never fails and never blocks the caller
// beyond the log write.
func (d *SlogDispatcher) Dispatch(ctx context.Context, n ports.Notification) {
	attrs := make([]any, 0, 2+2*len(n.Context))
	attrs = append(attrs, "event", n.EventKey, "recipient", n.Recipient)
	for key, value := range n.Context {
		attrs = append(attrs, key, value)
	}
	d.logger.InfoContext(ctx, "Notification dispatched", attrs...)
}
