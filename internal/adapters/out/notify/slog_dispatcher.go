// Package notify delivers post-commit notifications to external channels.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// SlogDispatcher emits notifications to the structured log. Push channels
// (mail, chat, mobile) subscribe to the log pipeline downstream; the
// application itself never blocks on delivery.
type SlogDispatcher struct {
	logger *slog.Logger
}

// NewSlogDispatcher creates a dispatcher writing to the given logger.
func NewSlogDispatcher(logger *slog.Logger) *SlogDispatcher {
	return &SlogDispatcher{
		logger: logger.With("component", "notifications"),
	}
}

// Dispatch records the notification. Never fails the caller.
func (d *SlogDispatcher) Dispatch(ctx context.Context, notification ports.Notification) {
	attrs := []any{"kind", notification.Kind}
	if notification.OrderID != nil {
		attrs = append(attrs, "order", notification.OrderID.String())
	}
	for key, value := range notification.Payload {
		attrs = append(attrs, key, value)
	}

	d.logger.InfoContext(ctx, "Notification dispatched", attrs...)
}
