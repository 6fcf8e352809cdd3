package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Clock supplies the single trusted time reading commands use for
// server timestamps and the replacement eligibility window.
type Clock interface {
	Now() time.Time
}

// RiderProfile is the directory view of a rider.
type RiderProfile struct {
	ID      kernel.UUID
	Name    string
	Contact string
}

// RiderDirectory resolves rider identifiers to profile data.
// The directory itself lives outside the core.
type RiderDirectory interface {
	Lookup(ctx context.Context, id kernel.UUID) (RiderProfile, error)
}

// FileStore uploads binary content and returns a stable reference.
// Upload, storage, and serving live outside the core; commands only carry
// the returned references.
type FileStore interface {
	Store(ctx context.Context, name string, content []byte) (string, error)
}

// Notification is a fire-and-forget event emitted after a command commits.
type Notification struct {
	Kind    string
	OrderID *kernel.UUID
	Payload map[string]string
}

// NotificationDispatcher delivers notifications to external channels.
// Dispatch failures never fail the originating command.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification)
}
