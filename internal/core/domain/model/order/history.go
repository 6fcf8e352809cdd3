package order

import (
	"time"
)

// HistoryEntry is one row of the append-only status history ledger.
// The history is the authoritative chronological record of every status an
// order has passed through; the aggregate appends an entry on every
// successfully committed transition and never rewrites past entries.
type HistoryEntry struct {
	status      Status
	occurredAt  time.Time
	description string
	location    string
	imageRef    string
}

// NewHistoryEntry creates a history entry for a status reached at the given time.
func NewHistoryEntry(status Status, occurredAt time.Time, description, location, imageRef string) HistoryEntry {
	return HistoryEntry{
		status:      status,
		occurredAt:  occurredAt,
		description: description,
		location:    location,
		imageRef:    imageRef,
	}
}

// Status returns the status recorded by the entry.
func (e HistoryEntry) Status() Status {
	return e.status
}

// OccurredAt returns the server timestamp of the transition.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Description returns the free-form note attached to the transition.
func (e HistoryEntry) Description() string {
	return e.description
}

// Location returns where the transition was recorded, if any.
func (e HistoryEntry) Location() string {
	return e.location
}

// ImageRef returns the file-store reference of the attached proof image, if any.
func (e HistoryEntry) ImageRef() string {
	return e.imageRef
}
