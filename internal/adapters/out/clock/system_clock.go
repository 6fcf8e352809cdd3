// Package clock provides the production time source.
package clock

import "time"

// SystemClock reads wall clock time. Commands take time through the
// ports.Clock interface so tests can pin it.
type SystemClock struct{}

// NewSystemClock creates the wall clock time source.
func NewSystemClock() SystemClock {
	return SystemClock{}
}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
