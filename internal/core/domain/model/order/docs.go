// Package order provides domain entities and business logic for order fulfillment
// in the marketplace. It implements the Order aggregate root with lifecycle
// management, state transitions, per-item replacement handling, and
// cancellation/refund processing.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and lifecycle
//   - Status: A state machine over the delivery, pickup, and replacement flows
//   - Item and Replacement: per-item state including the post-delivery replacement cycle
//   - Cancellation and Refund: the cancellation record and its refund stepper
//
// Key business rules:
//   - Status transitions follow the flow table for the order's method (delivery or pickup)
//   - Delivery orders require a bound rider before reaching "ready to deliver"
//   - Replacements may only be requested within 24 hours of delivery
//   - The status history is append-only and never holds two consecutive identical entries
//   - Refunds progress pending -> processing -> completed, with rejection as the
//     only escape hatch from the first two states
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
