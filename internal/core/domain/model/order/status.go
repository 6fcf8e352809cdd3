package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Method identifies how an order is fulfilled: delivered by a rider or
// collected by the buyer. The method determines which status flow applies.
type Method int

const (
	// MethodUnknown represents an invalid or undefined method.
	MethodUnknown Method = iota

	// MethodDelivery is rider-fulfilled delivery to the buyer.
	MethodDelivery

	// MethodPickup is buyer collection from the seller.
	MethodPickup
)

func getMethodStrings() map[Method]string {
	return map[Method]string{
		MethodDelivery: "delivery",
		MethodPickup:   "pickup",
	}
}

// MethodFromString parses an order method from its wire representation.
func MethodFromString(s string) (Method, error) {
	for m, str := range getMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order method is invalid",
		fmt.Errorf("%q is not a valid order method", s),
	)
}

// Validate checks if the Method value is valid.
func (m Method) Validate() error {
	if _, ok := getMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order method is invalid",
			fmt.Errorf("%d is not a valid order method", m),
		)
	}
	return nil
}

// String returns the wire representation of the method.
func (m Method) String() string {
	if str, ok := getMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions covering the primary
// delivery/pickup flow, the divergent cancellation and refund branches, and the
// secondary replacement pipeline opened when an admin approves a replacement.
//
// Primary flows:
//
//	delivery: pending -> confirm -> packing -> ready to deliver
//	          -> in transit -> delivered -> completed
//	pickup:   pending -> confirm -> packing -> ready for pick up -> completed
//
// Replacement flows (reachable only after an approved review):
//
//	delivery: replacement confirmed -> replacement packing
//	          -> replacement ready to deliver -> replacement in transit
//	          -> replacement delivered -> replacement completed
//	pickup:   replacement confirmed -> replacement packing
//	          -> replacement ready for pick up -> replacement completed
//
// Divergent states: cancelled (from pending), refund requested (from delivered),
// replacement requested (buyer request), replacement rejected (admin review).
//
// Status is a value object; all transition rules live here and in the flow
// lookups below rather than being re-derived at call sites.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status after checkout completes.
	StatusPending

	// StatusConfirmed indicates the seller has confirmed the order.
	StatusConfirmed

	// StatusPacking indicates the order is being packed.
	StatusPacking

	// StatusReadyToDeliver indicates a delivery order is packed and a rider is bound.
	StatusReadyToDeliver

	// StatusReadyForPickup indicates a pickup order is awaiting buyer collection.
	StatusReadyForPickup

	// StatusInTransit indicates the rider is en route to the buyer.
	StatusInTransit

	// StatusDelivered indicates the rider handed the order to the buyer.
	StatusDelivered

	// StatusCompleted is the canonical terminal state for a fulfilled order.
	// The legacy display token "complete" parses to this status.
	StatusCompleted

	// StatusCancelled is the terminal state for an order cancelled while pending.
	StatusCancelled

	// StatusRefundRequested indicates a buyer-initiated return after delivery.
	StatusRefundRequested

	// StatusReplacementRequested indicates one or more items have a pending
	// replacement request awaiting admin review.
	StatusReplacementRequested

	// StatusReplacementConfirmed indicates at least one replacement was approved
	// and the order entered the secondary delivery pipeline.
	StatusReplacementConfirmed

	// StatusReplacementRejected indicates the admin rejected every requested
	// replacement; the order may still complete normally.
	StatusReplacementRejected

	// StatusReplacementPacking indicates the replacement items are being packed.
	StatusReplacementPacking

	// StatusReplacementReadyToDeliver indicates the replacement is packed and a
	// rider is bound for the secondary delivery.
	StatusReplacementReadyToDeliver

	// StatusReplacementReadyForPickup indicates the replacement awaits buyer collection.
	StatusReplacementReadyForPickup

	// StatusReplacementInTransit indicates the rider is en route with the replacement.
	StatusReplacementInTransit

	// StatusReplacementDelivered indicates the replacement reached the buyer.
	StatusReplacementDelivered

	// StatusReplacementCompleted is the terminal state of the replacement pipeline.
	StatusReplacementCompleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:                   "unknown",
		StatusPending:                   "pending",
		StatusConfirmed:                 "confirm",
		StatusPacking:                   "packing",
		StatusReadyToDeliver:            "ready to deliver",
		StatusReadyForPickup:            "ready for pick up",
		StatusInTransit:                 "in transit",
		StatusDelivered:                 "delivered",
		StatusCompleted:                 "completed",
		StatusCancelled:                 "cancelled",
		StatusRefundRequested:           "refund requested",
		StatusReplacementRequested:      "replacement requested",
		StatusReplacementConfirmed:      "replacement confirmed",
		StatusReplacementRejected:       "replacement rejected",
		StatusReplacementPacking:        "replacement packing",
		StatusReplacementReadyToDeliver: "replacement ready to deliver",
		StatusReplacementReadyForPickup: "replacement ready for pick up",
		StatusReplacementInTransit:      "replacement in transit",
		StatusReplacementDelivered:      "replacement delivered",
		StatusReplacementCompleted:      "replacement completed",
	}
}

// StatusFromString parses a status from its wire representation.
// The legacy token "complete" is accepted as a display alias of "completed".
func StatusFromString(s string) (Status, error) {
	if s == "complete" {
		return StatusCompleted, nil
	}
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// "replacement rejected" is terminal for the rejected item only; the order
// itself may still complete, so it is not listed here.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusReplacementCompleted:
		return true
	default:
		return false
	}
}

// Flow returns the ordered primary status flow for an order method.
// The returned slice is a fresh copy; callers may not mutate shared state.
func Flow(method Method) []Status {
	switch method {
	case MethodDelivery:
		return []Status{
			StatusPending,
			StatusConfirmed,
			StatusPacking,
			StatusReadyToDeliver,
			StatusInTransit,
			StatusDelivered,
			StatusCompleted,
		}
	case MethodPickup:
		return []Status{
			StatusPending,
			StatusConfirmed,
			StatusPacking,
			StatusReadyForPickup,
			StatusCompleted,
		}
	default:
		return nil
	}
}

// ReplacementFlow returns the ordered secondary status flow entered once an
// admin approves at least one replacement item.
func ReplacementFlow(method Method) []Status {
	switch method {
	case MethodDelivery:
		return []Status{
			StatusReplacementConfirmed,
			StatusReplacementPacking,
			StatusReplacementReadyToDeliver,
			StatusReplacementInTransit,
			StatusReplacementDelivered,
			StatusReplacementCompleted,
		}
	case MethodPickup:
		return []Status{
			StatusReplacementConfirmed,
			StatusReplacementPacking,
			StatusReplacementReadyForPickup,
			StatusReplacementCompleted,
		}
	default:
		return nil
	}
}

// riderTail reports whether the status belongs to the rider-controlled tail of
// the primary flow. Once an order reaches this tail the controller-owned steps
// are all considered complete.
func riderTail(s Status) bool {
	switch s {
	case StatusInTransit, StatusDelivered, StatusCompleted:
		return true
	default:
		return false
	}
}

// replacementRiderTail is the rider-controlled tail of the replacement flow.
func replacementRiderTail(s Status) bool {
	switch s {
	case StatusReplacementInTransit, StatusReplacementDelivered, StatusReplacementCompleted:
		return true
	default:
		return false
	}
}

// StepIndex returns the position of a status within the primary flow for the
// given method. Statuses in the rider-controlled tail report every
// controller-owned step as complete. Returns -1 when the status does not
// belong to the method's primary flow.
//
// This is the single step-derivation function consumed by every caller that
// renders or reasons about order progress.
func StepIndex(s Status, method Method) int {
	flow := Flow(method)
	for i, st := range flow {
		if st == s {
			return i
		}
	}
	if riderTail(s) {
		return len(flow) - 1
	}
	return -1
}

// ReplacementStepIndex returns the position of a status within the replacement
// flow for the given method, with the same tail handling as StepIndex.
// Returns -1 when the status does not belong to the replacement flow.
func ReplacementStepIndex(s Status, method Method) int {
	flow := ReplacementFlow(method)
	for i, st := range flow {
		if st == s {
			return i
		}
	}
	if replacementRiderTail(s) {
		return len(flow) - 1
	}
	return -1
}

// nextInFlow returns the status following s within the given flow.
// The second return value is false when s is not in the flow or is its last entry.
func nextInFlow(flow []Status, s Status) (Status, bool) {
	for i, st := range flow {
		if st == s {
			if i+1 < len(flow) {
				return flow[i+1], true
			}
			return StatusUnknown, false
		}
	}
	return StatusUnknown, false
}

// Next returns the status that follows s in the primary flow for the method.
// The second return value is false when s has no primary successor.
func (s Status) Next(method Method) (Status, bool) {
	return nextInFlow(Flow(method), s)
}

// NextReplacement returns the status that follows s in the replacement flow
// for the method. The second return value is false when s has no successor there.
func (s Status) NextReplacement(method Method) (Status, bool) {
	return nextInFlow(ReplacementFlow(method), s)
}

// InPrimaryFlow reports whether the status belongs to the primary flow of the method.
func (s Status) InPrimaryFlow(method Method) bool {
	for _, st := range Flow(method) {
		if st == s {
			return true
		}
	}
	return false
}

// InReplacementFlow reports whether the status belongs to the replacement flow of the method.
func (s Status) InReplacementFlow(method Method) bool {
	for _, st := range ReplacementFlow(method) {
		if st == s {
			return true
		}
	}
	return false
}
