package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReplacementWindow is how long after delivery a buyer may request a
// per-item replacement. The window is evaluated against one trusted clock
// read at request time.
const ReplacementWindow = 24 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is returned when a target status is not the defined
	// next state in the order's flow.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrMissingRider is returned when a delivery order attempts to reach
	// "ready to deliver" without a bound rider.
	ErrMissingRider = errors.New("rider must be assigned before ready to deliver")

	// ErrWindowExpired is returned when a replacement is requested more than
	// 24 hours after delivery.
	ErrWindowExpired = errors.New("replacement window expired")

	// ErrAlreadyRequested is returned when a replacement is requested for an
	// item that already carries a request.
	ErrAlreadyRequested = errors.New("replacement already requested for item")

	// ErrReviewIncomplete is returned when the replacement pipeline is advanced
	// before the admin review has run.
	ErrReviewIncomplete = errors.New("replacement review has not been completed")

	// ErrMissingReceipt is returned when a refund is completed without an
	// attached receipt image.
	ErrMissingReceipt = errors.New("receipt image is required")

	// ErrMissingReason is returned when a cancellation or rejection lacks a
	// justification.
	ErrMissingReason = errors.New("reason is required")

	// ErrReviewValidation is returned when a review decision is malformed:
	// approval without a fault assignment, or rider fault without details.
	ErrReviewValidation = errors.New("review validation failed")
)

// ReplacementRequest carries one item's replacement request from the buyer.
type ReplacementRequest struct {
	ItemID      kernel.UUID
	Reason      string
	Description string
	ImageRefs   []string
}

// Decision is the admin's verdict on one replacement request.
type Decision int

const (
	// DecisionUnknown represents an invalid or undefined decision.
	DecisionUnknown Decision = iota

	// DecisionApprove approves re-supply of the item.
	DecisionApprove

	// DecisionReject declines the request.
	DecisionReject
)

// DecisionFromString parses a review decision from its wire representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "approve":
		return DecisionApprove, nil
	case "reject":
		return DecisionReject, nil
	default:
		return DecisionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"decision is invalid",
			fmt.Errorf("%q is not a valid decision", s),
		)
	}
}

// ReviewDecision carries one item's review outcome from the admin.
type ReviewDecision struct {
	ItemID       kernel.UUID
	Decision     Decision
	Fault        FaultParty
	FaultDetails string
	Notes        string
}

// Order represents a marketplace order in the fulfillment system. It is the
// aggregate root that owns the status state machine, the append-only status
// history, the order lines with their replacement sub-records, and the
// cancellation/refund record.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, method, and at least one item
//   - Status transitions follow the flow table for the order's method
//   - The status history never holds two consecutive entries with the same status
//   - Replacement review verdicts and completed/rejected refunds are never reversed
//   - Can only be created through NewOrder or restored through RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. All mutation happens through the
// defined transition methods; orders are never deleted, only reach terminal states.
type Order struct {
	id           kernel.UUID
	sellerID     kernel.UUID
	method       Method
	status       Status
	totalPrice   kernel.Money
	riderID      *kernel.UUID
	items        []*Item
	history      []HistoryEntry
	cancellation *Cancellation
	version      int

	isConstructed bool
}

// NewOrder creates a new Order at the pending status with an initial history
// entry stamped at createdAt. This is the only way to create a valid Order;
// it validates the identifier, method, total price, and every item.
func NewOrder(
	id, sellerID kernel.UUID,
	method Method,
	items []*Item,
	totalPrice kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setMethod(method),
		o.setItems(items),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, NewHistoryEntry(
		StatusPending, createdAt, "Order placed and awaiting confirmation", "", "",
	))

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
// Unlike NewOrder it accepts any valid status and the stored history, rider
// binding, cancellation record, and optimistic concurrency version.
func RestoreOrder(
	id, sellerID kernel.UUID,
	method Method,
	status Status,
	items []*Item,
	totalPrice kernel.Money,
	riderID *kernel.UUID,
	history []HistoryEntry,
	cancellation *Cancellation,
	version int,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSellerID(sellerID),
		o.setMethod(method),
		o.setItems(items),
		o.setTotalPrice(totalPrice),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.riderID = riderID
	o.history = append([]HistoryEntry(nil), history...)
	o.cancellation = cancellation
	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Seller returns the farmer-seller who owns the order's items.
func (o *Order) Seller() kernel.UUID {
	return o.sellerID
}

// Method returns the fulfillment method of the order.
func (o *Order) Method() Method {
	return o.method
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalPrice returns the total paid for the order.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// Rider returns the bound rider's ID, nil if none is bound.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// Items returns the order lines.
func (o *Order) Items() []*Item {
	return o.items
}

// ItemByID returns the order line with the given identifier.
func (o *Order) ItemByID(id kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", id.String())
}

// History returns the append-only status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Cancellation returns the cancellation record, nil while the order is active.
func (o *Order) Cancellation() *Cancellation {
	return o.cancellation
}

// Version returns the optimistic concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// StepIndex returns the order's position within its method's primary flow.
func (o *Order) StepIndex() int {
	return StepIndex(o.status, o.method)
}

// DeliveredAt returns the timestamp of the most recent "delivered" history
// entry. The second return value is false when the order was never delivered.
func (o *Order) DeliveredAt() (time.Time, bool) {
	for i := len(o.history) - 1; i >= 0; i-- {
		if o.history[i].Status() == StatusDelivered {
			return o.history[i].OccurredAt(), true
		}
	}
	return time.Time{}, false
}

// Advance moves the order to targetStatus, which must be exactly the next
// entry in the flow for the order's method. A rider may be bound as part of
// the transition; delivery orders cannot reach "ready to deliver" (in either
// pipeline) without one.
//
// Re-invoking Advance with the already-current status is a no-op success so
// callers can retry safely after a network failure.
//
// Returns ErrInvalidTransition when targetStatus is not the defined next
// state, ErrMissingRider when the rider gate fails, and ErrReviewIncomplete
// when the replacement pipeline is advanced before the admin review has run.
func (o *Order) Advance(target Status, rider *kernel.UUID, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == o.status {
		return nil
	}

	if o.status == StatusReplacementRequested {
		if target.InReplacementFlow(o.method) {
			return fmt.Errorf("%w: order %s is awaiting review", ErrReviewIncomplete, o.id)
		}
		return o.invalidTransition(target)
	}

	switch {
	case o.status == StatusReplacementRejected:
		// A rejected replacement is terminal for the item, not the order:
		// the delivered order may still complete normally.
		if target != StatusCompleted {
			return o.invalidTransition(target)
		}
	case o.status.InPrimaryFlow(o.method):
		next, ok := o.status.Next(o.method)
		if !ok || target != next {
			return o.invalidTransition(target)
		}
	case o.status.InReplacementFlow(o.method):
		next, ok := o.status.NextReplacement(o.method)
		if !ok || target != next {
			return o.invalidTransition(target)
		}
	default:
		return o.invalidTransition(target)
	}

	if rider != nil {
		if err := rider.Validate(); err != nil {
			return err
		}
		o.riderID = rider
	}

	if target == StatusReadyToDeliver || target == StatusReplacementReadyToDeliver {
		if o.riderID == nil {
			return fmt.Errorf("%w: order %s", ErrMissingRider, o.id)
		}
	}

	o.setStatus(target, at, statusDescription(target), "", "")
	return nil
}

// Cancel cancels the order. Cancellation is only permitted while the order is
// pending and requires a non-empty reason; a proof image may be attached.
func (o *Order) Cancel(reason, proofImageRef string, at time.Time) error {
	if o.status != StatusPending {
		return fmt.Errorf("%w: cannot cancel order in status %q", ErrInvalidTransition, o.status)
	}
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason", ErrMissingReason)
	}

	o.cancellation = &Cancellation{
		reason:        reason,
		proofImageRef: proofImageRef,
	}
	o.setStatus(StatusCancelled, at, "Order cancelled: "+reason, "", proofImageRef)
	return nil
}

// MarkRefundEligible installs a pending refund on a cancelled order.
// Eligibility itself is decided by an external trigger at cancellation time.
func (o *Order) MarkRefundEligible(
	amount kernel.Money,
	method, accountName, accountNumber, qrRef string,
) error {
	if o.cancellation == nil {
		return fmt.Errorf("%w: order %s is not cancelled", ErrInvalidTransition, o.id)
	}
	if o.cancellation.refund != nil {
		return fmt.Errorf("%w: refund already installed on order %s", ErrInvalidTransition, o.id)
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	o.cancellation.refund = &Refund{
		amount:        amount,
		method:        method,
		accountName:   accountName,
		accountNumber: accountNumber,
		status:        RefundPending,
		qrRef:         qrRef,
	}
	return nil
}

// AdvanceRefund moves the refund one step forward:
// pending -> processing (no receipt needed), or processing -> completed,
// which requires an attached receipt image.
func (o *Order) AdvanceRefund(target RefundStatus, receiptRef string) error {
	refund, err := o.activeRefund()
	if err != nil {
		return err
	}

	switch {
	case refund.status == RefundPending && target == RefundProcessing:
		refund.status = RefundProcessing
	case refund.status == RefundProcessing && target == RefundCompleted:
		if receiptRef == "" {
			return fmt.Errorf("%w: refund completion", ErrMissingReceipt)
		}
		refund.status = RefundCompleted
		refund.receiptRef = receiptRef
	default:
		return fmt.Errorf("%w: refund cannot move from %q to %q",
			ErrInvalidTransition, refund.status, target)
	}
	return nil
}

// RejectRefund terminates the refund with a mandatory reason.
// Only pending and processing refunds can be rejected.
func (o *Order) RejectRefund(reason string) error {
	refund, err := o.activeRefund()
	if err != nil {
		return err
	}
	if reason == "" {
		return fmt.Errorf("%w: refund rejection reason", ErrMissingReason)
	}
	if refund.status != RefundPending && refund.status != RefundProcessing {
		return fmt.Errorf("%w: refund in status %q cannot be rejected",
			ErrInvalidTransition, refund.status)
	}

	refund.status = RefundRejected
	refund.notes = reason
	return nil
}

// MarkRefundRequested records a buyer-initiated return on a delivered order.
// The trigger itself comes from outside the core.
func (o *Order) MarkRefundRequested(at time.Time) error {
	if o.status != StatusDelivered {
		return fmt.Errorf("%w: returns require a delivered order, not %q",
			ErrInvalidTransition, o.status)
	}
	o.setStatus(StatusRefundRequested, at, "Buyer requested a return", "", "")
	return nil
}

// RequestReplacement files replacement requests for the selected items.
// The order must be delivered and the request must arrive within the 24-hour
// window measured from the delivered history entry against the single `now`
// reading supplied by the caller. Either all requests are recorded or none are.
func (o *Order) RequestReplacement(requests []ReplacementRequest, now time.Time) error {
	if len(requests) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if o.status != StatusDelivered {
		return fmt.Errorf("%w: replacements require a delivered order, not %q",
			ErrInvalidTransition, o.status)
	}

	deliveredAt, ok := o.DeliveredAt()
	if !ok {
		return fmt.Errorf("%w: no delivered entry in status history", ErrInvalidTransition)
	}
	if now.Sub(deliveredAt) > ReplacementWindow {
		return fmt.Errorf("%w: delivered at %s, requested at %s",
			ErrWindowExpired, deliveredAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	// Validate every request before mutating anything.
	selected := make([]*Item, 0, len(requests))
	for _, req := range requests {
		item, err := o.ItemByID(req.ItemID)
		if err != nil {
			return err
		}
		if item.replacement != nil {
			return fmt.Errorf("%w: item %s", ErrAlreadyRequested, item.ID())
		}
		if req.Reason == "" {
			return fmt.Errorf("%w: replacement reason for item %s", ErrMissingReason, item.ID())
		}
		selected = append(selected, item)
	}

	for i, item := range selected {
		item.replacement = newReplacement(
			requests[i].Reason, requests[i].Description, requests[i].ImageRefs, now,
		)
	}
	o.setStatus(StatusReplacementRequested, now, "Replacement requested by buyer", "", "")
	return nil
}

// ReviewReplacement applies the admin's verdicts to every selected pending
// item atomically: the decisions are validated up front and either all persist
// together with the resulting order status, or none do.
//
// Approval requires a fault assignment; a rider-fault assignment additionally
// requires details; rejection requires notes. If at least one item is approved
// the order moves to "replacement confirmed" and enters the secondary delivery
// pipeline, otherwise it moves to "replacement rejected".
//
// Returns the approved items so the caller can monetize fault liability.
func (o *Order) ReviewReplacement(decisions []ReviewDecision, at time.Time) ([]*Item, error) {
	if len(decisions) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if o.status != StatusReplacementRequested {
		return nil, fmt.Errorf("%w: order %s has no review to run, status is %q",
			ErrInvalidTransition, o.id, o.status)
	}

	// Validate every decision before mutating anything.
	selected := make([]*Item, 0, len(decisions))
	for _, d := range decisions {
		item, err := o.ItemByID(d.ItemID)
		if err != nil {
			return nil, err
		}
		if item.replacement == nil || item.replacement.status != ReplacementPending {
			return nil, fmt.Errorf("%w: item %s has no pending replacement",
				ErrReviewValidation, item.ID())
		}

		switch d.Decision {
		case DecisionApprove:
			if err := d.Fault.Validate(); err != nil {
				return nil, fmt.Errorf("%w: approval requires a fault assignment", ErrReviewValidation)
			}
			if d.Fault == FaultRider && d.FaultDetails == "" {
				return nil, fmt.Errorf("%w: rider fault requires details", ErrReviewValidation)
			}
		case DecisionReject:
			if d.Notes == "" {
				return nil, fmt.Errorf("%w: rejection notes for item %s", ErrMissingReason, item.ID())
			}
		default:
			return nil, fmt.Errorf("%w: decision for item %s is invalid", ErrReviewValidation, item.ID())
		}
		selected = append(selected, item)
	}

	approved := make([]*Item, 0, len(decisions))
	for i, item := range selected {
		d := decisions[i]
		if d.Decision == DecisionApprove {
			if err := item.replacement.approve(d.Fault, d.FaultDetails); err != nil {
				return nil, err
			}
			approved = append(approved, item)
		} else {
			if err := item.replacement.reject(d.Notes); err != nil {
				return nil, err
			}
		}
	}

	if len(approved) > 0 {
		o.setStatus(StatusReplacementConfirmed, at, "Replacement approved by admin", "", "")
	} else {
		o.setStatus(StatusReplacementRejected, at, "Replacement rejected by admin", "", "")
	}
	return approved, nil
}

// setStatus applies a status change and appends the matching history entry.
// The history invariant (no consecutive duplicates) holds because callers
// never re-apply the current status.
func (o *Order) setStatus(status Status, at time.Time, description, location, imageRef string) {
	o.status = status
	if n := len(o.history); n > 0 && o.history[n-1].Status() == status {
		return
	}
	o.history = append(o.history, NewHistoryEntry(status, at, description, location, imageRef))
}

func (o *Order) invalidTransition(target Status) error {
	return fmt.Errorf("%w: %q is not the next status after %q for %s orders",
		ErrInvalidTransition, target, o.status, o.method)
}

func (o *Order) activeRefund() (*Refund, error) {
	if o.cancellation == nil || o.cancellation.refund == nil {
		return nil, errs.NewObjectNotFoundError("refund", o.id.String())
	}
	return o.cancellation.refund, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.method = method
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setTotalPrice(totalPrice kernel.Money) error {
	if err := totalPrice.Validate(); err != nil {
		return err
	}
	o.totalPrice = totalPrice
	return nil
}

// statusDescription is the canned history note recorded for a transition.
func statusDescription(s Status) string {
	switch s {
	case StatusConfirmed:
		return "Order confirmed by seller"
	case StatusPacking:
		return "Order is being packed"
	case StatusReadyToDeliver:
		return "Order is ready to deliver"
	case StatusReadyForPickup:
		return "Order is ready for pick up"
	case StatusInTransit:
		return "Rider is on the way"
	case StatusDelivered:
		return "Order delivered to buyer"
	case StatusCompleted:
		return "Order completed"
	case StatusReplacementPacking:
		return "Replacement is being packed"
	case StatusReplacementReadyToDeliver:
		return "Replacement is ready to deliver"
	case StatusReplacementReadyForPickup:
		return "Replacement is ready for pick up"
	case StatusReplacementInTransit:
		return "Rider is on the way with the replacement"
	case StatusReplacementDelivered:
		return "Replacement delivered to buyer"
	case StatusReplacementCompleted:
		return "Replacement completed"
	default:
		return "Status changed to " + s.String()
	}
}
