package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// FaultParty identifies who an admin holds responsible for a replaced item.
// The assignment drives both the refund owed to the buyer and any liability
// charged against the rider's payout.
type FaultParty int

const (
	// FaultUnknown represents an invalid or undefined fault assignment.
	FaultUnknown FaultParty = iota

	// FaultSeller holds the farmer-seller responsible.
	FaultSeller

	// FaultRider holds the delivery rider responsible.
	FaultRider

	// FaultNone holds neither party responsible; no money moves.
	FaultNone
)

func getFaultPartyStrings() map[FaultParty]string {
	return map[FaultParty]string{
		FaultSeller: "seller",
		FaultRider:  "rider",
		FaultNone:   "none",
	}
}

// FaultPartyFromString parses a fault party from its wire representation.
func FaultPartyFromString(s string) (FaultParty, error) {
	for p, str := range getFaultPartyStrings() {
		if str == s {
			return p, nil
		}
	}
	return FaultUnknown, errs.NewValueIsInvalidErrorWithCause(
		"fault party is invalid",
		fmt.Errorf("%q is not a valid fault party", s),
	)
}

// Validate checks if the FaultParty value is valid.
func (p FaultParty) Validate() error {
	if _, ok := getFaultPartyStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"fault party is invalid",
			fmt.Errorf("%d is not a valid fault party", p),
		)
	}
	return nil
}

// String returns the wire representation of the fault party.
func (p FaultParty) String() string {
	if str, ok := getFaultPartyStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ReplacementStatus is the review state of a per-item replacement request.
// It moves pending -> approved or pending -> rejected and is never reversed.
type ReplacementStatus int

const (
	// ReplacementUnknown represents an invalid or undefined replacement status.
	ReplacementUnknown ReplacementStatus = iota

	// ReplacementPending means the request awaits admin review.
	ReplacementPending

	// ReplacementApproved means the admin approved re-supply of the item.
	ReplacementApproved

	// ReplacementRejected means the admin declined the request. Terminal.
	ReplacementRejected
)

func getReplacementStatusStrings() map[ReplacementStatus]string {
	return map[ReplacementStatus]string{
		ReplacementPending:  "pending",
		ReplacementApproved: "approved",
		ReplacementRejected: "rejected",
	}
}

// String returns the wire representation of the replacement status.
func (s ReplacementStatus) String() string {
	if str, ok := getReplacementStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the ReplacementStatus value is valid.
func (s ReplacementStatus) Validate() error {
	if _, ok := getReplacementStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"replacement status is invalid",
			fmt.Errorf("%d is not a valid replacement status", s),
		)
	}
	return nil
}

// Replacement is the per-item replacement sub-record. It is owned exclusively
// by its Item, created when the buyer requests a replacement, and finalized by
// the admin review.
type Replacement struct {
	reason       string
	description  string
	imageRefs    []string
	requestedAt  time.Time
	status       ReplacementStatus
	fault        FaultParty
	faultDetails string
	notes        string
}

// newReplacement creates a pending replacement request.
func newReplacement(reason, description string, imageRefs []string, requestedAt time.Time) *Replacement {
	return &Replacement{
		reason:      reason,
		description: description,
		imageRefs:   append([]string(nil), imageRefs...),
		requestedAt: requestedAt,
		status:      ReplacementPending,
	}
}

// RestoreReplacement reconstructs a replacement sub-record from persistence.
func RestoreReplacement(
	reason, description string,
	imageRefs []string,
	requestedAt time.Time,
	status ReplacementStatus,
	fault FaultParty,
	faultDetails, notes string,
) (*Replacement, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Replacement{
		reason:       reason,
		description:  description,
		imageRefs:    append([]string(nil), imageRefs...),
		requestedAt:  requestedAt,
		status:       status,
		fault:        fault,
		faultDetails: faultDetails,
		notes:        notes,
	}, nil
}

// Reason returns the buyer-supplied replacement reason.
func (r *Replacement) Reason() string { return r.reason }

// Description returns the optional buyer-supplied description.
func (r *Replacement) Description() string { return r.description }

// ImageRefs returns the file-store references of the buyer's evidence images.
func (r *Replacement) ImageRefs() []string { return append([]string(nil), r.imageRefs...) }

// RequestedAt returns when the buyer filed the request.
func (r *Replacement) RequestedAt() time.Time { return r.requestedAt }

// Status returns the review state of the request.
func (r *Replacement) Status() ReplacementStatus { return r.status }

// Fault returns the admin's fault assignment, FaultUnknown before review.
func (r *Replacement) Fault() FaultParty { return r.fault }

// FaultDetails returns the mandatory details recorded for rider-fault assignments.
func (r *Replacement) FaultDetails() string { return r.faultDetails }

// Notes returns the admin notes, mandatory on rejection.
func (r *Replacement) Notes() string { return r.notes }

// approve finalizes the request as approved with a fault assignment.
// The pending -> approved edge is the only path here; re-review is refused.
func (r *Replacement) approve(fault FaultParty, faultDetails string) error {
	if r.status != ReplacementPending {
		return fmt.Errorf("%w: replacement is already %s", ErrReviewValidation, r.status)
	}
	r.status = ReplacementApproved
	r.fault = fault
	r.faultDetails = faultDetails
	return nil
}

// reject finalizes the request as rejected with mandatory notes.
func (r *Replacement) reject(notes string) error {
	if r.status != ReplacementPending {
		return fmt.Errorf("%w: replacement is already %s", ErrReviewValidation, r.status)
	}
	r.status = ReplacementRejected
	r.notes = notes
	return nil
}

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line: a product snapshot with quantity and the price paid,
// plus the optional replacement sub-record layered on after delivery.
//
// Item is an entity owned by the Order aggregate; all mutation goes through
// the aggregate's methods so the order-level invariants hold.
type Item struct {
	id          kernel.UUID
	prodID      kernel.UUID
	quantity    int
	unitPrice   kernel.Money
	isReviewed  bool
	replacement *Replacement

	isConstructed bool
}

// NewItem creates a validated order line.
func NewItem(id, prodID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setIDs(id, prodID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an order line from persistence.
func RestoreItem(
	id, prodID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	isReviewed bool,
	replacement *Replacement,
) (*Item, error) {
	item, err := NewItem(id, prodID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	item.isReviewed = isReviewed
	item.replacement = replacement
	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the order line's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// ProdID returns the identifier of the purchased product.
func (i *Item) ProdID() kernel.UUID { return i.prodID }

// Quantity returns the purchased quantity.
func (i *Item) Quantity() int { return i.quantity }

// UnitPrice returns the price snapshot taken at checkout.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// PaidPrice returns the total paid for the line (unit price times quantity).
func (i *Item) PaidPrice() kernel.Money { return i.unitPrice.Mul(i.quantity) }

// IsReviewed reports whether the buyer has left a product review for the line.
func (i *Item) IsReviewed() bool { return i.isReviewed }

// MarkReviewed records that the buyer reviewed the product.
func (i *Item) MarkReviewed() { i.isReviewed = true }

// Replacement returns the replacement sub-record, nil until requested.
func (i *Item) Replacement() *Replacement { return i.replacement }

func (i *Item) setIDs(id, prodID kernel.UUID) error {
	if err := errors.Join(id.Validate(), prodID.Validate()); err != nil {
		return err
	}
	i.id = id
	i.prodID = prodID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}
