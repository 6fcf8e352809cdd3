// Package ledger provides the immutable refund history ledger. An entry is
// written once when an approved replacement carries monetary liability and is
// never mutated afterwards.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry factory method.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable row of the refund history ledger. It monetizes a
// replacement item judged seller fault or rider fault: the refund owed to the
// buyer and, for rider fault, the liability later offset against the rider's
// payout.
type Entry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	itemID         kernel.UUID
	prodID         kernel.UUID
	amount         kernel.Money
	faultParty     order.FaultParty
	riderLiability kernel.Money
	createdAt      time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry for a monetized fault assignment.
// FaultNone assignments carry no liability and must not produce an entry.
func NewEntry(
	id, orderID, itemID, prodID kernel.UUID,
	amount kernel.Money,
	faultParty order.FaultParty,
	riderLiability kernel.Money,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		prodID.Validate(),
		amount.Validate(),
		faultParty.Validate(),
		riderLiability.Validate(),
	); err != nil {
		return nil, err
	}
	if faultParty == order.FaultNone {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"fault party is invalid",
			fmt.Errorf("a %q fault assignment carries no monetary liability", faultParty),
		)
	}

	return &Entry{
		id:             id,
		orderID:        orderID,
		itemID:         itemID,
		prodID:         prodID,
		amount:         amount,
		faultParty:     faultParty,
		riderLiability: riderLiability,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

// RestoreEntry reconstructs a ledger entry from persistence.
func RestoreEntry(
	id, orderID, itemID, prodID kernel.UUID,
	amount kernel.Money,
	faultParty order.FaultParty,
	riderLiability kernel.Money,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, orderID, itemID, prodID, amount, faultParty, riderLiability, createdAt)
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// OrderID returns the order whose replacement was monetized.
func (e *Entry) OrderID() kernel.UUID { return e.orderID }

// ItemID returns the order line the entry covers.
func (e *Entry) ItemID() kernel.UUID { return e.itemID }

// ProdID returns the replaced product.
func (e *Entry) ProdID() kernel.UUID { return e.prodID }

// Amount returns the refund owed to the buyer.
func (e *Entry) Amount() kernel.Money { return e.amount }

// FaultParty returns who was held responsible.
func (e *Entry) FaultParty() order.FaultParty { return e.faultParty }

// RiderLiability returns the amount offset against the rider's payout,
// zero for seller-fault entries.
func (e *Entry) RiderLiability() kernel.Money { return e.riderLiability }

// CreatedAt returns when the entry was written.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
