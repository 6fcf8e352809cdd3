package payout

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// TaxRate is the fixed withholding applied to every payout.
var TaxRate = decimal.NewFromFloat(0.05)

var (
	// ErrRecordIsNotConstructed is returned when a Record instance was not
	// created through the NewRecord factory method.
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

	// ErrMissingReceipt is returned when a payout is marked paid without a
	// receipt image.
	ErrMissingReceipt = errors.New("receipt image is required")

	// ErrRecordImmutable is returned for any mutation of a paid record other
	// than re-attaching its receipt.
	ErrRecordImmutable = errors.New("paid payout record is immutable")
)

// PayeeKind distinguishes seller payouts (for sold items) from rider payouts
// (for completed deliveries).
type PayeeKind int

const (
	// PayeeUnknown represents an invalid or undefined payee kind.
	PayeeUnknown PayeeKind = iota

	// PayeeSeller marks a payout to a farmer-seller.
	PayeeSeller

	// PayeeRider marks a payout to a delivery rider.
	PayeeRider
)

func getPayeeKindStrings() map[PayeeKind]string {
	return map[PayeeKind]string{
		PayeeSeller: "seller",
		PayeeRider:  "rider",
	}
}

// PayeeKindFromString parses a payee kind from its wire representation.
func PayeeKindFromString(s string) (PayeeKind, error) {
	for k, str := range getPayeeKindStrings() {
		if str == s {
			return k, nil
		}
	}
	return PayeeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payee kind is invalid",
		fmt.Errorf("%q is not a valid payee kind", s),
	)
}

// Validate checks if the PayeeKind value is valid.
func (k PayeeKind) Validate() error {
	if _, ok := getPayeeKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payee kind is invalid",
			fmt.Errorf("%d is not a valid payee kind", k),
		)
	}
	return nil
}

// String returns the wire representation of the payee kind.
func (k PayeeKind) String() string {
	if str, ok := getPayeeKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Status is the payout lifecycle state: pending until the receipt is uploaded,
// then paid and irreversible.
type Status int

const (
	// StatusUnknown represents an invalid or undefined payout status.
	StatusUnknown Status = iota

	// StatusPending means the payout is settled but not yet disbursed.
	// Pending records and their payment lines may still be deleted.
	StatusPending

	// StatusPaid means the payout was disbursed with a receipt attached.
	// Paid records are immutable ledger data.
	StatusPaid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending: "pending",
		StatusPaid:    "paid",
	}
}

// StatusFromString parses the wire representation of a payout status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payout status is invalid",
		fmt.Errorf("%q is not a valid payout status", s),
	)
}

// String returns the wire representation of the payout status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payout status is invalid",
			fmt.Errorf("%d is not a valid payout status", s),
		)
	}
	return nil
}

// Period is the settlement window a payout covers.
type Period struct {
	From time.Time
	To   time.Time
}

// Validate ensures the period is well formed.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return errs.NewValueIsRequiredError("settlement period")
	}
	if !p.From.Before(p.To) {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement period is invalid",
			fmt.Errorf("from %s is not before to %s", p.From, p.To),
		)
	}
	return nil
}

// Line is one settled order or delivery within a payout record.
type Line struct {
	OrderID kernel.UUID
	Gross   kernel.Money
}

// Record aggregates a payee's settled orders or deliveries over a period into
// one payout with a fixed 5% tax withholding.
//
// Record follows these invariants:
//   - taxAmount = round(totalAmount * 0.05, 2) and netAmount + taxAmount = totalAmount
//   - status only moves pending -> paid, and paying requires a receipt image
//   - a paid record is immutable except for re-attaching its receipt
type Record struct {
	id          kernel.UUID
	payeeID     kernel.UUID
	payeeKind   PayeeKind
	period      Period
	lines       []Line
	totalAmount kernel.Money
	taxAmount   kernel.Money
	netAmount   kernel.Money
	status      Status
	receiptRef  string
	paidAt      *time.Time
	version     int

	isConstructed bool
}

// NewRecord settles the given payment lines into a pending payout record,
// computing the withholding tax and net amount from the line totals.
func NewRecord(
	id, payeeID kernel.UUID,
	payeeKind PayeeKind,
	period Period,
	lines []Line,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		payeeID.Validate(),
		payeeKind.Validate(),
		period.Validate(),
	); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("payment lines")
	}

	total := kernel.ZeroMoney()
	for _, line := range lines {
		if err := errors.Join(line.OrderID.Validate(), line.Gross.Validate()); err != nil {
			return nil, err
		}
		total = total.Add(line.Gross)
	}

	tax := total.MulRate(TaxRate)
	net, err := total.Sub(tax)
	if err != nil {
		return nil, err
	}

	return &Record{
		id:            id,
		payeeID:       payeeID,
		payeeKind:     payeeKind,
		period:        period,
		lines:         append([]Line(nil), lines...),
		totalAmount:   total,
		taxAmount:     tax,
		netAmount:     net,
		status:        StatusPending,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a payout record from persistence.
func RestoreRecord(
	id, payeeID kernel.UUID,
	payeeKind PayeeKind,
	period Period,
	lines []Line,
	totalAmount, taxAmount, netAmount kernel.Money,
	status Status,
	receiptRef string,
	paidAt *time.Time,
	version int,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		payeeID.Validate(),
		payeeKind.Validate(),
		period.Validate(),
		status.Validate(),
		totalAmount.Validate(),
		taxAmount.Validate(),
		netAmount.Validate(),
	); err != nil {
		return nil, err
	}

	return &Record{
		id:            id,
		payeeID:       payeeID,
		payeeKind:     payeeKind,
		period:        period,
		lines:         append([]Line(nil), lines...),
		totalAmount:   totalAmount,
		taxAmount:     taxAmount,
		netAmount:     netAmount,
		status:        status,
		receiptRef:    receiptRef,
		paidAt:        paidAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record instance was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *Record) ID() kernel.UUID { return r.id }

// PayeeID returns the seller or rider being paid.
func (r *Record) PayeeID() kernel.UUID { return r.payeeID }

// PayeeKind returns whether the payee is a seller or a rider.
func (r *Record) PayeeKind() PayeeKind { return r.payeeKind }

// Period returns the settlement window the record covers.
func (r *Record) Period() Period { return r.period }

// Lines returns the settled payment lines.
func (r *Record) Lines() []Line { return append([]Line(nil), r.lines...) }

// TotalAmount returns the gross settled amount.
func (r *Record) TotalAmount() kernel.Money { return r.totalAmount }

// TaxAmount returns the withheld tax, 5% of the total rounded to 2 decimals.
func (r *Record) TaxAmount() kernel.Money { return r.taxAmount }

// NetAmount returns the amount disbursed to the payee.
func (r *Record) NetAmount() kernel.Money { return r.netAmount }

// Status returns the payout status.
func (r *Record) Status() Status { return r.status }

// ReceiptRef returns the file-store reference of the disbursement receipt.
func (r *Record) ReceiptRef() string { return r.receiptRef }

// PaidAt returns when the payout was disbursed, nil while pending.
func (r *Record) PaidAt() *time.Time { return r.paidAt }

// Version returns the optimistic concurrency version of the aggregate.
func (r *Record) Version() int { return r.version }

// MarkPaid disburses the payout. A receipt image is mandatory and the
// transition is irreversible.
func (r *Record) MarkPaid(receiptRef string, at time.Time) error {
	if r.status == StatusPaid {
		return fmt.Errorf("%w: record %s is already paid", ErrRecordImmutable, r.id)
	}
	if receiptRef == "" {
		return fmt.Errorf("%w: payout disbursement", ErrMissingReceipt)
	}

	r.status = StatusPaid
	r.receiptRef = receiptRef
	r.paidAt = &at
	return nil
}

// AttachReceipt replaces the receipt image on a paid record. This is the only
// mutation a paid record permits.
func (r *Record) AttachReceipt(receiptRef string) error {
	if receiptRef == "" {
		return fmt.Errorf("%w: receipt attachment", ErrMissingReceipt)
	}
	r.receiptRef = receiptRef
	return nil
}

// CanDelete reports whether the record (and its payment lines) may be deleted.
// Only pending records are deletable; a paid record is ledger data.
func (r *Record) CanDelete() bool {
	return r.status == StatusPending
}
