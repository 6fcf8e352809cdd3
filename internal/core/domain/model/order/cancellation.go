package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// RefundStatus is the state of a cancellation refund. The stepper is linear
// with a single escape hatch: pending -> processing -> completed, or rejected
// from either of the first two states.
type RefundStatus int

const (
	// RefundUnknown represents an invalid or undefined refund status.
	RefundUnknown RefundStatus = iota

	// RefundPending means the refund is eligible and queued for processing.
	RefundPending

	// RefundProcessing means an admin started processing the refund.
	RefundProcessing

	// RefundCompleted means the refund was paid out, with receipt attached. Terminal.
	RefundCompleted

	// RefundRejected means an admin declined the refund with a reason. Terminal.
	RefundRejected
)

func getRefundStatusStrings() map[RefundStatus]string {
	return map[RefundStatus]string{
		RefundPending:    "pending",
		RefundProcessing: "processing",
		RefundCompleted:  "completed",
		RefundRejected:   "rejected",
	}
}

// RefundStatusFromString parses a refund status from its wire representation.
func RefundStatusFromString(s string) (RefundStatus, error) {
	for status, str := range getRefundStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return RefundUnknown, errs.NewValueIsInvalidErrorWithCause(
		"refund status is invalid",
		fmt.Errorf("%q is not a valid refund status", s),
	)
}

// String returns the wire representation of the refund status.
func (s RefundStatus) String() string {
	if str, ok := getRefundStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the RefundStatus value is valid.
func (s RefundStatus) Validate() error {
	if _, ok := getRefundStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"refund status is invalid",
			fmt.Errorf("%d is not a valid refund status", s),
		)
	}
	return nil
}

// Refund holds the refund owed to the buyer after an eligible cancellation.
// Eligibility is decided externally at cancellation time; once installed the
// refund only moves through its status stepper.
type Refund struct {
	amount        kernel.Money
	method        string
	accountName   string
	accountNumber string
	status        RefundStatus
	notes         string
	receiptRef    string
	qrRef         string
}

// RestoreRefund reconstructs a refund record from persistence.
func RestoreRefund(
	amount kernel.Money,
	method, accountName, accountNumber string,
	status RefundStatus,
	notes, receiptRef, qrRef string,
) (*Refund, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	return &Refund{
		amount:        amount,
		method:        method,
		accountName:   accountName,
		accountNumber: accountNumber,
		status:        status,
		notes:         notes,
		receiptRef:    receiptRef,
		qrRef:         qrRef,
	}, nil
}

// Amount returns the refund amount owed to the buyer.
func (r *Refund) Amount() kernel.Money { return r.amount }

// PayoutMethod returns the buyer's chosen disbursement channel.
func (r *Refund) PayoutMethod() string { return r.method }

// AccountName returns the name on the buyer's receiving account.
func (r *Refund) AccountName() string { return r.accountName }

// AccountNumber returns the buyer's receiving account number.
func (r *Refund) AccountNumber() string { return r.accountNumber }

// Status returns the current refund status.
func (r *Refund) Status() RefundStatus { return r.status }

// Notes returns the admin notes, set when the refund is rejected.
func (r *Refund) Notes() string { return r.notes }

// ReceiptRef returns the file-store reference of the disbursement receipt.
func (r *Refund) ReceiptRef() string { return r.receiptRef }

// QRRef returns the file-store reference of the buyer's payment QR code, if any.
func (r *Refund) QRRef() string { return r.qrRef }

// Cancellation is the record embedded on an order once cancellation is
// triggered. Holds the justification, optional proof, and the refund record
// when the cancellation was judged refund-eligible.
type Cancellation struct {
	reason        string
	proofImageRef string
	refund        *Refund
}

// RestoreCancellation reconstructs a cancellation record from persistence.
func RestoreCancellation(reason, proofImageRef string, refund *Refund) *Cancellation {
	return &Cancellation{
		reason:        reason,
		proofImageRef: proofImageRef,
		refund:        refund,
	}
}

// Reason returns the cancellation justification.
func (c *Cancellation) Reason() string { return c.reason }

// ProofImageRef returns the file-store reference of the optional proof image.
func (c *Cancellation) ProofImageRef() string { return c.proofImageRef }

// Refund returns the refund record, nil when the cancellation was not refund-eligible.
func (c *Cancellation) Refund() *Refund { return c.refund }
