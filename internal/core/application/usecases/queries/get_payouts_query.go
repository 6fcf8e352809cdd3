package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPayoutsQueryIsNotConstructed = errors.New(
		"GetPayoutsQuery must be created via NewGetPayoutsQuery constructor",
	)
)

// GetPayoutsQuery retrieves all payout records for a payee, newest period first.
type GetPayoutsQuery struct {
	payeeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPayoutsQuery creates a query for the given payee.
func NewGetPayoutsQuery(payeeID kernel.UUID) (GetPayoutsQuery, error) {
	if err := payeeID.Validate(); err != nil {
		return GetPayoutsQuery{}, err
	}

	return GetPayoutsQuery{
		payeeID: payeeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPayoutsQuery) Validate() error {
	return q.guard.Validate(ErrGetPayoutsQueryIsNotConstructed)
}

// PayeeID returns the identifier of the payee being queried.
func (q GetPayoutsQuery) PayeeID() kernel.UUID {
	return q.payeeID
}

// GetPayoutsQueryResponse is one payout record summary. LineCount is the
// number of settled orders the record covers.
type GetPayoutsQueryResponse struct {
	ID          kernel.UUID
	PayeeID     kernel.UUID
	PayeeKind   payout.PayeeKind
	PeriodFrom  time.Time
	PeriodTo    time.Time
	TotalAmount kernel.Money
	TaxAmount   kernel.Money
	NetAmount   kernel.Money
	Status      payout.Status
	ReceiptRef  string
	PaidAt      *time.Time
	LineCount   int
}
