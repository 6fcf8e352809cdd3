package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// LiabilityPolicy configures how much of an approved replacement a rider is
// charged for when held at fault. The exact liability formula is deliberately
// a parameter, not a constant: the multiplier scales the buyer's refund amount
// and must be at least 1, so rider liability never falls below the refund owed.
type LiabilityPolicy struct {
	multiplier decimal.Decimal

	isConstructed bool
}

// NewLiabilityPolicy creates a liability policy with the given multiplier.
// Returns an error if the multiplier is below 1.
func NewLiabilityPolicy(multiplier decimal.Decimal) (LiabilityPolicy, error) {
	if multiplier.LessThan(decimal.NewFromInt(1)) {
		return LiabilityPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"liability multiplier is invalid",
			fmt.Errorf("%s is less than 1", multiplier.String()),
		)
	}
	return LiabilityPolicy{
		multiplier:    multiplier,
		isConstructed: true,
	}, nil
}

// DefaultLiabilityPolicy charges the rider exactly the refund amount.
func DefaultLiabilityPolicy() LiabilityPolicy {
	policy, _ := NewLiabilityPolicy(decimal.NewFromInt(1))
	return policy
}

// Multiplier returns the configured liability multiplier.
func (p LiabilityPolicy) Multiplier() decimal.Decimal {
	return p.multiplier
}

// Assessment is the monetary outcome of one approved replacement item.
type Assessment struct {
	// RefundAmount is the refund owed to the buyer: the paid price of the item.
	RefundAmount kernel.Money

	// RiderLiability is the amount later offset against the rider's payout.
	// Zero unless the fault was assigned to the rider.
	RiderLiability kernel.Money
}

// FaultCalculator derives refund amounts and rider liability from a fault
// assignment. It is deterministic and has no side effects; the caller persists
// the result.
type FaultCalculator struct {
	policy LiabilityPolicy
}

// NewFaultCalculator creates a calculator using the given liability policy.
// A zero-value policy falls back to the default (liability equals refund).
func NewFaultCalculator(policy LiabilityPolicy) FaultCalculator {
	if !policy.isConstructed {
		policy = DefaultLiabilityPolicy()
	}
	return FaultCalculator{policy: policy}
}

// Assess computes the monetary outcome of an approved replacement.
// The buyer is always refunded the paid price of the item; the rider is
// charged the policy-scaled liability only when held at fault.
func (c FaultCalculator) Assess(fault order.FaultParty, unitPrice kernel.Money, quantity int) (Assessment, error) {
	if err := fault.Validate(); err != nil {
		return Assessment{}, err
	}
	if err := unitPrice.Validate(); err != nil {
		return Assessment{}, err
	}
	if quantity <= 0 {
		return Assessment{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	refund := unitPrice.Mul(quantity)

	liability := kernel.ZeroMoney()
	if fault == order.FaultRider {
		liability = refund.MulRate(c.policy.multiplier)
	}

	return Assessment{
		RefundAmount:   refund,
		RiderLiability: liability,
	}, nil
}
