package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	money, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return money
}

func TestNewLiabilityPolicy(t *testing.T) {
	t.Run("accepts multipliers of at least 1", func(t *testing.T) {
		policy, err := services.NewLiabilityPolicy(decimal.NewFromFloat(1.5))

		require.NoError(t, err)
		assert.True(t, policy.Multiplier().Equal(decimal.NewFromFloat(1.5)))
	})

	t.Run("rejects multipliers below 1", func(t *testing.T) {
		_, err := services.NewLiabilityPolicy(decimal.NewFromFloat(0.5))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("default policy charges exactly the refund", func(t *testing.T) {
		policy := services.DefaultLiabilityPolicy()

		assert.True(t, policy.Multiplier().Equal(decimal.NewFromInt(1)))
	})
}

func TestFaultCalculator_Assess(t *testing.T) {
	calculator := services.NewFaultCalculator(services.DefaultLiabilityPolicy())

	t.Run("seller fault refunds the paid price with no rider liability", func(t *testing.T) {
		assessment, err := calculator.Assess(order.FaultSeller, mustMoney(t, 200), 2)

		require.NoError(t, err)
		assert.Equal(t, "400.00", assessment.RefundAmount.String())
		assert.True(t, assessment.RiderLiability.IsZero())
	})

	t.Run("rider fault charges the refund amount under the default policy", func(t *testing.T) {
		assessment, err := calculator.Assess(order.FaultRider, mustMoney(t, 500), 1)

		require.NoError(t, err)
		assert.Equal(t, "500.00", assessment.RefundAmount.String())
		assert.Equal(t, "500.00", assessment.RiderLiability.String())
	})

	t.Run("no fault still refunds the buyer with no liability", func(t *testing.T) {
		assessment, err := calculator.Assess(order.FaultNone, mustMoney(t, 500), 1)

		require.NoError(t, err)
		assert.Equal(t, "500.00", assessment.RefundAmount.String())
		assert.True(t, assessment.RiderLiability.IsZero())
	})

	t.Run("a stricter policy scales the rider liability", func(t *testing.T) {
		policy, err := services.NewLiabilityPolicy(decimal.NewFromFloat(1.5))
		require.NoError(t, err)
		strict := services.NewFaultCalculator(policy)

		assessment, err := strict.Assess(order.FaultRider, mustMoney(t, 200), 2)

		require.NoError(t, err)
		assert.Equal(t, "400.00", assessment.RefundAmount.String())
		assert.Equal(t, "600.00", assessment.RiderLiability.String())
	})

	t.Run("the zero-value policy falls back to the default", func(t *testing.T) {
		fallback := services.NewFaultCalculator(services.LiabilityPolicy{})

		assessment, err := fallback.Assess(order.FaultRider, mustMoney(t, 100), 1)

		require.NoError(t, err)
		assert.Equal(t, "100.00", assessment.RiderLiability.String())
	})

	t.Run("rejects an undefined fault assignment", func(t *testing.T) {
		_, err := calculator.Assess(order.FaultUnknown, mustMoney(t, 500), 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		_, err := calculator.Assess(order.FaultSeller, mustMoney(t, 500), 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects an unconstructed unit price", func(t *testing.T) {
		_, err := calculator.Assess(order.FaultSeller, kernel.Money{}, 1)

		require.Error(t, err)
	})
}
