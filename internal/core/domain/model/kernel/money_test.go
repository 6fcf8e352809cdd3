package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(200))

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "200.00", m.String())
	})

	t.Run("should fail on negative decimal", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse decimal strings", func(t *testing.T) {
		m, err := kernel.MoneyFromString("199.50")

		require.NoError(t, err)
		assert.Equal(t, "199.50", m.String())
	})

	t.Run("should fail on garbage input", func(t *testing.T) {
		_, err := kernel.MoneyFromString("two hundred")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on negative input", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-5.00")

		require.Error(t, err)
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})

	t.Run("constructed zero amount passes validation", func(t *testing.T) {
		m := kernel.ZeroMoney()

		require.NoError(t, m.Validate())
		assert.True(t, m.IsZero())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("100.25")
		b, _ := kernel.MoneyFromString("49.75")

		assert.Equal(t, "150.00", a.Add(b).String())
	})

	t.Run("sub", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("500")
		b, _ := kernel.MoneyFromString("25")

		result, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, "475.00", result.String())
	})

	t.Run("sub fails when result is negative", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("10")
		b, _ := kernel.MoneyFromString("25")

		_, err := a.Sub(b)

		require.Error(t, err)
	})

	t.Run("mul by quantity", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("200")

		assert.Equal(t, "600.00", a.Mul(3).String())
	})

	t.Run("mul rate rounds to two decimals", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("333.33")

		tax := a.MulRate(decimal.NewFromFloat(0.05))

		assert.Equal(t, "16.67", tax.String())
	})

	t.Run("net plus tax equals total", func(t *testing.T) {
		total, _ := kernel.MoneyFromString("1234.56")
		tax := total.MulRate(decimal.NewFromFloat(0.05))
		net, err := total.Sub(tax)

		require.NoError(t, err)
		assert.True(t, net.Add(tax).IsEqual(total))
	})
}

func TestMoney_Comparison(t *testing.T) {
	t.Run("is equal ignores representation", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("200")
		b, _ := kernel.MoneyFromString("200.00")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("less than", func(t *testing.T) {
		a, _ := kernel.MoneyFromString("199.99")
		b, _ := kernel.MoneyFromString("200")

		assert.True(t, a.LessThan(b))
		assert.False(t, b.LessThan(a))
	})
}
