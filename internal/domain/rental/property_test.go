package rental

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty(t *testing.T) {
	t.Run("creates available property with valid inputs", func(t *testing.T) {
		property, err := NewProperty("Apartamento 3B", "Av. Lincoln 405, Santo Domingo", 3, decimal.NewFromInt(25000), CurrencyDOP)
		require.NoError(t, err)
		require.NotNil(t, property)

		assert.Equal(t, "Apartamento 3B", property.Name)
		assert.Equal(t, 3, property.Rooms)
		assert.Equal(t, PropertyStatusAvailable, property.Status)
		assert.Equal(t, CurrencyDOP, property.Currency)
		assert.Nil(t, property.PaymentDay)
		assert.Nil(t, property.NextPaymentDate)
		assert.Nil(t, property.PaymentStatus)
		assert.NotEmpty(t, property.ID)
		assert.Equal(t, 1, property.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProperty("", "Calle Sol 12", 1, decimal.NewFromInt(500), CurrencyUSD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty address", func(t *testing.T) {
		_, err := NewProperty("Casa", "", 1, decimal.NewFromInt(500), CurrencyUSD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Address cannot be empty")
	})

	t.Run("fails with zero rooms", func(t *testing.T) {
		_, err := NewProperty("Casa", "Calle Sol 12", 0, decimal.NewFromInt(500), CurrencyUSD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room count must be positive")
	})

	t.Run("fails with negative rent", func(t *testing.T) {
		_, err := NewProperty("Casa", "Calle Sol 12", 1, decimal.NewFromInt(-1), CurrencyUSD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rent cannot be negative")
	})

	t.Run("fails with unknown currency", func(t *testing.T) {
		_, err := NewProperty("Casa", "Calle Sol 12", 1, decimal.NewFromInt(500), Currency("EUR"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Currency must be")
	})
}

func TestPropertyUpdate(t *testing.T) {
	t.Run("replaces fields and bumps version", func(t *testing.T) {
		property := mustProperty(t)
		version := property.GetVersion()

		err := property.Update("Casa Renovada", "Calle Luna 8", 4, decimal.NewFromInt(30000), CurrencyDOP)
		require.NoError(t, err)

		assert.Equal(t, "Casa Renovada", property.Name)
		assert.Equal(t, 4, property.Rooms)
		assert.Equal(t, version+1, property.GetVersion())
	})

	t.Run("rejects invalid input without mutating", func(t *testing.T) {
		property := mustProperty(t)
		err := property.Update("", "Calle Luna 8", 4, decimal.NewFromInt(30000), CurrencyDOP)
		require.Error(t, err)
		assert.Equal(t, "Apartamento 3B", property.Name)
	})
}

func TestPropertyOccupancy(t *testing.T) {
	today := date(2026, time.March, 10)

	t.Run("mark occupied starts a pending payment cycle", func(t *testing.T) {
		property := mustProperty(t)

		err := property.MarkOccupied(15, today)
		require.NoError(t, err)

		assert.Equal(t, PropertyStatusOccupied, property.Status)
		require.NotNil(t, property.PaymentDay)
		assert.Equal(t, 15, *property.PaymentDay)
		require.NotNil(t, property.NextPaymentDate)
		assert.Equal(t, date(2026, time.March, 15), *property.NextPaymentDate)
		require.NotNil(t, property.PaymentStatus)
		assert.Equal(t, PaymentStatusPending, *property.PaymentStatus)
	})

	t.Run("mark occupied on the payment day rolls a month ahead", func(t *testing.T) {
		property := mustProperty(t)

		err := property.MarkOccupied(10, today)
		require.NoError(t, err)
		assert.Equal(t, date(2026, time.April, 10), *property.NextPaymentDate)
	})

	t.Run("rejects payment day outside 1..31", func(t *testing.T) {
		property := mustProperty(t)
		require.Error(t, property.MarkOccupied(0, today))
		require.Error(t, property.MarkOccupied(32, today))
	})

	t.Run("mark available clears payment tracking", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))

		property.MarkAvailable()

		assert.Equal(t, PropertyStatusAvailable, property.Status)
		assert.Nil(t, property.PaymentDay)
		assert.Nil(t, property.NextPaymentDate)
		assert.Nil(t, property.PaymentStatus)
	})
}

func TestPropertyPayments(t *testing.T) {
	today := date(2026, time.March, 10)

	t.Run("mark paid advances the due date a month", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))

		err := property.MarkPaid(date(2026, time.March, 12))
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPaid, *property.PaymentStatus)
		assert.Equal(t, date(2026, time.April, 15), *property.NextPaymentDate)
	})

	t.Run("mark paid fails on an available property", func(t *testing.T) {
		property := mustProperty(t)
		err := property.MarkPaid(today)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "occupied properties")
	})

	t.Run("cancel payment reverts to pending keeping the date", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))
		require.NoError(t, property.MarkPaid(date(2026, time.March, 12)))
		due := *property.NextPaymentDate

		err := property.CancelPayment()
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPending, *property.PaymentStatus)
		assert.Equal(t, due, *property.NextPaymentDate)
	})

	t.Run("cancel payment fails on an available property", func(t *testing.T) {
		property := mustProperty(t)
		require.Error(t, property.CancelPayment())
	})

	t.Run("set payment status patches status and optional date", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))

		next := time.Date(2026, time.May, 1, 14, 30, 0, 0, time.UTC)
		err := property.SetPaymentStatus(PaymentStatusOverdue, &next)
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusOverdue, *property.PaymentStatus)
		assert.Equal(t, date(2026, time.May, 1), *property.NextPaymentDate)
	})

	t.Run("set payment status keeps the date when none given", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))
		due := *property.NextPaymentDate

		require.NoError(t, property.SetPaymentStatus(PaymentStatusPaid, nil))
		assert.Equal(t, due, *property.NextPaymentDate)
	})

	t.Run("set payment status rejects unknown values", func(t *testing.T) {
		property := mustProperty(t)
		require.NoError(t, property.MarkOccupied(15, today))
		require.Error(t, property.SetPaymentStatus(PaymentStatus("Desconocido"), nil))
	})
}

func mustProperty(t *testing.T) *Property {
	t.Helper()
	property, err := NewProperty("Apartamento 3B", "Av. Lincoln 405, Santo Domingo", 3, decimal.NewFromInt(25000), CurrencyDOP)
	require.NoError(t, err)
	return property
}
