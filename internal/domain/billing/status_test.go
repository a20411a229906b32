package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	amount := decimal.NewFromInt(100)

	t.Run("zero paid is due", func(t *testing.T) {
		assert.Equal(t, StatusDue, DeriveStatus(amount, decimal.Zero))
	})

	t.Run("full paid is paid", func(t *testing.T) {
		assert.Equal(t, StatusPaid, DeriveStatus(amount, decimal.NewFromInt(100)))
	})

	t.Run("anything between is partial", func(t *testing.T) {
		assert.Equal(t, StatusPartial, DeriveStatus(amount, decimal.NewFromInt(40)))
		assert.Equal(t, StatusPartial, DeriveStatus(amount, decimal.NewFromFloat(99.99)))
		assert.Equal(t, StatusPartial, DeriveStatus(amount, decimal.NewFromFloat(0.01)))
	})

	t.Run("equality is exact, not scale sensitive", func(t *testing.T) {
		assert.Equal(t, StatusPaid, DeriveStatus(decimal.NewFromFloat(100.00), decimal.NewFromInt(100)))
	})
}

func TestDocumentStatus(t *testing.T) {
	t.Run("validity", func(t *testing.T) {
		for _, s := range []DocumentStatus{StatusDue, StatusPartial, StatusPaid, StatusCanceled} {
			assert.True(t, s.IsValid())
		}
		assert.False(t, DocumentStatus("OPEN").IsValid())
	})

	t.Run("only canceled is terminal", func(t *testing.T) {
		assert.True(t, StatusCanceled.IsTerminal())
		assert.False(t, StatusDue.IsTerminal())
		assert.False(t, StatusPartial.IsTerminal())
		assert.False(t, StatusPaid.IsTerminal())
	})
}
