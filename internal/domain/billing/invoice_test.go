package billing

import (
	"testing"
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T, rates ...float64) []InvoiceItem {
	t.Helper()
	items := make([]InvoiceItem, 0, len(rates))
	for _, r := range rates {
		item, err := NewInvoiceItem(uuid.New(), "Gold Ring", 1, decimal.NewFromFloat(r))
		require.NoError(t, err)
		items = append(items, *item)
	}
	return items
}

func createTestInvoice(t *testing.T, rates ...float64) *Invoice {
	t.Helper()
	if len(rates) == 0 {
		rates = []float64{60, 40}
	}
	inv, err := NewInvoice(uuid.New(), "I20240522-1", uuid.New(), "Asha Jewels", time.Now(), testItems(t, rates...))
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("computes total from line subtotals", func(t *testing.T) {
		inv := createTestInvoice(t, 60, 40)
		assert.True(t, decimal.NewFromInt(100).Equal(inv.Amount))
		assert.True(t, inv.PaidAmount.IsZero())
		assert.Equal(t, StatusDue, inv.Status)
		for _, item := range inv.Items {
			assert.Equal(t, inv.ID, item.InvoiceID)
		}
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), "I20240522-1", uuid.New(), "Asha Jewels", time.Now(), nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), "I20240522-1", uuid.Nil, "", time.Now(), testItems(t, 10))
		assert.Error(t, err)
	})
}

func TestNewInvoiceItem(t *testing.T) {
	t.Run("subtotal is rate times quantity", func(t *testing.T) {
		item, err := NewInvoiceItem(uuid.New(), "Bangle", 3, decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(37.5).Equal(item.Subtotal))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewInvoiceItem(uuid.New(), "Bangle", 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewInvoiceItem(uuid.New(), "Bangle", 1, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestInvoiceApplyPayment(t *testing.T) {
	t.Run("partial then full payment walks due-partial-paid", func(t *testing.T) {
		inv := createTestInvoice(t, 100)

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(40)))
		assert.Equal(t, StatusPartial, inv.Status)
		assert.True(t, decimal.NewFromInt(60).Equal(inv.Outstanding()))

		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(60)))
		assert.Equal(t, StatusPaid, inv.Status)
		assert.True(t, inv.Outstanding().IsZero())
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.ApplyPayment(decimal.NewFromInt(150))
		assert.Error(t, err)
		assert.Equal(t, StatusDue, inv.Status)
		assert.True(t, inv.PaidAmount.IsZero())
	})

	t.Run("rejects payment on canceled invoice", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Cancel())
		err := inv.ApplyPayment(decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestInvoiceReversePayment(t *testing.T) {
	t.Run("unwinding all payments returns to due", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))
		assert.Equal(t, StatusPaid, inv.Status)

		require.NoError(t, inv.ReversePayment(decimal.NewFromInt(100)))
		assert.Equal(t, StatusDue, inv.Status)
		assert.True(t, inv.PaidAmount.IsZero())
	})

	t.Run("partial reversal re-derives partial", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))
		require.NoError(t, inv.ReversePayment(decimal.NewFromInt(60)))
		assert.Equal(t, StatusPartial, inv.Status)
	})

	t.Run("rejects reversal beyond paid amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(30)))
		assert.Error(t, inv.ReversePayment(decimal.NewFromInt(40)))
	})
}

func TestInvoiceMutationLock(t *testing.T) {
	t.Run("paid invoice refuses update and delete", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(40)))

		err := inv.UpdateHeader(inv.CustomerID, inv.CustomerName, inv.Date, "changed")
		assert.ErrorIs(t, err, shared.ErrDocumentLocked)

		err = inv.ReplaceItems(testItems(t, 10))
		assert.ErrorIs(t, err, shared.ErrDocumentLocked)

		assert.Equal(t, StatusPartial, inv.Status)
	})

	t.Run("canceled invoice is terminal", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Cancel())

		assert.Error(t, inv.UpdateHeader(inv.CustomerID, inv.CustomerName, inv.Date, ""))
		assert.Error(t, inv.Cancel())
	})

	t.Run("cancel refuses partially paid invoice", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(1)))
		assert.ErrorIs(t, inv.Cancel(), shared.ErrDocumentLocked)
	})
}

func TestInvoiceReplaceItems(t *testing.T) {
	t.Run("replacing with the same set is idempotent on totals", func(t *testing.T) {
		inv := createTestInvoice(t, 60, 40)
		replacement := testItems(t, 60, 40)
		require.NoError(t, inv.ReplaceItems(replacement))
		first := inv.Amount

		replacement = testItems(t, 60, 40)
		require.NoError(t, inv.ReplaceItems(replacement))
		assert.True(t, first.Equal(inv.Amount))
		assert.Len(t, inv.Items, 2)
	})

	t.Run("recomputes total from new lines", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.ReplaceItems(testItems(t, 250)))
		assert.True(t, decimal.NewFromInt(250).Equal(inv.Amount))
	})
}
