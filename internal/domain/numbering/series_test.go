package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeriesFormat(t *testing.T) {
	t.Run("fixed width series zero-pads the counter", func(t *testing.T) {
		assert.Equal(t, "C-00000001", CustomerSeries.Format("", 1))
		assert.Equal(t, "C-00000123", CustomerSeries.Format("", 123))
		assert.Equal(t, "E-00000045", EquipmentSeries.Format("", 45))
		assert.Equal(t, "VN-00000007", VendorSeries.Format("", 7))
	})

	t.Run("date scoped series appends the raw counter", func(t *testing.T) {
		assert.Equal(t, "I20240522-7", InvoiceSeries.Format("20240522", 7))
		assert.Equal(t, "V20240522-3", ReceiptVoucherSeries.Format("20240522", 3))
		assert.Equal(t, "PV20240522-12", PaymentVoucherSeries.Format("20240522", 12))
	})

	t.Run("counter grows past the pad width without truncation", func(t *testing.T) {
		assert.Equal(t, "C-123456789", CustomerSeries.Format("", 123456789))
	})
}

func TestSeriesCounterKey(t *testing.T) {
	assert.Equal(t, "customer", CustomerSeries.CounterKey(""))
	assert.Equal(t, "customer", CustomerSeries.CounterKey("20240522"))
	assert.Equal(t, "invoice:20240522", InvoiceSeries.CounterKey("20240522"))
	assert.Equal(t, "invoice:20240523", InvoiceSeries.CounterKey("20240523"))
}

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int64
		ok     bool
	}{
		{"fixed width", "C-00000123", 123, true},
		{"date scoped", "I20240522-7", 7, true},
		{"prefixed dash", "PV20240522-12", 12, true},
		{"first in series", "C-00000001", 1, true},
		{"no separator", "C00000123", 0, false},
		{"empty tail", "C-", 0, false},
		{"non numeric tail", "C-abc", 0, false},
		{"negative tail", "C--5", 0, false},
		{"empty string", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSuffix(tt.number)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestDay(t *testing.T) {
	ts := time.Date(2024, 5, 22, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "20240522", Day(ts))
}
