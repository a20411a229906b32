package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayLayout is the date stamp embedded in date-scoped document numbers.
const DayLayout = "20060102"

// Series describes one document numbering namespace. Fixed-width series
// produce numbers like C-00000123; date-scoped series produce numbers like
// I20240522-7 and keep an independent counter per calendar day.
type Series struct {
	Key        string
	Prefix     string
	Pad        int
	DateScoped bool
}

// Registered series. Prefixes and widths are part of the wire contract and
// must not change for existing installations.
var (
	CustomerSeries       = Series{Key: "customer", Prefix: "C-", Pad: 8}
	VendorSeries         = Series{Key: "vendor", Prefix: "VN-", Pad: 8}
	ProductSeries        = Series{Key: "product", Prefix: "P-", Pad: 8}
	EquipmentSeries      = Series{Key: "equipment", Prefix: "E-", Pad: 8}
	JewellerySeries      = Series{Key: "jewellery", Prefix: "J-", Pad: 8}
	InvoiceSeries        = Series{Key: "invoice", Prefix: "I", DateScoped: true}
	BillSeries           = Series{Key: "bill", Prefix: "B", DateScoped: true}
	ReceiptVoucherSeries = Series{Key: "receipt_voucher", Prefix: "V", DateScoped: true}
	PaymentVoucherSeries = Series{Key: "payment_voucher", Prefix: "PV", DateScoped: true}
)

// CounterKey returns the key under which this series' counter is stored.
// Date-scoped series get one counter per day so that counters for different
// days never influence each other.
func (s Series) CounterKey(day string) string {
	if s.DateScoped {
		return s.Key + ":" + day
	}
	return s.Key
}

// Format renders the n-th number of the series. Fixed-width series zero-pad
// the counter to the configured width; date-scoped series append the raw
// counter after the day stamp.
func (s Series) Format(day string, n int64) string {
	if s.DateScoped {
		return fmt.Sprintf("%s%s-%d", s.Prefix, day, n)
	}
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Pad, n)
}

// Day renders t as a series day stamp.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseSuffix extracts the numeric counter from a stored document number.
// The counter is the segment after the last separator. A missing or
// non-numeric tail yields 0 and ok=false; callers seeding a counter from
// existing data should treat that as a corrupt number and log it.
func ParseSuffix(number string) (int64, bool) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	n, err := strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Allocator issues the next number of a series for one tenant. Allocation
// must be atomic with respect to concurrent allocations of the same series:
// two callers never receive the same number. Counters only move forward; a
// failed insert after allocation leaves a gap rather than reusing a number.
type Allocator interface {
	Next(ctx context.Context, tenantID uuid.UUID, series Series, day string) (string, error)
}
