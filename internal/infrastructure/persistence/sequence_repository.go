package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NumberSequence stores the last issued counter value per tenant and series
type NumberSequence struct {
	Series    string    `gorm:"type:varchar(120);primary_key"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (NumberSequence) TableName() string {
	return "number_sequences"
}

// seedSource tells the allocator where to look for the newest existing
// document number when a series has documents but no counter row yet
// (installations migrated from the read-last-and-increment scheme).
type seedSource struct {
	table  string
	column string
}

var seedSources = map[string]seedSource{
	numbering.CustomerSeries.Key:       {table: "customers", column: "number"},
	numbering.VendorSeries.Key:         {table: "vendors", column: "number"},
	numbering.ProductSeries.Key:        {table: "products", column: "number"},
	numbering.EquipmentSeries.Key:      {table: "equipments", column: "number"},
	numbering.JewellerySeries.Key:      {table: "jewellery_items", column: "number"},
	numbering.InvoiceSeries.Key:        {table: "invoices", column: "number"},
	numbering.BillSeries.Key:           {table: "bills", column: "number"},
	numbering.ReceiptVoucherSeries.Key: {table: "receipt_vouchers", column: "number"},
	numbering.PaymentVoucherSeries.Key: {table: "payment_vouchers", column: "number"},
}

// GormSequenceAllocator implements numbering.Allocator on a counter table.
// The counter advances through a single atomic upsert, so concurrent
// allocations of the same series serialize inside the database instead of
// racing on a read-then-write of the newest document.
type GormSequenceAllocator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormSequenceAllocator creates a new GormSequenceAllocator
func NewGormSequenceAllocator(db *gorm.DB, logger *zap.Logger) *GormSequenceAllocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormSequenceAllocator{db: db, logger: logger}
}

// Next issues the next number of the series for the tenant
func (a *GormSequenceAllocator) Next(ctx context.Context, tenantID uuid.UUID, series numbering.Series, day string) (string, error) {
	if series.DateScoped && day == "" {
		return "", errors.New("date-scoped series requires a day stamp")
	}
	key := tenantID.String() + ":" + series.CounterKey(day)

	var value int64
	err := dbc(ctx, a.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Raw(
			`UPDATE number_sequences SET value = value + 1, updated_at = ? WHERE series = ? RETURNING value`,
			time.Now(), key,
		).Scan(&value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// No counter row yet: seed from the newest stored number so we
		// continue an existing series instead of restarting it.
		seed := a.seedValue(ctx, tx, tenantID, series, day)
		// RETURNING picks up the bump applied when a concurrent allocation
		// inserted the row first.
		return tx.Raw(
			`INSERT INTO number_sequences (series, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (series) DO UPDATE SET value = number_sequences.value + 1, updated_at = EXCLUDED.updated_at
			 RETURNING value`,
			key, seed+1, time.Now(),
		).Scan(&value).Error
	})
	if err != nil {
		return "", fmt.Errorf("allocate %s number: %w", series.Key, err)
	}

	return series.Format(day, value), nil
}

// seedValue reads the newest existing number of the series and parses its
// counter. Absent records seed at 0; a malformed number also seeds at 0 but
// is logged, since silently restarting a series usually means corrupt data.
func (a *GormSequenceAllocator) seedValue(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, series numbering.Series, day string) int64 {
	src, ok := seedSources[series.Key]
	if !ok {
		return 0
	}

	prefix := series.Prefix
	if series.DateScoped {
		prefix = series.Prefix + day + "-"
	}

	var last string
	err := tx.WithContext(ctx).
		Table(src.table).
		Select(src.column).
		Where("tenant_id = ?", tenantID).
		Where(src.column+" LIKE ?", prefix+"%").
		Order("created_at DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil || last == "" {
		return 0
	}

	value, ok := numbering.ParseSuffix(last)
	if !ok {
		a.logger.Warn("malformed document number while seeding series counter",
			zap.String("series", series.Key),
			zap.String("number", last),
			zap.String("tenant_id", tenantID.String()),
		)
		return 0
	}
	return value
}
