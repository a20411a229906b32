package persistence

import (
	"context"
	"errors"

	"github.com/gemledger/backend/internal/domain/finance"
	"github.com/gemledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var receiptVoucherSearchColumns = []string{"number", "customer_name", "invoice_number"}

var receiptVoucherFilterColumns = map[string]bool{
	"customer_id":     true,
	"invoice_id":      true,
	"account_head_id": true,
}

// GormReceiptVoucherRepository implements finance.ReceiptVoucherRepository
// using GORM. Vouchers are immutable once written, so there is no Update.
type GormReceiptVoucherRepository struct {
	db *gorm.DB
}

// NewGormReceiptVoucherRepository creates a new GormReceiptVoucherRepository
func NewGormReceiptVoucherRepository(db *gorm.DB) *GormReceiptVoucherRepository {
	return &GormReceiptVoucherRepository{db: db}
}

// FindByID finds a receipt voucher by ID within a tenant
func (r *GormReceiptVoucherRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.ReceiptVoucher, error) {
	var voucher finance.ReceiptVoucher
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

func (r *GormReceiptVoucherRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&finance.ReceiptVoucher{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, receiptVoucherSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, receiptVoucherFilterColumns),
		)
}

// FindAll finds all receipt vouchers matching the filter
func (r *GormReceiptVoucherRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.ReceiptVoucher, error) {
	var vouchers []finance.ReceiptVoucher
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, VoucherSortFields, "date")).
		Find(&vouchers).Error
	return vouchers, err
}

// Count counts receipt vouchers matching the filter
func (r *GormReceiptVoucherRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Create inserts a receipt voucher
func (r *GormReceiptVoucherRepository) Create(ctx context.Context, voucher *finance.ReceiptVoucher) error {
	return dbc(ctx, r.db).Create(voucher).Error
}

// Delete removes a receipt voucher
func (r *GormReceiptVoucherRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.ReceiptVoucher{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var paymentVoucherSearchColumns = []string{"number", "vendor_name", "bill_number"}

var paymentVoucherFilterColumns = map[string]bool{
	"vendor_id":       true,
	"bill_id":         true,
	"account_head_id": true,
}

// GormPaymentVoucherRepository implements finance.PaymentVoucherRepository using GORM
type GormPaymentVoucherRepository struct {
	db *gorm.DB
}

// NewGormPaymentVoucherRepository creates a new GormPaymentVoucherRepository
func NewGormPaymentVoucherRepository(db *gorm.DB) *GormPaymentVoucherRepository {
	return &GormPaymentVoucherRepository{db: db}
}

// FindByID finds a payment voucher by ID within a tenant
func (r *GormPaymentVoucherRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.PaymentVoucher, error) {
	var voucher finance.PaymentVoucher
	if err := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

func (r *GormPaymentVoucherRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	return dbc(ctx, r.db).
		Model(&finance.PaymentVoucher{}).
		Where("tenant_id = ?", tenantID).
		Scopes(
			SearchScope(filter.Search, paymentVoucherSearchColumns),
			DateRangeScope("date", filter.StartDate, filter.EndDate),
			EqualsScope(filter.Filters, paymentVoucherFilterColumns),
		)
}

// FindAll finds all payment vouchers matching the filter
func (r *GormPaymentVoucherRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.PaymentVoucher, error) {
	var vouchers []finance.PaymentVoucher
	err := r.filtered(ctx, tenantID, filter).
		Scopes(PageScope(filter, VoucherSortFields, "date")).
		Find(&vouchers).Error
	return vouchers, err
}

// Count counts payment vouchers matching the filter
func (r *GormPaymentVoucherRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, tenantID, filter).Count(&count).Error
	return count, err
}

// Create inserts a payment voucher
func (r *GormPaymentVoucherRepository) Create(ctx context.Context, voucher *finance.PaymentVoucher) error {
	return dbc(ctx, r.db).Create(voucher).Error
}

// Delete removes a payment voucher
func (r *GormPaymentVoucherRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := dbc(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&finance.PaymentVoucher{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
