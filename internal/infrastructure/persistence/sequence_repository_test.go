package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gemledger/backend/internal/domain/numbering"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSequenceAllocator(t *testing.T) (*GormSequenceAllocator, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceAllocator(gormDB, nil), mock, mockDB
}

func TestGormSequenceAllocator_Next(t *testing.T) {
	t.Run("advances existing counter", func(t *testing.T) {
		allocator, mock, mockDB := newMockSequenceAllocator(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE number_sequences SET value = value \+ 1.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(8))
		mock.ExpectCommit()

		number, err := allocator.Next(context.Background(), tenantID, numbering.InvoiceSeries, "20240522")

		assert.NoError(t, err)
		assert.Equal(t, "I20240522-8", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero pads fixed-width series", func(t *testing.T) {
		allocator, mock, mockDB := newMockSequenceAllocator(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE number_sequences SET value = value \+ 1.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(123))
		mock.ExpectCommit()

		number, err := allocator.Next(context.Background(), tenantID, numbering.CustomerSeries, "")

		assert.NoError(t, err)
		assert.Equal(t, "C-00000123", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("seeds counter from newest stored number", func(t *testing.T) {
		allocator, mock, mockDB := newMockSequenceAllocator(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE number_sequences SET value = value \+ 1.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))
		mock.ExpectQuery(`SELECT number FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow("I20240522-7"))
		mock.ExpectQuery(`INSERT INTO number_sequences.*ON CONFLICT.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(8))
		mock.ExpectCommit()

		number, err := allocator.Next(context.Background(), tenantID, numbering.InvoiceSeries, "20240522")

		assert.NoError(t, err)
		assert.Equal(t, "I20240522-8", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed stored number restarts series at one", func(t *testing.T) {
		allocator, mock, mockDB := newMockSequenceAllocator(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE number_sequences SET value = value \+ 1.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))
		mock.ExpectQuery(`SELECT number FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow("I20240522-xyz"))
		mock.ExpectQuery(`INSERT INTO number_sequences.*ON CONFLICT.*RETURNING value`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))
		mock.ExpectCommit()

		number, err := allocator.Next(context.Background(), tenantID, numbering.InvoiceSeries, "20240522")

		assert.NoError(t, err)
		assert.Equal(t, "I20240522-1", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects date-scoped series without day", func(t *testing.T) {
		allocator, _, mockDB := newMockSequenceAllocator(t)
		defer mockDB.Close()

		_, err := allocator.Next(context.Background(), uuid.New(), numbering.InvoiceSeries, "")
		assert.Error(t, err)
	})
}
