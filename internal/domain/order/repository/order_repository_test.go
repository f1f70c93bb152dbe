package repository

import (
	"testing"
	"time"

	"namaste_cart/internal/domain/order/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

func TestTransitionStatus(t *testing.T) {
	t.Run("Conditional update succeeds when expected status matches", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.TransitionStatus("order-1", model.StatusCreated, model.StatusCancelled)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero rows affected reports status conflict", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.TransitionStatus("order-1", model.StatusCreated, model.StatusCancelled)

		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("Only a created order can be marked paid", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkPaid("order-1", "pay_1", "sig", time.Now())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrent confirmation loses the conditional update", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkPaid("order-1", "pay_1", "sig", time.Now())

		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetByRefID(t *testing.T) {
	t.Run("Missing correlation id maps to not found", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectQuery(`SELECT .* FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		order, err := repo.GetByRefID("plink_unknown")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, order)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Order found by correlation id", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewOrderRepository(gdb)

		rows := sqlmock.NewRows([]string{"id", "user_id", "total_amount", "currency", "status", "razorpay_ref_id"}).
			AddRow("order-1", "user-1", "200.00", "INR", model.StatusCreated, "plink_1")
		mock.ExpectQuery(`SELECT .* FROM "orders"`).WillReturnRows(rows)
		mock.ExpectQuery(`SELECT .* FROM "order_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "qty", "unit_price"}))

		order, err := repo.GetByRefID("plink_1")

		assert.NoError(t, err)
		assert.Equal(t, "order-1", order.ID)
		assert.Equal(t, model.StatusCreated, order.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
