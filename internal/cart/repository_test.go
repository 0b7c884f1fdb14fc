// AngelaMos | 2026
// repository_test.go

package cart

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/artisan-market/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestGetOrCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO carts`).
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "created_at", "updated_at"},
		).AddRow("cart-1", "user-1", now, now))

	cart, err := repo.GetOrCreate(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "cart-1", cart.ID)
	assert.Equal(t, "user-1", cart.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItems_ExcludesRetiredProducts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)FROM cart_items ci.*p\.deleted_at IS NULL`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_id", "product_name", "color",
			"quantity", "unit_price", "primary_image",
		}).AddRow("item-1", "prod-1", "Walnut Bowl", "", 2, 2500, ""))

	items, err := repo.GetItems(context.Background(), "cart-1")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Walnut Bowl", items[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_NewLine(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(10))
	mock.ExpectQuery(`SELECT quantity FROM cart_items`).
		WithArgs("cart-1", "prod-1", "blue").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO cart_items`).
		WithArgs(sqlmock.AnyArg(), "cart-1", "prod-1", "blue", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AddItem(context.Background(), "cart-1", "prod-1", "blue", 3)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_StockExceededRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	// Existing 4 plus requested 3 would pass the ceiling of 5; the
	// upsert must never run.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(5))
	mock.ExpectQuery(`SELECT quantity FROM cart_items`).
		WithArgs("cart-1", "prod-1", "").
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(4))
	mock.ExpectRollback()

	err := repo.AddItem(context.Background(), "cart-1", "prod-1", "", 3)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "STOCK_EXCEEDED", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("prod-missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.AddItem(context.Background(), "cart-1", "prod-missing", "", 1)

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetItemQuantity_ItemNotInCart(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id FROM cart_items`).
		WithArgs("item-1", "cart-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.SetItemQuantity(context.Background(), "cart-1", "item-1", 2)

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetItemQuantity_WithinStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT product_id FROM cart_items`).
		WithArgs("item-1", "cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow("prod-1"))
	mock.ExpectQuery(`SELECT stock FROM products`).
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(8))
	mock.ExpectExec(`UPDATE cart_items`).
		WithArgs("item-1", "cart-1", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetItemQuantity(context.Background(), "cart-1", "item-1", 5)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteItem_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs("item-1", "cart-other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteItem(context.Background(), "cart-other", "item-1")

	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
