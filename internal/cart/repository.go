// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/artisan-market/internal/core"
)

type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	GetItems(ctx context.Context, cartID string) ([]ItemDetail, error)
	AddItem(
		ctx context.Context,
		cartID, productID, color string,
		quantity int,
	) error
	SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// GetOrCreate returns the user's cart, creating it on first use. The
// upsert is a no-op on conflict so repeated calls return the same row.
func (r *repository) GetOrCreate(
	ctx context.Context,
	userID string,
) (*Cart, error) {
	query := `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at`

	var cart Cart
	err := r.db.GetContext(ctx, &cart, query, uuid.New().String(), userID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	return &cart, nil
}

func (r *repository) GetItems(
	ctx context.Context,
	cartID string,
) ([]ItemDetail, error) {
	// Lines whose product has been retired are dropped from the view so
	// the cart never shows something checkout would refuse to sell.
	query := `
		SELECT ci.id, ci.product_id, p.name AS product_name, ci.color,
		       ci.quantity, p.price AS unit_price,
		       COALESCE(p.images->>0, '') AS primary_image
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1 AND p.deleted_at IS NULL
		ORDER BY ci.created_at ASC`

	var items []ItemDetail
	if err := r.db.SelectContext(ctx, &items, query, cartID); err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}

	return items, nil
}

// AddItem merges quantity into the (cart, product, color) line inside
// one transaction. The product row is locked first so the stock ceiling
// holds under concurrent adds; a violation leaves the cart untouched.
func (r *repository) AddItem(
	ctx context.Context,
	cartID, productID, color string,
	quantity int,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		stock, err := lockProductStock(ctx, tx, productID)
		if err != nil {
			return err
		}

		var existing int
		err = tx.GetContext(ctx, &existing, `
			SELECT quantity FROM cart_items
			WHERE cart_id = $1 AND product_id = $2 AND color = $3`,
			cartID, productID, color)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get existing quantity: %w", err)
		}

		if existing+quantity > stock {
			return core.StockExceededError(stock)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (id, cart_id, product_id, color, quantity)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (cart_id, product_id, color) DO UPDATE
			SET quantity = cart_items.quantity + EXCLUDED.quantity,
			    updated_at = NOW()`,
			uuid.New().String(), cartID, productID, color, quantity)
		if err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}

		return nil
	})
}

// SetItemQuantity replaces a line's quantity under the same stock
// ceiling as AddItem. The item must belong to the given cart.
func (r *repository) SetItemQuantity(
	ctx context.Context,
	cartID, itemID string,
	quantity int,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var productID string
		err := tx.GetContext(ctx, &productID, `
			SELECT product_id FROM cart_items
			WHERE id = $1 AND cart_id = $2`,
			itemID, cartID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get cart item: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get cart item: %w", err)
		}

		stock, err := lockProductStock(ctx, tx, productID)
		if err != nil {
			return err
		}

		if quantity > stock {
			return core.StockExceededError(stock)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE cart_items
			SET quantity = $3, updated_at = NOW()
			WHERE id = $1 AND cart_id = $2`,
			itemID, cartID, quantity)
		if err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}

		return nil
	})
}

// DeleteItem is scoped to the cart so a caller can never delete a line
// from someone else's cart.
func (r *repository) DeleteItem(
	ctx context.Context,
	cartID, itemID string,
) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = $2`,
		itemID, cartID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete cart item: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

func lockProductStock(
	ctx context.Context,
	tx *sqlx.Tx,
	productID string,
) (int, error) {
	var stock int
	err := tx.GetContext(ctx, &stock, `
		SELECT stock FROM products
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`,
		productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lock product: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("lock product: %w", err)
	}

	return stock, nil
}
