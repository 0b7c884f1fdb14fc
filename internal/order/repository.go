// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/angelamos/artisan-market/internal/core"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrStatusConflict = errors.New("order status changed concurrently")
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID, cartID string) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetItems(ctx context.Context, orderID string) ([]OrderItem, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context, params ListOrdersParams) ([]Order, int, error)
	SetStatus(ctx context.Context, orderID, from, to string, restock bool) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type checkoutLine struct {
	ProductID   string `db:"product_id"`
	ProductName string `db:"name"`
	Color       string `db:"color"`
	Quantity    int    `db:"quantity"`
	UnitPrice   int64  `db:"price"`
	Stock       int    `db:"stock"`
}

// CreateFromCart snapshots the cart into a pending order and decrements
// each product's stock in one transaction. Product rows are locked up
// front; any shortfall aborts the whole checkout.
func (r *repository) CreateFromCart(
	ctx context.Context,
	userID, cartID string,
) (*Order, error) {
	var order Order

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var lines []checkoutLine
		err := tx.SelectContext(ctx, &lines, `
			SELECT ci.product_id, p.name, ci.color, ci.quantity, p.price, p.stock
			FROM cart_items ci
			JOIN products p ON p.id = ci.product_id
			WHERE ci.cart_id = $1 AND p.deleted_at IS NULL
			ORDER BY ci.created_at ASC
			FOR UPDATE OF p`,
			cartID)
		if err != nil {
			return fmt.Errorf("load cart for checkout: %w", err)
		}

		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total int64
		for i := range lines {
			line := &lines[i]
			if line.Quantity > line.Stock {
				return core.NewAppError(
					core.ErrStockExceeded,
					fmt.Sprintf(
						"insufficient stock for %q, %d available",
						line.ProductName, line.Stock,
					),
					http.StatusConflict,
					"STOCK_EXCEEDED",
				)
			}
			total += line.UnitPrice * int64(line.Quantity)
		}

		order = Order{
			ID:     uuid.New().String(),
			UserID: userID,
			Status: StatusPending,
			Total:  total,
		}

		err = tx.GetContext(ctx, &order, `
			INSERT INTO orders (id, user_id, status, total)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, status, total, created_at, updated_at`,
			order.ID, order.UserID, order.Status, order.Total)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range lines {
			line := &lines[i]

			_, err = tx.ExecContext(ctx, `
				INSERT INTO order_items
					(id, order_id, product_id, product_name, color, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.New().String(), order.ID, line.ProductID,
				line.ProductName, line.Color, line.Quantity, line.UnitPrice)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			result, err := tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $2, updated_at = NOW()
				WHERE id = $1 AND stock >= $2`,
				line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if rows == 0 {
				return core.NewAppError(
					core.ErrStockExceeded,
					fmt.Sprintf(
						"insufficient stock for %q, %d available",
						line.ProductName, line.Stock,
					),
					http.StatusConflict,
					"STOCK_EXCEEDED",
				)
			}
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
		if err != nil {
			return fmt.Errorf("empty cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	query := `
		SELECT id, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func (r *repository) GetItems(
	ctx context.Context,
	orderID string,
) ([]OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, color, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name ASC`

	var items []OrderItem
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return items, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Order, error) {
	query := `
		SELECT id, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM orders WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, total, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

// SetStatus moves an order along one validated edge. The update is
// conditional on the expected current status so concurrent admin
// actions cannot race past each other; cancellation restocks in the
// same transaction.
func (r *repository) SetStatus(
	ctx context.Context,
	orderID, from, to string,
	restock bool,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $3, updated_at = NOW()
			WHERE id = $1 AND status = $2`,
			orderID, from, to)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("update order status: %w", ErrStatusConflict)
		}

		if restock {
			_, err = tx.ExecContext(ctx, `
				UPDATE products p
				SET stock = p.stock + oi.quantity, updated_at = NOW()
				FROM order_items oi
				WHERE oi.order_id = $1 AND oi.product_id = p.id`,
				orderID)
			if err != nil {
				return fmt.Errorf("restock cancelled order: %w", err)
			}
		}

		return nil
	})
}
