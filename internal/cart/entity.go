// AngelaMos | 2026
// entity.go

package cart

import (
	"time"
)

type Cart struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CartItem rows are unique per (cart_id, product_id, color); the empty
// string stands for "no color" so the index can enforce the merge rule.
type CartItem struct {
	ID        string    `db:"id"`
	CartID    string    `db:"cart_id"`
	ProductID string    `db:"product_id"`
	Color     string    `db:"color"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ItemDetail is a cart line joined with its product for display.
type ItemDetail struct {
	ID           string `db:"id"`
	ProductID    string `db:"product_id"`
	ProductName  string `db:"product_name"`
	Color        string `db:"color"`
	Quantity     int    `db:"quantity"`
	UnitPrice    int64  `db:"unit_price"`
	PrimaryImage string `db:"primary_image"`
}

func (d *ItemDetail) LineTotal() int64 {
	return d.UnitPrice * int64(d.Quantity)
}
