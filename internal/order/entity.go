// AngelaMos | 2026
// entity.go

package order

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// statusEdges is the allowed transition graph. Cancellation restocks,
// so it is only reachable before fulfilment starts.
var statusEdges = map[string][]string{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func ValidStatus(status string) bool {
	_, ok := statusEdges[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Status    string    `db:"status"`
	Total     int64     `db:"total"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OrderItem snapshots the product at checkout time; later catalog edits
// never rewrite order history.
type OrderItem struct {
	ID          string `db:"id"`
	OrderID     string `db:"order_id"`
	ProductID   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Color       string `db:"color"`
	Quantity    int    `db:"quantity"`
	UnitPrice   int64  `db:"unit_price"`
}

func (i *OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
