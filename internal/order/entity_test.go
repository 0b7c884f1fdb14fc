// AngelaMos | 2026
// entity_test.go

package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		StatusPending, StatusPaid, StatusShipped,
		StatusDelivered, StatusCancelled,
	} {
		assert.True(t, ValidStatus(status), status)
	}

	assert.False(t, ValidStatus("refunded"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("PAID"))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		ok   bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPaid, StatusPaid, false},
	}

	for _, tt := range tests {
		assert.Equal(
			t,
			tt.ok,
			CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to,
		)
	}
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 2550}
	assert.Equal(t, int64(7650), item.LineTotal())
}
