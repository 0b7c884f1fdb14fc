// AngelaMos | 2026
// service_test.go

package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/artisan-market/internal/cart"
	"github.com/angelamos/artisan-market/internal/core"
)

type fakeOrderRepo struct {
	createFromCart func(ctx context.Context, userID, cartID string) (*Order, error)
	getByID        func(ctx context.Context, id string) (*Order, error)
	getItems       func(ctx context.Context, orderID string) ([]OrderItem, error)
	listByUser     func(ctx context.Context, userID string) ([]Order, error)
	list           func(ctx context.Context, params ListOrdersParams) ([]Order, int, error)
	setStatus      func(ctx context.Context, orderID, from, to string, restock bool) error
}

func (f *fakeOrderRepo) CreateFromCart(
	ctx context.Context,
	userID, cartID string,
) (*Order, error) {
	return f.createFromCart(ctx, userID, cartID)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	return f.getByID(ctx, id)
}

func (f *fakeOrderRepo) GetItems(
	ctx context.Context,
	orderID string,
) ([]OrderItem, error) {
	if f.getItems == nil {
		return nil, nil
	}
	return f.getItems(ctx, orderID)
}

func (f *fakeOrderRepo) ListByUser(
	ctx context.Context,
	userID string,
) ([]Order, error) {
	return f.listByUser(ctx, userID)
}

func (f *fakeOrderRepo) List(
	ctx context.Context,
	params ListOrdersParams,
) ([]Order, int, error) {
	return f.list(ctx, params)
}

func (f *fakeOrderRepo) SetStatus(
	ctx context.Context,
	orderID, from, to string,
	restock bool,
) error {
	return f.setStatus(ctx, orderID, from, to, restock)
}

type fakeCartRepo struct {
	items []cart.ItemDetail
}

func (f *fakeCartRepo) GetOrCreate(
	ctx context.Context,
	userID string,
) (*cart.Cart, error) {
	return &cart.Cart{ID: "cart-1", UserID: userID}, nil
}

func (f *fakeCartRepo) GetItems(
	ctx context.Context,
	cartID string,
) ([]cart.ItemDetail, error) {
	return f.items, nil
}

func (f *fakeCartRepo) AddItem(
	ctx context.Context,
	cartID, productID, color string,
	quantity int,
) error {
	return nil
}

func (f *fakeCartRepo) SetItemQuantity(
	ctx context.Context,
	cartID, itemID string,
	quantity int,
) error {
	return nil
}

func (f *fakeCartRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID string) error {
	return nil
}

func placedOrder(id, userID, status string, total int64) Order {
	now := time.Now()
	return Order{
		ID:        id,
		UserID:    userID,
		Status:    status,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestListOrders_PrependsSyntheticPendingEntry(t *testing.T) {
	placed := placedOrder("order-1", "user-1", StatusPaid, 5000)
	repo := &fakeOrderRepo{
		listByUser: func(ctx context.Context, userID string) ([]Order, error) {
			return []Order{placed}, nil
		},
		getItems: func(ctx context.Context, orderID string) ([]OrderItem, error) {
			return []OrderItem{{
				OrderID:     orderID,
				ProductID:   "prod-1",
				ProductName: "Walnut Bowl",
				Quantity:    2,
				UnitPrice:   2500,
			}}, nil
		},
	}
	cartRepo := &fakeCartRepo{items: []cart.ItemDetail{
		{
			ProductID:   "prod-2",
			ProductName: "Ceramic Mug",
			Color:       "blue",
			Quantity:    3,
			UnitPrice:   1200,
		},
	}}
	svc := NewService(repo, cartRepo)

	resp, err := svc.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, resp.Orders, 2)

	synthetic := resp.Orders[0]
	assert.Equal(t, "pending", synthetic.ID)
	assert.True(t, synthetic.Synthetic)
	assert.Equal(t, StatusPending, synthetic.Status)
	assert.Nil(t, synthetic.CreatedAt)
	assert.Equal(t, int64(3600), synthetic.Total)
	assert.Equal(t, "$36.00", synthetic.TotalFormatted)

	assert.Equal(t, "order-1", resp.Orders[1].ID)
	assert.False(t, resp.Orders[1].Synthetic)
}

func TestListOrders_NoSyntheticEntryWhenCartEmpty(t *testing.T) {
	repo := &fakeOrderRepo{
		listByUser: func(ctx context.Context, userID string) ([]Order, error) {
			return nil, nil
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	resp, err := svc.ListOrders(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Empty(t, resp.Orders)
}

func TestGetOrder_OtherUsersOrderIsNotFound(t *testing.T) {
	repo := &fakeOrderRepo{
		getByID: func(ctx context.Context, id string) (*Order, error) {
			order := placedOrder(id, "someone-else", StatusPaid, 1000)
			return &order, nil
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	_, err := svc.GetOrder(context.Background(), "user-1", "order-1")

	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(&fakeOrderRepo{}, &fakeCartRepo{})

	_, err := svc.UpdateStatus(context.Background(), "order-1", "refunded")

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateStatus_RejectsInvalidTransition(t *testing.T) {
	repo := &fakeOrderRepo{
		getByID: func(ctx context.Context, id string) (*Order, error) {
			order := placedOrder(id, "user-1", StatusDelivered, 1000)
			return &order, nil
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	_, err := svc.UpdateStatus(
		context.Background(),
		"order-1",
		StatusCancelled,
	)

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateStatus_CancelRestocks(t *testing.T) {
	current := placedOrder("order-1", "user-1", StatusPaid, 1000)

	var gotFrom, gotTo string
	var gotRestock bool
	repo := &fakeOrderRepo{
		getByID: func(ctx context.Context, id string) (*Order, error) {
			snapshot := current
			return &snapshot, nil
		},
		setStatus: func(ctx context.Context, orderID, from, to string, restock bool) error {
			gotFrom, gotTo, gotRestock = from, to, restock
			current.Status = to
			return nil
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	view, err := svc.UpdateStatus(
		context.Background(),
		"order-1",
		StatusCancelled,
	)
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, gotFrom)
	assert.Equal(t, StatusCancelled, gotTo)
	assert.True(t, gotRestock, "cancellation must return stock")
	assert.Equal(t, StatusCancelled, view.Status)
}

func TestUpdateStatus_MarkPaidDoesNotRestock(t *testing.T) {
	current := placedOrder("order-1", "user-1", StatusPending, 1000)

	var gotRestock bool
	repo := &fakeOrderRepo{
		getByID: func(ctx context.Context, id string) (*Order, error) {
			snapshot := current
			return &snapshot, nil
		},
		setStatus: func(ctx context.Context, orderID, from, to string, restock bool) error {
			gotRestock = restock
			current.Status = to
			return nil
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	_, err := svc.UpdateStatus(context.Background(), "order-1", StatusPaid)
	require.NoError(t, err)

	assert.False(t, gotRestock)
}

func TestListAllOrders_RejectsInvalidStatusFilter(t *testing.T) {
	svc := NewService(&fakeOrderRepo{}, &fakeCartRepo{})

	_, _, err := svc.ListAllOrders(
		context.Background(),
		ListOrdersParams{Status: "bogus"},
	)

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCheckout_PropagatesEmptyCart(t *testing.T) {
	repo := &fakeOrderRepo{
		createFromCart: func(ctx context.Context, userID, cartID string) (*Order, error) {
			return nil, ErrEmptyCart
		},
	}
	svc := NewService(repo, &fakeCartRepo{})

	_, err := svc.Checkout(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrEmptyCart)
}
