// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"fmt"

	"github.com/angelamos/artisan-market/internal/cart"
	"github.com/angelamos/artisan-market/internal/catalog"
	"github.com/angelamos/artisan-market/internal/core"
)

type Service struct {
	repo     Repository
	cartRepo cart.Repository
}

func NewService(repo Repository, cartRepo cart.Repository) *Service {
	return &Service{repo: repo, cartRepo: cartRepo}
}

// Checkout turns the caller's cart into a pending order.
func (s *Service) Checkout(
	ctx context.Context,
	userID string,
) (*OrderView, error) {
	userCart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.CreateFromCart(ctx, userID, userCart.ID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, order)
}

// ListOrders returns the caller's order history, newest first. A
// non-empty live cart is prepended as a synthetic pending entry so the
// storefront can show "what you are about to order" in the same list.
func (s *Service) ListOrders(
	ctx context.Context,
	userID string,
) (*OrderListResponse, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders)+1)

	pending, err := s.syntheticPendingView(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		views = append(views, *pending)
	}

	for i := range orders {
		view, err := s.buildView(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return &OrderListResponse{Orders: views}, nil
}

func (s *Service) GetOrder(
	ctx context.Context,
	userID, orderID string,
) (*OrderView, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Ownership is scoped as not-found so order IDs leak nothing.
	if order.UserID != userID {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}

	return s.buildView(ctx, order)
}

func (s *Service) GetAnyOrder(
	ctx context.Context,
	orderID string,
) (*OrderView, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, order)
}

func (s *Service) ListAllOrders(
	ctx context.Context,
	params ListOrdersParams,
) ([]OrderView, int, error) {
	if params.Status != "" && !ValidStatus(params.Status) {
		return nil, 0, fmt.Errorf(
			"list orders: invalid status %q: %w",
			params.Status,
			core.ErrInvalidInput,
		)
	}

	orders, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.buildView(ctx, &orders[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}

	return views, total, nil
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	orderID, status string,
) (*OrderView, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, fmt.Errorf(
			"update status: cannot move %s order to %s: %w",
			order.Status,
			status,
			core.ErrInvalidInput,
		)
	}

	restock := status == StatusCancelled

	err = s.repo.SetStatus(ctx, orderID, order.Status, status, restock)
	if err != nil {
		return nil, err
	}

	refreshed, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, refreshed)
}

func (s *Service) buildView(
	ctx context.Context,
	order *Order,
) (*OrderView, error) {
	items, err := s.repo.GetItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	view := toOrderView(order, items)
	return &view, nil
}

func (s *Service) syntheticPendingView(
	ctx context.Context,
	userID string,
) (*OrderView, error) {
	userCart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.GetItems(ctx, userCart.ID)
	if err != nil {
		return nil, err
	}

	if len(cartItems) == 0 {
		return nil, nil
	}

	view := OrderView{
		ID:        "pending",
		Status:    StatusPending,
		Synthetic: true,
		Items:     make([]ItemResponse, 0, len(cartItems)),
	}

	for i := range cartItems {
		item := &cartItems[i]
		view.Items = append(view.Items, ItemResponse{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Color:              item.Color,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			UnitPriceFormatted: catalog.FormatPrice(item.UnitPrice),
			LineTotal:          item.LineTotal(),
		})
		view.Total += item.LineTotal()
	}

	view.TotalFormatted = catalog.FormatPrice(view.Total)

	return &view, nil
}
