// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCart(
	ctx context.Context,
	userID string,
) (*CartResponse, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, cart)
}

func (s *Service) AddItem(
	ctx context.Context,
	userID string,
	req AddItemRequest,
) (*CartResponse, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.repo.AddItem(ctx, cart.ID, req.ProductID, req.Color, req.Quantity)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, cart)
}

func (s *Service) UpdateItem(
	ctx context.Context,
	userID, itemID string,
	req UpdateItemRequest,
) (*CartResponse, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, itemID, req.Quantity); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, cart)
}

func (s *Service) RemoveItem(
	ctx context.Context,
	userID, itemID string,
) (*CartResponse, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, cart)
}

func (s *Service) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.repo.Clear(ctx, cart.ID)
}

func (s *Service) buildResponse(
	ctx context.Context,
	cart *Cart,
) (*CartResponse, error) {
	items, err := s.repo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("build cart response: %w", err)
	}

	resp := toCartResponse(cart, items)
	return &resp, nil
}
