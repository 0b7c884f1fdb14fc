// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/angelamos/artisan-market/internal/catalog"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

type ItemResponse struct {
	ID                 string `json:"id"`
	ProductID          string `json:"product_id"`
	ProductName        string `json:"product_name"`
	Color              string `json:"color,omitempty"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unit_price"`
	UnitPriceFormatted string `json:"unit_price_formatted"`
	LineTotal          int64  `json:"line_total"`
}

// OrderView is a single entry in an order listing. Synthetic marks the
// live-cart preview that is prepended to a customer's history; it has
// ID "pending" and no timestamps because nothing is persisted yet.
type OrderView struct {
	ID             string         `json:"id"`
	Status         string         `json:"status"`
	Total          int64          `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
	Items          []ItemResponse `json:"items"`
	Synthetic      bool           `json:"synthetic"`
	CreatedAt      *time.Time     `json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderView `json:"orders"`
}

type ListOrdersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
}

func (p *ListOrdersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListOrdersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func toItemResponses(items []OrderItem) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		responses = append(responses, ItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Color:              item.Color,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			UnitPriceFormatted: catalog.FormatPrice(item.UnitPrice),
			LineTotal:          item.LineTotal(),
		})
	}
	return responses
}

func toOrderView(o *Order, items []OrderItem) OrderView {
	createdAt := o.CreatedAt
	updatedAt := o.UpdatedAt
	return OrderView{
		ID:             o.ID,
		Status:         o.Status,
		Total:          o.Total,
		TotalFormatted: catalog.FormatPrice(o.Total),
		Items:          toItemResponses(items),
		CreatedAt:      &createdAt,
		UpdatedAt:      &updatedAt,
	}
}
