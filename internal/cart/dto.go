// AngelaMos | 2026
// dto.go

package cart

import (
	"github.com/angelamos/artisan-market/internal/catalog"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity"   validate:"required,gte=1"`
	Color     string `json:"color"      validate:"omitempty,max=50"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
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
	PrimaryImage       string `json:"primary_image,omitempty"`
}

type CartResponse struct {
	ID                string         `json:"id"`
	Items             []ItemResponse `json:"items"`
	Subtotal          int64          `json:"subtotal"`
	SubtotalFormatted string         `json:"subtotal_formatted"`
}

func toCartResponse(cart *Cart, items []ItemDetail) CartResponse {
	resp := CartResponse{
		ID:    cart.ID,
		Items: make([]ItemResponse, 0, len(items)),
	}

	for i := range items {
		item := &items[i]
		resp.Items = append(resp.Items, ItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			Color:              item.Color,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			UnitPriceFormatted: catalog.FormatPrice(item.UnitPrice),
			LineTotal:          item.LineTotal(),
			PrimaryImage:       item.PrimaryImage,
		})
		resp.Subtotal += item.LineTotal()
	}

	resp.SubtotalFormatted = catalog.FormatPrice(resp.Subtotal)

	return resp
}
