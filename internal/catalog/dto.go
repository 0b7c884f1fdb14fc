// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type CreateProductRequest struct {
	Name        string   `json:"name"        validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       int64    `json:"price"       validate:"required,gt=0"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required,min=1,max=100"`
	Colors      []string `json:"colors"      validate:"omitempty,dive,min=1,max=50"`
	Images      []string `json:"images"      validate:"omitempty,dive,url"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *int64    `json:"price,omitempty"       validate:"omitempty,gt=0"`
	Category    *string   `json:"category,omitempty"    validate:"omitempty,min=1,max=100"`
	Colors      *[]string `json:"colors,omitempty"      validate:"omitempty,dive,min=1,max=50"`
	Images      *[]string `json:"images,omitempty"      validate:"omitempty,dive,url"`
}

type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	Stock          int       `json:"stock"`
	Category       string    `json:"category"`
	Colors         []string  `json:"colors"`
	Images         []string  `json:"images"`
	PrimaryImage   string    `json:"primary_image"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListProductsParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Category string `json:"category"`
}

func (p *ListProductsParams) Normalize() {
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

func (p *ListProductsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		PriceFormatted: FormatPrice(p.Price),
		Stock:          p.Stock,
		Category:       p.Category,
		Colors:         p.Colors,
		Images:         p.Images,
		PrimaryImage:   p.PrimaryImage(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
