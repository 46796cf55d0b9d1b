package dto

import (
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/catalogs/product"
)

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	CostPrice    types.Money `json:"costPrice"`
	CurrentStock int64       `json:"currentStock"`
}

// ToModel builds a new product from the request.
func (r *CreateProductRequest) ToModel() *product.Product {
	return product.New(r.Name, r.Category, r.CostPrice, r.CurrentStock)
}

// UpdateProductRequest is the payload for PATCH /api/products/:id.
// Absent fields are left untouched.
type UpdateProductRequest struct {
	Name         *string      `json:"name"`
	Category     *string      `json:"category"`
	CostPrice    *types.Money `json:"costPrice"`
	CurrentStock *int64       `json:"currentStock"`
	IsActive     *bool        `json:"isActive"`
}

// ToPatch converts the request into a domain patch.
func (r *UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:         r.Name,
		Category:     r.Category,
		CostPrice:    r.CostPrice,
		CurrentStock: r.CurrentStock,
		IsActive:     r.IsActive,
	}
}
