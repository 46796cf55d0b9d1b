// Package product provides the product catalog (what the store sells).
package product

import (
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

// Product is a sellable item with its current stock level.
// current_stock is mutated only through the stock ledger's conditional
// decrement and through admin edits; it never goes below zero.
type Product struct {
	ID           id.ID       `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Category     string      `db:"category" json:"category"`
	CostPrice    types.Money `db:"cost_price" json:"costPrice"`
	CurrentStock int64       `db:"current_stock" json:"currentStock"`
	IsActive     bool        `db:"is_active" json:"isActive"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// New creates an active product with a fresh ID.
func New(name, category string, costPrice types.Money, currentStock int64) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:           id.New(),
		Name:         name,
		Category:     category,
		CostPrice:    costPrice,
		CurrentStock: currentStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks required fields and value invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return apperror.NewValidation("Please provide product name").
			WithDetail("field", "name")
	}
	if p.Category == "" {
		return apperror.NewValidation("Please provide product category").
			WithDetail("field", "category")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must not be negative").
			WithDetail("field", "costPrice")
	}
	if p.CurrentStock < 0 {
		return apperror.NewValidation("current stock must not be negative").
			WithDetail("field", "currentStock")
	}
	return nil
}

// StockValue returns currentStock x costPrice for inventory valuation.
func (p *Product) StockValue() types.Money {
	return types.MulInt(p.CostPrice, p.CurrentStock)
}

// Patch holds optional fields for partial updates (admin PATCH).
type Patch struct {
	Name         *string
	Category     *string
	CostPrice    *types.Money
	CurrentStock *int64
	IsActive     *bool
}

// Apply mutates the product with the set fields and revalidates.
func (p *Product) Apply(patch Patch) error {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.CostPrice != nil {
		p.CostPrice = *patch.CostPrice
	}
	if patch.CurrentStock != nil {
		p.CurrentStock = *patch.CurrentStock
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	p.UpdatedAt = time.Now().UTC()
	return p.Validate()
}
