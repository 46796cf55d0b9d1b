package product

import (
	"context"

	"tillpoint/internal/core/id"
)

// Repository defines persistence operations for products.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
type Repository interface {
	// Create inserts a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by ID. Returns NOT_FOUND if absent.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// Update persists the full product row.
	Update(ctx context.Context, p *Product) error

	// Delete removes the product. Returns NOT_FOUND if absent.
	Delete(ctx context.Context, productID id.ID) error

	// List retrieves all products, name-ascending.
	List(ctx context.Context) ([]*Product, error)
}
