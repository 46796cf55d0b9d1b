package bill

import (
	"context"

	"tillpoint/internal/core/id"
)

// Repository defines persistence operations for bills.
type Repository interface {
	// Create inserts the bill and its line items.
	Create(ctx context.Context, b *Bill) error

	// GetByID retrieves a bill with line items and resolved product
	// details. Returns NOT_FOUND if absent.
	GetByID(ctx context.Context, billID id.ID) (*Bill, error)

	// List retrieves all bills newest-first, with line items and
	// resolved product details.
	List(ctx context.Context) ([]*Bill, error)
}
