// Package stock provides the stock ledger: per-product stock levels and
// the atomic decrement-if-sufficient operation the bill workflow relies on.
package stock

import (
	"context"

	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
)

// Deduction is the outcome of a successful stock deduction.
type Deduction struct {
	ProductID id.ID
	Name      string
	Quantity  int64
	// UnitPrice is the cost price captured by the deducting statement;
	// later price edits never change it.
	UnitPrice types.Money
	// Cost = Quantity x UnitPrice (the cost snapshot).
	Cost types.Money
	// Remaining stock after the deduction.
	Remaining int64
}

// Repository defines storage operations for the stock ledger.
//
// Deduct must be implemented as a single conditional UPDATE
// ("decrement only if the result stays >= 0"), never as read-then-write:
// concurrent requests against the same product serialize at the store.
type Repository interface {
	// Deduct atomically decrements stock for the product, failing with
	// NOT_FOUND or INSUFFICIENT_STOCK without mutating anything.
	Deduct(ctx context.Context, productID id.ID, quantity int64) (Deduction, error)
}
