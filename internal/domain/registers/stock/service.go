package stock

import (
	"context"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/pkg/logger"
)

// Ledger exposes the stock ledger operations to the rest of the domain.
type Ledger struct {
	repo Repository
}

// NewLedger creates a stock ledger over the given repository.
func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// TryDeduct decrements stock for one product and returns the cost snapshot.
//
// Rollback across a multi-line batch is the caller's responsibility;
// the bill workflow runs the whole batch in one transaction.
func (l *Ledger) TryDeduct(ctx context.Context, productID id.ID, quantity int64) (Deduction, error) {
	if quantity < 1 {
		return Deduction{}, apperror.NewValidation("quantity must be at least 1").
			WithDetail("product_id", productID.String()).
			WithDetail("quantity", quantity)
	}

	ded, err := l.repo.Deduct(ctx, productID, quantity)
	if err != nil {
		return Deduction{}, err
	}

	logger.Debug(ctx, "stock deducted",
		"product_id", ded.ProductID,
		"quantity", ded.Quantity,
		"remaining", ded.Remaining,
	)
	return ded, nil
}
