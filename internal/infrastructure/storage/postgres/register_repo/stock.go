// Package register_repo provides PostgreSQL implementations for register
// repositories (stock levels and the daily income ledger).
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/stock"
	"tillpoint/internal/infrastructure/storage/postgres"
)

// deductSQL decrements stock only when enough remains. The condition
// lives inside the UPDATE so concurrent deductions serialize on the
// product row; there is no read-then-write window to race through.
const deductSQL = `
UPDATE products
SET current_stock = current_stock - $2,
    updated_at = now()
WHERE id = $1
  AND current_stock >= $2
RETURNING name, cost_price, current_stock`

const stockProbeSQL = `
SELECT name, current_stock FROM products WHERE id = $1`

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
}

func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

// Deduct atomically decrements the product's stock. When the conditional
// UPDATE matches no row it probes the product to tell NOT_FOUND apart
// from INSUFFICIENT_STOCK; either way nothing has been mutated.
func (r *StockRepo) Deduct(ctx context.Context, productID id.ID, quantity int64) (stock.Deduction, error) {
	querier := r.txManager.GetQuerier(ctx)

	var (
		name      string
		unitPrice types.Money
		remaining int64
	)
	err := querier.QueryRow(ctx, deductSQL, productID, quantity).Scan(&name, &unitPrice, &remaining)
	if err == nil {
		return stock.Deduction{
			ProductID: productID,
			Name:      name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Cost:      types.MulInt(unitPrice, quantity),
			Remaining: remaining,
		}, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return stock.Deduction{}, apperror.NewPersistence(fmt.Errorf("deduct stock: %w", err))
	}

	var available int64
	probeErr := querier.QueryRow(ctx, stockProbeSQL, productID).Scan(&name, &available)
	if errors.Is(probeErr, pgx.ErrNoRows) {
		return stock.Deduction{}, apperror.NewNotFound("product", productID)
	}
	if probeErr != nil {
		return stock.Deduction{}, apperror.NewPersistence(fmt.Errorf("probe stock: %w", probeErr))
	}
	return stock.Deduction{}, apperror.NewInsufficientStock(name, productID.String(), quantity, available)
}
