// Package bill provides the bill document and the bill-generation workflow
// (stock validation + deduction, persistence, income ledger update,
// receipt rendering).
package bill

import (
	"time"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/income"
)

// Status of a bill. Transitions are not exercised by the current
// workflow; the field is a placeholder for a future state machine.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)

// LineItem is one product+quantity entry within a bill.
// Cost is a snapshot (quantity x cost price at sale time), decoupled
// from later product price edits. ProductName/Category are resolved
// from the catalog at read time; deleted products resolve to "".
type LineItem struct {
	LineNo    int         `db:"line_no" json:"-"`
	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	Cost      types.Money `db:"cost" json:"cost"`

	ProductName     string `db:"product_name" json:"productName,omitempty"`
	ProductCategory string `db:"product_category" json:"productCategory,omitempty"`
}

// Bill is an append-only sales document. Only Status may change after
// creation, and nothing currently changes it.
type Bill struct {
	ID            id.ID       `db:"id" json:"id"`
	BillNumber    string      `db:"bill_number" json:"billNumber"`
	Status        string      `db:"status" json:"status"`
	PaymentMethod string      `db:"payment_method" json:"paymentMethod"`
	TotalCost     types.Money `db:"total_cost" json:"totalCost"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`

	Items []LineItem `db:"-" json:"items"`
}

// LineRequest is one requested line of a bill-generation call.
type LineRequest struct {
	ProductID id.ID
	Quantity  int64
}

// ValidateRequest checks a bill-generation request before any side effect.
func ValidateRequest(lines []LineRequest, paymentMethod string) error {
	if len(lines) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}
	for i, line := range lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < 1 {
			return apperror.NewValidation("quantity must be at least 1").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}
	if !income.ValidMethod(paymentMethod) {
		return apperror.NewValidation("payment method must be one of cash, card, upi").
			WithDetail("field", "paymentMethod")
	}
	return nil
}

// RecalculateTotal recomputes TotalCost from line item snapshots.
func (b *Bill) RecalculateTotal() {
	total := types.Zero()
	for _, item := range b.Items {
		total = total.Add(item.Cost)
	}
	b.TotalCost = types.Round2(total)
}
