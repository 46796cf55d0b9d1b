// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/documents/bill"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const (
	billTable     = "bills"
	billItemTable = "bill_items"
)

const uniqueViolation = "23505"

var billColumns = []string{"id", "bill_number", "status", "payment_method", "total_cost", "created_at"}

// itemColumns resolve product details at read time via LEFT JOIN, so
// bills stay readable after their products are deleted.
var itemColumns = []string{
	"i.line_no",
	"i.product_id",
	"i.quantity",
	"i.cost",
	"COALESCE(p.name, '') AS product_name",
	"COALESCE(p.category, '') AS product_category",
}

// BillRepo implements bill.Repository.
type BillRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

func NewBillRepo(txManager *postgres.TxManager) *BillRepo {
	return &BillRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BillRepo) Create(ctx context.Context, b *bill.Bill) error {
	querier := r.txManager.GetQuerier(ctx)

	q := r.builder.Insert(billTable).
		Columns(billColumns...).
		Values(b.ID, b.BillNumber, b.Status, b.PaymentMethod, b.TotalCost, b.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewConflict(fmt.Sprintf("bill number %s already exists", b.BillNumber))
		}
		return apperror.NewPersistence(fmt.Errorf("insert bill: %w", err))
	}

	iq := r.builder.Insert(billItemTable).
		Columns("bill_id", "line_no", "product_id", "quantity", "cost")
	for _, item := range b.Items {
		iq = iq.Values(b.ID, item.LineNo, item.ProductID, item.Quantity, item.Cost)
	}

	sql, args, err = iq.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewPersistence(fmt.Errorf("insert bill items: %w", err))
	}
	return nil
}

func (r *BillRepo) GetByID(ctx context.Context, billID id.ID) (*bill.Bill, error) {
	q := r.builder.Select(billColumns...).
		From(billTable).
		Where(squirrel.Eq{"id": billID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var b bill.Bill
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bill", billID)
		}
		return nil, apperror.NewPersistence(fmt.Errorf("get bill: %w", err))
	}

	items, err := r.itemsFor(ctx, billID)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

func (r *BillRepo) List(ctx context.Context) ([]*bill.Bill, error) {
	q := r.builder.Select(billColumns...).
		From(billTable).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var bills []*bill.Bill
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &bills, sql, args...); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("list bills: %w", err))
	}
	if len(bills) == 0 {
		return bills, nil
	}

	type joinedItem struct {
		BillID id.ID `db:"bill_id"`
		bill.LineItem
	}

	iq := r.builder.Select(append([]string{"i.bill_id"}, itemColumns...)...).
		From(billItemTable + " i").
		LeftJoin("products p ON p.id = i.product_id").
		OrderBy("i.bill_id", "i.line_no")

	sql, args, err = iq.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items select: %w", err)
	}

	var items []joinedItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("list bill items: %w", err))
	}

	byBill := make(map[id.ID]*bill.Bill, len(bills))
	for _, b := range bills {
		byBill[b.ID] = b
	}
	for _, item := range items {
		if b, ok := byBill[item.BillID]; ok {
			b.Items = append(b.Items, item.LineItem)
		}
	}
	return bills, nil
}

func (r *BillRepo) itemsFor(ctx context.Context, billID id.ID) ([]bill.LineItem, error) {
	q := r.builder.Select(itemColumns...).
		From(billItemTable + " i").
		LeftJoin("products p ON p.id = i.product_id").
		Where(squirrel.Eq{"i.bill_id": billID}).
		OrderBy("i.line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items select: %w", err)
	}

	var items []bill.LineItem
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("get bill items: %w", err))
	}
	return items, nil
}
