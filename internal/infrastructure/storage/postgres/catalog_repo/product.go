// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/catalogs/product"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const productTable = "products"

const uniqueViolation = "23505"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
	columns   []string
}

func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns:   postgres.ExtractDBColumns[product.Product](),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := r.builder.Insert(productTable).
		Columns(r.columns...).
		Values(p.ID, p.Name, p.Category, p.CostPrice, p.CurrentStock, p.IsActive, p.CreatedAt, p.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return apperror.NewPersistence(fmt.Errorf("insert product: %w", err))
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.builder.Select(r.columns...).
		From(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, apperror.NewPersistence(fmt.Errorf("get product: %w", err))
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := r.builder.Update(productTable).
		Set("name", p.Name).
		Set("category", p.Category).
		Set("cost_price", p.CostPrice).
		Set("current_stock", p.CurrentStock).
		Set("is_active", p.IsActive).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewPersistence(fmt.Errorf("update product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := r.builder.Delete(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewPersistence(fmt.Errorf("delete product: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*product.Product, error) {
	q := r.builder.Select(r.columns...).
		From(productTable).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("list products: %w", err))
	}
	return items, nil
}
