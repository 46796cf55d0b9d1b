// Package auth_repo provides the PostgreSQL implementation of the user
// account repository.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const userTable = "users"

const uniqueViolation = "23505"

// UserRepo implements auth.Repository.
type UserRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
	columns   []string
}

func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns:   postgres.ExtractDBColumns[auth.User](),
	}
}

func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	q := r.builder.Insert(userTable).
		Columns(r.columns...).
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewDuplicate("user", "email", u.Email)
		}
		return apperror.NewPersistence(fmt.Errorf("insert user: %w", err))
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email}, email)
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": userID}, userID)
}

func (r *UserRepo) findOne(ctx context.Context, where squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder.Select(r.columns...).
		From(userTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var u auth.User
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, apperror.NewPersistence(fmt.Errorf("get user: %w", err))
	}
	return &u, nil
}
