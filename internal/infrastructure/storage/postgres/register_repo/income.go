package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/income"
	"tillpoint/internal/infrastructure/storage/postgres"
)

const dailyIncomeTable = "daily_income"

// addIncomeSQL is an atomic upsert-increment on the day row. Concurrent
// bills for the same day serialize on the unique date key instead of
// losing increments to read-modify-write races.
const addIncomeSQL = `
INSERT INTO daily_income (date, total_income, bill_count, cash_total, card_total, upi_total)
VALUES ($1, $2, 1, $3, $4, $5)
ON CONFLICT (date) DO UPDATE SET
    total_income = daily_income.total_income + EXCLUDED.total_income,
    bill_count   = daily_income.bill_count + 1,
    cash_total   = daily_income.cash_total + EXCLUDED.cash_total,
    card_total   = daily_income.card_total + EXCLUDED.card_total,
    upi_total    = daily_income.upi_total + EXCLUDED.upi_total`

// IncomeRepo implements income.Repository.
type IncomeRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
	columns   []string
}

func NewIncomeRepo(txManager *postgres.TxManager) *IncomeRepo {
	return &IncomeRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns:   postgres.ExtractDBColumns[income.DailyRecord](),
	}
}

func (r *IncomeRepo) Add(ctx context.Context, inc income.Increment) error {
	cash, card, upi := types.Zero(), types.Zero(), types.Zero()
	switch inc.PaymentMethod {
	case income.MethodCash:
		cash = inc.Amount
	case income.MethodCard:
		card = inc.Amount
	case income.MethodUPI:
		upi = inc.Amount
	default:
		return apperror.NewValidation("Invalid payment method").WithDetail("paymentMethod", inc.PaymentMethod)
	}

	day := income.DayOf(inc.Date)
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, addIncomeSQL, day, inc.Amount, cash, card, upi); err != nil {
		return apperror.NewPersistence(fmt.Errorf("add daily income: %w", err))
	}
	return nil
}

func (r *IncomeRepo) Range(ctx context.Context, from, to time.Time) ([]income.DailyRecord, error) {
	q := r.builder.Select(r.columns...).
		From(dailyIncomeTable).
		OrderBy("date ASC")

	if !from.IsZero() {
		q = q.Where(squirrel.GtOrEq{"date": income.DayOf(from)})
	}
	if !to.IsZero() {
		q = q.Where(squirrel.LtOrEq{"date": income.DayOf(to)})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []income.DailyRecord
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("range daily income: %w", err))
	}
	return rows, nil
}
