// Package report_repo provides PostgreSQL-side aggregation for the
// income statistics reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/storage/postgres"
)

// Bucketing happens in the database so only one row per non-empty slot
// crosses the wire; gap filling stays in the domain layer.
const billBucketsSQL = `
SELECT
    to_char(created_at, %s) AS label,
    SUM(total_cost)         AS total_income,
    COUNT(*)                AS bill_count,
    AVG(total_cost)         AS avg_ticket,
    COALESCE(SUM(total_cost) FILTER (WHERE payment_method = 'cash'), 0) AS cash_total,
    COALESCE(SUM(total_cost) FILTER (WHERE payment_method = 'card'), 0) AS card_total,
    COALESCE(SUM(total_cost) FILTER (WHERE payment_method = 'upi'), 0)  AS upi_total
FROM bills
WHERE created_at BETWEEN $1 AND $2
GROUP BY 1
ORDER BY 1`

const (
	hourLabelFormat = `'HH24":00"'`
	dateLabelFormat = `'YYYY-MM-DD'`
)

type bucketRow struct {
	Label       string      `db:"label"`
	TotalIncome types.Money `db:"total_income"`
	BillCount   int64       `db:"bill_count"`
	AvgTicket   types.Money `db:"avg_ticket"`
	CashTotal   types.Money `db:"cash_total"`
	CardTotal   types.Money `db:"card_total"`
	UPITotal    types.Money `db:"upi_total"`
}

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

func (r *ReportRepo) BillBuckets(ctx context.Context, from, to time.Time, hourly bool) ([]reports.Stat, error) {
	format := dateLabelFormat
	if hourly {
		format = hourLabelFormat
	}
	sql := fmt.Sprintf(billBucketsSQL, format)

	var rows []bucketRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, from, to); err != nil {
		return nil, apperror.NewPersistence(fmt.Errorf("bill buckets: %w", err))
	}

	stats := make([]reports.Stat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, reports.Stat{
			Label:       row.Label,
			TotalIncome: types.Round2(row.TotalIncome),
			BillCount:   row.BillCount,
			AvgTicket:   types.Round2(row.AvgTicket),
			PaymentBreakdown: reports.PaymentBreakdown{
				Cash: types.Round2(row.CashTotal),
				Card: types.Round2(row.CardTotal),
				UPI:  types.Round2(row.UPITotal),
			},
		})
	}
	return stats, nil
}
