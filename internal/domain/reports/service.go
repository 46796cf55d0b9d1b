package reports

import (
	"context"
	"time"

	"tillpoint/internal/core/tx"
	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/catalogs/product"
	"tillpoint/internal/domain/registers/income"
)

// Service computes income statistics and inventory valuation reports.
// Aggregation queries run in read-only transactions.
type Service struct {
	repo      Repository
	income    income.Repository
	products  product.Repository
	txManager tx.ReadOnlyManager
	now       func() time.Time
}

func NewService(repo Repository, incomeRepo income.Repository, products product.Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{
		repo:      repo,
		income:    incomeRepo,
		products:  products,
		txManager: txManager,
		now:       time.Now,
	}
}

// BillIncomeStats aggregates the bill collection into a gap-free bucket
// series. The daily period covers the current calendar day hour by hour.
func (s *Service) BillIncomeStats(ctx context.Context, period Period) (*IncomeStats, error) {
	w := billWindow(period, s.now())
	var sparse []Stat
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		sparse, err = s.repo.BillBuckets(ctx, w.start, w.end, w.step == stepHour)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &IncomeStats{Period: period, Stats: fillGaps(sparse, w)}, nil
}

// LedgerIncomeStats aggregates the daily income ledger into a gap-free
// bucket series. Ledger rows are dated at local midnight, so in the
// hourly daily view all recorded income lands in the single 00:00 bucket.
func (s *Service) LedgerIncomeStats(ctx context.Context, period Period) (*IncomeStats, error) {
	w := ledgerWindow(period, s.now())
	var rows []income.DailyRecord
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.income.Range(ctx, w.start, w.end)
		return err
	})
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]*Stat, len(rows))
	order := make([]string, 0, len(rows))
	for _, r := range rows {
		label := bucketLabel(r.Date, w.step)
		st, ok := byLabel[label]
		if !ok {
			st = &Stat{
				Label:       label,
				TotalIncome: types.Zero(),
				PaymentBreakdown: PaymentBreakdown{
					Cash: types.Zero(),
					Card: types.Zero(),
					UPI:  types.Zero(),
				},
			}
			byLabel[label] = st
			order = append(order, label)
		}
		st.TotalIncome = st.TotalIncome.Add(r.TotalIncome)
		st.BillCount += r.BillCount
		st.PaymentBreakdown.Cash = st.PaymentBreakdown.Cash.Add(r.CashTotal)
		st.PaymentBreakdown.Card = st.PaymentBreakdown.Card.Add(r.CardTotal)
		st.PaymentBreakdown.UPI = st.PaymentBreakdown.UPI.Add(r.UPITotal)
	}

	sparse := make([]Stat, 0, len(order))
	for _, label := range order {
		st := byLabel[label]
		st.TotalIncome = types.Round2(st.TotalIncome)
		st.AvgTicket = avgTicket(st.TotalIncome, st.BillCount)
		sparse = append(sparse, *st)
	}
	return &IncomeStats{Period: period, Stats: fillGaps(sparse, w)}, nil
}

// DailyIncomeRange returns raw ledger rows between from and to, inclusive.
// Zero bounds are open-ended, and no gap filling is applied.
func (s *Service) DailyIncomeRange(ctx context.Context, from, to time.Time) ([]DailyIncomeStat, error) {
	rows, err := s.income.Range(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]DailyIncomeStat, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailyIncomeStat{
			Date:        r.Date.Format(dateLabel),
			TotalIncome: types.Round2(r.TotalIncome),
			BillCount:   r.BillCount,
			PaymentBreakdown: PaymentBreakdown{
				Cash: types.Round2(r.CashTotal),
				Card: types.Round2(r.CardTotal),
				UPI:  types.Round2(r.UPITotal),
			},
		})
	}
	return out, nil
}

// InventorySummary totals the catalog's stock valuation.
func (s *Service) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{
		TotalProducts:    len(products),
		TotalValue:       types.Zero(),
		AverageItemValue: types.Zero(),
	}
	for _, p := range products {
		summary.TotalItems += p.CurrentStock
		summary.TotalValue = summary.TotalValue.Add(p.StockValue())
	}
	summary.TotalValue = types.Round2(summary.TotalValue)
	if summary.TotalItems > 0 {
		summary.AverageItemValue = types.DivInt(summary.TotalValue, summary.TotalItems)
	}
	return summary, nil
}

// CategoryReport breaks the stock valuation down by product category,
// with each category's percentage share of the grand total.
func (s *Service) CategoryReport(ctx context.Context) (*CategoryReport, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &CategoryReport{
		GrandTotal: types.Zero(),
		Categories: make(map[string]*CategorySummary),
	}
	for _, p := range products {
		cat, ok := report.Categories[p.Category]
		if !ok {
			cat = &CategorySummary{
				TotalValue:        types.Zero(),
				PercentageOfTotal: types.Zero(),
			}
			report.Categories[p.Category] = cat
		}
		value := p.StockValue()
		cat.TotalProducts++
		cat.TotalItems += p.CurrentStock
		cat.TotalValue = cat.TotalValue.Add(value)
		cat.Products = append(cat.Products, CategoryProduct{
			Name:      p.Name,
			Stock:     p.CurrentStock,
			CostPrice: p.CostPrice,
			Value:     types.Round2(value),
		})
		report.GrandTotal = report.GrandTotal.Add(value)
	}

	report.GrandTotal = types.Round2(report.GrandTotal)
	for _, cat := range report.Categories {
		cat.TotalValue = types.Round2(cat.TotalValue)
		cat.PercentageOfTotal = types.Percent(cat.TotalValue, report.GrandTotal)
	}
	return report, nil
}

func avgTicket(total types.Money, count int64) types.Money {
	if count == 0 {
		return types.Zero()
	}
	return types.DivInt(total, count)
}
