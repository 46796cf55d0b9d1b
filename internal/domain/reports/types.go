// Package reports provides income statistics and inventory valuation
// reports over the bill collection and the daily income ledger.
package reports

import (
	"time"

	"tillpoint/internal/core/types"
)

// Period selects the query window and bucket granularity.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod returns the period for s, defaulting to daily
// (the source treated every unknown value as daily).
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodWeekly:
		return PeriodWeekly
	case PeriodMonthly:
		return PeriodMonthly
	default:
		return PeriodDaily
	}
}

// PaymentBreakdown splits an amount across payment methods.
type PaymentBreakdown struct {
	Cash types.Money `json:"cash"`
	Card types.Money `json:"card"`
	UPI  types.Money `json:"upi"`
}

// Stat is one time bucket of aggregated income.
type Stat struct {
	// Label is "HH:00" for hourly buckets, "YYYY-MM-DD" for date buckets.
	Label            string           `json:"label"`
	TotalIncome      types.Money      `json:"totalIncome"`
	BillCount        int64            `json:"billCount"`
	AvgTicket        types.Money      `json:"averageTicketSize"`
	PaymentBreakdown PaymentBreakdown `json:"paymentMethods"`
}

// IncomeStats is a gap-free, chronologically ordered bucket series.
type IncomeStats struct {
	Period Period `json:"period"`
	Stats  []Stat `json:"stats"`
}

// DailyIncomeStat is one raw ledger row of the date-range report.
type DailyIncomeStat struct {
	Date             string           `json:"date"`
	TotalIncome      types.Money      `json:"totalIncome"`
	BillCount        int64            `json:"billCount"`
	PaymentBreakdown PaymentBreakdown `json:"paymentBreakdown"`
}

// InventorySummary is the whole-catalog stock valuation.
type InventorySummary struct {
	TotalProducts    int         `json:"totalProducts"`
	TotalItems       int64       `json:"totalItems"`
	TotalValue       types.Money `json:"totalValue"`
	AverageItemValue types.Money `json:"averageItemValue"`
}

// CategoryProduct is one product's contribution within a category.
type CategoryProduct struct {
	Name      string      `json:"name"`
	Stock     int64       `json:"stock"`
	CostPrice types.Money `json:"costPrice"`
	Value     types.Money `json:"value"`
}

// CategorySummary is one category's stock valuation.
type CategorySummary struct {
	TotalProducts     int               `json:"totalProducts"`
	TotalItems        int64             `json:"totalItems"`
	TotalValue        types.Money       `json:"totalValue"`
	PercentageOfTotal types.Money       `json:"percentageOfTotal"`
	Products          []CategoryProduct `json:"products"`
}

// CategoryReport is the per-category valuation with grand total.
type CategoryReport struct {
	GrandTotal types.Money                 `json:"grandTotal"`
	Categories map[string]*CategorySummary `json:"categories"`
}

// windowStep is the bucket granularity of a query window.
type windowStep int

const (
	stepHour windowStep = iota
	stepDay
)

// window is a closed time range bucketed by step.
type window struct {
	start time.Time
	end   time.Time
	step  windowStep
}
