// Package income provides the daily income ledger: one running record per
// calendar day, mutated exclusively through atomic upsert-increments.
package income

import (
	"time"

	"tillpoint/internal/core/types"
)

// Payment methods accepted at the till.
const (
	MethodCash = "cash"
	MethodCard = "card"
	MethodUPI  = "upi"
)

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI:
		return true
	}
	return false
}

// DailyRecord is the per-day running ledger row (unique on Date).
type DailyRecord struct {
	Date        time.Time   `db:"date" json:"date"`
	TotalIncome types.Money `db:"total_income" json:"totalIncome"`
	BillCount   int64       `db:"bill_count" json:"billCount"`
	CashTotal   types.Money `db:"cash_total" json:"cashTotal"`
	CardTotal   types.Money `db:"card_total" json:"cardTotal"`
	UPITotal    types.Money `db:"upi_total" json:"upiTotal"`
}

// Increment is one bill's contribution to a day's ledger.
type Increment struct {
	// Date is truncated to the local midnight of the sale day.
	Date          time.Time
	Amount        types.Money
	PaymentMethod string
}

// DayOf truncates t to its local midnight (the ledger's day key).
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
