package dto

// IncomeStatsQuery binds the period selector for income statistics.
type IncomeStatsQuery struct {
	Period string `form:"period"`
}

// DailyIncomeQuery binds the optional date range (YYYY-MM-DD) for the
// raw ledger report.
type DailyIncomeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
