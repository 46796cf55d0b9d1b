package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tillpoint/internal/core/types"
)

func TestBillWindowDailyCoversCalendarDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 26, 0, 0, time.UTC)
	w := billWindow(PeriodDaily, now)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), w.start)
	assert.True(t, w.end.After(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, stepHour, w.step)
}

func TestFillGapsDailyProducesTwentyFourBuckets(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	w := billWindow(PeriodDaily, now)

	sparse := []Stat{
		{Label: "09:00", TotalIncome: types.MustMoney("120.50"), BillCount: 3},
		{Label: "14:00", TotalIncome: types.MustMoney("80.00"), BillCount: 1},
	}
	dense := fillGaps(sparse, w)

	require.Len(t, dense, 24)
	assert.Equal(t, "00:00", dense[0].Label)
	assert.Equal(t, "23:00", dense[23].Label)

	assert.Equal(t, "09:00", dense[9].Label)
	assert.True(t, dense[9].TotalIncome.Equal(types.MustMoney("120.50")))
	assert.EqualValues(t, 3, dense[9].BillCount)

	// Every slot the source rows missed is present and zeroed.
	assert.True(t, dense[0].TotalIncome.IsZero())
	assert.EqualValues(t, 0, dense[0].BillCount)
	assert.True(t, dense[0].PaymentBreakdown.Cash.IsZero())
}

func TestFillGapsWeeklyProducesOneBucketPerDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	w := billWindow(PeriodWeekly, now)

	dense := fillGaps(nil, w)

	require.Len(t, dense, 8)
	assert.Equal(t, "2025-03-07", dense[0].Label)
	assert.Equal(t, "2025-03-14", dense[7].Label)
	for _, s := range dense {
		assert.True(t, s.TotalIncome.IsZero())
	}
}

func TestFillGapsMonthlyIsChronological(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	w := billWindow(PeriodMonthly, now)

	dense := fillGaps(nil, w)

	require.Len(t, dense, 31)
	for i := 1; i < len(dense); i++ {
		assert.Less(t, dense[i-1].Label, dense[i].Label)
	}
}

func TestFillGapsTwoDayHourlyWindowKeepsLabelsUnique(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	w := ledgerWindow(PeriodDaily, now)

	sparse := []Stat{{Label: "00:00", TotalIncome: types.MustMoney("100.00"), BillCount: 1}}
	dense := fillGaps(sparse, w)

	// The window spans two calendar days, but hour-of-day labels must
	// not repeat: a duplicated 00:00 slot would double the series total.
	require.Len(t, dense, 24)
	seen := make(map[string]int)
	total := types.Zero()
	for _, s := range dense {
		seen[s.Label]++
		total = total.Add(s.TotalIncome)
	}
	assert.Equal(t, 1, seen["00:00"])
	assert.True(t, total.Equal(types.MustMoney("100.00")))
}

func TestLedgerWindowDailyStartsPreviousDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	w := ledgerWindow(PeriodDaily, now)

	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), w.start)
	assert.Equal(t, stepHour, w.step)
}

func TestParsePeriodDefaultsToDaily(t *testing.T) {
	assert.Equal(t, PeriodDaily, ParsePeriod(""))
	assert.Equal(t, PeriodDaily, ParsePeriod("yearly"))
	assert.Equal(t, PeriodWeekly, ParsePeriod("weekly"))
	assert.Equal(t, PeriodMonthly, ParsePeriod("monthly"))
}
