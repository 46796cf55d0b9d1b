package reports

import (
	"fmt"
	"time"

	"tillpoint/internal/core/types"
	"tillpoint/internal/domain/registers/income"
)

const (
	weeklyLookbackDays  = 7
	monthlyLookbackDays = 30
)

// dateLabel is the bucket label format for date-granularity windows.
const dateLabel = "2006-01-02"

// billWindow returns the aggregation window over the bill collection.
// Daily covers the current calendar day with hourly buckets; weekly and
// monthly look back a fixed number of days with date buckets.
func billWindow(period Period, now time.Time) window {
	start := income.DayOf(now)
	switch period {
	case PeriodWeekly:
		return window{start: start.AddDate(0, 0, -weeklyLookbackDays), end: endOfDay(now), step: stepDay}
	case PeriodMonthly:
		return window{start: start.AddDate(0, 0, -monthlyLookbackDays), end: endOfDay(now), step: stepDay}
	default:
		return window{start: start, end: endOfDay(now), step: stepHour}
	}
}

// ledgerWindow returns the aggregation window over the income ledger.
// The daily variant starts at the beginning of the previous day, so it
// always covers a full 24 hours of ledger history.
func ledgerWindow(period Period, now time.Time) window {
	switch period {
	case PeriodWeekly, PeriodMonthly:
		return billWindow(period, now)
	default:
		return window{start: income.DayOf(now.Add(-24 * time.Hour)), end: endOfDay(now), step: stepHour}
	}
}

func endOfDay(t time.Time) time.Time {
	return income.DayOf(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// bucketLabel formats t as the bucket label for the given step.
func bucketLabel(t time.Time, step windowStep) string {
	if step == stepHour {
		return fmt.Sprintf("%02d:00", t.Hour())
	}
	return t.Format(dateLabel)
}

// fillGaps expands sparse aggregation rows into a dense chronological
// series: every distinct bucket label appears exactly once, and slots
// with no source rows are zero-filled. Hour-of-day labels repeat when a
// window spans more than one day, so a label that was already emitted
// is skipped.
func fillGaps(sparse []Stat, w window) []Stat {
	byLabel := make(map[string]Stat, len(sparse))
	for _, s := range sparse {
		byLabel[s.Label] = s
	}

	advance := func(t time.Time) time.Time {
		if w.step == stepHour {
			return t.Add(time.Hour)
		}
		return t.AddDate(0, 0, 1)
	}

	var dense []Stat
	emitted := make(map[string]struct{})
	for cursor := w.start; !cursor.After(w.end); cursor = advance(cursor) {
		label := bucketLabel(cursor, w.step)
		if _, ok := emitted[label]; ok {
			continue
		}
		emitted[label] = struct{}{}
		if s, ok := byLabel[label]; ok {
			dense = append(dense, s)
			continue
		}
		dense = append(dense, Stat{
			Label:       label,
			TotalIncome: types.Zero(),
			AvgTicket:   types.Zero(),
			PaymentBreakdown: PaymentBreakdown{
				Cash: types.Zero(),
				Card: types.Zero(),
				UPI:  types.Zero(),
			},
		})
	}
	return dense
}
