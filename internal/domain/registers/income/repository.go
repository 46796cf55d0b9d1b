package income

import (
	"context"
	"time"
)

// Repository defines storage operations for the daily income ledger.
//
// Add must be an atomic upsert-increment (INSERT ... ON CONFLICT (date)
// DO UPDATE SET x = x + increment): concurrent bills on the same day
// must not lose increments, so read-modify-write in application code is
// not an acceptable implementation.
type Repository interface {
	// Add applies one bill's contribution, creating the day row if absent.
	Add(ctx context.Context, inc Increment) error

	// Range returns ledger rows with date in [from, to], date-ascending.
	// Zero from/to means an unbounded side.
	Range(ctx context.Context, from, to time.Time) ([]DailyRecord, error)
}
