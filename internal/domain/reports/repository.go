package reports

import (
	"context"
	"time"
)

// Repository aggregates bills into time buckets at the storage layer.
type Repository interface {
	// BillBuckets groups bills created within [from, to] by bucket label
	// (hourly or per-date) and returns the sparse, non-gap-filled rows.
	// Each row carries the bucket's total, bill count, average ticket
	// and per-payment-method sums.
	BillBuckets(ctx context.Context, from, to time.Time, hourly bool) ([]Stat, error)
}
