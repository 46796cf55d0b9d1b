// Package billnum provides human-readable bill number generation.
//
// Numbers follow the pattern PREFIX-<epoch_ms>-<suffix>, e.g.
// BILL-1721900000000-042: a timestamp-derived prefix plus a zero-padded
// random suffix. Uniqueness is best-effort; two draws in the same
// millisecond can collide, which the storage layer surfaces through the
// unique index on the number column.
package billnum

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "BILL"

// suffixRange bounds the random suffix (000-999).
const suffixRange = 1000

// Generator produces bill numbers. The zero value is not usable; call New.
type Generator struct {
	prefix string

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New creates a generator with the given prefix ("" means DefaultPrefix).
func New(prefix string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{
		prefix: prefix,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// NewWithClock creates a generator with injectable clock and seed.
// Use only in tests.
func NewWithClock(prefix string, now func() time.Time, seed int64) *Generator {
	g := New(prefix)
	g.now = now
	g.rnd = rand.New(rand.NewSource(seed))
	return g
}

// Next returns the next bill number.
func (g *Generator) Next() string {
	g.mu.Lock()
	suffix := g.rnd.Intn(suffixRange)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%d-%03d", g.prefix, g.now().UnixMilli(), suffix)
}
