package income

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2025, 3, 14, 23, 45, 12, 999, loc)

	day := DayOf(at)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), day)
	// Idempotent on already-truncated values.
	assert.Equal(t, day, DayOf(day))
}

func TestValidMethod(t *testing.T) {
	assert.True(t, ValidMethod(MethodCash))
	assert.True(t, ValidMethod(MethodCard))
	assert.True(t, ValidMethod(MethodUPI))
	assert.False(t, ValidMethod("cheque"))
	assert.False(t, ValidMethod(""))
	assert.False(t, ValidMethod("Cash"))
}
